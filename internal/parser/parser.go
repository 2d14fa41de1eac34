// Package parser builds an ast.Tree from a token stream.
//
// Only atomic operands are understood: identifiers, integer and float
// literals, and string literals. Newlines and comments are skipped, error
// tokens become error nodes. Anything else stops the parse with an
// *UnsupportedError.
package parser

import (
	"errors"
	"fmt"
	"io"

	"clark/internal/ast"
	"clark/internal/diag"
	"clark/internal/lexer"
	"clark/internal/session"
	"clark/internal/token"
)

// ErrUnsupported is wrapped by every *UnsupportedError.
var ErrUnsupported = errors.New("unsupported construct")

// UnsupportedError reports the first token outside the operand subset.
type UnsupportedError struct {
	Kind   token.Kind
	Offset uint32
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s %s at offset %d", ErrUnsupported, e.Kind, e.Offset)
}

func (e *UnsupportedError) Unwrap() error { return ErrUnsupported }

// Parser: состояние парсера на один поток токенов
type Parser struct {
	ctx    *session.Context
	stream *token.Stream
	tree   *ast.Tree
}

// ParseTokens builds the tree for stream. Diagnostics go to ctx.
// On an unsupported construct or a session fault no tree is returned.
func ParseTokens(ctx *session.Context, stream *token.Stream) (*ast.Tree, error) {
	if err := ctx.Fault(); err != nil {
		return nil, err
	}
	p := Parser{
		ctx:    ctx,
		stream: stream,
		tree:   ast.NewTree(stream.Len()),
	}
	if err := p.parseOperands(); err != nil {
		p.tree.Release()
		return nil, err
	}
	return p.tree, nil
}

// Parse lexes src and parses the resulting stream.
func Parse(ctx *session.Context, name string, src []byte) (*ast.Tree, error) {
	stream, err := lexer.Lex(ctx, name, src)
	if err != nil {
		return nil, err
	}
	return ParseTokens(ctx, stream)
}

// ParseReader reads r to the end and parses it under name.
func ParseReader(ctx *session.Context, name string, r io.Reader) (*ast.Tree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return Parse(ctx, name, src)
}

// parseOperands: основной цикл: один узел на каждый значимый токен.
func (p *Parser) parseOperands() error {
	for i, iEnd := 0, p.stream.Len(); i < iEnd; i++ {
		switch k := p.stream.Kind(i); k {
		case token.Newline, token.Comment:
			continue
		case token.Error:
			p.tree.AddError(i)
		case token.Ident:
			p.tree.AddIdent(i, string(p.stream.Text(i)))
		case token.Number:
			p.parseNumber(i)
		case token.String:
			p.parseString(i)
		default:
			return p.unsupported(i, k)
		}
		if err := p.ctx.Fault(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) unsupported(i int, k token.Kind) error {
	at := p.stream.Span(i).Start
	msg := k.Lexeme()
	if msg == "" {
		msg = k.String()
	}
	p.ctx.Report(diag.UnsupportedConstruct, at, "'"+msg+"'")
	if err := p.ctx.Fault(); err != nil {
		return err
	}
	return &UnsupportedError{Kind: k, Offset: at}
}

// Package lexer turns source bytes into a token.Stream.
//
// The lexer is a small state machine: every state function consumes input and
// returns the next state, and Run loops until stateDone. Problems are reported
// to the session as diagnostics and lexing continues; only a session fault
// (resource exhaustion) stops it early.
package lexer

import (
	"clark/internal/session"
	"clark/internal/source"
	"clark/internal/token"
)

type state uint8

const (
	stateText state = iota
	stateNumber
	stateIdentOrKeyword
	stateString
	stateSymbol
	stateDone
)

func (s state) String() string {
	switch s {
	case stateText:
		return "text"
	case stateNumber:
		return "number"
	case stateIdentOrKeyword:
		return "ident_or_keyword"
	case stateString:
		return "string"
	case stateSymbol:
		return "symbol"
	case stateDone:
		return "done"
	}
	return "unknown"
}

type Lexer struct {
	ctx    *session.Context
	file   *source.File
	cursor Cursor
	out    *token.Stream
}

// New prepares a lexer over file; diagnostics go to ctx.
func New(ctx *session.Context, file *source.File) *Lexer {
	return &Lexer{
		ctx:    ctx,
		file:   file,
		cursor: NewCursor(file),
		out:    token.NewStream(file, len(file.Content)/4+1),
	}
}

// Lex binds src to ctx and returns its token stream.
// On a session fault the partial stream is discarded and the fault returned.
func Lex(ctx *session.Context, name string, src []byte) (*token.Stream, error) {
	file, err := ctx.Bind(name, src)
	if err != nil {
		return nil, err
	}
	return New(ctx, file).Run()
}

// Run drives the state machine to the end of input.
func (lx *Lexer) Run() (*token.Stream, error) {
	st := stateText
	for st != stateDone {
		switch st {
		case stateText:
			st = lx.lexText()
		case stateNumber:
			st = lx.lexNumber()
		case stateIdentOrKeyword:
			st = lx.lexIdentOrKeyword()
		case stateString:
			st = lx.lexString()
		case stateSymbol:
			st = lx.lexSymbol()
		default:
			st = stateDone
		}
		if err := lx.ctx.Fault(); err != nil {
			lx.out.Reset()
			return nil, err
		}
	}
	return lx.out, nil
}

func (lx *Lexer) push(k token.Kind, sp source.Span) {
	lx.out.Push(k, sp)
}

// lexText skips blanks and comments, emits newlines and invalid runs, and
// picks the scanner for whatever starts next.
func (lx *Lexer) lexText() state {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == ' ' || b == '\t' || b == '\r':
			lx.cursor.Bump()
		case b == '#':
			lx.skipComment()
		case b == '\n':
			start := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.push(token.Newline, lx.cursor.SpanFrom(start))
		case b >= utf8RuneSelf:
			if lx.invalidRun() == 0 {
				return stateSymbol
			}
			start := lx.cursor.Mark()
			lx.consumeInvalid()
			lx.push(token.Error, lx.cursor.SpanFrom(start))
		case b == '.' && isDec(lx.cursor.PeekAt(1)):
			return stateNumber
		case lx.atStringPrefix():
			return stateString
		case isDec(b):
			return stateNumber
		case isIdentStartByte(b):
			return stateIdentOrKeyword
		case b == '\'' || b == '"':
			return stateString
		default:
			return stateSymbol
		}
	}
	return stateDone
}

// skipComment consumes '#' up to (not including) the newline and leaves a
// zero-length Comment marker at the '#'.
func (lx *Lexer) skipComment() {
	at := lx.cursor.Mark()
	lx.push(token.Comment, lx.cursor.SpanFrom(at))
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\n':
			return
		case b >= utf8RuneSelf:
			if lx.invalidRun() > 0 {
				lx.consumeInvalid()
			} else {
				lx.bumpRune()
			}
		default:
			lx.cursor.Bump()
		}
	}
}

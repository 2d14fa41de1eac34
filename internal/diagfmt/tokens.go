package diagfmt

import (
	"fmt"
	"io"

	"clark/internal/source"
	"clark/internal/token"
)

// TokenOutput: токен в JSON выводе.
type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Keyword bool        `json:"keyword,omitempty"`
	Span    source.Span `json:"span"`
}

// WriteTokens выводит токены в человекочитаемом формате.
// Keywords stay IDENT and get a "keyword" mark after the text.
func WriteTokens(w io.Writer, s *token.Stream) error {
	content := streamContent(s)
	for i, tok := range s.Tokens() {
		sp := tok.Span
		if _, err := fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if text := tok.Text(content); len(text) > 0 {
			fmt.Fprintf(w, " %q", text)
		}
		if tok.IsKeyword(content) {
			fmt.Fprint(w, " keyword")
		}
		if s.File != nil {
			from, to := s.File.Resolve(sp)
			fmt.Fprintf(w, " at %d:%d-%d:%d", from.Line, from.Col, to.Line, to.Col)
		} else {
			fmt.Fprintf(w, " at %s", sp)
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// BuildTokensJSON converts the token stream.
func BuildTokensJSON(s *token.Stream) []TokenOutput {
	content := streamContent(s)
	out := make([]TokenOutput, 0, s.Len())
	for _, tok := range s.Tokens() {
		out = append(out, TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    string(tok.Text(content)),
			Keyword: tok.IsKeyword(content),
			Span:    tok.Span,
		})
	}
	return out
}

func streamContent(s *token.Stream) []byte {
	if s.File == nil {
		return nil
	}
	return s.File.Content
}

// WriteTokensJSON выводит токены в JSON формате
func WriteTokensJSON(w io.Writer, s *token.Stream) error {
	return EncodeJSON(w, BuildTokensJSON(s))
}

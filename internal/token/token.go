package token

import (
	"clark/internal/source"
)

// Token is a kind plus a byte range; text is never copied.
type Token struct {
	Kind Kind
	Span source.Span
}

// Text returns the token bytes as a slice of content.
func (t Token) Text(content []byte) []byte {
	return t.Span.Text(content)
}

// IsKeyword reports whether an Ident token spells a keyword or reserved word.
func (t Token) IsKeyword(content []byte) bool {
	return t.Kind == Ident && IsKeyword(string(t.Text(content)))
}

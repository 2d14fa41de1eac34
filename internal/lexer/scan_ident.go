package lexer

import (
	"clark/internal/token"
)

// lexIdentOrKeyword consumes [A-Za-z0-9_]*; keywords stay Ident.
func (lx *Lexer) lexIdentOrKeyword() state {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	lx.push(token.Ident, lx.cursor.SpanFrom(start))
	return stateText
}

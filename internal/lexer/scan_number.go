package lexer

import (
	"clark/internal/token"
)

// lexNumber consumes a numeric literal without validating it.
//
//	0x.. 0o.. 0b..   prefix, then every [0-9A-Za-z_]; digits are checked by the parser
//	123_456          decimal run
//	1.5 .5 1.        fraction
//	1e10 1.5E-3      exponent
//
// Prefixed literals have no fraction or exponent.
func (lx *Lexer) lexNumber() state {
	start := lx.cursor.Mark()

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && isRadixLetter(b1) {
		lx.cursor.Bump()
		lx.cursor.Bump()
		for !lx.cursor.EOF() && (isAlnum(lx.cursor.Peek()) || lx.cursor.Peek() == '_') {
			lx.cursor.Bump()
		}
		lx.push(token.Number, lx.cursor.SpanFrom(start))
		return stateText
	}

	lx.scanDecDigits()
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		lx.scanDecDigits()
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		lx.scanDecDigits()
	}

	lx.push(token.Number, lx.cursor.SpanFrom(start))
	return stateText
}

func (lx *Lexer) scanDecDigits() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if !isDec(b) && b != '_' {
			return
		}
		lx.cursor.Bump()
	}
}

func isRadixLetter(b byte) bool {
	switch b {
	case 'x', 'X', 'o', 'O', 'b', 'B':
		return true
	}
	return false
}

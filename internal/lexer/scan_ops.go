package lexer

import (
	"clark/internal/diag"
	"clark/internal/token"
)

// Жадность: сначала 3-символьные, затем 2-символьные, затем 1-символьные.
func (lx *Lexer) lexSymbol() state {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) state {
		lx.push(k, lx.cursor.SpanFrom(start))
		return stateText
	}

	switch {
	case lx.try3('<', '<', '='):
		return emit(token.ShlAssign)
	case lx.try3('>', '>', '='):
		return emit(token.ShrAssign)
	case lx.try3('/', '/', '='):
		return emit(token.SlashSlashAssign)
	case lx.try3('.', '.', '.'):
		return emit(token.Ellipsis)
	case lx.try2('*', '*'):
		return emit(token.StarStar)
	case lx.try2('/', '/'):
		return emit(token.SlashSlash)
	case lx.try2('<', '<'):
		return emit(token.Shl)
	case lx.try2('>', '>'):
		return emit(token.Shr)
	case lx.try2('=', '='):
		return emit(token.EqEq)
	case lx.try2('!', '='):
		return emit(token.BangEq)
	case lx.try2('<', '='):
		return emit(token.LtEq)
	case lx.try2('>', '='):
		return emit(token.GtEq)
	case lx.try2('+', '='):
		return emit(token.PlusAssign)
	case lx.try2('-', '='):
		return emit(token.MinusAssign)
	case lx.try2('*', '='):
		return emit(token.StarAssign)
	case lx.try2('/', '='):
		return emit(token.SlashAssign)
	case lx.try2('%', '='):
		return emit(token.PercentAssign)
	case lx.try2('&', '='):
		return emit(token.AmpAssign)
	case lx.try2('|', '='):
		return emit(token.PipeAssign)
	case lx.try2('^', '='):
		return emit(token.CaretAssign)
	}

	// односимвольные
	switch lx.cursor.Peek() {
	case '(':
		lx.cursor.Bump()
		return emit(token.LParen)
	case ')':
		lx.cursor.Bump()
		return emit(token.RParen)
	case '[':
		lx.cursor.Bump()
		return emit(token.LBracket)
	case ']':
		lx.cursor.Bump()
		return emit(token.RBracket)
	case '{':
		lx.cursor.Bump()
		return emit(token.LBrace)
	case '}':
		lx.cursor.Bump()
		return emit(token.RBrace)
	case '+':
		lx.cursor.Bump()
		return emit(token.Plus)
	case '-':
		lx.cursor.Bump()
		return emit(token.Minus)
	case '*':
		lx.cursor.Bump()
		return emit(token.Star)
	case '/':
		lx.cursor.Bump()
		return emit(token.Slash)
	case '%':
		lx.cursor.Bump()
		return emit(token.Percent)
	case '&':
		lx.cursor.Bump()
		return emit(token.Amp)
	case '|':
		lx.cursor.Bump()
		return emit(token.Pipe)
	case '^':
		lx.cursor.Bump()
		return emit(token.Caret)
	case '~':
		lx.cursor.Bump()
		return emit(token.Tilde)
	case '<':
		lx.cursor.Bump()
		return emit(token.Lt)
	case '>':
		lx.cursor.Bump()
		return emit(token.Gt)
	case '=':
		lx.cursor.Bump()
		return emit(token.Assign)
	case ',':
		lx.cursor.Bump()
		return emit(token.Comma)
	case ';':
		lx.cursor.Bump()
		return emit(token.Semicolon)
	case ':':
		lx.cursor.Bump()
		return emit(token.Colon)
	case '.':
		lx.cursor.Bump()
		return emit(token.Dot)
	}

	// '!' без '=', '$', '?', не-ASCII и прочее
	r, _ := lx.peekRune()
	lx.ctx.Report(diag.UnexpectedSymbol, lx.cursor.Off, quoteRune(r))
	lx.bumpRune()
	return emit(token.Error)
}

// try2/try3 пробуют "съесть" 2/3 байта, если совпадает.
func (lx *Lexer) try3(a, b, c byte) bool {
	b0, b1, b2, ok := lx.cursor.Peek3()
	if !ok || b0 != a || b1 != b || b2 != c {
		return false
	}
	lx.cursor.Advance(3)
	return true
}

func (lx *Lexer) try2(a, b byte) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != a || b1 != b {
		return false
	}
	lx.cursor.Advance(2)
	return true
}

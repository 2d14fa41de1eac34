package lexer

import (
	"clark/internal/diag"
	"clark/internal/token"
)

// stringMode selects the diagnostic family of a literal.
type stringMode uint8

const (
	modeString stringMode = iota
	modeRaw
	modeBytes
	modeRawBytes
)

func (m stringMode) raw() bool   { return m == modeRaw || m == modeRawBytes }
func (m stringMode) bytes() bool { return m == modeBytes || m == modeRawBytes }

func (m stringMode) newlineCode() diag.Code {
	switch m {
	case modeRaw:
		return diag.NewlineInRawString
	case modeBytes:
		return diag.NewlineInBytes
	case modeRawBytes:
		return diag.NewlineInRawBytes
	}
	return diag.NewlineInString
}

func (m stringMode) eofCode() diag.Code {
	switch m {
	case modeRaw:
		return diag.RawStringEOF
	case modeBytes:
		return diag.BytesEOF
	case modeRawBytes:
		return diag.RawBytesEOF
	}
	return diag.StringEOF
}

// atStringPrefix: r"  b'  rb"  br'  (lower case only)
func (lx *Lexer) atStringPrefix() bool {
	b0 := lx.cursor.Peek()
	if b0 != 'r' && b0 != 'b' {
		return false
	}
	b1 := lx.cursor.PeekAt(1)
	if isQuote(b1) {
		return true
	}
	other := byte('b')
	if b0 == 'b' {
		other = 'r'
	}
	return b1 == other && isQuote(lx.cursor.PeekAt(2))
}

type pendingDiag struct {
	code diag.Code
	at   uint32
	msg  string
}

// lexString consumes one literal with its prefix and quotes.
//
// A literal that hit any lexical problem becomes a token.Error covering what
// was consumed. Termination problems (newline, EOF) are reported at the
// literal start, before problems found inside, so offsets never go backwards.
func (lx *Lexer) lexString() state {
	start := lx.cursor.Mark()
	mode := lx.scanStringPrefix()

	q := lx.cursor.Bump()
	triple := false
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == q && b1 == q {
		lx.cursor.Bump()
		lx.cursor.Bump()
		triple = true
	}

	var pending []pendingDiag
	var term diag.Code // 0: литерал закрыт
	closed := false

	for !closed && term == 0 {
		if lx.cursor.EOF() {
			term = mode.eofCode()
			break
		}
		b := lx.cursor.Peek()
		switch {
		case b == q:
			if !triple {
				lx.cursor.Bump()
				closed = true
			} else if b0, b1, b2, ok := lx.cursor.Peek3(); ok && b0 == q && b1 == q && b2 == q {
				lx.cursor.Advance(3)
				closed = true
			} else {
				lx.cursor.Bump()
			}
		case b == '\\':
			lx.scanStringBackslash(mode)
		case b == '\n':
			if !triple {
				term = mode.newlineCode()
				break
			}
			lx.cursor.Bump()
		case b >= utf8RuneSelf:
			if n := lx.invalidRun(); n > 0 {
				at := lx.cursor.Off
				pending = append(pending, pendingDiag{diag.InvalidUTF8, at, quoteBytes(lx.cursor.Rest()[:n])})
				lx.cursor.Skip(n)
				continue
			}
			r, _ := lx.peekRune()
			if mode.bytes() {
				pending = append(pending, pendingDiag{diag.InvalidBytesChar, lx.cursor.Off, quoteRune(r)})
			}
			lx.bumpRune()
		default:
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	if term != 0 {
		lx.ctx.Report(term, sp.Start, "")
	}
	for _, p := range pending {
		lx.ctx.Report(p.code, p.at, p.msg)
	}
	if term != 0 || len(pending) > 0 {
		lx.push(token.Error, sp)
	} else {
		lx.push(token.String, sp)
	}
	return stateText
}

func (lx *Lexer) scanStringPrefix() stringMode {
	mode := modeString
	for {
		switch lx.cursor.Peek() {
		case 'r':
			if mode == modeBytes {
				mode = modeRawBytes
			} else {
				mode = modeRaw
			}
		case 'b':
			if mode == modeRaw {
				mode = modeRawBytes
			} else {
				mode = modeBytes
			}
		default:
			return mode
		}
		lx.cursor.Bump()
	}
}

// scanStringBackslash skips '\' together with the escaped character so that
// \" and \\ never close the literal. In raw literals '\' + newline is not a
// continuation and the newline is left for the main loop.
func (lx *Lexer) scanStringBackslash(mode stringMode) {
	lx.cursor.Bump()
	if lx.cursor.EOF() {
		return
	}
	next := lx.cursor.Peek()
	switch {
	case next == '\n' && mode.raw():
		return
	case next >= utf8RuneSelf:
		if lx.invalidRun() == 0 && !mode.bytes() {
			lx.bumpRune()
		}
	default:
		lx.cursor.Bump()
	}
}

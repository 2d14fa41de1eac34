package parser

import (
	"unicode/utf8"

	"fortio.org/safecast"

	"clark/internal/diag"
)

const unicodeEscapeMsg = `unicode escape must be in the form \uXXXX or \UXXXXXXXX, where the Xs are a valid Unicode codepoint`

// literalParts splits a string token into prefix flags and body.
// bodyOff is the offset of the body inside the token.
func literalParts(tok []byte) (raw bool, body []byte, bodyOff int) {
	i := 0
	for i < len(tok) && (tok[i] == 'r' || tok[i] == 'b') {
		if tok[i] == 'r' {
			raw = true
		}
		i++
	}
	q := 1
	if len(tok)-i >= 6 && tok[i] == tok[i+1] && tok[i] == tok[i+2] {
		q = 3
	}
	if len(tok)-i < 2*q {
		return raw, nil, i
	}
	return raw, tok[i+q : len(tok)-q], i + q
}

func (p *Parser) parseString(i int) {
	tok := p.stream.Text(i)
	raw, body, bodyOff := literalParts(tok)
	out := append([]byte(nil), body...)
	if raw {
		p.tree.AddString(i, out)
		return
	}

	base := offsetAt(p.stream.Span(i).Start, bodyOff)
	out, ok := p.unescape(out, base)
	if !ok {
		p.tree.AddError(i)
		return
	}
	p.tree.AddString(i, out)
}

// unescape rewrites escapes in place; the write index never passes the read
// index. Every bad escape is reported at base + its backslash offset.
func (p *Parser) unescape(b []byte, base uint32) ([]byte, bool) {
	ok := true
	w := 0
	for r := 0; r < len(b); {
		c := b[r]
		if c != '\\' {
			b[w] = c
			w++
			r++
			continue
		}
		at := offsetAt(base, r)

		if r+1 >= len(b) {
			p.ctx.Report(diag.InvalidEscape, at, `'\'`)
			return b[:w], false
		}
		e := b[r+1]
		switch e {
		case '\n':
			r += 2
			continue
		case 'a', 'b', 'f', 'n', 'r', 't', 'v', '\\', '\'', '"':
			b[w] = simpleEscape(e)
			w++
			r += 2
			continue
		}

		var (
			n   int    // длина escape вместе с '\'
			val uint32 // значение
			rn  bool   // значение: кодовая точка
			cp  rune
			bad bool
			msg string
		)
		switch {
		case e >= '0' && e <= '7':
			n = 2
			val = uint32(e - '0')
			for n < 4 && r+n < len(b) && isDecDigit(b[r+n]) {
				d := b[r+n]
				if d > '7' {
					bad = true
				}
				val = val*8 + uint32(d-'0')
				n++
			}
			bad = bad || val > 0xFF
		case e == 'x':
			n = 4
			val, bad = hexValue(b, r+2, 2)
		case e == 'u' || e == 'U':
			width := 4
			if e == 'U' {
				width = 8
			}
			n = 2 + width
			val, bad = hexValue(b, r+2, width)
			rn = true
			var convErr error
			cp, convErr = safecast.Conv[rune](val)
			if bad || convErr != nil || !utf8.ValidRune(cp) {
				bad = true
				msg = unicodeEscapeMsg
			}
		default:
			n = 2
			bad = true
		}

		if bad {
			if msg == "" {
				msg = "'" + string(b[r:min(r+n, len(b))]) + "'"
			}
			p.ctx.Report(diag.InvalidEscape, at, msg)
			ok = false
			r = min(r+n, len(b))
			continue
		}
		if rn {
			var buf [utf8.UTFMax]byte
			k := utf8.EncodeRune(buf[:], cp)
			w += copy(b[w:], buf[:k])
		} else {
			b[w] = byte(val)
			w++
		}
		r += n
	}
	return b[:w], ok
}

func simpleEscape(e byte) byte {
	switch e {
	case 'a':
		return '\a'
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case 'v':
		return '\v'
	}
	return e // \\ \' \"
}

// hexValue reads exactly width hex digits at b[from:]; bad is true when
// there are fewer.
func hexValue(b []byte, from, width int) (val uint32, bad bool) {
	if from+width > len(b) {
		return 0, true
	}
	for _, c := range b[from : from+width] {
		var d byte
		switch {
		case c >= '0' && c <= '9':
			d = c - '0'
		case c >= 'a' && c <= 'f':
			d = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0, true
		}
		val = val<<4 | uint32(d)
	}
	return val, false
}

func isDecDigit(c byte) bool { return c >= '0' && c <= '9' }

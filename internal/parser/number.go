package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"clark/internal/bigint"
	"clark/internal/diag"
)

// radixInfo describes a prefixed integer family.
type radixInfo struct {
	radix    int
	noDigits diag.Code
	badDigit diag.Code
}

var (
	radixHex = radixInfo{16, diag.HexNumberNoDigits, diag.HexNumberInvalidDigit}
	radixOct = radixInfo{8, diag.OctalNumberNoDigits, diag.OctalNumberInvalidDigit}
	radixBin = radixInfo{2, diag.BinaryNumberNoDigits, diag.BinaryNumberInvalidDigit}
	radixDec = radixInfo{10, diag.IntInvalid, diag.IntInvalid}
)

// splitRadix strips 0x/0o/0b in either case.
func splitRadix(text string) (radixInfo, string, bool) {
	if len(text) >= 2 && text[0] == '0' {
		switch text[1] {
		case 'x', 'X':
			return radixHex, text[2:], true
		case 'o', 'O':
			return radixOct, text[2:], true
		case 'b', 'B':
			return radixBin, text[2:], true
		}
	}
	return radixDec, text, false
}

// isFloatText: a '.' anywhere, or an exponent in an unprefixed literal.
func isFloatText(text string) bool {
	if _, _, prefixed := splitRadix(text); prefixed {
		return false
	}
	return strings.ContainsAny(text, ".eE")
}

func (p *Parser) parseNumber(i int) {
	text := string(p.stream.Text(i))
	if isFloatText(text) {
		p.parseFloat(i, text)
		return
	}
	p.parseInt(i, text)
}

// parseInt validates digits and separators, then hands the digits to the
// configured bigint engine.
func (p *Parser) parseInt(i int, text string) {
	start := p.stream.Span(i).Start
	info, body, prefixed := splitRadix(text)
	bodyOff := len(text) - len(body)

	if j := strings.Index(body, "__"); j >= 0 {
		p.fail(i, diag.NumberConsecutiveUnderscores, offsetAt(start, bodyOff+j), "")
		return
	}
	digits := 0
	for j, jEnd := 0, len(body); j < jEnd; j++ {
		c := body[j]
		if c == '_' {
			continue
		}
		if !isDigitIn(c, info.radix) {
			p.fail(i, info.badDigit, offsetAt(start, bodyOff+j), "'"+string(c)+"'")
			return
		}
		digits++
	}
	switch {
	case digits == 0 && prefixed:
		p.fail(i, info.noDigits, start, text)
		return
	case digits == 0,
		strings.HasSuffix(body, "_"),
		!prefixed && strings.HasPrefix(body, "_"):
		// одиночный '_' разрешён только сразу после префикса
		p.fail(i, diag.IntInvalid, start, text)
		return
	}

	v, err := p.ctx.Engine().Parse(body, info.radix)
	switch {
	case errors.Is(err, bigint.ErrTooLarge):
		// предел размера: это отказ ресурса, не ошибка литерала
		p.ctx.Fail(fmt.Errorf("int literal at offset %d: %w", start, err))
		return
	case err != nil:
		p.fail(i, diag.IntInvalid, start, text)
		return
	}
	p.tree.AddInt(i, v)
}

func isDigitIn(c byte, radix int) bool {
	var d int
	switch {
	case c >= '0' && c <= '9':
		d = int(c - '0')
	case c >= 'a' && c <= 'z':
		d = int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		d = int(c-'A') + 10
	default:
		return false
	}
	return d < radix
}

// parseFloat: separators must sit between two digits; the rest is strconv.
func (p *Parser) parseFloat(i int, text string) {
	start := p.stream.Span(i).Start
	if j := strings.Index(text, "__"); j >= 0 {
		p.fail(i, diag.NumberConsecutiveUnderscores, offsetAt(start, j), "")
		return
	}
	for j, jEnd := 0, len(text); j < jEnd; j++ {
		if text[j] != '_' {
			continue
		}
		if j == 0 || j == len(text)-1 || !isDigitIn(text[j-1], 10) || !isDigitIn(text[j+1], 10) {
			p.fail(i, diag.FloatInvalid, start, text)
			return
		}
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
	if err != nil {
		code := diag.FloatInvalid
		if errors.Is(err, strconv.ErrRange) {
			code = diag.FloatTooBig
		}
		p.fail(i, code, start, text)
		return
	}
	p.tree.AddFloat(i, v)
}

// fail records the diagnostic and an error node for token i.
// offsetAt returns base + rel for a position inside a token.
func offsetAt(base uint32, rel int) uint32 {
	d, err := safecast.Conv[uint32](rel)
	if err != nil {
		panic(fmt.Errorf("token offset overflow: %w", err))
	}
	return base + d
}

func (p *Parser) fail(i int, code diag.Code, at uint32, msg string) {
	p.ctx.Report(code, at, msg)
	p.tree.AddError(i)
}

package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"clark/internal/diag"
)

const utf8RuneSelf = utf8.RuneSelf

// ===== Работа с рунами поверх Cursor =====

// peekRune декодирует руну под курсором; size == 0 на EOF
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.cursor.Rest())
}

// bumpRune перемещает курсор на размер руны
func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	lx.cursor.Skip(sz)
}

// invalidRun возвращает длину максимальной цепочки байт, не образующих
// корректный UTF-8, начиная с курсора; 0: под курсором валидная руна.
func (lx *Lexer) invalidRun() int {
	rest := lx.cursor.Rest()
	n := 0
	for n < len(rest) {
		if rest[n] < utf8RuneSelf {
			break
		}
		r, sz := utf8.DecodeRune(rest[n:])
		if r != utf8.RuneError || sz != 1 {
			break
		}
		n++
	}
	return n
}

// consumeInvalid reports one InvalidUTF8 for the run under the cursor and skips it.
func (lx *Lexer) consumeInvalid() {
	n := lx.invalidRun()
	if n == 0 {
		return
	}
	at := lx.cursor.Off
	lx.ctx.Report(diag.InvalidUTF8, at, quoteBytes(lx.cursor.Rest()[:n]))
	lx.cursor.Skip(n)
}

// ===== Классификаторы =====

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isAlnum(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isQuote(b byte) bool { return b == '\'' || b == '"' }

// ===== Сообщения =====

// quoteRune renders r as 'c', escaping what is not printable.
func quoteRune(r rune) string {
	if unicode.IsPrint(r) {
		return "'" + string(r) + "'"
	}
	return strconv.QuoteRuneToASCII(r)
}

// quoteBytes renders raw bytes as '\xHH...'.
func quoteBytes(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b)*4 + 2)
	sb.WriteByte('\'')
	for _, c := range b {
		sb.WriteString(`\x`)
		sb.WriteByte(hexDigits[c>>4])
		sb.WriteByte(hexDigits[c&0xF])
	}
	sb.WriteByte('\'')
	return sb.String()
}

const hexDigits = "0123456789abcdef"

package diag

import (
	"fmt"
)

type Code uint16

const (
	// Заглушка для неизвестного кода
	Invalid Code = 0

	// Лексические
	LexInfo            Code = 1000
	UnexpectedSymbol   Code = 1001
	InvalidUTF8        Code = 1002
	NewlineInString    Code = 1003
	NewlineInRawBytes  Code = 1004
	NewlineInBytes     Code = 1005
	NewlineInRawString Code = 1006
	StringEOF          Code = 1007
	RawBytesEOF        Code = 1008
	BytesEOF           Code = 1009
	RawStringEOF       Code = 1010
	InvalidBytesChar   Code = 1011

	// Числовые литералы
	NumInfo                      Code = 2000
	BinaryNumberNoDigits         Code = 2001
	OctalNumberNoDigits          Code = 2002
	HexNumberNoDigits            Code = 2003
	NumberConsecutiveUnderscores Code = 2004
	BinaryNumberInvalidDigit     Code = 2005
	OctalNumberInvalidDigit      Code = 2006
	HexNumberInvalidDigit        Code = 2007
	FloatInvalid                 Code = 2008
	IntInvalid                   Code = 2009
	FloatTooBig                  Code = 2010

	// Escape-последовательности
	EscInfo       Code = 3000
	InvalidEscape Code = 3001

	// Парсерные
	SynInfo              Code = 4000
	ExpectedIdent        Code = 4001
	UnsupportedConstruct Code = 4002
)

// reasons are rendered verbatim in the `<name>:<line>:<col>: <reason>` line.
var codeReason = map[Code]string{
	Invalid:                      "INVALID ERRORCODE:",
	UnexpectedSymbol:             "unexpected symbol:",
	InvalidUTF8:                  "invalid utf-8 character:",
	NewlineInString:              "unexpected newline in string",
	NewlineInRawBytes:            "unexpected newline in raw byte string",
	NewlineInBytes:               "unexpected newline in byte string",
	NewlineInRawString:           "unexpected newline in raw string",
	StringEOF:                    "unexpected end of file in string",
	RawBytesEOF:                  "unexpected end of file in raw byte string",
	BytesEOF:                     "unexpected end of file in byte string",
	RawStringEOF:                 "unexpected end of file in raw string",
	InvalidBytesChar:             "invalid character in byte string:",
	BinaryNumberNoDigits:         "binary number has no digits:",
	OctalNumberNoDigits:          "octal number has no digits:",
	HexNumberNoDigits:            "hexadecimal number has no digits:",
	NumberConsecutiveUnderscores: "cannot have more than one consecutive underscore ('_') in number literal",
	BinaryNumberInvalidDigit:     "invalid digit in binary number:",
	OctalNumberInvalidDigit:      "invalid digit in octal number:",
	HexNumberInvalidDigit:        "invalid digit in hexadecimal number:",
	FloatInvalid:                 "invalid float:",
	IntInvalid:                   "invalid int:",
	FloatTooBig:                  "float too big for 64 bits:",
	InvalidEscape:                "invalid escape:",
	ExpectedIdent:                "expected identifier, found",
	UnsupportedConstruct:         "unsupported construct:",
}

var codeName = map[Code]string{
	Invalid:                      "INVALID",
	UnexpectedSymbol:             "UNEXPECTED_SYMBOL",
	InvalidUTF8:                  "INVALID_UTF8",
	NewlineInString:              "NEWLINE_IN_STRING",
	NewlineInRawBytes:            "NEWLINE_IN_RAWBYTES",
	NewlineInBytes:               "NEWLINE_IN_BYTES",
	NewlineInRawString:           "NEWLINE_IN_RAW_STRING",
	StringEOF:                    "STRING_EOF",
	RawBytesEOF:                  "RAWBYTES_EOF",
	BytesEOF:                     "BYTES_EOF",
	RawStringEOF:                 "RAW_STRING_EOF",
	InvalidBytesChar:             "INVALID_BYTES_CHAR",
	BinaryNumberNoDigits:         "BINARY_NUMBER_NO_DIGITS",
	OctalNumberNoDigits:          "OCTAL_NUMBER_NO_DIGITS",
	HexNumberNoDigits:            "HEX_NUMBER_NO_DIGITS",
	NumberConsecutiveUnderscores: "NUMBER_CONSECUTIVE_UNDERSCORES",
	BinaryNumberInvalidDigit:     "BINARY_NUMBER_INVALID_DIGIT",
	OctalNumberInvalidDigit:      "OCTAL_NUMBER_INVALID_DIGIT",
	HexNumberInvalidDigit:        "HEX_NUMBER_INVALID_DIGIT",
	FloatInvalid:                 "FLOAT_INVALID",
	IntInvalid:                   "INT_INVALID",
	FloatTooBig:                  "FLOAT_TOO_BIG",
	InvalidEscape:                "INVALID_ESCAPE",
	ExpectedIdent:                "EXPECTED_IDENT",
	UnsupportedConstruct:         "UNSUPPORTED_CONSTRUCT",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("NUM%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("ESC%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("SYN%04d", ic)
	}
	return "E0000"
}

// Reason returns the fixed text printed before the optional message.
func (c Code) Reason() string {
	r, ok := codeReason[c]
	if !ok {
		return codeReason[Invalid]
	}
	return r
}

// Name returns the upper-case symbolic name (NEWLINE_IN_STRING, ...).
func (c Code) Name() string {
	n, ok := codeName[c]
	if !ok {
		return codeName[Invalid]
	}
	return n
}

// Known reports whether c is a defined error code.
func (c Code) Known() bool {
	_, ok := codeReason[c]
	return ok && c != Invalid
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Name())
}

package bigint

import (
	"math/bits"
	"strings"

	"fortio.org/safecast"
)

const digitAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// checkRadix validates radix and returns it as a limb-sized multiplier.
func checkRadix(radix int) (uint32, error) {
	if radix < MinRadix || radix > MaxRadix {
		return 0, ErrRadix
	}
	return safecast.Conv[uint32](radix)
}

// digitValue maps a byte to its value in radix.
// Up to radix 36 letters are case-insensitive; above, 'A'..'Z' are 36..61.
func digitValue(ch byte, radix int) (uint32, bool) {
	var d int
	switch {
	case ch >= '0' && ch <= '9':
		d = int(ch - '0')
	case ch >= 'a' && ch <= 'z':
		d = int(ch-'a') + 10
	case ch >= 'A' && ch <= 'Z':
		if radix <= 36 {
			d = int(ch-'A') + 10
		} else {
			d = int(ch-'A') + 36
		}
	default:
		return 0, false
	}
	if d >= radix {
		return 0, false
	}
	v, err := safecast.Conv[uint32](d)
	return v, err == nil
}

// splitSign strips an optional sign and all underscores.
func splitSign(s string) (neg bool, digits string, err error) {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if strings.IndexByte(s, '_') >= 0 {
		s = strings.ReplaceAll(s, "_", "")
	}
	if s == "" {
		return false, "", ErrSyntax
	}
	return neg, s, nil
}

// tooManyDigits reports, from the length alone, that digits in radix r
// need more than maxLimbs limbs. A value that fits is never rejected.
func tooManyDigits(digits string, r uint32) bool {
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return false
	}
	return (len(digits)-1)*(bits.Len32(r)-1) >= maxLimbs*32
}

func radixPrefix(radix int) string {
	switch radix {
	case 2:
		return "0b"
	case 8:
		return "0o"
	case 16:
		return "0x"
	}
	return ""
}

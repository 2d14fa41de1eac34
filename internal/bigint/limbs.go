package bigint

import (
	"math"
	"math/bits"
	"strings"
)

// maxLimbs bounds every magnitude (32M bits) in both engines. Results past
// it, parsed literals included, fail with ErrTooLarge.
const maxLimbs = 1_000_000

// Limbs is the built-in base-2^32 engine.
var Limbs Engine = limbEngine{}

type limbEngine struct{}

func (limbEngine) Name() string { return "limbs" }

func (limbEngine) New() Int { return &limbInt{} }

func (limbEngine) NewCap(digits int) Int {
	// ~9.63 десятичных цифр на лимб
	n := digits/9 + 1
	return &limbInt{mag: make([]uint32, 0, n)}
}

func (e limbEngine) Parse(s string, radix int) (Int, error) {
	r, err := checkRadix(radix)
	if err != nil {
		return nil, err
	}
	neg, digits, err := splitSign(s)
	if err != nil {
		return nil, err
	}
	if tooManyDigits(digits, r) {
		return nil, ErrTooLarge
	}
	z := e.NewCap(len(digits)).(*limbInt)
	for i, iEnd := 0, len(digits); i < iEnd; i++ {
		d, ok := digitValue(digits[i], radix)
		if !ok {
			return nil, ErrSyntax
		}
		if z.mag, err = mulSmall(z.mag, r); err != nil {
			return nil, err
		}
		if z.mag, err = addSmall(z.mag, d); err != nil {
			return nil, err
		}
	}
	z.neg = neg && len(z.mag) > 0
	return z, nil
}

// limbInt is sign + magnitude; zero is neg=false and an empty magnitude.
type limbInt struct {
	neg bool
	mag []uint32 // little-endian, без ведущих нулей
}

func (z *limbInt) Engine() Engine { return Limbs }

func asLimb(x Int) (*limbInt, error) {
	l, ok := x.(*limbInt)
	if !ok {
		return nil, ErrEngineMismatch
	}
	return l, nil
}

func (z *limbInt) SetU32(v uint32) {
	z.neg = false
	z.mag = z.mag[:0]
	if v != 0 {
		z.mag = append(z.mag, v)
	}
}

func (z *limbInt) Add(a, b Int) error {
	x, err := asLimb(a)
	if err != nil {
		return err
	}
	y, err := asLimb(b)
	if err != nil {
		return err
	}
	if x.neg == y.neg {
		mag, err := addMag(x.mag, y.mag)
		if err != nil {
			return err
		}
		z.neg, z.mag = x.neg && len(mag) > 0, mag
		return nil
	}
	switch c := cmpMag(x.mag, y.mag); {
	case c == 0:
		z.neg, z.mag = false, nil
	case c > 0:
		z.neg, z.mag = x.neg, subMag(x.mag, y.mag)
	default:
		z.neg, z.mag = y.neg, subMag(y.mag, x.mag)
	}
	return nil
}

func (z *limbInt) AddU32(a Int, v uint32) error {
	x, err := asLimb(a)
	if err != nil {
		return err
	}
	if !x.neg {
		mag, err := addSmall(append([]uint32(nil), x.mag...), v)
		if err != nil {
			return err
		}
		z.neg, z.mag = false, mag
		return nil
	}
	// -|x| + v
	small := []uint32{v}
	if v == 0 {
		small = nil
	}
	switch c := cmpMag(x.mag, small); {
	case c == 0:
		z.neg, z.mag = false, nil
	case c > 0:
		z.neg, z.mag = true, subMag(x.mag, small)
	default:
		z.neg, z.mag = false, subMag(small, x.mag)
	}
	return nil
}

func (z *limbInt) Mul(a, b Int) error {
	x, err := asLimb(a)
	if err != nil {
		return err
	}
	y, err := asLimb(b)
	if err != nil {
		return err
	}
	mag, err := mulMag(x.mag, y.mag)
	if err != nil {
		return err
	}
	z.neg, z.mag = x.neg != y.neg && len(mag) > 0, mag
	return nil
}

func (z *limbInt) PowU32(a Int, e uint32) error {
	x, err := asLimb(a)
	if err != nil {
		return err
	}
	if n := bitLen(x.mag); n > 1 && uint64(n-1)*uint64(e) > maxLimbs*32 {
		return ErrTooLarge
	}
	result := []uint32{1}
	base := trim(append([]uint32(nil), x.mag...))
	neg := x.neg && e&1 == 1
	for e > 0 {
		if e&1 == 1 {
			if result, err = mulMag(result, base); err != nil {
				return err
			}
		}
		e >>= 1
		if e == 0 {
			break
		}
		if base, err = mulMag(base, base); err != nil {
			return err
		}
	}
	z.neg, z.mag = neg && len(result) > 0, result
	return nil
}

func (z *limbInt) Text(radix int) (string, error) {
	r, err := checkRadix(radix)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if z.neg {
		sb.WriteByte('-')
	}
	sb.WriteString(radixPrefix(radix))
	if len(z.mag) == 0 {
		sb.WriteByte('0')
		return sb.String(), nil
	}

	// делим на наибольшую степень radix, влезающую в uint32
	chunk, width := r, 1
	for uint64(chunk)*uint64(r) <= math.MaxUint32 {
		chunk *= r
		width++
	}
	cur := append([]uint32(nil), z.mag...)
	var parts []uint32
	for len(cur) > 0 {
		var rem uint32
		cur, rem = divModSmall(cur, chunk)
		parts = append(parts, rem)
	}
	sb.WriteString(formatChunk(parts[len(parts)-1], r, 0))
	for i := len(parts) - 2; i >= 0; i-- {
		sb.WriteString(formatChunk(parts[i], r, width))
	}
	return sb.String(), nil
}

// formatChunk renders v in radix r, left-padded with zeros to width.
func formatChunk(v, r uint32, width int) string {
	var buf [32]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = digitAlphabet[v%r]
		v /= r
	}
	for len(buf)-i < width {
		i--
		buf[i] = '0'
	}
	if i == len(buf) {
		return "0"
	}
	return string(buf[i:])
}

func (z *limbInt) Sign() int {
	switch {
	case len(z.mag) == 0:
		return 0
	case z.neg:
		return -1
	}
	return 1
}

func (z *limbInt) Cmp(other Int) int {
	y, err := asLimb(other)
	if err != nil {
		panic(err)
	}
	switch {
	case z.Sign() != y.Sign():
		if z.Sign() < y.Sign() {
			return -1
		}
		return 1
	case z.neg:
		return -cmpMag(z.mag, y.mag)
	}
	return cmpMag(z.mag, y.mag)
}

func (z *limbInt) Int64() (int64, bool) {
	var mag uint64
	switch len(z.mag) {
	case 0:
		return 0, true
	case 1:
		mag = uint64(z.mag[0])
	case 2:
		mag = uint64(z.mag[0]) | uint64(z.mag[1])<<32
	default:
		return 0, false
	}
	if !z.neg {
		if mag > math.MaxInt64 {
			return 0, false
		}
		return int64(mag), true
	}
	if mag > 1<<63 {
		return 0, false
	}
	return int64(-mag), true //nolint:gosec // G115: two's complement wrap is intended for -2^63
}

func (z *limbInt) Clone() Int {
	return &limbInt{neg: z.neg, mag: append([]uint32(nil), z.mag...)}
}

func trim(limbs []uint32) []uint32 {
	for len(limbs) > 0 && limbs[len(limbs)-1] == 0 {
		limbs = limbs[:len(limbs)-1]
	}
	if len(limbs) == 0 {
		return nil
	}
	return limbs
}

func bitLen(limbs []uint32) int {
	if len(limbs) == 0 {
		return 0
	}
	return (len(limbs)-1)*32 + bits.Len32(limbs[len(limbs)-1])
}

func cmpMag(a, b []uint32) int {
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

func addMag(a, b []uint32) ([]uint32, error) {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(a) == 0 {
		return nil, nil
	}
	out := make([]uint32, len(a)+1)
	var carry uint32
	for i := range a {
		var bv uint32
		if i < len(b) {
			bv = b[i]
		}
		out[i], carry = bits.Add32(a[i], bv, carry)
	}
	out[len(a)] = carry
	out = trim(out)
	if len(out) > maxLimbs {
		return nil, ErrTooLarge
	}
	return out, nil
}

// subMag returns a-b; requires a >= b.
func subMag(a, b []uint32) []uint32 {
	out := make([]uint32, len(a))
	var borrow uint32
	for i := range a {
		var bv uint32
		if i < len(b) {
			bv = b[i]
		}
		out[i], borrow = bits.Sub32(a[i], bv, borrow)
	}
	return trim(out)
}

func addSmall(a []uint32, v uint32) ([]uint32, error) {
	if v == 0 {
		return a, nil
	}
	if len(a) == 0 {
		return append(a, v), nil
	}
	carry := v
	for i := 0; carry != 0 && i < len(a); i++ {
		a[i], carry = bits.Add32(a[i], carry, 0)
	}
	if carry != 0 {
		if len(a) >= maxLimbs {
			return nil, ErrTooLarge
		}
		a = append(a, carry)
	}
	return a, nil
}

// mulSmall multiplies a by m in place (growing by at most one limb).
func mulSmall(a []uint32, m uint32) ([]uint32, error) {
	if len(a) == 0 {
		return a, nil
	}
	if m == 0 {
		return a[:0], nil
	}
	var carry uint32
	for i := range a {
		hi, lo := bits.Mul32(a[i], m)
		var c uint32
		a[i], c = bits.Add32(lo, carry, 0)
		carry = hi + c
	}
	if carry != 0 {
		if len(a) >= maxLimbs {
			return nil, ErrTooLarge
		}
		a = append(a, carry)
	}
	return a, nil
}

func mulMag(a, b []uint32) ([]uint32, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, nil
	}
	if len(a)+len(b) > maxLimbs {
		return nil, ErrTooLarge
	}
	out := make([]uint32, len(a)+len(b))
	for i, av := range a {
		var carry uint64
		for j, bv := range b {
			sum := uint64(out[i+j]) + uint64(av)*uint64(bv) + carry
			out[i+j] = uint32(sum) //nolint:gosec // G115: truncation is intentional (limb arithmetic).
			carry = sum >> 32
		}
		out[i+len(b)] = uint32(carry) //nolint:gosec // G115: carry < 2^32
	}
	return trim(out), nil
}

// divModSmall returns a/d and a%d; a is not modified.
func divModSmall(a []uint32, d uint32) ([]uint32, uint32) {
	out := make([]uint32, len(a))
	var rem uint32
	for i := len(a) - 1; i >= 0; i-- {
		out[i], rem = bits.Div32(rem, a[i], d)
	}
	return trim(out), rem
}

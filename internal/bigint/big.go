package bigint

import (
	"math/big"
	"strings"
)

// Big is the math/big backed engine.
var Big Engine = bigEngine{}

type bigEngine struct{}

func (bigEngine) Name() string { return "big" }

func (bigEngine) New() Int { return &bigInt{} }

func (bigEngine) NewCap(digits int) Int {
	z := &bigInt{}
	// 32-битные слова, ~9.63 десятичных цифр на слово
	z.v.SetBits(make([]big.Word, 0, digits/9+1))
	return z
}

func (bigEngine) Parse(s string, radix int) (Int, error) {
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
	// SetString принимает '_' и префиксы только при base 0, поэтому проверяем сами
	for i, iEnd := 0, len(digits); i < iEnd; i++ {
		if _, ok := digitValue(digits[i], radix); !ok {
			return nil, ErrSyntax
		}
	}
	z := &bigInt{}
	if _, ok := z.v.SetString(digits, radix); !ok {
		return nil, ErrSyntax
	}
	if z.v.BitLen() > maxLimbs*32 {
		return nil, ErrTooLarge
	}
	if neg {
		z.v.Neg(&z.v)
	}
	return z, nil
}

type bigInt struct {
	v big.Int
}

func (z *bigInt) Engine() Engine { return Big }

func asBig(x Int) (*bigInt, error) {
	b, ok := x.(*bigInt)
	if !ok {
		return nil, ErrEngineMismatch
	}
	return b, nil
}

func (z *bigInt) SetU32(v uint32) {
	z.v.SetUint64(uint64(v))
}

func (z *bigInt) Add(a, b Int) error {
	x, err := asBig(a)
	if err != nil {
		return err
	}
	y, err := asBig(b)
	if err != nil {
		return err
	}
	z.v.Add(&x.v, &y.v)
	return nil
}

func (z *bigInt) AddU32(a Int, v uint32) error {
	x, err := asBig(a)
	if err != nil {
		return err
	}
	var w big.Int
	w.SetUint64(uint64(v))
	z.v.Add(&x.v, &w)
	return nil
}

func (z *bigInt) Mul(a, b Int) error {
	x, err := asBig(a)
	if err != nil {
		return err
	}
	y, err := asBig(b)
	if err != nil {
		return err
	}
	if x.v.BitLen()+y.v.BitLen() > maxLimbs*32 {
		return ErrTooLarge
	}
	z.v.Mul(&x.v, &y.v)
	return nil
}

func (z *bigInt) PowU32(a Int, e uint32) error {
	x, err := asBig(a)
	if err != nil {
		return err
	}
	if n := x.v.BitLen(); n > 1 && uint64(n-1)*uint64(e) > maxLimbs*32 {
		return ErrTooLarge
	}
	var exp big.Int
	exp.SetUint64(uint64(e))
	z.v.Exp(&x.v, &exp, nil)
	return nil
}

func (z *bigInt) Text(radix int) (string, error) {
	if _, err := checkRadix(radix); err != nil {
		return "", err
	}
	s := z.v.Text(radix)
	prefix := radixPrefix(radix)
	if prefix == "" {
		return s, nil
	}
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		return "-" + prefix + rest, nil
	}
	return prefix + s, nil
}

func (z *bigInt) Sign() int { return z.v.Sign() }

func (z *bigInt) Cmp(other Int) int {
	y, err := asBig(other)
	if err != nil {
		panic(err)
	}
	return z.v.Cmp(&y.v)
}

func (z *bigInt) Int64() (int64, bool) {
	if !z.v.IsInt64() {
		return 0, false
	}
	return z.v.Int64(), true
}

func (z *bigInt) Clone() Int {
	c := &bigInt{}
	c.v.Set(&z.v)
	return c
}

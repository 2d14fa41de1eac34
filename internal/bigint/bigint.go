// Package bigint is the arbitrary-precision integer capability used for
// integer literals. Callers depend on the Int and Engine interfaces only, so
// the backing implementation can be swapped through configuration.
//
// Two engines ship with the package:
//   - Limbs: base-2^32 little-endian limbs, no dependencies;
//   - Big: math/big.
//
// Values from different engines must not be mixed in one operation.
package bigint

import (
	"errors"
	"sort"
)

var (
	// ErrSyntax reports a malformed digit string.
	ErrSyntax = errors.New("bigint: invalid digit string")
	// ErrRadix reports a radix outside [MinRadix, MaxRadix].
	ErrRadix = errors.New("bigint: radix out of range")
	// ErrTooLarge reports that a result exceeds the engine size limit.
	ErrTooLarge = errors.New("bigint: value too large")
	// ErrEngineMismatch reports operands created by different engines.
	ErrEngineMismatch = errors.New("bigint: operands from different engines")
)

const (
	MinRadix = 2
	MaxRadix = 62
)

// 60-bit small-integer range; values inside may be stored unboxed by an evaluator.
const (
	Small60Max = 1<<59 - 1
	Small60Min = -1 << 59
)

// Int is a mutable arbitrary-precision signed integer.
// Arithmetic methods store the result in the receiver, which may alias an operand.
type Int interface {
	SetU32(v uint32)
	Add(a, b Int) error
	AddU32(a Int, v uint32) error
	Mul(a, b Int) error
	PowU32(a Int, e uint32) error

	// Text renders the value in radix; 2, 8 and 16 get 0b, 0o, 0x prefixes.
	Text(radix int) (string, error)
	Sign() int
	// Cmp compares with another Int of the same engine; it panics otherwise.
	Cmp(other Int) int
	Int64() (int64, bool)
	Clone() Int
	Engine() Engine
}

// Engine creates and parses Int values.
type Engine interface {
	Name() string
	New() Int
	// NewCap returns zero with storage preallocated for about digits decimal digits.
	NewCap(digits int) Int
	// Parse reads an optionally signed digit string in radix.
	// '_' between digits is skipped; no radix prefix is accepted.
	Parse(s string, radix int) (Int, error)
}

var engines = map[string]Engine{
	Limbs.Name(): Limbs,
	Big.Name():   Big,
}

// Default is the engine used when nothing else is configured.
var Default Engine = Limbs

// Lookup returns a registered engine by name.
func Lookup(name string) (Engine, bool) {
	e, ok := engines[name]
	return e, ok
}

// Names lists registered engine names in sorted order.
func Names() []string {
	out := make([]string, 0, len(engines))
	for n := range engines {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// FitsSmall reports whether x lies in the 60-bit small-integer range.
func FitsSmall(x Int) bool {
	v, ok := x.Int64()
	return ok && v >= Small60Min && v <= Small60Max
}

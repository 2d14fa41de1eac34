package session

import (
	"errors"
	"fmt"
	"strconv"

	"clark/internal/bigint"
	"clark/internal/diag"
)

// Config keys understood by Set.
const (
	KeyMaxDiagnostics = "max_diagnostics"
	KeyBigInt         = "bigint"
)

var (
	ErrUnknownKey = errors.New("session: unknown configuration key")
	ErrBadValue   = errors.New("session: bad configuration value")
)

// Configurer is the string key/value configuration capability.
type Configurer interface {
	Set(key, value string) error
}

var _ Configurer = (*Context)(nil)

// Set applies one configuration value.
func (c *Context) Set(key, value string) error {
	if c.closed {
		return ErrClosed
	}
	switch key {
	case KeyMaxDiagnostics:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > diag.MaxDiagnostics {
			return fmt.Errorf("%w: %s=%q (want 1..%d)", ErrBadValue, key, value, diag.MaxDiagnostics)
		}
		c.Diags.SetLimit(n)
	case KeyBigInt:
		e, ok := bigint.Lookup(value)
		if !ok {
			return fmt.Errorf("%w: %s=%q (want one of %v)", ErrBadValue, key, value, bigint.Names())
		}
		c.engine = e
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}

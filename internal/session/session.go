// Package session holds the per-invocation state shared by lexer and parser:
// the string pool, the borrowed source, the diagnostic list and a sticky
// resource fault.
package session

import (
	"errors"
	"fmt"

	"clark/internal/bigint"
	"clark/internal/diag"
	"clark/internal/source"
)

var (
	// ErrAlreadyBound reports an attempt to reuse a Context for another source.
	ErrAlreadyBound = errors.New("session: context already bound to another source")
	// ErrClosed reports use after Close.
	ErrClosed = errors.New("session: context closed")
)

// Options configures a new Context.
type Options struct {
	MaxDiagnostics int           // 0: diag.MaxDiagnostics
	BigInt         bigint.Engine // nil: bigint.Default
}

// Context is not safe for concurrent use; create one per lex/parse call.
type Context struct {
	Pool  *source.Pool
	Diags *diag.List
	File  *source.File  // заимствован, не копируется
	Name  source.Handle // отображаемое имя источника

	engine bigint.Engine
	fault  error
	closed bool
}

// New creates an unbound Context.
func New(opts Options) *Context {
	pool := source.NewPool()
	engine := opts.BigInt
	if engine == nil {
		engine = bigint.Default
	}
	return &Context{
		Pool:   pool,
		Diags:  diag.NewList(pool, opts.MaxDiagnostics),
		engine: engine,
	}
}

// Bind attaches the source to lex. Binding the same bytes again is a no-op.
// Oversized sources set the fault and return source.ErrTooBig.
func (c *Context) Bind(name string, src []byte) (*source.File, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if c.fault != nil {
		return nil, c.fault
	}
	if c.File != nil {
		if sameBytes(c.File.Content, src) && c.File.Path == name {
			return c.File, nil
		}
		return nil, ErrAlreadyBound
	}
	f, err := source.NewFile(name, src)
	if err != nil {
		return nil, c.Fail(err)
	}
	h, err := c.Pool.InternString(name)
	if err != nil {
		return nil, c.Fail(err)
	}
	c.File, c.Name = f, h
	return f, nil
}

func sameBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

// DisplayName resolves Name.
func (c *Context) DisplayName() string {
	return c.Pool.Resolve(c.Name)
}

// Engine returns the configured big-integer engine.
func (c *Context) Engine() bigint.Engine {
	return c.engine
}

// Report implements diag.Reporter. A pool failure becomes the sticky fault.
func (c *Context) Report(code diag.Code, start uint32, msg string) {
	if c.fault != nil || c.closed {
		return
	}
	if _, err := c.Diags.Append(code, start, msg); err != nil {
		c.Fail(err)
	}
}

// Fail records err as the sticky fault (the first one wins) and returns the fault.
func (c *Context) Fail(err error) error {
	if c.fault == nil && err != nil {
		c.fault = err
	}
	return c.fault
}

// Fault returns the unrecoverable error, if any.
func (c *Context) Fault() error {
	return c.fault
}

// Close releases pool and diagnostics. Calling it twice is fine.
func (c *Context) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.Diags.Release()
	c.Pool.Reset()
	c.File = nil
}

var _ diag.Reporter = (*Context)(nil)

// String is used by trace output.
func (c *Context) String() string {
	name := ""
	if c.File != nil {
		name = c.DisplayName()
	}
	return fmt.Sprintf("session(%s, diags=%d)", name, c.Diags.Len())
}

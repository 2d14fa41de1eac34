package diag

import (
	"clark/internal/source"
)

// MaxDiagnostics: жёсткий предел числа записей в одном List.
const MaxDiagnostics = 65534

// List accumulates diagnostics column-wise: codes, offsets and message
// handles live in three independent slices.
// Appends past the limit are dropped silently.
type List struct {
	codes  []Code
	starts []uint32
	msgs   []source.Handle
	pool   *source.Pool
	max    int
}

// NewList creates a list that interns messages into pool.
// max <= 0 or above MaxDiagnostics is clamped to MaxDiagnostics.
func NewList(pool *source.Pool, max int) *List {
	if max <= 0 || max > MaxDiagnostics {
		max = MaxDiagnostics
	}
	return &List{pool: pool, max: max}
}

// Append records a diagnostic.
// It returns false when the limit has been reached; the error is non-nil only
// when the message could not be interned.
func (l *List) Append(code Code, start uint32, msg string) (bool, error) {
	if len(l.codes) >= l.max {
		return false, nil
	}
	h := source.NoHandle
	if msg != "" {
		var err error
		if h, err = l.pool.InternString(msg); err != nil {
			return false, err
		}
	}
	l.codes = append(l.codes, code)
	l.starts = append(l.starts, start)
	l.msgs = append(l.msgs, h)
	return true, nil
}

// SetLimit lowers or raises the cap, still bounded by MaxDiagnostics.
// Entries already recorded are kept.
func (l *List) SetLimit(max int) {
	if max <= 0 || max > MaxDiagnostics {
		max = MaxDiagnostics
	}
	l.max = max
}

func (l *List) Limit() int {
	return l.max
}

// длина
func (l *List) Len() int {
	return len(l.codes)
}

// Full reports whether further appends will be dropped.
func (l *List) Full() bool {
	return len(l.codes) >= l.max
}

func (l *List) At(i int) Diagnostic {
	return Diagnostic{Code: l.codes[i], Start: l.starts[i], Msg: l.msgs[i]}
}

// Message returns the resolved message of entry i ("" when absent).
func (l *List) Message(i int) string {
	return l.pool.Resolve(l.msgs[i])
}

// Codes возвращает read-only срез кодов.
// ВАЖНО: не модифицируйте возвращаемый срез!
func (l *List) Codes() []Code {
	return l.codes
}

// Starts возвращает read-only срез смещений.
func (l *List) Starts() []uint32 {
	return l.starts
}

// Items materialises all entries; intended for tests and renderers.
func (l *List) Items() []Diagnostic {
	out := make([]Diagnostic, len(l.codes))
	for i := range l.codes {
		out[i] = l.At(i)
	}
	return out
}

// Truncate drops entries past n.
func (l *List) Truncate(n int) {
	if n < 0 || n >= len(l.codes) {
		return
	}
	l.codes = l.codes[:n]
	l.starts = l.starts[:n]
	l.msgs = l.msgs[:n]
}

// Release drops the column storage.
func (l *List) Release() {
	l.codes, l.starts, l.msgs = nil, nil, nil
}

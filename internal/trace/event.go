package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	}
	return "unknown"
}

// Scope orders events from coarse to fine.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // команда CLI целиком
	ScopePass                    // lex, parse, render
	ScopeFile                    // один файл при обходе каталога
	ScopeToken                   // отдельные токены и узлы
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopePass:
		return "pass"
	case ScopeFile:
		return "file"
	case ScopeToken:
		return "token"
	}
	return "unknown"
}

// Event is one record of the log.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 для корня
	Name     string // "lex", "parse", "file:a.star"
	Detail   string
	Extra    map[string]string
}

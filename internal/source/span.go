package source

import (
	"fmt"
)

// Span is a half-open byte range inside a single source file.
type Span struct {
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Text returns the bytes covered by the span; out-of-range spans are clamped.
func (s Span) Text(content []byte) []byte {
	n := len(content)
	start, end := min(int(s.Start), n), min(int(s.End), n)
	if start > end {
		return nil
	}
	return content[start:end]
}

package token

import (
	"clark/internal/source"
)

// Stream stores tokens column-wise: kinds, starts and ends grow independently.
type Stream struct {
	kinds  []Kind
	starts []uint32
	ends   []uint32

	// File is the lexed source. It is borrowed, not owned.
	File *source.File
}

// NewStream prepares an empty stream for file with room for hint tokens.
func NewStream(file *source.File, hint int) *Stream {
	return &Stream{
		kinds:  make([]Kind, 0, hint),
		starts: make([]uint32, 0, hint),
		ends:   make([]uint32, 0, hint),
		File:   file,
	}
}

// FromColumns rebuilds a stream from previously exported columns.
// The three slices must have equal length.
func FromColumns(file *source.File, kinds []Kind, starts, ends []uint32) *Stream {
	if len(kinds) != len(starts) || len(kinds) != len(ends) {
		panic("token: column length mismatch")
	}
	return &Stream{kinds: kinds, starts: starts, ends: ends, File: file}
}

// Push appends one token.
func (s *Stream) Push(k Kind, sp source.Span) {
	s.kinds = append(s.kinds, k)
	s.starts = append(s.starts, sp.Start)
	s.ends = append(s.ends, sp.End)
}

func (s *Stream) Len() int { return len(s.kinds) }

func (s *Stream) Kind(i int) Kind { return s.kinds[i] }

func (s *Stream) Span(i int) source.Span {
	return source.Span{Start: s.starts[i], End: s.ends[i]}
}

func (s *Stream) At(i int) Token {
	return Token{Kind: s.kinds[i], Span: s.Span(i)}
}

// Text returns the bytes of token i from the borrowed source.
func (s *Stream) Text(i int) []byte {
	if s.File == nil {
		return nil
	}
	return s.Span(i).Text(s.File.Content)
}

// Tokens materialises the stream as a slice of Token.
func (s *Stream) Tokens() []Token {
	out := make([]Token, len(s.kinds))
	for i := range s.kinds {
		out[i] = s.At(i)
	}
	return out
}

// Columns exposes the read-only column slices (for caching and dumps).
func (s *Stream) Columns() (kinds []Kind, starts, ends []uint32) {
	return s.kinds, s.starts, s.ends
}

// Reset zeroes the lengths but keeps capacity.
func (s *Stream) Reset() {
	s.kinds = s.kinds[:0]
	s.starts = s.starts[:0]
	s.ends = s.ends[:0]
}

// Package testkit holds invariant checks shared by package and fuzz tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"clark/internal/ast"
	"clark/internal/diag"
	"clark/internal/token"
)

// CheckStreamInvariants checks the token stream of an input of size bytes:
// 1) every span lies within [0, size] and has Start <= End
// 2) spans do not overlap and appear in source order
// 3) every kind is valid
func CheckStreamInvariants(s *token.Stream, size int) error {
	if s == nil {
		return fmt.Errorf("nil stream")
	}
	limit, err := safecast.Conv[uint32](size)
	if err != nil {
		return fmt.Errorf("input size overflow: %w", err)
	}
	var prevEnd uint32
	for i, iEnd := 0, s.Len(); i < iEnd; i++ {
		if !s.Kind(i).Valid() {
			return fmt.Errorf("token %d has invalid kind %d", i, s.Kind(i))
		}
		sp := s.Span(i)
		if sp.Start > sp.End || sp.End > limit {
			return fmt.Errorf("token %d span %v outside [0,%d]", i, sp, limit)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d span %v overlaps previous end %d", i, sp, prevEnd)
		}
		prevEnd = sp.End
	}
	return nil
}

// CheckDiagnostics checks that offsets are within the input and never go back.
func CheckDiagnostics(l *diag.List, size int) error {
	limit, err := safecast.Conv[uint32](size)
	if err != nil {
		return fmt.Errorf("input size overflow: %w", err)
	}
	if l.Len() > l.Limit() {
		return fmt.Errorf("%d diagnostics exceed limit %d", l.Len(), l.Limit())
	}
	var prev uint32
	for i, d := range l.Items() {
		if d.Start > limit {
			return fmt.Errorf("diagnostic %d at %d beyond input %d", i, d.Start, limit)
		}
		if d.Start < prev {
			return fmt.Errorf("diagnostic %d at %d goes back from %d", i, d.Start, prev)
		}
		prev = d.Start
	}
	return nil
}

// CheckTreeInvariants checks that nodes reference stream tokens in strictly
// increasing order.
func CheckTreeInvariants(t *ast.Tree, s *token.Stream) error {
	if t == nil || s == nil {
		return fmt.Errorf("nil tree or stream")
	}
	prev := -1
	for i, iEnd := 0, t.Len(); i < iEnd; i++ {
		tok := t.Token(i)
		if tok < 0 || tok >= s.Len() {
			return fmt.Errorf("node %d (%s) token %d out of range [0,%d)", i, t.Tag(i), tok, s.Len())
		}
		if tok <= prev {
			return fmt.Errorf("node %d token %d not after %d", i, tok, prev)
		}
		prev = tok
	}
	return nil
}

// Package ast holds the leaf-level syntax tree produced by the parser.
//
// Nodes are stored column-wise: a tag, the index of the originating token and
// a 1-based reference into the arena of that tag's values. Error nodes carry
// no value. Identifier text and string bytes are owned copies, independent of
// the source buffer.
package ast

import (
	"clark/internal/bigint"
)

// Tree is the parse result in source order.
type Tree struct {
	tags []Tag
	toks []int    // индекс токена в token.Stream
	refs []uint32 // индекс в арене соответствующего тега

	idents  *Arena[string]
	ints    *Arena[bigint.Int]
	floats  *Arena[float64]
	strings *Arena[[]byte]
}

// NewTree creates an empty tree sized for about hint nodes.
func NewTree(hint int) *Tree {
	if hint < 0 {
		hint = 0
	}
	return &Tree{
		tags:    make([]Tag, 0, hint),
		toks:    make([]int, 0, hint),
		refs:    make([]uint32, 0, hint),
		idents:  NewArena[string](0),
		ints:    NewArena[bigint.Int](0),
		floats:  NewArena[float64](0),
		strings: NewArena[[]byte](0),
	}
}

func (t *Tree) add(tag Tag, tok int, ref uint32) int {
	t.tags = append(t.tags, tag)
	t.toks = append(t.toks, tok)
	t.refs = append(t.refs, ref)
	return len(t.tags) - 1
}

// AddError appends an error node for token tok.
func (t *Tree) AddError(tok int) int {
	return t.add(TagError, tok, 0)
}

// AddIdent appends an identifier; name must already be an owned string.
func (t *Tree) AddIdent(tok int, name string) int {
	return t.add(TagIdent, tok, t.idents.Allocate(name))
}

// AddInt appends an integer node; the tree takes ownership of v.
func (t *Tree) AddInt(tok int, v bigint.Int) int {
	return t.add(TagInt, tok, t.ints.Allocate(v))
}

func (t *Tree) AddFloat(tok int, v float64) int {
	return t.add(TagFloat, tok, t.floats.Allocate(v))
}

// AddString appends a string node; the tree takes ownership of b.
func (t *Tree) AddString(tok int, b []byte) int {
	return t.add(TagString, tok, t.strings.Allocate(b))
}

func (t *Tree) Len() int { return len(t.tags) }

func (t *Tree) Tag(i int) Tag { return t.tags[i] }

// Token returns the index of the token node i was built from.
func (t *Tree) Token(i int) int { return t.toks[i] }

func (t *Tree) Ident(i int) string {
	t.expect(i, TagIdent)
	return *t.idents.Get(t.refs[i])
}

func (t *Tree) Int(i int) bigint.Int {
	t.expect(i, TagInt)
	return *t.ints.Get(t.refs[i])
}

func (t *Tree) Float(i int) float64 {
	t.expect(i, TagFloat)
	return *t.floats.Get(t.refs[i])
}

// Str returns the decoded bytes of string node i; they may hold NUL or non-UTF-8.
func (t *Tree) Str(i int) []byte {
	t.expect(i, TagString)
	return *t.strings.Get(t.refs[i])
}

// Tags exposes the read-only tag column.
func (t *Tree) Tags() []Tag { return t.tags }

// Counts returns the number of nodes per tag.
func (t *Tree) Counts() map[Tag]int {
	out := make(map[Tag]int, 5)
	for _, tag := range t.tags {
		out[tag]++
	}
	return out
}

// Release drops every owned value; the tree is empty afterwards.
func (t *Tree) Release() {
	t.tags, t.toks, t.refs = t.tags[:0], t.toks[:0], t.refs[:0]
	t.idents.Clear()
	t.ints.Clear()
	t.floats.Clear()
	t.strings.Clear()
}

func (t *Tree) expect(i int, tag Tag) {
	if t.tags[i] != tag {
		panic("ast: node " + t.tags[i].String() + " accessed as " + tag.String())
	}
}

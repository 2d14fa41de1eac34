// Package source owns what lexer and parser borrow from a configuration
// file: its bytes, the newline index used for positions, and the string pool.
package source

// File is one bound source. Offsets into Content are uint32, which is why
// NewFile refuses anything past 4 GiB.
type File struct {
	Path    string
	Content []byte   // заимствован у вызывающего, не копируется
	LineIdx []uint32 // смещения всех '\n'
}

// LineCol is a 1-based position; Col counts bytes, not runes.
type LineCol struct {
	Line uint32
	Col  uint32
}

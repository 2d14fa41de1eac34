package source

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"fortio.org/safecast"
)

// ErrTooBig is returned for sources whose byte length does not fit a uint32 offset.
var ErrTooBig = errors.New("source too big")

// NewFile builds a File over borrowed content.
// It does not copy content; callers must keep it alive and unmodified.
func NewFile(path string, content []byte) (*File, error) {
	if err := CheckSize(content); err != nil {
		return nil, err
	}
	return &File{
		Path:    path,
		Content: content,
		LineIdx: buildLineIndex(content),
	}, nil
}

// CheckSize reports ErrTooBig when content offsets would not fit uint32.
func CheckSize(content []byte) error {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		return fmt.Errorf("%w: %d bytes", ErrTooBig, len(content))
	}
	return nil
}

// ReadFile reads a source from disk and drops a leading UTF-8 BOM, so
// offsets count from the first byte after it.
func ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := CheckSize(content); err != nil {
		return nil, err
	}
	content, _ = TrimBOM(content)
	return content, nil
}

// Position converts a byte offset into a 1-based line and column.
// Line is the number of '\n' bytes before off plus one.
func (f *File) Position(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

// Resolve converts a span into line and column positions.
func (f *File) Resolve(span Span) (start, end LineCol) {
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// LineStart returns the offset of the first byte of the line containing off.
func (f *File) LineStart(off uint32) uint32 {
	n := sort.Search(len(f.LineIdx), func(i int) bool { return f.LineIdx[i] >= off })
	if n == 0 {
		return 0
	}
	return f.LineIdx[n-1] + 1
}

// GetLine возвращает строку с заданным номером (1-based) из файла.
// Если строка не существует, возвращает пустую строку.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 || int(lineNum) > len(f.LineIdx)+1 {
		return ""
	}

	start := 0
	if lineNum > 1 {
		start = int(f.LineIdx[lineNum-2]) + 1
	}
	end := len(f.Content)
	if int(lineNum) <= len(f.LineIdx) {
		end = int(f.LineIdx[lineNum-1])
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}

package memhost

import (
	"sort"
	"strings"

	"github.com/dshills/quietwin/internal/host"
)

// Buffer is an immutable text with a line index.
type Buffer struct {
	id         host.BufferID
	name       string
	text       string
	lineStarts []int
}

// NewBuffer creates a buffer holding text.
func NewBuffer(id host.BufferID, name, text string) *Buffer {
	starts := make([]int, 1, strings.Count(text, "\n")+1)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Buffer{
		id:         id,
		name:       name,
		text:       text,
		lineStarts: starts,
	}
}

// ID returns the buffer identity.
func (b *Buffer) ID() host.BufferID {
	return b.id
}

// Name returns the buffer name.
func (b *Buffer) Name() string {
	return b.name
}

// Text returns the full buffer contents.
func (b *Buffer) Text() string {
	return b.text
}

// Len returns the buffer length in bytes.
func (b *Buffer) Len() int {
	return len(b.text)
}

// LineCount returns the number of buffer lines.
// A trailing newline starts a final empty line.
func (b *Buffer) LineCount() int {
	return len(b.lineStarts)
}

// LineStart returns the offset of the first byte of line (0-indexed).
func (b *Buffer) LineStart(line int) int {
	if line <= 0 {
		return 0
	}
	if line >= len(b.lineStarts) {
		return b.lineStarts[len(b.lineStarts)-1]
	}
	return b.lineStarts[line]
}

// LineEnd returns the offset just past the last byte of line,
// excluding the newline.
func (b *Buffer) LineEnd(line int) int {
	if line+1 < len(b.lineStarts) {
		return b.lineStarts[line+1] - 1
	}
	return len(b.text)
}

// LineText returns the text of line without its newline.
func (b *Buffer) LineText(line int) string {
	if line < 0 || line >= len(b.lineStarts) {
		return ""
	}
	return b.text[b.LineStart(line):b.LineEnd(line)]
}

// LineAt returns the line containing offset.
func (b *Buffer) LineAt(offset int) int {
	if offset <= 0 {
		return 0
	}
	// First line starting after offset, minus one.
	return sort.SearchInts(b.lineStarts, offset+1) - 1
}

// Clamp limits offset to [0, Len()].
func (b *Buffer) Clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(b.text) {
		return len(b.text)
	}
	return offset
}

// Package source owns positions, spans and the interned set of source
// files that every other engine in this compiler threads handles against.
package source

import "fmt"

// Position is a human-facing location within a single source file.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// FileID is a stable handle into the Store, valid for the lifetime of the
// compilation session that produced it.
type FileID struct {
	index int
}

// Span covers a range of a single file between two positions.
type Span struct {
	File  FileID
	Start Position
	End   Position
}

// Contains reports whether p falls within the span's byte range.
func (s Span) Contains(p Position) bool {
	return p.Offset >= s.Start.Offset && p.Offset <= s.End.Offset
}

type file struct {
	name string
	text string
	// lineOffsets[i] is the byte offset of the first byte of line i+1.
	lineOffsets []int
}

// Store interns source file contents behind FileID handles so diagnostics
// can render a caret against the original text without threading the raw
// string through every pass.
type Store struct {
	files []*file
}

// NewStore returns an empty source store.
func NewStore() *Store {
	return &Store{}
}

// AddFile interns name/text and returns its handle.
func (s *Store) AddFile(name, text string) FileID {
	f := &file{name: name, text: text, lineOffsets: computeLineOffsets(text)}
	s.files = append(s.files, f)
	return FileID{index: len(s.files) - 1}
}

// Name returns the interned file's name.
func (s *Store) Name(id FileID) string {
	return s.files[id.index].name
}

// Text returns the interned file's full source text.
func (s *Store) Text(id FileID) string {
	return s.files[id.index].text
}

// Line returns the 1-indexed source line's text, without its terminator.
func (s *Store) Line(id FileID, line int) string {
	f := s.files[id.index]
	if line < 1 || line > len(f.lineOffsets) {
		return ""
	}
	start := f.lineOffsets[line-1]
	end := len(f.text)
	if line < len(f.lineOffsets) {
		end = f.lineOffsets[line] - 1
	}
	if end < start {
		end = start
	}
	for end > start && (f.text[end-1] == '\n' || f.text[end-1] == '\r') {
		end--
	}
	return f.text[start:end]
}

func computeLineOffsets(text string) []int {
	offsets := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

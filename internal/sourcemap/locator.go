package sourcemap

import "sort"

// Position is a zero-based line/column pair. Column is a byte offset into the line.
type Position struct {
	Line   int
	Column int
}

// Locator maps byte offsets in a text to Positions.
type Locator struct {
	lineStarts []int
}

// NewLocator indexes the line starts of text. Only '\n' terminates a line; a preceding '\r' belongs to the line it ends.
func NewLocator(text string) *Locator {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Locator{lineStarts: starts}
}

// Locate returns the Position of offset. Offsets past the end locate on the last line.
func (l *Locator) Locate(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	line := sort.Search(len(l.lineStarts), func(i int) bool {
		return l.lineStarts[i] > offset
	}) - 1
	return Position{Line: line, Column: offset - l.lineStarts[line]}
}

// LineCount is the number of lines in the indexed text (at least 1).
func (l *Locator) LineCount() int {
	return len(l.lineStarts)
}

package sourcemap

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Segment is one decoded mapping entry with absolute values: [generatedColumn] or [generatedColumn, sourceIndex, originalLine, originalColumn] with an
// optional fifth nameIndex.
type Segment []int

// Line holds the segments of one generated line, ordered by generated column.
type Line []Segment

// Mappings holds one Line per generated line.
type Mappings []Line

// Hires selects how densely unedited original text is mapped.
type Hires int

const (
	// HiresOff emits one segment per chunk and per generated line.
	HiresOff Hires = iota
	// HiresChars emits one segment per rune.
	HiresChars
	// HiresBoundary emits one segment per word start and per non-word rune.
	HiresBoundary
)

// ParseHires accepts "", "false", "true", and "boundary".
func ParseHires(s string) (Hires, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "false", "off":
		return HiresOff, nil
	case "true", "chars":
		return HiresChars, nil
	case "boundary":
		return HiresBoundary, nil
	}
	return HiresOff, fmt.Errorf("invalid hires value %q (want \"\", \"true\", or \"boundary\")", s)
}

func (h Hires) String() string {
	switch h {
	case HiresChars:
		return "true"
	case HiresBoundary:
		return "boundary"
	}
	return ""
}

// sourceIndex is always 0: a map describes exactly one original source.
const sourceIndex = 0

// Builder accumulates segments while the caller walks the generated output in order.
type Builder struct {
	hires  Hires
	line   int
	column int
	raw    Mappings
}

// NewBuilder returns a Builder positioned at generated line 0, column 0.
func NewBuilder(hires Hires) *Builder {
	return &Builder{hires: hires, raw: Mappings{Line{}}}
}

// Generated returns the current generated position.
func (b *Builder) Generated() Position {
	return Position{Line: b.line, Column: b.column}
}

// Advance moves the generated position over s without emitting segments. Use it for inserted text that has no original counterpart.
func (b *Builder) Advance(s string) {
	if s == "" {
		return
	}
	lines := strings.Split(s, "\n")
	if len(lines) > 1 {
		for range lines[1:] {
			b.newLine()
		}
	}
	b.column += len(lines[len(lines)-1])
}

// AddEdit maps replacement content back to a single original position. It emits a segment at the start of every generated line content spans except
// a trailing empty one. nameIndex < 0 means no name.
func (b *Builder) AddEdit(content string, loc Position, nameIndex int) {
	if content == "" {
		return
	}
	prev := -1
	for {
		nl := strings.IndexByte(content[prev+1:], '\n')
		if nl < 0 {
			break
		}
		nl += prev + 1
		if nl >= len(content)-1 {
			break
		}
		b.push(b.segment(loc, nameIndex))
		b.newLine()
		prev = nl
	}
	b.push(b.segment(loc, nameIndex))
	b.Advance(content[prev+1:])
}

// AddUnedited maps original[start:end], which appears verbatim in the output, starting at loc. A segment is emitted at the first rune of each line and,
// depending on the resolution, at further runes. forced reports offsets that always receive a segment; it may be nil.
func (b *Builder) AddUnedited(original string, start, end int, loc Position, forced func(offset int) bool) {
	first := true
	inWord := false
	for i := start; i < end; {
		r, size := utf8.DecodeRuneInString(original[i:])
		if r == '\n' {
			loc.Line++
			loc.Column = 0
			b.newLine()
			first = true
			inWord = false
			i += size
			continue
		}
		isForced := forced != nil && forced(i)
		if b.hires != HiresOff || first || isForced {
			seg := Segment{b.column, sourceIndex, loc.Line, loc.Column}
			switch {
			case isForced:
				b.push(seg)
				inWord = isWordRune(r)
			case b.hires == HiresBoundary:
				if isWordRune(r) {
					if !inWord {
						b.push(seg)
						inWord = true
					}
				} else {
					b.push(seg)
					inWord = false
				}
			default:
				b.push(seg)
			}
		}
		loc.Column += size
		b.column += size
		first = false
		i += size
	}
}

// Mappings returns the recorded segments. The result shares memory with the Builder.
func (b *Builder) Mappings() Mappings {
	return b.raw
}

func (b *Builder) segment(loc Position, nameIndex int) Segment {
	seg := Segment{b.column, sourceIndex, loc.Line, loc.Column}
	if nameIndex >= 0 {
		seg = append(seg, nameIndex)
	}
	return seg
}

func (b *Builder) push(seg Segment) {
	b.raw[b.line] = append(b.raw[b.line], seg)
}

func (b *Builder) newLine() {
	b.line++
	b.raw = append(b.raw, Line{})
	b.column = 0
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Package uni measures terminal display width of text for monospace output.
package uni

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

// Options control width calculation. A nil *Options assumes a non East Asian locale.
type Options struct {
	EastAsianWidth   bool // treat ambiguous East Asian code points as 2 wide. Use for CJK locales.
	TreatEmojiAsWide bool // only considered if EastAsianWidth
}

// TextWidth returns the width of s in terminal columns.
func TextWidth(s string, opts *Options) int {
	return condition(opts).StringWidth(s)
}

// RuneWidth returns the width of r in terminal columns.
func RuneWidth(r rune, opts *Options) int {
	return condition(opts).RuneWidth(r)
}

// Iterator walks the grapheme clusters of a string.
type Iterator struct {
	iter graphemes.Iterator[string]
	cond *runewidth.Condition
}

// NewGraphemeIterator returns an Iterator over s.
func NewGraphemeIterator(s string, opts *Options) *Iterator {
	return &Iterator{iter: graphemes.FromString(s), cond: condition(opts)}
}

func (it *Iterator) Next() bool    { return it.iter.Next() }
func (it *Iterator) Value() string { return it.iter.Value() }

// Start and End are the byte range of the current cluster.
func (it *Iterator) Start() int { return it.iter.Start() }
func (it *Iterator) End() int   { return it.iter.End() }

// TextWidth returns the width of the current cluster.
func (it *Iterator) TextWidth() int {
	return it.cond.StringWidth(it.iter.Value())
}

// Caret returns a marker line that points at byte offset in line when printed directly below it. Tabs before offset are kept so the marker lines up
// whatever the terminal's tab stops. The marker is as wide as the cluster at offset, and at least one column. An offset inside a cluster points at that
// cluster.
func Caret(line string, offset int, opts *Options) string {
	var sb strings.Builder
	width := 1
	it := NewGraphemeIterator(line, opts)
	for it.Next() {
		if it.End() <= offset {
			if it.Value() == "\t" {
				sb.WriteByte('\t')
			} else {
				sb.WriteString(strings.Repeat(" ", it.TextWidth()))
			}
			continue
		}
		width = max(1, it.TextWidth())
		break
	}
	if offset > len(line) {
		sb.WriteString(strings.Repeat(" ", offset-len(line)))
	}
	sb.WriteString(strings.Repeat("^", width))
	return sb.String()
}

func condition(opts *Options) *runewidth.Condition {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	cond.StrictEmojiNeutral = true
	if opts == nil {
		return cond
	}
	cond.EastAsianWidth = opts.EastAsianWidth
	if opts.EastAsianWidth && opts.TreatEmojiAsWide {
		cond.StrictEmojiNeutral = false
	}
	return cond
}

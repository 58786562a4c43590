// Package editdiff diffs an original text against its edited rendering.
//
// A Diff covers both texts completely: concatenating Hunk.Old over all hunks gives Diff.Old, and likewise for New. Changed hunks carry per-line detail,
// and changed lines carry intra-line spans. Lines keep their trailing '\n'; spans never contain one.
package editdiff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Op is how a piece of text changed.
type Op int

const (
	OpEqual Op = iota
	OpInsert
	OpDelete
	OpReplace
)

func (op Op) String() string {
	switch op {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	}
	return "equal"
}

// Diff is the change from Old to New.
type Diff struct {
	Old   string
	New   string
	Hunks []Hunk
}

// Hunk is a run of whole lines with the same Op. Lines is nil for OpEqual.
type Hunk struct {
	Op    Op
	Old   string
	New   string
	Lines []Line
}

// Line pairs one old line with one new line. Spans is nil for OpEqual.
type Line struct {
	Op    Op
	Old   string
	New   string
	Spans []Span
}

// Span is a piece of a line.
type Span struct {
	Op  Op
	Old string
	New string
}

// Stats counts changed lines.
type Stats struct {
	Added   int
	Removed int
}

func opFor(oldText, newText string) Op {
	switch {
	case oldText == newText:
		return OpEqual
	case oldText == "":
		return OpInsert
	case newText == "":
		return OpDelete
	}
	return OpReplace
}

// Compute diffs oldText against newText line by line.
func Compute(oldText, newText string) Diff {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToRunes(oldText, newText)
	diffs := dmp.DiffCleanupMerge(dmp.DiffMainRunes(a, b, false))

	d := Diff{Old: oldText, New: newText}
	var dels, ins []string
	flush := func() {
		if len(dels) == 0 && len(ins) == 0 {
			return
		}
		h := Hunk{Old: strings.Join(dels, ""), New: strings.Join(ins, "")}
		h.Op = opFor(h.Old, h.New)
		for i := 0; i < max(len(dels), len(ins)); i++ {
			var o, n string
			if i < len(dels) {
				o = dels[i]
			}
			if i < len(ins) {
				n = ins[i]
			}
			h.Lines = append(h.Lines, diffLine(dmp, o, n))
		}
		d.Hunks = append(d.Hunks, h)
		dels, ins = nil, nil
	}

	for _, df := range diffs {
		var lines []string
		for _, r := range df.Text {
			lines = append(lines, lineArray[r])
		}
		switch df.Type {
		case diffmatchpatch.DiffDelete:
			dels = append(dels, lines...)
		case diffmatchpatch.DiffInsert:
			ins = append(ins, lines...)
		default:
			flush()
			text := strings.Join(lines, "")
			d.Hunks = append(d.Hunks, Hunk{Op: OpEqual, Old: text, New: text})
		}
	}
	flush()
	return d
}

func diffLine(dmp *diffmatchpatch.DiffMatchPatch, oldLine, newLine string) Line {
	l := Line{Op: opFor(oldLine, newLine), Old: oldLine, New: newLine}
	if l.Op == OpEqual {
		return l
	}
	oldBody := strings.TrimSuffix(oldLine, "\n")
	newBody := strings.TrimSuffix(newLine, "\n")
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(oldBody, newBody, false))
	for _, df := range diffs {
		var sp Span
		switch df.Type {
		case diffmatchpatch.DiffDelete:
			sp = Span{Op: OpDelete, Old: df.Text}
		case diffmatchpatch.DiffInsert:
			sp = Span{Op: OpInsert, New: df.Text}
		default:
			sp = Span{Op: OpEqual, Old: df.Text, New: df.Text}
		}
		// A deletion followed by an insertion reads as one replacement.
		if n := len(l.Spans); n > 0 && sp.Op == OpInsert && l.Spans[n-1].Op == OpDelete {
			l.Spans[n-1].Op = OpReplace
			l.Spans[n-1].New = sp.New
			continue
		}
		l.Spans = append(l.Spans, sp)
	}
	if l.Spans == nil {
		l.Spans = []Span{}
	}
	return l
}

// HasChanges reports whether Old and New differ.
func (d Diff) HasChanges() bool {
	return d.Old != d.New
}

// Stats counts added and removed lines. A replaced line counts as both.
func (d Diff) Stats() Stats {
	var s Stats
	for _, h := range d.Hunks {
		for _, l := range h.Lines {
			if l.Old != "" {
				s.Removed++
			}
			if l.New != "" {
				s.Added++
			}
		}
	}
	return s
}

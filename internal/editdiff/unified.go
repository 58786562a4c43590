package editdiff

import (
	"fmt"
	"strings"
)

const (
	ansiReset   = "\x1b[0m"
	ansiRed     = "\x1b[31m"
	ansiGreen   = "\x1b[32m"
	ansiMagenta = "\x1b[35m"
	ansiHeader  = "\x1b[1;36m"
)

type unifiedLine struct {
	tag  byte // ' ', '-', or '+'
	text string
}

// Unified renders d as a unified diff with context lines around each change. It returns "" when nothing changed. With color, ANSI escapes mark
// headers and changed lines.
func (d Diff) Unified(oldName, newName string, context int, color bool) string {
	if !d.HasChanges() {
		return ""
	}
	context = max(context, 0)
	paint := func(s, code string) string {
		if !color {
			return s
		}
		return code + s + ansiReset
	}

	lines := d.unifiedLines()
	var sb strings.Builder
	sb.WriteString(paint("--- "+oldName, ansiHeader) + "\n")
	sb.WriteString(paint("+++ "+newName, ansiHeader) + "\n")

	for start := 0; start < len(lines); {
		first := nextChange(lines, start)
		if first < 0 {
			break
		}
		// Extend the group while the unchanged gap to the next change is small enough to share context.
		last := first
		for {
			next := nextChange(lines, last+1)
			if next < 0 || next-last-1 > 2*context {
				break
			}
			last = next
		}
		for last+1 < len(lines) && lines[last+1].tag != ' ' {
			last++
		}
		from := max(0, first-context)
		to := min(len(lines), last+context+1)

		oldStart, newStart := 1, 1
		for _, l := range lines[:from] {
			if l.tag != '+' {
				oldStart++
			}
			if l.tag != '-' {
				newStart++
			}
		}
		var oldCount, newCount int
		for _, l := range lines[from:to] {
			if l.tag != '+' {
				oldCount++
			}
			if l.tag != '-' {
				newCount++
			}
		}
		header := fmt.Sprintf("@@ -%s +%s @@", hunkRange(oldStart, oldCount), hunkRange(newStart, newCount))
		sb.WriteString(paint(header, ansiMagenta) + "\n")
		for _, l := range lines[from:to] {
			text := string(l.tag) + l.text
			switch l.tag {
			case '-':
				text = paint(text, ansiRed)
			case '+':
				text = paint(text, ansiGreen)
			}
			sb.WriteString(text + "\n")
		}
		start = to
	}
	return sb.String()
}

// unifiedLines flattens d into tagged lines. Within a changed hunk all removals come before all additions.
func (d Diff) unifiedLines() []unifiedLine {
	var out []unifiedLine
	for _, h := range d.Hunks {
		if h.Op == OpEqual {
			for _, l := range splitLines(h.Old) {
				out = append(out, unifiedLine{' ', l})
			}
			continue
		}
		for _, l := range h.Lines {
			if l.Old != "" {
				out = append(out, unifiedLine{'-', strings.TrimSuffix(l.Old, "\n")})
			}
		}
		for _, l := range h.Lines {
			if l.New != "" {
				out = append(out, unifiedLine{'+', strings.TrimSuffix(l.New, "\n")})
			}
		}
	}
	return out
}

func nextChange(lines []unifiedLine, from int) int {
	for i := from; i < len(lines); i++ {
		if lines[i].tag != ' ' {
			return i
		}
	}
	return -1
}

// hunkRange formats a "start,count" range the way diff(1) does: a count of 1 is implied, and an empty range starts at the line before it.
func hunkRange(start, count int) string {
	switch count {
	case 0:
		return fmt.Sprintf("%d,0", start-1)
	case 1:
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d,%d", start, count)
}

// splitLines splits text after each '\n', dropping the newlines. A final line without '\n' is kept.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\n")
	}
	return lines
}

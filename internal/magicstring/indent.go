package magicstring

import (
	"strings"
)

// IndentOptions control Indent.
type IndentOptions struct {
	// Exclude lists original ranges whose lines are not indented. nil falls back to Options.IndentExclusionRanges.
	Exclude []Range

	// IndentStart controls whether the first line is indented. nil means true.
	IndentStart *bool
}

// Indent prefixes every non-empty line of the output with prefix. An empty prefix is a no-op.
func (s *MagicString) Indent(prefix string, opts IndentOptions) {
	if prefix == "" {
		return
	}

	exclude := opts.Exclude
	if exclude == nil {
		exclude = s.opts.IndentExclusionRanges
	}
	excluded := func(i int) bool {
		for _, r := range exclude {
			if r.Start <= i && i < r.End {
				return true
			}
		}
		return false
	}

	indentNext := opts.IndentStart == nil || *opts.IndentStart

	s.intro, indentNext = indentText(s.intro, prefix, indentNext)

	for id := s.first; id != none; id = s.chunks[id].next {
		c := &s.chunks[id]
		c.intro, indentNext = indentText(c.intro, prefix, indentNext)
		if c.edited {
			if !excluded(c.start) {
				c.content, indentNext = indentText(c.content, prefix, indentNext)
			}
		} else {
			id, indentNext = s.indentOriginal(id, prefix, indentNext, excluded)
		}
		c = &s.chunks[id]
		c.outro, indentNext = indentText(c.outro, prefix, indentNext)
	}

	s.outro, _ = indentText(s.outro, prefix, indentNext)
}

// indentOriginal indents the unedited chunk id, splitting it at each line start that needs the prefix. It returns the last chunk the original range
// ended up in.
func (s *MagicString) indentOriginal(id int, prefix string, indentNext bool, excluded func(int) bool) (int, bool) {
	start, end := s.chunks[id].start, s.chunks[id].end
	for i := start; i < end; i++ {
		if excluded(i) {
			continue
		}
		switch ch := s.original[i]; {
		case ch == '\n':
			indentNext = true
		case ch != '\r' && indentNext:
			indentNext = false
			if i != start {
				// The outro moves to the new tail chunk.
				id = s.cutChunk(id, i)
			}
			s.chunks[id].appendRight(prefix)
		}
	}
	return id, indentNext
}

// IndentAuto is Indent with the prefix guessed from the original text.
func (s *MagicString) IndentAuto(opts IndentOptions) {
	s.Indent(GuessIndent(s.original), opts)
}

// GuessIndent returns the indentation unit of text: a tab when tab-indented lines are at least as common as lines indented with two or more spaces (or
// when no line is indented), otherwise the smallest such run of spaces.
func GuessIndent(text string) string {
	var tabbed, spaced int
	minSpaces := -1
	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "\t"):
			tabbed++
		case strings.HasPrefix(line, "  "):
			spaced++
			n := len(line) - len(strings.TrimLeft(line, " "))
			if minSpaces < 0 || n < minSpaces {
				minSpaces = n
			}
		}
	}
	if tabbed >= spaced {
		return "\t"
	}
	return strings.Repeat(" ", minSpaces)
}

// indentText prefixes each line of text that holds something other than a line break. indentNext says whether the first line is due an indent; the
// returned value says the same for whatever follows text.
func indentText(text, prefix string, indentNext bool) (string, bool) {
	if text == "" {
		return text, indentNext
	}
	var sb strings.Builder
	for i := 0; i < len(text); i++ {
		switch ch := text[i]; {
		case ch == '\n':
			indentNext = true
		case ch != '\r' && indentNext:
			sb.WriteString(prefix)
			indentNext = false
		}
		sb.WriteByte(text[i])
	}
	return sb.String(), indentNext
}

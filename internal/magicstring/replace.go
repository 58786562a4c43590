package magicstring

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

type patternKind int

const (
	literalPattern patternKind = iota
	re2Pattern
	ecmaPattern
)

// Pattern is what Replace and ReplaceAll search for: a literal string or a compiled regular expression. Build one with Literal, Regexp, or Regexp2.
type Pattern struct {
	kind    patternKind
	literal string
	re      *regexp.Regexp
	ecma    *regexp2.Regexp
	global  bool
}

// Literal matches text exactly. The replacement is used verbatim.
func Literal(text string) Pattern {
	return Pattern{kind: literalPattern, literal: text, global: true}
}

// Regexp matches re. global marks the pattern usable with ReplaceAll.
func Regexp(re *regexp.Regexp, global bool) Pattern {
	return Pattern{kind: re2Pattern, re: re, global: global}
}

// Regexp2 matches re, which may use features RE2 lacks (lookaround, backreferences). Compile it with regexp2.ECMAScript for JavaScript semantics.
func Regexp2(re *regexp2.Regexp, global bool) Pattern {
	return Pattern{kind: ecmaPattern, ecma: re, global: global}
}

// Global reports whether p may be passed to ReplaceAll. Literal patterns always may.
func (p Pattern) Global() bool {
	return p.global
}

func (p Pattern) String() string {
	switch p.kind {
	case re2Pattern:
		return "/" + p.re.String() + "/"
	case ecmaPattern:
		return "/" + p.ecma.String() + "/"
	}
	return strconv.Quote(p.literal)
}

// Replacement is a Template or a ReplacerFunc.
type Replacement interface {
	isReplacement()
}

// Template is replacement text. For regular expression patterns, $0..$N insert capture groups, $& inserts the match, and $$ inserts a dollar sign; a
// group number with no such group is kept literally.
type Template string

// ReplacerFunc computes a replacement per match. It is not supported; passing one fails with ErrUnsupportedReplacer.
type ReplacerFunc func(match string, groups []string, offset int) string

func (Template) isReplacement()     {}
func (ReplacerFunc) isReplacement() {}

type match struct {
	start  int
	end    int
	groups []string // groups[0] is the whole match
}

// Replace overwrites the first match of p in the original text.
func (s *MagicString) Replace(p Pattern, replacement Replacement) error {
	return s.replace(p, replacement, false)
}

// ReplaceAll overwrites every non-overlapping match of p in the original text. Regular expression patterns must be global.
func (s *MagicString) ReplaceAll(p Pattern, replacement Replacement) error {
	if !p.global {
		return fmt.Errorf("%w: %s", ErrNonGlobalPattern, p)
	}
	return s.replace(p, replacement, true)
}

func (s *MagicString) replace(p Pattern, replacement Replacement, all bool) error {
	tmpl, ok := replacement.(Template)
	if !ok {
		return ErrUnsupportedReplacer
	}

	matches, err := p.find(s.original, all)
	if err != nil {
		return err
	}

	// Work on a clone so a failing match leaves s untouched.
	c := s.Clone()
	for _, m := range matches {
		if m.start == m.end {
			continue
		}
		text := string(tmpl)
		if p.kind != literalPattern {
			text = expandTemplate(text, m.groups)
		}
		if text == m.groups[0] {
			continue
		}
		if err := c.Overwrite(m.start, m.end, text, OverwriteOptions{}); err != nil {
			return fmt.Errorf("replace %s at [%d, %d): %w", p, m.start, m.end, err)
		}
	}
	*s = *c
	return nil
}

func (p Pattern) find(text string, all bool) ([]match, error) {
	switch p.kind {
	case re2Pattern:
		n := 1
		if all {
			n = -1
		}
		var matches []match
		for _, loc := range p.re.FindAllStringSubmatchIndex(text, n) {
			m := match{start: loc[0], end: loc[1]}
			for g := 0; g < len(loc); g += 2 {
				if loc[g] < 0 {
					m.groups = append(m.groups, "")
				} else {
					m.groups = append(m.groups, text[loc[g]:loc[g+1]])
				}
			}
			matches = append(matches, m)
		}
		return matches, nil
	case ecmaPattern:
		return p.findECMA(text, all)
	}

	if p.literal == "" {
		return nil, nil
	}
	var matches []match
	for offset := 0; offset <= len(text); {
		i := strings.Index(text[offset:], p.literal)
		if i < 0 {
			break
		}
		start := offset + i
		end := start + len(p.literal)
		matches = append(matches, match{start: start, end: end, groups: []string{p.literal}})
		if !all {
			break
		}
		offset = end
	}
	return matches, nil
}

// findECMA runs a regexp2 pattern. regexp2 reports rune indexes, which are converted to byte offsets.
func (p Pattern) findECMA(text string, all bool) ([]match, error) {
	byteOffset := make([]int, 0, utf8.RuneCountInString(text)+1)
	for i := range text {
		byteOffset = append(byteOffset, i)
	}
	byteOffset = append(byteOffset, len(text))

	var matches []match
	m, err := p.ecma.FindStringMatch(text)
	for ; m != nil && err == nil; m, err = p.ecma.FindNextMatch(m) {
		mm := match{start: byteOffset[m.Index], end: byteOffset[m.Index+m.Length]}
		for _, g := range m.Groups() {
			if len(g.Captures) == 0 {
				mm.groups = append(mm.groups, "")
			} else {
				mm.groups = append(mm.groups, g.String())
			}
		}
		matches = append(matches, mm)
		if !all {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", p, err)
	}
	return matches, nil
}

// expandTemplate substitutes $$, $&, and $N in tmpl.
func expandTemplate(tmpl string, groups []string) string {
	if !strings.Contains(tmpl, "$") {
		return tmpl
	}
	var sb strings.Builder
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] != '$' || i+1 == len(tmpl) {
			sb.WriteByte(tmpl[i])
			continue
		}
		next := tmpl[i+1]
		switch {
		case next == '$':
			sb.WriteByte('$')
			i++
		case next == '&':
			sb.WriteString(groups[0])
			i++
		case next >= '0' && next <= '9':
			j := i + 1
			for j < len(tmpl) && tmpl[j] >= '0' && tmpl[j] <= '9' {
				j++
			}
			n, err := strconv.Atoi(tmpl[i+1 : j])
			if err == nil && n < len(groups) {
				sb.WriteString(groups[n])
			} else {
				sb.WriteString(tmpl[i:j])
			}
			i = j - 1
		default:
			sb.WriteByte('$')
		}
	}
	return sb.String()
}

package editscript

import (
	"fmt"
	"regexp"

	"github.com/codalotl/magicstring/internal/magicstring"
	"github.com/codalotl/magicstring/internal/simplelogger"
	"github.com/dlclark/regexp2"
)

type field int

const (
	fStart field = 1 << iota
	fEnd
	fIndex
	fMatch // Pattern or Regexp
)

// ops lists every supported op with the position fields it requires.
var ops = map[string]field{
	"append":               0,
	"prepend":              0,
	"appendLeft":           fIndex,
	"appendRight":          fIndex,
	"prependLeft":          fIndex,
	"prependRight":         fIndex,
	"insert":               fIndex,
	"insertLeft":           fIndex,
	"insertRight":          fIndex,
	"overwrite":            fStart | fEnd,
	"update":               fStart | fEnd,
	"remove":               fStart | fEnd,
	"reset":                fStart | fEnd,
	"move":                 fStart | fEnd | fIndex,
	"snip":                 fStart | fEnd,
	"trim":                 0,
	"trimStart":            0,
	"trimEnd":              0,
	"trimLines":            0,
	"indent":               0,
	"replace":              fMatch,
	"replaceAll":           fMatch,
	"addSourcemapLocation": fIndex,
}

func (e Edit) validate() error {
	need, ok := ops[e.Op]
	if !ok {
		return fmt.Errorf("%w: unknown op %q", ErrInvalidEdit, e.Op)
	}
	if need&fStart != 0 && e.Start == nil {
		return fmt.Errorf("%w: missing start", ErrInvalidEdit)
	}
	if need&fEnd != 0 && e.End == nil {
		return fmt.Errorf("%w: missing end", ErrInvalidEdit)
	}
	if need&fIndex != 0 && e.Index == nil {
		return fmt.Errorf("%w: missing index", ErrInvalidEdit)
	}
	if need&fMatch != 0 && e.Pattern == "" && e.Regexp == "" {
		return fmt.Errorf("%w: missing pattern or regexp", ErrInvalidEdit)
	}
	switch e.Flavor {
	case "", "re2", "ecmascript":
	default:
		return fmt.Errorf("%w: unknown flavor %q", ErrInvalidEdit, e.Flavor)
	}
	return nil
}

// Apply runs the script's edits in order against a clone of s and returns the result. s itself is never modified. A snip edit replaces the working
// string with the snipped one, so later offsets still refer to the original text.
func Apply(s *magicstring.MagicString, script Script) (*magicstring.MagicString, error) {
	ms := s.Clone()
	for i, e := range script.Edits {
		simplelogger.Log("editscript: edit #%d %s", i+1, e.Op)
		next, err := apply(ms, e)
		if err != nil {
			simplelogger.Log("editscript: edit #%d %s failed: %v", i+1, e.Op, err)
			return nil, fmt.Errorf("edit #%d (%s): %w", i+1, e.Op, err)
		}
		ms = next
	}
	return ms, nil
}

func apply(ms *magicstring.MagicString, e Edit) (*magicstring.MagicString, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}
	opts := magicstring.OverwriteOptions{StoreName: e.StoreName, ContentOnly: e.ContentOnly, Overwrite: e.Overwrite}

	var err error
	switch e.Op {
	case "append":
		ms.Append(e.Content)
	case "prepend":
		ms.Prepend(e.Content)
	case "appendLeft":
		err = ms.AppendLeft(*e.Index, e.Content)
	case "appendRight":
		err = ms.AppendRight(*e.Index, e.Content)
	case "prependLeft":
		err = ms.PrependLeft(*e.Index, e.Content)
	case "prependRight":
		err = ms.PrependRight(*e.Index, e.Content)
	case "insert":
		err = ms.Insert(*e.Index, e.Content)
	case "insertLeft":
		err = ms.InsertLeft(*e.Index, e.Content)
	case "insertRight":
		err = ms.InsertRight(*e.Index, e.Content)
	case "overwrite":
		err = ms.Overwrite(*e.Start, *e.End, e.Content, opts)
	case "update":
		err = ms.Update(*e.Start, *e.End, e.Content, opts)
	case "remove":
		err = ms.Remove(*e.Start, *e.End)
	case "reset":
		err = ms.Reset(*e.Start, *e.End)
	case "move":
		err = ms.Move(*e.Start, *e.End, *e.Index)
	case "snip":
		return ms.Snip(*e.Start, *e.End)
	case "trim":
		err = ms.Trim(e.Chars)
	case "trimStart":
		err = ms.TrimStart(e.Chars)
	case "trimEnd":
		err = ms.TrimEnd(e.Chars)
	case "trimLines":
		err = ms.TrimLines()
	case "indent":
		iopts := magicstring.IndentOptions{IndentStart: e.IndentStart}
		if e.Exclude != nil {
			iopts.Exclude = make([]magicstring.Range, 0, len(e.Exclude))
			for _, r := range e.Exclude {
				iopts.Exclude = append(iopts.Exclude, magicstring.Range{Start: r[0], End: r[1]})
			}
		}
		if e.Content == "" {
			ms.IndentAuto(iopts)
		} else {
			ms.Indent(e.Content, iopts)
		}
	case "replace", "replaceAll":
		var p magicstring.Pattern
		p, err = e.pattern()
		if err != nil {
			return nil, err
		}
		if e.Op == "replace" {
			err = ms.Replace(p, magicstring.Template(e.Content))
		} else {
			err = ms.ReplaceAll(p, magicstring.Template(e.Content))
		}
	case "addSourcemapLocation":
		ms.AddSourcemapLocation(*e.Index)
	}
	if err != nil {
		return nil, err
	}
	return ms, nil
}

func (e Edit) pattern() (magicstring.Pattern, error) {
	if e.Regexp == "" {
		return magicstring.Literal(e.Pattern), nil
	}
	if e.Flavor == "ecmascript" {
		re, err := regexp2.Compile(e.Regexp, regexp2.ECMAScript)
		if err != nil {
			return magicstring.Pattern{}, fmt.Errorf("%w: %v", ErrInvalidEdit, err)
		}
		return magicstring.Regexp2(re, e.Global), nil
	}
	re, err := regexp.Compile(e.Regexp)
	if err != nil {
		return magicstring.Pattern{}, fmt.Errorf("%w: %v", ErrInvalidEdit, err)
	}
	return magicstring.Regexp(re, e.Global), nil
}

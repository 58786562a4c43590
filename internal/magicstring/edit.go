package magicstring

import (
	"fmt"
	"strings"
	"unicode"
)

// OverwriteOptions control Overwrite and Update.
type OverwriteOptions struct {
	// ContentOnly keeps text inserted at the edges of the range. Only Overwrite reads it; Update always keeps such text unless Overwrite is set.
	ContentOnly bool

	// StoreName records the replaced original text in the map's names table.
	StoreName bool

	// Overwrite permits replacing content that was already overwritten. Update also clears edge inserts when it is set. Overwrite sets it to
	// !ContentOnly.
	Overwrite bool
}

// Overwrite replaces original[start:end] with content. Text inserted at the edges of the range is dropped unless opts.ContentOnly is set. Negative offsets
// count from the end.
func (s *MagicString) Overwrite(start, end int, content string, opts OverwriteOptions) error {
	opts.Overwrite = !opts.ContentOnly
	return s.update(start, end, content, opts)
}

// Update replaces original[start:end] with content, keeping text inserted at the edges of the range. It fails with ErrAlreadyEdited if part of the range
// was already overwritten, unless opts.Overwrite is set (which also drops the edge inserts).
func (s *MagicString) Update(start, end int, content string, opts OverwriteOptions) error {
	return s.update(start, end, content, opts)
}

func (s *MagicString) update(start, end int, content string, opts OverwriteOptions) error {
	start, end, err := s.normalizeRange(start, end)
	if err != nil {
		return err
	}
	if start == end {
		return fmt.Errorf("%w: cannot overwrite a zero-length range, use AppendLeft or PrependRight instead", ErrOutOfRange)
	}
	if err := s.split(start); err != nil {
		return err
	}
	if err := s.split(end); err != nil {
		return err
	}

	first := s.byStart[start]
	last := s.byEnd[end]
	for id := first; ; id = s.chunks[id].next {
		c := &s.chunks[id]
		if !opts.Overwrite && c.overwritten() {
			return fmt.Errorf("%w: [%d, %d) overlaps %q", ErrAlreadyEdited, start, end, c.content)
		}
		if id == last {
			break
		}
		if next, ok := s.byStart[c.end]; !ok || next != c.next {
			return fmt.Errorf("%w: [%d, %d)", ErrOverwriteAcrossMove, start, end)
		}
	}

	// Only a single token is recorded as a name.
	var name string
	storeName := opts.StoreName && !strings.ContainsFunc(s.original[start:end], unicode.IsSpace)
	if storeName {
		name = s.original[start:end]
		s.addName(name)
	}

	keepInserts := !opts.Overwrite
	trailing := s.chunks[last].outro
	for id := first; id != last; {
		id = s.chunks[id].next
		s.chunks[id].edit("", false, "", false)
	}
	s.chunks[first].edit(content, storeName, name, keepInserts)
	if keepInserts {
		s.chunks[last].outro = trailing
	}
	return nil
}

// Remove deletes original[start:end] from the output. Text inserted at the outer edges of the range (PrependRight(start), AppendLeft(end)) survives;
// text inserted strictly inside it is dropped.
func (s *MagicString) Remove(start, end int) error {
	start, end, err := s.normalizeRange(start, end)
	if err != nil {
		return err
	}
	if start == end {
		return nil
	}
	if err := s.split(start); err != nil {
		return err
	}
	if err := s.split(end); err != nil {
		return err
	}

	first := s.byStart[start]
	last := s.byEnd[end]
	for id := first; ; {
		c := &s.chunks[id]
		c.edit("", false, "", true)
		if id != first {
			c.intro = ""
		}
		if id == last {
			return nil
		}
		c.outro = ""
		id = s.byStart[c.end]
	}
}

// Reset restores removed text in original[start:end] and drops text inserted within the range. Text inserted at the outer edges of the range
// (PrependRight(start), AppendLeft(end)) survives, as it does for Remove. Overwritten chunks are left as they are.
func (s *MagicString) Reset(start, end int) error {
	start, end, err := s.normalizeRange(start, end)
	if err != nil {
		return err
	}
	if start == end {
		return nil
	}
	if err := s.split(start); err != nil {
		return err
	}
	if err := s.split(end); err != nil {
		return err
	}

	first := s.byStart[start]
	last := s.byEnd[end]
	for id := first; ; {
		c := &s.chunks[id]
		if !c.overwritten() {
			intro, outro := c.intro, c.outro
			c.reset()
			if id == first {
				c.intro = intro
			}
			if id == last {
				c.outro = outro
			}
		}
		if c.end >= end {
			return nil
		}
		id = s.byStart[c.end]
	}
}

// Move relocates original[start:end] so it renders immediately before the text originally at index (or at the end when index is the length). Text
// attached to the moved chunks moves with them. Negative start and end count from the end; moving an empty range is a no-op.
func (s *MagicString) Move(start, end, index int) error {
	start, end, err := s.normalizeRange(start, end)
	if err != nil {
		return err
	}
	if err := s.checkIndex(index); err != nil {
		return err
	}
	if index >= start && index <= end {
		return fmt.Errorf("%w: move [%d, %d) to %d", ErrInvalidMove, start, end, index)
	}
	if start == end {
		return nil
	}
	for _, i := range []int{start, end, index} {
		if err := s.split(i); err != nil {
			return err
		}
	}

	first := s.byStart[start]
	last := s.byEnd[end]
	oldLeft := s.chunks[first].prev
	oldRight := s.chunks[last].next

	newRight, ok := s.byStart[index]
	if !ok {
		newRight = none
	}
	if newRight == none && last == s.last {
		return nil
	}
	if newRight != none && newRight == oldRight {
		return nil
	}
	newLeft := s.last
	if newRight != none {
		newLeft = s.chunks[newRight].prev
	}

	if oldLeft != none {
		s.chunks[oldLeft].next = oldRight
	}
	if oldRight != none {
		s.chunks[oldRight].prev = oldLeft
	}
	if newLeft != none {
		s.chunks[newLeft].next = first
	}
	if newRight != none {
		s.chunks[newRight].prev = last
	}

	if s.chunks[first].prev == none {
		s.first = s.chunks[last].next
	}
	if s.chunks[last].next == none {
		s.last = s.chunks[first].prev
		if s.last != none {
			s.chunks[s.last].next = none
		}
	}

	s.chunks[first].prev = newLeft
	s.chunks[last].next = newRight
	if newLeft == none {
		s.first = first
	}
	if newRight == none {
		s.last = last
	}
	return nil
}

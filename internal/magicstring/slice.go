package magicstring

import "fmt"

// SliceFrom is Slice(start, s.Len()).
func (s *MagicString) SliceFrom(start int) (string, error) {
	return s.Slice(start, len(s.original))
}

// Slice returns the rendered text between the original offsets start and end, walking chunks in current order. Text moved into the window is included
// and text moved out of it is not. Negative offsets count from the end.
//
// An anchor inside overwritten content fails with ErrSliceStartAnchor or ErrSliceEndAnchor. Anchors inside removed content are allowed. The intro of the
// first chunk is included only when start is exactly its start, and the outro of the last chunk only when end is exactly its end.
func (s *MagicString) Slice(start, end int) (string, error) {
	start, end, err := s.resolveOffsets(start, end)
	if err != nil {
		return "", err
	}

	var result []byte

	id := s.first
	for id != none {
		c := &s.chunks[id]
		if c.start <= start && start < c.end {
			break
		}
		// The end chunk came before the start chunk.
		if c.start < end && c.end >= end {
			return string(result), nil
		}
		id = c.next
	}
	if id != none {
		c := &s.chunks[id]
		if c.overwritten() && c.start != start {
			return "", fmt.Errorf("%w: %d", ErrSliceStartAnchor, start)
		}
	}

	startID := id
	for id != none {
		c := &s.chunks[id]
		if c.intro != "" && (id != startID || c.start == start) {
			result = append(result, c.intro...)
		}
		containsEnd := c.start < end && c.end >= end
		if containsEnd && c.overwritten() && c.end != end {
			return "", fmt.Errorf("%w: %d", ErrSliceEndAnchor, end)
		}

		from := 0
		if id == startID {
			from = start - c.start
		}
		to := len(c.content)
		if containsEnd {
			to = len(c.content) + end - c.end
		}
		result = append(result, clampSlice(c.content, from, to)...)

		if c.outro != "" && (!containsEnd || c.end == end) {
			result = append(result, c.outro...)
		}
		if containsEnd {
			break
		}
		id = c.next
	}
	return string(result), nil
}

// clampSlice is s[from:to] with both bounds clamped into s. Removed chunks have empty content but a non-empty original range.
func clampSlice(s string, from, to int) string {
	from = max(0, min(from, len(s)))
	to = max(from, min(to, len(s)))
	return s[from:to]
}

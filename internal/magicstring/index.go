package magicstring

import (
	"fmt"

	"github.com/codalotl/magicstring/internal/sourcemap"
)

// split makes index a chunk boundary. It is a no-op if index already is one or lies outside the original text.
func (s *MagicString) split(index int) error {
	if _, ok := s.byStart[index]; ok {
		return nil
	}
	if _, ok := s.byEnd[index]; ok {
		return nil
	}

	// Walk original order from the most recent split; edits tend to cluster.
	id := s.lastSearched
	forward := index > s.chunks[id].end
	for id != none {
		c := &s.chunks[id]
		if c.contains(index) {
			return s.splitChunk(id, index)
		}
		var ok bool
		if forward {
			id, ok = s.byStart[c.end]
		} else {
			id, ok = s.byEnd[c.start]
		}
		if !ok {
			id = none
		}
	}
	return nil
}

// splitChunk splits chunk id at index into [start, index) and [index, end). The tail takes the outro and the edit state; the head keeps the intro.
func (s *MagicString) splitChunk(id, index int) error {
	if c := &s.chunks[id]; c.overwritten() {
		loc := sourcemap.NewLocator(s.original).Locate(index)
		return fmt.Errorf("%w (%d:%d in %q)", ErrSplitOnEditedChunk, loc.Line+1, loc.Column, c.original)
	}
	s.cutChunk(id, index)
	return nil
}

// cutChunk is splitChunk for a chunk that is not overwritten. It returns the id of the new tail chunk.
func (s *MagicString) cutChunk(id, index int) int {
	c := s.chunks[id]
	cut := index - c.start
	tail := newChunk(index, c.end, c.original[cut:])
	tail.outro = c.outro
	tail.prev = id
	tail.next = c.next
	if c.edited {
		tail.content = ""
		tail.edited = true
		tail.storeName = c.storeName
		tail.name = c.name
		c.content = ""
	} else {
		c.content = c.original[:cut]
	}
	c.original = c.original[:cut]
	c.end = index
	c.outro = ""

	tailID := len(s.chunks)
	c.next = tailID
	s.chunks[id] = c
	s.chunks = append(s.chunks, tail)
	if tail.next != none {
		s.chunks[tail.next].prev = tailID
	}

	s.byEnd[index] = id
	s.byStart[index] = tailID
	s.byEnd[tail.end] = tailID
	if id == s.last {
		s.last = tailID
	}
	s.lastSearched = id
	return tailID
}

package magicstring

import (
	"fmt"

	"github.com/codalotl/magicstring/internal/simplelogger"
)

// Append adds content after everything else. Later calls render after earlier ones.
func (s *MagicString) Append(content string) {
	s.outro += content
}

// Prepend adds content before everything else. Later calls render before earlier ones.
func (s *MagicString) Prepend(content string) {
	s.intro = content + s.intro
}

// AppendLeft inserts content at index, attached to the chunk that ends there, so it moves with the text to its left. Repeated calls at the same index
// render in call order.
func (s *MagicString) AppendLeft(index int, content string) error {
	if err := s.locate(index); err != nil {
		return err
	}
	if id, ok := s.byEnd[index]; ok {
		s.chunks[id].appendLeft(content)
	} else {
		s.intro += content
	}
	return nil
}

// PrependLeft is AppendLeft, except repeated calls render in reverse call order.
func (s *MagicString) PrependLeft(index int, content string) error {
	if err := s.locate(index); err != nil {
		return err
	}
	if id, ok := s.byEnd[index]; ok {
		s.chunks[id].prependLeft(content)
	} else {
		s.intro = content + s.intro
	}
	return nil
}

// AppendRight inserts content at index, attached to the chunk that starts there, so it moves with the text to its right. Repeated calls at the same index
// render in call order.
func (s *MagicString) AppendRight(index int, content string) error {
	if err := s.locate(index); err != nil {
		return err
	}
	if id, ok := s.byStart[index]; ok {
		s.chunks[id].appendRight(content)
	} else {
		s.outro += content
	}
	return nil
}

// PrependRight is AppendRight, except repeated calls render in reverse call order.
func (s *MagicString) PrependRight(index int, content string) error {
	if err := s.locate(index); err != nil {
		return err
	}
	if id, ok := s.byStart[index]; ok {
		s.chunks[id].prependRight(content)
	} else {
		s.outro = content + s.outro
	}
	return nil
}

// Insert always fails with ErrDeprecatedAPI.
func (s *MagicString) Insert(index int, content string) error {
	return fmt.Errorf("%w: Insert(...) is deprecated, use PrependRight(...) or AppendLeft(...)", ErrDeprecatedAPI)
}

// InsertLeft is AppendLeft.
//
// Deprecated: use AppendLeft.
func (s *MagicString) InsertLeft(index int, content string) error {
	simplelogger.Warn("magicstring: InsertLeft is deprecated, use AppendLeft")
	return s.AppendLeft(index, content)
}

// InsertRight is PrependRight.
//
// Deprecated: use PrependRight.
func (s *MagicString) InsertRight(index int, content string) error {
	simplelogger.Warn("magicstring: InsertRight is deprecated, use PrependRight")
	return s.PrependRight(index, content)
}

// locate checks index and makes it a chunk boundary.
func (s *MagicString) locate(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	return s.split(index)
}

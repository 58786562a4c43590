package magicstring

import (
	"fmt"
	"regexp"
)

// Trim removes characters matching charClass from both ends of the rendered output. charClass is a regular expression fragment matching one character;
// "" means `\s`.
func (s *MagicString) Trim(charClass string) error {
	start, end, err := trimPatterns(charClass)
	if err != nil {
		return err
	}
	s.trimStart(start)
	s.trimEnd(end)
	return nil
}

// TrimStart is Trim for the start of the output only.
func (s *MagicString) TrimStart(charClass string) error {
	start, _, err := trimPatterns(charClass)
	if err != nil {
		return err
	}
	s.trimStart(start)
	return nil
}

// TrimEnd is Trim for the end of the output only.
func (s *MagicString) TrimEnd(charClass string) error {
	_, end, err := trimPatterns(charClass)
	if err != nil {
		return err
	}
	s.trimEnd(end)
	return nil
}

// TrimLines removes leading and trailing line breaks.
func (s *MagicString) TrimLines() error {
	return s.Trim(`[\r\n]`)
}

func trimPatterns(charClass string) (start, end *regexp.Regexp, err error) {
	if charClass == "" {
		charClass = `\s`
	}
	start, err = regexp.Compile(`^(?:` + charClass + `)+`)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	end, err = regexp.Compile(`(?:` + charClass + `)+$`)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return start, end, nil
}

// trimStart strips rx from the front of the output. It returns true once it hit a non-matching character.
func (s *MagicString) trimStart(rx *regexp.Regexp) bool {
	s.intro = rx.ReplaceAllString(s.intro, "")
	if s.intro != "" {
		return true
	}
	for id := s.first; id != none; id = s.chunks[id].next {
		if s.trimChunkStart(id, rx) {
			return true
		}
	}
	return false
}

func (s *MagicString) trimEnd(rx *regexp.Regexp) bool {
	s.outro = rx.ReplaceAllString(s.outro, "")
	if s.outro != "" {
		return true
	}
	for id := s.last; id != none; id = s.chunks[id].prev {
		if s.trimChunkEnd(id, rx) {
			return true
		}
	}
	return false
}

func (s *MagicString) trimChunkStart(id int, rx *regexp.Regexp) bool {
	c := &s.chunks[id]
	c.intro = rx.ReplaceAllString(c.intro, "")
	if c.intro != "" {
		return true
	}

	trimmed := rx.ReplaceAllString(c.content, "")
	if trimmed == "" {
		c.edit("", false, "", true)
		c.outro = rx.ReplaceAllString(c.outro, "")
		return c.outro != ""
	}
	if trimmed != c.content {
		if c.edited {
			c.content = trimmed
		} else {
			// Unedited content is original text, so the cut is an original offset.
			s.cutChunk(id, c.end-len(trimmed))
			s.chunks[id].edit("", false, "", true)
		}
	}
	return true
}

func (s *MagicString) trimChunkEnd(id int, rx *regexp.Regexp) bool {
	c := &s.chunks[id]
	c.outro = rx.ReplaceAllString(c.outro, "")
	if c.outro != "" {
		return true
	}

	trimmed := rx.ReplaceAllString(c.content, "")
	if trimmed == "" {
		c.edit("", false, "", true)
		c.intro = rx.ReplaceAllString(c.intro, "")
		return c.intro != ""
	}
	if trimmed != c.content {
		if c.edited {
			c.content = trimmed
		} else {
			tail := s.cutChunk(id, c.start+len(trimmed))
			s.chunks[tail].edit("", false, "", true)
		}
	}
	return true
}

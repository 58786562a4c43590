package magicstring

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Range is a half-open interval [Start, End) of original byte offsets.
type Range struct {
	Start int
	End   int
}

// Options configure a MagicString.
type Options struct {
	// Filename names the original source. GenerateMap uses it when GenerateMapOptions.Source is empty.
	Filename string

	// IndentExclusionRanges are excluded from Indent when IndentOptions.Exclude is nil.
	IndentExclusionRanges []Range

	// IgnoreList marks the source in generated maps' x_google_ignoreList.
	IgnoreList bool
}

// MagicString is an original string plus the edits recorded against it.
type MagicString struct {
	original string
	opts     Options

	// intro and outro render before the first chunk and after the last chunk.
	intro string
	outro string

	chunks []chunk
	first  int
	last   int

	byStart      map[int]int
	byEnd        map[int]int
	lastSearched int

	names     []string
	locations map[int]struct{}
}

// New returns a MagicString over original with no edits.
func New(original string, opts Options) *MagicString {
	s := &MagicString{
		original:  original,
		opts:      opts,
		chunks:    []chunk{newChunk(0, len(original), original)},
		byStart:   map[int]int{0: 0},
		byEnd:     map[int]int{len(original): 0},
		locations: map[int]struct{}{},
	}
	s.opts.IndentExclusionRanges = slices.Clone(opts.IndentExclusionRanges)
	return s
}

// Original returns the text s was created from.
func (s *MagicString) Original() string {
	return s.original
}

// Len returns the length of the original text in bytes.
func (s *MagicString) Len() int {
	return len(s.original)
}

// Clone returns an independent deep copy of s.
func (s *MagicString) Clone() *MagicString {
	c := *s
	c.chunks = slices.Clone(s.chunks)
	c.byStart = maps.Clone(s.byStart)
	c.byEnd = maps.Clone(s.byEnd)
	c.names = slices.Clone(s.names)
	c.locations = maps.Clone(s.locations)
	c.opts.IndentExclusionRanges = slices.Clone(s.opts.IndentExclusionRanges)
	return &c
}

// String renders the edited text: the leading buffer, every chunk in current order, then the trailing buffer.
func (s *MagicString) String() string {
	var sb strings.Builder
	sb.WriteString(s.intro)
	for id := s.first; id != none; id = s.chunks[id].next {
		c := &s.chunks[id]
		sb.WriteString(c.intro)
		sb.WriteString(c.content)
		sb.WriteString(c.outro)
	}
	sb.WriteString(s.outro)
	return sb.String()
}

// IsEmpty reports whether s renders to the empty string.
func (s *MagicString) IsEmpty() bool {
	return s.String() == ""
}

// HasChanged reports whether s renders to something other than the original text.
func (s *MagicString) HasChanged() bool {
	return s.original != s.String()
}

// AddSourcemapLocation forces a mapping segment at the original offset index, whatever the map resolution.
func (s *MagicString) AddSourcemapLocation(index int) {
	s.locations[index] = struct{}{}
}

// Snip returns a clone of s with everything outside [start, end) discarded, including text inserted at those chunks. Leading and trailing buffers added
// with Prepend and Append are kept.
func (s *MagicString) Snip(start, end int) (*MagicString, error) {
	start, end, err := s.normalizeRange(start, end)
	if err != nil {
		return nil, err
	}
	c := s.Clone()
	if err := c.discard(0, start); err != nil {
		return nil, err
	}
	if err := c.discard(end, len(c.original)); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *MagicString) discard(start, end int) error {
	if start == end {
		return nil
	}
	if err := s.split(start); err != nil {
		return err
	}
	if err := s.split(end); err != nil {
		return err
	}
	for id := s.byStart[start]; ; {
		c := &s.chunks[id]
		c.edit("", false, "", false)
		if c.end >= end {
			return nil
		}
		id = s.byStart[c.end]
	}
}

// normalizeRange resolves negative offsets from the end of the original and checks 0 <= start <= end <= len.
func (s *MagicString) normalizeRange(start, end int) (int, int, error) {
	start, end, err := s.resolveOffsets(start, end)
	if err != nil {
		return 0, 0, err
	}
	if start > end {
		return 0, 0, fmt.Errorf("%w: start %d is after end %d", ErrOutOfRange, start, end)
	}
	return start, end, nil
}

// resolveOffsets is normalizeRange without the ordering check. After a Move, start may legitimately render after end.
func (s *MagicString) resolveOffsets(start, end int) (int, int, error) {
	n := len(s.original)
	if n > 0 {
		for start < 0 {
			start += n
		}
		for end < 0 {
			end += n
		}
	}
	if start < 0 || end < 0 || start > n || end > n {
		return 0, 0, fmt.Errorf("%w: range [%d, %d) with length %d", ErrOutOfRange, start, end, n)
	}
	return start, end, nil
}

func (s *MagicString) checkIndex(index int) error {
	if index < 0 || index > len(s.original) {
		return fmt.Errorf("%w: index %d with length %d", ErrOutOfRange, index, len(s.original))
	}
	return nil
}

func (s *MagicString) addName(name string) {
	if !slices.Contains(s.names, name) {
		s.names = append(s.names, name)
	}
}

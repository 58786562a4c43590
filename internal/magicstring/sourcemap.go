package magicstring

import (
	"slices"

	"github.com/codalotl/magicstring/internal/sourcemap"
)

// GenerateMapOptions control GenerateMap and GenerateDecodedMap.
type GenerateMapOptions struct {
	// File is the path of the generated file. The map's "file" field is its base name.
	File string

	// Source is the path of the original file. sources[0] is Source relative to File's directory. Empty falls back to Options.Filename, then File.
	Source string

	SourceRoot     string
	IncludeContent bool
	Hires          sourcemap.Hires
}

// GenerateDecodedMap maps the current output back to the original text.
func (s *MagicString) GenerateDecodedMap(opts GenerateMapOptions) *sourcemap.DecodedMap {
	locator := sourcemap.NewLocator(s.original)
	b := sourcemap.NewBuilder(opts.Hires)

	b.Advance(s.intro)
	for id := s.first; id != none; id = s.chunks[id].next {
		c := &s.chunks[id]
		loc := locator.Locate(c.start)
		b.Advance(c.intro)
		if c.edited {
			b.AddEdit(c.content, loc, s.nameIndex(c))
		} else {
			b.AddUnedited(s.original, c.start, c.end, loc, s.forcedLocation)
		}
		b.Advance(c.outro)
	}

	m := &sourcemap.DecodedMap{
		SourceRoot: opts.SourceRoot,
		Sources:    []string{s.sourcePath(opts)},
		Names:      slices.Clone(s.names),
		Mappings:   b.Mappings(),
	}
	if m.Names == nil {
		m.Names = []string{}
	}
	if opts.File != "" {
		m.File = sourcemap.Basename(opts.File)
	}
	if opts.IncludeContent {
		m.SourcesContent = []string{s.original}
	}
	if s.opts.IgnoreList {
		m.IgnoreList = []int{0}
	}
	return m
}

// GenerateMap is GenerateDecodedMap with VLQ-encoded mappings.
func (s *MagicString) GenerateMap(opts GenerateMapOptions) *sourcemap.SourceMap {
	return s.GenerateDecodedMap(opts).Encode()
}

func (s *MagicString) sourcePath(opts GenerateMapOptions) string {
	source := opts.Source
	if source == "" {
		source = s.opts.Filename
	}
	if source == "" {
		return opts.File
	}
	return sourcemap.RelativePath(opts.File, source)
}

func (s *MagicString) nameIndex(c *chunk) int {
	if !c.storeName {
		return -1
	}
	return slices.Index(s.names, c.name)
}

func (s *MagicString) forcedLocation(offset int) bool {
	_, ok := s.locations[offset]
	return ok
}

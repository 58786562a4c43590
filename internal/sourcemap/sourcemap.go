package sourcemap

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
)

// DecodedMap is a source map whose mappings are absolute segments.
type DecodedMap struct {
	File           string   `json:"file,omitempty"`
	SourceRoot     string   `json:"sourceRoot,omitempty"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent,omitempty"`
	Names          []string `json:"names"`
	Mappings       Mappings `json:"mappings"`
	IgnoreList     []int    `json:"x_google_ignoreList,omitempty"`
}

// SourceMap is a version 3 source map with encoded mappings.
type SourceMap struct {
	Version        int      `json:"version"`
	File           string   `json:"file,omitempty"`
	SourceRoot     string   `json:"sourceRoot,omitempty"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent,omitempty"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
	IgnoreList     []int    `json:"x_google_ignoreList,omitempty"`
}

// Encode converts d into its encoded form.
func (d *DecodedMap) Encode() *SourceMap {
	return &SourceMap{
		Version:        3,
		File:           d.File,
		SourceRoot:     d.SourceRoot,
		Sources:        nonNil(d.Sources),
		SourcesContent: d.SourcesContent,
		Names:          nonNil(d.Names),
		Mappings:       EncodeMappings(d.Mappings),
		IgnoreList:     d.IgnoreList,
	}
}

// Decode converts m back into absolute segments.
func (m *SourceMap) Decode() (*DecodedMap, error) {
	mappings, err := DecodeMappings(m.Mappings)
	if err != nil {
		return nil, err
	}
	return &DecodedMap{
		File:           m.File,
		SourceRoot:     m.SourceRoot,
		Sources:        m.Sources,
		SourcesContent: m.SourcesContent,
		Names:          m.Names,
		Mappings:       mappings,
		IgnoreList:     m.IgnoreList,
	}, nil
}

// JSON marshals m to the standard source map JSON document.
func (m *SourceMap) JSON() ([]byte, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal source map: %w", err)
	}
	return b, nil
}

// String returns the JSON document, or "" if it cannot be marshaled.
func (m *SourceMap) String() string {
	b, err := m.JSON()
	if err != nil {
		return ""
	}
	return string(b)
}

// URL returns m as a base64 data URL suitable for a sourceMappingURL comment.
func (m *SourceMap) URL() string {
	return "data:application/json;charset=utf-8;base64," + base64.StdEncoding.EncodeToString([]byte(m.String()))
}

// Parse reads a JSON source map document.
func Parse(data []byte) (*SourceMap, error) {
	var m SourceMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse source map: %w", err)
	}
	if m.Version != 3 {
		return nil, fmt.Errorf("parse source map: unsupported version %d", m.Version)
	}
	return &m, nil
}

// OriginalPositionFor returns the segment covering the generated position: the last segment on line whose generated column is <= column. ok is false
// if there is none or it carries no original position.
func (d *DecodedMap) OriginalPositionFor(line, column int) (seg Segment, ok bool) {
	if line < 0 || line >= len(d.Mappings) {
		return nil, false
	}
	segs := d.Mappings[line]
	i := sort.Search(len(segs), func(i int) bool { return segs[i][0] > column }) - 1
	if i < 0 || len(segs[i]) < 4 {
		return nil, false
	}
	return segs[i], true
}

// Name returns the name recorded in seg, if any.
func (d *DecodedMap) Name(seg Segment) (string, bool) {
	if len(seg) < 5 || seg[4] < 0 || seg[4] >= len(d.Names) {
		return "", false
	}
	return d.Names[seg[4]], true
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Package editscript reads declarative edit scripts and applies them to a MagicString.
//
// A script is a list of edits, each naming one engine operation and its arguments:
//
//	edits:
//	  - op: overwrite
//	    start: 4
//	    end: 7
//	    content: answer
//	  - op: move
//	    start: 0
//	    end: 3
//	    index: 12
//
// Scripts may be written in JSON, YAML, or TOML.
package editscript

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidEdit is returned for unknown ops, missing arguments, and bad patterns.
var ErrInvalidEdit = errors.New("invalid edit")

// Script is an ordered list of edits.
type Script struct {
	Edits []Edit `json:"edits" yaml:"edits" toml:"edits"`
}

// Edit is one operation. Which fields are read depends on Op.
type Edit struct {
	Op string `json:"op" yaml:"op" toml:"op"`

	Start *int `json:"start,omitempty" yaml:"start,omitempty" toml:"start,omitempty"`
	End   *int `json:"end,omitempty" yaml:"end,omitempty" toml:"end,omitempty"`
	Index *int `json:"index,omitempty" yaml:"index,omitempty" toml:"index,omitempty"`

	// Content is inserted or replacement text. For indent it is the prefix; empty means guess it.
	Content string `json:"content,omitempty" yaml:"content,omitempty" toml:"content,omitempty"`

	// Pattern is a literal search string for replace and replaceAll. Regexp is a regular expression, used instead of Pattern when set.
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty" toml:"pattern,omitempty"`
	Regexp  string `json:"regexp,omitempty" yaml:"regexp,omitempty" toml:"regexp,omitempty"`

	// Flavor selects the regular expression engine: "re2" (default) or "ecmascript".
	Flavor string `json:"flavor,omitempty" yaml:"flavor,omitempty" toml:"flavor,omitempty"`
	Global bool   `json:"global,omitempty" yaml:"global,omitempty" toml:"global,omitempty"`

	StoreName   bool `json:"storeName,omitempty" yaml:"storeName,omitempty" toml:"storeName,omitempty"`
	ContentOnly bool `json:"contentOnly,omitempty" yaml:"contentOnly,omitempty" toml:"contentOnly,omitempty"`
	Overwrite   bool `json:"overwrite,omitempty" yaml:"overwrite,omitempty" toml:"overwrite,omitempty"`

	IndentStart *bool    `json:"indentStart,omitempty" yaml:"indentStart,omitempty" toml:"indentStart,omitempty"`
	Exclude     [][2]int `json:"exclude,omitempty" yaml:"exclude,omitempty" toml:"exclude,omitempty"`

	// Chars is the character class for the trim ops.
	Chars string `json:"chars,omitempty" yaml:"chars,omitempty" toml:"chars,omitempty"`
}

// Parse decodes a script. The format comes from name's extension: .yaml/.yml for YAML, .toml for TOML, anything else JSON. Unknown fields are
// rejected.
func Parse(name string, data []byte) (Script, error) {
	var s Script
	var err error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&s)
	case ".toml":
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&s)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&s)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return Script{}, fmt.Errorf("parse %s: %w", name, err)
	}
	for i, e := range s.Edits {
		if err := e.validate(); err != nil {
			return Script{}, fmt.Errorf("parse %s: edit #%d (%s): %w", name, i+1, e.Op, err)
		}
	}
	return s, nil
}

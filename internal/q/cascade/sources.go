package cascade

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// source supplies configuration as a normalized tree: lowercase keys without dots, map[string]any for objects, and leaves of string, bool, int64,
// float64, or []any of those.
type source interface {
	origin() Origin
	load() (map[string]any, error)
}

type defaultsSource struct {
	m map[string]any
}

func (s defaultsSource) origin() Origin { return Origin{Kind: "default"} }

func (s defaultsSource) load() (map[string]any, error) {
	out := map[string]any{}
	for k, v := range s.m {
		if err := setPath(out, k, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type fileSource struct {
	path string
}

func (s fileSource) origin() Origin {
	return Origin{Kind: formatOf(s.path) + "_file", Path: ExpandPath(s.path)}
}

func (s fileSource) load() (map[string]any, error) {
	data, err := os.ReadFile(ExpandPath(s.path))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(data)) == "" {
		return map[string]any{}, nil
	}

	var raw map[string]any
	switch formatOf(s.path) {
	case "yaml":
		err = yaml.Unmarshal(data, &raw)
	case "toml":
		err = toml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", formatOf(s.path), err)
	}

	out := map[string]any{}
	for k, v := range raw {
		if err := setPath(out, k, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// formatOf picks a file format from path's extension. Anything unrecognized is JSON.
func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	}
	return "json"
}

type envSource struct {
	keyToVar map[string]string
}

func (s envSource) origin() Origin { return Origin{Kind: "env"} }

func (s envSource) load() (map[string]any, error) {
	out := map[string]any{}
	for key, name := range s.keyToVar {
		// An empty variable is treated as unset so it cannot blank out a file's value.
		if v := os.Getenv(name); v != "" {
			if err := setPath(out, key, v); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// setPath stores v in tree under the dotted key, normalizing v.
func setPath(tree map[string]any, key string, v any) error {
	parts := strings.Split(strings.ToLower(key), ".")
	for _, p := range parts[:len(parts)-1] {
		child, ok := tree[p]
		if !ok {
			child = map[string]any{}
			tree[p] = child
		}
		m, ok := child.(map[string]any)
		if !ok {
			return fmt.Errorf("key conflict at %q: %q is not an object", key, p)
		}
		tree = m
	}

	leaf := parts[len(parts)-1]
	nv, err := normalize(v)
	if err != nil {
		return fmt.Errorf("key %q: %w", key, err)
	}
	if obj, ok := nv.(map[string]any); ok {
		if existing, ok := tree[leaf].(map[string]any); ok {
			for k, v := range obj {
				if err := setPath(existing, k, v); err != nil {
					return err
				}
			}
			return nil
		}
	}
	if _, exists := tree[leaf]; exists {
		return fmt.Errorf("key conflict: %q was already set", key)
	}
	tree[leaf] = nv
	return nil
}

// normalize converts decoder output (JSON, YAML, and TOML each pick their own number and map types) into the forms described on source.
func normalize(v any) (any, error) {
	switch vv := v.(type) {
	case nil, string, bool, int64, float64:
		return vv, nil
	case int:
		return int64(vv), nil
	case uint64:
		return int64(vv), nil
	case map[string]any:
		out := map[string]any{}
		for k, e := range vv {
			if err := setPath(out, k, e); err != nil {
				return nil, err
			}
		}
		return out, nil
	case []any:
		out := make([]any, len(vv))
		for i, e := range vv {
			ne, err := normalize(e)
			if err != nil {
				return nil, err
			}
			if _, ok := ne.(map[string]any); ok {
				return nil, fmt.Errorf("arrays of objects are not supported")
			}
			out[i] = ne
		}
		return out, nil
	case []string:
		out := make([]any, len(vv))
		for i, e := range vv {
			out[i] = e
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported value type %T", v)
}

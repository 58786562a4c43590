package cascade

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
)

// Origin says where a configuration value came from.
type Origin struct {
	Kind string // "default", "env", "json_file", "yaml_file", or "toml_file"
	Path string // file path for file sources
}

func (o Origin) String() string {
	if o.Path != "" {
		return o.Kind + ":" + o.Path
	}
	return o.Kind
}

// Loader is a prioritized list of configuration sources. The zero value is ready to use.
type Loader struct {
	sources []source
	origins map[string]Origin
}

// New returns an empty Loader.
func New() *Loader {
	return &Loader{}
}

// WithDefaults adds m as a source. Keys may be dotted.
func (l *Loader) WithDefaults(m map[string]any) *Loader {
	l.sources = append(l.sources, defaultsSource{m: m})
	return l
}

// WithFile adds the file at path (expanded with ExpandPath). The file is read by StrictlyLoad; if it does not exist it contributes nothing.
func (l *Loader) WithFile(path string) *Loader {
	l.sources = append(l.sources, fileSource{path: path})
	return l
}

// WithNearestFile adds the first non-empty file named fileName found in start (a directory or file; "" means the working directory) or any of its
// ancestors. It panics if fileName is absolute.
func (l *Loader) WithNearestFile(fileName string, start string) *Loader {
	if filepath.IsAbs(fileName) {
		panic("cascade: WithNearestFile needs a relative fileName")
	}
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return l
		}
		start = wd
	}
	if fi, err := os.Stat(start); err == nil && !fi.IsDir() {
		start = filepath.Dir(start)
	}
	for dir := start; ; {
		candidate := filepath.Join(dir, fileName)
		if data, err := os.ReadFile(candidate); err == nil && strings.TrimSpace(string(data)) != "" {
			return l.WithFile(candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return l
		}
		dir = parent
	}
}

// WithEnv adds environment variables as a source. m maps configuration keys to variable names. Unset and empty variables are ignored.
func (l *Loader) WithEnv(m map[string]string) *Loader {
	l.sources = append(l.sources, envSource{keyToVar: m})
	return l
}

// StrictlyLoad applies every source to dest, a non-nil pointer to a struct, from lowest to highest priority. Fields tagged `cascade:",required"` must
// be set by some source.
func (l *Loader) StrictlyLoad(dest any) error {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("dest must be a non-nil pointer to struct, got %T", dest)
	}

	l.origins = map[string]Origin{}
	for _, src := range l.sources {
		tree, err := src.load()
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", src.origin(), err)
		}
		if err := l.apply(v.Elem(), tree, "", src.origin()); err != nil {
			return fmt.Errorf("%s: %w", src.origin(), err)
		}
	}
	return checkRequired(v.Elem(), "", l.origins)
}

// Origins reports, for each dotted key set by the last StrictlyLoad, the source that set it.
func (l *Loader) Origins() map[string]Origin {
	return l.origins
}

func (l *Loader) apply(dest reflect.Value, tree map[string]any, prefix string, origin Origin) error {
	fields, err := fieldsByKey(dest.Type())
	if err != nil {
		return err
	}
	for key, raw := range tree {
		i, ok := fields[key]
		if !ok {
			continue
		}
		path := joinKey(prefix, key)
		f := dest.Field(i)
		if f.Kind() == reflect.Pointer {
			if f.IsNil() {
				f.Set(reflect.New(f.Type().Elem()))
			}
			f = f.Elem()
		}
		if f.Kind() == reflect.Struct {
			obj, ok := raw.(map[string]any)
			if !ok {
				return fmt.Errorf("%s: expected an object", path)
			}
			if err := l.apply(f, obj, path, origin); err != nil {
				return err
			}
			continue
		}
		if err := assign(f, raw, path); err != nil {
			return err
		}
		l.origins[path] = origin
	}
	return nil
}

func fieldsByKey(t reflect.Type) (map[string]int, error) {
	out := map[string]int{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		key := fieldKey(f)
		if key == "-" {
			continue
		}
		if prev, ok := out[key]; ok {
			return nil, fmt.Errorf("fields %s and %s both map to key %q", t.Field(prev).Name, f.Name, key)
		}
		out[key] = i
	}
	return out, nil
}

// fieldKey is the lowercase key for f: its cascade tag name, else its json tag name, else its name.
func fieldKey(f reflect.StructField) string {
	for _, tag := range []string{"cascade", "json"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name = strings.TrimSpace(name); name != "" {
			if name == "-" && tag == "json" {
				continue
			}
			return strings.ToLower(name)
		}
	}
	return strings.ToLower(f.Name)
}

func assign(f reflect.Value, raw any, path string) error {
	switch f.Kind() {
	case reflect.String:
		switch v := raw.(type) {
		case string:
			f.SetString(v)
		case bool:
			f.SetString(strconv.FormatBool(v))
		case int64:
			f.SetString(strconv.FormatInt(v, 10))
		case float64:
			f.SetString(strconv.FormatFloat(v, 'f', -1, 64))
		default:
			return fmt.Errorf("%s: cannot use %T as a string", path, raw)
		}
	case reflect.Bool:
		switch v := raw.(type) {
		case bool:
			f.SetBool(v)
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%s: invalid bool %q", path, v)
			}
			f.SetBool(b)
		default:
			return fmt.Errorf("%s: cannot use %T as a bool", path, raw)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch v := raw.(type) {
		case int64:
			f.SetInt(v)
		case float64:
			f.SetInt(int64(v))
		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return fmt.Errorf("%s: invalid int %q", path, v)
			}
			f.SetInt(n)
		default:
			return fmt.Errorf("%s: cannot use %T as an int", path, raw)
		}
	case reflect.Float32, reflect.Float64:
		switch v := raw.(type) {
		case float64:
			f.SetFloat(v)
		case int64:
			f.SetFloat(float64(v))
		case string:
			n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return fmt.Errorf("%s: invalid float %q", path, v)
			}
			f.SetFloat(n)
		default:
			return fmt.Errorf("%s: cannot use %T as a float", path, raw)
		}
	case reflect.Slice:
		var items []any
		switch v := raw.(type) {
		case []any:
			items = v
		case string:
			// Environment variables carry lists comma-separated.
			for _, s := range strings.Split(v, ",") {
				items = append(items, strings.TrimSpace(s))
			}
		default:
			return fmt.Errorf("%s: cannot use %T as a list", path, raw)
		}
		out := reflect.MakeSlice(f.Type(), len(items), len(items))
		for i, item := range items {
			if err := assign(out.Index(i), item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		f.Set(out)
	default:
		return fmt.Errorf("%s: unsupported field kind %s", path, f.Kind())
	}
	return nil
}

func checkRequired(v reflect.Value, prefix string, set map[string]Origin) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		key := fieldKey(f)
		if key == "-" {
			continue
		}
		path := joinKey(prefix, key)
		_, opts, _ := strings.Cut(f.Tag.Get("cascade"), ",")
		if strings.Contains(","+opts+",", ",required,") {
			if _, ok := set[path]; !ok {
				return fmt.Errorf("missing required key: %s", path)
			}
		}
		fv := v.Field(i)
		if fv.Kind() == reflect.Pointer && !fv.IsNil() {
			fv = fv.Elem()
		}
		if fv.Kind() == reflect.Struct {
			if err := checkRequired(fv, path, set); err != nil {
				return err
			}
		}
	}
	return nil
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

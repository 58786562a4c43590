package cli

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// FlagSet holds the typed flags of a command.
type FlagSet struct {
	flags []*flag
}

type flag struct {
	name    string
	short   rune
	usage   string
	kind    string   // "bool", "string", "int", or "choice"
	choices []string // for "choice"
	set     func(raw string) error
}

func newFlagSet() *FlagSet {
	return &FlagSet{}
}

// Bool defines a boolean flag. "--name" alone sets it to true.
func (fs *FlagSet) Bool(name string, short rune, def bool, usage string) *bool {
	p := &def
	fs.add(&flag{name: name, short: short, usage: usage, kind: "bool", set: func(raw string) error {
		v, err := strconv.ParseBool(raw)
		if err == nil {
			*p = v
		}
		return err
	}})
	return p
}

// String defines a string flag.
func (fs *FlagSet) String(name string, short rune, def string, usage string) *string {
	p := &def
	fs.add(&flag{name: name, short: short, usage: usage, kind: "string", set: func(raw string) error {
		*p = raw
		return nil
	}})
	return p
}

// Int defines an int flag.
func (fs *FlagSet) Int(name string, short rune, def int, usage string) *int {
	p := &def
	fs.add(&flag{name: name, short: short, usage: usage, kind: "int", set: func(raw string) error {
		v, err := strconv.Atoi(raw)
		if err == nil {
			*p = v
		}
		return err
	}})
	return p
}

// Choice defines a string flag restricted to choices. def need not be one of them; it lets the caller tell "not given" apart.
func (fs *FlagSet) Choice(name string, short rune, def string, choices []string, usage string) *string {
	p := &def
	fs.add(&flag{name: name, short: short, usage: usage, kind: "choice", choices: choices, set: func(raw string) error {
		if !slices.Contains(choices, raw) {
			return fmt.Errorf("must be one of %s", strings.Join(choices, ", "))
		}
		*p = raw
		return nil
	}})
	return p
}

func (fs *FlagSet) add(f *flag) {
	if f.name == "" {
		panic("cli: flag without a name")
	}
	for _, g := range fs.flags {
		if g.name == f.name || (f.short != 0 && g.short == f.short) {
			panic("cli: duplicate flag --" + f.name)
		}
	}
	fs.flags = append(fs.flags, f)
}

// activeFlags returns every flag c accepts: persistent flags of c and its ancestors, then c's own.
func (c *Command) activeFlags() []*flag {
	var out []*flag
	for _, cmd := range c.path() {
		if cmd.persistent != nil {
			out = append(out, cmd.persistent.flags...)
		}
	}
	if c.flags != nil {
		out = append(out, c.flags.flags...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func lookupFlag(flags []*flag, name string, short rune) *flag {
	for _, f := range flags {
		if (name != "" && f.name == name) || (name == "" && f.short == short) {
			return f
		}
	}
	return nil
}

// parseFlag applies the flag token argv[i]. It returns how many following tokens it consumed as the flag's value.
func parseFlag(flags []*flag, argv []string, i int) (int, error) {
	token := argv[i]
	var name, value string
	var short rune
	var hasValue bool
	if body, ok := strings.CutPrefix(token, "--"); ok {
		name, value, hasValue = strings.Cut(body, "=")
	} else {
		body := token[1:]
		head, v, ok := strings.Cut(body, "=")
		if len([]rune(head)) == 1 {
			short = []rune(head)[0]
		} else {
			name = head
		}
		value, hasValue = v, ok
	}

	f := lookupFlag(flags, name, short)
	if f == nil {
		return 0, Usagef("unknown flag: %s", token)
	}

	consumed := 0
	if !hasValue {
		next := ""
		hasNext := i+1 < len(argv)
		if hasNext {
			next = argv[i+1]
		}
		switch {
		case f.kind == "bool":
			value = "true"
			if _, err := strconv.ParseBool(next); hasNext && err == nil {
				value, consumed = next, 1
			}
		case !hasNext || next == "--":
			return 0, Usagef("flag needs a value: %s", token)
		default:
			value, consumed = next, 1
		}
	}

	if err := f.set(value); err != nil {
		return 0, Usagef("invalid value %q for %s: %v", value, f.display(), err)
	}
	return consumed, nil
}

func (f *flag) display() string {
	if f.short != 0 {
		return fmt.Sprintf("-%c/--%s", f.short, f.name)
	}
	return "--" + f.name
}

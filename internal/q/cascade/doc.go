// Package cascade loads layered configuration into a struct.
//
// Register sources from lowest to highest priority with the With* methods, then call StrictlyLoad:
//
//	var cfg Config
//	err := cascade.New().
//	    WithDefaults(map[string]any{"context": 3}).
//	    WithFile("~/.magicstring/config.yaml").
//	    WithNearestFile(".magicstring.json", "").
//	    WithEnv(map[string]string{"context": "MAGICSTRING_CONTEXT"}).
//	    StrictlyLoad(&cfg)
//
// Files are JSON, YAML, or TOML, chosen by extension. Keys are case-insensitive; a dot in a key denotes nesting. Fields are matched by their cascade
// tag, then their json tag, then their name. Values are coerced when reasonable (strings to numbers and bools, numbers to strings). Missing,
// unreadable, and empty files are skipped; a file that fails to parse or a value that cannot be coerced is an error naming its source.
package cascade

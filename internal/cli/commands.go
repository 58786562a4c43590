package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/codalotl/magicstring/internal/editdiff"
	"github.com/codalotl/magicstring/internal/editscript"
	"github.com/codalotl/magicstring/internal/magicstring"
	qcli "github.com/codalotl/magicstring/internal/q/cli"
	"github.com/codalotl/magicstring/internal/sourcemap"
)

var (
	hiresChoices = []string{"false", "true", "boundary"}
	colorChoices = []string{"auto", "always", "never"}
)

// result is an input file with a script applied to it.
type result struct {
	inputPath string
	ms        *magicstring.MagicString
}

// build reads inputPath ("-" for c.In) and scriptPath and applies the script.
func build(c *qcli.Context, cfg Config, inputPath, scriptPath string) (*result, error) {
	var input []byte
	var err error
	if inputPath == "-" {
		input, err = io.ReadAll(c.In)
	} else {
		input, err = os.ReadFile(inputPath)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	data, err := os.ReadFile(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	script, err := editscript.Parse(scriptPath, data)
	if err != nil {
		return nil, err
	}

	filename := cfg.Filename
	if filename == "" && inputPath != "-" {
		filename = inputPath
	}
	ms, err := editscript.Apply(magicstring.New(string(input), magicstring.Options{Filename: filename}), script)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", scriptPath, err)
	}
	return &result{inputPath: inputPath, ms: ms}, nil
}

// mapOptions names the map after outPath, or after the input when there is no output file.
func (r *result) mapOptions(outPath string, hires sourcemap.Hires, includeContent bool) magicstring.GenerateMapOptions {
	file := outPath
	if file == "" && r.inputPath != "-" {
		file = r.inputPath
	}
	return magicstring.GenerateMapOptions{File: file, Hires: hires, IncludeContent: includeContent}
}

func resolveHires(flag string, cfg Config) (sourcemap.Hires, error) {
	if flag == "" {
		flag = cfg.Hires
	}
	return sourcemap.ParseHires(flag)
}

func newApplyCommand() *qcli.Command {
	cmd := &qcli.Command{
		Name:    "apply",
		Short:   "Apply an edit script and print the result",
		Example: "magicstring apply src/app.js edits.yaml -o dist/app.js --map dist/app.js.map",
		Args:    qcli.ExactArgs(2),
	}
	out := cmd.Flags().String("out", 'o', "", "Write the result to this file instead of stdout")
	mapPath := cmd.Flags().String("map", 0, "", "Also write a source map to this file")
	hires := cmd.Flags().Choice("hires", 0, "", hiresChoices, "Map resolution for --map")
	cmd.Run = func(c *qcli.Context) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		h, err := resolveHires(*hires, cfg)
		if err != nil {
			return err
		}
		r, err := build(c, cfg, c.Args[0], c.Args[1])
		if err != nil {
			return err
		}
		return writeOutputs(c.Out, r, *out, *mapPath, h, cfg.IncludeContent)
	}
	return cmd
}

// writeOutputs writes the rendered text to outPath (or w) and, when mapPath is set, the encoded map.
func writeOutputs(w io.Writer, r *result, outPath, mapPath string, hires sourcemap.Hires, includeContent bool) error {
	text := r.ms.String()
	if outPath == "" {
		if _, err := io.WriteString(w, text); err != nil {
			return err
		}
	} else if err := writeFile(outPath, []byte(text)); err != nil {
		return err
	}

	if mapPath == "" {
		return nil
	}
	data, err := r.ms.GenerateMap(r.mapOptions(outPath, hires, includeContent)).JSON()
	if err != nil {
		return err
	}
	return writeFile(mapPath, data)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func newMapCommand() *qcli.Command {
	cmd := &qcli.Command{
		Name:  "map",
		Short: "Print the source map for an edit script",
		Long:  "Prints a version 3 source map from the edited output back to the input. Columns count bytes.",
		Args:  qcli.ExactArgs(2),
	}
	hires := cmd.Flags().Choice("hires", 0, "", hiresChoices, "Segment density for unedited text (default from config)")
	includeContent := cmd.Flags().Bool("include-content", 0, false, "Embed the input in sourcesContent")
	decoded := cmd.Flags().Bool("decoded", 0, false, "Print mappings as absolute segments instead of VLQ")
	asURL := cmd.Flags().Bool("url", 0, false, "Print a base64 data URL instead of JSON")
	file := cmd.Flags().String("file", 0, "", "Name of the generated file recorded in the map")
	cmd.Run = func(c *qcli.Context) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		h, err := resolveHires(*hires, cfg)
		if err != nil {
			return err
		}
		r, err := build(c, cfg, c.Args[0], c.Args[1])
		if err != nil {
			return err
		}

		opts := r.mapOptions(*file, h, *includeContent || cfg.IncludeContent)
		var out string
		switch {
		case *decoded:
			b, err := json.MarshalIndent(r.ms.GenerateDecodedMap(opts), "", "  ")
			if err != nil {
				return err
			}
			out = string(b)
		case *asURL:
			out = r.ms.GenerateMap(opts).URL()
		default:
			b, err := r.ms.GenerateMap(opts).JSON()
			if err != nil {
				return err
			}
			out = string(b)
		}
		_, err = fmt.Fprintln(c.Out, out)
		return err
	}
	return cmd
}

func newDiffCommand() *qcli.Command {
	cmd := &qcli.Command{
		Name:  "diff",
		Short: "Show the changes an edit script makes as a unified diff",
		Args:  qcli.ExactArgs(2),
	}
	color := cmd.Flags().Choice("color", 0, "", colorChoices, "Colorize output (default from config)")
	context := cmd.Flags().Int("context", 'U', -1, "Unchanged lines around each hunk (default from config)")
	stat := cmd.Flags().Bool("stat", 0, false, "Print a line count summary instead")
	cmd.Run = func(c *qcli.Context) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		r, err := build(c, cfg, c.Args[0], c.Args[1])
		if err != nil {
			return err
		}

		d := editdiff.Compute(r.ms.Original(), r.ms.String())
		if *stat {
			s := d.Stats()
			_, err := fmt.Fprintf(c.Out, "%d insertions(+), %d deletions(-)\n", s.Added, s.Removed)
			return err
		}

		n := *context
		if n < 0 {
			n = cfg.Context
		}
		mode := *color
		if mode == "" {
			mode = cfg.Color
		}
		name := r.inputPath
		_, err = io.WriteString(c.Out, d.Unified("a/"+name, "b/"+name, n, useColor(mode, c.Out)))
		return err
	}
	return cmd
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

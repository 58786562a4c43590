package cli

import (
	"fmt"
	"strconv"
	"strings"

	gosourcemap "github.com/go-sourcemap/sourcemap"

	qcli "github.com/codalotl/magicstring/internal/q/cli"
	"github.com/codalotl/magicstring/internal/q/uni"
)

// position is a 1-based line and column as shown by editors. Columns count bytes.
type position struct {
	line   int
	column int
}

func parsePosition(s string) (position, error) {
	l, c, ok := strings.Cut(s, ":")
	if !ok {
		return position{}, fmt.Errorf("invalid position %q (want line:column)", s)
	}
	line, err1 := strconv.Atoi(l)
	column, err2 := strconv.Atoi(c)
	if err1 != nil || err2 != nil || line < 1 || column < 1 {
		return position{}, fmt.Errorf("invalid position %q (want line:column, both from 1)", s)
	}
	return position{line: line, column: column}, nil
}

func newTraceCommand() *qcli.Command {
	cmd := &qcli.Command{
		Name:    "trace",
		Short:   "Find where a position in the output came from",
		Long:    "Resolves a line:column of the edited output (both counted from 1) through the source map and prints the input line it maps to.",
		Example: "magicstring trace src/app.js edits.yaml 3:14",
		Args:    qcli.ExactArgs(3),
	}
	hires := cmd.Flags().Choice("hires", 0, "", hiresChoices, "Map resolution (default from config)")
	cmd.Run = func(c *qcli.Context) error {
		pos, err := parsePosition(c.Args[2])
		if err != nil {
			return qcli.Usagef("%v", err)
		}
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

		data, err := r.ms.GenerateMap(r.mapOptions("", h, false)).JSON()
		if err != nil {
			return err
		}
		consumer, err := gosourcemap.Parse("", data)
		if err != nil {
			return fmt.Errorf("read generated map: %w", err)
		}
		source, name, line, column, ok := consumer.Source(pos.line, pos.column-1)
		if !ok {
			return fmt.Errorf("no mapping for %d:%d", pos.line, pos.column)
		}

		fmt.Fprintf(c.Out, "%s:%d:%d", source, line, column+1)
		if name != "" {
			fmt.Fprintf(c.Out, " (%s)", name)
		}
		fmt.Fprintln(c.Out)

		lines := strings.Split(r.ms.Original(), "\n")
		if line >= 1 && line <= len(lines) {
			text := strings.TrimSuffix(lines[line-1], "\r")
			fmt.Fprintf(c.Out, "%s\n%s\n", text, uni.Caret(text, column, nil))
		}
		return nil
	}
	return cmd
}

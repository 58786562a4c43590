// Package cli implements the magicstring command: apply an edit script to a file and inspect the result as text, a source map, or a diff.
package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"

	qcli "github.com/codalotl/magicstring/internal/q/cli"
	"github.com/codalotl/magicstring/internal/simplelogger"
)

// Version is the magicstring version. It is a var so builds can override it with -ldflags "-X .../internal/cli.Version=1.2.3".
var Version = "0.3.0"

// RunOptions override standard I/O. Nil fields use the process's streams.
type RunOptions struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run runs the CLI with args (typically os.Args).
//
// It returns a recommended exit code and an error, if any:
//   - 0 -> err == nil
//   - 1 -> err != nil, but args were well formed (the script failed, a file was missing, etc).
//   - 2 -> err != nil, args could not be parsed.
//
// Run has already printed the error to opts.Err (or stderr) when it returns one.
func Run(args []string, opts *RunOptions) (int, error) {
	argv := args
	if len(argv) > 0 {
		argv = argv[1:]
	}

	var in io.Reader = os.Stdin
	var out io.Writer = os.Stdout
	var errW io.Writer = os.Stderr
	if opts != nil {
		if opts.In != nil {
			in = opts.In
		}
		if opts.Out != nil {
			out = opts.Out
		}
		if opts.Err != nil {
			errW = opts.Err
		}
	}

	// qcli.Run only returns an exit code, so stderr is teed to build the returned error.
	var stderrBuf bytes.Buffer
	errTee := io.MultiWriter(errW, &stderrBuf)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	exitCode := qcli.Run(ctx, newRootCommand(), qcli.Options{
		Args: argv,
		In:   in,
		Out:  out,
		Err:  errTee,
	})
	if exitCode == 0 {
		return 0, nil
	}

	msg := strings.TrimSpace(stderrBuf.String())
	if msg == "" {
		msg = "command failed"
	}
	// Usage errors are followed by help text; keep only the message.
	msg, _, _ = strings.Cut(msg, "\n\n")
	simplelogger.Log("magicstring %s: exit %d: %s", strings.Join(argv, " "), exitCode, msg)
	return exitCode, errors.New(msg)
}

func newRootCommand() *qcli.Command {
	root := &qcli.Command{
		Name:  "magicstring",
		Short: "Apply edit scripts to text and generate source maps",
		Long: "magicstring applies a script of positional edits (inserts, overwrites, removals, moves, ...) to an input file. Every offset in the\n" +
			"script refers to the original input, however earlier edits moved text around. The result can be printed, diffed, or mapped back to\n" +
			"the input with a version 3 source map.",
	}
	root.AddCommand(
		newApplyCommand(),
		newMapCommand(),
		newDiffCommand(),
		newTraceCommand(),
		newWatchCommand(),
		newConfigCommand(),
		&qcli.Command{
			Name:  "version",
			Short: "Print the version",
			Args:  qcli.NoArgs,
			Run: func(c *qcli.Context) error {
				_, err := io.WriteString(c.Out, Version+"\n")
				return err
			},
		},
	)
	return root
}

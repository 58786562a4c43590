package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Options configure Run.
type Options struct {
	// Args excludes the program name (os.Args[1:]).
	Args []string

	// In, Out, and Err default to the process's standard streams.
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Context is handed to a RunFunc. Flag values live in the variables returned when the flags were defined.
type Context struct {
	context.Context

	Command *Command
	Args    []string

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run parses opts.Args against the tree rooted at root, runs the selected command, and returns the exit code: 0 on success, 2 for usage errors, 1
// (or an ExitCoder's code) for handler errors.
func Run(ctx context.Context, root *Command, opts Options) int {
	if root == nil || root.Name == "" {
		panic("cli: Run needs a named root command")
	}
	c := &Context{Context: ctx, In: opts.In, Out: opts.Out, Err: opts.Err}
	if c.In == nil {
		c.In = os.Stdin
	}
	if c.Out == nil {
		c.Out = os.Stdout
	}
	if c.Err == nil {
		c.Err = os.Stderr
	}

	cmd, args, help, err := parse(root, opts.Args)
	switch {
	case help:
		writeHelp(c.Out, cmd)
		return 0
	case err != nil:
		return fail(c.Err, cmd, err)
	case cmd.Run == nil && len(args) == 0:
		return fail(c.Err, cmd, Usagef("missing command"))
	case cmd.Run == nil:
		return fail(c.Err, cmd, Usagef("unknown command: %s", args[0]))
	}
	if cmd.Args != nil {
		if err := cmd.Args(args); err != nil {
			var ec ExitCoder
			if !errors.As(err, &ec) {
				err = UsageError{Message: err.Error()}
			}
			return fail(c.Err, cmd, err)
		}
	}

	c.Command = cmd
	c.Args = args
	if err := cmd.Run(c); err != nil {
		return fail(c.Err, cmd, err)
	}
	return 0
}

// parse selects the deepest command named by the leading non-flag tokens and applies flags found anywhere before "--".
func parse(root *Command, argv []string) (cmd *Command, args []string, help bool, err error) {
	cmd = root
	selecting := true
	for i := 0; i < len(argv); i++ {
		token := argv[i]
		switch {
		case token == "--":
			return cmd, append(args, argv[i+1:]...), false, nil
		case token == "-h" || token == "--help":
			return cmd, nil, true, nil
		case strings.HasPrefix(token, "-") && token != "-":
			n, err := parseFlag(cmd.activeFlags(), argv, i)
			if err != nil {
				return cmd, nil, false, err
			}
			i += n
		default:
			if selecting {
				if child := cmd.child(token); child != nil {
					cmd = child
					continue
				}
				selecting = false
			}
			args = append(args, token)
		}
	}
	return cmd, args, false, nil
}

func fail(w io.Writer, cmd *Command, err error) int {
	code := 1
	var ec ExitCoder
	if errors.As(err, &ec) {
		code = ec.ExitCode()
	}
	if code == 0 {
		return 0
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(w, msg)
	}
	if code == 2 {
		fmt.Fprintln(w)
		writeHelp(w, cmd)
	}
	return code
}

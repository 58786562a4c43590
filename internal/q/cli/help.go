package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
)

func writeHelp(w io.Writer, cmd *Command) {
	var names []string
	for _, c := range cmd.path() {
		names = append(names, c.Name)
	}
	full := strings.Join(names, " ")

	if cmd.Short != "" {
		fmt.Fprintf(w, "%s - %s\n", full, cmd.Short)
	} else {
		fmt.Fprintln(w, full)
	}
	if cmd.Long != "" {
		fmt.Fprintf(w, "\n%s\n", strings.TrimRight(cmd.Long, "\n"))
	}

	usage := []string{full}
	flags := cmd.activeFlags()
	if len(flags) > 0 {
		usage = append(usage, "[flags]")
	}
	if len(cmd.children) > 0 {
		usage = append(usage, "<command>")
	}
	if cmd.Run != nil {
		usage = append(usage, "[args]")
	}
	fmt.Fprintf(w, "\nUsage:\n  %s\n", strings.Join(usage, " "))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if len(cmd.children) > 0 {
		fmt.Fprintln(tw, "\nCommands:")
		children := cmd.Commands()
		sort.Slice(children, func(i, j int) bool { return children[i].Name < children[j].Name })
		for _, c := range children {
			fmt.Fprintf(tw, "  %s\t%s\n", c.Name, c.Short)
		}
	}
	if len(flags) > 0 {
		fmt.Fprintln(tw, "\nFlags:")
		for _, f := range flags {
			fmt.Fprintf(tw, "  %s\t%s\n", flagSynopsis(f), f.usage)
		}
	}
	tw.Flush()

	if cmd.Example != "" {
		fmt.Fprintln(w, "\nExample:")
		for _, line := range strings.Split(strings.TrimRight(cmd.Example, "\n"), "\n") {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}

func flagSynopsis(f *flag) string {
	s := "    --" + f.name
	if f.short != 0 {
		s = fmt.Sprintf("-%c, --%s", f.short, f.name)
	}
	switch f.kind {
	case "bool":
	case "choice":
		s += " <" + strings.Join(f.choices, "|") + ">"
	default:
		s += " <" + f.kind + ">"
	}
	return s
}

// Package cli runs a tree of commands with typed flags.
package cli

// RunFunc is a command handler.
type RunFunc func(c *Context) error

// ArgsFunc validates positional args. Return a UsageError for mistakes that should print usage.
type ArgsFunc func(args []string) error

// Command is one node of a command tree.
type Command struct {
	// Name invokes the command ("map" in "magicstring map").
	Name    string
	Aliases []string

	Short   string
	Long    string
	Example string

	Args ArgsFunc
	Run  RunFunc // nil for commands that only group children

	parent     *Command
	children   []*Command
	flags      *FlagSet
	persistent *FlagSet
}

// AddCommand attaches children to c. It panics on a nil, unnamed, or already attached child.
func (c *Command) AddCommand(children ...*Command) {
	for _, child := range children {
		switch {
		case child == nil:
			panic("cli: nil command")
		case child.Name == "":
			panic("cli: command without a name")
		case child.parent != nil:
			panic("cli: command " + child.Name + " already has a parent")
		}
		child.parent = c
		c.children = append(c.children, child)
	}
}

// Commands returns c's children.
func (c *Command) Commands() []*Command {
	return append([]*Command(nil), c.children...)
}

// Flags returns the flags local to c.
func (c *Command) Flags() *FlagSet {
	if c.flags == nil {
		c.flags = newFlagSet()
	}
	return c.flags
}

// PersistentFlags returns flags shared by c and all of its descendants.
func (c *Command) PersistentFlags() *FlagSet {
	if c.persistent == nil {
		c.persistent = newFlagSet()
	}
	return c.persistent
}

func (c *Command) child(token string) *Command {
	for _, child := range c.children {
		if child.Name == token {
			return child
		}
		for _, a := range child.Aliases {
			if a == token {
				return child
			}
		}
	}
	return nil
}

// path returns the commands from the root down to c.
func (c *Command) path() []*Command {
	var out []*Command
	for cur := c; cur != nil; cur = cur.parent {
		out = append([]*Command{cur}, out...)
	}
	return out
}

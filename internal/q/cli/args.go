package cli

import "strconv"

// NoArgs rejects positional args.
func NoArgs(args []string) error {
	if len(args) != 0 {
		return Usagef("unexpected argument: %s", args[0])
	}
	return nil
}

// ExactArgs accepts exactly n positional args.
func ExactArgs(n int) ArgsFunc {
	return RangeArgs(n, n)
}

// RangeArgs accepts between min and max positional args, inclusive.
func RangeArgs(min, max int) ArgsFunc {
	return func(args []string) error {
		if len(args) < min || len(args) > max {
			return Usagef("expected %s, got %d", countArgs(min, max), len(args))
		}
		return nil
	}
}

func countArgs(min, max int) string {
	word := " args"
	if max == 1 {
		word = " arg"
	}
	if min == max {
		return strconv.Itoa(min) + word
	}
	return strconv.Itoa(min) + "-" + strconv.Itoa(max) + word
}

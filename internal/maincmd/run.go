package maincmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mna/mainer"

	gears "github.com/andrewgrz/gears-lang"
	"github.com/andrewgrz/gears-lang/lang/value"
)

func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	fn := c.Func
	if fn == "" {
		fn = "main"
	}
	callArgs, err := parseArgs(c.Args)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	return RunFile(stdio, args[0], fn, callArgs)
}

// RunFile compiles path and calls fn with args, printing the result to
// stdout. Compile errors and runtime errors are both reported to stderr
// and returned, distinguished only by their concrete type.
func RunFile(stdio mainer.Stdio, path, fn string, args []value.Value) error {
	mod, err := gears.CompileFile(path)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
		return err
	}

	result, err := gears.Execute(mod, fn, args)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
		return err
	}

	fmt.Fprintln(stdio.Stdout, result.String())
	return nil
}

// parseArgs decodes a comma-separated --args string into Values. Each
// field is interpreted, in order, as "true"/"false", an integer, or
// otherwise a bare string (Gears has no quoting convention on the
// command line, unlike in source).
func parseArgs(s string) ([]value.Value, error) {
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	vals := make([]value.Value, len(fields))
	for i, f := range fields {
		switch f {
		case "true":
			vals[i] = value.TRUE
		case "false":
			vals[i] = value.FALSE
		default:
			if n, err := strconv.ParseInt(f, 10, 64); err == nil {
				vals[i] = value.Int(n)
			} else {
				vals[i] = value.Str(f)
			}
		}
	}
	return vals, nil
}

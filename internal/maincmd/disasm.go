package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	gears "github.com/andrewgrz/gears-lang"
)

func (c *Cmd) Disasm(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return DisasmFile(stdio, args[0], c.Func)
}

// DisasmFile compiles path and writes the disassembly of fn to stdout,
// or of every function if fn is empty.
func DisasmFile(stdio mainer.Stdio, path, fn string) error {
	mod, err := gears.CompileFile(path)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
		return err
	}
	if err := gears.Disassemble(mod, fn, stdio.Stdout); err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
		return err
	}
	return nil
}

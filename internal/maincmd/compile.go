package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	gears "github.com/andrewgrz/gears-lang"
)

func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return CompileFiles(stdio, args...)
}

// CompileFiles compiles each file and reports success or the compile
// error; it does not execute anything. It exists so a build pipeline
// can check sources without running them.
func CompileFiles(stdio mainer.Stdio, files ...string) error {
	for _, path := range files {
		mod, err := gears.CompileFile(path)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
			return err
		}
		fmt.Fprintf(stdio.Stdout, "%s: ok (%d function(s))\n", path, len(mod.Functions))
	}
	return nil
}

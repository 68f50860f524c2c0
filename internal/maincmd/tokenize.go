package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/andrewgrz/gears-lang/lang/scanner"
	"github.com/andrewgrz/gears-lang/lang/token"
)

func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(stdio, args...)
}

// TokenizeFiles scans each file in turn and prints its token stream, one
// token per line as "line:col KIND lit". Scanning continues to EOF even
// after a lexical error; the first error encountered is returned once
// every file has been printed.
func TokenizeFiles(stdio mainer.Stdio, files ...string) error {
	var firstErr error
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		sc := scanner.New(data, func(pos token.Pos, msg string) {
			fmt.Fprintf(stdio.Stderr, "%s:%s: %s\n", path, pos, msg)
			if firstErr == nil {
				firstErr = fmt.Errorf("%s:%s: %s", path, pos, msg)
			}
		})
		for {
			tok := sc.Scan()
			fmt.Fprintf(stdio.Stdout, "%s %-12s", tok.Pos, tok.Kind)
			switch tok.Kind {
			case token.IDENT, token.INT, token.STRING:
				fmt.Fprintf(stdio.Stdout, " %s", tok.Lit)
			}
			fmt.Fprintln(stdio.Stdout)
			if tok.Kind == token.EOF {
				break
			}
		}
	}
	return firstErr
}

package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer pretty-prints an AST as an indented tree, one node per line. It
// backs the `gears parse` CLI subcommand's debug dump.
type Printer struct {
	// Output is the io.Writer to print to.
	Output io.Writer

	// Pos, if true, prefixes each line with the node's start:end position.
	Pos bool

	// NodeFmt is the format string used to print each node. The verb must be
	// `s` or `v`; width, `#` and `-` flags are supported as in fmt. Defaults
	// to "%v".
	NodeFmt string
}

// Print pretty-prints the AST rooted at n.
func (p *Printer) Print(n Node) error {
	pp := &printer{w: p.Output, pos: p.Pos, nodeFmt: p.NodeFmt}
	if pp.nodeFmt == "" {
		pp.nodeFmt = "%v"
	}
	Walk(pp, n)
	return pp.err
}

type printer struct {
	w       io.Writer
	pos     bool
	nodeFmt string
	depth   int
	err     error
}

func (p *printer) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit || p.err != nil {
		p.depth--
		return nil
	}
	p.depth++
	p.printNode(n, p.depth-1)
	return p
}

func (p *printer) printNode(n Node, indent int) {
	if p.err != nil {
		return
	}

	format := "%s"
	args := []interface{}{strings.Repeat(". ", indent)}
	if p.pos {
		start, end := n.Span()
		format += "[%s:%s] "
		args = append(args, start.String(), end.String())
	}
	format += p.nodeFmt + "\n"
	args = append(args, n)

	_, p.err = fmt.Fprintf(p.w, format, args...)
}

package ast

import (
	"fmt"

	"github.com/andrewgrz/gears-lang/lang/token"
)

type (
	// Program is the root of the AST: an ordered sequence of top-level
	// function definitions.
	Program struct {
		Funcs []*FuncDecl
		EOF   token.Pos
	}

	// Arg is a single typed parameter in a function signature.
	Arg struct {
		Name  *Ident
		Types []token.Token // one or more type name tokens, e.g. int, bool
	}

	// FuncDecl represents a top-level function definition.
	FuncDecl struct {
		Def        token.Pos
		Name       *Ident
		Lparen     token.Pos
		Params     []*Arg
		Commas     []token.Pos // len(Params)-1
		Rparen     token.Pos
		Arrow      token.Pos     // zero if no declared return type set
		ReturnType []token.Token // may be empty (inferred as none)
		Body       *Block

		// not set by the parser or the compiler; always nil
		Function any
	}

	// Block is a function or control-flow body: zero or more statements
	// followed by an optional tail expression whose value is the block's
	// result.
	Block struct {
		Lbrace token.Pos
		Stmts  []Stmt
		Tail   Expr // may be nil
		Rbrace token.Pos
	}
)

func (n *Program) Format(f fmt.State, verb rune) {
	format(f, verb, n, "program", map[string]int{"funcs": len(n.Funcs)})
}
func (n *Program) Span() (start, end token.Pos) {
	if len(n.Funcs) == 0 {
		return n.EOF, n.EOF
	}
	start, _ = n.Funcs[0].Span()
	return start, n.EOF
}
func (n *Program) Walk(v Visitor) {
	for _, fn := range n.Funcs {
		Walk(v, fn)
	}
}

func (n *Arg) Format(f fmt.State, verb rune) {
	format(f, verb, n, "param "+n.Name.Lit, map[string]int{"types": len(n.Types)})
}
func (n *Arg) Span() (start, end token.Pos) {
	start, end = n.Name.Span()
	if len(n.Types) > 0 {
		end = end + token.Pos(len(n.Types[len(n.Types)-1].String()))
	}
	return start, end
}
func (n *Arg) Walk(v Visitor) { Walk(v, n.Name) }

func (n *FuncDecl) Format(f fmt.State, verb rune) {
	format(f, verb, n, "fn decl "+n.Name.Lit, map[string]int{"params": len(n.Params)})
}
func (n *FuncDecl) Span() (start, end token.Pos) {
	_, end = n.Body.Span()
	return n.Def, end
}
func (n *FuncDecl) Walk(v Visitor) {
	Walk(v, n.Name)
	for _, p := range n.Params {
		Walk(v, p)
	}
	Walk(v, n.Body)
}

func (n *Block) Format(f fmt.State, verb rune) {
	var tail int
	if n.Tail != nil {
		tail = 1
	}
	format(f, verb, n, "block", map[string]int{"stmts": len(n.Stmts), "tail": tail})
}
func (n *Block) Span() (start, end token.Pos) { return n.Lbrace, n.Rbrace }
func (n *Block) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
	if n.Tail != nil {
		Walk(v, n.Tail)
	}
}

package ast

import (
	"fmt"

	"github.com/andrewgrz/gears-lang/lang/token"
)

type (
	// Ident represents an identifier reference.
	Ident struct {
		Start token.Pos
		Lit   string

		// filled by the compiler: the slot index of the binding this
		// identifier refers to within its enclosing function.
		Slot int
	}

	// IntLit represents an integer literal, e.g. 42.
	IntLit struct {
		Start token.Pos
		Raw   string
		Value int64
	}

	// BoolLit represents a boolean literal, true or false.
	BoolLit struct {
		Start token.Pos
		Value bool
	}

	// StringLit represents a string literal.
	StringLit struct {
		Start token.Pos
		Raw   string // uninterpreted, including quotes
		Value string // interpreted value
	}

	// NoneLit represents the none literal.
	NoneLit struct {
		Start token.Pos
	}

	// ListExpr represents a list literal, e.g. [1, 2, 3].
	ListExpr struct {
		Lbrack token.Pos
		Items  []Expr
		Commas []token.Pos // len(Items)-1
		Rbrack token.Pos
	}

	// BinaryExpr represents a binary operator expression, e.g. x + y.
	BinaryExpr struct {
		Left  Expr
		Op    token.Token
		OpPos token.Pos
		Right Expr
	}

	// CallExpr represents a function call, e.g. f(x, y).
	CallExpr struct {
		Fn     *Ident
		Lparen token.Pos
		Args   []Expr
		Commas []token.Pos // len(Args)-1
		Rparen token.Pos
	}

	// IfExpr represents an if/else expression. Both branches are blocks; the
	// expression's value is the tail value of whichever branch runs. Else is
	// zero if no else clause was written, in which case the implicit else
	// branch evaluates to none.
	IfExpr struct {
		If   token.Pos
		Cond Expr
		Then *Block
		Else token.Pos // zero if no else clause
		Alt  *Block    // nil if no else clause
	}

	// WhileExpr represents a while loop. Its value is the body's value
	// from the last iteration, or none if the body never runs.
	WhileExpr struct {
		While token.Pos
		Cond  Expr
		Body  *Block
	}

	// ForExpr represents a for-in range loop, e.g. for i in 0 to 10 { ... }.
	// Its value is the body's value from the last iteration, or none if
	// the body never runs.
	ForExpr struct {
		For  token.Pos
		Name *Ident
		In   token.Pos
		Low  Expr
		To   token.Pos
		High Expr
		Body *Block

		// filled by the compiler
		Slot int
	}
)

func (n *Ident) Format(f fmt.State, verb rune) { format(f, verb, n, n.Lit, nil) }
func (n *Ident) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(n.Lit))
}
func (n *Ident) Walk(v Visitor) {}
func (n *Ident) expr()          {}

func (n *IntLit) Format(f fmt.State, verb rune) { format(f, verb, n, "int "+n.Raw, nil) }
func (n *IntLit) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(n.Raw))
}
func (n *IntLit) Walk(v Visitor) {}
func (n *IntLit) expr()          {}

func (n *BoolLit) Format(f fmt.State, verb rune) {
	lbl := "false"
	if n.Value {
		lbl = "true"
	}
	format(f, verb, n, lbl, nil)
}
func (n *BoolLit) Span() (start, end token.Pos) {
	lit := "false"
	if n.Value {
		lit = "true"
	}
	return n.Start, n.Start + token.Pos(len(lit))
}
func (n *BoolLit) Walk(v Visitor) {}
func (n *BoolLit) expr()          {}

func (n *StringLit) Format(f fmt.State, verb rune) { format(f, verb, n, "string "+n.Raw, nil) }
func (n *StringLit) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(n.Raw))
}
func (n *StringLit) Walk(v Visitor) {}
func (n *StringLit) expr()          {}

func (n *NoneLit) Format(f fmt.State, verb rune) { format(f, verb, n, "none", nil) }
func (n *NoneLit) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(token.NONE_KW.String()))
}
func (n *NoneLit) Walk(v Visitor) {}
func (n *NoneLit) expr()          {}

func (n *ListExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "list", map[string]int{"items": len(n.Items)})
}
func (n *ListExpr) Span() (start, end token.Pos) {
	return n.Lbrack, n.Rbrack + token.Pos(len(token.RBRACK.String()))
}
func (n *ListExpr) Walk(v Visitor) {
	for _, e := range n.Items {
		Walk(v, e)
	}
}
func (n *ListExpr) expr() {}

func (n *BinaryExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "binary "+n.Op.String(), nil)
}
func (n *BinaryExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *BinaryExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *BinaryExpr) expr() {}

func (n *CallExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "call "+n.Fn.Lit, map[string]int{"args": len(n.Args)})
}
func (n *CallExpr) Span() (start, end token.Pos) {
	start, _ = n.Fn.Span()
	return start, n.Rparen + token.Pos(len(token.RPAREN.String()))
}
func (n *CallExpr) Walk(v Visitor) {
	Walk(v, n.Fn)
	for _, e := range n.Args {
		Walk(v, e)
	}
}
func (n *CallExpr) expr() {}

func (n *IfExpr) Format(f fmt.State, verb rune) {
	lbl := "if"
	if n.Else.IsValid() {
		lbl = "if else"
	}
	format(f, verb, n, lbl, nil)
}
func (n *IfExpr) Span() (start, end token.Pos) {
	if n.Alt != nil {
		_, end = n.Alt.Span()
	} else {
		_, end = n.Then.Span()
	}
	return n.If, end
}
func (n *IfExpr) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	if n.Alt != nil {
		Walk(v, n.Alt)
	}
}
func (n *IfExpr) expr() {}

func (n *WhileExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "while", nil) }
func (n *WhileExpr) Span() (start, end token.Pos) {
	_, end = n.Body.Span()
	return n.While, end
}
func (n *WhileExpr) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
}
func (n *WhileExpr) expr() {}

func (n *ForExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "for "+n.Name.Lit, nil) }
func (n *ForExpr) Span() (start, end token.Pos) {
	_, end = n.Body.Span()
	return n.For, end
}
func (n *ForExpr) Walk(v Visitor) {
	Walk(v, n.Name)
	Walk(v, n.Low)
	Walk(v, n.High)
	Walk(v, n.Body)
}
func (n *ForExpr) expr() {}

package ast

import (
	"fmt"

	"github.com/andrewgrz/gears-lang/lang/token"
)

type (
	// LetStmt represents a local variable declaration, e.g.
	// let x: int = 1.
	LetStmt struct {
		Let    token.Pos
		Name   *Ident
		Colon  token.Pos
		Types  []token.Token // declared type set, e.g. [INT_TYPE] or [INT_TYPE, BOOL_TYPE]
		Eq     token.Pos
		Value  Expr

		// filled by the compiler: the slot index assigned to Name within its
		// enclosing function.
		Slot int
	}

	// AssignStmt represents an assignment to an existing binding, e.g. x = y.
	AssignStmt struct {
		Name  *Ident
		Eq    token.Pos
		Value Expr

		// filled by the compiler
		Slot int
	}

	// ExprStmt represents an expression followed by ';'. Any expression
	// may be used; the compiler evaluates it and leaves its value on the
	// operand stack, where nothing reads it.
	ExprStmt struct {
		Expr Expr
	}
)

func (n *LetStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "let "+n.Name.Lit, nil)
}
func (n *LetStmt) Span() (start, end token.Pos) {
	_, end = n.Value.Span()
	return n.Let, end
}
func (n *LetStmt) Walk(v Visitor) {
	Walk(v, n.Name)
	Walk(v, n.Value)
}
func (n *LetStmt) stmt() {}

func (n *AssignStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "assign "+n.Name.Lit, nil)
}
func (n *AssignStmt) Span() (start, end token.Pos) {
	start, _ = n.Name.Span()
	_, end = n.Value.Span()
	return start, end
}
func (n *AssignStmt) Walk(v Visitor) {
	Walk(v, n.Name)
	Walk(v, n.Value)
}
func (n *AssignStmt) stmt() {}

func (n *ExprStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "expr stmt", nil) }
func (n *ExprStmt) Span() (start, end token.Pos)  { return n.Expr.Span() }
func (n *ExprStmt) Walk(v Visitor)                { Walk(v, n.Expr) }
func (n *ExprStmt) stmt()                         {}

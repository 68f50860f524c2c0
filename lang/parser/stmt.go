package parser

import (
	"github.com/andrewgrz/gears-lang/lang/ast"
	"github.com/andrewgrz/gears-lang/lang/token"
)

// block parses Block := '{' Stmt* Tail? '}'. Every statement consumes a
// trailing ';'; the optional tail expression does not, and is recognized
// by reaching '}' without one.
func (p *parser) block() *ast.Block {
	lbrace := p.expect(token.LBRACE)

	var stmts []ast.Stmt
	var tail ast.Expr
	for p.tok.Kind != token.RBRACE {
		if p.tok.Kind == token.LET {
			stmts = append(stmts, p.letStmt())
			continue
		}
		if p.tok.Kind == token.IDENT && p.peek().Kind == token.EQ {
			stmts = append(stmts, p.assignStmt())
			continue
		}

		e := p.expr(1)
		if p.tok.Kind == token.SEMI {
			p.advance()
			stmts = append(stmts, &ast.ExprStmt{Expr: e})
			continue
		}
		tail = e
		break
	}

	rbrace := p.expect(token.RBRACE)
	return &ast.Block{Lbrace: lbrace, Stmts: stmts, Tail: tail, Rbrace: rbrace}
}

// letStmt parses 'let' NAME ':' TypeSet '=' EXPR ';'.
func (p *parser) letStmt() *ast.LetStmt {
	let := p.expect(token.LET)
	name := p.ident()
	colon := p.expect(token.COLON)
	types := p.typeSet()
	eq := p.expect(token.EQ)
	value := p.expr(1)
	p.expect(token.SEMI)
	return &ast.LetStmt{Let: let, Name: name, Colon: colon, Types: types, Eq: eq, Value: value}
}

// assignStmt parses NAME '=' EXPR ';'.
func (p *parser) assignStmt() *ast.AssignStmt {
	name := p.ident()
	eq := p.expect(token.EQ)
	value := p.expr(1)
	p.expect(token.SEMI)
	return &ast.AssignStmt{Name: name, Eq: eq, Value: value}
}

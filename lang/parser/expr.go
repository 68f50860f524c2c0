package parser

import (
	"github.com/andrewgrz/gears-lang/lang/ast"
	"github.com/andrewgrz/gears-lang/lang/token"
)

// precedence assigns each binary operator a climbing level: comparisons
// bind loosest, then +/-, then */. Grouping and literals bind tightest
// and are handled by primary, below any operator.
func precedence(tok token.Token) (prec int, ok bool) {
	switch tok {
	case token.EQL, token.NEQ, token.LT, token.LE, token.GT, token.GE:
		return 1, true
	case token.PLUS, token.MINUS:
		return 2, true
	case token.STAR, token.SLASH:
		return 3, true
	default:
		return 0, false
	}
}

// expr parses a binary expression via precedence climbing, left
// associative: the recursive call for the right operand requires
// strictly higher precedence than the operator just consumed.
func (p *parser) expr(minPrec int) ast.Expr {
	left := p.primary()
	for {
		prec, ok := precedence(p.tok.Kind)
		if !ok || prec < minPrec {
			return left
		}
		op := p.tok.Kind
		opPos := p.tok.Pos
		p.advance()
		right := p.expr(prec + 1)
		left = &ast.BinaryExpr{Left: left, Op: op, OpPos: opPos, Right: right}
	}
}

// primary parses literal | NAME | NAME '(' ARGS ')' | '[' ARGS ']' |
// '(' EXPR ')' | 'if' ... | 'while' ... | 'for' ....
func (p *parser) primary() ast.Expr {
	pos := p.tok.Pos
	switch p.tok.Kind {
	case token.INT:
		lit, v := p.tok.Lit, p.tok.IntVal
		p.advance()
		return &ast.IntLit{Start: pos, Raw: lit, Value: v}

	case token.TRUE:
		p.advance()
		return &ast.BoolLit{Start: pos, Value: true}

	case token.FALSE:
		p.advance()
		return &ast.BoolLit{Start: pos, Value: false}

	case token.NONE_KW:
		p.advance()
		return &ast.NoneLit{Start: pos}

	case token.STRING:
		raw, val := p.tok.Lit, p.tok.StrVal
		p.advance()
		return &ast.StringLit{Start: pos, Raw: raw, Value: val}

	case token.IDENT:
		name := p.ident()
		if p.tok.Kind != token.LPAREN {
			return name
		}
		return p.callExpr(name)

	case token.LBRACK:
		return p.listExpr()

	case token.LPAREN:
		p.advance()
		e := p.expr(1)
		p.expect(token.RPAREN)
		return e

	case token.IF:
		return p.ifExpr()

	case token.WHILE:
		return p.whileExpr()

	case token.FOR:
		return p.forExpr()

	default:
		p.fail(pos, "unexpected "+p.tok.Kind.String())
		return nil
	}
}

// callExpr parses NAME '(' (EXPR (',' EXPR)*)? ')', with name already
// parsed by the caller.
func (p *parser) callExpr(name *ast.Ident) *ast.CallExpr {
	lparen := p.expect(token.LPAREN)
	var args []ast.Expr
	var commas []token.Pos
	if p.tok.Kind != token.RPAREN {
		args = append(args, p.expr(1))
		for p.tok.Kind == token.COMMA {
			commas = append(commas, p.tok.Pos)
			p.advance()
			args = append(args, p.expr(1))
		}
	}
	rparen := p.expect(token.RPAREN)
	return &ast.CallExpr{Fn: name, Lparen: lparen, Args: args, Commas: commas, Rparen: rparen}
}

// listExpr parses '[' (EXPR (',' EXPR)*)? ']'.
func (p *parser) listExpr() *ast.ListExpr {
	lbrack := p.expect(token.LBRACK)
	var items []ast.Expr
	var commas []token.Pos
	if p.tok.Kind != token.RBRACK {
		items = append(items, p.expr(1))
		for p.tok.Kind == token.COMMA {
			commas = append(commas, p.tok.Pos)
			p.advance()
			items = append(items, p.expr(1))
		}
	}
	rbrack := p.expect(token.RBRACK)
	return &ast.ListExpr{Lbrack: lbrack, Items: items, Commas: commas, Rbrack: rbrack}
}

// ifExpr parses 'if' EXPR Block ('else' Block)?.
func (p *parser) ifExpr() *ast.IfExpr {
	ifPos := p.expect(token.IF)
	cond := p.expr(1)
	then := p.block()

	var elsePos token.Pos
	var alt *ast.Block
	if p.tok.Kind == token.ELSE {
		elsePos = p.tok.Pos
		p.advance()
		alt = p.block()
	}
	return &ast.IfExpr{If: ifPos, Cond: cond, Then: then, Else: elsePos, Alt: alt}
}

// whileExpr parses 'while' EXPR Block.
func (p *parser) whileExpr() *ast.WhileExpr {
	while := p.expect(token.WHILE)
	cond := p.expr(1)
	body := p.block()
	return &ast.WhileExpr{While: while, Cond: cond, Body: body}
}

// forExpr parses 'for' NAME 'in' INT-EXPR 'to' INT-EXPR Block.
func (p *parser) forExpr() *ast.ForExpr {
	forPos := p.expect(token.FOR)
	name := p.ident()
	in := p.expect(token.IN)
	low := p.expr(1)
	to := p.expect(token.TO)
	high := p.expr(1)
	body := p.block()
	return &ast.ForExpr{For: forPos, Name: name, In: in, Low: low, To: to, High: high, Body: body}
}

// Package parser implements the recursive-descent parser that turns a
// Gears token stream into an ast.Program: top-level function
// definitions, statements, and a precedence-climbing expression parser.
package parser

import (
	"fmt"

	"github.com/andrewgrz/gears-lang/lang/ast"
	langerrors "github.com/andrewgrz/gears-lang/lang/errors"
	"github.com/andrewgrz/gears-lang/lang/scanner"
	"github.com/andrewgrz/gears-lang/lang/token"
)

// Parse scans and parses src into an ast.Program. The first lexical or
// syntax error encountered aborts parsing; per the language's error
// propagation policy, a failed parse never returns a partial AST.
func Parse(src []byte) (prog *ast.Program, err error) {
	p := &parser{}
	p.sc = scanner.New(src, func(pos token.Pos, msg string) {
		if p.firstErr == nil {
			p.firstErr = &langerrors.LexError{Pos: pos, Msg: msg}
		}
	})

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseAbort); ok {
				err = p.firstErr
				return
			}
			panic(r)
		}
	}()

	p.advance()
	prog = p.program()
	if p.firstErr != nil {
		return nil, p.firstErr
	}
	return prog, nil
}

// parseAbort is panicked to unwind out of the recursive descent as soon
// as the first error is recorded; Parse recovers it and returns the
// recorded error.
type parseAbort struct{}

// parser holds the mutable state of one parse: the scanner, the current
// and one-token-lookahead tokens, and the first error encountered.
type parser struct {
	sc       *scanner.Scanner
	tok      scanner.Tok
	peeked   *scanner.Tok
	firstErr error
}

func (p *parser) advance() {
	if p.peeked != nil {
		p.tok = *p.peeked
		p.peeked = nil
		return
	}
	p.tok = p.sc.Scan()
}

func (p *parser) peek() scanner.Tok {
	if p.peeked == nil {
		tok := p.sc.Scan()
		p.peeked = &tok
	}
	return *p.peeked
}

func (p *parser) fail(pos token.Pos, msg string, expected ...token.Token) {
	if p.firstErr == nil {
		p.firstErr = &langerrors.ParseError{Pos: pos, Msg: msg, Expected: expected}
	}
	panic(parseAbort{})
}

// expect consumes the current token if its kind is one of kinds,
// returning its position; otherwise it aborts the parse.
func (p *parser) expect(kinds ...token.Token) token.Pos {
	pos := p.tok.Pos
	for _, k := range kinds {
		if p.tok.Kind == k {
			p.advance()
			return pos
		}
	}
	p.fail(pos, fmt.Sprintf("unexpected %s", p.tok.Kind), kinds...)
	return pos
}

// program parses Program := FuncDecl* EOF.
func (p *parser) program() *ast.Program {
	var funcs []*ast.FuncDecl
	for p.tok.Kind != token.EOF {
		funcs = append(funcs, p.funcDecl())
	}
	return &ast.Program{Funcs: funcs, EOF: p.tok.Pos}
}

// funcDecl parses:
//
//	'def' NAME '(' (Arg (',' Arg)*)? ')' ('->' TypeSet)? Block
func (p *parser) funcDecl() *ast.FuncDecl {
	def := p.expect(token.DEF)
	name := p.ident()
	lparen := p.expect(token.LPAREN)

	var params []*ast.Arg
	var commas []token.Pos
	if p.tok.Kind != token.RPAREN {
		params = append(params, p.arg())
		for p.tok.Kind == token.COMMA {
			commas = append(commas, p.tok.Pos)
			p.advance()
			params = append(params, p.arg())
		}
	}
	rparen := p.expect(token.RPAREN)

	var arrow token.Pos
	var retTypes []token.Token
	if p.tok.Kind == token.ARROW {
		arrow = p.tok.Pos
		p.advance()
		retTypes = p.typeSet()
	}

	body := p.block()
	return &ast.FuncDecl{
		Def: def, Name: name, Lparen: lparen, Params: params, Commas: commas,
		Rparen: rparen, Arrow: arrow, ReturnType: retTypes, Body: body,
	}
}

// arg parses Arg := NAME ':' TypeSet.
func (p *parser) arg() *ast.Arg {
	name := p.ident()
	p.expect(token.COLON)
	types := p.typeSet()
	return &ast.Arg{Name: name, Types: types}
}

// typeSet parses TypeSet := TYPE ('|' TYPE)*.
func (p *parser) typeSet() []token.Token {
	types := []token.Token{p.typeName()}
	for p.tok.Kind == token.PIPE {
		p.advance()
		types = append(types, p.typeName())
	}
	return types
}

// typeName parses a single TYPE token, translating the bare keyword
// `none` (scanned as NONE_KW, since the scanner doesn't know position
// context) into the NONE_TYPE tag the resolver expects.
func (p *parser) typeName() token.Token {
	switch p.tok.Kind {
	case token.INT_TYPE, token.BOOL_TYPE, token.STR_TYPE, token.LIST_TYPE:
		tok := p.tok.Kind
		p.advance()
		return tok
	case token.NONE_KW:
		p.advance()
		return token.NONE_TYPE
	default:
		p.fail(p.tok.Pos, fmt.Sprintf("unexpected %s", p.tok.Kind), token.INT_TYPE, token.BOOL_TYPE, token.STR_TYPE, token.LIST_TYPE, token.NONE_KW)
		return token.ILLEGAL
	}
}

func (p *parser) ident() *ast.Ident {
	pos := p.tok.Pos
	if p.tok.Kind != token.IDENT {
		p.fail(pos, fmt.Sprintf("unexpected %s", p.tok.Kind), token.IDENT)
	}
	lit := p.tok.Lit
	p.advance()
	return &ast.Ident{Start: pos, Lit: lit}
}

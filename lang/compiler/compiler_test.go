package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrewgrz/gears-lang/lang/ast"
	"github.com/andrewgrz/gears-lang/lang/token"
)

func ident(lit string) *ast.Ident { return &ast.Ident{Lit: lit} }

func intLit(v int64) *ast.IntLit { return &ast.IntLit{Value: v} }

// def m() -> int { 4 + 3 * 5 - 42 / 6 }
func TestCompileArithmeticTail(t *testing.T) {
	body := &ast.Block{
		Tail: &ast.BinaryExpr{
			Left: &ast.BinaryExpr{
				Left:  intLit(4),
				Op:    token.PLUS,
				Right: &ast.BinaryExpr{Left: intLit(3), Op: token.STAR, Right: intLit(5)},
			},
			Op:    token.MINUS,
			Right: &ast.BinaryExpr{Left: intLit(42), Op: token.SLASH, Right: intLit(6)},
		},
	}
	prog := &ast.Program{Funcs: []*ast.FuncDecl{
		{Name: ident("m"), ReturnType: []token.Token{token.INT_TYPE}, Body: body},
	}}

	mod, err := Compile(prog, "test")
	require.NoError(t, err)

	fn, _, ok := mod.Function("m")
	require.True(t, ok)
	require.NotEmpty(t, fn.Code)
	require.Equal(t, 0, fn.Argc)
}

// def f(a:int,b:int)->int{ let c:int=a+b; c*4 }
func TestCompileLetAndParams(t *testing.T) {
	body := &ast.Block{
		Stmts: []ast.Stmt{
			&ast.LetStmt{
				Name:  ident("c"),
				Types: []token.Token{token.INT_TYPE},
				Value: &ast.BinaryExpr{Left: ident("a"), Op: token.PLUS, Right: ident("b")},
			},
		},
		Tail: &ast.BinaryExpr{Left: ident("c"), Op: token.STAR, Right: intLit(4)},
	}
	prog := &ast.Program{Funcs: []*ast.FuncDecl{
		{
			Name: ident("f"),
			Params: []*ast.Arg{
				{Name: ident("a"), Types: []token.Token{token.INT_TYPE}},
				{Name: ident("b"), Types: []token.Token{token.INT_TYPE}},
			},
			ReturnType: []token.Token{token.INT_TYPE},
			Body:       body,
		},
	}}

	mod, err := Compile(prog, "test")
	require.NoError(t, err)
	fn, _, ok := mod.Function("f")
	require.True(t, ok)
	require.Equal(t, 2, fn.Argc)
	require.GreaterOrEqual(t, fn.NLocals, 3)
}

func TestCompileTypeErrorOnLet(t *testing.T) {
	body := &ast.Block{
		Stmts: []ast.Stmt{
			&ast.LetStmt{Name: ident("a"), Types: []token.Token{token.INT_TYPE}, Value: &ast.StringLit{Value: "x"}},
		},
		Tail: ident("a"),
	}
	prog := &ast.Program{Funcs: []*ast.FuncDecl{
		{Name: ident("bad"), ReturnType: []token.Token{token.INT_TYPE}, Body: body},
	}}

	_, err := Compile(prog, "test")
	require.Error(t, err)
}

func TestCompileUndefinedSymbol(t *testing.T) {
	body := &ast.Block{Tail: ident("nope")}
	prog := &ast.Program{Funcs: []*ast.FuncDecl{
		{Name: ident("bad"), Body: body},
	}}

	_, err := Compile(prog, "test")
	require.Error(t, err)
}

func TestCompileDuplicateFunction(t *testing.T) {
	prog := &ast.Program{Funcs: []*ast.FuncDecl{
		{Name: ident("f"), Body: &ast.Block{}},
		{Name: ident("f"), Body: &ast.Block{}},
	}}

	_, err := Compile(prog, "test")
	require.Error(t, err)
}

// def g(b:bool)->int{ if b { 5 } else { 4 } }
func TestCompileIfElse(t *testing.T) {
	body := &ast.Block{
		Tail: &ast.IfExpr{
			Cond: ident("b"),
			Then: &ast.Block{Tail: intLit(5)},
			Else: token.MakePos(1, 1),
			Alt:  &ast.Block{Tail: intLit(4)},
		},
	}
	prog := &ast.Program{Funcs: []*ast.FuncDecl{
		{
			Name:       ident("g"),
			Params:     []*ast.Arg{{Name: ident("b"), Types: []token.Token{token.BOOL_TYPE}}},
			ReturnType: []token.Token{token.INT_TYPE},
			Body:       body,
		},
	}}

	mod, err := Compile(prog, "test")
	require.NoError(t, err)
	fn, _, _ := mod.Function("g")
	require.Contains(t, fn.Disassemble(), "JUMP_IF_FALSE")
}

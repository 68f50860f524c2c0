package compiler

import (
	"fmt"

	"github.com/andrewgrz/gears-lang/lang/ast"
	"github.com/andrewgrz/gears-lang/lang/bytecode"
	langerrors "github.com/andrewgrz/gears-lang/lang/errors"
	"github.com/andrewgrz/gears-lang/lang/resolver"
)

// block visits a function or control-flow body: each statement in turn,
// then the optional tail expression. It returns the type set of the
// value the block leaves on the stack: the tail expression's type set,
// or {none} if the body has no tail expression.
func (fc *fcomp) block(scope *resolver.Scope, b *ast.Block) (resolver.TypeSet, error) {
	for _, s := range b.Stmts {
		if err := fc.stmt(scope, s); err != nil {
			return nil, err
		}
	}
	if b.Tail == nil {
		fc.builder.Emit(bytecode.LOAD_NONE)
		return resolver.NewTypeSet(resolver.TagNone), nil
	}
	return fc.expr(scope, b.Tail)
}

func (fc *fcomp) stmt(scope *resolver.Scope, s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.LetStmt:
		return fc.letStmt(scope, s)
	case *ast.AssignStmt:
		return fc.assignStmt(scope, s)
	case *ast.ExprStmt:
		_, err := fc.expr(scope, s.Expr)
		return err
	default:
		return &langerrors.InternalCompilerError{Msg: fmt.Sprintf("unhandled statement type %T", s)}
	}
}

func (fc *fcomp) letStmt(scope *resolver.Scope, s *ast.LetStmt) error {
	got, err := fc.expr(scope, s.Value)
	if err != nil {
		return err
	}
	declared := typeSetFromTokens(s.Types)
	if !got.Subset(declared) {
		return &langerrors.TypeError{Pos: s.Let, Msg: fmt.Sprintf("let %s: declared %s, got %s", s.Name.Lit, declared, got)}
	}
	slot := scope.DefineVariable(s.Name.Lit, declared)
	s.Slot = slot
	fc.builder.NoteSlot(slot)
	fc.builder.Emit(bytecode.STORE_FAST, byte(slot))
	return nil
}

func (fc *fcomp) assignStmt(scope *resolver.Scope, s *ast.AssignStmt) error {
	sym, global, ok := scope.Resolve(s.Name.Lit)
	if !ok {
		return &langerrors.SymbolNotFoundError{Pos: s.Name.Start, Name: s.Name.Lit}
	}
	if global || sym.Kind != resolver.Variable {
		return &langerrors.TypeError{Pos: s.Name.Start, Msg: fmt.Sprintf("%q is not an assignable variable", s.Name.Lit)}
	}

	got, err := fc.expr(scope, s.Value)
	if err != nil {
		return err
	}
	if !got.Subset(sym.Types) {
		return &langerrors.TypeError{Pos: s.Name.Start, Msg: fmt.Sprintf("assignment to %s: declared %s, got %s", s.Name.Lit, sym.Types, got)}
	}
	s.Slot = sym.Slot
	fc.builder.Emit(bytecode.STORE_FAST, byte(sym.Slot))
	return nil
}

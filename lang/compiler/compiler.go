// Package compiler lowers a parsed AST into a bytecode
// Module. It runs in two passes over the program's function
// definitions: a forward-declaration pass that populates the global
// scope so functions may call each other regardless of definition
// order, then a body pass that emits bytecode for each function in
// turn, consulting a resolver.Scope for symbol and type-set information
// as it goes.
package compiler

import (
	"fmt"

	"github.com/andrewgrz/gears-lang/lang/ast"
	"github.com/andrewgrz/gears-lang/lang/bytecode"
	langerrors "github.com/andrewgrz/gears-lang/lang/errors"
	"github.com/andrewgrz/gears-lang/lang/resolver"
	"github.com/andrewgrz/gears-lang/lang/token"
)

// Compile lowers prog into a bytecode.Module named name. It performs
// both the forward-declaration pass and the body pass described in the
// package doc comment.
func Compile(prog *ast.Program, name string) (*bytecode.Module, error) {
	pc := &pcomp{
		builder: bytecode.NewModuleBuilder(name),
		global:  resolver.NewGlobal(),
	}

	if err := pc.declareFunctions(prog); err != nil {
		return nil, err
	}
	for _, fn := range prog.Funcs {
		if err := pc.compileFunction(fn); err != nil {
			return nil, err
		}
	}
	return pc.builder.Build(), nil
}

// pcomp holds the compiler state shared across all functions of one
// program: the module builder and the global (function-symbol-only)
// scope.
type pcomp struct {
	builder *bytecode.ModuleBuilder
	global  *resolver.Scope
}

func typeSetFromTokens(toks []token.Token) resolver.TypeSet {
	if len(toks) == 0 {
		return resolver.NewTypeSet(resolver.TagNone)
	}
	tags := make([]resolver.TypeTag, len(toks))
	for i, t := range toks {
		tags[i] = resolver.TagFromToken(t)
	}
	return resolver.NewTypeSet(tags...)
}

// declareFunctions is compiler pass 1: insert a Function symbol into the
// global scope for every top-level definition, recording argument and
// return types. A duplicate name is an error.
func (pc *pcomp) declareFunctions(prog *ast.Program) error {
	for i, fn := range prog.Funcs {
		argTypes := make([]resolver.TypeSet, len(fn.Params))
		for j, p := range fn.Params {
			argTypes[j] = typeSetFromTokens(p.Types)
		}
		returnTypes := typeSetFromTokens(fn.ReturnType)
		if err := pc.global.DefineFunction(fn.Name.Lit, argTypes, returnTypes, i); err != nil {
			start, _ := fn.Span()
			return &langerrors.InternalCompilerError{Msg: fmt.Sprintf("%s: %v", start, err)}
		}
	}
	return nil
}

// compileFunction is compiler pass 2 for a single function definition:
// open it in the builder, bind its parameters, lower its body, and
// check the body's resulting type set against the declared return set.
func (pc *pcomp) compileFunction(fn *ast.FuncDecl) error {
	pc.builder.BeginFunction(fn.Name.Lit, len(fn.Params))

	scope := pc.global.PushFunction(len(fn.Params))
	for i, p := range fn.Params {
		types := typeSetFromTokens(p.Types)
		slot := scope.DefineVariable(p.Name.Lit, types)
		if slot != i {
			return &langerrors.InternalCompilerError{Msg: fmt.Sprintf("parameter %q did not receive its argument slot", p.Name.Lit)}
		}
	}

	fc := &fcomp{pc: pc, builder: pc.builder}
	got, err := fc.block(scope, fn.Body)
	if err != nil {
		return err
	}

	declared := typeSetFromTokens(fn.ReturnType)
	if !got.Subset(declared) {
		start, _ := fn.Body.Span()
		return &langerrors.TypeError{Pos: start, Msg: fmt.Sprintf("function %q returns %s, declared %s", fn.Name.Lit, got, declared)}
	}

	return pc.builder.FinishFunction()
}

// fcomp holds per-function compiler state: a back-reference to the
// shared pcomp and builder. Kept as a distinct type (mirroring the
// program/function compiler-state split of the original implementation)
// even though it currently carries no state of its own, so block-local
// helper methods have a natural receiver.
type fcomp struct {
	pc      *pcomp
	builder *bytecode.ModuleBuilder
}

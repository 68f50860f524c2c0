// Package gears is the host-facing façade over the compiler and virtual
// machine: compile source text or a file into a bytecode.Module, execute
// one of its functions, or disassemble it for debugging. Callers that
// want scanner- or parser-level access use the lang/scanner, lang/parser
// and lang/compiler packages directly; this package is the common path.
package gears

import (
	"io"
	"os"

	"github.com/andrewgrz/gears-lang/lang/bytecode"
	"github.com/andrewgrz/gears-lang/lang/compiler"
	langerrors "github.com/andrewgrz/gears-lang/lang/errors"
	"github.com/andrewgrz/gears-lang/lang/machine"
	"github.com/andrewgrz/gears-lang/lang/parser"
	"github.com/andrewgrz/gears-lang/lang/value"
)

// CompileSource parses and compiles text into a Module named name. The
// name is attached to the resulting Module and has no effect on
// compilation; it is purely a label for disassembly and diagnostics.
func CompileSource(text []byte, name string) (*bytecode.Module, error) {
	prog, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	return compiler.Compile(prog, name)
}

// CompileFile reads path and compiles it, naming the resulting Module
// after path as given. Read failures are reported as IoError,
// distinct from the CompileError variants returned by CompileSource.
func CompileFile(path string) (*bytecode.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &langerrors.IoError{Op: "read", Path: path, Err: err}
	}
	return CompileSource(data, path)
}

// Execute runs fnName in module with args, returning its result. Argument
// count is validated against the function's declared arity before any
// bytecode runs.
func Execute(module *bytecode.Module, fnName string, args []value.Value) (value.Value, error) {
	return machine.Execute(module, fnName, args)
}

// Disassemble writes fnName's bytecode listing to out. With fnName empty,
// it writes a listing of every function in module.
func Disassemble(module *bytecode.Module, fnName string, out io.Writer) error {
	if fnName == "" {
		_, err := io.WriteString(out, module.Disassemble())
		return err
	}
	fn, _, ok := module.Function(fnName)
	if !ok {
		return &langerrors.SymbolNotFoundError{Name: fnName}
	}
	_, err := io.WriteString(out, fn.Disassemble())
	return err
}

// ExitCode maps err to the CLI wrapper's exit status convention: 0 ok, 1
// runtime error, 2 compile error, 3 I/O error.
func ExitCode(err error) int {
	switch err.(type) {
	case nil:
		return 0
	case *langerrors.IoError:
		return 3
	case *langerrors.LexError, *langerrors.ParseError, *langerrors.SymbolNotFoundError,
		*langerrors.TypeError, *langerrors.InternalCompilerError:
		return 2
	default:
		return 1
	}
}

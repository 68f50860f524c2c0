package machine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrewgrz/gears-lang/lang/bytecode"
	"github.com/andrewgrz/gears-lang/lang/value"
)

func buildSimple(t *testing.T, emit func(b *bytecode.ModuleBuilder)) *bytecode.Module {
	t.Helper()
	b := bytecode.NewModuleBuilder("test")
	b.BeginFunction("simple_math", 0)
	emit(b)
	require.NoError(t, b.FinishFunction())
	return b.Build()
}

func TestAddition(t *testing.T) {
	mod := buildSimple(t, func(b *bytecode.ModuleBuilder) {
		b.Emit(bytecode.LOAD_CONST, byte(b.Intern(value.Int(3))))
		b.Emit(bytecode.LOAD_CONST, byte(b.Intern(value.Int(4))))
		b.Emit(bytecode.BIN_ADD)
		b.Emit(bytecode.LOAD_CONST, byte(b.Intern(value.Int(8))))
		b.Emit(bytecode.BIN_ADD)
	})
	got, err := Execute(mod, "simple_math", nil)
	require.NoError(t, err)
	require.Equal(t, value.Int(15), got)
}

func TestSubtraction(t *testing.T) {
	mod := buildSimple(t, func(b *bytecode.ModuleBuilder) {
		b.Emit(bytecode.LOAD_CONST, byte(b.Intern(value.Int(20))))
		b.Emit(bytecode.LOAD_CONST, byte(b.Intern(value.Int(4))))
		b.Emit(bytecode.BIN_SUB)
		b.Emit(bytecode.LOAD_CONST, byte(b.Intern(value.Int(5))))
		b.Emit(bytecode.BIN_SUB)
	})
	got, err := Execute(mod, "simple_math", nil)
	require.NoError(t, err)
	require.Equal(t, value.Int(11), got)
}

func TestMul(t *testing.T) {
	mod := buildSimple(t, func(b *bytecode.ModuleBuilder) {
		b.Emit(bytecode.LOAD_CONST, byte(b.Intern(value.Int(3))))
		b.Emit(bytecode.LOAD_CONST, byte(b.Intern(value.Int(4))))
		b.Emit(bytecode.BIN_MUL)
		b.Emit(bytecode.LOAD_CONST, byte(b.Intern(value.Int(5))))
		b.Emit(bytecode.BIN_MUL)
	})
	got, err := Execute(mod, "simple_math", nil)
	require.NoError(t, err)
	require.Equal(t, value.Int(60), got)
}

func TestDiv(t *testing.T) {
	mod := buildSimple(t, func(b *bytecode.ModuleBuilder) {
		b.Emit(bytecode.LOAD_CONST, byte(b.Intern(value.Int(50))))
		b.Emit(bytecode.LOAD_CONST, byte(b.Intern(value.Int(5))))
		b.Emit(bytecode.BIN_DIV)
		b.Emit(bytecode.LOAD_CONST, byte(b.Intern(value.Int(5))))
		b.Emit(bytecode.BIN_DIV)
	})
	got, err := Execute(mod, "simple_math", nil)
	require.NoError(t, err)
	require.Equal(t, value.Int(2), got)
}

func TestArityMismatch(t *testing.T) {
	mod := buildSimple(t, func(b *bytecode.ModuleBuilder) {})
	_, err := Execute(mod, "simple_math", []value.Value{value.Int(1)})
	require.Error(t, err)
}

func TestFunctionNotFound(t *testing.T) {
	mod := buildSimple(t, func(b *bytecode.ModuleBuilder) {})
	_, err := Execute(mod, "nope", nil)
	require.Error(t, err)
}

// def g(b:bool)->int{ if b { 5 } else { 4 } }
func TestIfElseBranches(t *testing.T) {
	build := func() *bytecode.Module {
		b := bytecode.NewModuleBuilder("test")
		b.BeginFunction("g", 1)
		b.Emit(bytecode.LOAD_FAST, 0)
		jif := b.StartJumpIfFalse()
		b.Emit(bytecode.LOAD_CONST, byte(b.Intern(value.Int(5))))
		els, err := b.StartElse(jif)
		require.NoError(t, err)
		b.Emit(bytecode.LOAD_CONST, byte(b.Intern(value.Int(4))))
		require.NoError(t, b.EndJump(els))
		require.NoError(t, b.FinishFunction())
		return b.Build()
	}

	mod := build()
	got, err := Execute(mod, "g", []value.Value{value.TRUE})
	require.NoError(t, err)
	require.Equal(t, value.Int(5), got)

	mod = build()
	got, err = Execute(mod, "g", []value.Value{value.FALSE})
	require.NoError(t, err)
	require.Equal(t, value.Int(4), got)
}

// def w()->int{ let x:int=0; while x<5 { x = x+1 }; x }
func TestWhileLoop(t *testing.T) {
	b := bytecode.NewModuleBuilder("test")
	b.BeginFunction("w", 0)
	zero := byte(b.Intern(value.Int(0)))
	five := byte(b.Intern(value.Int(5)))
	one := byte(b.Intern(value.Int(1)))

	b.Emit(bytecode.LOAD_CONST, zero)
	b.Emit(bytecode.STORE_FAST, 0)
	b.NoteSlot(0)

	head := b.StartLoopCheck()
	b.Emit(bytecode.LOAD_FAST, 0)
	b.Emit(bytecode.LOAD_CONST, five)
	b.Emit(bytecode.BIN_LESS_THAN)
	exit := b.StartJumpIfFalse()
	b.Emit(bytecode.LOAD_FAST, 0)
	b.Emit(bytecode.LOAD_CONST, one)
	b.Emit(bytecode.BIN_ADD)
	b.Emit(bytecode.STORE_FAST, 0)
	require.NoError(t, b.EndLoop(head, exit))

	b.Emit(bytecode.LOAD_FAST, 0)
	require.NoError(t, b.FinishFunction())

	got, err := Execute(b.Build(), "w", nil)
	require.NoError(t, err)
	require.Equal(t, value.Int(5), got)
}

// def fact(n:int)->int { if n<=1 {1} else {n*fact(n-1)} }
func TestRecursiveCall(t *testing.T) {
	b := bytecode.NewModuleBuilder("test")
	b.BeginFunction("fact", 1)

	one := byte(b.Intern(value.Int(1)))
	b.Emit(bytecode.LOAD_FAST, 0)
	b.Emit(bytecode.LOAD_CONST, one)
	b.Emit(bytecode.BIN_LESS_THAN_EQUAL)
	jif := b.StartJumpIfFalse()
	b.Emit(bytecode.LOAD_CONST, one)
	els, err := b.StartElse(jif)
	require.NoError(t, err)
	b.Emit(bytecode.LOAD_FAST, 0)
	b.Emit(bytecode.LOAD_FAST, 0)
	b.Emit(bytecode.LOAD_CONST, one)
	b.Emit(bytecode.BIN_SUB)
	b.Emit(bytecode.CALL_FUNCTION, 0, 1)
	b.Emit(bytecode.BIN_MUL)
	require.NoError(t, b.EndJump(els))
	require.NoError(t, b.FinishFunction())

	got, err := Execute(b.Build(), "fact", []value.Value{value.Int(5)})
	require.NoError(t, err)
	require.Equal(t, value.Int(120), got)
}

package bytecode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrewgrz/gears-lang/lang/value"
)

func TestInternDedup(t *testing.T) {
	b := NewModuleBuilder("m")
	i1 := b.Intern(value.Int(42))
	i2 := b.Intern(value.Int(42))
	i3 := b.Intern(value.Str("42"))
	require.Equal(t, i1, i2)
	require.NotEqual(t, i1, i3)
}

func TestFinishFunctionAppendsReturn(t *testing.T) {
	b := NewModuleBuilder("m")
	b.BeginFunction("f", 0)
	b.Emit(LOAD_TRUE)
	require.NoError(t, b.FinishFunction())

	mod := b.Build()
	fn, idx, ok := mod.Function("f")
	require.True(t, ok)
	require.Equal(t, 0, idx)
	require.Equal(t, []byte{byte(LOAD_TRUE), byte(RETURN)}, fn.Code)
}

func TestFinishFunctionNoDoubleReturn(t *testing.T) {
	b := NewModuleBuilder("m")
	b.BeginFunction("f", 0)
	b.Emit(LOAD_NONE)
	b.Emit(RETURN)
	require.NoError(t, b.FinishFunction())

	fn, _, _ := b.Build().Function("f")
	require.Equal(t, []byte{byte(LOAD_NONE), byte(RETURN)}, fn.Code)
}

func TestIfElseJumpPatching(t *testing.T) {
	b := NewModuleBuilder("m")
	b.BeginFunction("f", 0)

	b.Emit(LOAD_TRUE)
	jifPos := b.StartJumpIfFalse()
	b.Emit(LOAD_CONST, 0) // then branch
	elsePos, err := b.StartElse(jifPos)
	require.NoError(t, err)
	b.Emit(LOAD_CONST, 1) // else branch
	require.NoError(t, b.EndJump(elsePos))
	b.Emit(RETURN)
	require.NoError(t, b.FinishFunction())

	fn, _, _ := b.Build().Function("f")
	// LOAD_TRUE(1) JUMP_IF_FALSE,op(2) LOAD_CONST,0(2) JUMP,op(2) LOAD_CONST,1(2) RETURN(1)
	require.Len(t, fn.Code, 10)
	require.Equal(t, byte(JUMP_IF_FALSE), fn.Code[1])
	// jifPos is patched to land just past the JUMP opcode that StartElse emits
	require.EqualValues(t, elsePos-jifPos, fn.Code[jifPos])
	require.Equal(t, byte(JUMP), fn.Code[elsePos-1])
	// elsePos is patched to the end of the opcode vector at the time of
	// EndJump, which is the offset of the RETURN emitted afterwards
	require.EqualValues(t, (len(fn.Code)-1)-elsePos-1, fn.Code[elsePos])
}

func TestWhileLoopPatching(t *testing.T) {
	b := NewModuleBuilder("m")
	b.BeginFunction("f", 0)

	head := b.StartLoopCheck()
	b.Emit(LOAD_TRUE)
	exit := b.StartJumpIfFalse()
	b.Emit(LOAD_NONE)
	require.NoError(t, b.EndLoop(head, exit))
	b.Emit(RETURN)
	require.NoError(t, b.FinishFunction())

	fn, _, _ := b.Build().Function("f")
	require.Equal(t, byte(JUMP_ABSOLUTE), fn.Code[4])
	require.EqualValues(t, head, fn.Code[5])
}

func TestDisassemble(t *testing.T) {
	b := NewModuleBuilder("m")
	b.BeginFunction("f", 1)
	b.Emit(LOAD_FAST, 0)
	b.Emit(RETURN)
	require.NoError(t, b.FinishFunction())

	out := b.Build().Disassemble()
	require.Contains(t, out, "LOAD_FAST")
	require.Contains(t, out, "RETURN")
}

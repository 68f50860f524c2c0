package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveWalksOutward(t *testing.T) {
	global := NewGlobal()
	require.NoError(t, global.DefineFunction("main", nil, NewTypeSet(TagNone), 0))

	fn := global.PushFunction(1)
	fn.DefineVariable("x", NewTypeSet(TagInt))

	block := fn.PushBlock()
	block.DefineVariable("y", NewTypeSet(TagBool))

	sym, global2, ok := block.Resolve("y")
	require.True(t, ok)
	require.False(t, global2)
	require.Equal(t, Variable, sym.Kind)

	sym, global2, ok = block.Resolve("x")
	require.True(t, ok)
	require.False(t, global2)
	require.Equal(t, 0, sym.Slot)

	sym, global2, ok = block.Resolve("main")
	require.True(t, ok)
	require.True(t, global2)
	require.Equal(t, Function, sym.Kind)

	_, _, ok = block.Resolve("nope")
	require.False(t, ok)
}

func TestSlotAllocationNeverReused(t *testing.T) {
	global := NewGlobal()
	fn := global.PushFunction(0)

	block1 := fn.PushBlock()
	s1 := block1.DefineVariable("a", NewTypeSet(TagInt))
	s2 := block1.DefineVariable("b", NewTypeSet(TagInt))
	require.Equal(t, 0, s1)
	require.Equal(t, 1, s2)

	// block1 "exits" (simply goes out of scope); block2 is a sibling that
	// must not reuse slots 0 or 1.
	block2 := fn.PushBlock()
	s3 := block2.DefineVariable("c", NewTypeSet(TagInt))
	require.Equal(t, 2, s3)
	require.Equal(t, 3, fn.NLocals())
}

func TestDuplicateFunctionDeclIsError(t *testing.T) {
	global := NewGlobal()
	require.NoError(t, global.DefineFunction("f", nil, NewTypeSet(TagNone), 0))
	require.Error(t, global.DefineFunction("f", nil, NewTypeSet(TagNone), 1))
}

func TestTypeSetOps(t *testing.T) {
	a := NewTypeSet(TagInt, TagBool)
	b := NewTypeSet(TagInt)
	require.True(t, b.Subset(a))
	require.False(t, a.Subset(b))

	u := b.Union(NewTypeSet(TagBool))
	require.True(t, u.Equals(a))
}

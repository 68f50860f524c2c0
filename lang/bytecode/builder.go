package bytecode

import (
	"fmt"

	"github.com/dolthub/swiss"

	langerrors "github.com/andrewgrz/gears-lang/lang/errors"
	"github.com/andrewgrz/gears-lang/lang/value"
)

// ModuleBuilder accumulates functions and a deduplicated constant pool
// into a Module. The compiler drives it function by function; within a
// function it uses the jump-patch primitives to emit forward and
// backward branches without a separate control-flow-graph pass.
type ModuleBuilder struct {
	name      string
	constants []value.Value
	constIdx  *swiss.Map[string, uint32]
	functions []*Function
	byName    map[string]int

	cur *funcBuilder
}

type funcBuilder struct {
	name    string
	argc    int
	nlocals int
	code    []byte
}

// NewModuleBuilder starts a builder for a module named name.
func NewModuleBuilder(name string) *ModuleBuilder {
	return &ModuleBuilder{
		name:      name,
		constIdx:  swiss.NewMap[string, uint32](16),
		byName:    make(map[string]int),
	}
}

// Intern inserts v into the constant pool, returning the existing index
// if a structurally-equal value is already present.
func (b *ModuleBuilder) Intern(v value.Value) uint32 {
	key := constKey(v)
	if idx, ok := b.constIdx.Get(key); ok {
		return idx
	}
	idx := uint32(len(b.constants))
	b.constants = append(b.constants, v)
	b.constIdx.Put(key, idx)
	return idx
}

// constKey renders v into a canonical string uniquely identifying its
// structural-equality class, for use as the constant pool's dedup index.
func constKey(v value.Value) string {
	switch v.Kind() {
	case value.KindInt:
		return fmt.Sprintf("i%d", v.AsInt())
	case value.KindBool:
		return fmt.Sprintf("b%t", v.AsBool())
	case value.KindStr:
		return fmt.Sprintf("s%q", v.AsStr())
	case value.KindList:
		s := "l("
		for _, e := range v.AsList() {
			s += constKey(e) + ","
		}
		return s + ")"
	default:
		return "n"
	}
}

// BeginFunction opens a new function named name with argc declared
// parameters (which occupy slots 0..argc-1).
func (b *ModuleBuilder) BeginFunction(name string, argc int) {
	b.cur = &funcBuilder{name: name, argc: argc, nlocals: argc}
}

// Emit appends opcode op with the given immediate operand bytes.
func (b *ModuleBuilder) Emit(op Opcode, operands ...byte) {
	b.cur.code = append(b.cur.code, byte(op))
	b.cur.code = append(b.cur.code, operands...)
}

// Pos returns the current end-of-vector offset of the function under
// construction.
func (b *ModuleBuilder) Pos() int { return len(b.cur.code) }

// NoteSlot records that slot index idx is in use, growing the function's
// reported local count if necessary.
func (b *ModuleBuilder) NoteSlot(idx int) {
	if idx+1 > b.cur.nlocals {
		b.cur.nlocals = idx + 1
	}
}

// StartJumpIfFalse emits a JUMP_IF_FALSE with a placeholder operand and
// returns the operand's byte position for later patching.
func (b *ModuleBuilder) StartJumpIfFalse() int {
	b.Emit(JUMP_IF_FALSE, 0)
	return len(b.cur.code) - 1
}

// StartElse emits a JUMP with a placeholder operand (to be patched by a
// later EndJump), patches the earlier pos (typically a StartJumpIfFalse
// operand position) to land just past this new jump, and returns the new
// jump's operand position.
func (b *ModuleBuilder) StartElse(pos int) (int, error) {
	b.Emit(JUMP, 0)
	elsePos := len(b.cur.code) - 1
	if err := b.patchTo(pos, len(b.cur.code)); err != nil {
		return 0, err
	}
	return elsePos, nil
}

// EndJump patches the operand at pos to the current end of the opcode
// vector.
func (b *ModuleBuilder) EndJump(pos int) error {
	return b.patchTo(pos, len(b.cur.code))
}

// StartLoopCheck returns the current end-of-vector offset as a loop-head
// marker, to be passed to EndLoop.
func (b *ModuleBuilder) StartLoopCheck() int { return len(b.cur.code) }

// EndLoop emits a JUMP_ABSOLUTE back to head and patches exitPatch (an
// operand position from a StartJumpIfFalse call) to the current end of
// the opcode vector.
func (b *ModuleBuilder) EndLoop(head, exitPatch int) error {
	if head < 0 || head > 0xff {
		return &langerrors.InternalCompilerError{Msg: fmt.Sprintf("loop head %d does not fit in 1-byte JUMP_ABSOLUTE operand", head)}
	}
	b.Emit(JUMP_ABSOLUTE, byte(head))
	return b.patchTo(exitPatch, len(b.cur.code))
}

// patchTo computes the forward-offset encoding used by JUMP/JUMP_IF_FALSE
// and writes it at pos. The VM reads the operand byte (advancing ip to
// pos+1) before adding the offset, so the offset is measured from pos+1,
// not from pos itself. JUMP_ABSOLUTE operands, by contrast, are written
// directly as the absolute target by EndLoop.
func (b *ModuleBuilder) patchTo(pos, target int) error {
	offset := target - pos - 1
	if offset < 0 || offset > 0xff {
		return &langerrors.InternalCompilerError{Msg: fmt.Sprintf("jump offset %d does not fit in 1 byte", offset)}
	}
	b.cur.code[pos] = byte(offset)
	return nil
}

// FinishFunction appends a trailing RETURN if the last emitted opcode is
// not already RETURN, registers the function in the module's table and
// name map, and clears the builder's current function.
func (b *ModuleBuilder) FinishFunction() error {
	fb := b.cur
	if len(fb.code) == 0 || Opcode(fb.code[len(fb.code)-1]) != RETURN {
		fb.code = append(fb.code, byte(RETURN))
	}
	if _, exists := b.byName[fb.name]; exists {
		return &langerrors.InternalCompilerError{Msg: fmt.Sprintf("function %q already finished", fb.name)}
	}
	b.byName[fb.name] = len(b.functions)
	b.functions = append(b.functions, &Function{
		Name:    fb.name,
		Argc:    fb.argc,
		NLocals: fb.nlocals,
		Code:    fb.code,
	})
	b.cur = nil
	return nil
}

// FunctionIndex returns the module-stable index of a function by name.
// Only functions already registered by FinishFunction are found.
func (b *ModuleBuilder) FunctionIndex(name string) (int, bool) {
	idx, ok := b.byName[name]
	return idx, ok
}

// Build finalizes the builder into an immutable Module.
func (b *ModuleBuilder) Build() *Module {
	return &Module{
		Name:      b.name,
		Constants: b.constants,
		Functions: b.functions,
		byName:    b.byName,
	}
}

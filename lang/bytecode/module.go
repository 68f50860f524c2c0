package bytecode

import (
	"fmt"

	"github.com/andrewgrz/gears-lang/lang/value"
)

// Function is a single compiled function: its name, declared argument
// count, and opcode vector. The number of local slots it requires is
// implied by the highest slot index the compiler wrote and is recorded
// here so the VM can size the locals array without rescanning bytecode.
type Function struct {
	Name    string
	Argc    int
	NLocals int
	Code    []byte
}

// Module is a compiled, immutable unit: a name, a deduplicated constant
// pool, an ordered function table, and a name→index map. Function index
// identity is stable for the module's lifetime, which is what
// CALL_FUNCTION's fn_index operand addresses.
type Module struct {
	Name      string
	Constants []value.Value
	Functions []*Function
	byName    map[string]int
}

// Function looks up a function by name.
func (m *Module) Function(name string) (*Function, int, bool) {
	idx, ok := m.byName[name]
	if !ok {
		return nil, 0, false
	}
	return m.Functions[idx], idx, true
}

// FunctionAt returns the function at idx, which must be a valid index
// produced by the compiler (e.g. via CALL_FUNCTION's operand).
func (m *Module) FunctionAt(idx int) *Function {
	return m.Functions[idx]
}

// Disassemble renders every function in m as human-readable bytecode
// listings.
func (m *Module) Disassemble() string {
	out := fmt.Sprintf("module %s\n", m.Name)
	for _, fn := range m.Functions {
		out += fn.Disassemble()
	}
	return out
}

// Disassemble renders fn's bytecode as one instruction per line, in the
// form "offset: OPCODE operand".
func (fn *Function) Disassemble() string {
	out := fmt.Sprintf("function %s (argc=%d, locals=%d)\n", fn.Name, fn.Argc, fn.NLocals)
	code := fn.Code
	for ip := 0; ip < len(code); {
		op := Opcode(code[ip])
		start := ip
		ip++
		switch op {
		case CALL_FUNCTION:
			fnIdx, argc := code[ip], code[ip+1]
			out += fmt.Sprintf("  %4d: %-16s %d, %d\n", start, op, fnIdx, argc)
			ip += 2
		case RETURN, BIN_ADD, BIN_SUB, BIN_MUL, BIN_DIV,
			BIN_EQUAL, BIN_NOT_EQUAL, BIN_LESS_THAN, BIN_LESS_THAN_EQUAL,
			BIN_GREATER_THAN, BIN_GREATER_THAN_EQUAL,
			LOAD_TRUE, LOAD_FALSE, LOAD_NONE, INC_ONE:
			out += fmt.Sprintf("  %4d: %s\n", start, op)
		default:
			operand := code[ip]
			out += fmt.Sprintf("  %4d: %-16s %d\n", start, op, operand)
			ip++
		}
	}
	return out
}

// Package bytecode defines the Gears instruction set, the Module/Function
// container format, the constant pool, and the ModuleBuilder used by the
// compiler to emit and jump-patch function bodies.
package bytecode

// Opcode identifies a single VM instruction. Byte values are pinned to
// match the original gears-lang implementation's opcode numbering.
type Opcode uint8

const (
	RETURN         Opcode = 0
	CALL_FUNCTION  Opcode = 1
	JUMP           Opcode = 2
	JUMP_ABSOLUTE  Opcode = 3
	JUMP_IF_FALSE  Opcode = 4

	BIN_ADD                Opcode = 10
	BIN_SUB                Opcode = 11
	BIN_MUL                Opcode = 12
	BIN_DIV                Opcode = 13
	BIN_EQUAL              Opcode = 14
	BIN_NOT_EQUAL          Opcode = 15
	BIN_LESS_THAN          Opcode = 16
	BIN_LESS_THAN_EQUAL    Opcode = 17
	BIN_GREATER_THAN       Opcode = 18
	BIN_GREATER_THAN_EQUAL Opcode = 19

	LOAD_CONST Opcode = 20

	BUILD_LIST Opcode = 25

	LOAD_FAST  Opcode = 30
	STORE_FAST Opcode = 31
	LOAD_TRUE  Opcode = 32
	LOAD_FALSE Opcode = 33
	LOAD_NONE  Opcode = 34

	INC_ONE Opcode = 40
)

var opcodeNames = map[Opcode]string{
	RETURN:        "RETURN",
	CALL_FUNCTION: "CALL_FUNCTION",
	JUMP:          "JUMP",
	JUMP_ABSOLUTE: "JUMP_ABSOLUTE",
	JUMP_IF_FALSE: "JUMP_IF_FALSE",

	BIN_ADD:                "BIN_ADD",
	BIN_SUB:                "BIN_SUB",
	BIN_MUL:                "BIN_MUL",
	BIN_DIV:                "BIN_DIV",
	BIN_EQUAL:              "BIN_EQUAL",
	BIN_NOT_EQUAL:          "BIN_NOT_EQUAL",
	BIN_LESS_THAN:          "BIN_LESS_THAN",
	BIN_LESS_THAN_EQUAL:    "BIN_LESS_THAN_EQUAL",
	BIN_GREATER_THAN:       "BIN_GREATER_THAN",
	BIN_GREATER_THAN_EQUAL: "BIN_GREATER_THAN_EQUAL",

	LOAD_CONST: "LOAD_CONST",

	BUILD_LIST: "BUILD_LIST",

	LOAD_FAST:  "LOAD_FAST",
	STORE_FAST: "STORE_FAST",
	LOAD_TRUE:  "LOAD_TRUE",
	LOAD_FALSE: "LOAD_FALSE",
	LOAD_NONE:  "LOAD_NONE",

	INC_ONE: "INC_ONE",
}

func (op Opcode) String() string {
	if s, ok := opcodeNames[op]; ok {
		return s
	}
	return "UNKNOWN"
}

// HasOperand reports whether op is followed by a single 1-byte immediate.
func (op Opcode) HasOperand() bool {
	switch op {
	case RETURN,
		BIN_ADD, BIN_SUB, BIN_MUL, BIN_DIV,
		BIN_EQUAL, BIN_NOT_EQUAL, BIN_LESS_THAN, BIN_LESS_THAN_EQUAL,
		BIN_GREATER_THAN, BIN_GREATER_THAN_EQUAL,
		LOAD_TRUE, LOAD_FALSE, LOAD_NONE, INC_ONE:
		return false
	case CALL_FUNCTION:
		return true // two operands: fn_index, argc — handled specially
	default:
		return true
	}
}

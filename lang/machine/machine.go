// Package machine implements the stack-based virtual machine that
// executes a compiled bytecode.Module: instruction dispatch, the
// operand stack, local slots, and recursive CALL_FUNCTION invocation.
package machine

import (
	"fmt"

	"github.com/andrewgrz/gears-lang/lang/bytecode"
	langerrors "github.com/andrewgrz/gears-lang/lang/errors"
	"github.com/andrewgrz/gears-lang/lang/value"
)

// Execute looks up name in module, checks its declared arity against
// args, and runs it to completion, returning its result value. Each
// activation's instruction pointer, operand stack and local slots are
// allocation-local; recursive calls are ordinary Go recursion and are
// bounded only by host stack depth.
func Execute(module *bytecode.Module, name string, args []value.Value) (value.Value, error) {
	fn, idx, ok := module.Function(name)
	if !ok {
		return value.Value{}, &langerrors.SymbolNotFoundError{Name: name}
	}
	_ = idx

	if len(args) != fn.Argc {
		kind := langerrors.TooFewArgs
		if len(args) > fn.Argc {
			kind = langerrors.TooManyArgs
		}
		return value.Value{}, &langerrors.InterOpError{
			Kind: kind,
			Func: name,
			Want: fn.Argc,
			Got:  len(args),
		}
	}
	return execute(module, fn, args)
}

// execute runs fn's bytecode to completion with locals primed from args,
// recursing into Execute-equivalent calls for every nested
// CALL_FUNCTION.
func execute(module *bytecode.Module, fn *bytecode.Function, args []value.Value) (value.Value, error) {
	code := fn.Code

	locals := make([]value.Value, fn.NLocals)
	copy(locals, args)

	var stack []value.Value
	push := func(v value.Value) { stack = append(stack, v) }
	pop := func() (value.Value, error) {
		if len(stack) == 0 {
			return value.Value{}, &langerrors.InternalCompilerError{Msg: "operand stack underflow"}
		}
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v, nil
	}

	ip := 0
	advance := func() byte {
		b := code[ip]
		ip++
		return b
	}

	binOp := func(f func(l, r value.Value) (value.Value, error)) error {
		b, err := pop()
		if err != nil {
			return err
		}
		a, err := pop()
		if err != nil {
			return err
		}
		res, err := f(a, b)
		if err != nil {
			return err
		}
		push(res)
		return nil
	}

	for {
		op := bytecode.Opcode(advance())

		switch op {
		case bytecode.RETURN:
			return pop()

		case bytecode.BIN_ADD:
			if err := binOp(value.Value.Add); err != nil {
				return value.Value{}, err
			}
		case bytecode.BIN_SUB:
			if err := binOp(value.Value.Sub); err != nil {
				return value.Value{}, err
			}
		case bytecode.BIN_MUL:
			if err := binOp(value.Value.Mul); err != nil {
				return value.Value{}, err
			}
		case bytecode.BIN_DIV:
			if err := binOp(value.Value.Div); err != nil {
				return value.Value{}, err
			}
		case bytecode.BIN_EQUAL:
			if err := binOp(value.Value.Equal); err != nil {
				return value.Value{}, err
			}
		case bytecode.BIN_NOT_EQUAL:
			if err := binOp(value.Value.NEqual); err != nil {
				return value.Value{}, err
			}
		case bytecode.BIN_LESS_THAN:
			if err := binOp(value.Value.Less); err != nil {
				return value.Value{}, err
			}
		case bytecode.BIN_LESS_THAN_EQUAL:
			if err := binOp(value.Value.LessEq); err != nil {
				return value.Value{}, err
			}
		case bytecode.BIN_GREATER_THAN:
			if err := binOp(value.Value.Greater); err != nil {
				return value.Value{}, err
			}
		case bytecode.BIN_GREATER_THAN_EQUAL:
			if err := binOp(value.Value.GreaterEq); err != nil {
				return value.Value{}, err
			}

		case bytecode.LOAD_FAST:
			slot := int(advance())
			if slot >= len(locals) {
				return value.Value{}, &langerrors.InternalCompilerError{Msg: fmt.Sprintf("LOAD_FAST %d out of range", slot)}
			}
			push(locals[slot])

		case bytecode.STORE_FAST:
			slot := int(advance())
			v, err := pop()
			if err != nil {
				return value.Value{}, err
			}
			if slot >= len(locals) {
				return value.Value{}, &langerrors.InternalCompilerError{Msg: fmt.Sprintf("STORE_FAST %d out of range", slot)}
			}
			locals[slot] = v

		case bytecode.LOAD_CONST:
			idx := int(advance())
			if idx >= len(module.Constants) {
				return value.Value{}, &langerrors.InternalCompilerError{Msg: fmt.Sprintf("LOAD_CONST %d out of range", idx)}
			}
			push(module.Constants[idx])

		case bytecode.CALL_FUNCTION:
			fnIdx := int(advance())
			argc := int(advance())
			callArgs := make([]value.Value, argc)
			for i := argc - 1; i >= 0; i-- {
				v, err := pop()
				if err != nil {
					return value.Value{}, err
				}
				callArgs[i] = v
			}
			callee := module.FunctionAt(fnIdx)
			result, err := execute(module, callee, callArgs)
			if err != nil {
				return value.Value{}, err
			}
			push(result)

		case bytecode.LOAD_TRUE:
			push(value.TRUE)
		case bytecode.LOAD_FALSE:
			push(value.FALSE)
		case bytecode.LOAD_NONE:
			push(value.NONE)

		case bytecode.JUMP:
			offset := int(advance())
			ip += offset

		case bytecode.JUMP_ABSOLUTE:
			target := int(advance())
			ip = target

		case bytecode.JUMP_IF_FALSE:
			offset := int(advance())
			v, err := pop()
			if err != nil {
				return value.Value{}, err
			}
			if !v.Truth() {
				ip += offset
			}

		case bytecode.INC_ONE:
			v, err := pop()
			if err != nil {
				return value.Value{}, err
			}
			res, err := v.Inc()
			if err != nil {
				return value.Value{}, err
			}
			push(res)

		case bytecode.BUILD_LIST:
			count := int(advance())
			elems := make([]value.Value, count)
			for i := count - 1; i >= 0; i-- {
				v, err := pop()
				if err != nil {
					return value.Value{}, err
				}
				elems[i] = v
			}
			push(value.List(elems))

		default:
			return value.Value{}, &langerrors.InternalCompilerError{Msg: fmt.Sprintf("unexpected opcode %d", op)}
		}
	}
}

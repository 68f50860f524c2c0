package compiler

import (
	"fmt"

	"github.com/andrewgrz/gears-lang/lang/ast"
	"github.com/andrewgrz/gears-lang/lang/bytecode"
	langerrors "github.com/andrewgrz/gears-lang/lang/errors"
	"github.com/andrewgrz/gears-lang/lang/resolver"
	"github.com/andrewgrz/gears-lang/lang/token"
	"github.com/andrewgrz/gears-lang/lang/value"
)

func (fc *fcomp) expr(scope *resolver.Scope, e ast.Expr) (resolver.TypeSet, error) {
	switch e := e.(type) {
	case *ast.IntLit:
		idx := fc.builder.Intern(value.Int(e.Value))
		if idx > 0xff {
			return nil, &langerrors.InternalCompilerError{Msg: "constant pool exceeds 255 entries for 1-byte LOAD_CONST operand"}
		}
		fc.builder.Emit(bytecode.LOAD_CONST, byte(idx))
		return resolver.NewTypeSet(resolver.TagInt), nil
	case *ast.BoolLit:
		if e.Value {
			fc.builder.Emit(bytecode.LOAD_TRUE)
		} else {
			fc.builder.Emit(bytecode.LOAD_FALSE)
		}
		return resolver.NewTypeSet(resolver.TagBool), nil
	case *ast.StringLit:
		idx := fc.builder.Intern(value.Str(e.Value))
		if idx > 0xff {
			return nil, &langerrors.InternalCompilerError{Msg: "constant pool exceeds 255 entries for 1-byte LOAD_CONST operand"}
		}
		fc.builder.Emit(bytecode.LOAD_CONST, byte(idx))
		return resolver.NewTypeSet(resolver.TagStr), nil
	case *ast.NoneLit:
		fc.builder.Emit(bytecode.LOAD_NONE)
		return resolver.NewTypeSet(resolver.TagNone), nil
	case *ast.Ident:
		return fc.identExpr(scope, e)
	case *ast.ListExpr:
		return fc.listExpr(scope, e)
	case *ast.BinaryExpr:
		return fc.binaryExpr(scope, e)
	case *ast.CallExpr:
		return fc.callExpr(scope, e)
	case *ast.IfExpr:
		return fc.ifExpr(scope, e)
	case *ast.WhileExpr:
		return fc.whileExpr(scope, e)
	case *ast.ForExpr:
		return fc.forExpr(scope, e)
	default:
		return nil, &langerrors.InternalCompilerError{Msg: fmt.Sprintf("unhandled expression type %T", e)}
	}
}

func (fc *fcomp) identExpr(scope *resolver.Scope, e *ast.Ident) (resolver.TypeSet, error) {
	sym, _, ok := scope.Resolve(e.Lit)
	if !ok {
		return nil, &langerrors.SymbolNotFoundError{Pos: e.Start, Name: e.Lit}
	}
	if sym.Kind == resolver.Function {
		return nil, &langerrors.TypeError{Pos: e.Start, Msg: fmt.Sprintf("%q: functions are not first class", e.Lit)}
	}
	e.Slot = sym.Slot
	fc.builder.Emit(bytecode.LOAD_FAST, byte(sym.Slot))
	return sym.Types, nil
}

func (fc *fcomp) listExpr(scope *resolver.Scope, e *ast.ListExpr) (resolver.TypeSet, error) {
	for _, item := range e.Items {
		if _, err := fc.expr(scope, item); err != nil {
			return nil, err
		}
	}
	if len(e.Items) > 255 {
		return nil, &langerrors.InternalCompilerError{Msg: "list literal too long for 1-byte BUILD_LIST operand"}
	}
	fc.builder.Emit(bytecode.BUILD_LIST, byte(len(e.Items)))
	return resolver.NewTypeSet(resolver.TagList), nil
}

var binOpcode = map[token.Token]bytecode.Opcode{
	token.PLUS:  bytecode.BIN_ADD,
	token.MINUS: bytecode.BIN_SUB,
	token.STAR:  bytecode.BIN_MUL,
	token.SLASH: bytecode.BIN_DIV,
	token.EQL:   bytecode.BIN_EQUAL,
	token.NEQ:   bytecode.BIN_NOT_EQUAL,
	token.LT:    bytecode.BIN_LESS_THAN,
	token.LE:    bytecode.BIN_LESS_THAN_EQUAL,
	token.GT:    bytecode.BIN_GREATER_THAN,
	token.GE:    bytecode.BIN_GREATER_THAN_EQUAL,
}

// arithmeticPairs enumerates, per operator, the operand type-set pairs
// §4.1 defines. Every possible left × right pair drawn from the
// operands' (possibly union) type sets must be one of these, or the
// compiler reports a type error.
var arithmeticPairs = map[token.Token][][2]resolver.TypeTag{
	token.PLUS: {
		{resolver.TagInt, resolver.TagInt},
		{resolver.TagStr, resolver.TagStr},
	},
	token.MINUS: {{resolver.TagInt, resolver.TagInt}},
	token.STAR:  {{resolver.TagInt, resolver.TagInt}},
	token.SLASH: {{resolver.TagInt, resolver.TagInt}},
}

func (fc *fcomp) binaryExpr(scope *resolver.Scope, e *ast.BinaryExpr) (resolver.TypeSet, error) {
	left, err := fc.expr(scope, e.Left)
	if err != nil {
		return nil, err
	}
	right, err := fc.expr(scope, e.Right)
	if err != nil {
		return nil, err
	}

	op, ok := binOpcode[e.Op]
	if !ok {
		return nil, &langerrors.InternalCompilerError{Msg: fmt.Sprintf("unhandled binary operator %s", e.Op)}
	}
	fc.builder.Emit(op)

	if pairs, isArith := arithmeticPairs[e.Op]; isArith {
		result, err := checkArithmeticPairs(e.Op, left, right, pairs)
		if err != nil {
			return nil, &langerrors.TypeError{Pos: e.OpPos, Msg: err.Error()}
		}
		return result, nil
	}
	// Comparisons accept any operand type sets statically; the VM's own
	// value ops reject ill-typed operands at runtime.
	return resolver.NewTypeSet(resolver.TagBool), nil
}

func checkArithmeticPairs(op token.Token, left, right resolver.TypeSet, pairs [][2]resolver.TypeTag) (resolver.TypeSet, error) {
	var result resolver.TypeSet
	for l := range left {
		for r := range right {
			matched := false
			for _, pair := range pairs {
				if pair[0] == l && pair[1] == r {
					matched = true
					if pair[0] == resolver.TagStr {
						result = result.Union(resolver.NewTypeSet(resolver.TagStr))
					} else {
						result = result.Union(resolver.NewTypeSet(resolver.TagInt))
					}
					break
				}
			}
			if !matched {
				return nil, fmt.Errorf("unable to perform %s on %s and %s", op, l, r)
			}
		}
	}
	if result == nil {
		result = resolver.NewTypeSet(resolver.TagInt)
	}
	return result, nil
}

func (fc *fcomp) callExpr(scope *resolver.Scope, e *ast.CallExpr) (resolver.TypeSet, error) {
	sym, _, ok := scope.Resolve(e.Fn.Lit)
	if !ok {
		return nil, &langerrors.SymbolNotFoundError{Pos: e.Fn.Start, Name: e.Fn.Lit}
	}
	if sym.Kind != resolver.Function {
		return nil, &langerrors.TypeError{Pos: e.Fn.Start, Msg: fmt.Sprintf("%q is not callable", e.Fn.Lit)}
	}
	if len(e.Args) != len(sym.ArgTypes) {
		return nil, &langerrors.TypeError{Pos: e.Fn.Start, Msg: fmt.Sprintf("%q expects %d argument(s), got %d", e.Fn.Lit, len(sym.ArgTypes), len(e.Args))}
	}
	for i, arg := range e.Args {
		got, err := fc.expr(scope, arg)
		if err != nil {
			return nil, err
		}
		if !got.Subset(sym.ArgTypes[i]) {
			return nil, &langerrors.TypeError{Pos: e.Fn.Start, Msg: fmt.Sprintf("%q argument %d: declared %s, got %s", e.Fn.Lit, i, sym.ArgTypes[i], got)}
		}
	}
	if len(e.Args) > 255 {
		return nil, &langerrors.InternalCompilerError{Msg: "call has too many arguments for 1-byte operand"}
	}
	fc.builder.Emit(bytecode.CALL_FUNCTION, byte(sym.ModuleIndex), byte(len(e.Args)))
	return sym.ReturnTypes, nil
}

func (fc *fcomp) ifExpr(scope *resolver.Scope, e *ast.IfExpr) (resolver.TypeSet, error) {
	if _, err := fc.expr(scope, e.Cond); err != nil {
		return nil, err
	}
	jifPos := fc.builder.StartJumpIfFalse()

	thenScope := scope.PushBlock()
	a, err := fc.block(thenScope, e.Then)
	if err != nil {
		return nil, err
	}

	elsePos, err := fc.builder.StartElse(jifPos)
	if err != nil {
		return nil, err
	}

	var b resolver.TypeSet
	if e.Alt != nil {
		altScope := scope.PushBlock()
		b, err = fc.block(altScope, e.Alt)
		if err != nil {
			return nil, err
		}
	} else {
		fc.builder.Emit(bytecode.LOAD_NONE)
		b = resolver.NewTypeSet(resolver.TagNone)
	}
	if err := fc.builder.EndJump(elsePos); err != nil {
		return nil, err
	}

	return a.Union(b), nil
}

func (fc *fcomp) whileExpr(scope *resolver.Scope, e *ast.WhileExpr) (resolver.TypeSet, error) {
	bodyScope := scope.PushBlock()
	resultSlot := bodyScope.AllocSlot()
	fc.builder.NoteSlot(resultSlot)

	head := fc.builder.StartLoopCheck()
	if _, err := fc.expr(scope, e.Cond); err != nil {
		return nil, err
	}
	exitPatch := fc.builder.StartJumpIfFalse()

	bodyT, err := fc.block(bodyScope, e.Body)
	if err != nil {
		return nil, err
	}
	// Each iteration's body value is stored into resultSlot rather than
	// left on the operand stack across the JUMP_ABSOLUTE back-edge, so
	// the stack depth at loop head is the same on every iteration; the
	// last store is what the LOAD_FAST below retrieves as the loop's
	// own value.
	fc.builder.Emit(bytecode.STORE_FAST, byte(resultSlot))
	if err := fc.builder.EndLoop(head, exitPatch); err != nil {
		return nil, err
	}

	fc.builder.Emit(bytecode.LOAD_FAST, byte(resultSlot))
	return bodyT, nil
}

func (fc *fcomp) forExpr(scope *resolver.Scope, e *ast.ForExpr) (resolver.TypeSet, error) {
	loopScope := scope.PushBlock()

	low, err := fc.expr(loopScope, e.Low)
	if err != nil {
		return nil, err
	}
	if !low.Subset(resolver.NewTypeSet(resolver.TagInt)) {
		return nil, &langerrors.TypeError{Pos: e.For, Msg: "for loop range bounds must be int"}
	}
	slot := loopScope.DefineVariable(e.Name.Lit, resolver.NewTypeSet(resolver.TagInt))
	e.Slot = slot
	fc.builder.NoteSlot(slot)
	fc.builder.Emit(bytecode.STORE_FAST, byte(slot))

	resultSlot := loopScope.AllocSlot()
	fc.builder.NoteSlot(resultSlot)

	head := fc.builder.StartLoopCheck()
	fc.builder.Emit(bytecode.LOAD_FAST, byte(slot))
	if _, err := fc.expr(loopScope, e.High); err != nil {
		return nil, err
	}
	fc.builder.Emit(bytecode.BIN_LESS_THAN)
	exitPatch := fc.builder.StartJumpIfFalse()

	bodyScope := loopScope.PushBlock()
	bodyT, err := fc.block(bodyScope, e.Body)
	if err != nil {
		return nil, err
	}
	// See whileExpr: store instead of leaving on the stack, to keep the
	// stack depth at loop head constant across iterations.
	fc.builder.Emit(bytecode.STORE_FAST, byte(resultSlot))

	fc.builder.Emit(bytecode.LOAD_FAST, byte(slot))
	fc.builder.Emit(bytecode.INC_ONE)
	fc.builder.Emit(bytecode.STORE_FAST, byte(slot))
	if err := fc.builder.EndLoop(head, exitPatch); err != nil {
		return nil, err
	}

	fc.builder.Emit(bytecode.LOAD_FAST, byte(resultSlot))
	return bodyT, nil
}

// Package value implements the tagged Value model: Int, Bool, Str, List
// and None, with the arithmetic, comparison and equality operations the
// virtual machine's binary opcodes dispatch to. Str and List are heap
// values behind a reference-counted Handle; Int, Bool and None are plain
// Go values copied by assignment.
package value

import (
	"fmt"
	"strings"

	langerrors "github.com/andrewgrz/gears-lang/lang/errors"
)

// Kind identifies which variant of Value is populated.
type Kind uint8

const (
	KindNone Kind = iota
	KindInt
	KindBool
	KindStr
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindStr:
		return "str"
	case KindList:
		return "list"
	default:
		return "invalid"
	}
}

// Value is a Gears runtime value. The zero Value is None.
type Value struct {
	kind Kind
	i    int64   // Int, and Bool (0/1)
	str  *Handle // Str, ref-counted
	list *Handle // List, ref-counted
}

// Handle is the reference-counted header shared by heap-allocated values
// (strings and lists). Go's garbage collector makes manual counting
// unnecessary for memory safety; the counter exists so the runtime's
// resource model matches the one the host program observes and so tests
// can assert a handle's count equals the number of live clones.
type Handle struct {
	refs  int32
	strv  string
	listv []Value
}

func (h *Handle) retain() *Handle {
	h.refs++
	return h
}

// Retain increments h's reference count and returns h, mirroring the
// shared-ownership clone operation of the original Arc<GearsObject>
// model.
func (h *Handle) Retain() *Handle { return h.retain() }

// Release decrements h's reference count and reports the count
// remaining.
func (h *Handle) Release() int32 {
	h.refs--
	return h.refs
}

// Refs reports h's current reference count.
func (h *Handle) Refs() int32 { return h.refs }

var (
	// TRUE, FALSE and NONE are process-wide singletons: every Bool(true),
	// Bool(false) and the zero Value alias them instead of allocating.
	TRUE  = Value{kind: KindBool, i: 1}
	FALSE = Value{kind: KindBool, i: 0}
	NONE  = Value{kind: KindNone}
)

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Bool returns TRUE or FALSE.
func Bool(b bool) Value {
	if b {
		return TRUE
	}
	return FALSE
}

// Str returns a string value, allocating a fresh ref-counted handle with
// a count of 1.
func Str(s string) Value {
	return Value{kind: KindStr, str: &Handle{refs: 1, strv: s}}
}

// List returns a list value wrapping elems, allocating a fresh
// ref-counted handle with a count of 1. elems is taken by reference, not
// copied.
func List(elems []Value) Value {
	return Value{kind: KindList, list: &Handle{refs: 1, listv: elems}}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// AsInt returns v's integer payload. It panics if v is not KindInt;
// callers must check Kind first, matching the VM's own post-type-check
// invariant that operand kinds are already known.
func (v Value) AsInt() int64 {
	if v.kind != KindInt {
		panic("value: AsInt on non-int Value")
	}
	return v.i
}

// AsBool returns v's boolean payload. It panics if v is not KindBool.
func (v Value) AsBool() bool {
	if v.kind != KindBool {
		panic("value: AsBool on non-bool Value")
	}
	return v.i != 0
}

// AsStr returns v's string payload. It panics if v is not KindStr.
func (v Value) AsStr() string {
	if v.kind != KindStr {
		panic("value: AsStr on non-str Value")
	}
	return v.str.strv
}

// AsList returns v's element slice. It panics if v is not KindList.
func (v Value) AsList() []Value {
	if v.kind != KindList {
		panic("value: AsList on non-list Value")
	}
	return v.list.listv
}

// Handle returns the ref-counted handle backing a Str or List value, or
// nil for Int, Bool and None.
func (v Value) Handle() *Handle {
	switch v.kind {
	case KindStr:
		return v.str
	case KindList:
		return v.list
	default:
		return nil
	}
}

// Clone returns a shallow copy of v, retaining its handle's reference
// count if v is a heap value.
func (v Value) Clone() Value {
	switch v.kind {
	case KindStr:
		v.str.retain()
	case KindList:
		v.list.retain()
	}
	return v
}

// TypeName reports the runtime type name used in error messages.
func (v Value) TypeName() string { return v.kind.String() }

// Truth reports v's truthiness: false, 0, "", [] and none are falsy;
// everything else is truthy.
func (v Value) Truth() bool {
	switch v.kind {
	case KindBool:
		return v.i != 0
	case KindInt:
		return v.i != 0
	case KindStr:
		return len(v.str.strv) > 0
	case KindList:
		return len(v.list.listv) > 0
	case KindNone:
		return false
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNone:
		return "none"
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindBool:
		if v.i != 0 {
			return "true"
		}
		return "false"
	case KindStr:
		return fmt.Sprintf("%q", v.str.strv)
	case KindList:
		parts := make([]string, len(v.list.listv))
		for i, e := range v.list.listv {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "<invalid>"
	}
}

func typeErr(op string, l, r Value) error {
	if r.kind == KindNone && l.kind == r.kind {
		return &langerrors.TypeError{Msg: fmt.Sprintf("unable to perform %s on %s", op, l.TypeName())}
	}
	return &langerrors.TypeError{Msg: fmt.Sprintf("unable to perform %s on %s and %s", op, l.TypeName(), r.TypeName())}
}

// Add implements the + operator: int+int, or str+str concatenation.
func (l Value) Add(r Value) (Value, error) {
	switch l.kind {
	case KindInt:
		if r.kind == KindInt {
			return Int(l.i + r.i), nil
		}
	case KindStr:
		if r.kind == KindStr {
			return Str(l.str.strv + r.str.strv), nil
		}
	}
	return Value{}, typeErr("add", l, r)
}

// Sub implements the - operator: int-int only.
func (l Value) Sub(r Value) (Value, error) {
	if l.kind == KindInt && r.kind == KindInt {
		return Int(l.i - r.i), nil
	}
	return Value{}, typeErr("sub", l, r)
}

// Mul implements the * operator: int*int only.
func (l Value) Mul(r Value) (Value, error) {
	if l.kind == KindInt && r.kind == KindInt {
		return Int(l.i * r.i), nil
	}
	return Value{}, typeErr("mul", l, r)
}

// Div implements the / operator: truncating int/int division. Division
// by zero is an arithmetic type error, not a panic.
func (l Value) Div(r Value) (Value, error) {
	if l.kind == KindInt && r.kind == KindInt {
		if r.i == 0 {
			return Value{}, &langerrors.TypeError{Msg: "division by zero"}
		}
		return Int(l.i / r.i), nil
	}
	return Value{}, typeErr("div", l, r)
}

// Inc implements the unary increment used by for-loops: int only.
func (l Value) Inc() (Value, error) {
	if l.kind == KindInt {
		return Int(l.i + 1), nil
	}
	return Value{}, &langerrors.TypeError{Msg: fmt.Sprintf("unable to perform increment on %s", l.TypeName())}
}

// Equals reports structural equality: values of different kinds are
// never equal, lists compare element-wise.
func (l Value) Equals(r Value) bool {
	if l.kind != r.kind {
		return false
	}
	switch l.kind {
	case KindInt, KindBool:
		return l.i == r.i
	case KindStr:
		return l.str.strv == r.str.strv
	case KindList:
		ll, rl := l.list.listv, r.list.listv
		if len(ll) != len(rl) {
			return false
		}
		for i := range ll {
			if !ll[i].Equals(rl[i]) {
				return false
			}
		}
		return true
	case KindNone:
		return false
	default:
		return false
	}
}

// Equal implements the == operator.
func (l Value) Equal(r Value) (Value, error) { return Bool(l.Equals(r)), nil }

// NEqual implements the != operator.
func (l Value) NEqual(r Value) (Value, error) { return Bool(!l.Equals(r)), nil }

type compareDir int

const (
	lessThan compareDir = iota
	greaterThan
	lessEq
	greaterEq
)

func (l Value) compare(r Value, dir compareDir, op string) (Value, error) {
	if l.kind != KindInt || r.kind != KindInt {
		return Value{}, typeErr(op, l, r)
	}
	switch dir {
	case lessThan:
		return Bool(l.i < r.i), nil
	case greaterThan:
		return Bool(l.i > r.i), nil
	case lessEq:
		return Bool(l.i <= r.i), nil
	case greaterEq:
		return Bool(l.i >= r.i), nil
	default:
		panic("value: unreachable compare direction")
	}
}

// Less implements the < operator: int < int only.
func (l Value) Less(r Value) (Value, error) { return l.compare(r, lessThan, "<") }

// Greater implements the > operator.
func (l Value) Greater(r Value) (Value, error) { return l.compare(r, greaterThan, ">") }

// LessEq implements the <= operator.
func (l Value) LessEq(r Value) (Value, error) { return l.compare(r, lessEq, "<=") }

// GreaterEq implements the >= operator.
func (l Value) GreaterEq(r Value) (Value, error) { return l.compare(r, greaterEq, ">=") }

package resolver

import (
	"fmt"
)

// funcState is shared by every frame nested within one function (the
// function's own root frame plus every if/while/for block frame it
// opens). It holds the running slot counter: slot indices extend the
// linear numbering of the enclosing function and are never reused when a
// block frame is destroyed, per the language's slot allocation rule.
type funcState struct {
	nextSlot int
}

// Scope is a single frame in the symbol table's frame stack: a name→Symbol
// map plus a link to its parent frame. The root frame (parent == nil) is
// the global scope and holds only Function symbols.
type Scope struct {
	parent  *Scope
	symbols map[string]*Symbol
	fn      *funcState // nil only for the global frame
}

// NewGlobal returns a fresh global scope.
func NewGlobal() *Scope {
	return &Scope{symbols: make(map[string]*Symbol)}
}

// PushFunction opens a new function-root frame as a child of s (which
// must be the global scope), starting its slot counter at 0. The caller
// defines the function's argc parameters first, in order, with
// DefineVariable, so that they occupy slots 0..argc-1.
func (s *Scope) PushFunction(argc int) *Scope {
	return &Scope{
		parent:  s,
		symbols: make(map[string]*Symbol),
		fn:      &funcState{nextSlot: 0},
	}
}

// PushBlock opens a nested block frame (if/else/while/for body) as a
// child of s, sharing s's function-level slot counter.
func (s *Scope) PushBlock() *Scope {
	return &Scope{
		parent:  s,
		symbols: make(map[string]*Symbol),
		fn:      s.fn,
	}
}

// Parent returns the enclosing frame, or nil for the global scope.
func (s *Scope) Parent() *Scope { return s.parent }

// IsGlobal reports whether s is the root (function-symbol-only) frame.
func (s *Scope) IsGlobal() bool { return s.parent == nil }

// DefineFunction declares a function symbol in s, which must be the
// global scope. It returns an error if name is already declared.
func (s *Scope) DefineFunction(name string, argTypes []TypeSet, returnTypes TypeSet, moduleIndex int) error {
	if _, exists := s.symbols[name]; exists {
		return fmt.Errorf("function %q already declared", name)
	}
	s.symbols[name] = &Symbol{
		Kind:        Function,
		ArgTypes:    argTypes,
		ReturnTypes: returnTypes,
		ModuleIndex: moduleIndex,
	}
	return nil
}

// DefineVariable declares a variable named name with the given type set
// in s (a non-global frame), assigning it the next slot in the enclosing
// function's linear numbering, and returns that slot.
func (s *Scope) DefineVariable(name string, types TypeSet) int {
	slot := s.fn.nextSlot
	s.fn.nextSlot++
	s.symbols[name] = &Symbol{Kind: Variable, Slot: slot, Types: types}
	return slot
}

// AllocSlot reserves the next slot in the enclosing function's linear
// numbering without binding it to a name, for compiler bookkeeping that
// needs a local slot no source-level variable can shadow or resolve to
// (e.g. a loop expression's result-carrying slot).
func (s *Scope) AllocSlot() int {
	slot := s.fn.nextSlot
	s.fn.nextSlot++
	return slot
}

// NLocals reports the number of local slots the enclosing function has
// allocated so far (its high-water mark).
func (s *Scope) NLocals() int { return s.fn.nextSlot }

// Resolve walks from s outward through parent frames looking for name.
// It reports the symbol found, whether the hit was in the global frame,
// and whether it was found at all.
func (s *Scope) Resolve(name string) (sym *Symbol, global bool, ok bool) {
	for f := s; f != nil; f = f.parent {
		if sym, ok := f.symbols[name]; ok {
			return sym, f.IsGlobal(), true
		}
	}
	return nil, false, false
}

package resolver

import (
	"sort"
	"strings"

	"github.com/andrewgrz/gears-lang/lang/token"
)

// TypeTag names one of the five primitive type tags a Value can carry.
type TypeTag string

const (
	TagInt  TypeTag = "int"
	TagBool TypeTag = "bool"
	TagStr  TypeTag = "str"
	TagList TypeTag = "list"
	TagNone TypeTag = "none"
)

// TagFromToken converts a type-name token (INT_TYPE, BOOL_TYPE, ...) into
// its TypeTag.
func TagFromToken(tok token.Token) TypeTag {
	switch tok {
	case token.INT_TYPE:
		return TagInt
	case token.BOOL_TYPE:
		return TagBool
	case token.STR_TYPE:
		return TagStr
	case token.LIST_TYPE:
		return TagList
	case token.NONE_TYPE:
		return TagNone
	default:
		return ""
	}
}

// TypeSet is a non-empty set of type tags: "the value may be any one of
// these". Assignments and function signatures carry type sets, and the
// compiler checks set membership rather than single types, which is what
// makes union types like `int | bool` possible.
type TypeSet map[TypeTag]struct{}

// NewTypeSet builds a TypeSet from the given tags.
func NewTypeSet(tags ...TypeTag) TypeSet {
	ts := make(TypeSet, len(tags))
	for _, t := range tags {
		ts[t] = struct{}{}
	}
	return ts
}

// Contains reports whether t is a member of ts.
func (ts TypeSet) Contains(t TypeTag) bool {
	_, ok := ts[t]
	return ok
}

// Subset reports whether every tag in ts is also in other.
func (ts TypeSet) Subset(other TypeSet) bool {
	for t := range ts {
		if !other.Contains(t) {
			return false
		}
	}
	return true
}

// Union returns the set union of ts and other as a new TypeSet.
func (ts TypeSet) Union(other TypeSet) TypeSet {
	out := make(TypeSet, len(ts)+len(other))
	for t := range ts {
		out[t] = struct{}{}
	}
	for t := range other {
		out[t] = struct{}{}
	}
	return out
}

// Equals reports whether ts and other contain exactly the same tags.
func (ts TypeSet) Equals(other TypeSet) bool {
	return ts.Subset(other) && other.Subset(ts)
}

func (ts TypeSet) String() string {
	tags := make([]string, 0, len(ts))
	for t := range ts {
		tags = append(tags, string(t))
	}
	sort.Strings(tags)
	return strings.Join(tags, " | ")
}

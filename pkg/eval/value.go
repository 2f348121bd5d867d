package eval

import "strings"

// ValueKind distinguishes the two shapes a variable can hold.
type ValueKind int

// Values for ValueKind.
const (
	ScalarKind ValueKind = iota
	ArrayKind
)

func (k ValueKind) String() string {
	if k == ScalarKind {
		return "scalar"
	}
	return "array"
}

// Value is the runtime value of a variable: either a single scalar string or
// an array of strings. The zero value is an empty scalar.
type Value struct {
	kind   ValueKind
	scalar string
	elems  []string
}

// MakeScalar returns a scalar Value.
func MakeScalar(s string) Value {
	return Value{kind: ScalarKind, scalar: s}
}

// MakeArray returns an array Value. The slice is not copied.
func MakeArray(elems []string) Value {
	if elems == nil {
		elems = []string{}
	}
	return Value{kind: ArrayKind, elems: elems}
}

// Kind returns the kind of the value.
func (v Value) Kind() ValueKind { return v.kind }

// Scalar returns the scalar payload. Arrays coerce by joining their elements
// with a single space, which is how an array reads inside double quotes.
func (v Value) Scalar() string {
	if v.kind == ScalarKind {
		return v.scalar
	}
	return strings.Join(v.elems, " ")
}

// Elems returns the value as a list of words: the elements of an array, or a
// one-element list holding the scalar.
func (v Value) Elems() []string {
	if v.kind == ScalarKind {
		return []string{v.scalar}
	}
	return v.elems
}

// Len returns the number of words in the value.
func (v Value) Len() int {
	if v.kind == ScalarKind {
		return 1
	}
	return len(v.elems)
}

// Repr returns a representation of the value for inspection.
func (v Value) Repr() string {
	if v.kind == ScalarKind {
		return v.scalar
	}
	return "[" + strings.Join(v.elems, " ") + "]"
}

// Package errs declares error types used as exception causes.
package errs

import (
	"fmt"
	"strconv"
)

// OutOfRange encodes an error where a value is out of its valid range.
type OutOfRange struct {
	What      string
	ValidLow  int
	ValidHigh int
	Actual    string
}

// Error implements the error interface.
func (e OutOfRange) Error() string {
	if e.ValidHigh < e.ValidLow {
		return fmt.Sprintf("out of range: %s has no valid value, but is %s",
			e.What, e.Actual)
	}
	return fmt.Sprintf(
		"out of range: %s must be from %d to %d, but is %s",
		e.What, e.ValidLow, e.ValidHigh, e.Actual)
}

// ArityMismatch encodes an error where the expected number of values is out of
// the valid range.
type ArityMismatch struct {
	What      string
	ValidLow  int
	ValidHigh int
	Actual    int
}

// Error implements the error interface.
func (e ArityMismatch) Error() string {
	switch {
	case e.ValidHigh == e.ValidLow:
		return fmt.Sprintf("arity mismatch: %s must be %d %s, but is %d %s",
			e.What, e.ValidLow, valuesWord(e.ValidLow),
			e.Actual, valuesWord(e.Actual))
	case e.ValidHigh == -1:
		return fmt.Sprintf("arity mismatch: %s must be %d or more %s, but is %d %s",
			e.What, e.ValidLow, valuesWord(e.ValidLow),
			e.Actual, valuesWord(e.Actual))
	default:
		return fmt.Sprintf("arity mismatch: %s must be %d to %d %s, but is %d %s",
			e.What, e.ValidLow, e.ValidHigh, valuesWord(e.ValidHigh),
			e.Actual, valuesWord(e.Actual))
	}
}

func valuesWord(n int) string {
	if n == 1 || n == -1 {
		return "value"
	}
	return "values"
}

// BadValue encodes an error where the value does not meet a general
// requirement.
type BadValue struct {
	What   string
	Valid  string
	Actual string
}

// Error implements the error interface.
func (e BadValue) Error() string {
	return fmt.Sprintf(
		"bad value: %s must be %s, but is %s", e.What, e.Valid, e.Actual)
}

// UndefinedVariable encodes an error where an expansion refers to a variable
// with no binding in any live scope.
type UndefinedVariable struct {
	Name string
}

// Error implements the error interface.
func (e UndefinedVariable) Error() string {
	return "undefined variable: $" + e.Name
}

// MalformedSlice encodes an error where a slice index does not resolve to an
// integer.
type MalformedSlice struct {
	Index string
}

// Error implements the error interface.
func (e MalformedSlice) Error() string {
	return "malformed slice index: " + strconv.Quote(e.Index)
}

// ReadOnlyVar encodes an error of attempting to assign a read-only variable.
type ReadOnlyVar struct {
	Name string
}

// Error implements the error interface.
func (e ReadOnlyVar) Error() string {
	return "cannot assign read-only variable: $" + e.Name
}

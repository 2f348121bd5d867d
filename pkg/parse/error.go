package parse

import (
	"bytes"
	"strings"

	"src.mar.sh/pkg/diag"
)

// MultiError pack multiple errors into one error.
type MultiError struct {
	Errors []*diag.Error
}

// Error returns a string representation of all constituent errors.
func (me *MultiError) Error() string {
	switch len(me.Errors) {
	case 0:
		return "no parse error"
	case 1:
		return me.Errors[0].Error()
	default:
		sb := new(strings.Builder)
		sb.WriteString("multiple parse errors:")
		for _, e := range me.Errors {
			sb.WriteString(" ")
			sb.WriteString(e.Error())
			sb.WriteString(";")
		}
		return strings.TrimSuffix(sb.String(), ";")
	}
}

// Show shows all constituent errors.
func (me *MultiError) Show(indent string) string {
	switch len(me.Errors) {
	case 0:
		return "no parse error"
	case 1:
		return me.Errors[0].Show(indent)
	default:
		sb := new(strings.Builder)
		sb.WriteString("Multiple parse errors:")
		for _, e := range me.Errors {
			sb.WriteString("\n" + indent + "  ")
			sb.WriteString(e.Show(indent + "  "))
		}
		return sb.String()
	}
}

// UnpackErrors returns the constituent errors if the given error contains one
// or more lex or parse errors. Otherwise it returns nil.
func UnpackErrors(e error) []*diag.Error {
	switch e := e.(type) {
	case nil:
		return nil
	case *diag.Error:
		return []*diag.Error{e}
	case *MultiError:
		return e.Errors
	default:
		return nil
	}
}

func newError(text string, shouldbe ...string) string {
	if len(shouldbe) == 0 {
		return text
	}
	var buf bytes.Buffer
	if len(text) > 0 {
		buf.WriteString(text + ", ")
	}
	buf.WriteString("should be " + shouldbe[0])
	for i, opt := range shouldbe[1:] {
		if i == len(shouldbe)-2 {
			buf.WriteString(" or ")
		} else {
			buf.WriteString(", ")
		}
		buf.WriteString(opt)
	}
	return buf.String()
}

package eval

import (
	"bytes"
	"errors"
	"fmt"

	"src.mar.sh/pkg/diag"
)

// Exception represents a runtime error carrying the stack of source contexts
// it propagated through. It can be returned by (*Evaler).Eval.
type Exception struct {
	reason     error
	stackTrace *StackTrace
}

// StackTrace represents a stack trace as a linked list of diag.Context. The
// head is the innermost frame.
type StackTrace struct {
	Head *diag.Context
	Next *StackTrace
}

// NewException creates a new Exception.
func NewException(reason error, stackTrace *StackTrace) *Exception {
	return &Exception{reason, stackTrace}
}

// Reason returns the reason field if err is an *Exception. Otherwise it
// returns err itself.
func Reason(err error) error {
	if exc, ok := err.(*Exception); ok {
		return exc.reason
	}
	return err
}

// Reason returns the underlying cause of the exception.
func (exc *Exception) Reason() error { return exc.reason }

// StackTrace returns the stack trace of the exception.
func (exc *Exception) StackTrace() *StackTrace { return exc.stackTrace }

// Error returns the message of the cause of the exception.
func (exc *Exception) Error() string { return exc.reason.Error() }

// Unwrap returns the cause, for use with errors.Is and errors.As.
func (exc *Exception) Unwrap() error { return exc.reason }

// Show shows the exception along with its stack trace.
func (exc *Exception) Show(indent string) string {
	buf := new(bytes.Buffer)

	var causeDescription string
	if shower, ok := exc.reason.(diag.Shower); ok {
		causeDescription = shower.Show(indent)
	} else {
		causeDescription = "\033[31;1m" + exc.reason.Error() + "\033[m"
	}
	fmt.Fprintf(buf, "Exception: %s", causeDescription)

	if exc.stackTrace != nil {
		buf.WriteString("\n")
		if exc.stackTrace.Next == nil {
			buf.WriteString(exc.stackTrace.Head.ShowCompact(indent))
		} else {
			buf.WriteString(indent + "Traceback:")
			for tb := exc.stackTrace; tb != nil; tb = tb.Next {
				buf.WriteString("\n" + indent + "  ")
				buf.WriteString(tb.Head.Show(indent + "    "))
			}
		}
	}
	return buf.String()
}

// Flow errors are sentinels raised by the flow control builtins and caught by
// the enclosing loop or function call.
var (
	ErrReturn   = errors.New("return")
	ErrBreak    = errors.New("break")
	ErrContinue = errors.New("continue")
)

// isFlow reports whether err is (or wraps, as an exception) a flow sentinel.
func isFlow(err error) bool {
	reason := Reason(err)
	return reason == ErrReturn || reason == ErrBreak || reason == ErrContinue
}

// flowOutside converts an uncaught flow sentinel into a proper error.
func flowOutside(err error) error {
	switch Reason(err) {
	case ErrReturn:
		return errors.New("return outside function")
	case ErrBreak:
		return errors.New("break outside loop")
	case ErrContinue:
		return errors.New("continue outside loop")
	}
	return err
}

// ErrInterrupted is raised when evaluation is interrupted by a signal.
var ErrInterrupted = errors.New("interrupted")

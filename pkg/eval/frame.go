package eval

import (
	"fmt"
	"os"

	"src.mar.sh/pkg/diag"
	"src.mar.sh/pkg/parse"
)

// Frame contains the information of one running statement context, akin to a
// call frame. A Frame is only modified during and shortly after creation; new
// Frames are forked when needed.
type Frame struct {
	Evaler *Evaler

	src   parse.Source
	local *Ns

	ports [3]*os.File
	intCh <-chan struct{}

	traceback *StackTrace
}

// InputFile returns the file for standard input.
func (fm *Frame) InputFile() *os.File { return fm.ports[0] }

// OutputFile returns the file for standard output.
func (fm *Frame) OutputFile() *os.File { return fm.ports[1] }

// ErrorFile returns the file for standard error.
func (fm *Frame) ErrorFile() *os.File { return fm.ports[2] }

// fork returns a copy of the frame, with ports replaced. Other fields are
// copied shallowly.
func (fm *Frame) fork(ports [3]*os.File) *Frame {
	newFm := *fm
	newFm.ports = ports
	return &newFm
}

// forkScope returns a copy of the frame whose local scope is a fresh child of
// the given parent scope.
func (fm *Frame) forkScope(parent *Ns) *Frame {
	newFm := *fm
	newFm.local = NewNs(parent)
	return &newFm
}

// IsInterrupted reports whether the current evaluation has been interrupted.
func (fm *Frame) IsInterrupted() bool {
	select {
	case <-fm.intCh:
		return true
	default:
		return false
	}
}

// errorp wraps an error into an *Exception anchored at the given range. Flow
// sentinels and existing exceptions pass through unchanged.
func (fm *Frame) errorp(r diag.Ranger, err error) error {
	if err == nil {
		return nil
	}
	switch err := err.(type) {
	case *Exception:
		return err
	default:
		if isFlow(err) {
			return err
		}
		ctx := diag.NewContext(fm.src.Name, fm.src.Code, r)
		return &Exception{err, &StackTrace{Head: ctx, Next: fm.traceback}}
	}
}

// errorpf is like errorp, with the error constructed from a format string.
func (fm *Frame) errorpf(r diag.Ranger, format string, args ...any) error {
	return fm.errorp(r, fmt.Errorf(format, args...))
}

// addTraceback pushes a call context, for function calls.
func (fm *Frame) addTraceback(r diag.Ranger) *StackTrace {
	return &StackTrace{
		Head: diag.NewContext(fm.src.Name, fm.src.Code, r.Range()),
		Next: fm.traceback,
	}
}

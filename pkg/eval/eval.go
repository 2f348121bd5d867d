// Package eval handles evaluation of parsed marsh code and provides runtime
// facilities shared by all statements: variable scopes, the function table,
// word expansion and the builtin commands.
package eval

import (
	"os"
	"strconv"

	"src.mar.sh/pkg/logutil"
	"src.mar.sh/pkg/parse"
)

var logger = logutil.GetLogger("[eval] ")

// Evaler provides a method to evaluate source code and maintains state shared
// among all evaluations: the global scope, defined functions, the exit status
// of the last pipeline and the table of background jobs.
type Evaler struct {
	// Global is the global scope, the root of every scope chain.
	Global *Ns
	// LenientVars makes references to undefined variables expand to the
	// empty string instead of raising an error.
	LenientVars bool

	fns    map[string]*Fn
	status int
	jobs   *JobTable
	intCh  <-chan struct{}
}

// Fn is a function defined by the fn statement. The body is evaluated in a
// fresh scope whose parent is the global scope, so functions do not capture
// the scope they were defined in.
type Fn struct {
	Name   string
	Params []string
	Body   *parse.Chunk
	src    parse.Source
}

// NewEvaler creates a new Evaler.
func NewEvaler() *Evaler {
	ev := &Evaler{
		Global: NewNs(nil),
		fns:    make(map[string]*Fn),
		jobs:   newJobTable(),
	}
	ev.Global.SetLocal("pid", MakeScalar(strconv.Itoa(os.Getpid())))
	return ev
}

// SetArgs populates the positional parameters: $0 is the program name and
// $1... are the arguments.
func (ev *Evaler) SetArgs(name string, args []string) {
	ev.Global.SetLocal("0", MakeScalar(name))
	for i, arg := range args {
		ev.Global.SetLocal(strconv.Itoa(i+1), MakeScalar(arg))
	}
	ev.Global.SetLocal("args", MakeArray(args))
}

// SetInterruptChan sets a channel that is closed when evaluation should be
// interrupted. It applies to subsequent Eval calls.
func (ev *Evaler) SetInterruptChan(ch <-chan struct{}) {
	ev.intCh = ch
}

// Status returns the exit status of the last pipeline.
func (ev *Evaler) Status() int { return ev.status }

// Jobs returns the table of background jobs.
func (ev *Evaler) Jobs() *JobTable { return ev.jobs }

// Eval parses and evaluates a piece of source code with the given ports for
// standard input, output and error. The returned error, if non-nil, is a
// parse error or an *Exception.
func (ev *Evaler) Eval(src parse.Source, ports [3]*os.File) error {
	chunk, err := parse.Parse(src)
	if err != nil {
		return err
	}
	fm := &Frame{
		Evaler: ev, src: src, local: ev.Global,
		ports: ports, intCh: ev.intCh,
	}
	logger.Printf("eval %q", src.Name)
	if err := fm.evalChunk(chunk); err != nil {
		return flowOutside(err)
	}
	return nil
}

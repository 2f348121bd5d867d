package eval

import (
	"os"
	"sync"

	"src.mar.sh/pkg/diag"
	"src.mar.sh/pkg/eval/errs"
	"src.mar.sh/pkg/must"
	"src.mar.sh/pkg/parse"
)

func (fm *Frame) evalChunk(chunk *parse.Chunk) error {
	for _, st := range chunk.Statements {
		if fm.IsInterrupted() {
			return fm.errorp(st, ErrInterrupted)
		}
		if err := fm.evalStatement(st); err != nil {
			return err
		}
	}
	return nil
}

func (fm *Frame) evalStatement(st parse.Statement) error {
	switch st := st.(type) {
	case *parse.LetStmt:
		return fm.evalLet(st)
	case *parse.Pipeline:
		status, err := fm.evalPipeline(st)
		if err != nil {
			return err
		}
		fm.Evaler.status = status
		return nil
	case *parse.IfStmt:
		return fm.evalIf(st)
	case *parse.WhileStmt:
		return fm.evalWhile(st)
	case *parse.ForStmt:
		return fm.evalFor(st)
	case *parse.FnStmt:
		fm.Evaler.fns[st.Name] = &Fn{
			Name: st.Name, Params: st.Params, Body: st.Body, src: fm.src}
		return nil
	}
	panic("unreachable")
}

// Variables that may not be assigned.
func isReadOnlyVar(name string) bool {
	return name == "status" || name == "pid"
}

func (fm *Frame) evalLet(st *parse.LetStmt) error {
	if isReadOnlyVar(st.Name) {
		return fm.errorp(st.NameRange, errs.ReadOnlyVar{Name: st.Name})
	}
	val, err := fm.expandRHS(st.RHS)
	if err != nil {
		return err
	}
	if st.Op == parse.Set {
		fm.local.Set(st.Name, val)
	} else {
		// The compound operators treat an unbound name as an empty scalar.
		cur, ok := fm.local.Get(st.Name)
		if !ok {
			cur = MakeScalar("")
		}
		combined, err := combine(cur, val, st.Op)
		if err != nil {
			return fm.errorp(st, err)
		}
		fm.local.Set(st.Name, combined)
	}
	// A successful assignment yields status 0.
	fm.Evaler.status = 0
	return nil
}

// combine applies ++= or ::= to the current value. Both the current value
// and the expanded right-hand side must be scalars; an absent variable counts
// as an empty scalar.
func combine(cur, val Value, op parse.AssignOp) (Value, error) {
	if cur.Kind() != ScalarKind {
		return Value{}, errs.BadValue{
			What:  "target of " + op.String(),
			Valid: "scalar", Actual: "array"}
	}
	if val.Kind() != ScalarKind {
		return Value{}, errs.BadValue{
			What:  "right-hand side of " + op.String(),
			Valid: "scalar", Actual: "array"}
	}
	if op == parse.AppendConcat {
		return MakeScalar(cur.Scalar() + val.Scalar()), nil
	}
	return MakeScalar(val.Scalar() + cur.Scalar()), nil
}

func (fm *Frame) evalIf(st *parse.IfStmt) error {
	status, err := fm.evalPipeline(st.Cond)
	if err != nil {
		return err
	}
	fm.Evaler.status = status
	if status == 0 {
		return fm.evalChunk(st.Then)
	}
	if st.Else != nil {
		return fm.evalChunk(st.Else)
	}
	// When no branch runs, the statement itself succeeds; $status must not
	// keep the failed condition's value.
	fm.Evaler.status = 0
	return nil
}

func (fm *Frame) evalWhile(st *parse.WhileStmt) error {
	for {
		if fm.IsInterrupted() {
			return fm.errorp(st, ErrInterrupted)
		}
		status, err := fm.evalPipeline(st.Cond)
		if err != nil {
			return err
		}
		fm.Evaler.status = status
		if status != 0 {
			return nil
		}
		if err := fm.evalChunk(st.Body); err != nil {
			switch Reason(err) {
			case ErrBreak:
				return nil
			case ErrContinue:
				// Fall through to the next iteration.
			default:
				return err
			}
		}
	}
}

func (fm *Frame) evalFor(st *parse.ForStmt) error {
	words, err := fm.expandWords(st.Values)
	if err != nil {
		return err
	}
	// The loop variable lives in the loop's own scope layer; it shadows any
	// outer binding of the same name and is gone after the loop.
	loopFm := fm.forkScope(fm.local)
	for _, w := range words {
		if fm.IsInterrupted() {
			return fm.errorp(st, ErrInterrupted)
		}
		loopFm.local.SetLocal(st.VarName, MakeScalar(w))
		if err := loopFm.evalChunk(st.Body); err != nil {
			switch Reason(err) {
			case ErrBreak:
				return nil
			case ErrContinue:
				continue
			default:
				return err
			}
		}
	}
	return nil
}

func (fm *Frame) evalPipeline(p *parse.Pipeline) (int, error) {
	if p.Background {
		fm.spawnBackground(p)
		return 0, nil
	}
	n := len(p.Forms)
	if n == 1 {
		return fm.evalForm(p.Forms[0])
	}

	statuses := make([]int, n)
	errors := make([]error, n)
	var wg sync.WaitGroup
	input := fm.ports[0]
	for i, form := range p.Forms {
		output := fm.ports[1]
		var nextIn, w *os.File
		if i < n-1 {
			nextIn, w = must.Pipe()
			output = w
		}
		formFm := fm.fork([3]*os.File{input, output, fm.ports[2]})
		closeIn, closeOut := i > 0, i < n-1
		wg.Add(1)
		go func(i int, form *parse.Form, fm *Frame) {
			defer wg.Done()
			statuses[i], errors[i] = fm.evalForm(form)
			if closeIn {
				fm.ports[0].Close()
			}
			if closeOut {
				fm.ports[1].Close()
			}
		}(i, form, formFm)
		input = nextIn
	}
	wg.Wait()

	for i := n - 1; i >= 0; i-- {
		if errors[i] != nil {
			return statuses[n-1], errors[i]
		}
	}
	return statuses[n-1], nil
}

// spawnBackground starts the pipeline in its own goroutine and registers it
// in the job table. Failures of a background job go to standard error.
func (fm *Frame) spawnBackground(p *parse.Pipeline) {
	job := fm.Evaler.jobs.add(p.SourceText())
	fg := *p
	fg.Background = false
	bgFm := fm.fork(fm.ports)
	go func() {
		status, err := bgFm.evalPipeline(&fg)
		if err != nil {
			diag.ShowError(bgFm.ErrorFile(), err)
			if status == 0 {
				status = 1
			}
		}
		job.finish(status)
	}()
}

func (fm *Frame) evalForm(form *parse.Form) (int, error) {
	argv, err := fm.expandWords(form.Words)
	if err != nil {
		return 0, err
	}

	ports := fm.ports
	var opened []*os.File
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()
	for _, redir := range form.Redirs {
		target, err := fm.expandOne(redir.Target, "redirection target")
		if err != nil {
			return 0, err
		}
		var f *os.File
		switch redir.Mode {
		case parse.Write:
			f, err = os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		case parse.Append:
			f, err = os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		case parse.Read:
			f, err = os.Open(target)
		}
		if err != nil {
			return 0, fm.errorp(redir, err)
		}
		opened = append(opened, f)
		if redir.Mode == parse.Read {
			ports[0] = f
		} else {
			ports[1] = f
		}
	}

	if len(argv) == 0 {
		// A form whose words all expanded away performs only its
		// redirections.
		return 0, nil
	}

	formFm := fm.fork(ports)
	name, args := argv[0], argv[1:]
	if fn, ok := fm.Evaler.fns[name]; ok {
		return formFm.callFn(fn, args, form)
	}
	if builtin, ok := builtins[name]; ok {
		status, err := builtin(formFm, args)
		return status, fm.errorp(form, err)
	}
	return formFm.callExternal(name, args, form)
}

// callFn calls a defined function. The body runs in a fresh scope under the
// global scope; a return sentinel stops the body without propagating.
func (fm *Frame) callFn(fn *Fn, args []string, r diag.Ranger) (int, error) {
	if len(args) != len(fn.Params) {
		return 0, fm.errorp(r, errs.ArityMismatch{
			What:     "arguments to " + fn.Name,
			ValidLow: len(fn.Params), ValidHigh: len(fn.Params),
			Actual: len(args)})
	}
	fnFm := fm.forkScope(fm.Evaler.Global)
	fnFm.src = fn.src
	fnFm.traceback = fm.addTraceback(r)
	for i, param := range fn.Params {
		fnFm.local.SetLocal(param, MakeScalar(args[i]))
	}
	err := fnFm.evalChunk(fn.Body)
	if err != nil && Reason(err) != ErrReturn {
		return 0, err
	}
	return fm.Evaler.status, nil
}

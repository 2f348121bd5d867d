package eval

import (
	"fmt"
	"os"
	"strings"

	"src.mar.sh/pkg/eval/errs"
)

// A builtinFn implements a builtin command. The returned int is the exit
// status; a non-nil error aborts the enclosing statement.
type builtinFn func(fm *Frame, args []string) (int, error)

var builtins map[string]builtinFn

// The table is populated in init to allow builtins to refer to each other.
func init() {
	builtins = map[string]builtinFn{
		"echo":     echoFn,
		"cd":       cdFn,
		"true":     trueFn,
		"false":    falseFn,
		"exit":     exitFn,
		"export":   exportFn,
		"unset":    unsetFn,
		"jobs":     jobsFn,
		"wait":     waitFn,
		"break":    breakFn,
		"continue": continueFn,
		"return":   returnFn,
	}
}

// IsBuiltin reports whether name names a builtin command.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

// BuiltinNames returns the names of all builtin commands, in map order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	return names
}

func echoFn(fm *Frame, args []string) (int, error) {
	newline := true
	if len(args) > 0 && args[0] == "-n" {
		newline = false
		args = args[1:]
	}
	out := strings.Join(args, " ")
	if newline {
		out += "\n"
	}
	_, err := fm.OutputFile().WriteString(out)
	return 0, err
}

func cdFn(fm *Frame, args []string) (int, error) {
	var dir string
	switch len(args) {
	case 0:
		home, err := os.UserHomeDir()
		if err != nil {
			return 0, err
		}
		dir = home
	case 1:
		dir = args[0]
	default:
		return 0, errs.ArityMismatch{
			What: "arguments to cd", ValidLow: 0, ValidHigh: 1,
			Actual: len(args)}
	}
	if err := os.Chdir(dir); err != nil {
		fmt.Fprintf(fm.ErrorFile(), "marsh: cd: %v\n", err)
		return 1, nil
	}
	return 0, nil
}

func trueFn(fm *Frame, args []string) (int, error) { return 0, nil }

func falseFn(fm *Frame, args []string) (int, error) { return 1, nil }

// ExitStatus is raised by the exit builtin and caught by the outermost
// evaluation loop.
type ExitStatus struct {
	Status int
}

func (e ExitStatus) Error() string {
	return fmt.Sprintf("exit with status %d", e.Status)
}

func exitFn(fm *Frame, args []string) (int, error) {
	status, err := optionalStatus(args, fm.Evaler.status)
	if err != nil {
		return 0, err
	}
	return status, ExitStatus{status}
}

// exportFn copies variables into the environment. An argument is either
// NAME=VALUE or a bare NAME whose current value is exported.
func exportFn(fm *Frame, args []string) (int, error) {
	for _, arg := range args {
		if i := strings.IndexByte(arg, '='); i != -1 {
			name, value := arg[:i], arg[i+1:]
			fm.local.Set(name, MakeScalar(value))
			if err := os.Setenv(name, value); err != nil {
				return 0, err
			}
			continue
		}
		v, ok := fm.local.Get(arg)
		if !ok {
			return 0, errs.UndefinedVariable{Name: arg}
		}
		if err := os.Setenv(arg, v.Scalar()); err != nil {
			return 0, err
		}
	}
	return 0, nil
}

func unsetFn(fm *Frame, args []string) (int, error) {
	for _, name := range args {
		if isReadOnlyVar(name) {
			return 0, errs.ReadOnlyVar{Name: name}
		}
		fm.local.Del(name)
		os.Unsetenv(name)
	}
	return 0, nil
}

func jobsFn(fm *Frame, args []string) (int, error) {
	for _, job := range fm.Evaler.jobs.List() {
		state := "running"
		if job.Done() {
			state = fmt.Sprintf("done (%d)", job.Status())
		}
		fmt.Fprintf(fm.OutputFile(), "[%d] %s\t%s\n", job.ID, state, job.Text)
	}
	return 0, nil
}

func waitFn(fm *Frame, args []string) (int, error) {
	return fm.Evaler.jobs.Wait(), nil
}

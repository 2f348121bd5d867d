// Package shell is the terminal interface of Marsh. It covers both script
// execution and the interactive read-eval loop.
package shell

import (
	"os"
	"os/signal"
	"sync"

	"src.mar.sh/pkg/eval"
	"src.mar.sh/pkg/logutil"
	"src.mar.sh/pkg/parse"
	"src.mar.sh/pkg/prog"
	"src.mar.sh/pkg/sys"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the shell subprogram. It is the catch-all subprogram and never
// returns prog.ErrNotSuitable.
type Program struct{}

// Run runs the shell. With an argument or -c it runs in script mode;
// otherwise it runs an interactive session.
func (p Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	restoreSHLVL := incSHLVL()
	defer restoreSHLVL()
	cleanup := initSignal(fds[2])
	defer cleanup()

	ev := eval.NewEvaler()

	if f.CodeInArg && len(args) == 0 {
		return prog.BadUsage("argument required to -c")
	}
	if len(args) > 0 {
		exit := script(ev, fds, args, &scriptCfg{
			Cmd: f.CodeInArg, CompileOnly: f.CompileOnly, JSON: f.JSON})
		return prog.Exit(exit)
	}

	rc := ""
	if !f.NoRc {
		rc = f.RC
		if rc == "" {
			defaultRC, err := rcPath()
			if err != nil {
				logger.Println("rc path:", err)
			} else {
				rc = defaultRC
			}
		}
	}
	exit := interact(ev, fds, &interactCfg{RC: rc, DB: f.DB})
	return prog.Exit(exit)
}

func initSignal(stderr *os.File) func() {
	sigCh := sys.NotifySignals()
	go func() {
		for sig := range sigCh {
			logger.Println("signal", sig)
			handleSignal(sig, stderr)
		}
	}()
	return func() { signal.Stop(sigCh) }
}

// evalInTTY evaluates a piece of source code with the given ports, arranging
// for SIGINT to interrupt the evaluation.
func evalInTTY(ev *eval.Evaler, fds [3]*os.File, src parse.Source) error {
	intCh := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	done := make(chan struct{})
	var once sync.Once
	go func() {
		select {
		case <-sigCh:
			once.Do(func() { close(intCh) })
		case <-done:
		}
	}()

	ev.SetInterruptChan(intCh)
	err := ev.Eval(src, fds)
	ev.SetInterruptChan(nil)

	close(done)
	signal.Stop(sigCh)
	return err
}

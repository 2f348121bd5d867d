//go:build !windows && !plan9
// +build !windows,!plan9

package eval

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// waitStatus extracts the exit status from a finished command. For a command
// killed by a signal, the status follows the shell convention of 128 plus the
// signal number, and the second return value names the signal.
func waitStatus(err *exec.ExitError) (int, string) {
	ws, ok := err.Sys().(syscall.WaitStatus)
	if !ok {
		return err.ExitCode(), ""
	}
	if ws.Signaled() {
		sig := ws.Signal()
		return 128 + int(sig), "killed by " + unix.SignalName(unix.Signal(sig))
	}
	return ws.ExitStatus(), ""
}

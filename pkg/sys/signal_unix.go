//go:build unix

package sys

import (
	"os"
	"os/signal"
	"syscall"
)

func notifySignals() chan os.Signal {
	// This catches every signal regardless of whether it is ignored.
	sigCh := make(chan os.Signal, sigsChanBufferSize)
	signal.Notify(sigCh)
	// Calling signal.Notify resets the signal ignore status, so we need to
	// call signal.Ignore every time we call signal.Notify. Ignoring these
	// keeps the shell in the foreground when running external commands from
	// an interactive prompt.
	signal.Ignore(syscall.SIGTTIN, syscall.SIGTTOU, syscall.SIGTSTP)
	return sigCh
}

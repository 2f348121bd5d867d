//go:build windows
// +build windows

package shell

import (
	"os"
	"syscall"
)

func handleSignal(sig os.Signal, stderr *os.File) {
	switch sig {
	case syscall.SIGTERM:
		os.Exit(0)
	}
}

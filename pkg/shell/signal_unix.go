//go:build !windows && !plan9
// +build !windows,!plan9

package shell

import (
	"os"
	"syscall"
)

func handleSignal(sig os.Signal, stderr *os.File) {
	switch sig {
	case syscall.SIGHUP:
		syscall.Kill(0, syscall.SIGHUP)
		os.Exit(0)
	}
}

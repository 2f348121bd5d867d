//go:build windows || plan9
// +build windows plan9

package eval

import "os/exec"

func waitStatus(err *exec.ExitError) (int, string) {
	return err.ExitCode(), ""
}

package eval

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"

	"src.mar.sh/pkg/diag"
)

// Exit statuses used when a command cannot be run at all.
const (
	StatusCmdNotExecutable = 126
	StatusCmdNotFound      = 127
)

// callExternal runs an external command. A command that runs and fails only
// yields an exit status; failing to run the command at all is reported on
// standard error with the conventional statuses 127 (not found) and 126 (not
// executable).
func (fm *Frame) callExternal(name string, args []string, r diag.Ranger) (int, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			fmt.Fprintf(fm.ErrorFile(), "marsh: permission denied: %s\n", name)
			return StatusCmdNotExecutable, nil
		}
		fmt.Fprintf(fm.ErrorFile(), "marsh: command not found: %s\n", name)
		return StatusCmdNotFound, nil
	}

	cmd := &exec.Cmd{
		Path:   path,
		Args:   append([]string{name}, args...),
		Stdin:  fm.InputFile(),
		Stdout: fm.OutputFile(),
		Stderr: fm.ErrorFile(),
	}
	if err := cmd.Start(); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			fmt.Fprintf(fm.ErrorFile(), "marsh: permission denied: %s\n", name)
			return StatusCmdNotExecutable, nil
		}
		return 0, fm.errorp(r, err)
	}
	err = cmd.Wait()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		status, signaled := waitStatus(exitErr)
		if signaled != "" {
			fmt.Fprintf(fm.ErrorFile(), "marsh: %s: %s\n", name, signaled)
		}
		return status, nil
	}
	return 0, fm.errorp(r, err)
}

package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"src.mar.sh/pkg/strutil"
)

// The interface a line editor has to satisfy.
type editor interface {
	ReadCode() (string, error)
}

// minEditor is a line editor with no editing capabilities beyond what the
// terminal driver provides. It writes its prompt to the error stream so that
// stdout stays clean for command output.
type minEditor struct {
	in     *bufio.Reader
	out    io.Writer
	prompt string
}

func newMinEditor(in, out *os.File, prompt string) *minEditor {
	return &minEditor{bufio.NewReader(in), out, prompt}
}

func (ed *minEditor) ReadCode() (string, error) {
	if ed.prompt != "" {
		fmt.Fprint(ed.out, ed.prompt)
	} else {
		wd, err := os.Getwd()
		if err != nil {
			wd = "?"
		}
		fmt.Fprintf(ed.out, "%s> ", wd)
	}
	line, err := ed.in.ReadString('\n')
	return strutil.ChopLineEnding(line), err
}

// Package progtest provides utilities for testing subprograms.
//
// This package intentionally has no test file; it is excluded from test
// coverage.
package progtest

import (
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"src.mar.sh/pkg/must"
	"src.mar.sh/pkg/prog"
)

// Case is a test case that can be used in Test.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exit   int
	stdout output
	stderr output
}

type output struct {
	content string
	partial bool
}

func (o output) String() string {
	if o.partial {
		return fmt.Sprintf("text containing %q", o.content)
	}
	return fmt.Sprintf("%q", o.content)
}

// ThatMarsh returns a new Case with the given CLI arguments.
func ThatMarsh(args ...string) Case {
	return Case{args: append([]string{"marsh"}, args...)}
}

// WithStdin returns an altered Case that has the given input as stdin.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise
// don't have any expectations, for example those that only test side effects.
func (c Case) DoesNothing() Case {
	return c
}

// ExitsWith returns an altered Case that requires the process to exit with the
// given exit code.
func (c Case) ExitsWith(code int) Case {
	c.want.exit = code
	return c
}

// WritesStdout returns an altered Case that requires the stdout output to be
// exactly the given text.
func (c Case) WritesStdout(s string) Case {
	c.want.stdout = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the stdout
// output to contain the given text.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.stdout = output{content: s, partial: true}
	return c
}

// WritesStderr returns an altered Case that requires the stderr output to be
// exactly the given text.
func (c Case) WritesStderr(s string) Case {
	c.want.stderr = output{content: s}
	return c
}

// WritesStderrContaining returns an altered Case that requires the stderr
// output to contain the given text.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.stderr = output{content: s, partial: true}
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args[1:], " "), func(t *testing.T) {
			t.Helper()
			r := run(p, c.args, c.stdin)
			if r.exit != c.want.exit {
				t.Errorf("got exit code %v, want %v", r.exit, c.want.exit)
			}
			if !matchOutput(r.stdout, c.want.stdout) {
				t.Errorf("got stdout %v, want %v", r.stdout, c.want.stdout)
			}
			if !matchOutput(r.stderr, c.want.stderr) {
				t.Errorf("got stderr %v, want %v", r.stderr, c.want.stderr)
			}
		})
	}
}

func matchOutput(got, want output) bool {
	if want.partial {
		return strings.Contains(got.content, want.content)
	}
	return got.content == want.content
}

func run(p prog.Program, args []string, stdin string) result {
	r0, w0 := must.Pipe()
	r1, w1 := must.Pipe()
	r2, w2 := must.Pipe()

	go func() {
		w0.WriteString(stdin)
		w0.Close()
	}()

	stdoutCh := capture(r1)
	stderrCh := capture(r2)

	exit := prog.Run([3]*os.File{r0, w1, w2}, args, p)

	r0.Close()
	w1.Close()
	w2.Close()
	stdout := <-stdoutCh
	stderr := <-stderrCh

	return result{exit, output{content: stdout}, output{content: stderr}}
}

func capture(r *os.File) <-chan string {
	ch := make(chan string, 1)
	go func() {
		b, _ := io.ReadAll(r)
		r.Close()
		ch <- string(b)
	}()
	return ch
}

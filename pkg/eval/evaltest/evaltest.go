// Package evaltest provides a framework for testing the evaluation of marsh
// source code.
//
// The entry point is Test, which takes any number of test cases built with
// That:
//
//	Test(t,
//		That("echo hello").Prints("hello\n"),
//		That("false").ExitsWith(1),
//	)
package evaltest

import (
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.mar.sh/pkg/eval"
	"src.mar.sh/pkg/must"
	"src.mar.sh/pkg/parse"
)

// Case is a test case, constructed with That and refined with its methods.
type Case struct {
	code string
	want result
}

type result struct {
	out       string
	stderrSub string
	status    int
	errMsg    string
	parseErr  bool
}

// That returns a Case that evaluates the given lines of code.
func That(lines ...string) *Case {
	return &Case{code: strings.Join(lines, "\n")}
}

// Prints asserts the text written to standard output.
func (c *Case) Prints(out string) *Case {
	c.want.out = out
	return c
}

// PrintsStderrWith asserts that standard error contains the given text.
func (c *Case) PrintsStderrWith(sub string) *Case {
	c.want.stderrSub = sub
	return c
}

// ExitsWith asserts the status of the last pipeline.
func (c *Case) ExitsWith(status int) *Case {
	c.want.status = status
	return c
}

// Throws asserts that evaluation returns an exception whose cause has the
// given message.
func (c *Case) Throws(msg string) *Case {
	c.want.errMsg = msg
	return c
}

// ThrowsParseError asserts that the code fails to parse.
func (c *Case) ThrowsParseError() *Case {
	c.want.parseErr = true
	return c
}

// DoesNothing marks that the case asserts nothing beyond successful
// evaluation. It makes the intent explicit at the call site.
func (c *Case) DoesNothing() *Case {
	return c
}

// Test runs test cases against a fresh Evaler each.
func Test(t *testing.T, cases ...*Case) {
	t.Helper()
	TestWithSetup(t, func(ev *eval.Evaler) {}, cases...)
}

// TestWithSetup is like Test, but calls setup on each Evaler before use.
func TestWithSetup(t *testing.T, setup func(ev *eval.Evaler), cases ...*Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.code, func(t *testing.T) {
			t.Helper()
			ev := eval.NewEvaler()
			setup(ev)

			out, stderr, err := evalAndCapture(ev, c.code)

			if c.want.parseErr {
				if parse.UnpackErrors(err) == nil {
					t.Errorf("got error %v, want parse error", err)
				}
				return
			}
			if c.want.errMsg != "" {
				reason := eval.Reason(err)
				if reason == nil || reason.Error() != c.want.errMsg {
					t.Errorf("got error %v, want error with message %q",
						err, c.want.errMsg)
				}
			} else if err != nil {
				t.Errorf("got error %v, want nil", err)
			}
			if diff := cmp.Diff(c.want.out, out); diff != "" {
				t.Errorf("output (-want +got):\n%s", diff)
			}
			if !strings.Contains(stderr, c.want.stderrSub) {
				t.Errorf("stderr %q does not contain %q", stderr, c.want.stderrSub)
			}
			if status := ev.Status(); status != c.want.status {
				t.Errorf("got status %d, want %d", status, c.want.status)
			}
		})
	}
}

// evalAndCapture evaluates code with standard output and error connected to
// pipes, and returns everything written to them.
func evalAndCapture(ev *eval.Evaler, code string) (string, string, error) {
	devNull := must.OK1(os.Open(os.DevNull))
	defer devNull.Close()

	outR, outW := must.Pipe()
	errR, errW := must.Pipe()
	var outB, errB strings.Builder
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		io.Copy(&outB, outR)
		outR.Close()
	}()
	go func() {
		defer wg.Done()
		io.Copy(&errB, errR)
		errR.Close()
	}()

	err := ev.Eval(
		parse.Source{Name: "[test]", Code: code},
		[3]*os.File{devNull, outW, errW})
	outW.Close()
	errW.Close()
	wg.Wait()
	return outB.String(), errB.String(), err
}

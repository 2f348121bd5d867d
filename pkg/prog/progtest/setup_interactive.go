//go:build !windows

package progtest

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/creack/pty"
	"src.mar.sh/pkg/must"
	"src.mar.sh/pkg/testutil"
)

type pipe struct {
	r, w             *os.File
	rClosed, wClosed bool
}

func makePipe() *pipe {
	r, w := must.Pipe()
	return &pipe{r: r, w: w}
}

// Fixture is a set of file descriptors for testing an interactive subprogram.
// The stdin pair is backed by a pty, so that the subprogram believes it is
// talking to a terminal.
type Fixture struct {
	pipes [3]*pipe
}

// SetupInteractive sets up a test fixture for use by an interactive shell,
// that is, one that reads commands from a tty. It also changes into a
// temporary directory for the duration of the test.
func SetupInteractive(t *testing.T) *Fixture {
	testutil.InTempDir(t)
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("cannot open pty: %v", err)
	}
	// The subprogram reads from the master side; writes to the slave side
	// are delivered to it even after the slave side is closed.
	f := &Fixture{[3]*pipe{{r: ptmx, w: tty}, makePipe(), makePipe()}}
	t.Cleanup(f.cleanup)
	return f
}

// Fds returns the file descriptors to run the subprogram with.
func (f *Fixture) Fds() [3]*os.File {
	return [3]*os.File{f.pipes[0].r, f.pipes[1].w, f.pipes[2].w}
}

// FeedIn feeds the given text to the subprogram's stdin, and then closes the
// write side so that the subprogram sees end of input.
func (f *Fixture) FeedIn(s string) {
	f.pipes[0].w.WriteString(s)
	f.pipes[0].w.Close()
	f.pipes[0].wClosed = true
}

// Out returns everything the subprogram has written to the given fd, which
// must be 1 or 2. It may only be called after the subprogram has returned.
func (f *Fixture) Out(fd int) string {
	p := f.pipes[fd]
	if !p.wClosed {
		p.w.Close()
		p.wClosed = true
	}
	b, _ := io.ReadAll(p.r)
	p.r.Close()
	p.rClosed = true
	return string(b)
}

// TestOut checks that the output on the given fd is exactly the given text.
func (f *Fixture) TestOut(t *testing.T, fd int, want string) {
	t.Helper()
	if got := f.Out(fd); got != want {
		t.Errorf("got out[%d] = %q, want %q", fd, got, want)
	}
}

// TestOutSnippet checks that the output on the given fd contains the given
// text.
func (f *Fixture) TestOutSnippet(t *testing.T, fd int, wantSnippet string) {
	t.Helper()
	if got := f.Out(fd); !strings.Contains(got, wantSnippet) {
		t.Errorf("got out[%d] = %q, want string containing %q", fd, got, wantSnippet)
	}
}

func (f *Fixture) cleanup() {
	for _, p := range f.pipes {
		if !p.wClosed {
			p.w.Close()
		}
		if !p.rClosed {
			p.r.Close()
		}
	}
}

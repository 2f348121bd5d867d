package prog_test

import (
	"os"
	"testing"

	. "src.mar.sh/pkg/prog"
	"src.mar.sh/pkg/prog/progtest"
	"src.mar.sh/pkg/testutil"
)

var (
	Test      = progtest.Test
	ThatMarsh = progtest.ThatMarsh
)

func TestCommonFlagHandling(t *testing.T) {
	testutil.InTempDir(t)

	Test(t, testProgram{},
		ThatMarsh("-bad-flag").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -bad-flag\nUsage:"),
		// -h is treated as a bad flag
		ThatMarsh("-h").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -h\nUsage:"),

		ThatMarsh("-help").
			WritesStdoutContaining("Usage: marsh [flags] [script]"),

		ThatMarsh("-cpuprofile", "cpuprof").DoesNothing(),
		ThatMarsh("-cpuprofile", "/a/bad/path").
			WritesStderrContaining("Warning: cannot create CPU profile:"),
	)

	// Check for the effect of -cpuprofile. There isn't much to test beyond a
	// sanity check that the profile file now exists.
	_, err := os.Stat("cpuprof")
	if err != nil {
		t.Errorf("CPU profile file does not exist: %v", err)
	}
}

func TestNoSuitableSubprogram(t *testing.T) {
	Test(t, testProgram{notSuitable: true},
		ThatMarsh().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{writeOut: "program 2"}),
		ThatMarsh().WritesStdout("program 2"),
	)
}

func TestComposite_NoSuitableSubprogram(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{notSuitable: true}),
		ThatMarsh().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite_PreferEarlierSubprogram(t *testing.T) {
	Test(t,
		Composite(
			testProgram{writeOut: "program 1"}, testProgram{writeOut: "program 2"}),
		ThatMarsh().WritesStdout("program 1"),
	)
}

func TestBadUsageError(t *testing.T) {
	Test(t,
		testProgram{returnErr: BadUsage("lorem ipsum")},
		ThatMarsh().ExitsWith(2).WritesStderrContaining("lorem ipsum\n"),
	)
}

func TestExitError(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(3)},
		ThatMarsh().ExitsWith(3),
	)
}

func TestExitError_0(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(0)},
		ThatMarsh().ExitsWith(0),
	)
}

type testProgram struct {
	notSuitable bool
	writeOut    string
	returnErr   error
}

func (p testProgram) Run(fds [3]*os.File, _ *Flags, args []string) error {
	if p.notSuitable {
		return ErrNotSuitable
	}
	fds[1].WriteString(p.writeOut)
	return p.returnErr
}

package shell

import (
	"testing"

	. "src.mar.sh/pkg/prog/progtest"
	"src.mar.sh/pkg/testutil"
)

func TestScript_Cmd(t *testing.T) {
	Test(t, Program{},
		ThatMarsh("-c", "echo hello").WritesStdout("hello\n"),
		ThatMarsh("-c", "let x = abc\necho $x[0..1]").WritesStdout("a\n"),
		ThatMarsh("-c", "echo $1 $args", "a", "b").WritesStdout("a a b\n"),
		ThatMarsh("-c", "false").ExitsWith(1),
		ThatMarsh("-c", "exit 3").ExitsWith(3),
		ThatMarsh("-c").ExitsWith(2).
			WritesStderrContaining("argument required to -c"),
		ThatMarsh("-c", "echo $nope").ExitsWith(2).
			WritesStderrContaining("undefined variable: $nope"),
		ThatMarsh("-c", "let x").ExitsWith(2).
			WritesStderrContaining("Parse error"),
	)
}

func TestScript_File(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(testutil.Dir{"hello.marsh": "echo hello file"})

	Test(t, Program{},
		ThatMarsh("hello.marsh").WritesStdout("hello file\n"),
		ThatMarsh("nonexistent.marsh").ExitsWith(2).
			WritesStderrContaining("cannot read script"),
	)
}

func TestScript_CompileOnly(t *testing.T) {
	Test(t, Program{},
		ThatMarsh("-compileonly", "-c", "echo hello").DoesNothing(),
		ThatMarsh("-compileonly", "-c", "let x").ExitsWith(2).
			WritesStderrContaining("Parse error"),
		ThatMarsh("-compileonly", "-json", "-c", "echo hello").
			WritesStdout("[]\n"),
		ThatMarsh("-compileonly", "-json", "-c", "let x").ExitsWith(2).
			WritesStdoutContaining(`"message"`),
	)
}

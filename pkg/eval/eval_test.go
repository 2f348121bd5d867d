package eval_test

import (
	"testing"

	"src.mar.sh/pkg/eval"
	. "src.mar.sh/pkg/eval/evaltest"
	"src.mar.sh/pkg/testutil"
)

func TestLet(t *testing.T) {
	Test(t,
		That("let x = hello", "echo $x").Prints("hello\n"),
		That(`let x = "a b"`, "echo $x").Prints("a b\n"),
		// Multiple words on the right-hand side make an array.
		That("let xs = a b c", "echo $xs").Prints("a b c\n"),
		// An empty right-hand side makes an empty scalar.
		That("let x =", `echo "[$x]"`).Prints("[]\n"),
		// Assignment requires the operator to stand alone.
		That("let x=hello").ThrowsParseError(),
	)
}

func TestLet_CompoundOps(t *testing.T) {
	Test(t,
		That("let x = orders", `let x ::= "Doctor's "`, "echo $x").
			Prints("Doctor's orders\n"),
		That("let x = Doctor", `let x ++= "'s orders"`, "echo $x").
			Prints("Doctor's orders\n"),
		// The compound operators reject array targets.
		That("let xs = b c", "let xs ++= d").Throws(
			"bad value: target of ++= must be scalar, but is array"),
		That("let xs = b c", "let xs ::= a").Throws(
			"bad value: target of ::= must be scalar, but is array"),
		// The compound operators treat an unbound name as an empty scalar.
		That("let fresh ++= tail", "echo $fresh").Prints("tail\n"),
		// Concatenating an array onto a scalar is a type error.
		That("let s = a", "let s ++= b c").Throws(
			"bad value: right-hand side of ++= must be scalar, but is array"),
	)
}

func TestLet_ReadOnly(t *testing.T) {
	Test(t,
		That("let status = 0").Throws(
			"cannot assign read-only variable: $status"),
		That("let pid = 1").Throws(
			"cannot assign read-only variable: $pid"),
	)
}

func TestSlice(t *testing.T) {
	Test(t,
		That(`let greeting = "Hello, World"`, "echo $greeting[7..12]").
			Prints("World\n"),
		That(`let greeting = "Hello, World"`, "echo $greeting[..5]").
			Prints("Hello\n"),
		That(`let greeting = "Hello, World"`, "echo $greeting[7..]").
			Prints("World\n"),
		That(`let s = abc`, `echo "[$s[..]]"`).Prints("[abc]\n"),
		// Slicing counts codepoints, not bytes.
		That(`let s = héllo`, "echo $s[1..3]").Prints("él\n"),
		// Out-of-range bounds clamp instead of failing.
		That(`let s = abc`, `echo "[$s[1..100]]"`).Prints("[bc]\n"),
		That(`let s = abc`, `echo "[$s[5..2]]"`).Prints("[]\n"),
		// Indices may come from scalar variables.
		That("let s = abcdef", "let i = 2", "let j = 4", "echo $s[$i..$j]").
			Prints("cd\n"),
		// Slicing an array is a type error.
		That("let xs = a b c d", "echo $xs[1..3]").Throws(
			"bad value: $xs must be scalar, but is array"),
		// A non-integer index is a runtime error.
		That("let s = abc", "echo $s[x..]").Throws(
			`malformed slice index: "x"`),
		That("let s = abc", "let i = oops", "echo $s[$i..]").Throws(
			`malformed slice index: "$i"`),
		// A suffix without '..' does not parse.
		That("echo $s[3]").ThrowsParseError(),
	)
}

func TestVarRef_Lenient(t *testing.T) {
	TestWithSetup(t, func(ev *eval.Evaler) { ev.LenientVars = true },
		That(`echo "[$nonexistent]"`).Prints("[]\n"),
		That("echo a $nonexistent b").Prints("a b\n"),
	)
}

func TestVarRef(t *testing.T) {
	Test(t,
		That("echo $nonexistent").Throws("undefined variable: $nonexistent"),
		// Arrays splice into separate arguments; quoting joins them.
		That("let xs = a b", "echo 1$xs 2").Prints("1a b 2\n"),
		That("let xs = a b", `echo "x: $xs"`).Prints("x: a b\n"),
		// An empty unquoted expansion contributes no argument.
		That("let e =", "echo a $e b").Prints("a b\n"),
		That("let e =", `echo a "$e" b`).Prints("a  b\n"),
		// Variable references inside double quotes expand.
		That("let who = World", `echo "Hello, $who!"`).Prints("Hello, World!\n"),
		// Text from a variable is never a glob pattern.
		That(`let x = "*"`, "echo $x").Prints("*\n"),
	)
}

func TestStatus(t *testing.T) {
	Test(t,
		That("true").ExitsWith(0),
		That("false").ExitsWith(1),
		That("false", "echo $status").Prints("1\n"),
		That("false", "true", "echo $status").Prints("0\n"),
		// A successful assignment yields status 0.
		That("false", "let x = 1", "echo $status").Prints("0\n"),
		That("this-command-does-not-exist-marsh").
			ExitsWith(127).PrintsStderrWith("command not found"),
	)
}

func TestIf(t *testing.T) {
	Test(t,
		That("if true; echo yes; end").Prints("yes\n"),
		That("if false; echo yes; end").DoesNothing(),
		That("if false; echo yes; else; echo no; end").Prints("no\n"),
		// The condition's status is observable in the branch.
		That("if false; true; else; echo $status; end").Prints("1\n"),
		// When no branch runs, the statement succeeds and resets $status.
		That("if false; echo yes; end", "echo $status").Prints("0\n"),
	)
}

func TestWhileFor(t *testing.T) {
	Test(t,
		That("let n = abc",
			"while true",
			"  if true; break; end",
			"end",
			"echo done").Prints("done\n"),
		That("for x in a b c; echo $x; end").Prints("a\nb\nc\n"),
		That("for x in a b c",
			"  if true; continue; end",
			"  echo $x",
			"end").DoesNothing(),
		That("for x in a b c",
			"  if true; break; end",
			"  echo $x",
			"end").DoesNothing(),
		// The loop variable iterates over array elements.
		That("let xs = 1 2", "for x in $xs; echo v$x; end").
			Prints("v1\nv2\n"),
		// The loop variable lives in the loop's own scope: it does not
		// clobber an outer binding and is gone after the loop.
		That("let x = keep", "for x in a b; echo $x; end", "echo $x").
			Prints("a\nb\nkeep\n"),
		That("for x in a b; end", "echo $x").Throws(
			"undefined variable: $x"),
		That("break").Throws("break outside loop"),
		That("continue").Throws("continue outside loop"),
	)
}

func TestFn(t *testing.T) {
	Test(t,
		That("fn greet(name); echo hi $name; end", "greet marsh").
			Prints("hi marsh\n"),
		That("fn f(); return; echo unreachable; end", "f").DoesNothing(),
		That("fn f(); return 3; end", "f").ExitsWith(3),
		That("fn f(a b); echo $b $a; end", "f 1 2").Prints("2 1\n"),
		That("fn f(a); echo $a; end", "f").Throws(
			"arity mismatch: arguments to f must be 1 value, but is 0 values"),
		That("return").Throws("return outside function"),
		// Function bodies run in a scope below the global scope, not the
		// scope of the caller.
		That("fn f(); let inside = 1; end", "f", "echo $inside").Throws(
			"undefined variable: $inside"),
		That("let g = a", "fn f(); let g = b; end", "f", "echo $g").
			Prints("b\n"),
		// A function shadows a builtin of the same name.
		That("fn echo(x); true; end", "echo hi").DoesNothing(),
	)
}

func TestCmdSubst(t *testing.T) {
	Test(t,
		That("echo `echo nested`").Prints("nested\n"),
		// Unquoted substitution output splits into words.
		That("fn two(); echo a; echo b; end", "let xs = `two`", "echo $xs").
			Prints("a b\n"),
		// Quoting is unnecessary for keeping a single word in assignments
		// with one resulting word, but the value becomes an array.
		That("echo x`echo 1`y").Prints("x1y\n"),
	)
}

func TestArith(t *testing.T) {
	Test(t,
		That("echo $((1 + 2 * 3))").Prints("7\n"),
		That("echo $(((1 + 2) * 3))").Prints("9\n"),
		That("echo $((10 % 4)) $((10 / 4)) $((-3))").Prints("2 2 -3\n"),
		That("let n = 20", "echo $((n + $n))").Prints("40\n"),
		That("echo $((1 / 0))").Throws("division by zero"),
		That("let s = oops", "echo $((s + 1))").Throws(
			`bad value: arithmetic operand $s must be integer, but is "oops"`),
	)
}

func TestBraces(t *testing.T) {
	Test(t,
		That("echo {a,b}c").Prints("ac bc\n"),
		That("echo x{1,2}y{3,4}").Prints("x1y3 x1y4 x2y3 x2y4\n"),
		That("echo {a,}b").Prints("ab b\n"),
	)
}

func TestGlob(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(testutil.Dir{
		"foo.go":  "",
		"bar.go":  "",
		"foo.txt": "",
		".hidden": "",
	})
	Test(t,
		That("echo *.go").Prints("bar.go foo.go\n"),
		That("echo foo.?o").Prints("foo.go\n"),
		// A pattern with no match expands to no words.
		That("echo *.nope end").Prints("end\n"),
		// Globbing always produces an array, so slicing the result is a
		// type error like for any other array.
		That("let fs = *.go", "echo $fs").Prints("bar.go foo.go\n"),
		That("let fs = *.go", "echo $fs[1..2]").Throws(
			"bad value: $fs must be scalar, but is array"),
		// Hidden files need an explicit leading dot.
		That("echo *hidden end").Prints("end\n"),
		That("echo .h*").Prints(".hidden\n"),
		// Quoted metacharacters do not glob.
		That(`echo "*.go"`).Prints("*.go\n"),
	)
}

func TestPipeline(t *testing.T) {
	Test(t,
		That("echo hello | cat").Prints("hello\n"),
		That("echo a b c | wc -w | tr -d ' '").Prints("3\n"),
		// The status of a pipeline is the status of its last form.
		That("false | true").ExitsWith(0),
		That("true | false").ExitsWith(1),
	)
}

func TestRedir(t *testing.T) {
	testutil.InTempDir(t)
	Test(t,
		That("echo hi > f", "cat f").Prints("hi\n"),
		That("echo 1 > g", "echo 2 >> g", "cat g").Prints("1\n2\n"),
		That("echo content > h", "cat < h").Prints("content\n"),
		That("cat < no-such-file").Throws(
			"open no-such-file: no such file or directory"),
	)
}

func TestBackground(t *testing.T) {
	Test(t,
		That("echo bg &", "wait").Prints("bg\n"),
		// A background pipeline does not change the foreground status.
		That("false &", "echo $status", "wait").Prints("0\n").ExitsWith(1),
	)
}

func TestSliceCompose(t *testing.T) {
	Test(t,
		// Codepoint slicing composes: any split point reassembles the
		// original.
		That(`let s = "日本語 text"`,
			`echo "$s[..3]$s[3..]"`).Prints("日本語 text\n"),
	)
}

// Marsh is a shell with let-style assignments, Unicode-aware string slicing
// and a small set of structured control flow constructs. It is suitable for
// both interactive use and scripting.
package main

import (
	"os"

	"src.mar.sh/pkg/buildinfo"
	"src.mar.sh/pkg/lsp"
	"src.mar.sh/pkg/prog"
	"src.mar.sh/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program, lsp.Program, shell.Program{})))
}

package buildinfo

import (
	"fmt"
	"runtime"
	"testing"

	. "src.mar.sh/pkg/prog/progtest"
)

func TestProgram(t *testing.T) {
	fullVersion := Version + VersionSuffix

	Test(t, Program,
		ThatMarsh("-version").WritesStdout(fullVersion+"\n"),

		ThatMarsh("-buildinfo").WritesStdout(
			fmt.Sprintf("Version: %v\nGo version: %v\nReproducible build: %v\n",
				fullVersion, runtime.Version(), Reproducible)),
		ThatMarsh("-buildinfo", "-json").WritesStdout(
			fmt.Sprintf(`{"version":%s,"goversion":%s,"reproducible":%v}`+"\n",
				quoteJSON(fullVersion), quoteJSON(runtime.Version()), Reproducible)),

		ThatMarsh().ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

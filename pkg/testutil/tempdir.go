package testutil

import (
	"fmt"
	"os"
	"path/filepath"

	"src.mar.sh/pkg/must"
)

// TempDir creates a temporary directory for testing that will be removed
// after the test finishes. It is different from testing.TB.TempDir in that it
// resolves symlinks in the path of the directory.
//
// It panics if the test directory cannot be created or symlinks cannot be
// resolved. It is only suitable for use in tests.
func TempDir(c Cleanuper) string {
	dir, err := os.MkdirTemp("", "marsh-test")
	if err != nil {
		panic(err)
	}
	dir, err = filepath.EvalSymlinks(dir)
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

// Chdir changes into a directory, and restores the original working directory
// when a test finishes.
func Chdir(c Cleanuper, dir string) {
	oldWd := must.OK1(os.Getwd())
	must.OK(os.Chdir(dir))
	c.Cleanup(func() { must.OK(os.Chdir(oldWd)) })
}

// InTempDir is equivalent to Chdir(c, TempDir(c)).
func InTempDir(c Cleanuper) string {
	dir := TempDir(c)
	Chdir(c, dir)
	return dir
}

// ApplyDir creates files and directories in the current directory according
// to the given spec. Keys of the spec are file or directory names; a string
// value describes a file with that content, while a Dir value describes a
// subdirectory.
func ApplyDir(dir Dir) {
	applyDir(dir, "")
}

// Dir describes the contents of a directory, as in ApplyDir.
type Dir map[string]any

func applyDir(dir Dir, prefix string) {
	for name, file := range dir {
		path := filepath.Join(prefix, name)
		switch file := file.(type) {
		case string:
			must.OK(os.WriteFile(path, []byte(file), 0644))
		case Dir:
			must.OK(os.MkdirAll(path, 0755))
			applyDir(file, path)
		default:
			panic(fmt.Sprintf("file is neither string nor Dir: %v", file))
		}
	}
}

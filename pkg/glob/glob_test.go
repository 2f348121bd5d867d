package glob

import (
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"src.mar.sh/pkg/testutil"
)

var globFiles = testutil.Dir{
	"a":       testutil.Dir{"X": "", "Y": ""},
	"b":       testutil.Dir{"X": ""},
	"c":       testutil.Dir{"Y": ""},
	"d1":      testutil.Dir{"e": testutil.Dir{"X": ""}},
	"dX":      "",
	"lorem":   "",
	"ipsum":   "",
	".hidden": "",
}

var globCases = []struct {
	pattern string
	want    []string
}{
	{"*", []string{"a", "b", "c", "d1", "dX", "ipsum", "lorem"}},
	{"*/", []string{"a/", "b/", "c/", "d1/"}},
	{"*/X", []string{"a/X", "b/X"}},
	{"*/*/*", []string{"d1/e/X"}},
	{"l*m", []string{"lorem"}},
	{"d*", []string{"d1", "dX"}},
	{"?X", []string{"dX"}},
	{"ip?um", []string{"ipsum"}},
	// A leading wildcard does not match hidden files.
	{"*idden", []string{}},
	{".h*", []string{".hidden"}},
	// Consecutive stars collapse into one.
	{"l**m", []string{"lorem"}},
	// Literal path elements are followed, not listed.
	{"./a/*", []string{"./a/X", "./a/Y"}},
	{"nonexistent*", []string{}},
}

func TestGlob(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(globFiles)

	for _, tc := range globCases {
		names := []string{}
		Glob(tc.pattern, func(name string) bool {
			names = append(names, name)
			return true
		})
		sort.Strings(names)
		sort.Strings(tc.want)
		if !reflect.DeepEqual(names, tc.want) {
			t.Errorf("Glob(%q) => %v, want %v", tc.pattern, names, tc.want)
		}
	}
}

func TestGlob_Interrupt(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(testutil.Dir{"x1": "", "x2": "", "x3": ""})
	var got []string
	ok := Glob("x*", func(name string) bool {
		got = append(got, name)
		return false
	})
	if ok || len(got) != 1 {
		t.Errorf("interrupted Glob returned (%v, %v), want 1 name and false",
			got, ok)
	}
}

func TestGlob_AbsolutePattern(t *testing.T) {
	dir := testutil.InTempDir(t)
	testutil.ApplyDir(testutil.Dir{"file": ""})

	var got []string
	Glob(filepath.ToSlash(dir)+"/f*", func(name string) bool {
		got = append(got, name)
		return true
	})
	if len(got) != 1 {
		t.Errorf("Glob over absolute pattern => %v, want 1 name", got)
	}
}

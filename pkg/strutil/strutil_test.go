package strutil

import "testing"

var titleTests = []struct {
	in, want string
}{
	{"foo", "Foo"},
	{"", ""},
	{"x", "X"},
	{"ξ", "Ξ"},
}

func TestTitle(t *testing.T) {
	for _, test := range titleTests {
		if got := Title(test.in); got != test.want {
			t.Errorf("Title(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

var chopLineEndingTests = []struct {
	in, want string
}{
	{"", ""},
	{"text", "text"},
	{"text\n", "text"},
	{"text\r\n", "text"},
	{"text\n\n", "text\n"},
}

func TestChopLineEnding(t *testing.T) {
	for _, test := range chopLineEndingTests {
		if got := ChopLineEnding(test.in); got != test.want {
			t.Errorf("ChopLineEnding(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

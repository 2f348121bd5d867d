package lsp

import (
	"testing"

	lsp "github.com/sourcegraph/go-lsp"
	"src.mar.sh/pkg/tt"
)

var Args = tt.Args

func TestDiagnostics(t *testing.T) {
	diags := diagnostics("file:///ok.marsh", "echo hello")
	if len(diags) != 0 {
		t.Errorf("got %d diagnostics for good code, want 0", len(diags))
	}

	diags = diagnostics("file:///bad.marsh", "let x")
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics for bad code, want 1", len(diags))
	}
	d := diags[0]
	if d.Severity != lsp.Error {
		t.Errorf("got severity %v, want %v", d.Severity, lsp.Error)
	}
	if d.Source != "parse" {
		t.Errorf("got source %q, want %q", d.Source, "parse")
	}
	wantRange := lsp.Range{
		Start: lsp.Position{Line: 0, Character: 5},
		End:   lsp.Position{Line: 0, Character: 5},
	}
	if d.Range != wantRange {
		t.Errorf("got range %v, want %v", d.Range, wantRange)
	}
}

func TestCandidates(t *testing.T) {
	tt.Test(t, tt.Fn("candidates", candidates), tt.Table{
		Args("wh").Rets([]candidate{{"while", lsp.CIKKeyword}}),
		Args("ech").Rets([]candidate{{"echo", lsp.CIKFunction}}),
		Args("el").Rets([]candidate{{"else", lsp.CIKKeyword}}),
		Args("zzz").Rets([]candidate(nil)),
	})
}

func TestCompletionPrefix(t *testing.T) {
	// Index 9 is after "ec" on the second line.
	start, prefix := completionPrefix("echo a\nec", 9)
	if start != 7 || prefix != "ec" {
		t.Errorf("got (%v, %q), want (7, %q)", start, prefix, "ec")
	}

	start, prefix = completionPrefix("echo hello | wh", 15)
	if start != 13 || prefix != "wh" {
		t.Errorf("got (%v, %q), want (13, %q)", start, prefix, "wh")
	}

	start, prefix = completionPrefix("", 0)
	if start != 0 || prefix != "" {
		t.Errorf("got (%v, %q), want (0, %q)", start, prefix, "")
	}
}

func TestLspPositionFromIdx(t *testing.T) {
	// The character offset counts UTF-16 units: 😀 is two units.
	s := "a😀b\ncd"
	tests := []struct {
		idx  int
		want lsp.Position
	}{
		{0, lsp.Position{Line: 0, Character: 0}},
		{1, lsp.Position{Line: 0, Character: 1}},
		{5, lsp.Position{Line: 0, Character: 3}},
		{7, lsp.Position{Line: 1, Character: 0}},
		{9, lsp.Position{Line: 1, Character: 2}},
	}
	for _, test := range tests {
		if got := lspPositionFromIdx(s, test.idx); got != test.want {
			t.Errorf("lspPositionFromIdx(%q, %v) = %v, want %v",
				s, test.idx, got, test.want)
		}
	}
	for _, test := range tests {
		if got := lspPositionToIdx(s, test.want); got != test.idx {
			t.Errorf("lspPositionToIdx(%q, %v) = %v, want %v",
				s, test.want, got, test.idx)
		}
	}
}

//go:build !windows

package shell

import (
	"path/filepath"
	"testing"

	"src.mar.sh/pkg/env"
	"src.mar.sh/pkg/testutil"
)

func TestDBPath_XDGStateHome(t *testing.T) {
	testutil.Setenv(t, env.XDG_STATE_HOME, "/xdg/state")

	p, err := dbPath()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join("/xdg/state", "marsh", "db.bolt")
	if p != want {
		t.Errorf("got db path %q, want %q", p, want)
	}
}

func TestDBPath_Default(t *testing.T) {
	testutil.Unsetenv(t, env.XDG_STATE_HOME)
	testutil.Setenv(t, env.HOME, "/home/test")

	p, err := dbPath()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join("/home/test", ".local", "state", "marsh", "db.bolt")
	if p != want {
		t.Errorf("got db path %q, want %q", p, want)
	}
}

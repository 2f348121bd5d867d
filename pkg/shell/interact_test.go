//go:build !windows

package shell

import (
	"testing"

	"src.mar.sh/pkg/eval"
	"src.mar.sh/pkg/prog/progtest"
	"src.mar.sh/pkg/store"
	"src.mar.sh/pkg/testutil"
)

func TestInteract_SingleCommand(t *testing.T) {
	f := progtest.SetupInteractive(t)
	f.FeedIn("echo hello\n")

	interact(eval.NewEvaler(), f.Fds(), &interactCfg{DB: "db.bolt"})
	f.TestOut(t, 1, "hello\n")
}

func TestInteract_Exception(t *testing.T) {
	f := progtest.SetupInteractive(t)
	f.FeedIn("echo $nope\n")

	interact(eval.NewEvaler(), f.Fds(), &interactCfg{DB: "db.bolt"})
	f.TestOut(t, 1, "")
	f.TestOutSnippet(t, 2, "undefined variable: $nope")
}

func TestInteract_RcStartup(t *testing.T) {
	f := progtest.SetupInteractive(t)
	f.FeedIn("")
	testutil.ApplyDir(testutil.Dir{
		"rc.yaml": "startup:\n  - echo hello from rc\n",
	})

	interact(eval.NewEvaler(), f.Fds(), &interactCfg{RC: "rc.yaml", DB: "db.bolt"})
	f.TestOut(t, 1, "hello from rc\n")
}

func TestInteract_RcPrompt(t *testing.T) {
	f := progtest.SetupInteractive(t)
	f.FeedIn("")
	testutil.ApplyDir(testutil.Dir{
		"rc.yaml": "prompt: 'marsh~ '\n",
	})

	interact(eval.NewEvaler(), f.Fds(), &interactCfg{RC: "rc.yaml", DB: "db.bolt"})
	f.TestOutSnippet(t, 2, "marsh~ ")
}

func TestInteract_RcNonexistentIsOK(t *testing.T) {
	f := progtest.SetupInteractive(t)
	f.FeedIn("echo hello\n")

	interact(eval.NewEvaler(), f.Fds(), &interactCfg{RC: "rc.yaml", DB: "db.bolt"})
	f.TestOut(t, 1, "hello\n")
}

func TestInteract_HistoryPersisted(t *testing.T) {
	f := progtest.SetupInteractive(t)
	f.FeedIn("echo recorded\n")

	interact(eval.NewEvaler(), f.Fds(), &interactCfg{DB: "db.bolt"})
	f.TestOut(t, 1, "recorded\n")

	st, err := store.NewStore("db.bolt")
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	// Sequence numbers start at 1.
	cmd, err := st.Cmd(1)
	if err != nil {
		t.Fatal(err)
	}
	if cmd != "echo recorded" {
		t.Errorf("got history entry %q, want %q", cmd, "echo recorded")
	}
}

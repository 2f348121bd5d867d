package store

import (
	"testing"

	"src.mar.sh/pkg/store/storedefs"
)

var cmds = []string{"echo foo", "put bar", "put lorem", "echo bar"}

func TestCmd(t *testing.T) {
	st := MustTempStore(t)

	startSeq, err := st.NextCmdSeq()
	if err != nil || startSeq != 1 {
		t.Errorf("NextCmdSeq => (%d, %v), want (1, nil)", startSeq, err)
	}
	for i, cmd := range cmds {
		seq, err := st.AddCmd(cmd)
		if err != nil || seq != i+1 {
			t.Errorf("AddCmd(%q) => (%d, %v), want (%d, nil)", cmd, seq, err, i+1)
		}
	}

	if text, err := st.Cmd(2); err != nil || text != "put bar" {
		t.Errorf("Cmd(2) => (%q, %v), want (put bar, nil)", text, err)
	}
	if _, err := st.Cmd(100); err != storedefs.ErrNoMatchingCmd {
		t.Errorf("Cmd(100) => error %v, want ErrNoMatchingCmd", err)
	}

	wantSlice := []storedefs.Cmd{
		{Text: "put bar", Seq: 2},
		{Text: "put lorem", Seq: 3},
	}
	got, err := st.CmdsWithSeq(2, 4)
	if err != nil || len(got) != len(wantSlice) {
		t.Fatalf("CmdsWithSeq(2, 4) => (%v, %v)", got, err)
	}
	for i, cmd := range got {
		if cmd != wantSlice[i] {
			t.Errorf("CmdsWithSeq(2, 4)[%d] = %v, want %v", i, cmd, wantSlice[i])
		}
	}

	if cmd, err := st.NextCmd(2, "put"); err != nil ||
		cmd != (storedefs.Cmd{Text: "put bar", Seq: 2}) {
		t.Errorf("NextCmd(2, put) => (%v, %v)", cmd, err)
	}
	if cmd, err := st.PrevCmd(4, "put"); err != nil ||
		cmd != (storedefs.Cmd{Text: "put lorem", Seq: 3}) {
		t.Errorf("PrevCmd(4, put) => (%v, %v)", cmd, err)
	}
	if cmd, err := st.PrevCmd(100, "echo"); err != nil ||
		cmd != (storedefs.Cmd{Text: "echo bar", Seq: 4}) {
		t.Errorf("PrevCmd(100, echo) => (%v, %v)", cmd, err)
	}
	if _, err := st.NextCmd(5, ""); err != storedefs.ErrNoMatchingCmd {
		t.Errorf("NextCmd(5, ) => error %v, want ErrNoMatchingCmd", err)
	}

	if err := st.DelCmd(3); err != nil {
		t.Errorf("DelCmd(3) => %v", err)
	}
	if _, err := st.Cmd(3); err != storedefs.ErrNoMatchingCmd {
		t.Errorf("Cmd(3) after DelCmd => error %v, want ErrNoMatchingCmd", err)
	}
}

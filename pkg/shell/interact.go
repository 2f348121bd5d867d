package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"src.mar.sh/pkg/diag"
	"src.mar.sh/pkg/eval"
	"src.mar.sh/pkg/parse"
	"src.mar.sh/pkg/store"
)

// Configuration for the interactive mode.
type interactCfg struct {
	// RC is the path of the rc file; empty means no rc file.
	RC string
	// DB is the path of the command history database; it takes precedence
	// over the rc file and the default path.
	DB string
}

// interact runs an interactive shell session. It returns the exit status of
// the session.
func interact(ev *eval.Evaler, fds [3]*os.File, cfg *interactCfg) int {
	rc, err := readRC(cfg.RC)
	if err != nil {
		fmt.Fprintln(fds[2], "Warning:", err)
	}
	ev.LenientVars = rc.LenientVars

	st := openHistory(fds[2], cfg, rc)
	if st != nil {
		defer st.Close()
	}

	for _, code := range rc.Startup {
		err := evalInTTY(ev, fds, parse.Source{Name: cfg.RC, Code: code})
		if err != nil {
			diag.ShowError(fds[2], err)
		}
	}

	ed := newMinEditor(fds[0], fds[2], rc.Prompt)
	cmdNum := 0

	for {
		cmdNum++

		line, err := ed.ReadCode()
		if err != nil {
			if err != io.EOF {
				logger.Println("read command:", err)
			}
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		if st != nil {
			if _, err := st.AddCmd(line); err != nil {
				logger.Println("add command to history:", err)
			}
		}

		err = evalInTTY(ev, fds,
			parse.Source{Name: fmt.Sprintf("[tty %v]", cmdNum), Code: line})
		var exit eval.ExitStatus
		if errors.As(err, &exit) {
			return exit.Status
		}
		if err != nil {
			diag.ShowError(fds[2], err)
		}
	}
	return ev.Status()
}

// openHistory opens the command history database, resolving its path from the
// -db flag, the rc file and the default location, in that order. Failure to
// open the database degrades to a session without history.
func openHistory(stderr *os.File, cfg *interactCfg, rc *rcConfig) store.DBStore {
	db := cfg.DB
	if db == "" {
		db = rc.HistoryDB
	}
	if db == "" {
		p, err := dbPath()
		if err != nil {
			logger.Println("history path:", err)
			return nil
		}
		db = p
	}
	if err := os.MkdirAll(filepath.Dir(db), 0700); err != nil {
		fmt.Fprintln(stderr, "Warning: cannot create history directory:", err)
		return nil
	}
	st, err := store.NewStore(db)
	if err != nil {
		fmt.Fprintln(stderr, "Warning: cannot open command history:", err)
		return nil
	}
	return st
}

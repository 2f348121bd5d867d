package shell

import (
	"os"
	"path/filepath"

	"src.mar.sh/pkg/env"
)

// rcPath returns the default path of the rc file, read at the start of an
// interactive session.
func rcPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "marsh", "rc.yaml"), nil
}

// dbPath returns the default path of the command history database.
func dbPath() (string, error) {
	if dir := os.Getenv(env.XDG_STATE_HOME); dir != "" {
		return filepath.Join(dir, "marsh", "db.bolt"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "marsh", "db.bolt"), nil
}

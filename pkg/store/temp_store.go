package store

import (
	"path/filepath"

	"src.mar.sh/pkg/testutil"
)

// MustTempStore returns a Store backed by a file in a temporary directory,
// removed when the test finishes. It panics if the store cannot be created.
// It is only suitable for use in tests.
func MustTempStore(c testutil.Cleanuper) DBStore {
	dir := testutil.TempDir(c)
	st, err := NewStore(filepath.Join(dir, "db"))
	if err != nil {
		panic("failed to create temp store: " + err.Error())
	}
	c.Cleanup(func() { st.Close() })
	return st
}

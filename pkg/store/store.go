// Package store abstracts the persistent storage used by marsh, currently
// the command history. It is backed by a bolt database file.
package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"src.mar.sh/pkg/logutil"
	"src.mar.sh/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

// DBStore is the permanent storage service.
type DBStore interface {
	storedefs.Store
	Close() error
}

var initDB = map[string](func(*bolt.Tx) error){}

type dbStore struct {
	db *bolt.DB
}

// NewStore creates a new store from the given file. The file is locked for
// the lifetime of the store; a second shell process opening the same file
// fails fast instead of blocking.
func NewStore(dbname string) (DBStore, error) {
	db, err := bolt.Open(dbname, 0644, &bolt.Options{
		Timeout: time.Second,
	})
	if err != nil {
		return nil, err
	}
	return NewStoreFromDB(db)
}

// NewStoreFromDB creates a new store from a bolt DB.
func NewStoreFromDB(db *bolt.DB) (DBStore, error) {
	logger.Println("initializing store")
	defer logger.Println("initialized store")
	st := &dbStore{db: db}

	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %v", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

// Close closes the store and releases the file lock.
func (s *dbStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

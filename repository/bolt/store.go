package bolt

import (
	"context"
	"os"
	"path/filepath"
	"time"

	boltdb "go.etcd.io/bbolt"
)

var (
	bucketUsers     = []byte("users")
	bucketEmployees = []byte("employees")
	bucketTasks     = []byte("tasks")
)

// Store wraps a bbolt database holding all three record types. It backs the
// embedded storage backend used for local development and tests.
type Store struct {
	db *boltdb.DB
}

// Open initializes the bbolt file and ensures all buckets exist.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := boltdb.Open(path, 0o600, &boltdb.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *boltdb.Tx) error {
		for _, bucket := range [][]byte{bucketUsers, bucketEmployees, bucketTasks} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Ping satisfies the monitor's health probe.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return boltdb.ErrDatabaseNotOpen
	}
	return s.db.View(func(tx *boltdb.Tx) error { return nil })
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

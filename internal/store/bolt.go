// Package store provides the BlobStore backends: BoltDB (default), a plain
// JSON directory, and an in-memory store for tests.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/cueset/internal/domain"
)

var bucketCollections = []byte("collections")

// Bolt implements domain.BlobStore on a single BoltDB file. Each store id is
// one key in the collections bucket.
type Bolt struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the database file at path.
func OpenBolt(path string) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCollections)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Bolt{db: db}, nil
}

func (s *Bolt) Load(storeID string) ([]byte, bool) {
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCollections)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(storeID)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	return data, data != nil
}

func (s *Bolt) Save(storeID string, data []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCollections)
		return b.Put([]byte(storeID), data)
	})
}

func (s *Bolt) Close() error {
	return s.db.Close()
}

// Open selects a backend by name. The "memory" backend ignores path and
// persists nothing.
func Open(backend, path string) (domain.BlobStore, error) {
	switch backend {
	case "", "bolt":
		return OpenBolt(path)
	case "dir":
		return OpenDir(path)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// Package persistence provides the local durable storage layer backed by
// BoltDB. State lives in a single file keyed by named slots, which keeps the
// client self-contained with no external database process.
package persistence

import (
	"context"
	"time"

	bolt "github.com/boltdb/bolt"
)

const slotBucket = "storage"

// StateStore wraps a BoltDB database holding verbatim JSON payloads under
// named slots. A slot write replaces the whole payload; readers get either
// the previous complete payload or the new one, never a partial write.
type StateStore struct {
	db *bolt.DB
}

// OpenStateStore opens (or creates) the database file at the given path and
// ensures the slot bucket exists
func OpenStateStore(path string) (*StateStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(slotBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &StateStore{db: db}, nil
}

// Close releases the database file lock
func (s *StateStore) Close() error {
	return s.db.Close()
}

// Get returns the payload stored under the slot, or nil when the slot has
// never been written
func (s *StateStore) Get(ctx context.Context, slot string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(slotBucket)).Get([]byte(slot))
		if v == nil {
			return nil
		}
		out = make([]byte, len(v))
		copy(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Put replaces the slot payload. The write is committed to disk before Put
// returns.
func (s *StateStore) Put(ctx context.Context, slot string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(slotBucket)).Put([]byte(slot), data)
	})
}

// Delete removes the slot. Deleting an absent slot is a no-op.
func (s *StateStore) Delete(ctx context.Context, slot string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(slotBucket)).Delete([]byte(slot))
	})
}

// Package audit is an append-only, monotonically-keyed log of mediator
// operations backed by a single boltdb bucket.
package audit

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"
)

var bucketOperations = []byte("operations")

// Entry is one recorded mediator operation: a tool invocation or a
// batched link mutation, kept for post-hoc debugging of what the agent
// asked the emulator to do.
type Entry struct {
	Sequence  uint64                 `json:"sequence"`
	Tool      string                 `json:"tool"`
	Arguments map[string]interface{} `json:"arguments,omitempty"`
	Success   bool                   `json:"success"`
	Error     string                 `json:"error,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Store wraps a BoltDB instance holding the append-only operations log.
type Store struct {
	db *bolt.DB
}

// Open creates (or opens) the audit database at path, creating its
// bucket if absent.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create audit directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open audit database: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketOperations)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("create audit bucket: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends one entry, assigning it the bucket's next sequence
// number.
func (s *Store) Record(tool string, arguments map[string]interface{}, opErr error) error {
	entry := Entry{
		Tool:      tool,
		Arguments: arguments,
		Success:   opErr == nil,
		Timestamp: time.Now().UTC(),
	}
	if opErr != nil {
		entry.Error = opErr.Error()
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketOperations)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		entry.Sequence = seq

		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshal audit entry: %w", err)
		}
		return b.Put(sequenceKey(seq), data)
	})
}

// Recent returns the last n entries in reverse-chronological order.
func (s *Store) Recent(n int) ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketOperations)
		c := b.Cursor()
		for k, v := c.Last(); k != nil && len(entries) < n; k, v = c.Prev() {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("unmarshal audit entry: %w", err)
			}
			entries = append(entries, e)
		}
		return nil
	})
	return entries, err
}

func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

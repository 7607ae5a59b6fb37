package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"go.etcd.io/bbolt"
)

const snapshotBucket = "snapshots"

// BoltBackend stores snapshots in a single bbolt file.
type BoltBackend struct {
	db     *bbolt.DB
	closed atomic.Bool
}

var _ Backend = (*BoltBackend)(nil)

// OpenBolt opens or creates the bbolt database at path. Missing parent
// directories are created.
func OpenBolt(path string) (*BoltBackend, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(snapshotBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create %s bucket: %w", snapshotBucket, err)
	}

	return &BoltBackend{db: db}, nil
}

// Load implements Backend.
func (b *BoltBackend) Load(ctx context.Context, key string) ([]byte, error) {
	if err := b.check(ctx); err != nil {
		return nil, err
	}

	var data []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		// Values are only valid inside the transaction.
		data = clone(tx.Bucket([]byte(snapshotBucket)).Get([]byte(key)))
		return nil
	})
	return data, err
}

// Save implements Backend.
func (b *BoltBackend) Save(ctx context.Context, key string, data []byte) error {
	if err := b.check(ctx); err != nil {
		return err
	}
	if data == nil {
		data = []byte{}
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(snapshotBucket)).Put([]byte(key), data)
	})
}

// Delete implements Backend.
func (b *BoltBackend) Delete(ctx context.Context, key string) error {
	if err := b.check(ctx); err != nil {
		return err
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(snapshotBucket)).Delete([]byte(key))
	})
}

// Keys implements Backend. bbolt iterates in byte order, so the result is
// already sorted.
func (b *BoltBackend) Keys(ctx context.Context) ([]string, error) {
	if err := b.check(ctx); err != nil {
		return nil, err
	}

	var keys []string
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(snapshotBucket)).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

// Close implements Backend.
func (b *BoltBackend) Close() error {
	if b.closed.Swap(true) {
		return nil
	}
	return b.db.Close()
}

// Path returns the database file path.
func (b *BoltBackend) Path() string {
	return b.db.Path()
}

func (b *BoltBackend) check(ctx context.Context) error {
	if b.closed.Load() {
		return ErrClosed
	}
	return ctx.Err()
}

// Package storage provides durable key/value backends for store snapshots.
//
// A snapshot is an opaque byte slice, in practice the JSON form of a store's
// state, saved under the store's persist key. Every backend treats a missing
// key as a miss, not an error:
//
//	data, err := b.Load(ctx, "todos")
//	switch {
//	case err != nil:   // backend failure
//	case data == nil:  // nothing persisted yet
//	}
//
// Backends are safe for concurrent use. After Close every method returns an
// error matching ErrClosed.
package storage

import (
	"context"
	"sort"

	"github.com/vango-dev/dot/internal/errors"
)

// Backend persists snapshots by key.
type Backend interface {
	// Load returns the snapshot for key, or (nil, nil) if there is none.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save stores data under key, replacing any previous snapshot.
	Save(ctx context.Context, key string, data []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns every stored key in sorted order.
	Keys(ctx context.Context) ([]string, error)

	// Close releases the backend's resources.
	Close() error
}

// ErrClosed is returned by a backend after Close.
var ErrClosed = errors.New("E031")

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func sorted(keys []string) []string {
	sort.Strings(keys)
	return keys
}

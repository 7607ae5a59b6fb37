//go:build js && wasm

package storage

import (
	"context"
	"sync/atomic"
	"syscall/js"

	"github.com/vango-dev/dot/internal/errors"
)

// LocalStorage stores snapshots in the browser's window.localStorage.
type LocalStorage struct {
	ls     js.Value
	closed atomic.Bool
}

var _ Backend = (*LocalStorage)(nil)

// NewLocalStorage returns a backend over window.localStorage. It fails with
// E002 where localStorage is missing or blocked.
func NewLocalStorage() (b *LocalStorage, err error) {
	defer func() {
		// Accessing localStorage throws in sandboxed frames.
		if r := recover(); r != nil {
			b, err = nil, errors.New("E002").WithDetail("localStorage: %v", r)
		}
	}()

	ls := js.Global().Get("localStorage")
	if ls.IsUndefined() || ls.IsNull() {
		return nil, errors.New("E002").WithDetail("localStorage is not available")
	}
	return &LocalStorage{ls: ls}, nil
}

// Load implements Backend.
func (b *LocalStorage) Load(ctx context.Context, key string) ([]byte, error) {
	if b.closed.Load() {
		return nil, ErrClosed
	}
	v := b.ls.Call("getItem", key)
	if v.IsNull() {
		return nil, nil
	}
	return []byte(v.String()), nil
}

// Save implements Backend.
func (b *LocalStorage) Save(ctx context.Context, key string, data []byte) (err error) {
	if b.closed.Load() {
		return ErrClosed
	}
	defer func() {
		// setItem throws QuotaExceededError.
		if r := recover(); r != nil {
			err = errors.New("E004").WithDetail("%v", r)
		}
	}()
	b.ls.Call("setItem", key, string(data))
	return nil
}

// Delete implements Backend.
func (b *LocalStorage) Delete(ctx context.Context, key string) error {
	if b.closed.Load() {
		return ErrClosed
	}
	b.ls.Call("removeItem", key)
	return nil
}

// Keys implements Backend.
func (b *LocalStorage) Keys(ctx context.Context) ([]string, error) {
	if b.closed.Load() {
		return nil, ErrClosed
	}
	n := b.ls.Get("length").Int()
	keys := make([]string, 0, n)
	for i := 0; i < n; i++ {
		keys = append(keys, b.ls.Call("key", i).String())
	}
	return sorted(keys), nil
}

// Close implements Backend.
func (b *LocalStorage) Close() error {
	b.closed.Store(true)
	return nil
}

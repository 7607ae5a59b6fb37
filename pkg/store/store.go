package store

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/vango-dev/dot/internal/errors"
)

// Store is an observable container for a value of type T. It is safe for
// concurrent use. Subscribers run on the committing goroutine after the
// store's lock is released.
type Store[T any] struct {
	mu      sync.Mutex
	state   T
	version uint64
	subs    []*subscription[T]

	cfg        config
	persisting bool
	logger     *slog.Logger
}

type subscription[T any] struct {
	fn     func(T)
	active atomic.Bool
	seen   atomic.Uint64
}

// New returns a store holding initial. When persistence is configured the
// stored snapshot is merged over initial before New returns.
func New[T any](initial T, opts ...Option) *Store[T] {
	cfg := config{codec: JSON, ctx: context.Background()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	s := &Store[T]{
		state:  initial,
		cfg:    cfg,
		logger: cfg.logger.With("component", "store"),
	}
	if cfg.key != "" {
		s.logger = s.logger.With("key", cfg.key)
	}

	switch {
	case cfg.key != "" && cfg.backend == nil:
		s.logger.Warn("persistence unavailable", "error", errors.New("E002").WithDetail("no storage backend"))
	case cfg.key != "":
		s.persisting = true
		s.state = s.hydrate(initial)
	}
	return s
}

// Get returns the most recently committed value.
func (s *Store[T]) Get() T {
	v, _ := s.load()
	return v
}

// Set replaces the state with v, persists it, then notifies subscribers in
// subscription order. A panicking subscriber stops the remaining ones and
// the panic reaches the caller; the commit itself stands.
func (s *Store[T]) Set(v T) {
	subs, seq, _ := s.commit(v, 0, false)
	notify(subs, v, seq)
}

// Update replaces the state with fn applied to the current state and
// notifies like Set. fn runs without the store's lock, so it may call Get.
// When another commit lands while fn runs, fn is called again with the newer
// state. A panicking fn leaves the state unchanged.
func (s *Store[T]) Update(fn func(T) T) {
	for {
		cur, ver := s.load()
		v := fn(cur)
		if subs, seq, ok := s.commit(v, ver, true); ok {
			notify(subs, v, seq)
			return
		}
	}
}

// Subscribe registers fn for every later commit. Each call gets its own slot,
// so subscribing the same function twice calls it twice. The returned func
// removes the slot and may be called any number of times.
//
// Commits from different goroutines notify concurrently. A subscriber never
// receives a value older than one it has already been given, but it should
// read Get when it needs the current state rather than the one it was handed.
func (s *Store[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	sub := &subscription[T]{fn: fn}
	sub.active.Store(true)

	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if !sub.active.Swap(false) {
			return
		}
		for i, x := range s.subs {
			if x == sub {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				break
			}
		}
	}
}

// Subscribers returns the number of active subscriptions.
func (s *Store[T]) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Persisting reports whether commits are written to a backend.
func (s *Store[T]) Persisting() bool {
	return s.persisting
}

func (s *Store[T]) load() (T, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.version
}

// commit stores and persists v, returning the subscriber list and the new
// version. With check set it commits only if the version is still ver.
func (s *Store[T]) commit(v T, ver uint64, check bool) ([]*subscription[T], uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if check && s.version != ver {
		return nil, 0, false
	}
	s.state = v
	s.version++
	if s.persisting {
		s.persist(v)
	}
	subs := make([]*subscription[T], len(s.subs))
	copy(subs, s.subs)
	return subs, s.version, true
}

// notify calls each subscriber still active when its turn comes, skipping
// any that has already been handed a newer version.
func notify[T any](subs []*subscription[T], v T, seq uint64) {
	for _, sub := range subs {
		if sub.active.Load() && sub.advance(seq) {
			sub.fn(v)
		}
	}
}

func (sub *subscription[T]) advance(seq uint64) bool {
	for {
		last := sub.seen.Load()
		if seq <= last {
			return false
		}
		if sub.seen.CompareAndSwap(last, seq) {
			return true
		}
	}
}

func (s *Store[T]) persist(v T) {
	snap, err := s.snapshot(v)
	if err != nil {
		s.logger.Warn("snapshot encode failed", "error", errors.New("E004").Wrap(err))
		return
	}
	data, err := s.cfg.codec.Marshal(snap)
	if err != nil {
		s.logger.Warn("snapshot encode failed", "error", errors.New("E004").Wrap(err))
		return
	}
	if err := s.cfg.backend.Save(s.cfg.ctx, s.cfg.key, data); err != nil {
		s.logger.Warn("snapshot write failed", "error", errors.New("E004").Wrap(err))
	}
}

// snapshot returns v's JSON shape with unpersisted keys removed.
func (s *Store[T]) snapshot(v T) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if obj, ok := out.(map[string]any); ok {
		for k := range obj {
			if !s.persisted(k) {
				delete(obj, k)
			}
		}
	}
	return out, nil
}

func (s *Store[T]) persisted(key string) bool {
	if strings.HasPrefix(key, "_") || s.cfg.deny[key] {
		return false
	}
	return s.cfg.allow == nil || s.cfg.allow[key]
}

// hydrate merges the stored snapshot over initial. Any failure leaves
// initial untouched. The result is decoded into a fresh T, so fields
// without a JSON form come back zeroed.
func (s *Store[T]) hydrate(initial T) T {
	data, err := s.cfg.backend.Load(s.cfg.ctx, s.cfg.key)
	if err != nil {
		s.logger.Warn("snapshot read failed", "error", errors.New("E002").Wrap(err))
		return initial
	}
	if data == nil {
		return initial
	}

	var restored any
	if err := s.cfg.codec.Unmarshal(data, &restored); err != nil {
		s.logger.Warn("snapshot decode failed", "error", errors.New("E003").Wrap(err))
		return initial
	}

	merged, err := s.merge(initial, restored)
	if err != nil {
		s.logger.Warn("snapshot decode failed", "error", errors.New("E003").Wrap(err))
		return initial
	}
	s.logger.Debug("snapshot restored")
	return merged
}

func (s *Store[T]) merge(initial T, restored any) (T, error) {
	base, err := json.Marshal(initial)
	if err != nil {
		return initial, err
	}

	var overlay []byte
	if trimmed := bytes.TrimSpace(base); len(trimmed) > 0 && trimmed[0] == '{' {
		obj, ok := restored.(map[string]any)
		if !ok {
			return initial, errors.New("E003").WithDetail("snapshot is not an object")
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(base, &fields); err != nil {
			return initial, err
		}
		for k, v := range obj {
			if !s.persisted(k) {
				continue
			}
			b, err := json.Marshal(v)
			if err != nil {
				return initial, err
			}
			fields[k] = b
		}
		if overlay, err = json.Marshal(fields); err != nil {
			return initial, err
		}
	} else if overlay, err = json.Marshal(restored); err != nil {
		return initial, err
	}

	var out T
	if err := json.Unmarshal(overlay, &out); err != nil {
		return initial, err
	}
	return out, nil
}

package store

import (
	"context"
	"log/slog"

	"github.com/vango-dev/dot/pkg/storage"
)

// Option configures a Store.
type Option func(*config)

type config struct {
	key     string
	backend storage.Backend
	codec   Codec
	allow   map[string]bool
	deny    map[string]bool
	logger  *slog.Logger
	ctx     context.Context
}

// WithPersistKey names the snapshot the store reads and writes.
func WithPersistKey(key string) Option {
	return func(c *config) { c.key = key }
}

// WithBackend sets where snapshots live.
func WithBackend(b storage.Backend) Option {
	return func(c *config) { c.backend = b }
}

// WithCodec sets the snapshot encoding. Default: JSON.
func WithCodec(codec Codec) Option {
	return func(c *config) {
		if codec != nil {
			c.codec = codec
		}
	}
}

// WithAllowKeys persists only the named top-level keys.
func WithAllowKeys(keys ...string) Option {
	return func(c *config) { c.allow = set(c.allow, keys) }
}

// WithDenyKeys never persists the named top-level keys.
func WithDenyKeys(keys ...string) Option {
	return func(c *config) { c.deny = set(c.deny, keys) }
}

// WithLogger sets the logger for persistence warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithContext sets the context passed to the backend.
func WithContext(ctx context.Context) Option {
	return func(c *config) { c.ctx = ctx }
}

func set(m map[string]bool, keys []string) map[string]bool {
	if m == nil {
		m = make(map[string]bool, len(keys))
	}
	for _, k := range keys {
		m[k] = true
	}
	return m
}

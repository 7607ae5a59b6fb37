package router

import (
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/vango-dev/dot/pkg/dom"
)

// DefaultBasePath is the base path Start normalizes against.
const DefaultBasePath = "/example"

// Option configures a Router.
type Option func(*Router)

// WithBasePath sets the path prefix under which the application is served.
// Start turns "<base>/about" into "<base>/#/about". Default: "/example".
func WithBasePath(base string) Option {
	return func(r *Router) { r.base = strings.TrimRight(base, "/") }
}

// WithoutNormalize stops Start from rewriting a URL that has no fragment.
func WithoutNormalize() Option {
	return func(r *Router) { r.normalize = false }
}

// WithLogger sets the router's logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// Router drives navigation for one window.
type Router struct {
	win       dom.Window
	table     Table
	base      string
	normalize bool
	logger    *slog.Logger

	mu          sync.Mutex
	started     bool
	subs        []*subscription
	intercepted []dom.Element
}

type subscription struct {
	fn     func(Match)
	active atomic.Bool
}

// New returns a router over win's location. The table is used as given;
// call Table.Validate first to reject malformed patterns.
func New(win dom.Window, table Table, opts ...Option) *Router {
	r := &Router{
		win:       win,
		table:     table,
		base:      DefaultBasePath,
		normalize: true,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "router")
	return r
}

// Start normalizes a URL without a fragment, listens for fragment changes
// and notifies subscribers of the current match. Later calls do nothing.
func (r *Router) Start() {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return
	}
	r.started = true
	r.mu.Unlock()

	if r.normalize {
		r.normalizeURL()
	}
	r.win.AddEventListener("hashchange", func(dom.Event) { r.notify() })
	r.notify()
}

// normalizeURL rewrites "<base>/about" to "<base>/#/about".
func (r *Router) normalizeURL() {
	loc := r.win.Location()
	if loc.Hash() != "" {
		return
	}

	path := "/"
	switch _, after, ok := strings.Cut(loc.Pathname(), r.base); {
	case r.base == "":
		path = NormalizePath(loc.Pathname())
	case ok:
		path = NormalizePath(after)
	}
	target := r.base + "/#" + path
	r.logger.Debug("normalizing url", "from", loc.Pathname(), "to", target)
	loc.Replace(target)
}

// Navigate moves to path, adding a leading "/" if missing. Navigating to
// the current path does nothing. Subscribers are notified when the
// resulting hashchange event is delivered, not before Navigate returns.
func (r *Router) Navigate(path string) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	loc := r.win.Location()
	if loc.Hash() == "#"+path {
		return
	}
	loc.SetHash(path)
}

// Replace moves to path without adding a history entry.
func (r *Router) Replace(path string) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	loc := r.win.Location()
	if loc.Hash() == "#"+path {
		return
	}
	loc.Replace("#" + path)
}

// Back goes back one history entry.
func (r *Router) Back() { r.win.History().Back() }

// Forward goes forward one history entry.
func (r *Router) Forward() { r.win.History().Forward() }

// Path returns the logical path: the fragment without its "#", or "/".
func (r *Router) Path() string {
	path := strings.TrimPrefix(r.win.Location().Hash(), "#")
	if path == "" {
		return "/"
	}
	return path
}

// Match matches the current path.
func (r *Router) Match() Match {
	return r.table.Match(r.Path())
}

// MatchPath matches path without touching the location.
func (r *Router) MatchPath(path string) Match {
	return r.table.Match(path)
}

// Subscribe registers fn for every fragment change, including those
// Navigate causes. Each call gets its own slot, so subscribing the same
// function twice calls it twice. The returned func removes it and is
// idempotent.
func (r *Router) Subscribe(fn func(Match)) (unsubscribe func()) {
	sub := &subscription{fn: fn}
	sub.active.Store(true)

	r.mu.Lock()
	r.subs = append(r.subs, sub)
	r.mu.Unlock()

	return func() {
		if !sub.active.Swap(false) {
			return
		}
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, x := range r.subs {
			if x == sub {
				r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
				break
			}
		}
	}
}

func (r *Router) notify() {
	m := r.Match()

	r.mu.Lock()
	subs := make([]*subscription, len(r.subs))
	copy(subs, r.subs)
	r.mu.Unlock()

	r.logger.Debug("route changed", "path", m.Path, "pattern", m.Pattern)
	for _, sub := range subs {
		if sub.active.Load() {
			sub.fn(m)
		}
	}
}

package events

import (
	"log/slog"
	"strconv"

	"github.com/vango-dev/dot/pkg/dom"
)

// AttrPrefix is prepended to the event type to form the marker attribute.
const AttrPrefix = "data-dot-on"

// AttrName returns the marker attribute name for eventType.
func AttrName(eventType string) string {
	return AttrPrefix + eventType
}

// Stats reports the dispatcher's table sizes.
type Stats struct {
	Handlers  int // registered handlers
	Roots     int // roots with at least one native listener
	Listeners int // native listeners across all roots
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger. Listener attachment is logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Dispatcher holds handler registrations and the native listeners attached
// to roots. It is owned by the event loop and is not safe for concurrent use.
type Dispatcher struct {
	nextID   uint64
	handlers map[string]Handler
	roots    []*rootEntry
	logger   *slog.Logger
}

type rootEntry struct {
	root  dom.Element
	types map[string]struct{}
}

// New returns an empty Dispatcher.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[string]Handler),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With("component", "events")
	return d
}

// Register stores h and returns its ID.
func (d *Dispatcher) Register(h Handler) string {
	d.nextID++
	id := strconv.FormatUint(d.nextID, 10)
	d.handlers[id] = h
	return id
}

// Lookup returns the handler registered under id.
func (d *Dispatcher) Lookup(id string) (Handler, bool) {
	h, ok := d.handlers[id]
	return h, ok && h != nil
}

// EnsureRootListener attaches the native listener for eventType to root
// unless one is already attached.
func (d *Dispatcher) EnsureRootListener(root dom.Element, eventType string) {
	entry := d.entry(root)
	if _, ok := entry.types[eventType]; ok {
		return
	}
	entry.types[eventType] = struct{}{}

	root.AddEventListener(eventType, func(native dom.Event) {
		d.dispatch(root, eventType, native)
	})
	d.logger.Debug("root listener attached", "event", eventType)
}

func (d *Dispatcher) entry(root dom.Element) *rootEntry {
	for _, e := range d.roots {
		if dom.Same(e.root, root) {
			return e
		}
	}
	e := &rootEntry{root: root, types: make(map[string]struct{})}
	d.roots = append(d.roots, e)
	return e
}

// Stats returns the current table sizes.
func (d *Dispatcher) Stats() Stats {
	s := Stats{Handlers: len(d.handlers), Roots: len(d.roots)}
	for _, e := range d.roots {
		s.Listeners += len(e.types)
	}
	return s
}

// dispatch walks from the native target up to root, invoking the handler
// found in each element's marker attribute.
func (d *Dispatcher) dispatch(root dom.Element, eventType string, native dom.Event) {
	attr := AttrName(eventType)
	e := NewEvent(native)

	for el := elementOf(native.Target()); el != nil; el = el.ParentElement() {
		if id, ok := el.GetAttribute(attr); ok && id != "" {
			if h, ok := d.Lookup(id); ok {
				h(e)
				if e.stopped {
					return
				}
			}
		}
		if dom.Same(el, root) {
			return
		}
	}
}

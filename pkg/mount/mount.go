// Package mount materializes node descriptors into a visual tree.
//
// Every Mount discards whatever the container holds and builds the subtree
// again from the descriptor. Handlers found in "on" attributes are
// registered with an events.Dispatcher and delegated to the container; no
// element gets a native listener of its own.
package mount

import (
	"log/slog"
	"sort"

	"github.com/vango-dev/dot/internal/errors"
	"github.com/vango-dev/dot/pkg/dom"
	"github.com/vango-dev/dot/pkg/events"
	"github.com/vango-dev/dot/pkg/vdom"
)

// ErrInvalidContainer is returned when the container is nil or not attached
// to a document. Match it with errors.Is.
var ErrInvalidContainer = errors.New("E001")

// Materializer turns a descriptor into the contents of container.
type Materializer interface {
	Materialize(node vdom.Node, container dom.Element) error
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaterializer replaces the default FullRemount strategy.
func WithMaterializer(m Materializer) Option {
	return func(e *Engine) {
		e.materializer = m
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Engine mounts descriptors into containers.
type Engine struct {
	materializer Materializer
	logger       *slog.Logger
	mounts       int
}

// New returns an Engine that creates nodes with doc and delegates handlers
// through d.
func New(doc dom.Document, d *events.Dispatcher, opts ...Option) *Engine {
	e := &Engine{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "mount")
	if e.materializer == nil {
		e.materializer = &FullRemount{Document: doc, Dispatcher: d}
	}
	return e
}

// Mount replaces the contents of container with node.
func (e *Engine) Mount(node vdom.Node, container dom.Element) error {
	if container == nil {
		return ErrInvalidContainer.WithDetail("container is nil")
	}
	if !container.IsConnected() {
		return ErrInvalidContainer.
			WithDetail("container is not attached to a document").
			WithSuggestion("Append the container to the document body before mounting")
	}
	if err := e.materializer.Materialize(node, container); err != nil {
		return err
	}
	e.mounts++
	e.logger.Debug("mounted", "count", e.mounts)
	return nil
}

// Mounts returns the number of successful mounts.
func (e *Engine) Mounts() int { return e.mounts }

// Mount is a one-off convenience for New(doc, d).Mount(node, container).
func Mount(doc dom.Document, d *events.Dispatcher, node vdom.Node, container dom.Element) error {
	return New(doc, d).Mount(node, container)
}

// FullRemount clears the container and builds the whole subtree.
type FullRemount struct {
	Document   dom.Document
	Dispatcher *events.Dispatcher
}

// Materialize implements Materializer.
func (f *FullRemount) Materialize(node vdom.Node, container dom.Element) error {
	container.ReplaceChildren()
	container.AppendChild(f.create(node, container))
	return nil
}

func (f *FullRemount) create(node vdom.Node, root dom.Element) dom.Node {
	if vdom.IsNil(node) {
		return f.Document.CreateTextNode("")
	}

	switch n := node.(type) {
	case vdom.Text:
		return f.Document.CreateTextNode(string(n))

	case *vdom.ComponentNode:
		return f.create(n.Render(), root)

	case *vdom.Element:
		el := f.Document.CreateElement(n.Tag())
		f.applyAttrs(el, n, root)
		for i := 0; i < n.NumChildren(); i++ {
			el.AppendChild(f.create(n.Child(i), root))
		}
		return el
	}

	return f.Document.CreateTextNode("")
}

// applyAttrs sets attributes in sorted key order, so "className" is applied
// after "class" when both are present.
func (f *FullRemount) applyAttrs(el dom.Element, n *vdom.Element, root dom.Element) {
	for _, key := range n.AttrKeys() {
		value, _ := n.Attr(key)

		switch key {
		case vdom.AttrStyle:
			if entries, ok := vdom.StyleEntries(value); ok {
				applyStyle(el.Style(), entries)
				continue
			}

		case vdom.AttrClass, vdom.AttrClassName:
			el.SetClassName(vdom.Stringify(value))
			continue

		case vdom.AttrOn:
			if handlers, ok := handlerMap(value); ok {
				f.delegate(el, handlers, root)
				continue
			}
		}

		switch v := value.(type) {
		case nil:
		case bool:
			if v {
				el.SetAttribute(key, "")
			} else {
				el.RemoveAttribute(key)
			}
		default:
			el.SetAttribute(key, vdom.Stringify(v))
		}
	}
}

func applyStyle(style dom.Style, entries map[string]string) {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		style.SetProperty(name, entries[name])
	}
}

func handlerMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case vdom.On:
		return m, true
	case map[string]any:
		return m, true
	}
	return nil, false
}

func (f *FullRemount) delegate(el dom.Element, handlers map[string]any, root dom.Element) {
	types := make([]string, 0, len(handlers))
	for t := range handlers {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, eventType := range types {
		h, ok := Handler(handlers[eventType])
		if !ok {
			continue
		}
		id := f.Dispatcher.Register(h)
		el.SetAttribute(events.AttrName(eventType), id)
		f.Dispatcher.EnsureRootListener(root, eventType)
	}
}

// Handler adapts the accepted handler forms to events.Handler. Values that
// are not functions, and nil functions, are rejected.
func Handler(v any) (events.Handler, bool) {
	switch h := v.(type) {
	case events.Handler:
		return h, h != nil
	case func(*events.Event):
		return h, h != nil
	case func():
		if h == nil {
			return nil, false
		}
		return func(*events.Event) { h() }, true
	}
	return nil, false
}

package demo

import (
	"log/slog"

	"github.com/vango-dev/dot/pkg/dom"
	"github.com/vango-dev/dot/pkg/events"
	"github.com/vango-dev/dot/pkg/mount"
	"github.com/vango-dev/dot/pkg/store"
	. "github.com/vango-dev/dot/pkg/vdom"
)

// Counter is the smallest Dot app: a count and a button that increments it.
type Counter struct {
	count  *store.Store[int]
	engine *mount.Engine
	root   dom.Element
	logger *slog.Logger
}

// NewCounter returns a counter that renders into root. Store options, such
// as a persist key, apply to the count.
func NewCounter(doc dom.Document, root dom.Element, opts ...store.Option) *Counter {
	return &Counter{
		count:  store.New(0, opts...),
		engine: mount.New(doc, events.New()),
		root:   root,
		logger: slog.Default().With("component", "counter"),
	}
}

// WithLogger sets the logger for render failures and returns c.
func (c *Counter) WithLogger(l *slog.Logger) *Counter {
	c.logger = l.With("component", "counter")
	return c
}

// Start renders the counter and re-renders on every change.
func (c *Counter) Start() error {
	if err := c.render(); err != nil {
		return err
	}
	c.count.Subscribe(func(int) {
		if err := c.render(); err != nil {
			c.logger.Error("render failed", "error", err)
		}
	})
	return nil
}

// Count returns the current count.
func (c *Counter) Count() int { return c.count.Get() }

// Increment adds one to the count.
func (c *Counter) Increment() {
	c.count.Update(func(n int) int { return n + 1 })
}

// Render returns the counter's tree.
func (c *Counter) Render() Node {
	return Div(Attrs{
		"class": "card",
		"style": Style{"border": "1px solid #ccc", "padding": "12px", "borderRadius": "8px"},
	},
		P(nil, "Count: ", c.count.Get()),
		Button(Attrs{"on": On{"click": func(e *events.Event) {
			e.PreventDefault()
			c.Increment()
		}}}, "+1"),
	)
}

func (c *Counter) render() error {
	return c.engine.Mount(c.Render(), c.root)
}

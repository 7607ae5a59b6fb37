package demo

import (
	"context"
	"encoding/json"

	"github.com/vango-dev/dot/pkg/dom"
)

// Refresh replaces the list with the peer's collection.
func (a *App) Refresh() {
	if a.api == nil {
		return
	}
	a.remote("load", func(ctx context.Context, out *[]Todo) error {
		return a.api.Get(ctx, "/todos", out)
	})
}

// remote runs call with the app's runner and applies its result on the
// window's event loop. The peer's collection is authoritative.
func (a *App) remote(op string, call func(ctx context.Context, out *[]Todo) error) {
	a.run(func() {
		var todos []Todo
		err := call(a.ctx, &todos)
		dom.Post(a.win, func() { a.apply(op, todos, err) })
	})
}

func (a *App) apply(op string, todos []Todo, err error) {
	if err != nil {
		a.logger.Warn("todo sync failed", "op", op, "error", err)
		a.store.Update(func(s State) State {
			s.Error = "Could not " + op + " todos: " + err.Error()
			return s
		})
		return
	}
	if todos == nil {
		todos = []Todo{}
	}
	a.store.Update(func(s State) State {
		s.Todos = todos
		s.Error = ""
		return s
	})
}

func (a *App) watch() {
	a.run(func() {
		err := a.api.Watch(a.ctx, "/todos/live", func(data []byte) {
			var todos []Todo
			if err := json.Unmarshal(data, &todos); err != nil {
				a.logger.Warn("live update decode failed", "error", err)
				return
			}
			dom.Post(a.win, func() { a.apply("watch", todos, nil) })
		})
		if err != nil {
			a.logger.Warn("live updates stopped", "error", err)
		}
	})
}

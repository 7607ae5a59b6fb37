package demo

import (
	"context"
	"log/slog"
	"strings"

	"github.com/vango-dev/dot/pkg/dom"
	"github.com/vango-dev/dot/pkg/events"
	"github.com/vango-dev/dot/pkg/httpclient"
	"github.com/vango-dev/dot/pkg/mount"
	"github.com/vango-dev/dot/pkg/router"
	"github.com/vango-dev/dot/pkg/storage"
	"github.com/vango-dev/dot/pkg/store"
	. "github.com/vango-dev/dot/pkg/vdom"
)

// PersistKey is the storage key of the to-do app's state.
const PersistKey = "dot-example-state"

// Todo is one item of the list. The JSON shape matches the REST peer.
type Todo struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// State is the to-do app's store state. Error is transient and never
// persisted.
type State struct {
	Todos []Todo `json:"todos"`
	Error string `json:"_error,omitempty"`
}

// Option configures an App.
type Option func(*App)

// WithBackend persists the app state under PersistKey.
func WithBackend(b storage.Backend) Option {
	return func(a *App) { a.backend = b }
}

// WithAPI syncs every change with the REST peer behind c.
func WithAPI(c *httpclient.Client) Option {
	return func(a *App) { a.api = c }
}

// WithLiveUpdates follows the peer's websocket feed after Start. It has no
// effect without WithAPI.
func WithLiveUpdates() Option {
	return func(a *App) { a.live = true }
}

// WithRunner sets how blocking work, such as requests, is started.
// Default: a new goroutine. Results are always applied on the window's
// event loop.
func WithRunner(run func(func())) Option {
	return func(a *App) { a.run = run }
}

// WithBasePath sets the path the app is served under.
func WithBasePath(base string) Option {
	return func(a *App) { a.basePath = base }
}

// WithLogger sets the app's logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithContext bounds the app's requests and live feed.
func WithContext(ctx context.Context) Option {
	return func(a *App) { a.ctx = ctx }
}

// App is the routed to-do application.
type App struct {
	win    dom.Window
	root   dom.Element
	engine *mount.Engine
	store  *store.Store[State]
	router *router.Router

	backend  storage.Backend
	api      *httpclient.Client
	live     bool
	run      func(func())
	basePath string
	logger   *slog.Logger
	ctx      context.Context

	// draft is the text typed into the add form. It lives outside the
	// store so typing does not re-render.
	draft string
}

// NewApp returns an app that renders into root.
func NewApp(win dom.Window, root dom.Element, opts ...Option) *App {
	a := &App{
		win:      win,
		root:     root,
		run:      func(fn func()) { go fn() },
		basePath: router.DefaultBasePath,
		logger:   slog.Default(),
		ctx:      context.Background(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With("component", "demo")

	d := events.New(events.WithLogger(a.logger))
	a.engine = mount.New(win.Document(), d, mount.WithLogger(a.logger))

	storeOpts := []store.Option{store.WithLogger(a.logger), store.WithContext(a.ctx)}
	if a.backend != nil {
		storeOpts = append(storeOpts, store.WithPersistKey(PersistKey), store.WithBackend(a.backend))
	}
	a.store = store.New(State{Todos: []Todo{}}, storeOpts...)
	a.router = router.New(win, a.Routes(), router.WithBasePath(a.basePath), router.WithLogger(a.logger))
	return a
}

// Routes returns the app's route table.
func (a *App) Routes() router.Table {
	return router.Table{
		{Pattern: "/", Component: func(router.Params) Node { return C(HomePage, nil) }},
		{Pattern: "/about", Component: func(router.Params) Node { return C(AboutPage, nil) }},
		{Pattern: "/todos", Component: func(router.Params) Node { return a.todosPage() }},
		{Pattern: "/todos/:id", Component: func(p router.Params) Node { return TodoDetailsPage(a.store.Get(), p) }},
		{Pattern: router.Wildcard, Component: func(router.Params) Node { return C(NotFoundPage, nil) }},
	}
}

// Start normalizes the URL, renders, and re-renders on every store or
// route change. With an API it loads the list from the peer.
func (a *App) Start() error {
	if err := a.Routes().Validate(); err != nil {
		return err
	}
	a.router.AttachLinkInterceptor(a.root)
	a.router.Start()
	if err := a.engine.Mount(a.Render(), a.root); err != nil {
		return err
	}
	a.store.Subscribe(func(State) { a.render() })
	a.router.Subscribe(func(router.Match) { a.render() })

	if a.api != nil {
		a.Refresh()
		if a.live {
			a.watch()
		}
	}
	return nil
}

// Store returns the app's state store.
func (a *App) Store() *store.Store[State] { return a.store }

// Router returns the app's router.
func (a *App) Router() *router.Router { return a.router }

// Draft returns the text typed into the add form.
func (a *App) Draft() string { return a.draft }

// Render returns the tree for the current route.
func (a *App) Render() Node {
	m := a.router.Match()
	page := m.Render()
	if !m.Found() {
		page = C(NotFoundPage, nil)
	}
	return Div(Attrs{"class": "app"},
		Header(Attrs{"class": "header"},
			H1(nil, "Dot Example"),
			Nav(Attrs{"class": "nav"},
				a.router.NavLink("/", "Home"),
				a.router.NavLink("/todos", "Todos"),
				a.router.NavLink("/about", "About"),
			),
		),
		Main(Attrs{"class": "page"}, page),
	)
}

func (a *App) render() {
	if err := a.engine.Mount(a.Render(), a.root); err != nil {
		a.logger.Error("render failed", "error", err)
	}
}

// Add prepends a to-do with the trimmed text. Blank text is ignored.
func (a *App) Add(text string) (Todo, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Todo{}, false
	}

	var added Todo
	a.store.Update(func(s State) State {
		added = Todo{ID: nextID(s.Todos), Text: text}
		s.Todos = append([]Todo{added}, s.Todos...)
		return s
	})
	if a.api != nil {
		a.remote("create", func(ctx context.Context, out *[]Todo) error {
			return a.api.Post(ctx, "/todos", added, out)
		})
	}
	return added, true
}

// Toggle flips the completed flag of the to-do with id.
func (a *App) Toggle(id int) {
	var completed, found bool
	a.store.Update(func(s State) State {
		completed, found = false, false
		todos := make([]Todo, len(s.Todos))
		for i, t := range s.Todos {
			if t.ID == id {
				t.Completed = !t.Completed
				completed, found = t.Completed, true
			}
			todos[i] = t
		}
		s.Todos = todos
		return s
	})
	if a.api != nil && found {
		a.remote("update", func(ctx context.Context, out *[]Todo) error {
			return a.api.Put(ctx, todoPath(id), map[string]bool{"completed": completed}, out)
		})
	}
}

// Remove deletes the to-do with id.
func (a *App) Remove(id int) {
	found := false
	a.store.Update(func(s State) State {
		found = false
		todos := make([]Todo, 0, len(s.Todos))
		for _, t := range s.Todos {
			if t.ID == id {
				found = true
				continue
			}
			todos = append(todos, t)
		}
		s.Todos = todos
		return s
	})
	if a.api != nil && found {
		a.remote("delete", func(ctx context.Context, out *[]Todo) error {
			return a.api.Delete(ctx, todoPath(id), out)
		})
	}
}

func nextID(todos []Todo) int {
	id := 0
	for _, t := range todos {
		id = max(id, t.ID)
	}
	return id + 1
}

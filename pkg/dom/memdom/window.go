package memdom

import (
	"net/url"
	"strings"
	"sync"

	"github.com/vango-dev/dot/pkg/dom"
)

// Window is an in-memory browsing context: a document, a location with a
// hash history, and a task queue.
//
// Like a browser, a hash change does not notify listeners synchronously. The
// hashchange event is queued and delivered by Flush. Post is safe for
// concurrent use; everything else must run on the goroutine that calls Flush.
type Window struct {
	doc       *Document
	loc       *Location
	hist      *History
	listeners map[string][]dom.Listener

	mu    sync.Mutex
	tasks []func()
}

var _ dom.Window = (*Window)(nil)

// NewWindow returns a window whose location is rawURL. An unparsable URL
// falls back to "http://localhost/".
func NewWindow(rawURL string) *Window {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" {
		u, _ = url.Parse("http://localhost/")
	}
	if u.Path == "" {
		u.Path = "/"
	}
	rawFragment(u)
	w := &Window{doc: NewDocument()}
	w.loc = &Location{win: w, url: u}
	w.hist = &History{win: w, entries: []*url.URL{cloneURL(u)}}
	return w
}

// Document implements dom.Window.
func (w *Window) Document() dom.Document { return w.doc }

// Doc is Document returning the concrete type.
func (w *Window) Doc() *Document { return w.doc }

// Location implements dom.Window.
func (w *Window) Location() dom.Location { return w.loc }

// Loc is Location returning the concrete type.
func (w *Window) Loc() *Location { return w.loc }

// History implements dom.Window.
func (w *Window) History() dom.History { return w.hist }

// Hist is History returning the concrete type.
func (w *Window) Hist() *History { return w.hist }

// AddEventListener implements dom.EventTarget.
func (w *Window) AddEventListener(eventType string, l dom.Listener) {
	if w.listeners == nil {
		w.listeners = make(map[string][]dom.Listener)
	}
	w.listeners[eventType] = append(w.listeners[eventType], l)
}

// ListenerCount returns the number of window listeners for eventType.
func (w *Window) ListenerCount(eventType string) int {
	return len(w.listeners[eventType])
}

// Post queues fn to run on the next Flush.
func (w *Window) Post(fn func()) {
	w.mu.Lock()
	w.tasks = append(w.tasks, fn)
	w.mu.Unlock()
}

// Pending returns the number of queued tasks.
func (w *Window) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.tasks)
}

// Flush runs queued tasks, including those queued while flushing, until the
// queue is empty. It returns the number of tasks run.
func (w *Window) Flush() int {
	n := 0
	for {
		w.mu.Lock()
		if len(w.tasks) == 0 {
			w.mu.Unlock()
			return n
		}
		task := w.tasks[0]
		w.tasks = w.tasks[1:]
		w.mu.Unlock()

		task()
		n++
	}
}

// Click dispatches a click on el and then performs the default action: a
// click that lands inside an anchor whose href is a fragment navigates to
// that fragment unless a listener prevented it.
func (w *Window) Click(el dom.Node) bool {
	ok := Click(el)
	if !ok {
		return false
	}
	var start *Element
	switch t := el.(type) {
	case *Element:
		start = t
	case *TextNode:
		start = t.parent
	}
	if start == nil {
		return true
	}
	if a, _ := start.Closest("a").(*Element); a != nil {
		if href, _ := a.GetAttribute("href"); strings.HasPrefix(href, "#") {
			w.loc.SetHash(href)
		}
	}
	return true
}

func (w *Window) queueHashChange() {
	w.Post(func() {
		e := NewEvent("hashchange", false)
		listeners := make([]dom.Listener, len(w.listeners["hashchange"]))
		copy(listeners, w.listeners["hashchange"])
		for _, l := range listeners {
			l(e)
		}
	})
}

// Location is the window's URL.
type Location struct {
	win     *Window
	url     *url.URL
	reloads int
}

var _ dom.Location = (*Location)(nil)

// Hash implements dom.Location.
func (l *Location) Hash() string {
	if l.url.Fragment == "" {
		return ""
	}
	return "#" + l.url.Fragment
}

// SetHash implements dom.Location. Setting the current hash again does
// nothing; otherwise a history entry is pushed and hashchange is queued.
func (l *Location) SetHash(hash string) {
	frag := strings.TrimPrefix(hash, "#")
	if frag == l.url.Fragment {
		return
	}
	next := cloneURL(l.url)
	next.Fragment = frag
	next.RawFragment = ""
	l.url = next
	l.win.hist.push(cloneURL(next))
	l.win.queueHashChange()
}

// Pathname implements dom.Location.
func (l *Location) Pathname() string { return l.url.Path }

// Href returns the full URL.
func (l *Location) Href() string {
	u := cloneURL(l.url)
	u.Fragment = ""
	if l.url.Fragment == "" {
		return u.String()
	}
	return u.String() + "#" + l.url.Fragment
}

// Reloads returns how many times Replace loaded a different document.
func (l *Location) Reloads() int { return l.reloads }

// Replace implements dom.Location. url is resolved against the current
// location and replaces the current history entry. When only the fragment
// differs hashchange is queued; when the path differs the change counts as a
// document load and no event fires.
func (l *Location) Replace(rawURL string) {
	ref, err := url.Parse(rawURL)
	if err != nil {
		return
	}
	next := l.url.ResolveReference(ref)
	if next.Path == "" {
		next.Path = "/"
	}
	rawFragment(next)
	prev := l.url
	l.url = next
	l.win.hist.replace(cloneURL(next))

	switch {
	case next.Path != prev.Path || next.RawQuery != prev.RawQuery:
		l.reloads++
	case next.Fragment != prev.Fragment:
		l.win.queueHashChange()
	}
}

// History is the window's session history.
type History struct {
	win     *Window
	entries []*url.URL
	index   int
}

var _ dom.History = (*History)(nil)

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Index returns the position of the current entry.
func (h *History) Index() int { return h.index }

// Back implements dom.History.
func (h *History) Back() { h.traverse(-1) }

// Forward implements dom.History.
func (h *History) Forward() { h.traverse(1) }

func (h *History) traverse(delta int) {
	i := h.index + delta
	if i < 0 || i >= len(h.entries) {
		return
	}
	h.index = i
	prev := h.win.loc.url
	h.win.loc.url = cloneURL(h.entries[i])
	if h.win.loc.url.Fragment != prev.Fragment {
		h.win.queueHashChange()
	}
}

func (h *History) push(u *url.URL) {
	h.entries = append(h.entries[:h.index+1], u)
	h.index = len(h.entries) - 1
}

func (h *History) replace(u *url.URL) {
	h.entries[h.index] = u
}

// rawFragment keeps the fragment as written, percent escapes included, the
// way location.hash reports it.
func rawFragment(u *url.URL) {
	u.Fragment = u.EscapedFragment()
	u.RawFragment = ""
}

func cloneURL(u *url.URL) *url.URL {
	c := *u
	if u.User != nil {
		user := *u.User
		c.User = &user
	}
	return &c
}

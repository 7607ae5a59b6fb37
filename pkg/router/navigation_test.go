package router

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/dot/pkg/dom"
	"github.com/vango-dev/dot/pkg/dom/memdom"
)

type recorder struct {
	paths []string
}

func (r *recorder) record(m Match) { r.paths = append(r.paths, m.Path) }

func TestStartNormalizesBareURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		base     string
		wantHref string
		wantPath string
	}{
		{"route under base", "http://localhost/example/about", DefaultBasePath, "http://localhost/example/#/about", "/about"},
		{"base only", "http://localhost/example", DefaultBasePath, "http://localhost/example/#/", "/"},
		{"outside base", "http://localhost/todos", DefaultBasePath, "http://localhost/example/#/", "/"},
		{"custom base", "http://localhost/app/todos/3", "/app/", "http://localhost/app/#/todos/3", "/todos/3"},
		{"empty base", "http://localhost/todos", "", "http://localhost/#/todos", "/todos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			win := memdom.NewWindow(tt.url)
			r := New(win, testTable(), WithBasePath(tt.base))
			rec := &recorder{}
			r.Subscribe(rec.record)
			r.Start()

			if got := win.Loc().Href(); got != tt.wantHref {
				t.Errorf("Href = %q, want %q", got, tt.wantHref)
			}
			if r.Path() != tt.wantPath {
				t.Errorf("Path() = %q, want %q", r.Path(), tt.wantPath)
			}
			if len(rec.paths) == 0 || rec.paths[0] != tt.wantPath {
				t.Errorf("initial notification = %v, want %q first", rec.paths, tt.wantPath)
			}
		})
	}
}

func TestStartKeepsExistingFragment(t *testing.T) {
	win := memdom.NewWindow("http://localhost/somewhere/#/todos/2")
	r := New(win, testTable())
	r.Start()

	if got := win.Loc().Href(); got != "http://localhost/somewhere/#/todos/2" {
		t.Errorf("Href = %q; a URL with a fragment must not be rewritten", got)
	}
	if win.Loc().Reloads() != 0 {
		t.Errorf("Reloads = %d, want 0", win.Loc().Reloads())
	}
	if m := r.Match(); m.Params["id"] != "2" {
		t.Errorf("Match() = %+v", m)
	}
}

func TestStartOnce(t *testing.T) {
	win := memdom.NewWindow("http://localhost/example/about")
	r := New(win, testTable())
	rec := &recorder{}
	r.Subscribe(rec.record)

	r.Start()
	r.Start()

	if n := win.ListenerCount("hashchange"); n != 1 {
		t.Errorf("hashchange listeners = %d, want 1", n)
	}
	if win.Loc().Reloads() != 1 {
		t.Errorf("Reloads = %d; normalization must happen once", win.Loc().Reloads())
	}
	if len(rec.paths) != 1 {
		t.Errorf("notifications = %v, want exactly one", rec.paths)
	}
}

func TestWithoutNormalize(t *testing.T) {
	win := memdom.NewWindow("http://localhost/example/about")
	r := New(win, testTable(), WithoutNormalize())
	r.Start()
	if win.Loc().Hash() != "" || r.Path() != "/" {
		t.Errorf("URL was normalized: %q", win.Loc().Href())
	}
}

func TestNavigateIsAsync(t *testing.T) {
	win := memdom.NewWindow("http://localhost/example/#/")
	r := New(win, testTable())
	rec := &recorder{}
	r.Start()
	r.Subscribe(rec.record)

	r.Navigate("todos")
	if len(rec.paths) != 0 {
		t.Fatalf("subscriber ran before the hashchange was delivered: %v", rec.paths)
	}
	if win.Loc().Hash() != "#/todos" {
		t.Errorf("Hash() = %q, want #/todos", win.Loc().Hash())
	}

	win.Flush()
	if diff := cmp.Diff([]string{"/todos"}, rec.paths); diff != "" {
		t.Errorf("notifications (-want +got):\n%s", diff)
	}
}

func TestNavigateToCurrentPathIsNoop(t *testing.T) {
	win := memdom.NewWindow("http://localhost/example/#/about")
	r := New(win, testTable())
	r.Start()

	before := win.Hist().Len()
	r.Navigate("/about")
	r.Navigate("about")

	if win.Hist().Len() != before {
		t.Errorf("history grew from %d to %d", before, win.Hist().Len())
	}
	if win.Pending() != 0 {
		t.Errorf("pending tasks = %d, want 0", win.Pending())
	}
}

func TestBackForward(t *testing.T) {
	win := memdom.NewWindow("http://localhost/example/#/")
	r := New(win, testTable())
	rec := &recorder{}
	r.Start()
	r.Subscribe(rec.record)

	r.Navigate("/about")
	r.Navigate("/todos")
	win.Flush()

	r.Back()
	win.Flush()
	if r.Path() != "/about" {
		t.Errorf("after Back Path() = %q, want /about", r.Path())
	}
	r.Forward()
	win.Flush()
	if r.Path() != "/todos" {
		t.Errorf("after Forward Path() = %q, want /todos", r.Path())
	}

	want := []string{"/about", "/todos", "/about", "/todos"}
	if diff := cmp.Diff(want, rec.paths); diff != "" {
		t.Errorf("notifications (-want +got):\n%s", diff)
	}
}

func TestReplace(t *testing.T) {
	win := memdom.NewWindow("http://localhost/example/#/")
	r := New(win, testTable())
	rec := &recorder{}
	r.Start()
	r.Subscribe(rec.record)

	before := win.Hist().Len()
	r.Replace("todos/4")
	win.Flush()

	if win.Hist().Len() != before {
		t.Errorf("Replace grew history from %d to %d", before, win.Hist().Len())
	}
	if diff := cmp.Diff([]string{"/todos/4"}, rec.paths); diff != "" {
		t.Errorf("notifications (-want +got):\n%s", diff)
	}
}

func TestUnsubscribe(t *testing.T) {
	win := memdom.NewWindow("http://localhost/example/#/")
	r := New(win, testTable())
	rec := &recorder{}
	unsub := r.Subscribe(rec.record)
	r.Start()

	unsub()
	unsub()
	r.Navigate("/about")
	win.Flush()

	if len(rec.paths) != 1 {
		t.Errorf("notifications after unsubscribe: %v", rec.paths)
	}
}

func TestLinkInterceptor(t *testing.T) {
	win := memdom.NewWindow("http://localhost/example/#/")
	doc := win.Doc()
	body := doc.BodyElement()

	root := doc.NewElement("div")
	body.AppendChild(root)
	link := doc.NewElement("a")
	link.SetAttribute("href", "#/todos/3")
	label := doc.NewElement("span")
	label.AppendChild(doc.CreateTextNode("open"))
	link.AppendChild(label)
	root.AppendChild(link)

	outerClicks := 0
	body.AddEventListener("click", func(e dom.Event) { outerClicks++ })

	r := New(win, testTable())
	rec := &recorder{}
	r.Subscribe(rec.record)
	r.Start()
	r.AttachLinkInterceptor(root)
	r.AttachLinkInterceptor(root)

	if n := root.ListenerCount("click"); n != 1 {
		t.Fatalf("click listeners on root = %d, want 1", n)
	}

	if win.Click(label.ChildNodes()[0]) {
		t.Error("native default action was not prevented")
	}
	if outerClicks != 0 {
		t.Error("click propagated past the root")
	}
	win.Flush()

	if diff := cmp.Diff([]string{"/", "/todos/3"}, rec.paths); diff != "" {
		t.Errorf("notifications (-want +got):\n%s", diff)
	}
	if r.Match().Params["id"] != "3" {
		t.Errorf("Match() = %+v", r.Match())
	}
}

func TestLinkInterceptorIgnoresOtherLinks(t *testing.T) {
	tests := []struct {
		name     string
		href     string
		wantHash string
	}{
		{"in-page anchor", "#top", "#top"},
		{"external", "https://example.com/", "#/"},
		{"no href", "", "#/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			win := memdom.NewWindow("http://localhost/example/#/")
			doc := win.Doc()
			root := doc.NewElement("div")
			doc.BodyElement().AppendChild(root)
			a := doc.NewElement("a")
			if tt.href != "" {
				a.SetAttribute("href", tt.href)
			}
			root.AppendChild(a)

			outer := 0
			doc.BodyElement().AddEventListener("click", func(dom.Event) { outer++ })

			r := New(win, testTable())
			r.Start()
			r.AttachLinkInterceptor(root)

			if !win.Click(a) {
				t.Error("default action prevented for a link the router does not own")
			}
			if outer != 1 {
				t.Errorf("outer listener ran %d times, want 1", outer)
			}
			if got := win.Loc().Hash(); got != tt.wantHash {
				t.Errorf("Hash() = %q, want %q", got, tt.wantHash)
			}
		})
	}
}

func TestClickOutsideAnchor(t *testing.T) {
	win := memdom.NewWindow("http://localhost/example/#/")
	doc := win.Doc()
	root := doc.NewElement("div")
	doc.BodyElement().AppendChild(root)
	btn := doc.NewElement("button")
	root.AppendChild(btn)

	r := New(win, testTable())
	r.Start()
	r.AttachLinkInterceptor(root)

	if !win.Click(btn) || win.Pending() != 0 {
		t.Error("a click outside any anchor was intercepted")
	}
}

func TestLinks(t *testing.T) {
	if Href("about") != "#/about" || Href("/about") != "#/about" {
		t.Errorf("Href = %q, %q", Href("about"), Href("/about"))
	}

	el := Link("/todos", "Todos")
	if href, _ := el.Attr("href"); href != "#/todos" {
		t.Errorf("Link href = %v", href)
	}

	win := memdom.NewWindow("http://localhost/example/#/todos/")
	r := New(win, testTable())
	if class, _ := r.NavLink("/todos", "Todos").Attr("class"); class != "active" {
		t.Errorf("NavLink for the current path has class %v", class)
	}
	if _, ok := r.NavLink("/about", "About").Attr("class"); ok {
		t.Error("NavLink for another path is active")
	}
}

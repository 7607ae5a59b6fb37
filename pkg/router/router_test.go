package router

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	doterrors "github.com/vango-dev/dot/internal/errors"
	"github.com/vango-dev/dot/pkg/vdom"
)

func page(name string) Component {
	return func(p Params) vdom.Node { return vdom.Text(name) }
}

func testTable() Table {
	return Table{
		{Pattern: "/", Component: page("home")},
		{Pattern: "/about", Component: page("about")},
		{Pattern: "/todos", Component: page("todos")},
		{Pattern: "/todos/:id", Component: page("todo")},
		{Pattern: "/todos/new", Component: page("new")},
		{Pattern: "*", Component: page("notfound")},
		{Pattern: "/users/:user/posts/:post", Component: page("post")},
	}
}

func rendered(m Match) string {
	if n := m.Render(); n != nil {
		return string(n.(vdom.Text))
	}
	return ""
}

func TestTableMatch(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		page    string
		pattern string
		params  Params
	}{
		{"root", "/", "home", "/", Params{}},
		{"empty", "", "home", "/", Params{}},
		{"static", "/about", "about", "/about", Params{}},
		{"trailing slash", "/about///", "about", "/about", Params{}},
		{"missing leading slash", "about", "about", "/about", Params{}},
		{"param", "/todos/7", "todo", "/todos/:id", Params{"id": "7"}},
		{"first match wins", "/todos/new", "todo", "/todos/:id", Params{"id": "new"}},
		{"decoded param", "/todos/a%20b", "todo", "/todos/:id", Params{"id": "a b"}},
		{"malformed escape kept", "/todos/%zz", "todo", "/todos/:id", Params{"id": "%zz"}},
		{"empty segments dropped", "//todos//3", "todo", "/todos/:id", Params{"id": "3"}},
		{"patterns after wildcard", "/users/ann/posts/2", "post", "/users/:user/posts/:post", Params{"user": "ann", "post": "2"}},
		{"length mismatch", "/todos/7/edit", "notfound", "*", Params{}},
		{"unknown", "/nope", "notfound", "*", Params{}},
		{"case sensitive", "/About", "notfound", "*", Params{}},
	}

	table := testTable()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := table.Match(tt.path)
			if got := rendered(m); got != tt.page {
				t.Errorf("Match(%q) rendered %q, want %q", tt.path, got, tt.page)
			}
			if m.Pattern != tt.pattern {
				t.Errorf("Pattern = %q, want %q", m.Pattern, tt.pattern)
			}
			if diff := cmp.Diff(tt.params, m.Params); diff != "" {
				t.Errorf("Params mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMatchWithoutWildcard(t *testing.T) {
	m := Table{{Pattern: "/", Component: page("home")}}.Match("/missing")
	if m.Found() || m.Component != nil {
		t.Error("expected an empty match")
	}
	if m.Render() != nil {
		t.Error("Render() of an empty match should be nil")
	}
	if m.Path != "/missing" || len(m.Params) != 0 {
		t.Errorf("empty match = %+v", m)
	}
}

func TestMatchIsPure(t *testing.T) {
	table := testTable()
	want := table.Match("/todos/9")
	for i := 0; i < 3; i++ {
		got := table.Match("/todos/9")
		if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(Match{}, "Component")); diff != "" {
			t.Fatalf("Match changed between calls:\n%s", diff)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		table Table
		code  string
	}{
		{"valid", testTable(), ""},
		{"empty pattern", Table{{Pattern: " "}}, "E010"},
		{"unnamed param", Table{{Pattern: "/a/:"}}, "E010"},
		{"duplicate param", Table{{Pattern: "/a/:id/b/:id"}}, "E011"},
		{"shadowing allowed", Table{{Pattern: "/:x"}, {Pattern: "/about"}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if got := doterrors.Code(err); got != tt.code {
				t.Errorf("Validate() = %v, want code %q", err, tt.code)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"":        "/",
		"/":       "/",
		"///":     "/",
		"/a/":     "/a",
		"a/b":     "/a/b",
		"/a/b//":  "/a/b",
		"/a//b/":  "/a//b",
		"/todos":  "/todos",
		"todos/1": "/todos/1",
	}
	for in, want := range tests {
		if got := NormalizePath(in); got != want {
			t.Errorf("NormalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParamsDecode(t *testing.T) {
	var target struct {
		ID     int     `param:"id"`
		Slug   string  `param:"slug"`
		Page   uint8   `param:"page"`
		Score  float64 `param:"score"`
		Draft  bool    `param:"draft"`
		Absent string  `param:"absent"`
		Plain  string
	}
	target.Absent = "keep"

	p := Params{"id": "42", "slug": "hello world", "page": "3", "score": "2.5", "draft": "true"}
	if err := p.Decode(&target); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if target.ID != 42 || target.Slug != "hello world" || target.Page != 3 || target.Score != 2.5 || !target.Draft {
		t.Errorf("Decode filled %+v", target)
	}
	if target.Absent != "keep" || target.Plain != "" {
		t.Errorf("Decode touched fields without params: %+v", target)
	}
}

func TestParamsDecodeErrors(t *testing.T) {
	var s struct {
		ID int `param:"id"`
	}
	var small struct {
		N int8 `param:"n"`
	}
	var unsupported struct {
		Tags []string `param:"tags"`
	}

	tests := []struct {
		name   string
		params Params
		target any
	}{
		{"not a pointer", Params{}, s},
		{"pointer to non-struct", Params{}, new(int)},
		{"bad int", Params{"id": "seven"}, &s},
		{"overflow", Params{"n": "300"}, &small},
		{"unsupported kind", Params{"tags": "a"}, &unsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Decode(tt.target)
			if !errors.Is(err, doterrors.New("E012")) {
				t.Errorf("Decode() = %v, want E012", err)
			}
		})
	}

	if err := (Params{}).Decode(nil); err != nil {
		t.Errorf("Decode(nil) = %v", err)
	}
}

func TestParamsInt(t *testing.T) {
	p := Params{"id": "12", "bad": "x"}
	if n, err := p.Int("id"); err != nil || n != 12 {
		t.Errorf("Int(id) = %d, %v", n, err)
	}
	if _, err := p.Int("bad"); err == nil {
		t.Error("Int(bad) succeeded")
	}
	if _, err := p.Int("missing"); err == nil {
		t.Error("Int(missing) succeeded")
	}
	if p.Get("missing") != "" {
		t.Error("Get(missing) should be empty")
	}
}

package vdom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindElement, "Element"},
		{KindComponent, "Component"},
		{KindText, "Text"},
		{Kind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("Kind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHCopiesAttrs(t *testing.T) {
	attrs := Attrs{"id": "main"}
	el := H("div", attrs)
	attrs["id"] = "changed"
	attrs["title"] = "new"

	if v, _ := el.Attr("id"); v != "main" {
		t.Errorf("Attr(id) = %v, want main", v)
	}
	if _, ok := el.Attr("title"); ok {
		t.Error("descriptor picked up an attribute added after build")
	}

	got := el.Attrs()
	got["id"] = "mutated"
	if v, _ := el.Attr("id"); v != "main" {
		t.Errorf("Attrs() returned the internal map; Attr(id) = %v", v)
	}
}

func TestHNilAttrs(t *testing.T) {
	el := H("span", nil)
	if el.Attrs() == nil {
		t.Fatal("Attrs() = nil, want empty map")
	}
	if len(el.AttrKeys()) != 0 {
		t.Errorf("AttrKeys() = %v, want empty", el.AttrKeys())
	}
}

func TestChildrenCopy(t *testing.T) {
	el := Div(nil, "a", "b")
	kids := el.Children()
	kids[0] = Text("z")
	if el.Child(0) != Text("a") {
		t.Errorf("Child(0) = %v, want a", el.Child(0))
	}
}

func TestBuild(t *testing.T) {
	comp := func(a Attrs) Node { return P(nil, a["label"]) }

	tests := []struct {
		name string
		typ  any
		want Kind
	}{
		{"tag", "div", KindElement},
		{"component", Component(comp), KindComponent},
		{"bare func", comp, KindComponent},
		{"unknown type", 42, KindElement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Build(tt.typ, Attrs{"label": "x"})
			if n.Kind() != tt.want {
				t.Errorf("Kind() = %v, want %v", n.Kind(), tt.want)
			}
		})
	}

	if el := Build(42, nil).(*Element); el.Tag() != "42" {
		t.Errorf("Tag() = %q, want 42", el.Tag())
	}
}

func TestComponentRender(t *testing.T) {
	var got Attrs
	c := C(func(a Attrs) Node {
		got = a
		return Text("ok")
	}, Attrs{"n": 1}, "ignored child")

	if n := c.Render(); n != Text("ok") {
		t.Errorf("Render() = %v, want ok", n)
	}
	if got["n"] != 1 {
		t.Errorf("component received %v", got)
	}
	if len(c.Children()) != 1 {
		t.Errorf("Children() len = %d, want 1", len(c.Children()))
	}

	var empty *ComponentNode = C(nil, nil)
	if empty.Render() != nil {
		t.Error("Render() of nil component should be nil")
	}
}

func TestFlatten(t *testing.T) {
	var nilEl *Element

	got := Flatten(
		"a",
		nil,
		true,
		false,
		nilEl,
		[]any{"b", []any{3, []Node{Text("c"), nil}}},
		[]string{"d", "e"},
		2.5,
		[]int{7, 8},
	)
	want := []Node{
		Text("a"), Text("b"), Text("3"), Text("c"),
		Text("d"), Text("e"), Text("2.5"), Text("7"), Text("8"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Flatten() mismatch (-want +got):\n%s", diff)
	}
}

func TestFlattenIdempotent(t *testing.T) {
	inputs := [][]any{
		{},
		{"x"},
		{nil, false, true},
		{[]any{[]any{[]any{"deep"}}}, Div(nil), 1, 2.0},
		{P(nil, "Count: ", 3), []Node{Span(nil), nil}, "tail"},
	}

	for i, in := range inputs {
		once := Flatten(in...)
		args := make([]any, len(once))
		for j, n := range once {
			args[j] = n
		}
		twice := Flatten(args...)
		if len(once) != len(twice) {
			t.Fatalf("input %d: len %d then %d", i, len(once), len(twice))
		}
		for j := range once {
			if once[j] != twice[j] {
				t.Errorf("input %d: element %d changed: %v -> %v", i, j, once[j], twice[j])
			}
		}
	}
}

func TestIsNil(t *testing.T) {
	var el *Element
	var comp *ComponentNode
	if !IsNil(nil) || !IsNil(el) || !IsNil(comp) {
		t.Error("IsNil should report nil and typed nil nodes")
	}
	if IsNil(Text("")) || IsNil(Div(nil)) {
		t.Error("IsNil reported a real node")
	}
}

package memdom

import (
	"fmt"
	"strings"

	"github.com/vango-dev/dot/pkg/dom"
)

type attr struct {
	name  string
	value string
}

// Element is an in-memory element.
type Element struct {
	doc       *Document
	tag       string
	attrs     []attr
	style     *Style
	parent    *Element
	children  []dom.Node
	listeners map[string][]dom.Listener
	value     string
}

var _ dom.Element = (*Element)(nil)

// TextNode is an in-memory text node.
type TextNode struct {
	parent *Element
	data   string
}

var _ dom.Node = (*TextNode)(nil)

// ParentElement implements dom.Node.
func (t *TextNode) ParentElement() dom.Element {
	if t.parent == nil {
		return nil
	}
	return t.parent
}

// TextContent implements dom.Node.
func (t *TextNode) TextContent() string { return t.data }

// Data returns the node's text.
func (t *TextNode) Data() string { return t.data }

// ParentElement implements dom.Node.
func (e *Element) ParentElement() dom.Element {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// TextContent implements dom.Node.
func (e *Element) TextContent() string {
	var b strings.Builder
	e.writeText(&b)
	return b.String()
}

func (e *Element) writeText(b *strings.Builder) {
	for _, c := range e.children {
		switch n := c.(type) {
		case *TextNode:
			b.WriteString(n.data)
		case *Element:
			n.writeText(b)
		}
	}
}

// TagName implements dom.Element. Tags are stored lower-case.
func (e *Element) TagName() string { return e.tag }

// SetAttribute implements dom.Element.
func (e *Element) SetAttribute(name, value string) {
	if name == "style" {
		e.Style().(*Style).parse(value)
		return
	}
	e.setRawAttr(name, value)
}

func (e *Element) setRawAttr(name, value string) {
	for i := range e.attrs {
		if e.attrs[i].name == name {
			e.attrs[i].value = value
			return
		}
	}
	e.attrs = append(e.attrs, attr{name: name, value: value})
}

// GetAttribute implements dom.Element.
func (e *Element) GetAttribute(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.name == name {
			return a.value, true
		}
	}
	return "", false
}

// RemoveAttribute implements dom.Element.
func (e *Element) RemoveAttribute(name string) {
	if name == "style" && e.style != nil {
		e.style.props = nil
	}
	for i, a := range e.attrs {
		if a.name == name {
			e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
			return
		}
	}
}

// HasAttribute implements dom.Element.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.GetAttribute(name)
	return ok
}

// AttributeNames returns attribute names in insertion order.
func (e *Element) AttributeNames() []string {
	names := make([]string, len(e.attrs))
	for i, a := range e.attrs {
		names[i] = a.name
	}
	return names
}

// SetClassName implements dom.Element.
func (e *Element) SetClassName(name string) { e.setRawAttr("class", name) }

// ClassName implements dom.Element.
func (e *Element) ClassName() string {
	v, _ := e.GetAttribute("class")
	return v
}

// Style implements dom.Element.
func (e *Element) Style() dom.Style {
	if e.style == nil {
		e.style = &Style{owner: e}
	}
	return e.style
}

// ID returns the id attribute.
func (e *Element) ID() string {
	v, _ := e.GetAttribute("id")
	return v
}

// Value returns the element's form value.
func (e *Element) Value() string { return e.value }

// FormValue implements the form value lookup of dom.FormValue.
func (e *Element) FormValue() string { return e.value }

// SetValue sets the element's form value without dispatching events.
func (e *Element) SetValue(v string) { e.value = v }

// AppendChild implements dom.Element. A child that already has a parent is
// moved.
func (e *Element) AppendChild(child dom.Node) {
	switch c := child.(type) {
	case *Element:
		for p := e; p != nil; p = p.parent {
			if p == c {
				panic("memdom: AppendChild would create a cycle")
			}
		}
		c.detach()
		c.parent = e
	case *TextNode:
		c.detach()
		c.parent = e
	default:
		panic(fmt.Sprintf("memdom: cannot append foreign node %T", child))
	}
	e.children = append(e.children, child)
}

// ReplaceChildren implements dom.Element.
func (e *Element) ReplaceChildren() {
	for _, c := range e.children {
		switch n := c.(type) {
		case *Element:
			n.parent = nil
		case *TextNode:
			n.parent = nil
		}
	}
	e.children = nil
}

// ChildNodes implements dom.Element.
func (e *Element) ChildNodes() []dom.Node {
	out := make([]dom.Node, len(e.children))
	copy(out, e.children)
	return out
}

// Children returns only the element children.
func (e *Element) Children() []*Element {
	var out []*Element
	for _, c := range e.children {
		if el, ok := c.(*Element); ok {
			out = append(out, el)
		}
	}
	return out
}

// Closest implements dom.Element.
func (e *Element) Closest(tag string) dom.Element {
	tag = strings.ToLower(tag)
	for p := e; p != nil; p = p.parent {
		if p.tag == tag {
			return p
		}
	}
	return nil
}

// IsConnected implements dom.Element.
func (e *Element) IsConnected() bool {
	if e == nil || e.doc == nil {
		return false
	}
	root := e
	for root.parent != nil {
		root = root.parent
	}
	return root == e.doc.root
}

// AddEventListener implements dom.EventTarget.
func (e *Element) AddEventListener(eventType string, l dom.Listener) {
	if e.listeners == nil {
		e.listeners = make(map[string][]dom.Listener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], l)
}

// ListenerCount returns the number of native listeners for eventType.
func (e *Element) ListenerCount(eventType string) int {
	return len(e.listeners[eventType])
}

// QuerySelectorAll returns descendants matching a simple selector: a tag
// name, "#id", ".class" or "[attr]".
func (e *Element) QuerySelectorAll(selector string) []*Element {
	match := compileSelector(selector)
	var out []*Element
	e.walk(func(el *Element) {
		if el != e && match(el) {
			out = append(out, el)
		}
	})
	return out
}

// QuerySelector returns the first descendant matching selector, or nil.
func (e *Element) QuerySelector(selector string) *Element {
	all := e.QuerySelectorAll(selector)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

func (e *Element) walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.children {
		if el, ok := c.(*Element); ok {
			el.walk(fn)
		}
	}
}

func (e *Element) detach() {
	if e.parent == nil {
		return
	}
	e.parent.removeChild(e)
	e.parent = nil
}

func (t *TextNode) detach() {
	if t.parent == nil {
		return
	}
	t.parent.removeChild(t)
	t.parent = nil
}

func (e *Element) removeChild(child dom.Node) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			return
		}
	}
}

func compileSelector(sel string) func(*Element) bool {
	sel = strings.TrimSpace(sel)
	switch {
	case strings.HasPrefix(sel, "#"):
		id := sel[1:]
		return func(el *Element) bool { return el.ID() == id }
	case strings.HasPrefix(sel, "."):
		class := sel[1:]
		return func(el *Element) bool {
			for _, c := range strings.Fields(el.ClassName()) {
				if c == class {
					return true
				}
			}
			return false
		}
	case strings.HasPrefix(sel, "[") && strings.HasSuffix(sel, "]"):
		name := sel[1 : len(sel)-1]
		return func(el *Element) bool { return el.HasAttribute(name) }
	default:
		tag := strings.ToLower(sel)
		return func(el *Element) bool { return el.tag == tag }
	}
}

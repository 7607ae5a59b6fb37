//go:build js && wasm

// Package jsdom implements the dom interfaces on top of the browser DOM.
package jsdom

import (
	"syscall/js"

	"github.com/vango-dev/dot/pkg/dom"
)

// Global returns the browser window.
func Global() *Window {
	return &Window{v: js.Global()}
}

// Wrap returns the node wrapper for a JS DOM node, or nil for null and
// undefined.
func Wrap(v js.Value) dom.Node {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	if v.Get("nodeType").Int() == 1 {
		return &Element{v: v}
	}
	return &Text{v: v}
}

func wrapElement(v js.Value) dom.Element {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return &Element{v: v}
}

func addListener(target js.Value, eventType string, l dom.Listener) {
	// The function lives as long as the page; it is never released.
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		l(&Event{v: args[0]})
		return nil
	})
	target.Call("addEventListener", eventType, fn)
}

// Text wraps a DOM text node.
type Text struct {
	v js.Value
}

func (t *Text) ParentElement() dom.Element { return wrapElement(t.v.Get("parentElement")) }
func (t *Text) TextContent() string        { return t.v.Get("textContent").String() }

// Value returns the underlying JS value.
func (t *Text) Value() js.Value { return t.v }

// Equal reports whether n wraps the same node.
func (t *Text) Equal(n dom.Node) bool { return sameValue(t.v, n) }

// Element wraps a DOM element.
type Element struct {
	v js.Value
}

var _ dom.Element = (*Element)(nil)

// Value returns the underlying JS value.
func (e *Element) Value() js.Value { return e.v }

// FormValue returns the element's live value property.
func (e *Element) FormValue() string { return e.v.Get("value").String() }

// Equal reports whether n wraps the same node.
func (e *Element) Equal(n dom.Node) bool { return sameValue(e.v, n) }

func sameValue(v js.Value, n dom.Node) bool {
	switch o := n.(type) {
	case *Element:
		return o != nil && v.Equal(o.v)
	case *Text:
		return o != nil && v.Equal(o.v)
	}
	return false
}

func (e *Element) ParentElement() dom.Element { return wrapElement(e.v.Get("parentElement")) }
func (e *Element) TextContent() string        { return e.v.Get("textContent").String() }
func (e *Element) TagName() string            { return e.v.Get("localName").String() }

func (e *Element) SetAttribute(name, value string) { e.v.Call("setAttribute", name, value) }

func (e *Element) GetAttribute(name string) (string, bool) {
	v := e.v.Call("getAttribute", name)
	if v.IsNull() {
		return "", false
	}
	return v.String(), true
}

func (e *Element) RemoveAttribute(name string) { e.v.Call("removeAttribute", name) }
func (e *Element) HasAttribute(name string) bool {
	return e.v.Call("hasAttribute", name).Bool()
}

func (e *Element) SetClassName(name string) { e.v.Set("className", name) }
func (e *Element) ClassName() string        { return e.v.Get("className").String() }

func (e *Element) Style() dom.Style { return &Style{v: e.v.Get("style")} }

func (e *Element) AppendChild(child dom.Node) {
	switch c := child.(type) {
	case *Element:
		e.v.Call("appendChild", c.v)
	case *Text:
		e.v.Call("appendChild", c.v)
	default:
		panic("jsdom: cannot append foreign node")
	}
}

func (e *Element) ReplaceChildren() { e.v.Call("replaceChildren") }

func (e *Element) ChildNodes() []dom.Node {
	list := e.v.Get("childNodes")
	n := list.Length()
	out := make([]dom.Node, 0, n)
	for i := 0; i < n; i++ {
		if node := Wrap(list.Index(i)); node != nil {
			out = append(out, node)
		}
	}
	return out
}

func (e *Element) Closest(tag string) dom.Element {
	return wrapElement(e.v.Call("closest", tag))
}

func (e *Element) IsConnected() bool { return e.v.Get("isConnected").Bool() }

func (e *Element) AddEventListener(eventType string, l dom.Listener) {
	addListener(e.v, eventType, l)
}

// Style wraps a CSSStyleDeclaration.
type Style struct {
	v js.Value
}

func (s *Style) SetProperty(name, value string) { s.v.Call("setProperty", name, value) }
func (s *Style) GetPropertyValue(name string) string {
	return s.v.Call("getPropertyValue", name).String()
}

// Document wraps the DOM document.
type Document struct {
	v js.Value
}

func (d *Document) CreateElement(tag string) dom.Element {
	return &Element{v: d.v.Call("createElement", tag)}
}

func (d *Document) CreateTextNode(text string) dom.Node {
	return &Text{v: d.v.Call("createTextNode", text)}
}

func (d *Document) Body() dom.Element { return wrapElement(d.v.Get("body")) }

func (d *Document) GetElementByID(id string) dom.Element {
	return wrapElement(d.v.Call("getElementById", id))
}

// Event wraps a DOM event.
type Event struct {
	v       js.Value
	stopped bool
}

// Value returns the underlying JS event.
func (e *Event) Value() js.Value { return e.v }

func (e *Event) Type() string               { return e.v.Get("type").String() }
func (e *Event) Target() dom.Node           { return Wrap(e.v.Get("target")) }
func (e *Event) CurrentTarget() dom.Element { return wrapElement(e.v.Get("currentTarget")) }
func (e *Event) PreventDefault()            { e.v.Call("preventDefault") }
func (e *Event) DefaultPrevented() bool     { return e.v.Get("defaultPrevented").Bool() }
func (e *Event) StopPropagation()           { e.stopped = true; e.v.Call("stopPropagation") }
func (e *Event) PropagationStopped() bool   { return e.stopped }

// Location wraps window.location.
type Location struct {
	v js.Value
}

func (l *Location) Hash() string        { return l.v.Get("hash").String() }
func (l *Location) SetHash(hash string) { l.v.Set("hash", hash) }
func (l *Location) Pathname() string    { return l.v.Get("pathname").String() }
func (l *Location) Replace(url string)  { l.v.Call("replace", url) }

// History wraps window.history.
type History struct {
	v js.Value
}

func (h *History) Back()    { h.v.Call("back") }
func (h *History) Forward() { h.v.Call("forward") }

// Window wraps the browser window.
type Window struct {
	v js.Value
}

var _ dom.Window = (*Window)(nil)

func (w *Window) Document() dom.Document { return &Document{v: w.v.Get("document")} }
func (w *Window) Location() dom.Location { return &Location{v: w.v.Get("location")} }
func (w *Window) History() dom.History   { return &History{v: w.v.Get("history")} }

func (w *Window) AddEventListener(eventType string, l dom.Listener) {
	addListener(w.v, eventType, l)
}

// Post schedules fn on the browser event loop.
func (w *Window) Post(fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		cb.Release()
		fn()
		return nil
	})
	w.v.Call("setTimeout", cb, 0)
}

// Package dom defines the slice of the browser's visual tree that Dot
// depends on.
//
// Two implementations exist: memdom, an in-memory tree used headlessly and
// in tests, and jsdom, which wraps the real browser DOM through syscall/js.
// The core packages (mount, events, router) only see these interfaces.
package dom

// Listener receives native events.
type Listener func(e Event)

// EventTarget is anything that accepts native listeners.
type EventTarget interface {
	AddEventListener(eventType string, l Listener)
}

// Node is a node in the visual tree: an element or a text node.
type Node interface {
	// ParentElement returns the parent element, or nil at the top of a tree.
	ParentElement() Element

	// TextContent returns the concatenated text of the node and its
	// descendants.
	TextContent() string
}

// Element is a native element.
type Element interface {
	Node
	EventTarget

	TagName() string

	SetAttribute(name, value string)
	GetAttribute(name string) (string, bool)
	RemoveAttribute(name string)
	HasAttribute(name string) bool

	SetClassName(name string)
	ClassName() string

	Style() Style

	AppendChild(child Node)

	// ReplaceChildren removes every child.
	ReplaceChildren()

	ChildNodes() []Node

	// Closest returns the nearest inclusive ancestor with the given tag.
	Closest(tag string) Element

	// IsConnected reports whether the element is attached to a document.
	IsConnected() bool
}

// Style is an element's inline style declaration.
type Style interface {
	SetProperty(name, value string)
	GetPropertyValue(name string) string
}

// Document creates nodes.
type Document interface {
	CreateElement(tag string) Element
	CreateTextNode(text string) Node
	Body() Element
	GetElementByID(id string) Element
}

// Event is a native event as seen by listeners.
type Event interface {
	Type() string

	// Target is the node the event was dispatched to.
	Target() Node

	// CurrentTarget is the element whose listener is running.
	CurrentTarget() Element

	PreventDefault()
	DefaultPrevented() bool

	StopPropagation()
	PropagationStopped() bool
}

// Location is the window's URL.
type Location interface {
	// Hash returns the fragment including the leading "#", or "" if there
	// is none.
	Hash() string

	// SetHash sets the fragment. A value without a leading "#" gets one.
	SetHash(hash string)

	Pathname() string

	// Replace navigates to url without adding a history entry.
	Replace(url string)
}

// History is the window's session history.
type History interface {
	Back()
	Forward()
}

// Window is the top-level browsing context.
type Window interface {
	EventTarget

	Document() Document
	Location() Location
	History() History
}

// Same reports whether a and b refer to the same native node. Hosts whose
// wrappers are not unique per node implement Equal(Node) bool.
func Same(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if eq, ok := a.(interface{ Equal(Node) bool }); ok {
		return eq.Equal(b)
	}
	return a == b
}

// FormValue returns the current value of a form control. Hosts expose it
// through a FormValue() string method; otherwise the value attribute is
// used.
func FormValue(n Node) string {
	if v, ok := n.(interface{ FormValue() string }); ok {
		return v.FormValue()
	}
	if el, ok := n.(Element); ok {
		v, _ := el.GetAttribute("value")
		return v
	}
	return ""
}

// Post schedules fn on win's event loop when the host supports it, and runs
// fn immediately otherwise.
func Post(win Window, fn func()) {
	if p, ok := win.(interface{ Post(func()) }); ok {
		p.Post(fn)
		return
	}
	fn()
}

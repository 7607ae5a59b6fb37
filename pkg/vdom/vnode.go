package vdom

import "sort"

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement   Kind = iota // <div>, <button>, etc.
	KindComponent             // Component invocation
	KindText                  // Plain text node
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindComponent:
		return "Component"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Node is an immutable UI description. The concrete types are *Element,
// *ComponentNode and Text.
type Node interface {
	Kind() Kind
	node()
}

// Component renders a Node from its attributes. Components close over any
// store or router state they need; nothing is injected.
type Component func(attrs Attrs) Node

// Attrs maps attribute names to values.
type Attrs map[string]any

// Clone returns a shallow copy of a.
func (a Attrs) Clone() Attrs {
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Keys returns the attribute names in sorted order.
func (a Attrs) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Style maps CSS property names to values. Keys may be kebab-case or
// camelCase.
type Style map[string]string

// On maps event names ("click", "submit") to handlers.
type On map[string]any

// Element describes a native element.
type Element struct {
	tag      string
	attrs    Attrs
	children []Node
}

func (*Element) node() {}

// Kind implements Node.
func (*Element) Kind() Kind { return KindElement }

// Tag returns the element's tag name.
func (e *Element) Tag() string { return e.tag }

// Attr returns a single attribute value.
func (e *Element) Attr(key string) (any, bool) {
	v, ok := e.attrs[key]
	return v, ok
}

// Attrs returns a copy of the element's attributes.
func (e *Element) Attrs() Attrs { return e.attrs.Clone() }

// AttrKeys returns the element's attribute names in sorted order.
func (e *Element) AttrKeys() []string { return e.attrs.Keys() }

// Children returns a copy of the element's children.
func (e *Element) Children() []Node {
	out := make([]Node, len(e.children))
	copy(out, e.children)
	return out
}

// NumChildren returns the number of children.
func (e *Element) NumChildren() int { return len(e.children) }

// Child returns the i-th child.
func (e *Element) Child(i int) Node { return e.children[i] }

// ComponentNode describes a deferred component invocation.
type ComponentNode struct {
	component Component
	attrs     Attrs
	children  []Node
}

func (*ComponentNode) node() {}

// Kind implements Node.
func (*ComponentNode) Kind() Kind { return KindComponent }

// Attrs returns a copy of the attributes the component will receive.
func (c *ComponentNode) Attrs() Attrs { return c.attrs.Clone() }

// Children returns a copy of the children given at build time. They are not
// passed to the component.
func (c *ComponentNode) Children() []Node {
	out := make([]Node, len(c.children))
	copy(out, c.children)
	return out
}

// Render invokes the component with a copy of its attributes.
func (c *ComponentNode) Render() Node {
	if c.component == nil {
		return nil
	}
	return c.component(c.attrs.Clone())
}

// Text is a text leaf.
type Text string

func (Text) node() {}

// Kind implements Node.
func (Text) Kind() Kind { return KindText }

// String returns the text content.
func (t Text) String() string { return string(t) }

// isNil reports whether n is nil or a typed nil pointer.
func isNil(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Element:
		return v == nil
	case *ComponentNode:
		return v == nil
	}
	return false
}

// IsNil reports whether n is nil or holds a nil pointer. The mount engine
// renders such nodes as empty text.
func IsNil(n Node) bool { return isNil(n) }

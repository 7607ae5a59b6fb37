// Package vdom builds the immutable node descriptors that Dot mounts.
//
// A descriptor says what the UI should look like; it has no DOM or browser
// dependency. The mount package turns descriptors into a live visual tree,
// and every render builds a fresh descriptor tree from scratch.
//
// # Core Types
//
// Node is a sealed variant with three cases:
//
//   - *Element names a native element by tag.
//   - *ComponentNode holds a Component, a function from Attrs to Node,
//     which the mount engine invokes when it reaches the node.
//   - Text is a string leaf.
//
// Resolve a Node with a type switch:
//
//	switch n := node.(type) {
//	case *vdom.Element:
//	case *vdom.ComponentNode:
//	case vdom.Text:
//	}
//
// # Building
//
// H builds an element, C builds a component reference, and Build accepts
// either a tag or a component:
//
//	vdom.H("div", vdom.Attrs{"class": "card"},
//	    vdom.H("p", nil, "Count: ", count),
//	    vdom.H("button", vdom.Attrs{"on": vdom.On{"click": inc}}, "+1"),
//	)
//
// Children may be nested slices. They are flattened into one level, and nil
// and bool values are dropped so that conditional rendering reads naturally:
//
//	vdom.Div(nil, vdom.If(loggedIn, logoutButton), items)
//
// # Attributes
//
// Three attribute keys are structural:
//
//   - "style" takes a Style, which is merged into the element's inline style.
//   - "class" or "className" takes a string.
//   - "on" takes an On, mapping event names to handlers.
//
// Every other value is coerced to a string. A bool toggles the attribute's
// presence.
package vdom

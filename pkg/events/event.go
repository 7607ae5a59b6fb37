package events

import "github.com/vango-dev/dot/pkg/dom"

// Handler handles a delegated event.
type Handler func(e *Event)

// Event wraps a native event for the duration of one delegated dispatch.
type Event struct {
	native  dom.Event
	stopped bool
}

// NewEvent wraps a native event.
func NewEvent(native dom.Event) *Event {
	return &Event{native: native}
}

// Native returns the wrapped native event.
func (e *Event) Native() dom.Event { return e.native }

// Type returns the event type, e.g. "click".
func (e *Event) Type() string { return e.native.Type() }

// Target returns the node the event was dispatched to.
func (e *Event) Target() dom.Node { return e.native.Target() }

// CurrentTarget returns the element whose native listener is running. For a
// delegated event this is the root, not the element carrying the handler.
func (e *Event) CurrentTarget() dom.Element { return e.native.CurrentTarget() }

// PreventDefault cancels the native default action.
func (e *Event) PreventDefault() { e.native.PreventDefault() }

// StopPropagation stops both the native event and the delegated walk.
func (e *Event) StopPropagation() {
	e.native.StopPropagation()
	e.stopped = true
}

// Stopped reports whether a handler stopped propagation.
func (e *Event) Stopped() bool { return e.stopped }

// TargetElement returns the target, or its parent if the target is not an
// element.
func (e *Event) TargetElement() dom.Element {
	return elementOf(e.native.Target())
}

func elementOf(n dom.Node) dom.Element {
	if n == nil {
		return nil
	}
	if el, ok := n.(dom.Element); ok {
		return el
	}
	return n.ParentElement()
}

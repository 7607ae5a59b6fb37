package memdom

import "github.com/vango-dev/dot/pkg/dom"

// Event is an in-memory native event.
type Event struct {
	typ       string
	bubbles   bool
	target    dom.Node
	current   dom.Element
	prevented bool
	stopped   bool
}

var _ dom.Event = (*Event)(nil)

// NewEvent returns an undispatched event.
func NewEvent(eventType string, bubbles bool) *Event {
	return &Event{typ: eventType, bubbles: bubbles}
}

func (e *Event) Type() string               { return e.typ }
func (e *Event) Target() dom.Node           { return e.target }
func (e *Event) CurrentTarget() dom.Element { return e.current }
func (e *Event) PreventDefault()            { e.prevented = true }
func (e *Event) DefaultPrevented() bool     { return e.prevented }
func (e *Event) StopPropagation()           { e.stopped = true }
func (e *Event) PropagationStopped() bool   { return e.stopped }

// Dispatch delivers e to target and, if it bubbles, to each ancestor element
// in turn. Listeners on an element all run before propagation is checked.
// Dispatch on a text node starts at its parent. It reports whether the
// default action was not prevented.
func Dispatch(target dom.Node, e *Event) bool {
	e.target = target

	var el *Element
	switch t := target.(type) {
	case *Element:
		el = t
	case *TextNode:
		el = t.parent
	}

	for ; el != nil; el = el.parent {
		listeners := el.listeners[e.typ]
		if len(listeners) > 0 {
			e.current = el
			snapshot := make([]dom.Listener, len(listeners))
			copy(snapshot, listeners)
			for _, l := range snapshot {
				l(e)
			}
		}
		if e.stopped || !e.bubbles {
			break
		}
	}
	e.current = nil
	return !e.prevented
}

// Click dispatches a bubbling click on el.
func Click(el dom.Node) bool {
	return Dispatch(el, NewEvent("click", true))
}

// Submit dispatches a bubbling submit on a form.
func Submit(form *Element) bool {
	return Dispatch(form, NewEvent("submit", true))
}

// Input sets el's value and dispatches a bubbling input event.
func Input(el *Element, value string) bool {
	el.value = value
	return Dispatch(el, NewEvent("input", true))
}

package router

import (
	"strings"

	"github.com/vango-dev/dot/pkg/dom"
	"github.com/vango-dev/dot/pkg/vdom"
)

// AttachLinkInterceptor listens for clicks on root. A click inside an anchor
// whose href starts with "#/" has its native default and propagation
// stopped and goes through Navigate instead. Attaching the same root twice
// does nothing.
func (r *Router) AttachLinkInterceptor(root dom.Element) {
	r.mu.Lock()
	for _, el := range r.intercepted {
		if dom.Same(el, root) {
			r.mu.Unlock()
			return
		}
	}
	r.intercepted = append(r.intercepted, root)
	r.mu.Unlock()

	root.AddEventListener("click", func(e dom.Event) {
		el := targetElement(e.Target())
		if el == nil {
			return
		}
		a := el.Closest("a")
		if a == nil {
			return
		}
		href, _ := a.GetAttribute("href")
		if !strings.HasPrefix(href, "#/") {
			return
		}
		e.PreventDefault()
		e.StopPropagation()
		r.Navigate(href[1:])
	})
}

func targetElement(n dom.Node) dom.Element {
	if n == nil {
		return nil
	}
	if el, ok := n.(dom.Element); ok {
		return el
	}
	return n.ParentElement()
}

// Href returns the fragment href for path.
func Href(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "#" + path
}

// Link builds an anchor to path that AttachLinkInterceptor will route.
func Link(path string, children ...any) *vdom.Element {
	return vdom.A(vdom.Attrs{"href": Href(path)}, children...)
}

// NavLink is Link with class "active" when path is the router's current
// path.
func (r *Router) NavLink(path string, children ...any) *vdom.Element {
	attrs := vdom.Attrs{"href": Href(path)}
	if NormalizePath(r.Path()) == NormalizePath(path) {
		attrs[vdom.AttrClass] = "active"
	}
	return vdom.A(attrs, children...)
}

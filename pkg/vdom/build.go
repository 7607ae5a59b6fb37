package vdom

import (
	"fmt"
	"reflect"
)

// H builds an element descriptor. A nil attrs map is treated as empty. The
// map is copied, so later changes to it do not affect the descriptor.
func H(tag string, attrs Attrs, children ...any) *Element {
	return &Element{
		tag:      tag,
		attrs:    attrs.Clone(),
		children: Flatten(children...),
	}
}

// C builds a component descriptor.
func C(component Component, attrs Attrs, children ...any) *ComponentNode {
	return &ComponentNode{
		component: component,
		attrs:     attrs.Clone(),
		children:  Flatten(children...),
	}
}

// Build accepts either a tag name or a component as typ. Any other value is
// formatted with fmt.Sprint and used as a tag name; Build never fails.
func Build(typ any, attrs Attrs, children ...any) Node {
	switch t := typ.(type) {
	case string:
		return H(t, attrs, children...)
	case Component:
		return C(t, attrs, children...)
	case func(Attrs) Node:
		return C(t, attrs, children...)
	default:
		return H(fmt.Sprint(typ), attrs, children...)
	}
}

// Flatten flattens nested child slices into one level. Nil values, nil
// nodes and bools are dropped; strings and numbers become Text. Flattening
// an already flattened slice returns an equal slice.
func Flatten(children ...any) []Node {
	out := make([]Node, 0, len(children))
	for _, c := range children {
		out = appendChild(out, c)
	}
	return out
}

func appendChild(out []Node, c any) []Node {
	switch v := c.(type) {
	case nil, bool:
		return out
	case Node:
		if isNil(v) {
			return out
		}
		return append(out, v)
	case string:
		return append(out, Text(v))
	case []Node:
		for _, n := range v {
			out = appendChild(out, n)
		}
		return out
	case []*Element:
		for _, n := range v {
			out = appendChild(out, n)
		}
		return out
	case []any:
		for _, n := range v {
			out = appendChild(out, n)
		}
		return out
	case []string:
		for _, s := range v {
			out = append(out, Text(s))
		}
		return out
	}

	if s, ok := FormatNumber(c); ok {
		return append(out, Text(s))
	}

	rv := reflect.ValueOf(c)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			out = appendChild(out, rv.Index(i).Interface())
		}
		return out
	case reflect.Ptr, reflect.Func, reflect.Map, reflect.Chan, reflect.Interface:
		if rv.IsNil() {
			return out
		}
	}

	return append(out, Text(Stringify(c)))
}

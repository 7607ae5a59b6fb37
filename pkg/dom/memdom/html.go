package memdom

import (
	"strings"

	"github.com/vango-dev/dot/pkg/vdom"
)

// OuterHTML serializes the element and its subtree. Attributes appear in the
// order they were first set.
func (e *Element) OuterHTML() string {
	var b strings.Builder
	e.writeHTML(&b)
	return b.String()
}

// InnerHTML serializes the element's children.
func (e *Element) InnerHTML() string {
	var b strings.Builder
	for _, c := range e.children {
		writeNode(&b, c)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n any) {
	switch n := n.(type) {
	case *Element:
		n.writeHTML(b)
	case *TextNode:
		b.WriteString(escapeHTML(n.data))
	}
}

func (e *Element) writeHTML(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(e.tag)
	for _, a := range e.attrs {
		b.WriteByte(' ')
		b.WriteString(a.name)
		if a.value != "" {
			b.WriteString(`="`)
			b.WriteString(escapeAttr(a.value))
			b.WriteByte('"')
		}
	}
	b.WriteByte('>')
	if vdom.IsVoidElement(e.tag) {
		return
	}
	for _, c := range e.children {
		writeNode(b, c)
	}
	b.WriteString("</")
	b.WriteString(e.tag)
	b.WriteByte('>')
}

// escapeHTML escapes text content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// escapeAttr escapes a double-quoted attribute value. Whitespace control
// characters are written as character references so the value survives a
// reparse unchanged.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

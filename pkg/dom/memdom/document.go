package memdom

import (
	"strings"

	"github.com/vango-dev/dot/pkg/dom"
)

// Document is an in-memory document with an html root and a body.
type Document struct {
	root *Element
	body *Element
}

var _ dom.Document = (*Document)(nil)

// NewDocument returns an empty document.
func NewDocument() *Document {
	d := &Document{}
	d.root = d.newElement("html")
	d.body = d.newElement("body")
	d.root.AppendChild(d.body)
	return d
}

func (d *Document) newElement(tag string) *Element {
	return &Element{doc: d, tag: strings.ToLower(tag)}
}

// CreateElement implements dom.Document.
func (d *Document) CreateElement(tag string) dom.Element {
	return d.newElement(tag)
}

// NewElement is CreateElement returning the concrete type.
func (d *Document) NewElement(tag string) *Element {
	return d.newElement(tag)
}

// CreateTextNode implements dom.Document.
func (d *Document) CreateTextNode(text string) dom.Node {
	return &TextNode{data: text}
}

// Body implements dom.Document.
func (d *Document) Body() dom.Element { return d.body }

// BodyElement is Body returning the concrete type.
func (d *Document) BodyElement() *Element { return d.body }

// GetElementByID implements dom.Document.
func (d *Document) GetElementByID(id string) dom.Element {
	if el := d.ElementByID(id); el != nil {
		return el
	}
	return nil
}

// ElementByID is GetElementByID returning the concrete type.
func (d *Document) ElementByID(id string) *Element {
	var found *Element
	d.root.walk(func(el *Element) {
		if found == nil && el.ID() == id {
			found = el
		}
	})
	return found
}

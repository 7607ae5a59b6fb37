// Package memdom is an in-memory implementation of the dom interfaces.
//
// It models only what Dot uses: elements with ordered attributes and inline
// style, text nodes, bubbling event dispatch, and a window with a hash
// history whose hashchange events are delivered asynchronously through a
// task queue. It is used for headless rendering and for tests:
//
//	win := memdom.NewWindow("http://localhost/example/#/")
//	root := win.Doc().NewElement("div")
//	win.Doc().BodyElement().AppendChild(root)
//
//	// ... mount into root ...
//	memdom.Click(root.QuerySelector("button"))
//	win.Flush()
package memdom

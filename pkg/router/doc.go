// Package router implements fragment-based client-side routing.
//
// The logical path lives in the location fragment ("#/todos/7"), so
// navigation never reloads the document. A Router matches that path against
// an ordered route Table and notifies subscribers on every fragment change:
//
//	table := router.Table{
//	    {Pattern: "/", Component: Home},
//	    {Pattern: "/todos/:id", Component: TodoDetail},
//	    {Pattern: "*", Component: NotFound},
//	}
//	r := router.New(win, table)
//	r.Subscribe(func(m router.Match) { remount(m) })
//	r.Start()
//
// # Matching
//
// Patterns are tried in table order and the first one whose segments all
// match wins, so more specific patterns must come first. A ":name" segment
// matches any single segment and captures its percent-decoded value. The "*"
// entry is the fallback when nothing else matches.
//
// # Links
//
// AttachLinkInterceptor routes clicks on anchors whose href starts with
// "#/" through Navigate. Link builds such anchors.
package router

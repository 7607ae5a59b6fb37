// Package events implements delegated event dispatch.
//
// Elements never receive native listeners of their own. Instead the mount
// engine registers each handler with a Dispatcher, which hands back an ID,
// and stores the ID on the element in a marker attribute:
//
//	<button data-dot-onclick="7">
//
// One native listener per (root, event type) catches the bubbling event,
// walks from the target up to the root, and invokes the handler whose ID it
// finds on each element on the way.
//
// Handler IDs are decimal strings issued in increasing order and never
// reused. Registrations live as long as the Dispatcher; Stats exposes the
// counts.
package events

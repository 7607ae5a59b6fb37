// Package demo holds the example applications: a counter and a routed
// to-do app with persistence and optional server sync.
//
// Both run against any dom.Window, so the same code drives the browser
// build and the headless tests.
package demo

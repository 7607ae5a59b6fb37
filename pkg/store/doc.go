// Package store provides a typed, observable state container.
//
// A Store holds one value of type T. Set and Update commit a new value,
// optionally persist it, then call every subscriber synchronously in
// subscription order:
//
//	counter := store.New(Counter{Count: 0})
//	unsub := counter.Subscribe(func(c Counter) { remount() })
//	counter.Update(func(c Counter) Counter { c.Count++; return c })
//
// # Persistence
//
// With WithPersistKey and WithBackend the store reads a snapshot at
// construction and shallow-merges its top-level keys over the initial state,
// then writes the full state after every commit. The state's JSON object
// shape defines the keys. Keys starting with "_" are never written, and
// WithAllowKeys or WithDenyKeys narrow the set further. Persistence failures
// are logged and never surface to callers.
package store

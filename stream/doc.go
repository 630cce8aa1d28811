// Package stream provides the small synchronization primitives the binders
// are built on: a typed event emitter with explicit subscription handles and
// a trailing-edge time debouncer.
//
// The emitter replaces a framework-specific observable with an ordinary
// observer registration: handlers are registered callbacks invoked in
// subscription order, and HasListeners exposes the listener-presence gate the
// binders use to skip work when nobody is subscribed. The debouncer coalesces
// bursts of events so only the latest value within the configured interval
// survives; it never reorders events across independent streams.
package stream

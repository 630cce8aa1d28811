// Package loader provides lazy, shared acquisition of the rich-text engine
// module and the one-time global registration of custom options and modules.
//
// Acquire is safe to call concurrently from multiple binders: only the first
// caller triggers the underlying load, every caller observes the same
// resolved engine (or the same terminal error, with no retry). Prepare
// resolves asynchronous custom module factories, runs the configured
// pre-render hook chain and performs the registration side effects against
// the engine's process-wide registry.
//
// The registry itself offers no duplicate-registration protection, so the
// loader tracks already-registered paths in an explicit set: a repeated
// registration from a second binder mount is skipped with a suppressible
// warning instead of mutating global state twice.
package loader

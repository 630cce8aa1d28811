// Package logging provides a minimal logging interface and adapters for
// richbind.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that the loader and binders use for observability. This
// package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//   - RichbindLogger with contextual helpers (component, editor instance)
//     and domain specific logging helpers for binder lifecycle and the
//     global registration path
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	rb := richbind.New(richbind.WithLogger(logger))
//
// The design intentionally keeps the interface minimal to avoid vendor
// lock-in while supporting structured logging where available.
package logging

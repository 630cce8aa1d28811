// Package core provides the foundational domain types and interfaces used by
// richbind. It defines the core abstractions for:
//
//   - Deltas (the engine's native operation-list content representation)
//   - Values (the external representations exchanged with the host: plain
//     text, structured document, HTML or JSON string)
//   - Change events (immutable records emitted by a live editor)
//   - The Engine / Editor contract consumed from the third-party rich-text
//     engine (construction, content access, event subscription, modules)
//
// The package intentionally keeps implementation concerns (binders, loading,
// format conversion, a concrete engine) out of scope, exposing small
// interfaces to enable custom engine backends and extensions. All exported
// identifiers include concise documentation to aid discoverability and
// external consumption.
package core

// Package binder implements the reactive synchronization core: components
// that own one live editor instance each and keep it consistent with
// declarative configuration, a two-way bound value and registered listeners.
//
// Three binders are provided:
//
//   - Editable: the full editor component with the two-way value-binding
//     contract, a debounced listener-gated emission pipeline, validation and
//     the disabled-state contract.
//   - View: the read-only projection sharing the same engine lifecycle but
//     without toolbar, listener registration or validation.
//   - HTMLView: a stateless projection that renders sanitized or trusted
//     HTML without any engine instance.
//
// Lifecycle: a binder starts Unmounted, moves to AwaitingEngine when its
// post-render mount schedules the engine acquisition, and reaches Ready once
// the instance is constructed, the buffered pending value injected silently
// and listeners attached. Destroy tears down every listener registration and
// the acquisition wait. Non-interactive hosts (server rendering) transition
// straight to the terminal Inert state and never touch the engine.
package binder

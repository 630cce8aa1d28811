package binder

// State is a binder's lifecycle phase.
type State int

const (
	// Unmounted is the initial state before the post-render mount.
	Unmounted State = iota
	// AwaitingEngine means the engine acquisition has been scheduled but the
	// instance does not exist yet; external writes are buffered.
	AwaitingEngine
	// Ready means the live editor exists, the pending value has been flushed
	// and listeners are attached.
	Ready
	// Destroyed is terminal: all registrations and the acquisition wait have
	// been torn down.
	Destroyed
	// Inert is terminal: the host is non-interactive (server rendering) and
	// no engine instance will ever be created.
	Inert
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Unmounted:
		return "unmounted"
	case AwaitingEngine:
		return "awaiting-engine"
	case Ready:
		return "ready"
	case Destroyed:
		return "destroyed"
	case Inert:
		return "inert"
	default:
		return "unknown"
	}
}

// Host abstracts the rendering container a binder mounts into. The hosting
// framework supplies an implementation; the binder only toggles attributes
// on it and hands the opaque container to the engine constructor.
type Host interface {
	// Interactive reports whether this target can run a live editor. A
	// server-side rendering host returns false.
	Interactive() bool

	// Container returns the opaque element handle passed to the engine.
	Container() any

	// SetAttribute sets a host-level attribute (disabled, class, style).
	SetAttribute(name, value string)

	// RemoveAttribute removes a host-level attribute.
	RemoveAttribute(name string)
}

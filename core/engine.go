package core

// EditorOptions is the resolved option snapshot handed to Engine.NewEditor.
// It mirrors the subset of the binder configuration the engine itself
// understands; binder-only options (debounce, validation, formats) never
// reach the engine.
type EditorOptions struct {
	Theme       string
	Modules     map[string]any
	Placeholder string
	ReadOnly    bool
	Formats     []string
	Bounds      string
	Debug       string
	Registry    any
}

// Engine is the module-level contract of the rich-text engine: editor
// construction plus the process-wide format/module registry used for custom
// extensions.
//
// A concrete implementation is responsible for:
//   - Constructing live editors bound to a host container (NewEditor)
//   - Resolving previously registered definitions by path (Import)
//   - Registering new definitions, optionally overwriting (Register)
//
// The registry is process-wide state; richbind's loader layers idempotent
// registration tracking on top of it because the engine itself does not
// guard against duplicate registration.
type Engine interface {
	// NewEditor constructs a live editor inside the given host container.
	// The container is opaque to richbind; interactive hosts pass whatever
	// handle their rendering target uses.
	NewEditor(container any, opts EditorOptions) (Editor, error)

	// Import resolves a registered definition by path (e.g.
	// "attributors/style/size"). ok is false when nothing is registered
	// under the path.
	Import(path string) (def any, ok bool)

	// Register installs a definition under the given path. overwrite
	// replaces an existing definition; suppressWarning silences the
	// engine's duplicate-registration warning.
	Register(path string, def any, overwrite, suppressWarning bool)
}

// Editor is the contract of one live engine instance. An Editor is
// exclusively owned by the binder that created it and must not be shared.
//
// Writes tagged SourceSilent suppress change-event dispatch and history
// recording; SourceUser and SourceAPI raise events as usual.
type Editor interface {
	// ID returns the stable unique identifier of this instance.
	ID() string

	// GetText returns the document plain text including the engine's
	// implicit trailing newline.
	GetText() string

	// GetLength returns the document length in characters (the trailing
	// newline counts, so an empty editor reports 1).
	GetLength() int

	// GetContents returns the current document Delta.
	GetContents() Delta

	// SetText replaces the document with plain text.
	SetText(text string, source Source)

	// SetContents replaces the document with the given Delta.
	SetContents(delta Delta, source Source)

	// UpdateContents applies a change Delta against the current document.
	UpdateContents(delta Delta, source Source)

	// GetSemanticHTML renders the document as semantic HTML.
	GetSemanticHTML() string

	// Enable restores user editability.
	Enable()

	// Disable makes the editor non-editable.
	Disable()

	// IsEnabled reports current editability.
	IsEnabled() bool

	// GetSelection returns the current selection, nil when unfocused.
	GetSelection() *Range

	// SetSelection moves the selection; nil removes it (blur).
	SetSelection(r *Range, source Source)

	// On subscribes a handler to one of the engine-native event streams.
	// Handlers are invoked synchronously in registration order.
	On(kind EventKind, h Handler) Registration

	// GetModule returns a named engine module (e.g. "history", "toolbar"),
	// ok false when the module is not active on this instance.
	GetModule(name string) (any, bool)

	// Clipboard returns the HTML import module.
	Clipboard() Clipboard

	// History returns the undo-history module.
	History() History
}

// Clipboard converts external HTML into the engine's Delta representation.
type Clipboard interface {
	Convert(html string) (Delta, error)
}

// History is the engine's undo-history module. The binders clear it after
// the initial silent value injection so the seed content cannot be undone.
type History interface {
	Clear()
}

// Toolbar is the engine's toolbar module surface.
type Toolbar interface {
	Enabled() bool
}

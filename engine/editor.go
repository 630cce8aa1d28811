package engine

import (
	"sync"

	"github.com/hupe1980/richbind/core"
)

type handlerEntry struct {
	id int
	fn core.Handler
}

// InMemoryEditor is one live in-memory editor instance. It is exclusively
// owned by the binder that created it; all methods are safe for concurrent
// use, with event handlers invoked outside the internal lock in registration
// order.
type InMemoryEditor struct {
	id        string
	container any
	theme     string

	mu        sync.Mutex
	doc       core.Delta
	selection *core.Range
	enabled   bool

	handlers map[core.EventKind][]handlerEntry
	nextID   int

	history   *HistoryModule
	toolbar   *ToolbarModule
	clipboard *ClipboardModule
	modules   map[string]any
}

func newInMemoryEditor(container any, opts core.EditorOptions) *InMemoryEditor {
	ed := &InMemoryEditor{
		id:        core.NewID(),
		container: container,
		theme:     opts.Theme,
		doc:       core.FromText("\n"),
		enabled:   !opts.ReadOnly,
		handlers:  make(map[core.EventKind][]handlerEntry),
		history:   &HistoryModule{},
		clipboard: &ClipboardModule{},
		modules:   make(map[string]any),
	}
	ed.modules["history"] = ed.history
	ed.modules["clipboard"] = ed.clipboard
	if enabled, ok := opts.Modules["toolbar"]; !ok || enabled != false {
		ed.toolbar = &ToolbarModule{enabled: true}
		ed.modules["toolbar"] = ed.toolbar
	}
	for name, def := range opts.Modules {
		if name == "toolbar" {
			continue
		}
		ed.modules[name] = def
	}
	return ed
}

// ID returns the stable unique identifier of this instance.
func (ed *InMemoryEditor) ID() string { return ed.id }

// Container returns the opaque host container the editor was bound to.
func (ed *InMemoryEditor) Container() any { return ed.container }

// GetText returns the document plain text including the trailing newline.
func (ed *InMemoryEditor) GetText() string {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.doc.Text()
}

// GetLength returns the document length in characters.
func (ed *InMemoryEditor) GetLength() int {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.doc.Length()
}

// GetContents returns a copy of the current document Delta.
func (ed *InMemoryEditor) GetContents() core.Delta {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.doc.Clone()
}

// SetText replaces the document with plain text.
func (ed *InMemoryEditor) SetText(text string, source core.Source) {
	ed.SetContents(core.FromText(text), source)
}

// SetContents replaces the document. The reported change Delta is the new
// document itself; see the package documentation.
func (ed *InMemoryEditor) SetContents(delta core.Delta, source core.Source) {
	ed.mu.Lock()
	old := ed.doc
	ed.doc = delta.Normalized().Clone()
	if source != core.SourceSilent {
		ed.history.record(old)
	}
	applied := ed.doc.Clone()
	ed.mu.Unlock()

	if source != core.SourceSilent {
		ed.dispatchContentChange(applied, old, source)
	}
}

// UpdateContents applies a change Delta (retain/insert/delete) against the
// current document.
func (ed *InMemoryEditor) UpdateContents(delta core.Delta, source core.Source) {
	ed.mu.Lock()
	old := ed.doc
	ed.doc = applyChange(ed.doc, delta).Normalized()
	if source != core.SourceSilent {
		ed.history.record(old)
	}
	ed.mu.Unlock()

	if source != core.SourceSilent {
		ed.dispatchContentChange(delta.Clone(), old, source)
	}
}

// GetSemanticHTML renders the document as semantic HTML.
func (ed *InMemoryEditor) GetSemanticHTML() string {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return renderHTML(ed.doc)
}

// Enable restores user editability.
func (ed *InMemoryEditor) Enable() {
	ed.mu.Lock()
	ed.enabled = true
	ed.mu.Unlock()
}

// Disable makes the editor non-editable.
func (ed *InMemoryEditor) Disable() {
	ed.mu.Lock()
	ed.enabled = false
	ed.mu.Unlock()
}

// IsEnabled reports current editability.
func (ed *InMemoryEditor) IsEnabled() bool {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.enabled
}

// GetSelection returns the current selection, nil when unfocused.
func (ed *InMemoryEditor) GetSelection() *core.Range {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	if ed.selection == nil {
		return nil
	}
	r := *ed.selection
	return &r
}

// SetSelection moves the selection; nil removes it, signifying focus loss.
func (ed *InMemoryEditor) SetSelection(r *core.Range, source core.Source) {
	ed.mu.Lock()
	old := ed.selection
	if r != nil {
		cp := *r
		ed.selection = &cp
	} else {
		ed.selection = nil
	}
	ed.mu.Unlock()

	if source != core.SourceSilent {
		ed.dispatchSelectionChange(r, old, source)
	}
}

// Focus places a collapsed selection at the document start, mirroring the
// focus transition a real engine reports.
func (ed *InMemoryEditor) Focus() {
	ed.SetSelection(&core.Range{Index: 0, Length: 0}, core.SourceUser)
}

// Blur removes the selection, mirroring focus loss.
func (ed *InMemoryEditor) Blur() {
	ed.SetSelection(nil, core.SourceUser)
}

// On subscribes a handler to one of the engine-native event streams.
func (ed *InMemoryEditor) On(kind core.EventKind, h core.Handler) core.Registration {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	id := ed.nextID
	ed.nextID++
	ed.handlers[kind] = append(ed.handlers[kind], handlerEntry{id: id, fn: h})
	return &registration{editor: ed, kind: kind, id: id}
}

// GetModule returns a named engine module.
func (ed *InMemoryEditor) GetModule(name string) (any, bool) {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	m, ok := ed.modules[name]
	return m, ok
}

// Clipboard returns the HTML import module.
func (ed *InMemoryEditor) Clipboard() core.Clipboard { return ed.clipboard }

// History returns the undo-history module.
func (ed *InMemoryEditor) History() core.History { return ed.history }

type registration struct {
	editor *InMemoryEditor
	kind   core.EventKind
	id     int
	once   sync.Once
}

// Off detaches the handler. Safe to call more than once.
func (r *registration) Off() {
	r.once.Do(func() {
		ed := r.editor
		ed.mu.Lock()
		defer ed.mu.Unlock()
		entries := ed.handlers[r.kind]
		for i, e := range entries {
			if e.id == r.id {
				ed.handlers[r.kind] = append(entries[:i], entries[i+1:]...)
				break
			}
		}
	})
}

func (ed *InMemoryEditor) snapshotHandlers(kind core.EventKind) []core.Handler {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	entries := ed.handlers[kind]
	hs := make([]core.Handler, len(entries))
	for i, e := range entries {
		hs[i] = e.fn
	}
	return hs
}

func (ed *InMemoryEditor) dispatchContentChange(delta, old core.Delta, source core.Source) {
	cc := core.ContentChange{Delta: delta, OldDelta: old, Source: source}
	for _, h := range ed.snapshotHandlers(core.EventTextChange) {
		h(cc)
	}
	ec := core.EditorChange{Kind: core.EventTextChange, Content: &cc}
	for _, h := range ed.snapshotHandlers(core.EventEditorChange) {
		h(ec)
	}
}

func (ed *InMemoryEditor) dispatchSelectionChange(r, old *core.Range, source core.Source) {
	sc := core.SelectionChange{Range: r, OldRange: old, Source: source}
	for _, h := range ed.snapshotHandlers(core.EventSelectionChange) {
		h(sc)
	}
	ec := core.EditorChange{Kind: core.EventSelectionChange, Selection: &sc}
	for _, h := range ed.snapshotHandlers(core.EventEditorChange) {
		h(ec)
	}
}

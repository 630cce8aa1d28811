package core

// Source identifies the origin of a content or selection mutation. The engine
// tags every change event with the source that produced it; binders gate
// model emission on it.
type Source string

const (
	// SourceUser marks mutations produced by direct user interaction.
	SourceUser Source = "user"
	// SourceAPI marks programmatic mutations that still raise change events.
	SourceAPI Source = "api"
	// SourceSilent marks programmatic mutations that suppress change events
	// and history recording.
	SourceSilent Source = "silent"
)

// Range describes a selection within the document as a start index plus
// length. A nil *Range means the editor holds no selection (focus lost).
type Range struct {
	Index  int `json:"index"`
	Length int `json:"length"`
}

// EventKind names an engine-native event stream a handler can subscribe to.
type EventKind string

const (
	// EventTextChange fires after the document content mutates.
	EventTextChange EventKind = "text-change"
	// EventSelectionChange fires after the selection moves, including the
	// nil transitions that signify focus gain and loss.
	EventSelectionChange EventKind = "selection-change"
	// EventEditorChange fires for both content and selection mutations,
	// tagged with the originating sub-kind.
	EventEditorChange EventKind = "editor-change"
)

// ChangeEvent represents a polymorphic engine-native notification. Concrete
// event types implement the unexported isChangeEvent marker enabling a closed
// set. Events are delivered in emission order and treated as immutable; the
// binder's debounce stage keeps only the latest event within an interval.
type ChangeEvent interface{ isChangeEvent() }

// ContentChange reports a document mutation.
type ContentChange struct {
	Delta    Delta  // the change applied
	OldDelta Delta  // the document before the change
	Source   Source // origin of the mutation
}

// isChangeEvent implements the ChangeEvent interface for ContentChange.
func (ContentChange) isChangeEvent() {}

// SelectionChange reports a selection transition. Range nil means the editor
// lost focus; OldRange nil with Range present means it gained focus.
type SelectionChange struct {
	Range    *Range
	OldRange *Range
	Source   Source
}

// isChangeEvent implements the ChangeEvent interface for SelectionChange.
func (SelectionChange) isChangeEvent() {}

// EditorChange wraps either a content or a selection change on the combined
// stream, tagged by the sub-event kind that produced it.
type EditorChange struct {
	Kind      EventKind // EventTextChange or EventSelectionChange
	Content   *ContentChange
	Selection *SelectionChange
}

// isChangeEvent implements the ChangeEvent interface for EditorChange.
func (EditorChange) isChangeEvent() {}

// Handler consumes engine-native change events.
type Handler func(ChangeEvent)

// Registration is the handle returned by Editor.On. Off detaches the handler;
// calling Off more than once is harmless.
type Registration interface {
	Off()
}

package binder

import "github.com/hupe1980/richbind/core"

// CreatedEvent notifies that the live editor instance exists and the binder
// reached Ready.
type CreatedEvent struct {
	Editor core.Editor
}

// ContentChangeEvent is the rich payload emitted on the content-changed
// channel. Value carries the decoded external representation for the
// configured format.
type ContentChangeEvent struct {
	Editor   core.Editor
	Delta    core.Delta
	OldDelta core.Delta
	Source   core.Source
	Text     string
	HTML     string
	Value    core.Value
}

// SelectionChangeEvent is emitted on the selection-changed channel for
// selection moves that are neither focus gain nor focus loss.
type SelectionChangeEvent struct {
	Editor   core.Editor
	Range    *core.Range
	OldRange *core.Range
	Source   core.Source
}

// EditorChangeEvent re-emits content and selection changes on the combined
// channel, tagged by the sub-event kind. Exactly one of Content and
// Selection is set.
type EditorChangeEvent struct {
	Kind      core.EventKind
	Content   *ContentChangeEvent
	Selection *SelectionChangeEvent
}

// FocusEvent is emitted when the editor gains a selection after having none.
type FocusEvent struct {
	Editor core.Editor
	Source core.Source
}

// BlurEvent is emitted when the editor loses its selection.
type BlurEvent struct {
	Editor core.Editor
	Source core.Source
}

package binder

import (
	"context"
	"testing"
	"time"

	"github.com/hupe1980/richbind/config"
	"github.com/hupe1980/richbind/core"
	"github.com/hupe1980/richbind/engine"
	"github.com/hupe1980/richbind/internal/testutil"
	"github.com/hupe1980/richbind/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mountReady mounts the binder on a fresh interactive host and waits for the
// Ready transition.
func mountReady(t *testing.T, e *Editable) *testutil.FakeHost {
	t.Helper()
	host := testutil.NewFakeHost()
	require.NoError(t, e.Mount(context.Background(), host))
	require.Eventually(t, func() bool { return e.State() == Ready }, time.Second, time.Millisecond)
	return host
}

func editorOf(t *testing.T, e *Editable) *engine.InMemoryEditor {
	t.Helper()
	ed, ok := e.Editor().(*engine.InMemoryEditor)
	require.True(t, ok)
	return ed
}

func TestEditable_LifecycleToReady(t *testing.T) {
	e := NewEditable()
	assert.Equal(t, Unmounted, e.State())

	var created []CreatedEvent
	done := make(chan struct{})
	e.OnCreated(func(ev CreatedEvent) {
		created = append(created, ev)
		close(done)
	})

	host := testutil.NewFakeHost()
	require.NoError(t, e.Mount(context.Background(), host))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("created event not emitted")
	}
	require.Len(t, created, 1)
	assert.NotNil(t, created[0].Editor)
	assert.Equal(t, Ready, e.State())

	assert.ErrorIs(t, e.Mount(context.Background(), host), ErrAlreadyMounted)
}

func TestEditable_InertOnNonInteractiveHost(t *testing.T) {
	e := NewEditable()
	require.NoError(t, e.Mount(context.Background(), testutil.NewInertHost()))
	assert.Equal(t, Inert, e.State())
	assert.Nil(t, e.Editor())

	// Writes are buffered but nothing ever flushes them.
	e.WriteValue(core.TextValue("never shown"))
	time.Sleep(20 * time.Millisecond)
	assert.Nil(t, e.Editor())
}

func TestEditable_PendingValueFlushedSilently(t *testing.T) {
	e := NewEditable(WithConfig(config.Config{Format: core.FormatText}))

	emissions := 0
	e.OnContentChanged(func(ContentChangeEvent) { emissions++ })

	// Written while Unmounted: buffered in the pending slot.
	e.WriteValue(core.TextValue("buffered"))
	mountReady(t, e)

	ed := editorOf(t, e)
	assert.Equal(t, "buffered\n", ed.GetText())
	assert.Zero(t, emissions, "initial injection is silent")

	history, ok := ed.GetModule("history")
	require.True(t, ok)
	assert.Zero(t, history.(*engine.HistoryModule).Len(), "silent seed leaves no history entry")
}

func TestEditable_WriteValueEmptyClears(t *testing.T) {
	e := NewEditable(WithConfig(config.Config{Format: core.FormatText}))
	mountReady(t, e)

	e.WriteValue(core.TextValue("something"))
	assert.Equal(t, "something\n", editorOf(t, e).GetText())

	e.WriteValue(core.TextValue(""))
	assert.Equal(t, "\n", editorOf(t, e).GetText())

	e.WriteValue(core.TextValue("again"))
	e.WriteValue(nil)
	assert.Equal(t, "\n", editorOf(t, e).GetText())
}

func TestEditable_FilterNullIgnoresAbsence(t *testing.T) {
	e := NewEditable(WithConfig(config.Config{
		Format:     core.FormatText,
		FilterNull: config.Ptr(true),
	}))
	mountReady(t, e)

	e.WriteValue(core.TextValue("kept"))
	e.WriteValue(nil)
	assert.Equal(t, "kept\n", editorOf(t, e).GetText(), "nil is ignored entirely with filterNull")
}

func TestEditable_ModelPushGating(t *testing.T) {
	e := NewEditable(WithConfig(config.Config{Format: core.FormatText}))
	rec := testutil.NewValueRecorder()
	e.RegisterOnChange(rec.Record)

	richEvents := 0
	e.OnContentChanged(func(ContentChangeEvent) { richEvents++ })

	mountReady(t, e)
	ed := editorOf(t, e)

	// API-sourced writes fail the user-or-all gate: no model push, but the
	// rich channel still emits for attached listeners.
	e.WriteValue(core.TextValue("api write"))
	assert.Zero(t, rec.Len())
	assert.Equal(t, 1, richEvents)

	// User edits pass the gate.
	ed.SetText("typed by user", core.SourceUser)
	require.Equal(t, 1, rec.Len())
	assert.Equal(t, core.TextValue("typed by user\n"), rec.Last())
	assert.Equal(t, 2, richEvents)
}

func TestEditable_TrackChangesAllPushesAPIWrites(t *testing.T) {
	e := NewEditable(WithConfig(config.Config{
		Format:       core.FormatText,
		TrackChanges: config.TrackAll,
	}))
	rec := testutil.NewValueRecorder()
	e.RegisterOnChange(rec.Record)
	mountReady(t, e)

	e.WriteValue(core.TextValue("api write"))
	require.Equal(t, 1, rec.Len())
	assert.Equal(t, core.TextValue("api write\n"), rec.Last())
}

func TestEditable_CompareValuesSkipsEqualWrites(t *testing.T) {
	e := NewEditable(WithConfig(config.Config{
		Format:        core.FormatText,
		CompareValues: config.Ptr(true),
	}))
	events := 0
	e.OnContentChanged(func(ContentChangeEvent) { events++ })
	mountReady(t, e)

	e.WriteValue(core.TextValue("same"))
	assert.Equal(t, 1, events)

	// Deep-equal proposed content: the write is skipped, no event fires.
	e.WriteValue(core.TextValue("same"))
	assert.Equal(t, 1, events)

	e.WriteValue(core.TextValue("different"))
	assert.Equal(t, 2, events)
}

func TestEditable_DebounceCoalescesContentEvents(t *testing.T) {
	e := NewEditable(WithConfig(config.Config{
		Format:       core.FormatText,
		DebounceTime: config.Ptr(30 * time.Millisecond),
	}))
	var payloads []ContentChangeEvent
	ch := make(chan ContentChangeEvent, 4)
	e.OnContentChanged(func(ev ContentChangeEvent) { ch <- ev })
	mountReady(t, e)
	ed := editorOf(t, e)

	ed.SetText("first", core.SourceUser)
	ed.SetText("second", core.SourceUser)

	deadline := time.After(500 * time.Millisecond)
collect:
	for {
		select {
		case ev := <-ch:
			payloads = append(payloads, ev)
		case <-deadline:
			break collect
		}
	}

	require.Len(t, payloads, 1, "two native events within the interval produce one emission")
	assert.Equal(t, "second\n", payloads[0].Text, "only the latest state survives")
}

func TestEditable_SetDebounceTimeRebuildsListeners(t *testing.T) {
	e := NewEditable(WithConfig(config.Config{Format: core.FormatText}))
	ch := make(chan ContentChangeEvent, 8)
	e.OnContentChanged(func(ev ContentChangeEvent) { ch <- ev })
	mountReady(t, e)
	ed := editorOf(t, e)

	// Without debounce every native event comes through.
	ed.SetText("a", core.SourceUser)
	ed.SetText("b", core.SourceUser)
	assert.Len(t, drain(ch, 100*time.Millisecond), 2)

	e.SetDebounceTime(30 * time.Millisecond)
	ed.SetText("c", core.SourceUser)
	ed.SetText("d", core.SourceUser)
	got := drain(ch, 300*time.Millisecond)
	require.Len(t, got, 1)
	assert.Equal(t, "d\n", got[0].Text)
}

func drain(ch chan ContentChangeEvent, wait time.Duration) []ContentChangeEvent {
	var out []ContentChangeEvent
	deadline := time.After(wait)
	for {
		select {
		case ev := <-ch:
			out = append(out, ev)
		case <-deadline:
			return out
		}
	}
}

func TestEditable_ValidateNilBeforeInstance(t *testing.T) {
	e := NewEditable(WithConfig(config.Config{Required: config.Ptr(true)}))
	assert.Nil(t, e.Validate(), "no error while no instance exists")
}

func TestEditable_ValidateRequired(t *testing.T) {
	e := NewEditable(WithConfig(config.Config{
		Format:   core.FormatText,
		Required: config.Ptr(true),
	}))
	mountReady(t, e)

	result := e.Validate()
	require.NotNil(t, result)
	require.NotNil(t, result.Required)
	assert.True(t, result.Required.Empty)

	editorOf(t, e).SetText("x", core.SourceUser)
	assert.Nil(t, e.Validate())
}

func TestEditable_ValidateMinMaxLength(t *testing.T) {
	e := NewEditable(WithConfig(config.Config{
		Format:    core.FormatText,
		MinLength: config.Ptr(3),
		MaxLength: config.Ptr(5),
	}))
	mountReady(t, e)
	ed := editorOf(t, e)

	// Length 6 (trailing newline discounted): only maxLength fires.
	ed.SetText("abcdef", core.SourceUser)
	result := e.Validate()
	require.NotNil(t, result)
	assert.Nil(t, result.MinLength)
	require.NotNil(t, result.MaxLength)
	assert.Equal(t, 6, result.MaxLength.Given)
	assert.Equal(t, 5, result.MaxLength.MaxLength)

	// Shrinking to length 4 clears the error.
	ed.SetText("abcd", core.SourceUser)
	assert.Nil(t, e.Validate())

	// Length 2 trips minLength; empty content does not (required handles it).
	ed.SetText("ab", core.SourceUser)
	result = e.Validate()
	require.NotNil(t, result)
	require.NotNil(t, result.MinLength)
	assert.Equal(t, 2, result.MinLength.Given)

	ed.SetText("", core.SourceUser)
	assert.Nil(t, e.Validate())
}

func TestEditable_ValidateTrimOption(t *testing.T) {
	e := NewEditable(WithConfig(config.Config{
		Format:           core.FormatText,
		MinLength:        config.Ptr(3),
		TrimOnValidation: config.Ptr(true),
	}))
	mountReady(t, e)
	ed := editorOf(t, e)

	ed.SetText("  ab  ", core.SourceUser)
	result := e.Validate()
	require.NotNil(t, result)
	require.NotNil(t, result.MinLength)
	assert.Equal(t, 2, result.MinLength.Given, "trimmed length is measured")
}

func TestEditable_DisabledStateContract(t *testing.T) {
	e := NewEditable()

	// Requested before the instance exists: stored and applied at Ready.
	e.SetDisabledState(true)
	host := mountReady(t, e)
	ed := editorOf(t, e)

	assert.False(t, ed.IsEnabled())
	_, present := host.Attr("disabled")
	assert.True(t, present, "host disabled attribute present while disabled")

	e.SetDisabledState(false)
	assert.True(t, ed.IsEnabled())
	_, present = host.Attr("disabled")
	assert.False(t, present)
}

func TestEditable_ReenableHonorsReadOnly(t *testing.T) {
	e := NewEditable(WithConfig(config.Config{ReadOnly: config.Ptr(true)}))
	host := mountReady(t, e)
	ed := editorOf(t, e)
	assert.False(t, ed.IsEnabled(), "read-only editors start disabled")

	e.SetDisabledState(true)
	e.SetDisabledState(false)
	assert.False(t, ed.IsEnabled(), "re-enabling must not override read-only")
	_, present := host.Attr("disabled")
	assert.False(t, present, "host attribute still cleared")
}

func TestEditable_TouchedOnFocusLoss(t *testing.T) {
	e := NewEditable()
	touch := testutil.NewTouchRecorder()
	e.RegisterOnTouched(touch.Touch)
	mountReady(t, e)
	ed := editorOf(t, e)

	ed.SetSelection(&core.Range{Index: 0, Length: 0}, core.SourceUser)
	ed.SetSelection(nil, core.SourceUser)
	assert.Equal(t, 1, touch.Count())

	// API-sourced focus loss fails the gate under the default track mode.
	ed.SetSelection(&core.Range{Index: 0, Length: 0}, core.SourceAPI)
	ed.SetSelection(nil, core.SourceAPI)
	assert.Equal(t, 1, touch.Count())
}

func TestEditable_FocusBlurChannels(t *testing.T) {
	e := NewEditable()
	var focus, blur, nativeFocus, nativeBlur, selection int
	e.OnFocus(func(FocusEvent) { focus++ })
	e.OnBlur(func(BlurEvent) { blur++ })
	e.OnNativeFocus(func(FocusEvent) { nativeFocus++ })
	e.OnNativeBlur(func(BlurEvent) { nativeBlur++ })
	e.OnSelectionChanged(func(SelectionChangeEvent) { selection++ })
	mountReady(t, e)
	ed := editorOf(t, e)

	ed.SetSelection(&core.Range{Index: 0, Length: 0}, core.SourceUser) // gain
	ed.SetSelection(&core.Range{Index: 1, Length: 2}, core.SourceUser) // move
	ed.SetSelection(nil, core.SourceUser)                              // loss

	assert.Equal(t, 1, focus)
	assert.Equal(t, 1, blur)
	assert.Equal(t, 1, nativeFocus)
	assert.Equal(t, 1, nativeBlur)
	assert.Equal(t, 1, selection)
}

func TestEditable_EditorChangedCombinedChannel(t *testing.T) {
	e := NewEditable(WithConfig(config.Config{Format: core.FormatText}))
	var events []EditorChangeEvent
	e.OnEditorChanged(func(ev EditorChangeEvent) { events = append(events, ev) })
	mountReady(t, e)
	ed := editorOf(t, e)

	ed.SetText("hello", core.SourceUser)
	ed.SetSelection(&core.Range{Index: 0, Length: 0}, core.SourceUser)

	require.Len(t, events, 2)
	assert.Equal(t, core.EventTextChange, events[0].Kind)
	require.NotNil(t, events[0].Content)
	assert.Equal(t, "hello\n", events[0].Content.Text)
	assert.Equal(t, core.EventSelectionChange, events[1].Kind)
	require.NotNil(t, events[1].Selection)
}

func TestEditable_DestroyDetachesListeners(t *testing.T) {
	e := NewEditable(WithConfig(config.Config{Format: core.FormatText}))
	events := 0
	e.OnContentChanged(func(ContentChangeEvent) { events++ })
	mountReady(t, e)
	ed := editorOf(t, e)

	ed.SetText("before", core.SourceUser)
	assert.Equal(t, 1, events)

	e.Destroy()
	assert.Equal(t, Destroyed, e.State())
	assert.Nil(t, e.Editor())

	ed.SetText("after", core.SourceUser)
	assert.Equal(t, 1, events, "no emission after teardown")
}

func TestEditable_LateResolutionAfterDestroyIsNoOp(t *testing.T) {
	release := make(chan struct{})
	slow := loader.New(loader.WithFactory(func(ctx context.Context) (core.Engine, error) {
		<-release
		return engine.NewInMemoryEngine(), nil
	}))
	e := NewEditable(WithLoader(slow))
	created := 0
	e.OnCreated(func(CreatedEvent) { created++ })

	require.NoError(t, e.Mount(context.Background(), testutil.NewFakeHost()))
	e.Destroy()
	close(release)

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, created, "late resolution must not act after teardown")
	assert.Nil(t, e.Editor())
	assert.Equal(t, Destroyed, e.State())
}

func TestEditable_JSONFormatMalformedInputLiteralFallback(t *testing.T) {
	e := NewEditable(WithConfig(config.Config{Format: core.FormatJSON}))
	mountReady(t, e)

	raw := `{"ops": not json at all`
	e.WriteValue(core.JSONValue(raw))
	assert.Equal(t, raw+"\n", editorOf(t, e).GetText(),
		"the visible text equals the raw invalid JSON verbatim")
}

func TestEditable_HostPresentationApplied(t *testing.T) {
	e := NewEditable(WithConfig(config.Config{
		Classes:     "editor compact",
		Styles:      map[string]string{"height": "200px", "border": "none"},
		Placeholder: config.Ptr("Compose an epic..."),
	}))
	host := mountReady(t, e)

	class, _ := host.Attr("class")
	assert.Equal(t, "editor compact", class)
	style, _ := host.Attr("style")
	assert.Equal(t, "border:none;height:200px;", style)
	placeholder, _ := host.Attr("data-placeholder")
	assert.Equal(t, "Compose an epic...", placeholder)

	// Direct setters re-derive the host attributes.
	e.SetClasses("editor wide")
	class, _ = host.Attr("class")
	assert.Equal(t, "editor wide", class)
	e.SetPlaceholder("...")
	placeholder, _ = host.Attr("data-placeholder")
	assert.Equal(t, "...", placeholder)
}

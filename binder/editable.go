package binder

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/richbind/config"
	"github.com/hupe1980/richbind/core"
	"github.com/hupe1980/richbind/format"
	"github.com/hupe1980/richbind/loader"
	"github.com/hupe1980/richbind/logging"
	"github.com/hupe1980/richbind/stream"
)

// ErrAlreadyMounted is returned when Mount is called on a binder that left
// the Unmounted state.
var ErrAlreadyMounted = errors.New("binder: already mounted")

// Editable is the full editor component: it owns one live editor instance,
// synchronizes declared configuration into engine options at creation, binds
// external writes to imperative engine calls and forwards engine-native
// change events through a debounced, listener-gated emission pipeline.
type Editable struct {
	service *config.Service
	loader  *loader.Loader
	logger  logging.Logger
	cfg     config.Resolved

	mu         sync.Mutex
	state      State
	host       Host
	editor     core.Editor
	pending    *core.Value // single slot, flushed exactly once at Ready
	disabled   bool
	readOnly   bool
	cancelLoad context.CancelFunc

	regs        []core.Registration
	debContent  *stream.Debouncer[core.ChangeEvent]
	debCombined *stream.Debouncer[core.ChangeEvent]
	debounce    time.Duration
	hasDebounce bool

	onChange  func(core.Value)
	onTouched func()

	created          *stream.Emitter[CreatedEvent]
	contentChanged   *stream.Emitter[ContentChangeEvent]
	selectionChanged *stream.Emitter[SelectionChangeEvent]
	editorChanged    *stream.Emitter[EditorChangeEvent]
	focus            *stream.Emitter[FocusEvent]
	blur             *stream.Emitter[BlurEvent]
	nativeFocus      *stream.Emitter[FocusEvent]
	nativeBlur       *stream.Emitter[BlurEvent]
}

// Option configures a binder at construction time.
type Option func(*options)

type options struct {
	service  *config.Service
	loader   *loader.Loader
	logger   logging.Logger
	override config.Config
}

// WithService supplies the service holding configuration defaults.
func WithService(s *config.Service) Option {
	return func(o *options) {
		if s != nil {
			o.service = s
		}
	}
}

// WithLoader supplies the shared engine loader.
func WithLoader(l *loader.Loader) Option {
	return func(o *options) {
		if l != nil {
			o.loader = l
		}
	}
}

// WithLogger injects a logger; defaults to NoOpLogger.
func WithLogger(lg logging.Logger) Option {
	return func(o *options) {
		if lg != nil {
			o.logger = lg
		}
	}
}

// WithConfig supplies the binder-level configuration override.
func WithConfig(cfg config.Config) Option {
	return func(o *options) { o.override = cfg }
}

func buildOptions(opts []Option) options {
	o := options{
		service: config.NewService(config.Config{}),
		loader:  loader.New(),
		logger:  logging.NoOpLogger{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewEditable constructs an editable binder. The configuration snapshot is
// resolved immediately with binder override > service default > built-in
// precedence and stays immutable for the binder's lifetime.
func NewEditable(opts ...Option) *Editable {
	o := buildOptions(opts)
	cfg := o.service.Resolve(o.override)
	e := &Editable{
		service:          o.service,
		loader:           o.loader,
		logger:           o.logger,
		cfg:              cfg,
		readOnly:         cfg.ReadOnly,
		debounce:         cfg.DebounceTime,
		hasDebounce:      cfg.HasDebounce,
		created:          stream.NewEmitter[CreatedEvent](),
		contentChanged:   stream.NewEmitter[ContentChangeEvent](),
		selectionChanged: stream.NewEmitter[SelectionChangeEvent](),
		editorChanged:    stream.NewEmitter[EditorChangeEvent](),
		focus:            stream.NewEmitter[FocusEvent](),
		blur:             stream.NewEmitter[BlurEvent](),
		nativeFocus:      stream.NewEmitter[FocusEvent](),
		nativeBlur:       stream.NewEmitter[BlurEvent](),
	}
	return e
}

// Config returns the resolved configuration snapshot.
func (e *Editable) Config() config.Resolved { return e.cfg }

// State returns the current lifecycle state.
func (e *Editable) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Editor returns the live editor instance, nil before Ready.
func (e *Editable) Editor() core.Editor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editor
}

// Mount schedules engine acquisition after the first render. A
// non-interactive host transitions directly to the terminal Inert state and
// never creates an instance. Mount returns immediately; readiness is
// signaled through the created channel.
func (e *Editable) Mount(ctx context.Context, host Host) error {
	e.mu.Lock()
	if e.state != Unmounted {
		e.mu.Unlock()
		return ErrAlreadyMounted
	}
	e.host = host
	if !host.Interactive() {
		e.state = Inert
		e.mu.Unlock()
		e.logger.Debug("non-interactive host, binder inert")
		return nil
	}
	e.state = AwaitingEngine
	loadCtx, cancel := context.WithCancel(ctx)
	e.cancelLoad = cancel
	e.mu.Unlock()

	go e.acquire(loadCtx)
	return nil
}

// acquire resolves the engine, prepares registrations and constructs the
// editor. Load and preparation failures surface through the log only; the
// acquisition stream has no structured recovery path.
func (e *Editable) acquire(ctx context.Context) {
	eng, err := e.loader.Acquire(ctx)
	if err != nil {
		e.logger.Error("engine acquisition failed", "error", err)
		return
	}
	if err := e.loader.Prepare(ctx, eng, e.cfg); err != nil {
		e.logger.Error("engine preparation failed", "error", err)
		return
	}

	e.mu.Lock()
	if e.state != AwaitingEngine {
		// Destroyed while loading: a late resolution must not act.
		e.mu.Unlock()
		return
	}
	ed, err := eng.NewEditor(e.host.Container(), e.editorOptions())
	if err != nil {
		e.mu.Unlock()
		e.logger.Error("editor construction failed", "error", err)
		return
	}
	e.editor = ed
	e.applyHostPresentationLocked()
	e.flushPendingLocked()
	e.applyDisabledLocked()
	e.attachListenersLocked()
	e.state = Ready
	e.mu.Unlock()

	e.logger.Info("editor ready", "editor_id", ed.ID(), "theme", e.cfg.Theme)
	e.created.Emit(CreatedEvent{Editor: ed})
}

func (e *Editable) editorOptions() core.EditorOptions {
	opts := e.cfg.EditorOptions()
	opts.ReadOnly = e.readOnly
	return opts
}

// flushPendingLocked performs the initial value injection: silent, so no
// change events fire and no history entry is recorded, then the history is
// cleared to drop any engine-internal seeding entries.
func (e *Editable) flushPendingLocked() {
	if e.pending == nil {
		return
	}
	v := *e.pending
	e.pending = nil
	if core.IsEmptyValue(v) {
		return
	}
	content, err := format.Encode(e.editor.Clipboard(), v, e.formatOptions())
	if err != nil {
		e.logger.Warn("initial value encoding failed", "error", err)
		return
	}
	writeContent(e.editor, content, core.SourceSilent)
	e.editor.History().Clear()
}

func (e *Editable) applyDisabledLocked() {
	if e.disabled {
		e.editor.Disable()
		e.host.SetAttribute("disabled", "disabled")
	}
}

func (e *Editable) applyHostPresentationLocked() {
	if e.cfg.Classes != "" {
		e.host.SetAttribute("class", e.cfg.Classes)
	}
	if len(e.cfg.Styles) > 0 {
		e.host.SetAttribute("style", styleString(e.cfg.Styles))
	}
	if e.cfg.Placeholder != "" {
		e.host.SetAttribute("data-placeholder", e.cfg.Placeholder)
	}
}

func styleString(styles map[string]string) string {
	keys := make([]string, 0, len(styles))
	for k := range styles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString(":")
		b.WriteString(styles[k])
		b.WriteString(";")
	}
	return b.String()
}

func (e *Editable) formatOptions() format.Options {
	return format.Options{
		Format:            e.cfg.Format,
		DefaultEmptyValue: e.cfg.DefaultEmptyValue,
		Sanitize:          e.cfg.Sanitize,
	}
}

// attachListenersLocked builds the listener registration set: exactly one
// set per instance. The content and combined streams run through the
// debouncer, the selection stream does not, but all three are torn down and
// rebuilt together when the interval changes.
func (e *Editable) attachListenersLocked() {
	interval := time.Duration(0)
	if e.hasDebounce {
		interval = e.debounce
	}
	e.debContent = stream.NewDebouncer(interval, e.handleContentChange)
	e.debCombined = stream.NewDebouncer(interval, e.handleEditorChange)

	debContent, debCombined := e.debContent, e.debCombined
	e.regs = []core.Registration{
		e.editor.On(core.EventSelectionChange, e.handleSelectionChange),
		e.editor.On(core.EventTextChange, func(ev core.ChangeEvent) { debContent.Call(ev) }),
		e.editor.On(core.EventEditorChange, func(ev core.ChangeEvent) { debCombined.Call(ev) }),
	}
}

func (e *Editable) detachListenersLocked() {
	for _, reg := range e.regs {
		reg.Off()
	}
	e.regs = nil
	if e.debContent != nil {
		e.debContent.Stop()
		e.debContent = nil
	}
	if e.debCombined != nil {
		e.debCombined.Stop()
		e.debCombined = nil
	}
}

// SetDebounceTime changes the debounce interval at runtime, tearing down and
// recreating all three listener subscriptions so the new interval applies
// uniformly.
func (e *Editable) SetDebounceTime(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.debounce = d
	e.hasDebounce = true
	if e.state == Ready {
		e.detachListenersLocked()
		e.attachListenersLocked()
	}
}

// WriteValue implements the two-way binding write path. Before Ready the
// value is buffered in the pending slot; once Ready it is written through
// the appropriate native setter with a non-silent source, so engine change
// events fire for it. An empty value clears the editor to empty text.
func (e *Editable) WriteValue(v core.Value) {
	if e.cfg.FilterNull && v == nil {
		return
	}
	e.mu.Lock()
	if e.state != Ready {
		e.pending = &v
		e.mu.Unlock()
		return
	}
	ed := e.editor
	e.mu.Unlock()

	if core.IsEmptyValue(v) {
		ed.SetText("", core.SourceAPI)
		return
	}
	content, err := format.Encode(ed.Clipboard(), v, e.formatOptions())
	if err != nil {
		e.logger.Warn("value encoding failed", "error", err)
		return
	}
	if e.cfg.CompareValues && contentEqualsCurrent(ed, content) {
		return
	}
	writeContent(ed, content, core.SourceAPI)
}

// contentEqualsCurrent deep-compares the proposed native content with the
// editor's current document via canonical serialization.
func contentEqualsCurrent(ed core.Editor, content core.Content) bool {
	switch c := content.(type) {
	case core.DeltaContent:
		return c.Delta.Normalized().Equal(ed.GetContents())
	case core.TextContent:
		return core.FromText(c.Text).Normalized().Equal(ed.GetContents())
	default:
		return false
	}
}

func writeContent(ed core.Editor, content core.Content, source core.Source) {
	switch c := content.(type) {
	case core.TextContent:
		ed.SetText(c.Text, source)
	case core.DeltaContent:
		ed.SetContents(c.Delta, source)
	}
}

// RegisterOnChange registers the model-change callback of the two-way
// binding contract.
func (e *Editable) RegisterOnChange(fn func(core.Value)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = fn
}

// RegisterOnTouched registers the touched callback fired on focus loss.
func (e *Editable) RegisterOnTouched(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onTouched = fn
}

// SetDisabledState stores the requested state (applied once the instance
// exists) and toggles the host-level disabled attribute. Re-enabling honors
// an active read-only configuration by leaving the editor disabled.
func (e *Editable) SetDisabledState(disabled bool) {
	e.mu.Lock()
	e.disabled = disabled
	ed := e.editor
	host := e.host
	readOnly := e.readOnly
	e.mu.Unlock()

	if ed == nil {
		return
	}
	if disabled {
		ed.Disable()
		host.SetAttribute("disabled", "disabled")
		return
	}
	if !readOnly {
		ed.Enable()
	}
	host.RemoveAttribute("disabled")
}

// SetReadOnly is the direct setter for the read-only flag on a live editor.
func (e *Editable) SetReadOnly(readOnly bool) {
	e.mu.Lock()
	e.readOnly = readOnly
	ed := e.editor
	disabled := e.disabled
	e.mu.Unlock()

	if ed == nil || disabled {
		return
	}
	if readOnly {
		ed.Disable()
	} else {
		ed.Enable()
	}
}

// SetPlaceholder is the direct setter for the placeholder text.
func (e *Editable) SetPlaceholder(text string) {
	e.mu.Lock()
	host := e.host
	e.mu.Unlock()
	if host != nil {
		host.SetAttribute("data-placeholder", text)
	}
}

// SetStyles is the direct setter for the host inline style.
func (e *Editable) SetStyles(styles map[string]string) {
	e.mu.Lock()
	host := e.host
	e.mu.Unlock()
	if host != nil {
		host.SetAttribute("style", styleString(styles))
	}
}

// SetClasses is the direct setter for the host class list.
func (e *Editable) SetClasses(classes string) {
	e.mu.Lock()
	host := e.host
	e.mu.Unlock()
	if host != nil {
		host.SetAttribute("class", classes)
	}
}

// Validate reports the structured validation result, nil while no instance
// exists or when the content satisfies the configured constraints.
func (e *Editable) Validate() *ValidationResult {
	e.mu.Lock()
	ed := e.editor
	e.mu.Unlock()
	if ed == nil {
		return nil
	}

	length := effectiveTextLength(ed.GetText(), e.cfg.TrimOnValidation)
	result := &ValidationResult{}
	if e.cfg.MinLength > 0 && length > 0 && length < e.cfg.MinLength {
		result.MinLength = &MinLengthError{Given: length, MinLength: e.cfg.MinLength}
	}
	if e.cfg.MaxLength > 0 && length > e.cfg.MaxLength {
		result.MaxLength = &MaxLengthError{Given: length, MaxLength: e.cfg.MaxLength}
	}
	if e.cfg.Required && length == 0 && ed.GetContents().IsBlank() {
		result.Required = &RequiredError{Empty: true}
	}
	if result.Valid() {
		return nil
	}
	return result
}

// Destroy tears down the binder: all listener registrations are
// unsubscribed, the acquisition wait is released and the instance reference
// dropped. A loader resolution arriving after Destroy is a no-op.
func (e *Editable) Destroy() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Destroyed {
		return
	}
	e.state = Destroyed
	if e.cancelLoad != nil {
		e.cancelLoad()
		e.cancelLoad = nil
	}
	e.detachListenersLocked()
	e.editor = nil
}

// OnCreated subscribes to instance-creation notifications.
func (e *Editable) OnCreated(fn func(CreatedEvent)) *stream.Subscription {
	return e.created.Subscribe(fn)
}

// OnContentChanged subscribes to the rich content-changed channel.
func (e *Editable) OnContentChanged(fn func(ContentChangeEvent)) *stream.Subscription {
	return e.contentChanged.Subscribe(fn)
}

// OnSelectionChanged subscribes to the selection-changed channel.
func (e *Editable) OnSelectionChanged(fn func(SelectionChangeEvent)) *stream.Subscription {
	return e.selectionChanged.Subscribe(fn)
}

// OnEditorChanged subscribes to the combined change channel.
func (e *Editable) OnEditorChanged(fn func(EditorChangeEvent)) *stream.Subscription {
	return e.editorChanged.Subscribe(fn)
}

// OnFocus subscribes to selection-derived focus notifications.
func (e *Editable) OnFocus(fn func(FocusEvent)) *stream.Subscription {
	return e.focus.Subscribe(fn)
}

// OnBlur subscribes to selection-derived blur notifications.
func (e *Editable) OnBlur(fn func(BlurEvent)) *stream.Subscription {
	return e.blur.Subscribe(fn)
}

// OnNativeFocus subscribes to focus notifications derived on the combined
// stream.
func (e *Editable) OnNativeFocus(fn func(FocusEvent)) *stream.Subscription {
	return e.nativeFocus.Subscribe(fn)
}

// OnNativeBlur subscribes to blur notifications derived on the combined
// stream.
func (e *Editable) OnNativeBlur(fn func(BlurEvent)) *stream.Subscription {
	return e.nativeBlur.Subscribe(fn)
}

// handleSelectionChange computes focus/blur/selection transitions. Emission
// is gated on listener presence, except the synthetic touched condition
// which fires whenever the selection becomes nil and the source passes the
// user-or-track-all rule.
func (e *Editable) handleSelectionChange(ev core.ChangeEvent) {
	sc, ok := ev.(core.SelectionChange)
	if !ok {
		return
	}
	e.mu.Lock()
	ed := e.editor
	touched := e.onTouched
	e.mu.Unlock()
	if ed == nil {
		return
	}

	switch {
	case sc.Range == nil:
		if e.blur.HasListeners() {
			e.blur.Emit(BlurEvent{Editor: ed, Source: sc.Source})
		}
		if touched != nil && e.passesTrackGate(sc.Source) {
			touched()
		}
	case sc.OldRange == nil:
		if e.focus.HasListeners() {
			e.focus.Emit(FocusEvent{Editor: ed, Source: sc.Source})
		}
	default:
		if e.selectionChanged.HasListeners() {
			e.selectionChanged.Emit(SelectionChangeEvent{
				Editor:   ed,
				Range:    sc.Range,
				OldRange: sc.OldRange,
				Source:   sc.Source,
			})
		}
	}
}

// handleContentChange pushes the decoded value to the registered model
// callback when the user-or-track-all gate passes, and independently emits
// the rich payload whenever a content-changed listener is attached,
// regardless of the gate.
func (e *Editable) handleContentChange(ev core.ChangeEvent) {
	cc, ok := ev.(core.ContentChange)
	if !ok {
		return
	}
	e.mu.Lock()
	ed := e.editor
	onChange := e.onChange
	e.mu.Unlock()
	if ed == nil {
		return
	}

	push := onChange != nil && e.passesTrackGate(cc.Source)
	emit := e.contentChanged.HasListeners()
	if !push && !emit {
		return
	}

	payload := e.buildContentPayload(ed, cc)
	if push {
		onChange(payload.Value)
	}
	if emit {
		e.contentChanged.Emit(payload)
	}
	e.logger.Debug("content change delivered", "editor_id", ed.ID(), "source", string(cc.Source))
}

// handleEditorChange re-emits both sub-cases on the combined channel, gated
// solely by listener presence, and derives the native focus/blur
// notifications from the selection variant.
func (e *Editable) handleEditorChange(ev core.ChangeEvent) {
	ec, ok := ev.(core.EditorChange)
	if !ok {
		return
	}
	e.mu.Lock()
	ed := e.editor
	e.mu.Unlock()
	if ed == nil {
		return
	}

	switch ec.Kind {
	case core.EventTextChange:
		if ec.Content == nil || !e.editorChanged.HasListeners() {
			return
		}
		payload := e.buildContentPayload(ed, *ec.Content)
		e.editorChanged.Emit(EditorChangeEvent{Kind: ec.Kind, Content: &payload})
	case core.EventSelectionChange:
		if ec.Selection == nil {
			return
		}
		sc := *ec.Selection
		if sc.Range == nil && e.nativeBlur.HasListeners() {
			e.nativeBlur.Emit(BlurEvent{Editor: ed, Source: sc.Source})
		}
		if sc.Range != nil && sc.OldRange == nil && e.nativeFocus.HasListeners() {
			e.nativeFocus.Emit(FocusEvent{Editor: ed, Source: sc.Source})
		}
		if e.editorChanged.HasListeners() {
			e.editorChanged.Emit(EditorChangeEvent{
				Kind: ec.Kind,
				Selection: &SelectionChangeEvent{
					Editor:   ed,
					Range:    sc.Range,
					OldRange: sc.OldRange,
					Source:   sc.Source,
				},
			})
		}
	}
}

func (e *Editable) buildContentPayload(ed core.Editor, cc core.ContentChange) ContentChangeEvent {
	html := ed.GetSemanticHTML()
	if format.IsVisuallyEmpty(html) {
		html = ""
	}
	return ContentChangeEvent{
		Editor:   ed,
		Delta:    cc.Delta,
		OldDelta: cc.OldDelta,
		Source:   cc.Source,
		Text:     ed.GetText(),
		HTML:     html,
		Value:    format.Decode(ed, e.formatOptions()),
	}
}

// passesTrackGate implements the user-or-all rule shared by the model push
// and the touched condition.
func (e *Editable) passesTrackGate(source core.Source) bool {
	return source == core.SourceUser || e.cfg.TrackChanges == config.TrackAll
}

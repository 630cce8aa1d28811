package binder

import (
	"context"
	"sync"

	"github.com/hupe1980/richbind/config"
	"github.com/hupe1980/richbind/core"
	"github.com/hupe1980/richbind/format"
	"github.com/hupe1980/richbind/loader"
	"github.com/hupe1980/richbind/logging"
	"github.com/hupe1980/richbind/stream"
)

// View is the read-only binder: same engine lifecycle as Editable but
// permanently non-editable, toolbar disabled, no listener registration and
// no validation. Content only ever arrives through SetValue.
type View struct {
	service *config.Service
	loader  *loader.Loader
	logger  logging.Logger
	cfg     config.Resolved

	mu         sync.Mutex
	state      State
	host       Host
	editor     core.Editor
	pending    *core.Value
	cancelLoad context.CancelFunc

	created *stream.Emitter[CreatedEvent]
}

// NewView constructs a read-only binder. The resolved configuration is
// forced read-only with the toolbar disabled regardless of overrides.
func NewView(opts ...Option) *View {
	o := buildOptions(opts)
	cfg := o.service.Resolve(o.override)
	cfg.ReadOnly = true
	modules := make(map[string]any, len(cfg.Modules)+1)
	for k, mod := range cfg.Modules {
		modules[k] = mod
	}
	modules["toolbar"] = false
	cfg.Modules = modules
	return &View{
		service: o.service,
		loader:  o.loader,
		logger:  o.logger,
		cfg:     cfg,
		created: stream.NewEmitter[CreatedEvent](),
	}
}

// Config returns the resolved configuration snapshot.
func (v *View) Config() config.Resolved { return v.cfg }

// State returns the current lifecycle state.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Editor returns the live editor instance, nil before Ready.
func (v *View) Editor() core.Editor {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.editor
}

// Mount schedules engine acquisition; non-interactive hosts go Inert.
func (v *View) Mount(ctx context.Context, host Host) error {
	v.mu.Lock()
	if v.state != Unmounted {
		v.mu.Unlock()
		return ErrAlreadyMounted
	}
	v.host = host
	if !host.Interactive() {
		v.state = Inert
		v.mu.Unlock()
		return nil
	}
	v.state = AwaitingEngine
	loadCtx, cancel := context.WithCancel(ctx)
	v.cancelLoad = cancel
	v.mu.Unlock()

	go v.acquire(loadCtx)
	return nil
}

func (v *View) acquire(ctx context.Context) {
	eng, err := v.loader.Acquire(ctx)
	if err != nil {
		v.logger.Error("engine acquisition failed", "error", err)
		return
	}
	if err := v.loader.Prepare(ctx, eng, v.cfg); err != nil {
		v.logger.Error("engine preparation failed", "error", err)
		return
	}

	v.mu.Lock()
	if v.state != AwaitingEngine {
		v.mu.Unlock()
		return
	}
	ed, err := eng.NewEditor(v.host.Container(), v.cfg.EditorOptions())
	if err != nil {
		v.mu.Unlock()
		v.logger.Error("editor construction failed", "error", err)
		return
	}
	v.editor = ed
	ed.Disable()
	if v.pending != nil {
		pv := *v.pending
		v.pending = nil
		// Initial injection is silent: the engine dispatches nothing, so
		// writing while holding the lock cannot re-enter.
		v.write(ed, pv, core.SourceSilent)
		ed.History().Clear()
	}
	v.state = Ready
	v.mu.Unlock()

	v.logger.Info("view editor ready", "editor_id", ed.ID())
	v.created.Emit(CreatedEvent{Editor: ed})
}

// SetValue updates the displayed content. Writes before instance creation
// are buffered in the single pending slot and flushed at Ready.
func (v *View) SetValue(value core.Value) {
	v.mu.Lock()
	if v.state != Ready {
		v.pending = &value
		v.mu.Unlock()
		return
	}
	ed := v.editor
	v.mu.Unlock()

	v.write(ed, value, core.SourceAPI)
}

func (v *View) write(ed core.Editor, value core.Value, source core.Source) {
	if core.IsEmptyValue(value) {
		ed.SetText("", source)
		return
	}
	content, err := format.Encode(ed.Clipboard(), value, format.Options{
		Format:            v.cfg.Format,
		DefaultEmptyValue: v.cfg.DefaultEmptyValue,
		Sanitize:          v.cfg.Sanitize,
	})
	if err != nil {
		v.logger.Warn("value encoding failed", "error", err)
		return
	}
	writeContent(ed, content, source)
}

// OnCreated subscribes to instance-creation notifications.
func (v *View) OnCreated(fn func(CreatedEvent)) *stream.Subscription {
	return v.created.Subscribe(fn)
}

// Destroy tears down the binder and drops the instance reference.
func (v *View) Destroy() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state == Destroyed {
		return
	}
	v.state = Destroyed
	if v.cancelLoad != nil {
		v.cancelLoad()
		v.cancelLoad = nil
	}
	v.editor = nil
}

package loader

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/richbind/config"
	"github.com/hupe1980/richbind/core"
	"github.com/hupe1980/richbind/engine"
	"github.com/hupe1980/richbind/logging"
)

// EngineFactory performs the actual engine module load. It runs at most once
// per Loader, on the goroutine spawned by the first Acquire call.
type EngineFactory func(ctx context.Context) (core.Engine, error)

// Loader memoizes one engine acquisition and owns the idempotent
// registration bookkeeping for custom options and modules.
type Loader struct {
	factory EngineFactory
	logger  logging.Logger

	mu      sync.Mutex
	started bool
	done    chan struct{}
	engine  core.Engine
	err     error

	regMu      sync.Mutex
	registered map[string]struct{}
}

// Option configures a Loader.
type Option func(*Loader)

// WithFactory replaces the default in-memory engine factory, typically with
// one performing the real dynamic module load.
func WithFactory(f EngineFactory) Option {
	return func(l *Loader) {
		if f != nil {
			l.factory = f
		}
	}
}

// WithLogger injects a logger; defaults to NoOpLogger.
func WithLogger(lg logging.Logger) Option {
	return func(l *Loader) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// New constructs a Loader. Without options it lazily provides the in-memory
// engine, which keeps tests and server-side targets free of external load
// machinery.
func New(opts ...Option) *Loader {
	l := &Loader{
		factory: func(context.Context) (core.Engine, error) {
			return engine.NewInMemoryEngine(), nil
		},
		logger:     logging.NoOpLogger{},
		registered: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Acquire returns the shared engine module, triggering the load on first
// call. The load itself is never cancelled by an individual caller; a
// cancelled ctx only abandons the wait. The first load outcome, success or
// error, is cached for every subsequent caller.
func (l *Loader) Acquire(ctx context.Context) (core.Engine, error) {
	l.mu.Lock()
	if !l.started {
		l.started = true
		l.done = make(chan struct{})
		go l.load()
	}
	done := l.done
	l.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-done:
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.engine, l.err
}

func (l *Loader) load() {
	eng, err := l.factory(context.Background())
	l.mu.Lock()
	l.engine, l.err = eng, err
	done := l.done
	l.mu.Unlock()
	if err != nil {
		l.logger.Error("engine load failed", "error", err)
	} else {
		l.logger.Debug("engine module loaded")
	}
	close(done)
}

// Prepare resolves the configured custom module factories (which may perform
// asynchronous work), runs the pre-render hook, then applies the one-time
// global registrations. A factory or hook error is terminal for this
// acquisition; no registration side effects from later steps are applied
// after a failure.
func (l *Loader) Prepare(ctx context.Context, eng core.Engine, cfg config.Resolved) error {
	resolved := make(map[string]any, len(cfg.CustomModules))
	for _, cm := range cfg.CustomModules {
		impl, err := cm.Factory(ctx)
		if err != nil {
			return fmt.Errorf("loader: resolve custom module %s: %w", cm.Path, err)
		}
		resolved[cm.Path] = impl
	}

	if cfg.BeforeRender != nil {
		if err := cfg.BeforeRender(ctx); err != nil {
			return fmt.Errorf("loader: before-render hook: %w", err)
		}
	}

	for _, opt := range cfg.CustomOptions {
		l.registerOption(eng, opt, cfg.SuppressGlobalRegisterWarning)
	}
	for _, cm := range cfg.CustomModules {
		l.registerModule(eng, cm.Path, resolved[cm.Path], cfg.SuppressGlobalRegisterWarning)
	}
	return nil
}

// registerOption imports the existing definition, extends its whitelist and
// re-registers it with overwrite enabled, once per path.
func (l *Loader) registerOption(eng core.Engine, opt config.CustomOption, suppressWarning bool) {
	if !l.claim("option:"+opt.Import, suppressWarning) {
		return
	}
	def, ok := eng.Import(opt.Import)
	if !ok {
		l.logger.Warn("custom option import not found", "path", opt.Import)
		return
	}
	if m, ok := def.(map[string]any); ok {
		m["whitelist"] = opt.Whitelist
		def = m
	}
	eng.Register(opt.Import, def, true, suppressWarning)
	l.logger.Info("custom option registered", "path", opt.Import)
}

func (l *Loader) registerModule(eng core.Engine, path string, impl any, suppressWarning bool) {
	if !l.claim("module:"+path, suppressWarning) {
		return
	}
	eng.Register(path, impl, true, suppressWarning)
	l.logger.Info("custom module registered", "path", path)
}

// claim records a registration path, reporting false (with a suppressible
// warning) when a previous mount already registered it.
func (l *Loader) claim(key string, suppressWarning bool) bool {
	l.regMu.Lock()
	defer l.regMu.Unlock()
	if _, dup := l.registered[key]; dup {
		if !suppressWarning {
			l.logger.Warn("duplicate global registration skipped", "path", key)
		}
		return false
	}
	l.registered[key] = struct{}{}
	return true
}

package engine

import (
	"sync"

	"github.com/hupe1980/richbind/core"
	"github.com/hupe1980/richbind/logging"
)

// InMemoryEngine is a volatile core.Engine implementation holding its
// format/module registry in a process-local map. It is safe for concurrent
// access and best suited for tests, demos and server-side rendering targets.
type InMemoryEngine struct {
	mu       sync.RWMutex
	registry map[string]any
	logger   logging.Logger
}

// Option configures an InMemoryEngine.
type Option func(*InMemoryEngine)

// WithLogger injects a logger; defaults to NoOpLogger.
func WithLogger(l logging.Logger) Option {
	return func(e *InMemoryEngine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewInMemoryEngine constructs an empty in-memory engine.
func NewInMemoryEngine(opts ...Option) *InMemoryEngine {
	e := &InMemoryEngine{registry: make(map[string]any), logger: logging.NoOpLogger{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewEditor constructs a live editor bound to the given container. The
// container is held opaquely; the in-memory engine renders nothing.
func (e *InMemoryEngine) NewEditor(container any, opts core.EditorOptions) (core.Editor, error) {
	ed := newInMemoryEditor(container, opts)
	e.logger.Debug("editor constructed", "editor_id", ed.ID(), "theme", opts.Theme)
	return ed, nil
}

// Import resolves a previously registered definition by path.
func (e *InMemoryEngine) Import(path string) (any, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	def, ok := e.registry[path]
	return def, ok
}

// Register installs a definition under the given path. Without overwrite an
// existing definition is kept; the engine-level duplicate warning honors
// suppressWarning. Idempotent registration tracking is the loader's concern,
// not the engine's.
func (e *InMemoryEngine) Register(path string, def any, overwrite, suppressWarning bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.registry[path]; exists && !overwrite {
		if !suppressWarning {
			e.logger.Warn("overwriting skipped for existing registration", "path", path)
		}
		return
	}
	e.registry[path] = def
}

package engine

import (
	"sync"

	"github.com/hupe1980/richbind/core"
)

// HistoryModule is the in-memory undo history. Silent writes bypass it
// entirely; the binders clear it after seeding initial content.
type HistoryModule struct {
	mu    sync.Mutex
	stack []core.Delta
}

func (h *HistoryModule) record(old core.Delta) {
	h.mu.Lock()
	h.stack = append(h.stack, old.Clone())
	h.mu.Unlock()
}

// Clear discards all recorded history entries.
func (h *HistoryModule) Clear() {
	h.mu.Lock()
	h.stack = nil
	h.mu.Unlock()
}

// Len returns the number of recorded entries.
func (h *HistoryModule) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.stack)
}

// ToolbarModule is the in-memory toolbar surface. The read-only binder
// constructs editors without it.
type ToolbarModule struct {
	enabled bool
}

// Enabled reports whether the toolbar is active.
func (t *ToolbarModule) Enabled() bool { return t.enabled }

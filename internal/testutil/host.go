package testutil

import "sync"

// FakeHost is a test double for the binder host container, recording
// attribute mutations for assertion.
type FakeHost struct {
	interactive bool

	mu    sync.Mutex
	attrs map[string]string
}

// NewFakeHost creates an interactive fake host.
func NewFakeHost() *FakeHost {
	return &FakeHost{interactive: true, attrs: make(map[string]string)}
}

// NewInertHost creates a non-interactive fake host, standing in for a
// server-side rendering target.
func NewInertHost() *FakeHost {
	return &FakeHost{attrs: make(map[string]string)}
}

// Interactive reports whether the host can run a live editor.
func (h *FakeHost) Interactive() bool { return h.interactive }

// Container returns the opaque element handle (the host itself).
func (h *FakeHost) Container() any { return h }

// SetAttribute records a host-level attribute.
func (h *FakeHost) SetAttribute(name, value string) {
	h.mu.Lock()
	h.attrs[name] = value
	h.mu.Unlock()
}

// RemoveAttribute removes a host-level attribute.
func (h *FakeHost) RemoveAttribute(name string) {
	h.mu.Lock()
	delete(h.attrs, name)
	h.mu.Unlock()
}

// Attr returns the current value and presence of an attribute.
func (h *FakeHost) Attr(name string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.attrs[name]
	return v, ok
}

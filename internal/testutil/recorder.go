package testutil

import (
	"sync"

	"github.com/hupe1980/richbind/core"
)

// ValueRecorder captures values pushed through the model-change callback of
// the two-way binding contract.
type ValueRecorder struct {
	mu     sync.Mutex
	values []core.Value
}

// NewValueRecorder creates an empty recorder.
func NewValueRecorder() *ValueRecorder { return &ValueRecorder{} }

// Record is the callback to register with RegisterOnChange.
func (r *ValueRecorder) Record(v core.Value) {
	r.mu.Lock()
	r.values = append(r.values, v)
	r.mu.Unlock()
}

// Values returns a copy of the captured values.
func (r *ValueRecorder) Values() []core.Value {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.Value, len(r.values))
	copy(out, r.values)
	return out
}

// Len returns the number of captured values.
func (r *ValueRecorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}

// Last returns the most recent value, nil when nothing was captured.
func (r *ValueRecorder) Last() core.Value {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.values) == 0 {
		return nil
	}
	return r.values[len(r.values)-1]
}

// TouchRecorder counts touched-callback invocations.
type TouchRecorder struct {
	mu    sync.Mutex
	count int
}

// NewTouchRecorder creates a zeroed recorder.
func NewTouchRecorder() *TouchRecorder { return &TouchRecorder{} }

// Touch is the callback to register with RegisterOnTouched.
func (r *TouchRecorder) Touch() {
	r.mu.Lock()
	r.count++
	r.mu.Unlock()
}

// Count returns the number of invocations.
func (r *TouchRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

package stream

import (
	"sync"
	"time"
)

// Debouncer passes values through to a downstream handler after a quiet
// interval, keeping only the latest value of a burst (trailing edge, at-most
// latest-value semantics). A zero or negative interval disables debouncing
// and invokes the handler synchronously.
type Debouncer[T any] struct {
	interval time.Duration
	fn       func(T)

	mu      sync.Mutex
	timer   *time.Timer
	latest  T
	stopped bool
}

// NewDebouncer wraps fn with a debounce of the given interval.
func NewDebouncer[T any](interval time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{interval: interval, fn: fn}
}

// Call feeds a value into the debouncer. With a positive interval the value
// replaces any pending one and (re)arms the timer; otherwise fn runs
// immediately on the calling goroutine.
func (d *Debouncer[T]) Call(v T) {
	if d.interval <= 0 {
		d.fn(v)
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.latest = v
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *Debouncer[T]) fire() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	v := d.latest
	d.timer = nil
	d.mu.Unlock()
	d.fn(v)
}

// Stop cancels any pending emission and rejects further calls. Used when a
// binder tears down or rebuilds its listener registrations.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Flush emits any pending value immediately. Primarily useful in tests and
// teardown paths that must not lose the trailing event.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if d.stopped || d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer.Stop()
	d.timer = nil
	v := d.latest
	d.mu.Unlock()
	d.fn(v)
}

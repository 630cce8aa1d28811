package stream

import "sync"

// Subscription is the handle returned by Emitter.Subscribe. Unsubscribe
// detaches the handler; calling it more than once is harmless.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Unsubscribe detaches the handler from its emitter.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}

// Emitter is a typed event emitter delivering values to registered handlers
// in subscription order. It is safe for concurrent use; handlers run
// synchronously on the emitting goroutine.
type Emitter[T any] struct {
	mu       sync.RWMutex
	nextID   int
	order    []int
	handlers map[int]func(T)
}

// NewEmitter constructs an empty emitter.
func NewEmitter[T any]() *Emitter[T] {
	return &Emitter[T]{handlers: make(map[int]func(T))}
}

// Subscribe registers a handler and returns its subscription handle.
func (e *Emitter[T]) Subscribe(h func(T)) *Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextID
	e.nextID++
	e.handlers[id] = h
	e.order = append(e.order, id)
	return &Subscription{cancel: func() { e.remove(id) }}
}

func (e *Emitter[T]) remove(id int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.handlers, id)
	for i, v := range e.order {
		if v == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// Emit delivers v to every registered handler in subscription order.
func (e *Emitter[T]) Emit(v T) {
	e.mu.RLock()
	hs := make([]func(T), 0, len(e.order))
	for _, id := range e.order {
		if h, ok := e.handlers[id]; ok {
			hs = append(hs, h)
		}
	}
	e.mu.RUnlock()
	for _, h := range hs {
		h(v)
	}
}

// HasListeners reports whether at least one handler is registered. Binders
// use this as the emission gate: decoding and event construction are skipped
// entirely when nothing is listening.
func (e *Emitter[T]) HasListeners() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.handlers) > 0
}

// Len returns the number of registered handlers.
func (e *Emitter[T]) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.handlers)
}

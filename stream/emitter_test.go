package stream

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitter_DeliversInSubscriptionOrder(t *testing.T) {
	e := NewEmitter[int]()
	var got []string
	e.Subscribe(func(int) { got = append(got, "first") })
	e.Subscribe(func(int) { got = append(got, "second") })

	e.Emit(1)

	assert.Equal(t, []string{"first", "second"}, got)
}

func TestEmitter_HasListenersGate(t *testing.T) {
	e := NewEmitter[string]()
	assert.False(t, e.HasListeners())

	sub := e.Subscribe(func(string) {})
	assert.True(t, e.HasListeners())
	assert.Equal(t, 1, e.Len())

	sub.Unsubscribe()
	assert.False(t, e.HasListeners())

	// Double unsubscribe is harmless.
	sub.Unsubscribe()
	assert.Equal(t, 0, e.Len())
}

func TestEmitter_UnsubscribedHandlerNotInvoked(t *testing.T) {
	e := NewEmitter[int]()
	calls := 0
	sub := e.Subscribe(func(int) { calls++ })
	e.Emit(1)
	sub.Unsubscribe()
	e.Emit(2)
	assert.Equal(t, 1, calls)
}

func TestEmitter_ConcurrentEmitAndSubscribe(t *testing.T) {
	e := NewEmitter[int]()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s := e.Subscribe(func(int) {})
			s.Unsubscribe()
		}()
		go func() {
			defer wg.Done()
			e.Emit(1)
		}()
	}
	wg.Wait()
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	var mu sync.Mutex
	var got []int
	d := NewDebouncer(25*time.Millisecond, func(v int) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
	})

	d.Call(1)
	d.Call(2)
	d.Call(3)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.Equal(t, []int{3}, got, "only the latest value of the burst survives")
	mu.Unlock()
}

func TestDebouncer_ZeroIntervalIsSynchronous(t *testing.T) {
	var got []int
	d := NewDebouncer(0, func(v int) { got = append(got, v) })
	d.Call(1)
	d.Call(2)
	assert.Equal(t, []int{1, 2}, got)
}

func TestDebouncer_StopDropsPending(t *testing.T) {
	fired := make(chan int, 1)
	d := NewDebouncer(10*time.Millisecond, func(v int) { fired <- v })
	d.Call(1)
	d.Stop()

	select {
	case v := <-fired:
		t.Fatalf("stopped debouncer fired with %d", v)
	case <-time.After(50 * time.Millisecond):
	}

	// Calls after Stop are rejected.
	d.Call(2)
	select {
	case v := <-fired:
		t.Fatalf("debouncer fired after Stop with %d", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDebouncer_FlushEmitsPendingImmediately(t *testing.T) {
	var got []int
	d := NewDebouncer(time.Hour, func(v int) { got = append(got, v) })
	d.Call(7)
	d.Flush()
	assert.Equal(t, []int{7}, got)

	// Nothing pending: Flush is a no-op.
	d.Flush()
	assert.Equal(t, []int{7}, got)
}

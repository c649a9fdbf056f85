package emitter

import (
	"sync"

	"github.com/google/uuid"
)

// Listener receives emitted values.
type Listener[T any] func(v T)

type entry[T any] struct {
	id uuid.UUID
	fn Listener[T]
}

// Emitter holds listeners per event name. It is safe for concurrent use.
type Emitter[T any] struct {
	mu        sync.RWMutex
	listeners map[string][]entry[T]
}

// New creates an empty emitter.
func New[T any]() *Emitter[T] {
	return &Emitter[T]{listeners: make(map[string][]entry[T])}
}

// Subscription is a registered listener.
type Subscription struct {
	ID    uuid.UUID
	Event string

	once sync.Once
	off  func() bool
}

// Unsubscribe removes the listener. Only the first call has an effect; it
// reports whether the listener was still registered.
func (s *Subscription) Unsubscribe() bool {
	removed := false
	s.once.Do(func() { removed = s.off() })
	return removed
}

// On registers listener for event. Registering the same function twice adds
// two independent subscriptions.
func (e *Emitter[T]) On(event string, listener Listener[T]) *Subscription {
	id := uuid.New()

	e.mu.Lock()
	e.listeners[event] = append(e.listeners[event], entry[T]{id: id, fn: listener})
	e.mu.Unlock()

	return &Subscription{
		ID:    id,
		Event: event,
		off:   func() bool { return e.Off(event, id) },
	}
}

// Off removes the subscription with the given id. It reports whether one was
// found.
func (e *Emitter[T]) Off(event string, id uuid.UUID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	list := e.listeners[event]
	for i, l := range list {
		if l.id != id {
			continue
		}
		// Copy so snapshots held by in-flight Emit calls stay intact.
		next := make([]entry[T], 0, len(list)-1)
		next = append(next, list[:i]...)
		next = append(next, list[i+1:]...)
		if len(next) == 0 {
			delete(e.listeners, event)
		} else {
			e.listeners[event] = next
		}
		return true
	}
	return false
}

// Emit calls every listener registered for event at the time of the call, in
// registration order, and returns how many were called. Listeners added or
// removed during delivery take effect from the next Emit.
func (e *Emitter[T]) Emit(event string, v T) int {
	e.mu.RLock()
	snapshot := e.listeners[event]
	e.mu.RUnlock()

	for _, l := range snapshot {
		l.fn(v)
	}
	return len(snapshot)
}

// Listeners returns the number of listeners registered for event.
func (e *Emitter[T]) Listeners(event string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners[event])
}

// Events returns the names of events that have at least one listener.
func (e *Emitter[T]) Events() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.listeners))
	for name := range e.listeners {
		names = append(names, name)
	}
	return names
}

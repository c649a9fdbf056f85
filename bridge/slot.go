package bridge

import "github.com/statewalker/statewalker-utils/observability"

// Slot is one pushed item: a value, a completion marker, or an error. Queue
// implementations receive and return slots; they discard a slot they drop by
// calling Discard.
type Slot[T any] struct {
	value   T
	err     error
	done    bool
	receipt *Receipt
	settled func(s *Slot[T], delivered bool)
}

// Value returns the pushed value. It is meaningful only when Terminal is false.
func (s *Slot[T]) Value() T { return s.value }

// Err returns the error carried by an error slot.
func (s *Slot[T]) Err() error { return s.err }

// Terminal reports whether the slot ends the sequence (completion or error).
func (s *Slot[T]) Terminal() bool { return s.done }

// Kind returns "value", "complete" or "error".
func (s *Slot[T]) Kind() string {
	switch {
	case s.err != nil:
		return observability.KindError
	case s.done:
		return observability.KindComplete
	default:
		return observability.KindValue
	}
}

// Receipt returns the slot's settlement future.
func (s *Slot[T]) Receipt() *Receipt { return s.receipt }

// Discard resolves the slot as not delivered. Calling it on a settled slot has
// no effect.
func (s *Slot[T]) Discard() { s.resolve(false) }

func (s *Slot[T]) deliver() { s.resolve(true) }

func (s *Slot[T]) resolve(delivered bool) {
	if s.receipt.resolve(delivered) && s.settled != nil {
		s.settled(s, delivered)
	}
}

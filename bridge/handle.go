package bridge

// Handle is the producer side of a Sequence. All methods are safe for
// concurrent use. Pushes after the sequence has closed are no-ops whose
// receipts settle false immediately.
type Handle[T any] struct {
	seq *Sequence[T]
}

// Publish is the narrow producer interface used by Observe.
type Publish[T any] func(v T) *Receipt

// Next pushes a value.
func (h *Handle[T]) Next(v T) *Receipt {
	return h.seq.push(&Slot[T]{value: v})
}

// Complete pushes the completion marker. Values pushed before it are delivered
// first (subject to the queue policy); the sequence then ends normally.
func (h *Handle[T]) Complete() *Receipt {
	return h.seq.push(&Slot[T]{done: true})
}

// Error pushes a failure. The consumer's pull that reaches it returns err.
// Error(nil) is the same as Complete().
func (h *Handle[T]) Error(err error) *Receipt {
	if err == nil {
		return h.Complete()
	}
	return h.seq.push(&Slot[T]{err: err, done: true})
}

// Publish returns Next as a Publish function.
func (h *Handle[T]) Publish() Publish[T] {
	return h.Next
}

// Done returns a channel that is closed when the sequence starts shutting
// down. Producer goroutines select on it to stop early.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.seq.stop
}

// Closed reports whether further pushes will be discarded.
func (h *Handle[T]) Closed() bool {
	h.seq.mu.Lock()
	defer h.seq.mu.Unlock()
	return h.seq.sealed
}

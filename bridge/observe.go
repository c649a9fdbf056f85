package bridge

// Observe creates a sequence over a reactive cell. The producer publishes
// values through a single function and is never slowed by the consumer: a
// value published before the previous one was pulled replaces it, and the
// replaced value's receipt settles false.
//
// Observe never ends on its own; the consumer stops it with Close. Use
// ObserveHandle when the producer also needs Complete or Error.
func Observe[T any](init func(publish Publish[T]) (Cleanup, error), opts ...Option) *Sequence[T] {
	return New(func(h *Handle[T]) (Cleanup, error) {
		return init(h.Publish())
	}, NewLatest[T], opts...)
}

// ObserveHandle is Observe with the full Handle, so the producer can complete
// or fail the sequence.
func ObserveHandle[T any](init Initializer[T], opts ...Option) *Sequence[T] {
	return New(init, NewLatest[T], opts...)
}

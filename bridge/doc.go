// Package bridge turns push-based producers into lazy, pull-based sequences.
//
// A producer is described by an initializer. On the first call to
// Sequence.Next the initializer runs once, synchronously, and receives a
// Handle with three push operations: Next(value), Complete() and Error(err).
// The producer may call them from any goroutine, at any time. Pushed items are
// buffered by a Queue policy and handed to the single consumer in the order the
// policy dictates.
//
// Every push returns a Receipt, a per-item future that settles true once the
// consumer has taken the value and asked for another one, or false when the
// value is discarded (overwritten, drained at shutdown, or pushed after the
// sequence closed). Waiting on receipts is how a producer applies
// backpressure; ignoring them is fire-and-forget.
//
// The cleanup function returned by the initializer runs exactly once, whether
// the sequence completes, fails, or is abandoned early through Close.
//
// # Policies
//
//   - NewFIFO: unbounded, delivers every value in push order.
//   - NewLatest: single slot; a new value displaces the held one. Used by
//     Observe for reactive cells where a stale value is better than a blocked
//     producer.
//   - NewDropOldest: bounded FIFO that discards the oldest pending value when
//     full.
//
// # Usage
//
//	seq := bridge.Iterate(func(h *bridge.Handle[string]) (bridge.Cleanup, error) {
//	    go func() {
//	        for _, s := range []string{"a", "b", "c"} {
//	            if !h.Next(s).Wait() {
//	                return
//	            }
//	        }
//	        h.Complete()
//	    }()
//	    return nil, nil
//	})
//	defer seq.Close()
//
//	for v, err := range seq.All(ctx) {
//	    ...
//	}
//
// A Sequence satisfies pipeline.Iterator, so it can feed pipeline operators
// directly.
package bridge

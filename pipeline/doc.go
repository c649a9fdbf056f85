// Package pipeline provides composable, pull-based operators over Iterator.
//
// Pipelines are lazy: no work happens until values are pulled via Collect,
// Drain or ForEach. Each stage pulls from the previous stage on demand, so a
// slow consumer slows the whole chain down.
//
// A *bridge.Sequence is an Iterator, so push producers join a pipeline through
// FromPush (every value, in order) or FromObserve (latest value only). Buffer,
// Latest and Merge decouple stages by running the upstream on its own
// goroutine and feeding a bridge sequence.
//
// # Operators
//
// Synchronous:
//
//   - Map: transform each value
//   - Filter: keep values matching a predicate
//   - Take: stop after n values and release the source
//   - Tap: side effect without altering the value
//   - Reduce: accumulate all values into one result
//   - Concat: join pipelines sequentially
//
// Decoupled (one goroutine per upstream):
//
//   - Buffer: read ahead up to n values
//   - Latest: keep only the most recent upstream value
//   - Merge: interleave several pipelines (order NOT preserved)
//
// # Usage
//
//	ticks := pipeline.FromPush(func(h *bridge.Handle[int]) (bridge.Cleanup, error) {
//	    stop := startTicker(h.Next)
//	    return bridge.AsCleanup(stop)
//	})
//	evens := pipeline.Filter(ticks, func(n int) bool { return n%2 == 0 })
//	first, _ := pipeline.Collect(ctx, pipeline.Take(evens, 5))
package pipeline

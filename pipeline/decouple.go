package pipeline

import (
	"context"
	"errors"
	"sync"

	"github.com/eapache/queue"

	"github.com/statewalker/statewalker-utils/bridge"
)

// Buffer reads ahead of the consumer: a goroutine pulls up to size values from
// the upstream before the consumer asks for them. Values are delivered in
// order and none are dropped.
func Buffer[T any](p *Pipeline[T], size int, opts ...bridge.Option) *Pipeline[T] {
	if size <= 0 {
		size = 1
	}
	return decoupled(p, bridge.NewFIFO[T], opts, func(ctx context.Context, source Iterator[T], h *bridge.Handle[T]) {
		// Receipts of values pushed but not yet delivered.
		inflight := queue.New()
		for {
			if inflight.Length() >= size {
				delivered, err := inflight.Remove().(*bridge.Receipt).WaitContext(ctx)
				if err != nil || !delivered {
					return
				}
			}
			val, ok, err := source.Next(ctx)
			if err != nil {
				h.Error(err)
				return
			}
			if !ok {
				h.Complete()
				return
			}
			inflight.Add(h.Next(val))
		}
	})
}

// Latest pulls the upstream as fast as it produces and hands the consumer only
// the most recent value. Intermediate values are dropped; the final upstream
// value is always delivered before the end.
func Latest[T any](p *Pipeline[T], opts ...bridge.Option) *Pipeline[T] {
	return decoupled(p, bridge.NewLatest[T], opts, func(ctx context.Context, source Iterator[T], h *bridge.Handle[T]) {
		var last *bridge.Receipt
		for {
			val, ok, err := source.Next(ctx)
			if err != nil {
				h.Error(err)
				return
			}
			if !ok {
				break
			}
			last = h.Next(val)
		}
		if last != nil {
			if _, err := last.WaitContext(ctx); err != nil {
				return
			}
		}
		h.Complete()
	})
}

// Merge combines pipelines concurrently. Values are yielded as they become
// available from any source; order is NOT preserved. Each source has at most
// one value in flight. The first source error ends the merged pipeline.
func Merge[T any](pipelines ...*Pipeline[T]) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			return bridge.Iterate(func(h *bridge.Handle[T]) (bridge.Cleanup, error) {
				mergeCtx, cancel := context.WithCancel(ctx)
				iters := make([]Iterator[T], len(pipelines))
				for i, p := range pipelines {
					iters[i] = p.create(mergeCtx)
				}

				var wg sync.WaitGroup
				for _, iter := range iters {
					wg.Add(1)
					go func() {
						defer wg.Done()
						forward(mergeCtx, iter, h)
					}()
				}
				go func() {
					wg.Wait()
					h.Complete()
				}()

				return func(context.Context) error {
					cancel()
					wg.Wait()
					var errs []error
					for _, iter := range iters {
						errs = append(errs, iter.Close())
					}
					return errors.Join(errs...)
				}, nil
			}, bridge.WithName("merge"))
		},
	}
}

func forward[T any](ctx context.Context, source Iterator[T], h *bridge.Handle[T]) {
	for {
		val, ok, err := source.Next(ctx)
		if err != nil {
			h.Error(err)
			return
		}
		if !ok {
			return
		}
		delivered, err := h.Next(val).WaitContext(ctx)
		if err != nil || !delivered {
			return
		}
	}
}

// decoupled runs pump on its own goroutine, feeding a bridge sequence built
// with newQueue. Closing the sequence cancels the pump, waits for it to exit
// and closes the upstream.
func decoupled[T any](
	p *Pipeline[T],
	newQueue func() bridge.Queue[T],
	opts []bridge.Option,
	pump func(ctx context.Context, source Iterator[T], h *bridge.Handle[T]),
) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			return bridge.New(func(h *bridge.Handle[T]) (bridge.Cleanup, error) {
				pumpCtx, cancel := context.WithCancel(ctx)
				source := p.create(pumpCtx)
				done := make(chan struct{})
				go func() {
					defer close(done)
					pump(pumpCtx, source, h)
				}()

				return func(context.Context) error {
					cancel()
					<-done
					return source.Close()
				}, nil
			}, newQueue, opts...)
		},
	}
}

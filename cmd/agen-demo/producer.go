package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/statewalker/statewalker-utils/bridge"
	"github.com/statewalker/statewalker-utils/logger"
	"github.com/statewalker/statewalker-utils/pipeline"
)

// randomDelay returns a pause in [0, limit).
func randomDelay(limit time.Duration) time.Duration {
	if limit <= 0 {
		return 0
	}
	return rand.N(limit)
}

// produce returns an initializer that pushes cfg.Count greetings with random
// pauses, then completes. The goroutine stops early once the sequence closes.
func produce(cfg ProducerConfig, log *logger.Logger) bridge.Initializer[string] {
	return func(h *bridge.Handle[string]) (bridge.Cleanup, error) {
		go func() {
			for i := range cfg.Count {
				select {
				case <-h.Done():
					return
				case <-time.After(randomDelay(cfg.MaxDelay)):
				}
				r := h.Next(fmt.Sprintf("Hello - %d", i))
				if cfg.Await && !r.Wait() {
					return
				}
			}
			h.Complete()
		}()

		return func(context.Context) error {
			log.Debug("producer released")
			return nil
		}, nil
	}
}

// Summary reports what the consumer saw.
type Summary struct {
	Received int
	Stats    bridge.Stats
}

// consume pulls every message, pausing randomly after each, and prints it to
// out.
func consume(ctx context.Context, cfg ProducerConfig, seq *bridge.Sequence[string], out func(string)) (Summary, error) {
	var received int
	err := pipeline.ForEach(ctx, pipeline.From[string](seq), func(ctx context.Context, msg string) error {
		received++
		out(msg)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(randomDelay(cfg.MaxDelay)):
			return nil
		}
	})
	return Summary{Received: received, Stats: seq.Stats()}, err
}

// newSequence builds the demo sequence with the configured queue policy.
func newSequence(cfg ProducerConfig, log *logger.Logger, opts ...bridge.Option) (*bridge.Sequence[string], error) {
	newQueue, err := bridge.PolicyFor[string](cfg.Policy, cfg.Capacity)
	if err != nil {
		return nil, err
	}
	return bridge.New(produce(cfg, log), newQueue, opts...), nil
}

package emitter

import (
	"context"

	"github.com/statewalker/statewalker-utils/bridge"
)

// Iterate returns a sequence of every value emitted for event after the first
// pull. Values are buffered until pulled.
func Iterate[T any](em *Emitter[T], event string, opts ...bridge.Option) *bridge.Sequence[T] {
	return bridge.Iterate(func(h *bridge.Handle[T]) (bridge.Cleanup, error) {
		sub := em.On(event, func(v T) { h.Next(v) })
		return unsubscribe(sub), nil
	}, withName(event, opts)...)
}

// Observe returns a sequence of the most recent value emitted for event. Values
// emitted faster than they are pulled are dropped.
func Observe[T any](em *Emitter[T], event string, opts ...bridge.Option) *bridge.Sequence[T] {
	return bridge.Observe(func(publish bridge.Publish[T]) (bridge.Cleanup, error) {
		sub := em.On(event, func(v T) { publish(v) })
		return unsubscribe(sub), nil
	}, withName(event, opts)...)
}

func unsubscribe(sub *Subscription) bridge.Cleanup {
	return func(context.Context) error {
		sub.Unsubscribe()
		return nil
	}
}

func withName(event string, opts []bridge.Option) []bridge.Option {
	return append([]bridge.Option{bridge.WithName("emitter:" + event)}, opts...)
}

package bridge

import (
	"github.com/statewalker/statewalker-utils/logger"
	"github.com/statewalker/statewalker-utils/observability"
)

// DrainOrder decides whether buffered slots are discarded before or after the
// cleanup callback runs when a sequence shuts down.
type DrainOrder int

const (
	// DrainAfterCleanup waits for cleanup to return before discarding buffered
	// slots. Producers blocked on a receipt stay blocked until cleanup is done.
	DrainAfterCleanup DrainOrder = iota
	// DrainBeforeCleanup discards buffered slots first, then runs cleanup.
	DrainBeforeCleanup
)

func (o DrainOrder) String() string {
	if o == DrainBeforeCleanup {
		return "drain-before-cleanup"
	}
	return "drain-after-cleanup"
}

type settings struct {
	name       string
	log        *logger.Logger
	metrics    *observability.BridgeMetrics
	tracing    bool
	drainOrder DrainOrder
}

// Option configures a Sequence.
type Option func(*settings)

// WithName labels the sequence in logs, metrics and spans.
func WithName(name string) Option {
	return func(s *settings) { s.name = name }
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) { s.log = l }
}

// WithMetrics reports slot and lifecycle counts to m.
func WithMetrics(m *observability.BridgeMetrics) Option {
	return func(s *settings) { s.metrics = m }
}

// WithTracing records one span per sequence, from first pull to close.
func WithTracing() Option {
	return func(s *settings) { s.tracing = true }
}

// WithDrainOrder sets the shutdown ordering between cleanup and draining.
func WithDrainOrder(o DrainOrder) Option {
	return func(s *settings) { s.drainOrder = o }
}

func applyOptions(opts []Option) settings {
	s := settings{name: "sequence"}
	for _, opt := range opts {
		opt(&s)
	}
	if s.log == nil {
		s.log = logger.Get("bridge")
	}
	return s
}

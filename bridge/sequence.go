package bridge

import (
	"context"
	"errors"
	"iter"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/statewalker/statewalker-utils/dispose"
	apperrors "github.com/statewalker/statewalker-utils/errors"
	"github.com/statewalker/statewalker-utils/logger"
	"github.com/statewalker/statewalker-utils/observability"
)

// State is the lifecycle state of a Sequence.
type State int32

const (
	StateInit State = iota
	StateRunning
	StateCompleting
	StateErroring
	StateCancelling
	StateClosed
)

var stateNames = [...]string{"init", "running", "completing", "erroring", "cancelling", "closed"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Terminal reasons reported in logs, metrics and spans.
const (
	ReasonCompleted = "completed"
	ReasonErrored   = "errored"
	ReasonCancelled = "cancelled"
	ReasonInvalid   = "invalid"
)

// Initializer starts a producer. It runs once, on the first pull, and may hand
// back a Cleanup. A non-nil error aborts the sequence before any value is
// produced; the first pull returns it as an INVALID_INITIALIZER error.
//
// An initializer must not call Close on its own sequence, nor may the Cleanup
// it returns; both would wait on themselves. Stop early with h.Complete or
// h.Error instead.
type Initializer[T any] func(h *Handle[T]) (Cleanup, error)

// Stats counts slots accepted by a sequence. Pushes rejected after shutdown
// began are not counted. Once the sequence is closed, Pushed equals
// Delivered plus Discarded.
type Stats struct {
	Pushed    int64
	Delivered int64
	Discarded int64
}

// Sequence is a lazy, single-pass, pull-based view of a push producer.
// It is meant for exactly one consumer: Next must not be called concurrently.
// Close may be called from any goroutine.
type Sequence[T any] struct {
	id       string
	init     Initializer[T]
	newQueue func() Queue[T]
	cfg      settings
	log      *logger.Logger

	// startMu serialises the initializer against Close.
	startMu sync.Mutex

	mu      sync.Mutex
	state   State
	queue   Queue[T]
	policy  string
	sealed  bool
	pending *Slot[T]
	cleanup Cleanup

	wake   chan struct{}
	stop   chan struct{}
	closed chan struct{}

	termOnce sync.Once
	span     trace.Span

	pushed    atomic.Int64
	delivered atomic.Int64
	discarded atomic.Int64
}

// New creates a sequence over init, buffering pushes with a queue built by
// newQueue. Nothing runs until the first call to Next.
func New[T any](init Initializer[T], newQueue func() Queue[T], opts ...Option) *Sequence[T] {
	cfg := applyOptions(opts)
	if newQueue == nil {
		newQueue = NewFIFO[T]
	}
	id := uuid.NewString()
	return &Sequence[T]{
		id:       id,
		init:     init,
		newQueue: newQueue,
		cfg:      cfg,
		log: cfg.log.WithFields(logger.Fields(
			logger.FieldSequence, cfg.name,
			logger.FieldSequenceID, id,
		)),
		wake:   make(chan struct{}, 1),
		stop:   make(chan struct{}),
		closed: make(chan struct{}),
	}
}

// Iterate creates a sequence that delivers every pushed value in order.
func Iterate[T any](init Initializer[T], opts ...Option) *Sequence[T] {
	return New(init, NewFIFO[T], opts...)
}

// ID returns the sequence's unique identifier.
func (s *Sequence[T]) ID() string { return s.id }

// State returns the current lifecycle state.
func (s *Sequence[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Stats returns slot counters.
func (s *Sequence[T]) Stats() Stats {
	return Stats{
		Pushed:    s.pushed.Load(),
		Delivered: s.delivered.Load(),
		Discarded: s.discarded.Load(),
	}
}

// Next returns the next value. It returns (zero, false, nil) once the producer
// has completed or the sequence was closed, and (zero, false, err) when the
// producer signalled err. Calling Next settles the previously returned value's
// receipt as delivered.
//
// If ctx ends while Next is waiting, Next returns ctx.Err() and the sequence
// keeps running; call Close to abandon it.
func (s *Sequence[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if err := s.start(ctx); err != nil {
		return zero, false, err
	}

	s.mu.Lock()
	if p := s.pending; p != nil {
		s.pending = nil
		p.deliver()
	}
	for {
		if s.state != StateRunning {
			s.mu.Unlock()
			return zero, false, nil
		}
		if slot, ok := s.queue.Shift(); ok {
			switch {
			case slot.err != nil:
				s.state = StateErroring
				s.mu.Unlock()
				slot.deliver()
				return zero, false, joinErrors(slot.err, s.terminate(ctx, ReasonErrored, slot.err))
			case slot.done:
				s.state = StateCompleting
				s.mu.Unlock()
				slot.deliver()
				return zero, false, s.terminate(ctx, ReasonCompleted, nil)
			default:
				s.pending = slot
				s.mu.Unlock()
				return slot.value, true, nil
			}
		}
		s.mu.Unlock()

		select {
		case <-s.wake:
		case <-s.stop:
		case <-ctx.Done():
			return zero, false, ctx.Err()
		}
		s.mu.Lock()
	}
}

// Close abandons the sequence: the value last returned by Next is discarded,
// the producer's handle stops accepting pushes, cleanup runs, and buffered
// slots are discarded. It returns the cleanup error, if any. Closing a sequence
// that was never pulled does not run its initializer.
//
// Close always returns after teardown has finished. When another Close, or a
// Next handling the producer's end, is already tearing the sequence down, Close
// waits for it and returns nil.
func (s *Sequence[T]) Close() error {
	return s.CloseContext(context.Background())
}

// CloseContext is Close with a context passed to the cleanup callback. When
// it has to wait for a teardown started elsewhere, it gives up with ctx.Err()
// once ctx ends.
func (s *Sequence[T]) CloseContext(ctx context.Context) error {
	s.startMu.Lock()
	s.mu.Lock()
	switch s.state {
	case StateInit:
		s.state = StateClosed
		s.sealed = true
		s.mu.Unlock()
		s.startMu.Unlock()
		s.termOnce.Do(func() {
			close(s.stop)
			close(s.closed)
		})
		return nil
	case StateRunning:
		s.state = StateCancelling
		s.mu.Unlock()
		s.startMu.Unlock()
		return s.terminate(ctx, ReasonCancelled, nil)
	default:
		s.mu.Unlock()
		s.startMu.Unlock()
		select {
		case <-s.closed:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// All returns a range-over-func iterator over the sequence. A producer error
// is yielded once as the final pair. Leaving the loop early closes the
// sequence.
func (s *Sequence[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		defer func() { _ = s.Close() }()
		for {
			v, ok, err := s.Next(ctx)
			if err != nil {
				yield(v, err)
				return
			}
			if !ok || !yield(v, nil) {
				return
			}
		}
	}
}

func (s *Sequence[T]) start(ctx context.Context) error {
	s.startMu.Lock()
	defer s.startMu.Unlock()

	s.mu.Lock()
	if s.state != StateInit {
		s.mu.Unlock()
		return nil
	}
	s.queue = s.newQueue()
	s.policy = policyOf(s.queue)
	s.state = StateRunning
	s.mu.Unlock()

	if s.cfg.tracing {
		_, s.span = observability.StartSequenceSpan(ctx, s.cfg.name, s.id, s.policy)
	}
	s.cfg.metrics.RecordSequenceStart(ctx, s.policy)
	s.log.Debug("sequence started", logger.Fields(logger.FieldPolicy, s.policy))

	var (
		cleanup Cleanup
		err     error
	)
	if s.init == nil {
		err = errors.New("nil initializer")
	} else {
		cleanup, err = s.init(&Handle[T]{seq: s})
	}

	s.mu.Lock()
	if cleanup != nil {
		s.cleanup = dispose.Once(cleanup)
	}
	if err != nil {
		s.state = StateErroring
	}
	s.mu.Unlock()

	if err == nil {
		return nil
	}
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidInitializer) {
		err = apperrors.InvalidInitializer(err)
	}
	return joinErrors(err, s.terminate(ctx, ReasonInvalid, err))
}

func (s *Sequence[T]) push(slot *Slot[T]) *Receipt {
	slot.receipt = newReceipt()

	s.mu.Lock()
	if s.sealed || s.queue == nil {
		s.mu.Unlock()
		slot.Discard()
		return slot.receipt
	}
	slot.settled = s.settled
	s.pushed.Add(1)
	s.queue.Push(slot)
	select {
	case s.wake <- struct{}{}:
	default:
	}
	s.mu.Unlock()

	s.cfg.metrics.RecordPush(context.Background(), s.policy, slot.Kind())
	return slot.receipt
}

func (s *Sequence[T]) settled(slot *Slot[T], delivered bool) {
	if delivered {
		s.delivered.Add(1)
	} else {
		s.discarded.Add(1)
	}
	s.cfg.metrics.RecordResolved(context.Background(), s.policy, slot.Kind(), delivered)
}

// terminate runs the shutdown sequence once. Only the caller that performs it
// receives the cleanup error.
func (s *Sequence[T]) terminate(ctx context.Context, reason string, cause error) error {
	var err error
	s.termOnce.Do(func() {
		err = s.teardown(context.WithoutCancel(ctx), reason, cause)
	})
	return err
}

func (s *Sequence[T]) teardown(ctx context.Context, reason string, cause error) error {
	s.mu.Lock()
	s.sealed = true
	pending := s.pending
	s.pending = nil
	cleanup := s.cleanup
	s.mu.Unlock()
	close(s.stop)

	if pending != nil {
		pending.Discard()
	}

	var cleanupErr error
	if s.cfg.drainOrder == DrainBeforeCleanup {
		s.drain()
		cleanupErr = s.runCleanup(ctx, cleanup)
	} else {
		cleanupErr = s.runCleanup(ctx, cleanup)
		s.drain()
	}

	s.mu.Lock()
	s.state = StateClosed
	s.mu.Unlock()

	stats := s.Stats()
	s.cfg.metrics.RecordSequenceEnd(ctx, s.policy, reason)
	if s.span != nil {
		observability.EndSequenceSpan(s.span, reason, stats.Delivered, stats.Discarded, joinErrors(cause, cleanupErr))
	}
	s.log.Debug("sequence closed", logger.Fields(
		logger.FieldReason, reason,
		logger.FieldDelivered, stats.Delivered,
		logger.FieldDiscarded, stats.Discarded,
	))
	close(s.closed)
	return cleanupErr
}

func (s *Sequence[T]) runCleanup(ctx context.Context, cleanup Cleanup) error {
	if cleanup == nil {
		return nil
	}
	started := time.Now()
	err := cleanup(ctx)
	s.cfg.metrics.RecordCleanup(ctx, s.policy, time.Since(started), err)
	if err == nil {
		return nil
	}
	s.log.Error("sequence cleanup failed", logger.ErrorFields("cleanup", err))
	return apperrors.CleanupFailed(s.cfg.name, err)
}

// drain discards every buffered slot. The handle is sealed by then, so the
// queue cannot grow while it empties.
func (s *Sequence[T]) drain() {
	s.mu.Lock()
	var rest []*Slot[T]
	for s.queue != nil {
		slot, ok := s.queue.Shift()
		if !ok {
			break
		}
		rest = append(rest, slot)
	}
	s.mu.Unlock()

	for _, slot := range rest {
		slot.Discard()
	}
}

func joinErrors(primary, secondary error) error {
	switch {
	case secondary == nil:
		return primary
	case primary == nil:
		return secondary
	default:
		return errors.Join(primary, secondary)
	}
}

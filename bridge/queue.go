package bridge

import (
	"github.com/eapache/queue"

	apperrors "github.com/statewalker/statewalker-utils/errors"
)

// Queue is a buffering policy for pushed slots. A Sequence calls Push and
// Shift while holding its own lock, so implementations need no locking of
// their own. A policy that drops a slot must call Slot.Discard on it.
type Queue[T any] interface {
	// Push buffers a slot.
	Push(s *Slot[T])
	// Shift removes and returns the next slot to deliver.
	Shift() (*Slot[T], bool)
	// Len returns the number of buffered slots.
	Len() int
}

// Policy names accepted by PolicyFor.
const (
	PolicyFIFO       = "fifo"
	PolicyLatest     = "latest"
	PolicyDropOldest = "drop-oldest"
)

// policyNamer is implemented by queues that report a policy name for logs and
// metrics.
type policyNamer interface {
	Policy() string
}

func policyOf[T any](q Queue[T]) string {
	if n, ok := q.(policyNamer); ok {
		return n.Policy()
	}
	return "custom"
}

// fifo delivers every slot in push order. Storage is a ring buffer.
type fifo[T any] struct {
	buf *queue.Queue
}

// NewFIFO returns an unbounded first-in, first-out policy.
func NewFIFO[T any]() Queue[T] {
	return &fifo[T]{buf: queue.New()}
}

func (q *fifo[T]) Push(s *Slot[T]) { q.buf.Add(s) }

func (q *fifo[T]) Shift() (*Slot[T], bool) {
	if q.buf.Length() == 0 {
		return nil, false
	}
	return q.buf.Remove().(*Slot[T]), true
}

func (q *fifo[T]) Len() int { return q.buf.Length() }

func (q *fifo[T]) Policy() string { return PolicyFIFO }

// latest holds at most one undelivered slot.
type latest[T any] struct {
	held *Slot[T]
}

// NewLatest returns a single-slot policy. Pushing while a value is held
// discards the held value, so a slow consumer only sees the most recent one.
// A held completion or error is never displaced; pushes arriving after it are
// discarded instead.
func NewLatest[T any]() Queue[T] {
	return &latest[T]{}
}

func (q *latest[T]) Push(s *Slot[T]) {
	if q.held != nil {
		if q.held.Terminal() {
			s.Discard()
			return
		}
		q.held.Discard()
	}
	q.held = s
}

func (q *latest[T]) Shift() (*Slot[T], bool) {
	s := q.held
	q.held = nil
	return s, s != nil
}

func (q *latest[T]) Len() int {
	if q.held == nil {
		return 0
	}
	return 1
}

func (q *latest[T]) Policy() string { return PolicyLatest }

// dropOldest is a bounded FIFO.
type dropOldest[T any] struct {
	buf      *queue.Queue
	capacity int
	sealed   bool
}

// NewDropOldest returns a FIFO policy holding at most capacity slots. When it
// is full the oldest pending value is discarded to make room. Once a
// completion or error is buffered, later pushes are discarded. A capacity of
// zero or less means unbounded.
func NewDropOldest[T any](capacity int) Queue[T] {
	return &dropOldest[T]{buf: queue.New(), capacity: capacity}
}

func (q *dropOldest[T]) Push(s *Slot[T]) {
	if q.sealed {
		s.Discard()
		return
	}
	if q.capacity > 0 && q.buf.Length() >= q.capacity {
		q.buf.Remove().(*Slot[T]).Discard()
	}
	q.buf.Add(s)
	q.sealed = s.Terminal()
}

func (q *dropOldest[T]) Shift() (*Slot[T], bool) {
	if q.buf.Length() == 0 {
		return nil, false
	}
	return q.buf.Remove().(*Slot[T]), true
}

func (q *dropOldest[T]) Len() int { return q.buf.Length() }

func (q *dropOldest[T]) Policy() string { return PolicyDropOldest }

// PolicyFor returns the queue factory registered under name. Capacity is used
// only by PolicyDropOldest.
func PolicyFor[T any](name string, capacity int) (func() Queue[T], error) {
	switch name {
	case PolicyFIFO, "":
		return NewFIFO[T], nil
	case PolicyLatest:
		return NewLatest[T], nil
	case PolicyDropOldest:
		if capacity <= 0 {
			return nil, apperrors.InvalidInput("capacity", "drop-oldest needs a positive capacity")
		}
		return func() Queue[T] { return NewDropOldest[T](capacity) }, nil
	default:
		return nil, apperrors.InvalidInput("policy", "unknown queue policy "+name).
			WithDetail("allowed", []string{PolicyFIFO, PolicyLatest, PolicyDropOldest})
	}
}

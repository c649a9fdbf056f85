package bridge

import (
	"context"
	"errors"
	"sync"

	apperrors "github.com/statewalker/statewalker-utils/errors"
)

// Receipt is the settlement of one pushed item. It resolves exactly once: true
// when the item was delivered to the consumer, false when it was discarded.
type Receipt struct {
	once      sync.Once
	done      chan struct{}
	delivered bool
}

func newReceipt() *Receipt {
	return &Receipt{done: make(chan struct{})}
}

func settledReceipt(delivered bool) *Receipt {
	r := newReceipt()
	r.resolve(delivered)
	return r
}

// resolve settles the receipt. It reports whether this call was the one that
// settled it.
func (r *Receipt) resolve(delivered bool) bool {
	first := false
	r.once.Do(func() {
		r.delivered = delivered
		close(r.done)
		first = true
	})
	return first
}

// Done returns a channel that is closed once the receipt settles.
func (r *Receipt) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the receipt settles and reports whether the item was
// delivered.
func (r *Receipt) Wait() bool {
	<-r.done
	return r.delivered
}

// WaitContext is Wait bounded by ctx. When ctx ends first it returns false and
// the context error, wrapped in a TIMEOUT AppError when the deadline passed.
// The receipt itself is unaffected.
func (r *Receipt) WaitContext(ctx context.Context) (bool, error) {
	select {
	case <-r.done:
		return r.delivered, nil
	case <-ctx.Done():
		if err := ctx.Err(); errors.Is(err, context.DeadlineExceeded) {
			return false, apperrors.Timeout("receipt wait").WithCause(err)
		}
		return false, ctx.Err()
	}
}

// Settled reports whether the receipt has settled, without blocking.
func (r *Receipt) Settled() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// Delivered reports whether the receipt settled as delivered. It is false
// while the receipt is pending.
func (r *Receipt) Delivered() bool {
	select {
	case <-r.done:
		return r.delivered
	default:
		return false
	}
}

package guard

import "sync"

// Reject handles a call that arrived while the guard was held. depth is the
// number of actions in flight.
type Reject[R any] func(action func() R, depth int) R

// Guard admits at most one action at a time and rejects the rest.
type Guard[R any] struct {
	mu     sync.Mutex
	depth  int
	reject Reject[R]

	rejected int64
}

// New creates a guard. A nil reject drops rejected actions and returns the
// zero value.
func New[R any](reject Reject[R]) *Guard[R] {
	if reject == nil {
		reject = func(func() R, int) R {
			var zero R
			return zero
		}
	}
	return &Guard[R]{reject: reject}
}

// Call runs action unless another action is in flight, in which case it
// returns reject(action, depth). The guard is released even if action panics.
func (g *Guard[R]) Call(action func() R) R {
	g.mu.Lock()
	if g.depth > 0 {
		depth := g.depth
		g.rejected++
		g.mu.Unlock()
		return g.reject(action, depth)
	}
	g.depth++
	g.mu.Unlock()

	defer g.release()
	return action()
}

// Run is Call for actions without a result.
func Run(g *Guard[struct{}], action func()) {
	g.Call(func() struct{} {
		action()
		return struct{}{}
	})
}

// Busy reports whether an action is in flight.
func (g *Guard[R]) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.depth > 0
}

// Rejected returns how many calls were rejected so far.
func (g *Guard[R]) Rejected() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rejected
}

func (g *Guard[R]) release() {
	g.mu.Lock()
	g.depth--
	g.mu.Unlock()
}

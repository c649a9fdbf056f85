package dispose

import (
	"context"
	"errors"
	"sync"
)

// Registry holds disposers until they are disposed individually, unregistered,
// or released together by Cleanup.
type Registry struct {
	mu      sync.Mutex
	entries []*Disposer
}

// Disposer is a registered cleanup callback.
type Disposer struct {
	reg *Registry
	fn  Func
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds fn to the registry and returns its disposer.
func (r *Registry) Register(fn Func) *Disposer {
	d := &Disposer{reg: r, fn: Once(fn)}
	r.mu.Lock()
	r.entries = append(r.entries, d)
	r.mu.Unlock()
	return d
}

// Dispose runs the disposer (at most once) and removes it from its registry.
func (d *Disposer) Dispose(ctx context.Context) error {
	d.reg.remove(d)
	return d.fn(ctx)
}

// Unregister removes d without running it. It reports whether d was still
// registered.
func (r *Registry) Unregister(d *Disposer) bool {
	return r.remove(d)
}

// Len returns the number of registered disposers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Cleanup runs every registered disposer in registration order and empties the
// registry. Errors from individual disposers are joined.
func (r *Registry) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	entries := r.entries
	r.entries = nil
	r.mu.Unlock()

	var errs []error
	for _, d := range entries {
		if err := d.fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) remove(d *Disposer) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e == d {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

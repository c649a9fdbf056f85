package dispose

import (
	"context"
	"fmt"
	"io"
	"sync"

	apperrors "github.com/statewalker/statewalker-utils/errors"
)

// Func releases a resource. It may block until the release is complete.
type Func func(ctx context.Context) error

// Once wraps fn so it runs at most once. Every call after the first returns the
// first call's result. A panic inside fn is recovered and reported as an error.
// Once(nil) returns a Func that does nothing.
func Once(fn Func) Func {
	if fn == nil {
		return func(context.Context) error { return nil }
	}
	var (
		once sync.Once
		err  error
	)
	return func(ctx context.Context) error {
		once.Do(func() {
			err = safeCall(ctx, fn)
		})
		return err
	}
}

func safeCall(ctx context.Context, fn Func) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.Internal(fmt.Errorf("dispose: panic: %v", r))
		}
	}()
	return fn(ctx)
}

// From converts a dynamically typed disposer into a Func. It accepts nil,
// Func, func(context.Context) error, func() error, func() and io.Closer.
// The boolean is false when v is non-nil and none of those shapes; a nil v
// yields a nil Func and true.
func From(v any) (Func, bool) {
	switch fn := v.(type) {
	case nil:
		return nil, true
	case Func:
		return fn, true
	case func(context.Context) error:
		return fn, true
	case func() error:
		return func(context.Context) error { return fn() }, true
	case func():
		return func(context.Context) error {
			fn()
			return nil
		}, true
	case io.Closer:
		return func(context.Context) error { return fn.Close() }, true
	default:
		return nil, false
	}
}

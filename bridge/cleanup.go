package bridge

import (
	"fmt"

	"github.com/statewalker/statewalker-utils/dispose"
	apperrors "github.com/statewalker/statewalker-utils/errors"
)

// Cleanup releases what an initializer acquired. It runs exactly once per
// sequence and may block; the sequence waits for it.
type Cleanup = dispose.Func

// AsCleanup converts a dynamically typed disposer into a Cleanup. It accepts
// nil, func(), func() error, func(context.Context) error and io.Closer. Any
// other value is a usage error with code INVALID_INITIALIZER.
//
//	return bridge.AsCleanup(sub.Unsubscribe)
func AsCleanup(v any) (Cleanup, error) {
	fn, ok := dispose.From(v)
	if !ok {
		return nil, apperrors.InvalidInitializer(fmt.Errorf("initializer returned %T, not a cleanup function", v))
	}
	return fn, nil
}

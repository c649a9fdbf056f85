// Package dispose provides at-most-once cleanup callbacks.
//
// A Func is the disposer shape used across statewalker-utils: it receives a
// context (cleanup may block) and reports failure through an error. Once wraps
// any Func so that repeated or concurrent calls run it a single time, and
// Registry collects disposers so they can be released together.
//
// # Usage
//
//	reg := dispose.NewRegistry()
//	d := reg.Register(func(ctx context.Context) error { return conn.Close() })
//	...
//	d.Dispose(ctx)      // runs the disposer and forgets it
//	reg.Cleanup(ctx)    // runs everything still registered, once
package dispose

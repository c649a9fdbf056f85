// Package emitter is a synchronous publish/subscribe registry keyed by event
// name.
//
// Listeners run on the emitting goroutine in registration order. Iterate and
// Observe expose one event as a pull sequence: the listener is registered on
// the first pull and removed when the sequence closes.
package emitter

// Package errors provides the structured error type shared by statewalker-utils
// packages. Errors carry a machine-readable code, a retryable flag and an
// optional cause so callers can branch on failure kinds with errors.As while
// still reaching the original error through Unwrap.
package errors

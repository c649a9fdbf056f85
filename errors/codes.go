package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Usage errors
const (
	// ErrCodeInvalidInput indicates an argument or configuration value is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInvalidInitializer indicates a sequence initializer failed or returned
	// something that is not a cleanup function.
	ErrCodeInvalidInitializer ErrorCode = "INVALID_INITIALIZER"
)

// Lifecycle errors
const (
	// ErrCodeCleanupFailed indicates a cleanup callback returned an error or panicked.
	ErrCodeCleanupFailed ErrorCode = "CLEANUP_FAILED"
	// ErrCodeTimeout indicates a wait gave up before the awaited event happened.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTimeout:  true,
	ErrCodeInternal: false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

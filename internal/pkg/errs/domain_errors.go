package errs

import "errors"

// Sentinel errors shared by the backend client, the pass view-model and the handlers.
var (
	// Authentication errors: missing, invalid or expired token. No refresh is attempted.
	ErrAuth = errors.New("authentication required")

	// Pass errors
	ErrPassNotFound = errors.New("pass not found")

	// Backend errors
	ErrNetwork  = errors.New("backend unreachable")
	ErrRejected = errors.New("backend rejected request")

	// Validation errors: malformed local input, raised before any backend call
	ErrValidation = errors.New("validation error")
)

// internal/domain/errors.go
package domain

import "errors"

// Validation errors surface to the caller as client errors before any remote
// call happens. Everything else in the transfer engine is either a fatal
// first-page listing failure or a counted per-object failure.
var (
	ErrInvalidFolderPath  = errors.New("folder path must be non-empty and match [A-Za-z0-9-_/]")
	ErrMissingDestination = errors.New("destination bucket is required")
	ErrUnknownOperation   = errors.New("unknown folder operation")

	// ErrSameSourceAndDestination rejects rename/move requests whose resolved
	// destination equals the source. Transplanting a key onto itself succeeds,
	// so the finalize sweep would then delete the only copy.
	ErrSameSourceAndDestination = errors.New("source and destination must differ")
)

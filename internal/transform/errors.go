package transform

import "errors"

// Errors returned by transaction operations.
var (
	// ErrStepFailed indicates a step could not be applied.
	ErrStepFailed = errors.New("step failed")

	// ErrPoisoned indicates the transaction saw an earlier failure and
	// must be discarded.
	ErrPoisoned = errors.New("transaction poisoned by earlier failure")
)

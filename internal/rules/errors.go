package rules

import "errors"

// Errors returned by rules operations.
var (
	// ErrFrozen indicates a registration after the registry was frozen.
	ErrFrozen = errors.New("registry is frozen")

	// ErrNotAnchored indicates an input-rule pattern without a trailing
	// end anchor.
	ErrNotAnchored = errors.New("input rule pattern must end with $")

	// ErrEmptyDelimiter indicates a delimiter rule built with no delimiter.
	ErrEmptyDelimiter = errors.New("delimiter must not be empty")

	// ErrNoHandler indicates a rule registered without a handler.
	ErrNoHandler = errors.New("rule has no handler")
)

package plugin

import "errors"

// Errors returned by the plugin host.
var (
	// ErrClosed indicates use of a closed host.
	ErrClosed = errors.New("plugin host is closed")

	// ErrMissingField indicates a rule declaration without a required field.
	ErrMissingField = errors.New("missing required field")
)

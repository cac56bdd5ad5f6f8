package view

import "errors"

// Errors returned by view synchronization.
var (
	// ErrTornDown indicates a sync against a synchronizer whose view has
	// been destroyed.
	ErrTornDown = errors.New("view is torn down")

	// ErrNilNode indicates a sync with no node.
	ErrNilNode = errors.New("nil node")
)

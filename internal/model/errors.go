package model

import "errors"

// Errors returned by model operations.
var (
	// ErrUnknownType indicates a node or mark type name not present in the schema.
	ErrUnknownType = errors.New("unknown type")

	// ErrUnknownAttr indicates an attribute key not declared for the type.
	ErrUnknownAttr = errors.New("unknown attribute")

	// ErrMissingAttr indicates a required attribute without a default was not supplied.
	ErrMissingAttr = errors.New("missing required attribute")

	// ErrPositionOutOfRange indicates a position outside the document.
	ErrPositionOutOfRange = errors.New("position out of range")

	// ErrRangeInvalid indicates an invalid range (e.g. end < start).
	ErrRangeInvalid = errors.New("invalid range")

	// ErrCrossBlock indicates an inline operation whose endpoints lie in
	// different textblocks.
	ErrCrossBlock = errors.New("range crosses block boundary")

	// ErrNotTextblock indicates an operation that requires a textblock parent.
	ErrNotTextblock = errors.New("parent is not a textblock")

	// ErrInvalidContent indicates content that the node type does not allow.
	ErrInvalidContent = errors.New("invalid content for node type")
)

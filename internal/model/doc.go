// Package model provides the typed document tree for Inkwell.
//
// A document is a tree of immutable Nodes. Each node carries a NodeType
// drawn from a Schema, an attribute map validated against that type, and
// either text content (text nodes) or an ordered sequence of child nodes.
// Inline text may additionally carry Marks (e.g. an inline code span).
//
// # Immutability
//
// Nodes are never mutated in place. Every edit builds a replacement tree
// sharing unchanged subtrees with the original. Callers that hold a *Node
// may read it freely from any goroutine; a "mutation" is always the
// production of a new root, committed through the transform package.
//
// # Positions
//
// A Position is an integer offset into the flattened document. Entering a
// non-text node costs one token, leaving it costs one token, and each text
// rune costs one. Resolve converts a Position into a ResolvedPos that
// exposes the ancestor chain, parent block, and offset within the parent.
// Positions are only meaningful against the document version they were
// resolved for; they must be remapped across edits.
//
// # Schemas
//
// A Schema declares the node and mark types a document may contain,
// together with their attribute specs. Attribute keys are fixed per type:
// supplying an unknown key, or omitting a required key with no default, is
// an error and the offending construction is rejected whole.
package model

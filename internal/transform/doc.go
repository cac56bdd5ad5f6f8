// Package transform treats document changes as first-class values.
//
// A Step is a single atomic change against a specific document version:
// replacing an inline range, adding or removing a mark, swapping a block
// node, or setting node attributes. Applying a step either produces a new
// document or fails; a failed step never produces a partial result.
//
// A Transaction strings steps together against a working document. Each
// step records a StepMap describing how positions move across it, and the
// transaction's Mapping composes them so callers can remap cursors and
// stored positions after a commit. A transaction that has seen any step
// failure is poisoned: Doc returns an error and the caller must discard it.
package transform

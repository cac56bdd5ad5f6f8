// Package rules implements the pattern-triggered transformation engine.
//
// A Rule pairs a regular expression with a handler that rewrites the
// document when the expression matches recently typed or pasted text.
// Rules come in two modes:
//
//   - Input rules fire after a single-character insertion. The match
//     subject is the lookback buffer: the plain text between the nearest
//     block boundary and the cursor, clipped to a configurable window.
//     A rule fires only when its match ends exactly at the cursor.
//
//   - Paste rules fire on bulk insertion. The subject is the pasted text
//     and a rule may match several times, scanned left to right without
//     overlap. Earlier-registered rules claim their ranges first.
//
// Rules live in a Registry. Registration order is precedence; once the
// registry is frozen (when the editor starts taking input) the rule set is
// immutable for the lifetime of the editor.
//
// A successful match is converted into a single transaction by the rule's
// handler. Handlers fail closed: any error (most importantly an attribute
// value outside the target type's domain) discards the whole transform and
// the text is left as typed. No rules engine condition is ever surfaced to
// the user; the visible behavior is always "the pattern did not trigger".
//
// Input-rule evaluation is deferred to let the triggering character land
// in the document first. The Pending token records the document version
// the evaluation was scheduled against; if the version has moved when the
// tick fires, the evaluation is dropped.
package rules

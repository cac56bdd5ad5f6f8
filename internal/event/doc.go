// Package event provides the diagnostics bus for Inkwell.
//
// Engine components publish typed events (a document commit, a rule match,
// a dropped stale evaluation, a view recreation) instead of writing to a
// log. Consumers subscribe by topic; a subscription to a topic also
// receives every event published under a child topic (dot-separated), so
// subscribing to "rule" observes "rule.matched" and "rule.dropped.stale".
//
// Dispatch is synchronous on the publisher's goroutine: the engine is a
// single logical writer and handler ordering must follow commit ordering.
// Handler panics are recovered and counted; a broken consumer must not
// take the editor down.
package event

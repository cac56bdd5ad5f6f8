// Package editor is the facade tying the engine together: the document,
// the cursor, the frozen rule registry, and the deferred input-rule
// evaluation loop.
//
// The editor is a single logical writer. Every mutation is a committed
// transaction that replaces the document root and bumps the version; a
// reader holding a previous root keeps seeing a fully consistent tree.
//
// # Input flow
//
// InsertText commits the insertion immediately, so the typed character is
// in the document before any rule runs. A single-character insertion
// schedules a pending evaluation stamped with the new document version;
// the host calls Flush on its next tick to run it. If the version has
// moved by then — any other edit raced in between — the evaluation is
// dropped silently and a diagnostic event is published.
//
// Paste commits the insertion and evaluates paste rules synchronously
// within the same call, applying matches right to left so earlier match
// positions stay valid. Every rule failure, including attribute
// validation, degrades to "the pattern did not trigger"; no rules engine
// condition ever escapes to the caller as an error.
package editor

// Package view keeps an externally rendered representation of a document
// node synchronized with the node's current state across repeated edits.
//
// The rendering collaborator is abstracted behind Host: the engine asks it
// to create, update, and destroy views and to set or remove single
// attributes, and never touches the rendered surface directly.
//
// # Attribute synchronization
//
// Every sync recomputes the node's rendered attribute set from scratch;
// nothing is patched incrementally inside the model. DiffAttrs compares
// the previous set against the new one and emits the minimal ordered list
// of set/remove operations. When a dynamic attribute disappears (or goes
// null), a caller-supplied static default for that key is restored instead
// of deleting the attribute, so a transient dynamic value can never
// permanently erase a declared static one. DiffAttrs is pure; the single
// side-effecting adapter is the loop that feeds its output to the Host.
//
// # Structural synchronization
//
// Child nodes are matched against the previous children by markup identity
// at the same index first, then by type anywhere, falling back to
// index-based replacement. Matched children keep their view handles, which
// is what preserves cursor and focus continuity in the host.
//
// A Host signalling false from UpdateView means the node's type changed;
// the synchronizer tears the view down and recreates it.
package view

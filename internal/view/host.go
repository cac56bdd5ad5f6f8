package view

import "github.com/dshills/inkwell/internal/model"

// Handle identifies a live view inside a Host.
type Handle string

// Host is the rendering collaborator. Implementations own the actual
// rendered surface; the synchronizer only issues operations through this
// interface.
type Host interface {
	// CreateView materializes a view for the node.
	CreateView(node *model.Node) (Handle, error)

	// UpdateView refreshes an existing view for the node's new state.
	// Returning false signals that the node type changed and the caller
	// must tear the view down and recreate it.
	UpdateView(h Handle, node *model.Node) bool

	// SetAttr sets a single rendered attribute on the view.
	SetAttr(h Handle, key, value string) error

	// RemoveAttr deletes a rendered attribute from the view.
	RemoveAttr(h Handle, key string) error

	// DestroyView releases the view and its resources.
	DestroyView(h Handle) error
}

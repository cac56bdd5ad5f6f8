package backend

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/inkwell/internal/model"
	"github.com/dshills/inkwell/internal/view"
)

// MemoryView is the rendered state of one node in a Memory host.
type MemoryView struct {
	Type  string
	Text  string
	Attrs map[string]string
	Marks []string
}

// Memory implements view.Host entirely in memory.
type Memory struct {
	mu    sync.Mutex
	views map[view.Handle]*MemoryView

	created   int
	destroyed int
}

// NewMemory creates an empty Memory host.
func NewMemory() *Memory {
	return &Memory{views: make(map[view.Handle]*MemoryView)}
}

// CreateView implements view.Host.
func (m *Memory) CreateView(node *model.Node) (view.Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := view.Handle(uuid.NewString())
	m.views[h] = &MemoryView{
		Type:  node.Type.Name,
		Text:  node.Text,
		Attrs: make(map[string]string),
		Marks: markNames(node),
	}
	m.created++
	return h, nil
}

// UpdateView implements view.Host. It refuses updates across node types.
func (m *Memory) UpdateView(h view.Handle, node *model.Node) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.views[h]
	if !ok || v.Type != node.Type.Name {
		return false
	}
	v.Text = node.Text
	v.Marks = markNames(node)
	return true
}

// SetAttr implements view.Host.
func (m *Memory) SetAttr(h view.Handle, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.views[h]
	if !ok {
		return fmt.Errorf("no view %s", h)
	}
	v.Attrs[key] = value
	return nil
}

// RemoveAttr implements view.Host.
func (m *Memory) RemoveAttr(h view.Handle, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.views[h]
	if !ok {
		return fmt.Errorf("no view %s", h)
	}
	delete(v.Attrs, key)
	return nil
}

// DestroyView implements view.Host.
func (m *Memory) DestroyView(h view.Handle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.views[h]; !ok {
		return fmt.Errorf("no view %s", h)
	}
	delete(m.views, h)
	m.destroyed++
	return nil
}

// View returns a copy of the rendered state for a handle, or nil.
func (m *Memory) View(h view.Handle) *MemoryView {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.views[h]
	if !ok {
		return nil
	}
	attrs := make(map[string]string, len(v.Attrs))
	for k, val := range v.Attrs {
		attrs[k] = val
	}
	out := *v
	out.Attrs = attrs
	return &out
}

// Counts returns how many views were created and destroyed.
func (m *Memory) Counts() (created, destroyed int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.created, m.destroyed
}

// Live returns the number of live views.
func (m *Memory) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.views)
}

func markNames(node *model.Node) []string {
	if len(node.Marks) == 0 {
		return nil
	}
	names := make([]string, len(node.Marks))
	for i, mk := range node.Marks {
		names[i] = mk.Type.Name
	}
	return names
}

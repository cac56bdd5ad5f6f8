package rules

import (
	"strings"
	"sync"
)

// Registry holds the ordered rule set for an editor instance. Rules are
// registered during extension initialization; Freeze makes the set
// immutable for the editor's lifetime.
type Registry struct {
	mu     sync.RWMutex
	input  []*Rule
	paste  []*Rule
	frozen bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a rule. Registration order within a mode is precedence.
func (reg *Registry) Register(r *Rule) error {
	if r.Handler == nil {
		return ErrNoHandler
	}
	if r.Mode == ModeInput && !strings.HasSuffix(r.Find.String(), "$") {
		return ErrNotAnchored
	}
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if reg.frozen {
		return ErrFrozen
	}
	switch r.Mode {
	case ModePaste:
		r.index = len(reg.paste)
		reg.paste = append(reg.paste, r)
	default:
		r.index = len(reg.input)
		reg.input = append(reg.input, r)
	}
	return nil
}

// Freeze makes the registry immutable. Idempotent.
func (reg *Registry) Freeze() {
	reg.mu.Lock()
	reg.frozen = true
	reg.mu.Unlock()
}

// Frozen reports whether the registry has been frozen.
func (reg *Registry) Frozen() bool {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.frozen
}

// InputRules returns the input rules in precedence order.
func (reg *Registry) InputRules() []*Rule {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	out := make([]*Rule, len(reg.input))
	copy(out, reg.input)
	return out
}

// PasteRules returns the paste rules in precedence order.
func (reg *Registry) PasteRules() []*Rule {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	out := make([]*Rule, len(reg.paste))
	copy(out, reg.paste)
	return out
}

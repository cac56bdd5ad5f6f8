package view

import (
	"github.com/dshills/inkwell/internal/event"
	"github.com/dshills/inkwell/internal/model"
)

// State is the lifecycle state of a synchronizer.
type State int

const (
	// Uninitialized means no view exists yet.
	Uninitialized State = iota

	// Synced means the view reflects the last synced node state.
	Synced

	// TornDown means the view was destroyed and the synchronizer is dead.
	TornDown
)

// UpdateDecision is the tri-state result of the caller-supplied update
// override.
type UpdateDecision int

const (
	// Reject keeps the previous node state; the view is not touched.
	Reject UpdateDecision = iota

	// Accept adopts the new node state without re-rendering.
	Accept

	// AcceptAndSync adopts the new node state and synchronizes the view.
	AcceptAndSync
)

// UpdateFunc decides how an incoming node update is handled. old is the
// last synced node, next the incoming one.
type UpdateFunc func(old, next *model.Node) UpdateDecision

// Config configures a Synchronizer.
type Config struct {
	// Host renders the views. Required.
	Host Host

	// Render produces the rendered attribute set. DefaultRender when nil.
	Render RenderFunc

	// Static holds caller-supplied static default attributes. A dynamic
	// attribute that disappears falls back to its static value instead of
	// being deleted.
	Static map[string]string

	// OnUpdate is the update override. Defaults to always AcceptAndSync.
	OnUpdate UpdateFunc

	// Bus receives view diagnostics. Optional.
	Bus *event.Bus
}

// Synchronizer manages one node's live view. It is not safe for
// concurrent use; the engine has a single logical writer.
type Synchronizer struct {
	cfg      Config
	state    State
	handle   Handle
	node     *model.Node
	prev     AttrSet
	children []*Synchronizer
}

// New creates a synchronizer in the Uninitialized state.
func New(cfg Config) *Synchronizer {
	if cfg.Render == nil {
		cfg.Render = DefaultRender
	}
	if cfg.OnUpdate == nil {
		cfg.OnUpdate = func(old, next *model.Node) UpdateDecision { return AcceptAndSync }
	}
	return &Synchronizer{cfg: cfg}
}

// State returns the lifecycle state.
func (s *Synchronizer) State() State { return s.state }

// Handle returns the current view handle.
func (s *Synchronizer) Handle() Handle { return s.handle }

// Node returns the last synced node.
func (s *Synchronizer) Node() *model.Node { return s.node }

// Sync brings the view in line with the node's current state.
func (s *Synchronizer) Sync(node *model.Node) error {
	if node == nil {
		return ErrNilNode
	}
	switch s.state {
	case TornDown:
		return ErrTornDown
	case Uninitialized:
		return s.create(node, event.TopicViewCreated)
	}

	switch s.cfg.OnUpdate(s.node, node) {
	case Reject:
		return nil
	case Accept:
		s.node = node
		return nil
	}

	if !s.cfg.Host.UpdateView(s.handle, node) {
		// Type changed: tear down and recreate.
		if err := s.teardownView(); err != nil {
			return err
		}
		return s.create(node, event.TopicViewRecreated)
	}

	next := s.cfg.Render(node)
	if err := s.applyOps(DiffAttrs(s.prev, next, s.cfg.Static)); err != nil {
		return err
	}
	s.prev = next
	if err := s.syncContent(node.Content); err != nil {
		return err
	}
	s.node = node
	return nil
}

// create builds the view and applies static defaults plus the initial
// rendered attribute set.
func (s *Synchronizer) create(node *model.Node, topic event.Topic) error {
	handle, err := s.cfg.Host.CreateView(node)
	if err != nil {
		return err
	}
	s.handle = handle
	s.state = Synced
	s.node = node
	s.prev = nil
	s.children = nil

	// Static defaults first; dynamic values override them.
	for _, key := range sortedStaticKeys(s.cfg.Static) {
		if err := s.cfg.Host.SetAttr(s.handle, key, s.cfg.Static[key]); err != nil {
			return err
		}
	}
	next := s.cfg.Render(node)
	if err := s.applyOps(DiffAttrs(nil, next, s.cfg.Static)); err != nil {
		return err
	}
	s.prev = next

	if err := s.syncContent(node.Content); err != nil {
		return err
	}
	s.publish(topic)
	return nil
}

// applyOps is the single side-effecting adapter between the pure diff and
// the host.
func (s *Synchronizer) applyOps(ops []AttrOp) error {
	for _, op := range ops {
		var err error
		if op.Remove {
			err = s.cfg.Host.RemoveAttr(s.handle, op.Key)
		} else {
			err = s.cfg.Host.SetAttr(s.handle, op.Key, op.Value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// syncContent diffs the child sequence against the managed child views.
// Children matched to an existing view keep their handle; the rest are
// created fresh, and views left unmatched are destroyed.
func (s *Synchronizer) syncContent(content []*model.Node) error {
	used := make([]bool, len(s.children))
	next := make([]*Synchronizer, 0, len(content))

	for i, child := range content {
		matched := -1
		// Same markup at the same index keeps the view outright.
		if i < len(s.children) && !used[i] && s.children[i].node != nil && s.children[i].node.SameMarkup(child) {
			matched = i
		} else {
			// Fall back to the first unused view of the same type.
			for j, prev := range s.children {
				if !used[j] && prev.node != nil && prev.node.Type == child.Type {
					matched = j
					break
				}
			}
		}
		if matched >= 0 {
			used[matched] = true
			if err := s.children[matched].Sync(child); err != nil {
				return err
			}
			next = append(next, s.children[matched])
			continue
		}
		created := New(Config{Host: s.cfg.Host, Render: s.cfg.Render, Bus: s.cfg.Bus})
		if err := created.Sync(child); err != nil {
			return err
		}
		next = append(next, created)
	}

	for j, prev := range s.children {
		if !used[j] {
			if err := prev.Teardown(); err != nil {
				return err
			}
		}
	}
	s.children = next
	return nil
}

// Teardown destroys the view and all child views.
func (s *Synchronizer) Teardown() error {
	if s.state != Synced {
		s.state = TornDown
		return nil
	}
	if err := s.teardownView(); err != nil {
		return err
	}
	s.state = TornDown
	return nil
}

// teardownView destroys children and the view handle but leaves the
// synchronizer reusable for recreation.
func (s *Synchronizer) teardownView() error {
	for _, child := range s.children {
		if err := child.Teardown(); err != nil {
			return err
		}
	}
	s.children = nil
	if err := s.cfg.Host.DestroyView(s.handle); err != nil {
		return err
	}
	s.handle = ""
	s.state = Uninitialized
	return nil
}

func (s *Synchronizer) publish(topic event.Topic) {
	if s.cfg.Bus != nil {
		s.cfg.Bus.Publish(topic, s.handle)
	}
}

func sortedStaticKeys(static map[string]string) []string {
	set := make(AttrSet, len(static))
	for k := range static {
		set[k] = nil
	}
	return sortedAttrKeys(set)
}

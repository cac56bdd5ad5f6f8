package transform

import (
	"github.com/dshills/inkwell/internal/model"
)

// Step is an atomic change against a specific document. The positions a
// step stores only make sense for the document it was created for.
type Step interface {
	// Apply applies the step to the given document, producing either a
	// transformed document or a failure. It never partially applies.
	Apply(doc *model.Node) StepResult
}

// StepResult is the outcome of applying a step: a new document plus the
// position map across the change, or a failure message.
type StepResult struct {
	Doc    *model.Node
	Map    *StepMap
	Failed string
}

// OK creates a successful step result.
func OK(doc *model.Node, m *StepMap) StepResult {
	return StepResult{Doc: doc, Map: m}
}

// Fail creates a failed step result.
func Fail(message string) StepResult {
	return StepResult{Failed: message}
}

// fromEdit wraps a model edit outcome into a StepResult.
func fromEdit(doc *model.Node, err error, m *StepMap) StepResult {
	if err != nil {
		return Fail(err.Error())
	}
	return OK(doc, m)
}

// ReplaceStep replaces the inline range [From, To) with Content. Both
// endpoints must lie in the same textblock.
type ReplaceStep struct {
	From    int
	To      int
	Content []*model.Node
}

// Apply implements Step.
func (s *ReplaceStep) Apply(doc *model.Node) StepResult {
	newDoc, err := doc.ReplaceInline(s.From, s.To, s.Content)
	inserted := 0
	for _, n := range s.Content {
		inserted += n.NodeSize()
	}
	return fromEdit(newDoc, err, NewStepMap(s.From, s.To-s.From, inserted))
}

// AddMarkStep adds Mark across the inline range [From, To).
type AddMarkStep struct {
	From int
	To   int
	Mark *model.Mark
}

// Apply implements Step.
func (s *AddMarkStep) Apply(doc *model.Node) StepResult {
	newDoc, err := doc.ApplyMark(s.From, s.To, s.Mark, true)
	return fromEdit(newDoc, err, IdentityMap)
}

// RemoveMarkStep removes Mark across the inline range [From, To).
type RemoveMarkStep struct {
	From int
	To   int
	Mark *model.Mark
}

// Apply implements Step.
func (s *RemoveMarkStep) Apply(doc *model.Node) StepResult {
	newDoc, err := doc.ApplyMark(s.From, s.To, s.Mark, false)
	return fromEdit(newDoc, err, IdentityMap)
}

// ReplaceBlockStep replaces the node whose opening boundary sits at Pos
// with Node.
type ReplaceBlockStep struct {
	Pos  int
	Node *model.Node
}

// Apply implements Step.
func (s *ReplaceBlockStep) Apply(doc *model.Node) StepResult {
	old := doc.NodeAt(s.Pos)
	if old == nil {
		return Fail("no node at replace position")
	}
	newDoc, err := doc.ReplaceBlock(s.Pos, s.Node)
	return fromEdit(newDoc, err, NewStepMap(s.Pos, old.NodeSize(), s.Node.NodeSize()))
}

// InsertBlockStep inserts Node as a new child at the boundary Pos.
type InsertBlockStep struct {
	Pos  int
	Node *model.Node
}

// Apply implements Step.
func (s *InsertBlockStep) Apply(doc *model.Node) StepResult {
	newDoc, err := doc.InsertBlock(s.Pos, s.Node)
	return fromEdit(newDoc, err, NewStepMap(s.Pos, 0, s.Node.NodeSize()))
}

// AttrStep sets the attributes of the node starting at Pos (-1 addresses
// the document root). Attribute keys are validated against the node type.
type AttrStep struct {
	Pos   int
	Attrs map[string]any
}

// Apply implements Step.
func (s *AttrStep) Apply(doc *model.Node) StepResult {
	newDoc, err := doc.SetNodeAttrs(s.Pos, s.Attrs)
	return fromEdit(newDoc, err, IdentityMap)
}

package transform

import (
	"fmt"

	"github.com/dshills/inkwell/internal/model"
)

// Transaction accumulates steps against a working document. Steps apply
// eagerly; the first failure poisons the transaction so a partial change
// can never be committed.
type Transaction struct {
	before *model.Node
	doc    *model.Node
	steps  []Step
	maps   *Mapping
	err    error
}

// NewTransaction starts a transaction on the given document.
func NewTransaction(doc *model.Node) *Transaction {
	return &Transaction{before: doc, doc: doc, maps: NewMapping()}
}

// Step applies a step to the working document. On failure the transaction
// is poisoned and the error is returned.
func (tr *Transaction) Step(s Step) error {
	if tr.err != nil {
		return ErrPoisoned
	}
	result := s.Apply(tr.doc)
	if result.Failed != "" {
		tr.err = fmt.Errorf("%w: %s", ErrStepFailed, result.Failed)
		return tr.err
	}
	tr.doc = result.Doc
	tr.steps = append(tr.steps, s)
	tr.maps.Append(result.Map)
	return nil
}

// Doc returns the working document, or an error when the transaction is
// poisoned.
func (tr *Transaction) Doc() (*model.Node, error) {
	if tr.err != nil {
		return nil, tr.err
	}
	return tr.doc, nil
}

// Before returns the document the transaction started from.
func (tr *Transaction) Before() *model.Node { return tr.before }

// Mapping returns the composed position mapping across all applied steps.
func (tr *Transaction) Mapping() *Mapping { return tr.maps }

// DocChanged reports whether any step has been applied.
func (tr *Transaction) DocChanged() bool { return len(tr.steps) > 0 }

// StepCount returns the number of applied steps.
func (tr *Transaction) StepCount() int { return len(tr.steps) }

// InsertText inserts text with the given marks at pos.
func (tr *Transaction) InsertText(pos int, text string, marks ...*model.Mark) error {
	if text == "" {
		return nil
	}
	schema := tr.before.Type.Schema
	return tr.Step(&ReplaceStep{From: pos, To: pos, Content: []*model.Node{schema.Text(text, marks...)}})
}

// Delete removes the inline range [from, to).
func (tr *Transaction) Delete(from, to int) error {
	return tr.Step(&ReplaceStep{From: from, To: to})
}

// Replace swaps the inline range [from, to) for the given content.
func (tr *Transaction) Replace(from, to int, content ...*model.Node) error {
	return tr.Step(&ReplaceStep{From: from, To: to, Content: content})
}

// AddMark adds a mark across [from, to).
func (tr *Transaction) AddMark(from, to int, mark *model.Mark) error {
	return tr.Step(&AddMarkStep{From: from, To: to, Mark: mark})
}

// RemoveMark removes a mark across [from, to).
func (tr *Transaction) RemoveMark(from, to int, mark *model.Mark) error {
	return tr.Step(&RemoveMarkStep{From: from, To: to, Mark: mark})
}

// ReplaceBlock swaps the node starting at pos for the given node.
func (tr *Transaction) ReplaceBlock(pos int, node *model.Node) error {
	return tr.Step(&ReplaceBlockStep{Pos: pos, Node: node})
}

// InsertBlock inserts a node as a new child at the boundary pos.
func (tr *Transaction) InsertBlock(pos int, node *model.Node) error {
	return tr.Step(&InsertBlockStep{Pos: pos, Node: node})
}

// SetAttrs sets attributes on the node starting at pos.
func (tr *Transaction) SetAttrs(pos int, attrs map[string]any) error {
	return tr.Step(&AttrStep{Pos: pos, Attrs: attrs})
}

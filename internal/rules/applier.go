package rules

import (
	"unicode/utf8"

	"github.com/dshills/inkwell/internal/model"
	"github.com/dshills/inkwell/internal/transform"
)

// Apply runs a match's handler against the document, producing a
// transaction holding the whole transform. basePos is the document
// position of the subject's first byte. A nil error means the returned
// transaction is complete and safe to commit; any error means the match
// must be treated as no-match and nothing committed.
func Apply(m *Match, doc *model.Node, schema *model.Schema, subject string, basePos int) (*transform.Transaction, error) {
	tr := transform.NewTransaction(doc)
	ctx := &Context{
		Tr:       tr,
		Doc:      doc,
		Schema:   schema,
		Subject:  subject,
		Submatch: m.Submatch,
		BasePos:  basePos,
		From:     basePos + utf8.RuneCountInString(subject[:m.Start()]),
		To:       basePos + utf8.RuneCountInString(subject[:m.End()]),
	}
	if err := m.Rule.Handler(ctx); err != nil {
		return nil, err
	}
	if _, err := tr.Doc(); err != nil {
		// A handler that swallowed a step failure still must not commit.
		return nil, err
	}
	return tr, nil
}

// Pending is a scheduled input-rule evaluation. It is stamped with the
// document version current at scheduling time; the evaluation is only
// valid while the document remains at that version.
type Pending struct {
	// Version is the document version the evaluation targets.
	Version model.VersionID

	// Pos is the cursor position directly after the triggering insertion.
	Pos int
}

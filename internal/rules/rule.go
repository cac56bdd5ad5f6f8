package rules

import (
	"regexp"
	"unicode/utf8"

	"github.com/dshills/inkwell/internal/model"
	"github.com/dshills/inkwell/internal/transform"
)

// Mode partitions rules by trigger.
type Mode int

const (
	// ModeInput fires on single-character insertion.
	ModeInput Mode = iota

	// ModePaste fires on bulk text insertion.
	ModePaste
)

func (m Mode) String() string {
	if m == ModePaste {
		return "paste"
	}
	return "input"
}

// Handler converts a match into steps on the supplied transaction. A
// returned error rejects the whole transform; the match is then treated
// as no-match.
type Handler func(ctx *Context) error

// Rule pairs a pattern with a handler. Rules are immutable after
// registration; their registry index is their precedence.
type Rule struct {
	// Name identifies the rule in diagnostics.
	Name string

	// Find is the pattern. Input-rule patterns must be anchored at the
	// subject end with $.
	Find *regexp.Regexp

	// Mode selects the trigger.
	Mode Mode

	// Handler builds the transform for a match.
	Handler Handler

	// GuardRune, when non-zero, suppresses a match directly followed by
	// this rune. Used by delimiter rules in paste mode, where the regex
	// engine cannot express the trailing guard.
	GuardRune rune

	index int
}

// Index returns the rule's registration index.
func (r *Rule) Index() int { return r.index }

// Match is the transient result of a successful pattern evaluation.
// Offsets are byte offsets into the subject string.
type Match struct {
	Rule    *Rule
	Submatch []int // pairs of byte offsets, as returned by the regexp engine
}

// Start returns the byte offset where the whole match begins.
func (m *Match) Start() int { return m.Submatch[0] }

// End returns the byte offset where the whole match ends.
func (m *Match) End() int { return m.Submatch[1] }

// Context is handed to a rule handler. From and To are document positions
// covering the whole match; Subject and Submatch give the raw regexp view
// for handlers that need group offsets.
type Context struct {
	Tr      *transform.Transaction
	Doc     *model.Node
	Schema  *model.Schema
	Subject string
	Submatch []int

	// BasePos is the document position of the subject's first byte.
	BasePos int

	From int
	To   int
}

// Captures returns the submatch strings, index 0 being the whole match.
// Unmatched groups yield empty strings.
func (c *Context) Captures() []string {
	out := make([]string, len(c.Submatch)/2)
	for i := range out {
		start, end := c.Submatch[2*i], c.Submatch[2*i+1]
		if start < 0 {
			continue
		}
		out[i] = c.Subject[start:end]
	}
	return out
}

// PosOf converts a subject byte offset into a document position.
func (c *Context) PosOf(byteOff int) int {
	return c.BasePos + utf8.RuneCountInString(c.Subject[:byteOff])
}

// GroupRange returns the document positions of a capture group, and false
// when the group did not participate in the match.
func (c *Context) GroupRange(group int) (from, to int, ok bool) {
	if 2*group+1 >= len(c.Submatch) || c.Submatch[2*group] < 0 {
		return 0, 0, false
	}
	return c.PosOf(c.Submatch[2*group]), c.PosOf(c.Submatch[2*group+1]), true
}

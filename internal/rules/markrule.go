package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// AttrsFunc derives attribute values from the capture strings of a match.
// Index 0 is the whole match.
type AttrsFunc func(captures []string) map[string]any

// NewMarkRule builds a delimiter-pair rule that wraps the delimited
// content in the named mark, discarding the delimiters.
//
// The generated pattern requires the character before the opening
// delimiter to not be the delimiter's lead character, which suppresses
// doubled delimiters; the same guard after the closing delimiter is
// enforced by the matcher (GuardRune), since RE2 has no lookahead. Empty
// content and unpaired delimiters never match.
//
// Known limitation: for multi-character delimiters the content class
// excludes every occurrence of the lead character, so content containing
// a lone delimiter character (e.g. "**a*b**") fails to match instead of
// being truncated at the stray character.
func NewMarkRule(name, delimiter, markName string, mode Mode, attrs AttrsFunc) (*Rule, error) {
	if delimiter == "" {
		return nil, ErrEmptyDelimiter
	}
	lead, _ := utf8.DecodeRuneInString(delimiter)
	quoted := regexp.QuoteMeta(delimiter)
	notLead := "[^" + classEscape(lead) + "]"

	pattern := `(?:^|` + notLead + `)(` + quoted + `(` + notLead + `+)` + quoted + `)`
	if mode == ModeInput {
		pattern += "$"
	}
	find, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling rule %s: %w", name, err)
	}
	return &Rule{
		Name:      name,
		Find:      find,
		Mode:      mode,
		GuardRune: lead,
		Handler:   markHandler(markName, attrs),
	}, nil
}

// markHandler replaces the delimited span (capture group 1) with the bare
// content (group 2) carrying the mark. Attribute validation failure
// rejects the whole transform.
func markHandler(markName string, attrs AttrsFunc) Handler {
	return func(ctx *Context) error {
		mt, err := ctx.Schema.MarkType(markName)
		if err != nil {
			return err
		}
		captures := ctx.Captures()
		var attrValues map[string]any
		if attrs != nil {
			attrValues = attrs(captures)
		}
		mark, err := mt.Create(attrValues)
		if err != nil {
			return err
		}
		spanFrom, spanTo, ok := ctx.GroupRange(1)
		if !ok {
			return fmt.Errorf("rule has no delimited span group")
		}
		content := captures[2]
		if content == "" {
			return fmt.Errorf("empty delimited content")
		}
		return ctx.Tr.Replace(spanFrom, spanTo, ctx.Schema.Text(content, mark))
	}
}

// classEscape escapes a rune for use inside a character class.
func classEscape(r rune) string {
	s := string(r)
	if strings.ContainsAny(s, `\]^-`) {
		return `\` + s
	}
	return s
}

package rules

import (
	"testing"
)

func codeRule(t *testing.T, mode Mode) *Rule {
	t.Helper()
	r, err := NewMarkRule("code", "`", "code", mode, nil)
	if err != nil {
		t.Fatalf("building code rule: %v", err)
	}
	return r
}

func strongRule(t *testing.T, mode Mode) *Rule {
	t.Helper()
	r, err := NewMarkRule("strong", "**", "strong", mode, nil)
	if err != nil {
		t.Fatalf("building strong rule: %v", err)
	}
	return r
}

// ============================================================================
// Input Matching
// ============================================================================

func TestMatchInputCodeSpan(t *testing.T) {
	rule := codeRule(t, ModeInput)

	m := MatchInput("say `code`", []*Rule{rule})
	if m == nil {
		t.Fatal("expected a match")
	}
	if m.Rule != rule {
		t.Errorf("matched wrong rule")
	}
	if got := "say `code`"[m.Start():m.End()]; got != " `code`" {
		t.Errorf("matched %q, want %q", got, " `code`")
	}
}

func TestMatchInputRequiresCursorAnchor(t *testing.T) {
	rule := codeRule(t, ModeInput)

	// The span is complete but not at the cursor.
	if m := MatchInput("`code` trailing", []*Rule{rule}); m != nil {
		t.Errorf("match away from cursor must not fire, got %v", m.Submatch)
	}
}

func TestMatchInputBoundaries(t *testing.T) {
	rule := codeRule(t, ModeInput)

	tests := []struct {
		subject string
		want    bool
	}{
		{"`code`", true},
		{"x `code`", true},
		{"`", false},        // lone delimiter
		{"``", false},       // empty content
		{"code`", false},    // unpaired
		{"``code`", false},  // doubled opening delimiter
		{"``code``", false}, // doubled both sides
	}
	for _, tt := range tests {
		got := MatchInput(tt.subject, []*Rule{rule}) != nil
		if got != tt.want {
			t.Errorf("subject %q: matched = %v, want %v", tt.subject, got, tt.want)
		}
	}
}

func TestMatchInputPrecedenceIsRegistrationOrder(t *testing.T) {
	strong := strongRule(t, ModeInput)
	code := codeRule(t, ModeInput)

	// Both could in principle inspect the subject; the first registered
	// rule that matches wins.
	m := MatchInput("a `x`", []*Rule{strong, code})
	if m == nil || m.Rule != code {
		t.Fatalf("expected code rule to win, got %+v", m)
	}
}

func TestMatchInputMultiCharDelimiter(t *testing.T) {
	rule := strongRule(t, ModeInput)

	if m := MatchInput("see **bold**", []*Rule{rule}); m == nil {
		t.Error("expected strong match")
	}
	if m := MatchInput("see **bold*", []*Rule{rule}); m != nil {
		t.Error("half-closed strong span must not match")
	}
}

// Content containing the delimiter's lead character is rejected outright
// instead of being truncated at the stray character. Documented limitation
// of the generated content class; kept as-is.
func TestMatchInputInteriorDelimiterTruncation(t *testing.T) {
	t.Skip("TODO: interior delimiter characters reject the match instead of truncating it")

	rule := strongRule(t, ModeInput)
	m := MatchInput("**a*b**", []*Rule{rule})
	if m == nil {
		t.Fatal("expected truncated match")
	}
}

// ============================================================================
// Paste Matching
// ============================================================================

func TestMatchPasteMultipleSpans(t *testing.T) {
	rule := codeRule(t, ModePaste)

	matches := MatchPaste("`one` and `two`", []*Rule{rule})
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Start() >= matches[1].Start() {
		t.Errorf("matches must be ordered left to right")
	}
}

func TestMatchPasteTrailingGuard(t *testing.T) {
	rule := codeRule(t, ModePaste)

	// The closing delimiter is immediately followed by another delimiter
	// character, which suppresses the match.
	matches := MatchPaste("`one`` rest", []*Rule{rule})
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

func TestMatchPasteNonOverlapping(t *testing.T) {
	code := codeRule(t, ModePaste)
	strong := strongRule(t, ModePaste)

	// The code rule (registered first) claims its span; the strong rule
	// cannot claim an overlapping range.
	matches := MatchPaste("`**x**`", []*Rule{code, strong})
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Rule != code {
		t.Errorf("expected the code rule to claim the span")
	}
}

func TestMatchPasteNoMatchIsNotAnError(t *testing.T) {
	rule := codeRule(t, ModePaste)

	if matches := MatchPaste("plain text", []*Rule{rule}); len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

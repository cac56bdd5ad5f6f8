package rules

import (
	"errors"
	"regexp"
	"testing"

	"github.com/dshills/inkwell/internal/model"
)

func paragraphDoc(t *testing.T, s *model.Schema, text string) *model.Node {
	t.Helper()
	para, err := s.Node("paragraph", nil, s.Text(text))
	if err != nil {
		t.Fatalf("building paragraph: %v", err)
	}
	doc, err := s.Node("doc", nil, para)
	if err != nil {
		t.Fatalf("building doc: %v", err)
	}
	return doc
}

// ============================================================================
// Registry
// ============================================================================

func TestRegistryOrderAndFreeze(t *testing.T) {
	reg := NewRegistry()

	a := codeRule(t, ModeInput)
	b := strongRule(t, ModeInput)
	p := codeRule(t, ModePaste)

	for _, r := range []*Rule{a, b, p} {
		if err := reg.Register(r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if got := reg.InputRules(); len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("input rules out of order: %v", got)
	}
	if got := reg.PasteRules(); len(got) != 1 || got[0] != p {
		t.Errorf("paste rules wrong: %v", got)
	}

	reg.Freeze()
	if err := reg.Register(codeRule(t, ModeInput)); !errors.Is(err, ErrFrozen) {
		t.Errorf("expected ErrFrozen, got %v", err)
	}
}

func TestRegistryRejectsUnanchoredInputRule(t *testing.T) {
	reg := NewRegistry()
	r := &Rule{
		Name:    "bad",
		Find:    regexp.MustCompile("x"),
		Mode:    ModeInput,
		Handler: func(ctx *Context) error { return nil },
	}
	if err := reg.Register(r); !errors.Is(err, ErrNotAnchored) {
		t.Errorf("expected ErrNotAnchored, got %v", err)
	}
}

// ============================================================================
// Mark Transform
// ============================================================================

func TestApplyCodeSpan(t *testing.T) {
	s := model.BasicSchema()
	doc := paragraphDoc(t, s, "`code`")
	rule := codeRule(t, ModeInput)

	subject := "`code`"
	m := MatchInput(subject, []*Rule{rule})
	if m == nil {
		t.Fatal("expected a match")
	}

	tr, err := Apply(m, doc, s, subject, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := tr.Doc()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	para := got.Child(0)
	if para.ChildCount() != 1 {
		t.Fatalf("expected a single text child, got %d", para.ChildCount())
	}
	text := para.Child(0)
	if text.Text != "code" {
		t.Errorf("text = %q, want %q (delimiters discarded)", text.Text, "code")
	}
	code, _ := s.Mark("code", nil)
	if !model.ContainsMark(text.Marks, code) {
		t.Errorf("expected code mark on content")
	}
}

func TestApplyPreservesSurroundingText(t *testing.T) {
	s := model.BasicSchema()
	doc := paragraphDoc(t, s, "say `hi` ok")
	rule := codeRule(t, ModeInput)

	// Cursor right after the closing delimiter: subject is the lookback.
	subject := "say `hi`"
	m := MatchInput(subject, []*Rule{rule})
	if m == nil {
		t.Fatal("expected a match")
	}

	tr, err := Apply(m, doc, s, subject, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := tr.Doc()
	if got.TextContent() != "say hi ok" {
		t.Errorf("text = %q, want %q", got.TextContent(), "say hi ok")
	}
}

func TestApplyInvalidAttrsRejectsWholeTransform(t *testing.T) {
	s := model.BasicSchema()
	doc := paragraphDoc(t, s, "`x`")

	rule, err := NewMarkRule("bad-attrs", "`", "code", ModeInput, func(captures []string) map[string]any {
		return map[string]any{"no_such_attr": captures[2]}
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	subject := "`x`"
	m := MatchInput(subject, []*Rule{rule})
	if m == nil {
		t.Fatal("expected a match")
	}
	if _, err := Apply(m, doc, s, subject, 1); err == nil {
		t.Fatal("expected attribute validation to reject the transform")
	}
	// The original document is untouched.
	if doc.TextContent() != "`x`" {
		t.Errorf("document mutated on rejected transform: %q", doc.TextContent())
	}
}

func TestApplyUnknownMarkTypeFailsClosed(t *testing.T) {
	s := model.BasicSchema()
	doc := paragraphDoc(t, s, "`x`")

	rule, err := NewMarkRule("missing", "`", "no_such_mark", ModeInput, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := MatchInput("`x`", []*Rule{rule})
	if m == nil {
		t.Fatal("expected a match")
	}
	if _, err := Apply(m, doc, s, "`x`", 1); err == nil {
		t.Error("expected unknown mark type to reject the transform")
	}
}

// ============================================================================
// Block Transforms
// ============================================================================

func TestApplyHeadingRule(t *testing.T) {
	s := model.BasicSchema()
	doc := paragraphDoc(t, s, "## ")

	all, err := BuiltinRules()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var inputRules []*Rule
	for _, r := range all {
		if r.Mode == ModeInput {
			inputRules = append(inputRules, r)
		}
	}

	subject := "## "
	m := MatchInput(subject, inputRules)
	if m == nil {
		t.Fatal("expected heading match")
	}
	tr, err := Apply(m, doc, s, subject, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := tr.Doc()
	block := got.Child(0)
	if block.Type.Name != "heading" {
		t.Fatalf("block type = %s, want heading", block.Type.Name)
	}
	if block.Attrs["level"] != 2 {
		t.Errorf("level = %v, want 2", block.Attrs["level"])
	}
	if block.TextContent() != "" {
		t.Errorf("marker text must be deleted, got %q", block.TextContent())
	}
}

func TestApplyBulletListRule(t *testing.T) {
	s := model.BasicSchema()
	doc := paragraphDoc(t, s, "- ")

	rule := NewWrapRule("bullet_list", bulletFind, "bullet_list", "list_item")
	subject := "- "
	m := MatchInput(subject, []*Rule{rule})
	if m == nil {
		t.Fatal("expected bullet match")
	}
	tr, err := Apply(m, doc, s, subject, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := tr.Doc()
	list := got.Child(0)
	if list.Type.Name != "bullet_list" {
		t.Fatalf("block type = %s, want bullet_list", list.Type.Name)
	}
	item := list.Child(0)
	if item.Type.Name != "list_item" || item.Child(0).Type.Name != "paragraph" {
		t.Errorf("expected bullet_list(list_item(paragraph)), got %s(%s)", item.Type.Name, item.Child(0).Type.Name)
	}
}

func TestApplyTaskItemRule(t *testing.T) {
	s := model.BasicSchema()
	doc := paragraphDoc(t, s, "[x] ")

	rule := NewTextblockRule("task_item", taskFind, "task_item", func(captures []string) map[string]any {
		return map[string]any{"checked": captures[1] != " "}
	})
	subject := "[x] "
	m := MatchInput(subject, []*Rule{rule})
	if m == nil {
		t.Fatal("expected task match")
	}
	tr, err := Apply(m, doc, s, subject, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := tr.Doc()
	if got.Child(0).Type.Name != "task_item" {
		t.Fatalf("block type = %s, want task_item", got.Child(0).Type.Name)
	}
	if got.Child(0).Attrs["checked"] != true {
		t.Errorf("checked = %v, want true", got.Child(0).Attrs["checked"])
	}
}

package view_test

import (
	"testing"

	"github.com/dshills/inkwell/internal/event"
	"github.com/dshills/inkwell/internal/model"
	"github.com/dshills/inkwell/internal/view"
	"github.com/dshills/inkwell/internal/view/backend"
)

func mustBuild(t *testing.T, s *model.Schema, name string, attrs map[string]any, content ...*model.Node) *model.Node {
	t.Helper()
	n, err := s.Node(name, attrs, content...)
	if err != nil {
		t.Fatalf("building %s: %v", name, err)
	}
	return n
}

// ============================================================================
// Lifecycle
// ============================================================================

func TestSyncCreatesViewOnFirstRender(t *testing.T) {
	s := model.BasicSchema()
	host := backend.NewMemory()
	sync := view.New(view.Config{Host: host})

	if sync.State() != view.Uninitialized {
		t.Fatalf("state = %v, want view.Uninitialized", sync.State())
	}

	node := mustBuild(t, s, "heading", map[string]any{"level": 2}, s.Text("hi"))
	if err := sync.Sync(node); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sync.State() != view.Synced {
		t.Errorf("state = %v, want view.Synced", sync.State())
	}
	v := host.View(sync.Handle())
	if v == nil {
		t.Fatal("expected a live view")
	}
	if v.Attrs["level"] != "2" {
		t.Errorf("level attr = %q, want %q", v.Attrs["level"], "2")
	}
}

func TestSyncRecreatesOnTypeChange(t *testing.T) {
	s := model.BasicSchema()
	host := backend.NewMemory()
	bus := event.NewBus()
	recreated := 0
	bus.Subscribe(event.TopicViewRecreated, func(ev event.Event) { recreated++ })

	sync := view.New(view.Config{Host: host, Bus: bus})
	para := mustBuild(t, s, "paragraph", nil, s.Text("x"))
	if err := sync.Sync(para); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := sync.Handle()

	heading := mustBuild(t, s, "heading", nil, s.Text("x"))
	if err := sync.Sync(heading); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sync.Handle() == first {
		t.Errorf("expected a fresh handle after type change")
	}
	if host.View(first) != nil {
		t.Errorf("old view must be destroyed")
	}
	if recreated != 1 {
		t.Errorf("recreated events = %d, want 1", recreated)
	}
}

func TestSyncAfterTeardownFails(t *testing.T) {
	s := model.BasicSchema()
	host := backend.NewMemory()
	sync := view.New(view.Config{Host: host})
	node := mustBuild(t, s, "paragraph", nil)

	if err := sync.Sync(node); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sync.Teardown(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sync.Sync(node); err != view.ErrTornDown {
		t.Errorf("expected view.ErrTornDown, got %v", err)
	}
	if host.Live() != 0 {
		t.Errorf("live views = %d, want 0", host.Live())
	}
}

// ============================================================================
// Attribute Preservation
// ============================================================================

func TestStaticDefaultSurvivesDynamicRemoval(t *testing.T) {
	s := model.BasicSchema()
	host := backend.NewMemory()

	// Render the heading level as a "class" attribute only when level > 1.
	render := func(n *model.Node) view.AttrSet {
		out := view.AttrSet{}
		if lvl, ok := n.Attrs["level"].(int); ok && lvl > 1 {
			out["class"] = "big"
		}
		return out
	}
	sync := view.New(view.Config{
		Host:   host,
		Render: render,
		Static: map[string]string{"class": "foo"},
	})

	big := mustBuild(t, s, "heading", map[string]any{"level": 2})
	if err := sync.Sync(big); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := host.View(sync.Handle()).Attrs["class"]; got != "big" {
		t.Fatalf("class = %q, want %q", got, "big")
	}

	// The dynamic value disappears; the static default must come back,
	// never a deletion.
	small := mustBuild(t, s, "heading", map[string]any{"level": 1})
	if err := sync.Sync(small); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := host.View(sync.Handle()).Attrs["class"]
	if !ok {
		t.Fatal("class attribute was deleted; want static fallback")
	}
	if got != "foo" {
		t.Errorf("class = %q, want %q", got, "foo")
	}
}

func TestSyncIdempotentOnUnchangedNode(t *testing.T) {
	s := model.BasicSchema()
	host := backend.NewMemory()
	sync := view.New(view.Config{Host: host})
	node := mustBuild(t, s, "heading", map[string]any{"level": 3}, s.Text("t"))

	if err := sync.Sync(node); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := host.View(sync.Handle())

	// Re-render twice with unchanged state.
	for i := 0; i < 2; i++ {
		if err := sync.Sync(node); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	after := host.View(sync.Handle())
	if len(after.Attrs) != len(before.Attrs) || after.Attrs["level"] != before.Attrs["level"] {
		t.Errorf("attrs drifted: before %v, after %v", before.Attrs, after.Attrs)
	}
}

func TestCheckedToggleRoundTrip(t *testing.T) {
	s := model.BasicSchema()
	host := backend.NewMemory()
	sync := view.New(view.Config{Host: host})

	unchecked := mustBuild(t, s, "task_item", map[string]any{"checked": false}, s.Text("t"))
	if err := sync.Sync(unchecked); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	initial := host.View(sync.Handle()).Attrs["checked"]

	checked := mustBuild(t, s, "task_item", map[string]any{"checked": true}, s.Text("t"))
	if err := sync.Sync(checked); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := host.View(sync.Handle()).Attrs["checked"]; got != "true" {
		t.Fatalf("checked = %q, want %q", got, "true")
	}

	if err := sync.Sync(unchecked); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := host.View(sync.Handle()).Attrs["checked"]; got != initial {
		t.Errorf("round trip: checked = %q, want %q", got, initial)
	}
}

// ============================================================================
// Update Override
// ============================================================================

func TestUpdateOverrideDecisions(t *testing.T) {
	s := model.BasicSchema()
	host := backend.NewMemory()

	decision := view.AcceptAndSync
	sync := view.New(view.Config{
		Host:     host,
		OnUpdate: func(old, next *model.Node) view.UpdateDecision { return decision },
	})

	one := mustBuild(t, s, "heading", map[string]any{"level": 1}, s.Text("a"))
	if err := sync.Sync(one); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Reject: node state is kept.
	decision = view.Reject
	two := mustBuild(t, s, "heading", map[string]any{"level": 2}, s.Text("a"))
	if err := sync.Sync(two); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sync.Node() != one {
		t.Errorf("Reject must keep the previous node")
	}

	// Accept: node adopted, view untouched.
	decision = view.Accept
	if err := sync.Sync(two); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sync.Node() != two {
		t.Errorf("Accept must adopt the new node")
	}
	if got := host.View(sync.Handle()).Attrs["level"]; got != "1" {
		t.Errorf("Accept must leave the view untouched, level = %q", got)
	}

	// view.AcceptAndSync: view catches up.
	decision = view.AcceptAndSync
	if err := sync.Sync(two); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := host.View(sync.Handle()).Attrs["level"]; got != "2" {
		t.Errorf("level = %q, want %q", got, "2")
	}
}

// ============================================================================
// Content Diffing
// ============================================================================

func TestContentSyncPreservesHandlesByType(t *testing.T) {
	s := model.BasicSchema()
	host := backend.NewMemory()
	sync := view.New(view.Config{Host: host})

	docV1 := mustBuild(t, s, "doc", nil,
		mustBuild(t, s, "paragraph", nil, s.Text("one")),
		mustBuild(t, s, "paragraph", nil, s.Text("two")),
	)
	if err := sync.Sync(docV1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	created, _ := host.Counts()

	// Same shape, different text: every view is reused.
	docV2 := mustBuild(t, s, "doc", nil,
		mustBuild(t, s, "paragraph", nil, s.Text("ONE")),
		mustBuild(t, s, "paragraph", nil, s.Text("two")),
	)
	if err := sync.Sync(docV2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if after, _ := host.Counts(); after != created {
		t.Errorf("created %d new views on a reorderless update", after-created)
	}
}

func TestContentSyncReplacesOnTypeMismatch(t *testing.T) {
	s := model.BasicSchema()
	host := backend.NewMemory()
	sync := view.New(view.Config{Host: host})

	docV1 := mustBuild(t, s, "doc", nil,
		mustBuild(t, s, "paragraph", nil, s.Text("x")),
	)
	if err := sync.Sync(docV1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	docV2 := mustBuild(t, s, "doc", nil,
		mustBuild(t, s, "heading", nil, s.Text("x")),
	)
	if err := sync.Sync(docV2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, destroyed := host.Counts()
	if destroyed == 0 {
		t.Errorf("expected the paragraph view to be destroyed")
	}
}

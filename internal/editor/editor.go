package editor

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/dshills/inkwell/internal/config"
	"github.com/dshills/inkwell/internal/event"
	"github.com/dshills/inkwell/internal/model"
	"github.com/dshills/inkwell/internal/plugin"
	"github.com/dshills/inkwell/internal/rules"
	"github.com/dshills/inkwell/internal/transform"
)

// DocApplied is the payload of a doc.applied event.
type DocApplied struct {
	Version model.VersionID
	Steps   int
}

// RuleFired is the payload of a rule.matched event.
type RuleFired struct {
	Rule string
	Mode rules.Mode
}

// RuleDropped is the payload of a rule.dropped.stale event.
type RuleDropped struct {
	Scheduled model.VersionID
	Current   model.VersionID
}

// RuleRejected is the payload of a rule.rejected.attrs event.
type RuleRejected struct {
	Rule string
	Err  error
}

// Editor owns a document and runs pattern rules against edits. All
// methods are safe for concurrent use; mutations serialize on a single
// writer lock while readers may hold any previously returned document
// root indefinitely.
type Editor struct {
	mu       sync.RWMutex
	schema   *model.Schema
	doc      *model.Node
	cursor   int
	version  model.VersionID
	registry *rules.Registry
	bus      *event.Bus
	scanWin  int
	pending  *rules.Pending
	plug     *plugin.Host
}

// Option configures an Editor.
type Option func(*Editor)

// WithBus attaches an event bus for engine diagnostics.
func WithBus(bus *event.Bus) Option {
	return func(e *Editor) { e.bus = bus }
}

// WithScanWindow bounds the input-rule lookback buffer, in runes.
func WithScanWindow(runes int) Option {
	return func(e *Editor) { e.scanWin = runes }
}

// WithRegistry supplies a rule registry. The editor freezes it.
func WithRegistry(reg *rules.Registry) Option {
	return func(e *Editor) { e.registry = reg }
}

// WithDoc supplies the starting document.
func WithDoc(doc *model.Node) Option {
	return func(e *Editor) { e.doc = doc }
}

// New creates an editor over the given schema. Without WithDoc the
// document starts as a single empty paragraph with the cursor inside it.
func New(schema *model.Schema, opts ...Option) (*Editor, error) {
	e := &Editor{
		schema:  schema,
		scanWin: config.DefaultScanWindow,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = rules.NewRegistry()
	}
	e.registry.Freeze()
	if e.doc == nil {
		para, err := schema.Node("paragraph", nil)
		if err != nil {
			return nil, err
		}
		doc, err := schema.TopType().Create(nil, para)
		if err != nil {
			return nil, err
		}
		e.doc = doc
		e.cursor = 1
	}
	return e, nil
}

// NewFromConfig assembles an editor from engine settings: built-in rules
// filtered by the config's toggles, plus any Lua rule scripts found in
// the plugin directory. The caller must Close the editor to release the
// script host.
func NewFromConfig(schema *model.Schema, cfg *config.Config, opts ...Option) (*Editor, error) {
	reg := rules.NewRegistry()
	builtin, err := rules.BuiltinRules()
	if err != nil {
		return nil, err
	}
	for _, r := range builtin {
		if !cfg.RuleEnabled(r.Name) {
			continue
		}
		if err := reg.Register(r); err != nil {
			return nil, fmt.Errorf("builtin rule %s: %w", r.Name, err)
		}
	}
	var plug *plugin.Host
	if cfg.PluginDir != "" {
		plug = plugin.NewHost(reg)
		if err := plug.LoadDir(cfg.PluginDir); err != nil {
			plug.Close()
			return nil, err
		}
	}
	opts = append([]Option{WithRegistry(reg), WithScanWindow(cfg.ScanWindow)}, opts...)
	e, err := New(schema, opts...)
	if err != nil {
		if plug != nil {
			plug.Close()
		}
		return nil, err
	}
	e.plug = plug
	return e, nil
}

// Close releases resources held by the editor.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.plug != nil {
		e.plug.Close()
		e.plug = nil
	}
}

// Doc returns the current document root.
func (e *Editor) Doc() *model.Node {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc
}

// Version returns the current document version.
func (e *Editor) Version() model.VersionID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.version
}

// Cursor returns the cursor position.
func (e *Editor) Cursor() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursor
}

// SetCursor moves the cursor. Moving the cursor cancels any pending
// input-rule evaluation.
func (e *Editor) SetCursor(pos int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.doc.Resolve(pos); err != nil {
		return err
	}
	e.cursor = pos
	e.pending = nil
	return nil
}

// Registry returns the editor's frozen rule registry.
func (e *Editor) Registry() *rules.Registry { return e.registry }

// InsertText inserts text at the cursor and advances the cursor past it.
// A single-character insertion schedules an input-rule evaluation for
// the next Flush; anything longer cancels pending evaluation instead.
func (e *Editor) InsertText(text string) error {
	if text == "" {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	tr := transform.NewTransaction(e.doc)
	if err := tr.InsertText(e.cursor, text); err != nil {
		return err
	}
	if err := e.commit(tr); err != nil {
		return err
	}
	e.cursor += utf8.RuneCountInString(text)
	if utf8.RuneCountInString(text) == 1 {
		e.pending = &rules.Pending{Version: e.version, Pos: e.cursor}
	} else {
		e.pending = nil
	}
	return nil
}

// Flush runs the pending input-rule evaluation, if any. An evaluation
// whose version no longer matches the document is dropped. Rule failures
// of any kind degrade to no-match; Flush only errors when the document
// itself cannot be read.
func (e *Editor) Flush() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.pending
	e.pending = nil
	if p == nil {
		return nil
	}
	if p.Version != e.version {
		e.publish(event.TopicRuleDroppedStale, RuleDropped{Scheduled: p.Version, Current: e.version})
		return nil
	}
	subject, err := e.doc.TextBefore(p.Pos, e.scanWin)
	if err != nil {
		return err
	}
	if subject == "" {
		return nil
	}
	m := rules.MatchInput(subject, e.registry.InputRules())
	if m == nil {
		return nil
	}
	basePos := p.Pos - utf8.RuneCountInString(subject)
	tr, err := rules.Apply(m, e.doc, e.schema, subject, basePos)
	if err != nil {
		e.publish(event.TopicRuleRejectedAttrs, RuleRejected{Rule: m.Rule.Name, Err: err})
		return nil
	}
	if !tr.DocChanged() {
		return nil
	}
	if err := e.commit(tr); err != nil {
		return err
	}
	e.publish(event.TopicRuleMatched, RuleFired{Rule: m.Rule.Name, Mode: rules.ModeInput})
	e.cursor = e.textPos(tr.Mapping().MapPos(p.Pos, 1))
	return nil
}

// Paste inserts text at the cursor and evaluates paste rules against the
// pasted text synchronously. Each match applies as its own transaction;
// a failing match is skipped and the rest still apply. The cursor ends
// after the pasted content.
func (e *Editor) Paste(text string) error {
	if text == "" {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	start := e.cursor
	tr := transform.NewTransaction(e.doc)
	if err := tr.InsertText(start, text); err != nil {
		return err
	}
	if err := e.commit(tr); err != nil {
		return err
	}
	end := start + utf8.RuneCountInString(text)

	// Apply right to left so earlier match positions survive later edits.
	matches := rules.MatchPaste(text, e.registry.PasteRules())
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		mtr, err := rules.Apply(m, e.doc, e.schema, text, start)
		if err != nil {
			e.publish(event.TopicRuleRejectedAttrs, RuleRejected{Rule: m.Rule.Name, Err: err})
			continue
		}
		if !mtr.DocChanged() {
			continue
		}
		if err := e.commit(mtr); err != nil {
			return err
		}
		e.publish(event.TopicRuleMatched, RuleFired{Rule: m.Rule.Name, Mode: rules.ModePaste})
		end = mtr.Mapping().MapPos(end, 1)
	}
	e.cursor = e.textPos(end)
	e.pending = nil
	return nil
}

// Apply runs a caller-built transform as a single transaction. This is
// the entry point for programmatic edits; it bumps the version like any
// other commit, so a pending input-rule evaluation scheduled before it
// goes stale and is dropped at the next Flush.
func (e *Editor) Apply(build func(*transform.Transaction) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	tr := transform.NewTransaction(e.doc)
	if err := build(tr); err != nil {
		return err
	}
	if !tr.DocChanged() {
		return nil
	}
	if err := e.commit(tr); err != nil {
		return err
	}
	e.cursor = e.textPos(tr.Mapping().MapPos(e.cursor, 1))
	return nil
}

// commit swaps in the transaction's document and bumps the version.
// Callers hold the write lock.
func (e *Editor) commit(tr *transform.Transaction) error {
	doc, err := tr.Doc()
	if err != nil {
		return err
	}
	e.doc = doc
	e.version++
	e.publish(event.TopicDocApplied, DocApplied{Version: e.version, Steps: tr.StepCount()})
	return nil
}

// textPos normalizes a mapped cursor position to the nearest preceding
// position inside a textblock. Block transforms can map the cursor to a
// gap between blocks; typing must resume inside inline content.
func (e *Editor) textPos(pos int) int {
	if max := e.doc.ContentSize(); pos > max {
		pos = max
	}
	if pos < 0 {
		pos = 0
	}
	for p := pos; p >= 0; p-- {
		rp, err := e.doc.Resolve(p)
		if err != nil {
			continue
		}
		if rp.Parent().Type.IsTextblock() {
			return p
		}
	}
	return pos
}

func (e *Editor) publish(topic event.Topic, data any) {
	if e.bus != nil {
		e.bus.Publish(topic, data)
	}
}

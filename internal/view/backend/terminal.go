package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/dshills/inkwell/internal/model"
	"github.com/dshills/inkwell/internal/view"
)

// Terminal implements view.Host on a tcell screen. Views are tracked per
// node; Draw repaints the whole document from the root view's node state.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
	views  map[view.Handle]*termView
	root   view.Handle
}

type termView struct {
	node  *model.Node
	attrs map[string]string
}

// NewTerminal creates a terminal host on a fresh tcell screen.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen, views: make(map[view.Handle]*termView)}, nil
}

// Init initializes the screen and enables bracketed paste.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnablePaste()
	return nil
}

// Shutdown restores the terminal.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

// PollEvent blocks for the next terminal event.
func (t *Terminal) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// CreateView implements view.Host. The first view created is taken as the
// document root.
func (t *Terminal) CreateView(node *model.Node) (view.Handle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	h := view.Handle(uuid.NewString())
	t.views[h] = &termView{node: node, attrs: make(map[string]string)}
	if t.root == "" {
		t.root = h
	}
	return h, nil
}

// UpdateView implements view.Host.
func (t *Terminal) UpdateView(h view.Handle, node *model.Node) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.views[h]
	if !ok || v.node.Type != node.Type {
		return false
	}
	v.node = node
	return true
}

// SetAttr implements view.Host.
func (t *Terminal) SetAttr(h view.Handle, key, value string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if v, ok := t.views[h]; ok {
		v.attrs[key] = value
	}
	return nil
}

// RemoveAttr implements view.Host.
func (t *Terminal) RemoveAttr(h view.Handle, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if v, ok := t.views[h]; ok {
		delete(v.attrs, key)
	}
	return nil
}

// DestroyView implements view.Host.
func (t *Terminal) DestroyView(h view.Handle) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.views, h)
	if t.root == h {
		t.root = ""
	}
	return nil
}

// Draw repaints the document: one block per row, inline marks mapped to
// terminal styles.
func (t *Terminal) Draw() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Clear()
	root, ok := t.views[t.root]
	if !ok {
		t.screen.Show()
		return
	}
	y := 0
	for _, block := range root.node.Content {
		x := 0
		for _, inline := range block.Content {
			style := styleFor(inline)
			for _, r := range inline.TextContent() {
				t.screen.SetContent(x, y, r, nil, style)
				x++
			}
		}
		y++
	}
	t.screen.Show()
}

// ShowCursor places the terminal cursor.
func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.ShowCursor(x, y)
}

func styleFor(inline *model.Node) tcell.Style {
	style := tcell.StyleDefault
	for _, mk := range inline.Marks {
		switch mk.Type.Name {
		case "strong":
			style = style.Bold(true)
		case "em":
			style = style.Italic(true)
		case "code":
			style = style.Reverse(true)
		case "link":
			style = style.Underline(true)
		}
	}
	return style
}

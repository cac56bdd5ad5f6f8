package model

import (
	"reflect"
	"strings"
	"unicode/utf8"
)

// Mark is a piece of inline metadata attached to text, such as an inline
// code span or emphasis. Marks are immutable.
type Mark struct {
	Type  *MarkType
	Attrs map[string]any
}

// Eq reports whether two marks have the same type and attributes.
func (m *Mark) Eq(other *Mark) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil || m.Type != other.Type {
		return false
	}
	return attrsEqual(m.Attrs, other.Attrs)
}

// MarksEqual reports whether two mark sets are equal, order-sensitive.
func MarksEqual(a, b []*Mark) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Eq(b[i]) {
			return false
		}
	}
	return true
}

// ContainsMark reports whether set contains a mark equal to m.
func ContainsMark(set []*Mark, m *Mark) bool {
	for _, cand := range set {
		if cand.Eq(m) {
			return true
		}
	}
	return false
}

// AddMark returns set with m added, unless an equal mark is present.
func AddMark(set []*Mark, m *Mark) []*Mark {
	if ContainsMark(set, m) {
		return set
	}
	out := make([]*Mark, 0, len(set)+1)
	out = append(out, set...)
	return append(out, m)
}

// RemoveMark returns set without any mark equal to m.
func RemoveMark(set []*Mark, m *Mark) []*Mark {
	out := make([]*Mark, 0, len(set))
	for _, cand := range set {
		if !cand.Eq(m) {
			out = append(out, cand)
		}
	}
	return out
}

// Node is an element of the document tree. Text nodes carry Text and
// optionally Marks; other nodes carry Content. Nodes are immutable: all
// "mutating" helpers return a new node sharing unchanged children.
type Node struct {
	Type    *NodeType
	Attrs   map[string]any
	Marks   []*Mark
	Text    string
	Content []*Node
}

// IsText reports whether this is a text node.
func (n *Node) IsText() bool { return n.Type.IsText() }

// NodeSize is the size the node occupies in the flattened position space:
// rune count for text, 1 for other leaves, and content size plus the two
// boundary tokens otherwise.
func (n *Node) NodeSize() int {
	if n.IsText() {
		return utf8.RuneCountInString(n.Text)
	}
	if n.Type.IsLeaf() {
		return 1
	}
	return 2 + n.ContentSize()
}

// ContentSize is the flattened size of the node's content.
func (n *Node) ContentSize() int {
	size := 0
	for _, child := range n.Content {
		size += child.NodeSize()
	}
	return size
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int { return len(n.Content) }

// Child returns the i-th direct child.
func (n *Node) Child(i int) *Node { return n.Content[i] }

// TextContent concatenates the text of all descendant text nodes.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.Text
	}
	var b strings.Builder
	for _, child := range n.Content {
		b.WriteString(child.TextContent())
	}
	return b.String()
}

// WithAttrs returns a copy of the node with attrs validated and replaced.
func (n *Node) WithAttrs(attrs map[string]any) (*Node, error) {
	built, err := computeAttrs(n.Type.Name, n.Type.Attrs, attrs)
	if err != nil {
		return nil, err
	}
	out := *n
	out.Attrs = built
	return &out, nil
}

// WithContent returns a copy of the node with its content replaced.
func (n *Node) WithContent(content []*Node) (*Node, error) {
	if err := n.Type.checkContent(content); err != nil {
		return nil, err
	}
	out := *n
	out.Content = content
	return &out, nil
}

// WithMarks returns a copy of a text node with its mark set replaced.
func (n *Node) WithMarks(marks []*Mark) *Node {
	out := *n
	out.Marks = marks
	return &out
}

// cutText returns a text node holding the rune range [from, to) of n.
func (n *Node) cutText(from, to int) *Node {
	runes := []rune(n.Text)
	out := *n
	out.Text = string(runes[from:to])
	return &out
}

// SameMarkup reports whether two nodes have the same type, attributes, and
// mark set. Used by view content diffing to decide whether an existing child
// view can be updated in place.
func (n *Node) SameMarkup(other *Node) bool {
	if n.Type != other.Type {
		return false
	}
	if !attrsEqual(n.Attrs, other.Attrs) {
		return false
	}
	return MarksEqual(n.Marks, other.Marks)
}

func attrsEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		// Attribute values are any; scripted rules can supply maps and
		// slices, which == would panic on.
		if !ok || !reflect.DeepEqual(av, bv) {
			return false
		}
	}
	return true
}

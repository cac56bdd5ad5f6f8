package model

import (
	"fmt"
	"unicode/utf8"
)

// Editing primitives. Each returns a new document root sharing unchanged
// subtrees with the receiver; the receiver is never modified.

// ReplaceInline replaces the range [from, to) with the given inline content.
// Both endpoints must lie inside the same textblock.
func (doc *Node) ReplaceInline(from, to int, content []*Node) (*Node, error) {
	if to < from {
		return nil, fmt.Errorf("%w: [%d, %d)", ErrRangeInvalid, from, to)
	}
	rpFrom, err := doc.Resolve(from)
	if err != nil {
		return nil, err
	}
	rpTo, err := doc.Resolve(to)
	if err != nil {
		return nil, err
	}
	parent := rpFrom.Parent()
	if !parent.Type.IsTextblock() {
		return nil, ErrNotTextblock
	}
	if rpTo.Parent() != parent || rpTo.Start() != rpFrom.Start() {
		return nil, ErrCrossBlock
	}
	for _, n := range content {
		if !n.Type.IsInline() {
			return nil, fmt.Errorf("%w: %s in inline content", ErrInvalidContent, n.Type.Name)
		}
	}

	fromOff, toOff := rpFrom.ParentOffset(), rpTo.ParentOffset()
	var before, after []*Node
	offset := 0
	for _, child := range parent.Content {
		size := child.NodeSize()
		childStart, childEnd := offset, offset+size
		if childEnd <= fromOff {
			before = append(before, child)
		} else if childStart < fromOff && child.IsText() {
			before = append(before, child.cutText(0, fromOff-childStart))
		}
		if childStart >= toOff {
			after = append(after, child)
		} else if childEnd > toOff && child.IsText() {
			after = append(after, child.cutText(toOff-childStart, size))
		}
		// Children fully inside the range are dropped.
		offset = childEnd
	}
	children := make([]*Node, 0, len(before)+len(content)+len(after))
	children = append(children, before...)
	children = append(children, content...)
	children = append(children, after...)
	newParent, err := parent.WithContent(mergeInline(children))
	if err != nil {
		return nil, err
	}
	return rpFrom.rebuild(newParent), nil
}

// ApplyMark adds or removes a mark across the inline range [from, to),
// splitting text nodes at the boundaries as needed.
func (doc *Node) ApplyMark(from, to int, mark *Mark, add bool) (*Node, error) {
	if to <= from {
		return nil, fmt.Errorf("%w: [%d, %d)", ErrRangeInvalid, from, to)
	}
	rpFrom, err := doc.Resolve(from)
	if err != nil {
		return nil, err
	}
	rpTo, err := doc.Resolve(to)
	if err != nil {
		return nil, err
	}
	parent := rpFrom.Parent()
	if !parent.Type.IsTextblock() {
		return nil, ErrNotTextblock
	}
	if rpTo.Parent() != parent || rpTo.Start() != rpFrom.Start() {
		return nil, ErrCrossBlock
	}

	fromOff, toOff := rpFrom.ParentOffset(), rpTo.ParentOffset()
	var children []*Node
	offset := 0
	for _, child := range parent.Content {
		size := child.NodeSize()
		if offset+size <= fromOff || offset >= toOff || !child.IsText() {
			children = append(children, child)
			offset += size
			continue
		}
		start := max(fromOff-offset, 0)
		end := min(toOff-offset, size)
		if start > 0 {
			children = append(children, child.cutText(0, start))
		}
		marked := child.cutText(start, end)
		if add {
			marked = marked.WithMarks(AddMark(child.Marks, mark))
		} else {
			marked = marked.WithMarks(RemoveMark(child.Marks, mark))
		}
		children = append(children, marked)
		if end < size {
			children = append(children, child.cutText(end, size))
		}
		offset += size
	}
	newParent, err := parent.WithContent(mergeInline(children))
	if err != nil {
		return nil, err
	}
	return rpFrom.rebuild(newParent), nil
}

// ReplaceBlock replaces the node whose opening boundary sits at pos with
// the given node.
func (doc *Node) ReplaceBlock(pos int, node *Node) (*Node, error) {
	rp, err := doc.Resolve(pos)
	if err != nil {
		return nil, err
	}
	parent := rp.Parent()
	if rp.Index() >= parent.ChildCount() || rp.offsetOfIndex() != rp.ParentOffset() {
		return nil, fmt.Errorf("%w: no node starts at %d", ErrPositionOutOfRange, pos)
	}
	content := make([]*Node, len(parent.Content))
	copy(content, parent.Content)
	content[rp.Index()] = node
	newParent, err := parent.WithContent(content)
	if err != nil {
		return nil, err
	}
	return rp.rebuild(newParent), nil
}

// InsertBlock inserts a node as a new child at the boundary pos. The
// position must sit between children (or at the edge) of a non-text
// parent that accepts the node.
func (doc *Node) InsertBlock(pos int, node *Node) (*Node, error) {
	rp, err := doc.Resolve(pos)
	if err != nil {
		return nil, err
	}
	parent := rp.Parent()
	if rp.offsetOfIndex() != rp.ParentOffset() {
		return nil, fmt.Errorf("%w: %d is not a child boundary", ErrPositionOutOfRange, pos)
	}
	content := make([]*Node, 0, len(parent.Content)+1)
	content = append(content, parent.Content[:rp.Index()]...)
	content = append(content, node)
	content = append(content, parent.Content[rp.Index():]...)
	newParent, err := parent.WithContent(content)
	if err != nil {
		return nil, err
	}
	return rp.rebuild(newParent), nil
}

// SetNodeAttrs replaces the attributes of the node starting at pos. A pos
// of -1 addresses the document root.
func (doc *Node) SetNodeAttrs(pos int, attrs map[string]any) (*Node, error) {
	if pos == -1 {
		return doc.WithAttrs(attrs)
	}
	target := doc.NodeAt(pos)
	if target == nil {
		return nil, fmt.Errorf("%w: no node starts at %d", ErrPositionOutOfRange, pos)
	}
	updated, err := target.WithAttrs(attrs)
	if err != nil {
		return nil, err
	}
	return doc.ReplaceBlock(pos, updated)
}

// rebuild reconstructs the ancestor chain with newParent substituted for
// the resolved parent node.
func (rp *ResolvedPos) rebuild(newParent *Node) *Node {
	node := newParent
	for d := len(rp.path) - 2; d >= 0; d-- {
		entry := rp.path[d]
		content := make([]*Node, len(entry.node.Content))
		copy(content, entry.node.Content)
		content[entry.index] = node
		copied := *entry.node
		copied.Content = content
		node = &copied
	}
	return node
}

// mergeInline drops empty text nodes and joins adjacent text nodes whose
// mark sets are equal.
func mergeInline(children []*Node) []*Node {
	out := make([]*Node, 0, len(children))
	for _, child := range children {
		if child.IsText() && utf8.RuneCountInString(child.Text) == 0 {
			continue
		}
		if len(out) > 0 {
			last := out[len(out)-1]
			if last.IsText() && child.IsText() && MarksEqual(last.Marks, child.Marks) {
				joined := *last
				joined.Text = last.Text + child.Text
				out[len(out)-1] = &joined
				continue
			}
		}
		out = append(out, child)
	}
	return out
}

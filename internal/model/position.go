package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Position is an offset into the flattened document. It is only valid
// against the document version it was computed for.
type Position = int

type pathEntry struct {
	node  *Node
	index int // child index the position falls in or before
	start int // absolute position of the start of node's content
}

// ResolvedPos describes a Position in terms of the node tree around it.
type ResolvedPos struct {
	// Pos is the position this was resolved from.
	Pos int

	path         []pathEntry
	parentOffset int
}

// Depth is the number of ancestors above the parent (0 = root is parent).
func (rp *ResolvedPos) Depth() int { return len(rp.path) - 1 }

// Parent is the node the position points into.
func (rp *ResolvedPos) Parent() *Node { return rp.path[len(rp.path)-1].node }

// Index is the child index in the parent the position falls in or before.
func (rp *ResolvedPos) Index() int { return rp.path[len(rp.path)-1].index }

// ParentOffset is the offset of the position into the parent's content.
func (rp *ResolvedPos) ParentOffset() int { return rp.parentOffset }

// Start is the absolute position where the parent's content starts.
func (rp *ResolvedPos) Start() int { return rp.path[len(rp.path)-1].start }

// Ancestor returns the node at the given depth (0 = root).
func (rp *ResolvedPos) Ancestor(depth int) *Node { return rp.path[depth].node }

// BlockDepth returns the depth of the nearest enclosing textblock, or -1
// when the position is not inside one.
func (rp *ResolvedPos) BlockDepth() int {
	for d := len(rp.path) - 1; d >= 0; d-- {
		if rp.path[d].node.Type.IsTextblock() {
			return d
		}
	}
	return -1
}

// Resolve converts a position into a ResolvedPos. Positions addressing the
// interior of a text node resolve to the enclosing textblock with the
// appropriate parent offset.
func (doc *Node) Resolve(pos int) (*ResolvedPos, error) {
	if pos < 0 || pos > doc.ContentSize() {
		return nil, fmt.Errorf("%w: %d (document size %d)", ErrPositionOutOfRange, pos, doc.ContentSize())
	}
	rp := &ResolvedPos{Pos: pos}
	node := doc
	start := 0
	rel := pos
	for {
		offset := 0
		index := len(node.Content)
		descend := false
		for i, child := range node.Content {
			if rel == offset {
				index = i
				break
			}
			size := child.NodeSize()
			if rel < offset+size {
				index = i
				if !child.IsText() {
					// Interior of a non-text node: descend one level.
					rp.path = append(rp.path, pathEntry{node: node, index: i, start: start})
					node = child
					start = start + offset + 1
					rel = rel - offset - 1
					descend = true
				}
				break
			}
			offset += size
			index = i + 1
		}
		if descend {
			continue
		}
		rp.path = append(rp.path, pathEntry{node: node, index: index, start: start})
		rp.parentOffset = rel
		return rp, nil
	}
}

// NodeAt returns the node whose opening boundary sits at pos, or nil when
// pos does not address a node start.
func (doc *Node) NodeAt(pos int) *Node {
	rp, err := doc.Resolve(pos)
	if err != nil {
		return nil
	}
	parent := rp.Parent()
	if rp.Index() >= parent.ChildCount() {
		return nil
	}
	child := parent.Child(rp.Index())
	// pos must sit exactly on the child's opening boundary.
	if rp.offsetOfIndex() != rp.parentOffset {
		return nil
	}
	return child
}

// offsetOfIndex returns the parent offset at the start of the indexed child.
func (rp *ResolvedPos) offsetOfIndex() int {
	parent := rp.Parent()
	offset := 0
	for i := 0; i < rp.Index(); i++ {
		offset += parent.Child(i).NodeSize()
	}
	return offset
}

// TextBefore returns the plain text immediately preceding pos within its
// enclosing textblock, clipped to at most window runes. The scan never
// crosses the textblock boundary, and a non-text inline leaf (an atom)
// truncates everything before it. A window of 0 or less means unbounded.
func (doc *Node) TextBefore(pos int, window int) (string, error) {
	rp, err := doc.Resolve(pos)
	if err != nil {
		return "", err
	}
	parent := rp.Parent()
	if !parent.Type.IsTextblock() {
		return "", nil
	}
	var b strings.Builder
	offset := 0
	for _, child := range parent.Content {
		if offset >= rp.parentOffset {
			break
		}
		size := child.NodeSize()
		if child.IsText() {
			end := size
			if offset+size > rp.parentOffset {
				end = rp.parentOffset - offset
			}
			b.WriteString(child.cutText(0, end).Text)
		} else {
			// An inline atom is a hard boundary for lookback.
			b.Reset()
		}
		offset += size
	}
	return clipTail(b.String(), window), nil
}

// clipTail returns the last window runes of s (all of s when window <= 0).
func clipTail(s string, window int) string {
	if window <= 0 {
		return s
	}
	count := utf8.RuneCountInString(s)
	if count <= window {
		return s
	}
	runes := []rune(s)
	return string(runes[count-window:])
}

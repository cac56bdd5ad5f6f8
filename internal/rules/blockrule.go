package rules

import (
	"fmt"
	"regexp"

	"github.com/dshills/inkwell/internal/model"
)

// BuildFunc constructs the replacement block for a block rule. It receives
// the match captures and the textblock as it stands after the matched
// prefix has been deleted, and returns the node to put in its place.
type BuildFunc func(schema *model.Schema, captures []string, block *model.Node) (*model.Node, error)

// NewBlockRule builds an input rule for a structural prefix (such as a
// list marker or heading hash). On match, the matched prefix text is
// deleted and the enclosing textblock is replaced by the node the build
// function returns — both in one transaction. Block rules only make sense
// in input mode, anchored at block start and cursor end.
func NewBlockRule(name string, find *regexp.Regexp, build BuildFunc) *Rule {
	return &Rule{
		Name:    name,
		Find:    find,
		Mode:    ModeInput,
		Handler: blockHandler(build),
	}
}

// NewTextblockRule is a block rule that swaps the textblock's type while
// keeping its inline content, e.g. paragraph to heading.
func NewTextblockRule(name string, find *regexp.Regexp, typeName string, attrs AttrsFunc) *Rule {
	return NewBlockRule(name, find, func(schema *model.Schema, captures []string, block *model.Node) (*model.Node, error) {
		var attrValues map[string]any
		if attrs != nil {
			attrValues = attrs(captures)
		}
		return schema.Node(typeName, attrValues, block.Content...)
	})
}

// NewWrapRule is a block rule that wraps the textblock in an enclosing
// node, e.g. paragraph to bullet_list(list_item(paragraph)). Wrapper type
// names are given outermost first.
func NewWrapRule(name string, find *regexp.Regexp, wrappers ...string) *Rule {
	return NewBlockRule(name, find, func(schema *model.Schema, captures []string, block *model.Node) (*model.Node, error) {
		node := block
		for i := len(wrappers) - 1; i >= 0; i-- {
			wrapped, err := schema.Node(wrappers[i], nil, node)
			if err != nil {
				return nil, err
			}
			node = wrapped
		}
		return node, nil
	})
}

func blockHandler(build BuildFunc) Handler {
	return func(ctx *Context) error {
		rp, err := ctx.Doc.Resolve(ctx.From)
		if err != nil {
			return err
		}
		if !rp.Parent().Type.IsTextblock() {
			return fmt.Errorf("match outside a textblock")
		}
		// Opening boundary of the enclosing textblock. Stays valid across
		// the prefix deletion because it precedes the deleted range.
		blockPos := rp.Start() - 1

		if err := ctx.Tr.Delete(ctx.From, ctx.To); err != nil {
			return err
		}
		working, err := ctx.Tr.Doc()
		if err != nil {
			return err
		}
		block := working.NodeAt(blockPos)
		if block == nil {
			return fmt.Errorf("textblock vanished during transform")
		}
		replacement, err := build(ctx.Schema, ctx.Captures(), block)
		if err != nil {
			return err
		}
		if err := ctx.Tr.ReplaceBlock(blockPos, replacement); err != nil {
			return err
		}
		// A replacement without a textblock (an atom such as a thematic
		// break) leaves the cursor with nowhere to type; follow it with an
		// empty block of the original type so input continues.
		if !containsTextblock(replacement) {
			continuation, err := block.WithContent(nil)
			if err != nil {
				return err
			}
			return ctx.Tr.InsertBlock(blockPos+replacement.NodeSize(), continuation)
		}
		return nil
	}
}

func containsTextblock(n *model.Node) bool {
	if n.Type.IsTextblock() {
		return true
	}
	for _, child := range n.Content {
		if containsTextblock(child) {
			return true
		}
	}
	return false
}

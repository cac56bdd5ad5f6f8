package view

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/dshills/inkwell/internal/model"
)

// AttrSet is a rendered attribute set: the flattened key/value attributes
// a view should currently display for a node. A nil value means the
// attribute is explicitly null, which is treated like absence when
// diffing. Sets are produced fresh on every render cycle.
type AttrSet map[string]any

// RenderFunc produces the rendered attribute set for a node.
type RenderFunc func(node *model.Node) AttrSet

// DefaultRender renders a node's model attributes directly.
func DefaultRender(node *model.Node) AttrSet {
	out := make(AttrSet, len(node.Attrs))
	for k, v := range node.Attrs {
		out[k] = v
	}
	return out
}

// AttrOp is a single attribute operation against a view.
type AttrOp struct {
	Key    string
	Value  string
	Remove bool
}

// DiffAttrs computes the ordered operations that bring a view from the
// previous rendered set to the next one. Keys that disappear (or turn
// null) fall back to their static default when one exists and are removed
// otherwise. Diffing a set against itself yields no operations.
func DiffAttrs(prev, next AttrSet, static map[string]string) []AttrOp {
	var ops []AttrOp

	for _, key := range sortedAttrKeys(prev) {
		if _, live := next[key]; live {
			continue
		}
		if prev[key] == nil {
			// The view is already at the fallback for a null value.
			continue
		}
		ops = append(ops, fallbackOp(key, static))
	}
	for _, key := range sortedAttrKeys(next) {
		newValue := next[key]
		oldValue, had := prev[key]
		// Values are any; rendered sets can hold maps, which == panics on.
		if had && reflect.DeepEqual(oldValue, newValue) {
			continue
		}
		if newValue == nil {
			// Null is only an operation when the key previously had a value.
			if had && oldValue != nil {
				ops = append(ops, fallbackOp(key, static))
			}
			continue
		}
		ops = append(ops, AttrOp{Key: key, Value: attrString(newValue)})
	}
	return ops
}

// fallbackOp resets a key to its static default, or removes it.
func fallbackOp(key string, static map[string]string) AttrOp {
	if value, ok := static[key]; ok {
		return AttrOp{Key: key, Value: value}
	}
	return AttrOp{Key: key, Remove: true}
}

func attrString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func sortedAttrKeys(set AttrSet) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package model

import (
	"fmt"
	"sort"
)

// TextType is the reserved name of the text node type.
const TextType = "text"

// AttributeSpec declares a single attribute on a node or mark type.
type AttributeSpec struct {
	// Default is used when the attribute is not supplied at creation time.
	Default any

	// HasDefault distinguishes a nil default from no default at all.
	// An attribute without a default is required.
	HasDefault bool
}

// Attribute is the compiled form of an AttributeSpec.
type Attribute struct {
	Name       string
	Default    any
	HasDefault bool
}

func (a *Attribute) isRequired() bool { return !a.HasDefault }

// NodeSpec declares a node type for a schema.
type NodeSpec struct {
	// Inline marks the type as inline content (lives inside a textblock).
	Inline bool

	// InlineContent marks a block type whose content is inline (a textblock).
	InlineContent bool

	// Atom marks a node with no directly editable content.
	Atom bool

	// Attrs declares the attribute set. Keys are fixed; unknown keys are
	// rejected at node creation.
	Attrs map[string]*AttributeSpec
}

// MarkSpec declares a mark type for a schema.
type MarkSpec struct {
	Attrs map[string]*AttributeSpec
}

// SchemaSpec is the input to NewSchema.
type SchemaSpec struct {
	Nodes   map[string]*NodeSpec
	Marks   map[string]*MarkSpec
	TopNode string // defaults to "doc"
}

// NodeType tags Node instances. Allocated once per Schema.
type NodeType struct {
	Name   string
	Schema *Schema
	Spec   *NodeSpec
	Attrs  map[string]*Attribute

	// defaultAttrs is reused for nodes created without explicit attributes.
	// Nil when any attribute is required.
	defaultAttrs map[string]any
}

// IsText reports whether this is the text node type.
func (nt *NodeType) IsText() bool { return nt.Name == TextType }

// IsInline reports whether nodes of this type live inside a textblock.
func (nt *NodeType) IsInline() bool { return nt.Spec.Inline || nt.IsText() }

// IsBlock reports whether this is a block-level type.
func (nt *NodeType) IsBlock() bool { return !nt.IsInline() }

// IsTextblock reports whether this is a block type with inline content.
func (nt *NodeType) IsTextblock() bool { return nt.IsBlock() && nt.Spec.InlineContent }

// IsLeaf reports whether nodes of this type never have content.
func (nt *NodeType) IsLeaf() bool {
	return nt.IsText() || nt.Spec.Atom || (nt.Spec.Inline && !nt.Spec.InlineContent)
}

// CheckAttrs validates an attribute map against the type without building a
// node. Every key must be declared and every required key must be present.
func (nt *NodeType) CheckAttrs(attrs map[string]any) error {
	_, err := computeAttrs(nt.Name, nt.Attrs, attrs)
	return err
}

// Create builds a node of this type. Attrs may be nil when every attribute
// has a default. Content children must be allowed by the type: textblocks
// take inline children, other non-leaf blocks take block children.
func (nt *NodeType) Create(attrs map[string]any, content ...*Node) (*Node, error) {
	if nt.IsText() {
		return nil, fmt.Errorf("%w: use Schema.Text for text nodes", ErrInvalidContent)
	}
	built, err := computeAttrs(nt.Name, nt.Attrs, attrs)
	if err != nil {
		return nil, err
	}
	if err := nt.checkContent(content); err != nil {
		return nil, err
	}
	return &Node{Type: nt, Attrs: built, Content: content}, nil
}

func (nt *NodeType) checkContent(content []*Node) error {
	if len(content) == 0 {
		return nil
	}
	if nt.IsLeaf() {
		return fmt.Errorf("%w: %s is a leaf type", ErrInvalidContent, nt.Name)
	}
	for _, child := range content {
		if nt.IsTextblock() != child.Type.IsInline() {
			return fmt.Errorf("%w: %s inside %s", ErrInvalidContent, child.Type.Name, nt.Name)
		}
	}
	return nil
}

// MarkType tags Mark instances. Allocated once per Schema.
type MarkType struct {
	Name   string
	Schema *Schema
	Spec   *MarkSpec
	Attrs  map[string]*Attribute
}

// CheckAttrs validates an attribute map against the mark type.
func (mt *MarkType) CheckAttrs(attrs map[string]any) error {
	_, err := computeAttrs(mt.Name, mt.Attrs, attrs)
	return err
}

// Create builds a mark of this type.
func (mt *MarkType) Create(attrs map[string]any) (*Mark, error) {
	built, err := computeAttrs(mt.Name, mt.Attrs, attrs)
	if err != nil {
		return nil, err
	}
	return &Mark{Type: mt, Attrs: built}, nil
}

// Schema holds the compiled node and mark types for a document family.
type Schema struct {
	Spec    *SchemaSpec
	Nodes   map[string]*NodeType
	Marks   map[string]*MarkType
	topName string
}

// NewSchema compiles a SchemaSpec. The spec must declare a "text" node type
// and the top node type (default "doc").
func NewSchema(spec *SchemaSpec) (*Schema, error) {
	top := spec.TopNode
	if top == "" {
		top = "doc"
	}
	s := &Schema{
		Spec:    spec,
		Nodes:   make(map[string]*NodeType, len(spec.Nodes)),
		Marks:   make(map[string]*MarkType, len(spec.Marks)),
		topName: top,
	}
	for _, name := range sortedKeys(spec.Nodes) {
		ns := spec.Nodes[name]
		attrs := initAttrs(ns.Attrs)
		s.Nodes[name] = &NodeType{
			Name:         name,
			Schema:       s,
			Spec:         ns,
			Attrs:        attrs,
			defaultAttrs: defaultAttrs(attrs),
		}
	}
	for _, name := range sortedKeys(spec.Marks) {
		ms := spec.Marks[name]
		s.Marks[name] = &MarkType{Name: name, Schema: s, Spec: ms, Attrs: initAttrs(ms.Attrs)}
	}
	if _, ok := s.Nodes[TextType]; !ok {
		return nil, fmt.Errorf("%w: schema has no %q node type", ErrUnknownType, TextType)
	}
	if _, ok := s.Nodes[top]; !ok {
		return nil, fmt.Errorf("%w: schema has no top node type %q", ErrUnknownType, top)
	}
	return s, nil
}

// NodeType returns the named node type.
func (s *Schema) NodeType(name string) (*NodeType, error) {
	nt, ok := s.Nodes[name]
	if !ok {
		return nil, fmt.Errorf("%w: node type %q", ErrUnknownType, name)
	}
	return nt, nil
}

// MarkType returns the named mark type.
func (s *Schema) MarkType(name string) (*MarkType, error) {
	mt, ok := s.Marks[name]
	if !ok {
		return nil, fmt.Errorf("%w: mark type %q", ErrUnknownType, name)
	}
	return mt, nil
}

// TopType returns the top-level node type.
func (s *Schema) TopType() *NodeType { return s.Nodes[s.topName] }

// Text builds a text node carrying the given marks.
func (s *Schema) Text(text string, marks ...*Mark) *Node {
	return &Node{Type: s.Nodes[TextType], Text: text, Marks: marks}
}

// Node builds a node of the named type, propagating type lookup and
// attribute errors.
func (s *Schema) Node(name string, attrs map[string]any, content ...*Node) (*Node, error) {
	nt, err := s.NodeType(name)
	if err != nil {
		return nil, err
	}
	return nt.Create(attrs, content...)
}

// Mark builds a mark of the named type.
func (s *Schema) Mark(name string, attrs map[string]any) (*Mark, error) {
	mt, err := s.MarkType(name)
	if err != nil {
		return nil, err
	}
	return mt.Create(attrs)
}

func initAttrs(specs map[string]*AttributeSpec) map[string]*Attribute {
	result := make(map[string]*Attribute, len(specs))
	for name, spec := range specs {
		result[name] = &Attribute{Name: name, Default: spec.Default, HasDefault: spec.HasDefault}
	}
	return result
}

// defaultAttrs builds the shared attribute map used when a node is created
// with no explicit attributes. Returns nil when any attribute is required.
func defaultAttrs(attrs map[string]*Attribute) map[string]any {
	defaults := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		if attr.isRequired() {
			return nil
		}
		defaults[name] = attr.Default
	}
	return defaults
}

// computeAttrs merges supplied values over declared defaults. Unknown keys
// and missing required keys reject the whole map.
func computeAttrs(typeName string, attrs map[string]*Attribute, given map[string]any) (map[string]any, error) {
	for name := range given {
		if _, ok := attrs[name]; !ok {
			return nil, fmt.Errorf("%w: %q on type %s", ErrUnknownAttr, name, typeName)
		}
	}
	built := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		value, ok := given[name]
		if !ok {
			if attr.isRequired() {
				return nil, fmt.Errorf("%w: %q on type %s", ErrMissingAttr, name, typeName)
			}
			value = attr.Default
		}
		built[name] = value
	}
	return built, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

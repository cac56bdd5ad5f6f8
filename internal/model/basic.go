package model

// BasicSpec is a small document schema covering the node and mark types the
// built-in rules target. Callers wanting a different document family build
// their own SchemaSpec; nothing in the engine assumes this one.
func BasicSpec() *SchemaSpec {
	return &SchemaSpec{
		Nodes: map[string]*NodeSpec{
			// The top level document node.
			"doc": {},

			// A plain paragraph textblock.
			"paragraph": {InlineContent: true},

			// A heading textblock with a level in 1..6.
			"heading": {
				InlineContent: true,
				Attrs: map[string]*AttributeSpec{
					"level": {Default: 1, HasDefault: true},
				},
			},

			// An unordered list of list items.
			"bullet_list": {},

			// A single list item holding block content.
			"list_item": {},

			// A task list item with a checked flag.
			"task_item": {
				InlineContent: true,
				Attrs: map[string]*AttributeSpec{
					"checked": {Default: false, HasDefault: true},
				},
			},

			// A horizontal rule.
			"horizontal_rule": {Atom: true},

			// A hard line break.
			"hard_break": {Inline: true, Atom: true},

			// The text node.
			"text": {Inline: true},
		},
		Marks: map[string]*MarkSpec{
			// Inline code font.
			"code": {},

			// Strong emphasis.
			"strong": {},

			// Emphasis.
			"em": {},

			// A link with a required href.
			"link": {
				Attrs: map[string]*AttributeSpec{
					"href":  {},
					"title": {Default: nil, HasDefault: true},
				},
			},
		},
	}
}

// BasicSchema compiles BasicSpec, panicking on failure. The spec is static,
// so failure is a programming error.
func BasicSchema() *Schema {
	s, err := NewSchema(BasicSpec())
	if err != nil {
		panic(err)
	}
	return s
}

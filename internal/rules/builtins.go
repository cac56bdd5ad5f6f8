package rules

import (
	"regexp"

	"github.com/dshills/inkwell/internal/model"
)

var (
	headingFind    = regexp.MustCompile(`^(#{1,6}) $`)
	bulletFind     = regexp.MustCompile(`^\s*([-+*]) $`)
	taskFind       = regexp.MustCompile(`^\[([ xX])\] $`)
	horizontalFind = regexp.MustCompile(`^(---|___|\*\*\*) $`)
)

// BuiltinRules returns the default rule set in precedence order. The rules
// target the node and mark names of model.BasicSpec; against a schema
// missing one of those types the affected rule fails closed and simply
// never fires.
func BuiltinRules() ([]*Rule, error) {
	var out []*Rule

	// Mark pairs, mode-symmetric: each delimiter gets an input rule and a
	// paste rule. Strong is registered before em so "**" wins over "*".
	for _, mr := range []struct {
		name, delimiter, mark string
	}{
		{"code", "`", "code"},
		{"strong", "**", "strong"},
		{"em", "*", "em"},
	} {
		for _, mode := range []Mode{ModeInput, ModePaste} {
			r, err := NewMarkRule(mr.name, mr.delimiter, mr.mark, mode, nil)
			if err != nil {
				return nil, err
			}
			out = append(out, r)
		}
	}

	out = append(out,
		NewTextblockRule("heading", headingFind, "heading", func(captures []string) map[string]any {
			return map[string]any{"level": len(captures[1])}
		}),
		NewWrapRule("bullet_list", bulletFind, "bullet_list", "list_item"),
		NewTextblockRule("task_item", taskFind, "task_item", func(captures []string) map[string]any {
			return map[string]any{"checked": captures[1] != " "}
		}),
		NewBlockRule("horizontal_rule", horizontalFind, func(schema *model.Schema, captures []string, block *model.Node) (*model.Node, error) {
			return schema.Node("horizontal_rule", nil)
		}),
	)
	return out, nil
}

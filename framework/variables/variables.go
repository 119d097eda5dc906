// Package variables substitutes $(name) tokens inside definition trees.
//
// Names are case-insensitive and each may be added once. Substitution only
// touches the descendants of the node it is given: the node's own attributes
// (name, extends, abstract on a definition) stay literal configuration.
package variables

import (
	"fmt"
	"sort"
	"strings"

	"github.com/km-arc/configy/framework/definition"
	"github.com/km-arc/configy/framework/tree"
)

// DuplicateVariableError is returned when a name is added twice.
type DuplicateVariableError struct {
	Name string
}

func (e *DuplicateVariableError) Error() string {
	return fmt.Sprintf("the variable %s has already been defined", e.Name)
}

// Table holds the variables available to a load.
type Table struct {
	vars map[string]string // folded name → value
}

// New creates an empty table.
func New() *Table {
	return &Table{vars: make(map[string]string)}
}

// AddVariable registers name. Adding a name that differs from an existing one
// only by case fails with *DuplicateVariableError.
func (t *Table) AddVariable(name, value string) error {
	key := strings.ToLower(name)
	if _, exists := t.vars[key]; exists {
		return &DuplicateVariableError{Name: name}
	}
	t.vars[key] = value
	return nil
}

// AddVariables registers every entry of vars in name order.
func (t *Table) AddVariables(vars map[string]string) error {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := t.AddVariable(name, vars[name]); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the value for name.
func (t *Table) Lookup(name string) (string, bool) {
	v, ok := t.vars[strings.ToLower(name)]
	return v, ok
}

// Len returns the number of variables.
func (t *Table) Len() int { return len(t.vars) }

// Apply replaces every known $(name) token in s. Unknown tokens are left as
// written and substituted values are not scanned again.
func (t *Table) Apply(s string) string {
	if len(t.vars) == 0 || !strings.Contains(s, "$(") {
		return s
	}

	var sb strings.Builder
	for {
		start := strings.Index(s, "$(")
		if start < 0 {
			break
		}
		end := strings.IndexByte(s[start+2:], ')')
		if end < 0 {
			break
		}
		end += start + 2

		sb.WriteString(s[:start])
		if v, ok := t.Lookup(s[start+2 : end]); ok {
			sb.WriteString(v)
			s = s[end+1:]
			continue
		}
		sb.WriteString("$(")
		s = s[start+2:]
	}
	sb.WriteString(s)
	return sb.String()
}

// ReplaceVariables rewrites attribute values, text and comments below node.
// The attributes of node itself are left untouched.
func (t *Table) ReplaceVariables(node *tree.Node) {
	for _, child := range node.Children {
		child.Walk(func(n *tree.Node) bool {
			switch n.Kind {
			case tree.ElementNode:
				for i := range n.Attrs {
					n.Attrs[i].Value = t.Apply(n.Attrs[i].Value)
				}
			default:
				n.Value = t.Apply(n.Value)
			}
			return true
		})
	}
}

// ReplaceDefinition substitutes below a definition's own element.
func (t *Table) ReplaceDefinition(def *definition.Definition) {
	t.ReplaceVariables(def.Node)
}

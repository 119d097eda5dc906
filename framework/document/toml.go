package document

import (
	"fmt"
	"slices"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/km-arc/configy/framework/tree"
)

// ParseTOML parses a TOML document into a tree under a RootName element.
//
// A table is an element: its scalar values are attributes and its "text" key
// is text content. A nested table is one child element named after its key
// and an array of tables is one child element per entry. TOML tables are
// unordered, so attributes and differently named children come out sorted by
// key; entries of one array keep their order.
//
//	[[configuration]]
//	name = "Default"
//
//	  [[configuration.logger]]
//	  type = "logger"
//	  singleInstance = true
func ParseTOML(data []byte) (*tree.Node, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, &SyntaxError{Format: FormatTOML, Cause: err}
	}

	root := tree.NewElement(RootName)
	if err := tomlTable(root, doc, RootName); err != nil {
		return nil, &SyntaxError{Format: FormatTOML, Cause: err}
	}
	return root, nil
}

func tomlTable(el *tree.Node, table map[string]any, path string) error {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var text string
	for _, key := range keys {
		at := path + "." + key
		switch v := table[key].(type) {
		case map[string]any:
			child := tree.NewElement(key)
			if err := tomlTable(child, v, at); err != nil {
				return err
			}
			el.AppendChild(child)
		case []map[string]any:
			for i, entry := range v {
				child := tree.NewElement(key)
				if err := tomlTable(child, entry, fmt.Sprintf("%s[%d]", at, i)); err != nil {
					return err
				}
				el.AppendChild(child)
			}
		case []any:
			for i, entry := range v {
				m, ok := entry.(map[string]any)
				if !ok {
					return fmt.Errorf("%s: arrays may only hold tables, got %T", at, entry)
				}
				child := tree.NewElement(key)
				if err := tomlTable(child, m, fmt.Sprintf("%s[%d]", at, i)); err != nil {
					return err
				}
				el.AppendChild(child)
			}
		default:
			s, err := tomlScalar(v)
			if err != nil {
				return fmt.Errorf("%s: %w", at, err)
			}
			if key == textKey {
				text = s
				continue
			}
			el.SetAttr(key, s)
		}
	}
	if text != "" {
		el.AppendChild(tree.NewText(text))
	}
	return nil
}

func tomlScalar(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case bool, int64, float64:
		return fmt.Sprint(s), nil
	case time.Time:
		return s.Format(time.RFC3339Nano), nil
	case toml.LocalDate, toml.LocalTime, toml.LocalDateTime:
		return fmt.Sprint(s), nil
	}
	return "", fmt.Errorf("unsupported value of type %T", v)
}

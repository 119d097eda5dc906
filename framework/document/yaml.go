package document

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/km-arc/configy/framework/tree"
)

// Reserved keys inside a YAML element body.
const (
	yamlChildrenKey = "children"
	textKey         = "text"
)

// ParseYAML parses a YAML document into a tree.
//
// The document is a single-key mapping naming the root element. An element
// body is either a scalar (its text), null (empty), or a mapping whose scalar
// values are attributes, whose "children" sequence holds child elements (each
// again a single-key mapping) and whose "text" key holds text content. Head
// comments on child elements become comment nodes in front of them.
//
//	configurations:
//	  children:
//	    - configuration:
//	        name: Default
//	        children:
//	          # console logging everywhere
//	          - logger: { type: logger, singleInstance: true }
func ParseYAML(data []byte) (*tree.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &SyntaxError{Format: FormatYAML, Cause: err}
	}
	if len(doc.Content) == 0 {
		return nil, &SyntaxError{Format: FormatYAML, Cause: errors.New("empty document")}
	}

	root, err := yamlElement(doc.Content[0], "<doc>")
	if err != nil {
		return nil, &SyntaxError{Format: FormatYAML, Cause: err}
	}
	return root, nil
}

// yamlElement converts a single-key mapping into an element.
func yamlElement(n *yaml.Node, path string) (*tree.Node, error) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return nil, fmt.Errorf("%s (line %d): an element must be a mapping with exactly one key", path, n.Line)
	}
	name := n.Content[0].Value
	el := tree.NewElement(name)
	path = path + "/" + name

	body := n.Content[1]
	switch body.Kind {
	case yaml.ScalarNode:
		if body.Tag != "!!null" && body.Value != "" {
			el.SetText(body.Value)
		}
		return el, nil
	case yaml.MappingNode:
	default:
		return nil, fmt.Errorf("%s (line %d): element body must be a mapping or a scalar", path, body.Line)
	}

	for i := 0; i+1 < len(body.Content); i += 2 {
		key, val := body.Content[i], body.Content[i+1]
		switch key.Value {
		case yamlChildrenKey:
			if val.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("%s (line %d): %q must be a sequence", path, val.Line, yamlChildrenKey)
			}
			for _, item := range val.Content {
				if c := yamlComment(headComment(item)); c != "" {
					el.AppendChild(tree.NewComment(c))
				}
				child, err := yamlElement(item, path)
				if err != nil {
					return nil, err
				}
				el.AppendChild(child)
			}
		case textKey:
			el.AppendChild(tree.NewText(val.Value))
		default:
			if val.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%s (line %d): attribute %q must be a scalar", path, val.Line, key.Value)
			}
			el.SetAttr(key.Value, val.Value)
		}
	}
	return el, nil
}

// headComment finds the comment written above a sequence item. yaml.v3 hangs
// it on the item itself or on the first key of an inline mapping.
func headComment(item *yaml.Node) string {
	if item.HeadComment != "" {
		return item.HeadComment
	}
	if item.Kind == yaml.MappingNode && len(item.Content) > 0 {
		return item.Content[0].HeadComment
	}
	return ""
}

func yamlComment(c string) string {
	if c == "" {
		return ""
	}
	lines := strings.Split(c, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimPrefix(strings.TrimPrefix(l, "#"), " ")
	}
	return " " + strings.Join(lines, " ") + " "
}

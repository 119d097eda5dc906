package document

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/km-arc/configy/framework/tree"
)

// RootName names the synthetic root element of HCL and TOML documents, which
// have no named top-level node of their own.
const RootName = "configurations"

// ParseHCL parses an HCL document into a tree.
//
// Every block becomes an element named after the block type; a first label is
// stored as the "name" attribute. Attributes keep their source order and are
// rendered to text, so booleans and numbers arrive as "true" or "32768". HCL
// has no comment tokens in its syntax tree, so comments are not preserved.
//
//	configuration "Default" {
//	  logger {
//	    type           = "logger"
//	    singleInstance = true
//	  }
//	}
func ParseHCL(data []byte, filename string) (*tree.Node, error) {
	file, diags := hclsyntax.ParseConfig(data, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, &SyntaxError{Format: FormatHCL, Cause: diags}
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, &SyntaxError{Format: FormatHCL, Cause: fmt.Errorf("unexpected body type %T", file.Body)}
	}

	root := tree.NewElement(RootName)
	if err := hclBody(root, body); err != nil {
		return nil, &SyntaxError{Format: FormatHCL, Cause: err}
	}
	return root, nil
}

func hclBody(el *tree.Node, body *hclsyntax.Body) error {
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, a := range body.Attributes {
		attrs = append(attrs, a)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})

	for _, a := range attrs {
		text, err := hclText(a)
		if err != nil {
			return err
		}
		el.SetAttr(a.Name, text)
	}

	for _, block := range body.Blocks {
		child := tree.NewElement(block.Type)
		switch len(block.Labels) {
		case 0:
		case 1:
			child.SetAttr("name", block.Labels[0])
		default:
			return fmt.Errorf("%s: block %q takes at most one label", block.DefRange(), block.Type)
		}
		if err := hclBody(child, block.Body); err != nil {
			return err
		}
		el.AppendChild(child)
	}
	return nil
}

// hclText evaluates a literal attribute without variables or functions.
func hclText(a *hclsyntax.Attribute) (string, error) {
	val, diags := a.Expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	if val.IsNull() {
		return "", nil
	}
	if !val.IsWhollyKnown() {
		return "", fmt.Errorf("%s: attribute %q has no known value", a.SrcRange, a.Name)
	}
	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("%s: attribute %q must be a string, number or bool: %w", a.SrcRange, a.Name, err)
	}
	return str.AsString(), nil
}

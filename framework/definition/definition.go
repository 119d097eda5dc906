package definition

import (
	"strings"

	"github.com/km-arc/configy/framework/tree"
)

// Attributes read from a definition's own element.
const (
	NameAttr     = "name"
	ExtendsAttr  = "extends"
	AbstractAttr = "abstract"
)

// Definition is one named container template. Node is replaced in place
// as inheritance is applied.
type Definition struct {
	Node *tree.Node
}

// New wraps a configuration element.
func New(node *tree.Node) *Definition {
	return &Definition{Node: node}
}

// Name is the definition's name attribute.
func (d *Definition) Name() string {
	return d.Node.AttrValue(NameAttr)
}

// Extends names the definition this one inherits from, if any.
func (d *Definition) Extends() string {
	return d.Node.AttrValue(ExtendsAttr)
}

// Abstract definitions are templates only and never produce a container.
func (d *Definition) Abstract() bool {
	return strings.EqualFold(d.Node.AttrValue(AbstractAttr), "true")
}

// Dependencies returns the dependency declarations: the direct child elements.
func (d *Definition) Dependencies() []*tree.Node {
	return d.Node.Elements()
}

package tree

import (
	"strings"
)

// Kind tells element, text and comment nodes apart.
type Kind int

const (
	ElementNode Kind = iota
	TextNode
	CommentNode
)

// Attr is a single name/value attribute pair.
type Attr struct {
	Name  string
	Value string
}

// Node is one node of a configuration document.
//
// Elements carry a Name, ordered unique Attrs and ordered Children. Text and
// comment nodes only carry a Value. Comments have no meaning beyond being kept
// verbatim.
type Node struct {
	Kind     Kind
	Name     string
	Attrs    []Attr
	Children []*Node
	Value    string

	// ExplicitEnd renders an empty element as <a></a> instead of <a/>.
	ExplicitEnd bool
}

// ── Constructors ──────────────────────────────────────────────────────────────

// NewElement creates an element node.
//
//	n := tree.NewElement("logger", tree.Attr{Name: "type", Value: "console"})
func NewElement(name string, attrs ...Attr) *Node {
	n := &Node{Kind: ElementNode, Name: name}
	for _, a := range attrs {
		n.SetAttr(a.Name, a.Value)
	}
	return n
}

// NewText creates a text node.
func NewText(value string) *Node {
	return &Node{Kind: TextNode, Value: value}
}

// NewComment creates a comment node.
func NewComment(value string) *Node {
	return &Node{Kind: CommentNode, Value: value}
}

// ── Attributes ────────────────────────────────────────────────────────────────

// Attr returns the value of the named attribute and whether it exists.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrValue returns the named attribute value, or "" when absent.
func (n *Node) AttrValue(name string) string {
	v, _ := n.Attr(name)
	return v
}

// SetAttr overwrites an existing attribute in place or appends a new one.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// RemoveAttrs drops every attribute.
func (n *Node) RemoveAttrs() {
	n.Attrs = nil
}

// ── Children ──────────────────────────────────────────────────────────────────

// Elements returns the element children in document order.
func (n *Node) Elements() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Kind == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// FirstElement returns the first element child with the given name, or nil.
func (n *Node) FirstElement(name string) *Node {
	for _, c := range n.Children {
		if c.Kind == ElementNode && c.Name == name {
			return c
		}
	}
	return nil
}

// AppendChild adds child after the existing children.
func (n *Node) AppendChild(child *Node) {
	n.Children = append(n.Children, child)
}

// RemoveChildren drops all children. An element that was written with an
// end tag keeps rendering with one.
func (n *Node) RemoveChildren() {
	n.Children = nil
}

// Reset clears attributes and all descendant content.
func (n *Node) Reset() {
	n.RemoveAttrs()
	n.RemoveChildren()
}

// InnerText concatenates every descendant text node.
func (n *Node) InnerText() string {
	if n.Kind == TextNode {
		return n.Value
	}
	var sb strings.Builder
	n.collectText(&sb)
	return sb.String()
}

func (n *Node) collectText(sb *strings.Builder) {
	for _, c := range n.Children {
		switch c.Kind {
		case TextNode:
			sb.WriteString(c.Value)
		case ElementNode:
			c.collectText(sb)
		}
	}
}

// SetText replaces all children with a single text node.
func (n *Node) SetText(text string) {
	n.Children = []*Node{NewText(text)}
}

// Clone returns a deep copy that shares nothing with n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Kind:        n.Kind,
		Name:        n.Name,
		Value:       n.Value,
		ExplicitEnd: n.ExplicitEnd,
	}
	if len(n.Attrs) > 0 {
		out.Attrs = make([]Attr, len(n.Attrs))
		copy(out.Attrs, n.Attrs)
	}
	if len(n.Children) > 0 {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// Walk visits n and every descendant depth-first, parents before children.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

package tree

import (
	"encoding/xml"
	"strings"
)

// String renders the node as XML (outer form).
func (n *Node) String() string {
	var sb strings.Builder
	n.render(&sb)
	return sb.String()
}

func (n *Node) render(sb *strings.Builder) {
	switch n.Kind {
	case TextNode:
		escape(sb, n.Value)
		return
	case CommentNode:
		sb.WriteString("<!--")
		sb.WriteString(n.Value)
		sb.WriteString("-->")
		return
	}

	sb.WriteByte('<')
	sb.WriteString(n.Name)
	for _, a := range n.Attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Name)
		sb.WriteString(`="`)
		escape(sb, a.Value)
		sb.WriteByte('"')
	}

	if len(n.Children) == 0 && !n.ExplicitEnd {
		sb.WriteString("/>")
		return
	}

	sb.WriteByte('>')
	for _, c := range n.Children {
		c.render(sb)
	}
	sb.WriteString("</")
	sb.WriteString(n.Name)
	sb.WriteByte('>')
}

func escape(sb *strings.Builder, s string) {
	// strings.Builder never fails a write
	_ = xml.EscapeText(sb, []byte(s))
}

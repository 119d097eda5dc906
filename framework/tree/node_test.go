package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/configy/framework/tree"
)

func TestSetAttr_OverwritesInPlace(t *testing.T) {
	t.Parallel()
	n := tree.NewElement("element", tree.Attr{Name: "a", Value: "1"}, tree.Attr{Name: "b", Value: "2"})

	n.SetAttr("a", "3")
	n.SetAttr("c", "4")

	assert.Equal(t, []tree.Attr{{Name: "a", Value: "3"}, {Name: "b", Value: "2"}, {Name: "c", Value: "4"}}, n.Attrs)
}

func TestNewElement_DuplicateAttrsCollapse(t *testing.T) {
	t.Parallel()
	n := tree.NewElement("x", tree.Attr{Name: "a", Value: "1"}, tree.Attr{Name: "a", Value: "2"})

	require.Len(t, n.Attrs, 1)
	assert.Equal(t, "2", n.AttrValue("a"))
}

func TestClone_IsDeep(t *testing.T) {
	t.Parallel()
	child := tree.NewElement("child", tree.Attr{Name: "k", Value: "v"})
	root := tree.NewElement("root")
	root.AppendChild(child)
	root.AppendChild(tree.NewComment(" note "))

	cp := root.Clone()
	cp.Children[0].SetAttr("k", "changed")
	cp.AppendChild(tree.NewText("more"))

	assert.Equal(t, "v", child.AttrValue("k"))
	assert.Len(t, root.Children, 2)
	assert.Equal(t, `<root><child k="changed"/><!-- note -->more</root>`, cp.String())
}

func TestFirstElement_SkipsCommentsAndReturnsFirstMatch(t *testing.T) {
	t.Parallel()
	root := tree.NewElement("root")
	root.AppendChild(tree.NewComment("element"))
	first := tree.NewElement("element", tree.Attr{Name: "id", Value: "1"})
	root.AppendChild(first)
	root.AppendChild(tree.NewElement("element", tree.Attr{Name: "id", Value: "2"}))

	assert.Same(t, first, root.FirstElement("element"))
	assert.Nil(t, root.FirstElement("missing"))
	assert.Len(t, root.Elements(), 2)
}

func TestReset_KeepsEndTagStyle(t *testing.T) {
	t.Parallel()
	open := tree.NewElement("element", tree.Attr{Name: "type", Value: "foo"})
	open.ExplicitEnd = true
	open.AppendChild(tree.NewElement("cfg"))
	closed := tree.NewElement("element", tree.Attr{Name: "type", Value: "foo"})

	for _, n := range []*tree.Node{open, closed} {
		n.Reset()
		n.SetAttr("type", "bars")
	}

	assert.Equal(t, `<element type="bars"></element>`, open.String())
	assert.Equal(t, `<element type="bars"/>`, closed.String())
}

func TestInnerText_ConcatenatesDescendants(t *testing.T) {
	t.Parallel()
	root := tree.NewElement("a")
	b := tree.NewElement("b")
	b.SetText("hello ")
	root.AppendChild(b)
	root.AppendChild(tree.NewComment("ignored"))
	root.AppendChild(tree.NewText("world"))

	assert.Equal(t, "hello world", root.InnerText())
}

func TestString_EscapesValues(t *testing.T) {
	t.Parallel()
	n := tree.NewElement("a", tree.Attr{Name: "v", Value: `<&>`})
	n.SetText("1 < 2")

	assert.Equal(t, `<a v="&lt;&amp;&gt;">1 &lt; 2</a>`, n.String())
}

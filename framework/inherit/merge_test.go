package inherit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/configy/framework/document"
	"github.com/km-arc/configy/framework/inherit"
	"github.com/km-arc/configy/framework/tree"
)

func node(t *testing.T, src string) *tree.Node {
	t.Helper()
	n, err := document.ParseXML([]byte(src))
	require.NoError(t, err)
	return n
}

func TestMerge(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		source string
		target string
		want   string
	}{
		{
			name:   "comments in source survive",
			source: `<config><!-- haha --><element type="foo"/><!-- lul --></config>`,
			target: `<config><!-- kek --><element type="foo"/><!-- lawl --></config>`,
			want:   `<config><!-- haha --><element type="foo"/><!-- lul --></config>`,
		},
		{
			name:   "passes base element",
			source: `<config><element type="foo"/></config>`,
			target: `<config/>`,
			want:   `<config><element type="foo"/></config>`,
		},
		{
			name:   "passes child element",
			source: `<config/>`,
			target: `<config><element type="foo"/></config>`,
			want:   `<config><element type="foo"/></config>`,
		},
		{
			name:   "adds attribute when patched",
			source: `<config><element bonkers="foo"/></config>`,
			target: `<config><element monkeys="bars"/></config>`,
			want:   `<config><element bonkers="foo" monkeys="bars"/></config>`,
		},
		{
			name:   "overrides attribute when patched",
			source: `<config><element type="foo"/></config>`,
			target: `<config><element type="bars"/></config>`,
			want:   `<config><element type="bars"/></config>`,
		},
		{
			name:   "removes source attributes when type is patched",
			source: `<config><element type="foo" baz="baz"/></config>`,
			target: `<config><element type="bars"/></config>`,
			want:   `<config><element type="bars"/></config>`,
		},
		{
			name:   "removes source children when type is patched",
			source: `<config><element type="foo" baz="baz"><cfg /></element></config>`,
			target: `<config><element type="bars"/></config>`,
			want:   `<config><element type="bars"></element></config>`,
		},
		{
			name:   "appends children instead of merging them",
			source: `<config><element type="foo"><cfg/></element></config>`,
			target: `<config><element><cfg/></element></config>`,
			want:   `<config><element type="foo"><cfg/><cfg/></element></config>`,
		},
		{
			name:   "keeps override children after type reset",
			source: `<config><element type="foo"><old/></element></config>`,
			target: `<config><element type="bars"><new/><!-- why --></element></config>`,
			want:   `<config><element type="bars"><new/><!-- why --></element></config>`,
		},
		{
			name:   "matches only the first duplicate",
			source: `<config><element id="1"/><element id="2"/></config>`,
			target: `<config><element extra="x"/></config>`,
			want:   `<config><element id="1" extra="x"/><element id="2"/></config>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := inherit.Merge(node(t, tt.source), node(t, tt.target))
			assert.Equal(t, tt.want, result.String())
		})
	}
}

func TestMerge_DoesNotModifyInputs(t *testing.T) {
	t.Parallel()
	source := node(t, `<config><element type="foo"><cfg/></element></config>`)
	target := node(t, `<config><element type="bars"><x/></element><extra/></config>`)
	sourceBefore, targetBefore := source.String(), target.String()

	result := inherit.Merge(source, target)
	result.FirstElement("extra").SetAttr("touched", "yes")
	result.FirstElement("element").FirstElement("x").SetAttr("touched", "yes")

	assert.Equal(t, sourceBefore, source.String())
	assert.Equal(t, targetBefore, target.String())
}

func TestMerge_RootComesFromSource(t *testing.T) {
	t.Parallel()
	source := node(t, `<defaults base="yes"/>`)
	target := node(t, `<configuration name="Foo"><a/></configuration>`)

	result := inherit.Merger{}.Merge(source, target)

	assert.Equal(t, `<defaults base="yes"><a/></defaults>`, result.String())
}

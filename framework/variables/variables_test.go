package variables_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/configy/framework/definition"
	"github.com/km-arc/configy/framework/document"
	"github.com/km-arc/configy/framework/tree"
	"github.com/km-arc/configy/framework/variables"
)

func parse(t *testing.T, src string) *tree.Node {
	t.Helper()
	n, err := document.ParseXML([]byte(src))
	require.NoError(t, err)
	return n
}

func newTable(t *testing.T) *variables.Table {
	t.Helper()
	vars := variables.New()
	require.NoError(t, vars.AddVariable("var", "baz"))
	return vars
}

func TestReplaceVariables_ShouldNotReplaceRootAttributeVariable(t *testing.T) {
	t.Parallel()
	node := parse(t, `<b var="$(var)"></b>`)

	newTable(t).ReplaceVariables(node)

	assert.Equal(t, "$(var)", node.AttrValue("var"))
}

func TestReplaceVariables_ShouldReplaceBodyVariable(t *testing.T) {
	t.Parallel()
	node := parse(t, `<b>$(var)</b>`)

	newTable(t).ReplaceVariables(node)

	assert.Equal(t, "baz", node.InnerText())
}

func TestReplaceVariables_ShouldReplaceAttributeVariable_OnChildElement(t *testing.T) {
	t.Parallel()
	node := parse(t, `<a><b><c var="$(var)"></c></b></a>`)

	newTable(t).ReplaceVariables(node)

	assert.Equal(t, "baz", node.FirstElement("b").FirstElement("c").AttrValue("var"))
}

func TestReplaceVariables_ShouldReplaceBodyVariable_OnChildElement(t *testing.T) {
	t.Parallel()
	node := parse(t, `<a><b>$(var)</b></a>`)

	newTable(t).ReplaceVariables(node)

	assert.Equal(t, "baz", node.FirstElement("b").InnerText())
}

func TestAddVariable_DuplicateIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	vars := variables.New()
	require.NoError(t, vars.AddVariable("Foo", "1"))

	err := vars.AddVariable("FOO", "2")

	var dup *variables.DuplicateVariableError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "FOO", dup.Name)
	v, _ := vars.Lookup("foo")
	assert.Equal(t, "1", v)
}

func TestApply(t *testing.T) {
	t.Parallel()
	vars := variables.New()
	require.NoError(t, vars.AddVariables(map[string]string{"Host": "db", "port": "5432", "nested": "$(host)"}))

	tests := []struct {
		in, want string
	}{
		{"$(host):$(PORT)", "db:5432"},
		{"no tokens", "no tokens"},
		{"$(unknown)-$(host)", "$(unknown)-db"},
		{"$(host", "$(host"},
		{"$(nested)", "$(host)"},
		{"$$(host))", "$db)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, vars.Apply(tt.in), tt.in)
	}
	assert.Equal(t, 3, vars.Len())
}

func TestReplaceVariables_RewritesComments(t *testing.T) {
	t.Parallel()
	node := parse(t, `<a><!-- $(var) --><b/></a>`)

	newTable(t).ReplaceVariables(node)

	assert.Equal(t, `<a><!-- baz --><b/></a>`, node.String())
}

func TestReplaceDefinition_KeepsDefinitionAttributes(t *testing.T) {
	t.Parallel()
	def := definition.New(parse(t, `<configuration name="$(var)" extends="$(var)"><dep type="$(var)"/></configuration>`))

	newTable(t).ReplaceDefinition(def)

	assert.Equal(t, "$(var)", def.Name())
	assert.Equal(t, "$(var)", def.Extends())
	assert.Equal(t, "baz", def.Dependencies()[0].AttrValue("type"))
}

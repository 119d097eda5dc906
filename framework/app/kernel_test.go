package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/configy/framework/app"
	"github.com/km-arc/configy/framework/config"
	"github.com/km-arc/configy/framework/container"
	"github.com/km-arc/configy/framework/definition"
	"github.com/km-arc/configy/framework/providers"
)

const definitions = `<configurations>
	<configuration name="Web" extends="Base">
		<settings region="$(region)"/>
	</configuration>
	<configuration name="Base" abstract="true">
		<settings type="settings" singleInstance="true" tier="$(tier)"/>
	</configuration>
	<configuration name="Worker"/>
</configurations>`

const defaults = `<defaults><logger type="logger" singleInstance="true" prefix="base"/></defaults>`

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newApp(t *testing.T, cfg *config.Config) *app.Application {
	t.Helper()
	a, err := app.New(cfg, nil)
	require.NoError(t, err)
	return a
}

func TestLoad_BuildsContainersFromFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg := &config.Config{
		Document:      write(t, dir, "configy.xml", definitions),
		Base:          write(t, dir, "defaults.xml", defaults),
		VariableFiles: []string{write(t, dir, "vars.env", "REGION=eu\n")},
		Variables:     map[string]string{"tier": "gold"},
	}
	a := newApp(t, cfg)

	require.NoError(t, a.Load(context.Background()))

	require.Len(t, a.Definitions(), 3)
	require.Len(t, a.Containers(), 2)
	assert.Equal(t, "Base", a.Definitions()[0].Name())

	web, ok := a.Container("web")
	require.True(t, ok)
	assert.Equal(t, "Base", web.Extends)

	s, err := container.Resolve[providers.Settings](web)
	require.NoError(t, err)
	region, _ := s.Get("region")
	tier, _ := s.Get("tier")
	assert.Equal(t, "eu", region)
	assert.Equal(t, "gold", tier)

	l, err := container.Resolve[*log.Logger](web)
	require.NoError(t, err)
	assert.Equal(t, "base", l.GetPrefix())

	got, err := container.Resolve[*config.Config](web)
	require.NoError(t, err)
	assert.Same(t, cfg, got)
}

func TestLoad_YAMLDocument(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg := &config.Config{
		Document: write(t, dir, "configy.yaml", `
configurations:
  children:
    - configuration:
        name: Only
        children:
          - settings: { type: settings, singleInstance: true, region: us }
`),
	}
	a := newApp(t, cfg)

	require.NoError(t, a.Load(context.Background()))

	c, ok := a.Container("Only")
	require.True(t, ok)
	assert.NoError(t, c.AssertSingleton(container.KeyOf[providers.Settings]()))
}

func TestLoad_TOMLDocument(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg := &config.Config{
		Document: write(t, dir, "configy.toml", `
[[configuration]]
name = "Only"

  [[configuration.settings]]
  type = "settings"
  singleInstance = true
  region = "ap"
`),
	}
	a := newApp(t, cfg)

	require.NoError(t, a.Load(context.Background()))

	c, ok := a.Container("Only")
	require.True(t, ok)
	s, err := container.Resolve[providers.Settings](c)
	require.NoError(t, err)
	region, _ := s.Get("region")
	assert.Equal(t, "ap", region)
}

func TestLoad_FailureKeepsNoContainers(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	a := newApp(t, &config.Config{Document: write(t, dir, "ok.xml", `<configurations><configuration name="A"/></configurations>`)})
	require.NoError(t, a.Load(context.Background()))
	require.Len(t, a.Containers(), 1)

	a.Config.Document = write(t, dir, "loop.xml", `<configurations>
		<configuration name="A" extends="B"/>
		<configuration name="B" extends="A"/>
	</configurations>`)
	err := a.Load(context.Background())

	var loop *definition.InheritanceLoopError
	require.ErrorAs(t, err, &loop)
	assert.Empty(t, a.Containers())
	assert.Empty(t, a.Definitions())
}

func TestLoad_BootFailureAbortsLoad(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	a := newApp(t, &config.Config{Document: write(t, dir, "c.xml", `<configurations><configuration name="A"/></configurations>`)})
	require.NoError(t, a.Register(&providers.AssertionProvider{
		Required: []container.Key{container.KeyOf[providers.Settings]()},
	}))

	err := a.Load(context.Background())

	var cfgErr *container.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Empty(t, a.Containers())
}

func TestLoad_DuplicateVariable(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	a := newApp(t, &config.Config{
		Document:      write(t, dir, "c.xml", `<configurations/>`),
		VariableFiles: []string{write(t, dir, "vars.env", "TIER=silver\n")},
		Variables:     map[string]string{"tier": "gold"},
	})

	err := a.Load(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already been defined")
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newApp(t, nil).Load(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoad_MissingDocument(t *testing.T) {
	t.Parallel()
	err := newApp(t, &config.Config{Document: filepath.Join(t.TempDir(), "missing.xml")}).Load(context.Background())

	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	l, err := app.NewLogger(&buf, config.LogConfig{Level: "debug"})
	require.NoError(t, err)
	l.Debug("hello")
	assert.Contains(t, buf.String(), "hello")

	_, err = app.NewLogger(&buf, config.LogConfig{Level: "shouting"})
	assert.Error(t, err)
}

package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/configy/framework/config"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := config.Load(context.Background(), config.LoadOptions{SearchPaths: []string{t.TempDir()}})

	require.NoError(t, err)
	if diff := cmp.Diff(config.DefaultConfig(), cfg, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_SearchesForConfigFile(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "configy.yaml", `
document: defs.xml
base: base.xml
variable_files: [a.env, b.env]
variables:
  region: eu
log:
  level: debug
`)

	cfg, err := config.Load(context.Background(), config.LoadOptions{SearchPaths: []string{dir}})

	require.NoError(t, err)
	want := &config.Config{
		Document:      "defs.xml",
		Base:          "base.xml",
		VariableFiles: []string{"a.env", "b.env"},
		Variables:     map[string]string{"region": "eu"},
		Log:           config.LogConfig{Level: "debug"},
	}
	if diff := cmp.Diff(want, cfg, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "custom.yaml", "document: file.xml\n")
	t.Setenv("CONFIGY_DOCUMENT", "env.xml")
	t.Setenv("CONFIGY_LOG_LEVEL", "warn")

	cfg, err := config.Load(context.Background(), config.LoadOptions{ConfigFilePath: path})

	require.NoError(t, err)
	assert.Equal(t, "env.xml", cfg.Document)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	_, err := config.Load(context.Background(), config.LoadOptions{ConfigFilePath: filepath.Join(t.TempDir(), "missing.yaml")})

	assert.Error(t, err)
}

func TestLoad_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := config.Load(ctx, config.LoadOptions{})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadVariables(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	a := write(t, dir, "a.env", "HOST=example.com\n# comment\nPORT=8080\n")
	b := write(t, dir, "b.env", "region=eu\n")

	vars, err := config.LoadVariables(a, b)

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"HOST": "example.com", "PORT": "8080", "region": "eu"}, vars)
}

func TestLoadVariables_DuplicateAcrossFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	a := write(t, dir, "a.env", "HOST=one\n")
	b := write(t, dir, "b.env", "host=two\n")

	_, err := config.LoadVariables(a, b)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "defined in both")
}

func TestLoadVariables_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := config.LoadVariables(filepath.Join(t.TempDir(), "nope.env"))

	assert.Error(t, err)
}

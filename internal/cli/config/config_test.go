package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/querybench-labs/querybench/pkg/dialect"
)

// chdir changes the working directory for the duration of the test,
// matching the behavior of testing.T.Chdir (Go 1.24+) on older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "querybench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultDialect, cfg.Dialect)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, dialect.SQL, cfg.DefaultDialectTag())
}

func TestLoadConfigFromFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	path := writeConfig(t, dir, `
dialect: mongodb
output: json
schema:
  collections:
    users: [name, age]
  tables:
    orders: [id, total]
  keyspaces: [0, 1]
  keys: [user:1]
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "mongodb", cfg.Dialect)
	assert.Equal(t, dialect.Mongo, cfg.DefaultDialectTag())
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, []string{"name", "age"}, cfg.Schema.Collections["users"])
	assert.Equal(t, []int{0, 1}, cfg.Schema.Keyspaces)

	meta := cfg.Metadata()
	assert.Equal(t, []string{"id", "total"}, meta.Tables["orders"])
	assert.Equal(t, []string{"user:1"}, meta.Keys)
}

func TestLoadConfigUpwardSearch(t *testing.T) {
	ResetConfig()
	root := t.TempDir()
	writeConfig(t, root, "dialect: redis\n")

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	chdir(t, nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Dialect)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	path := writeConfig(t, dir, "dialect: sql\n")

	t.Setenv("QUERYBENCH_DIALECT", "redis")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Dialect)
}

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())
	t.Setenv("QUERYBENCH_DIALECT", "redis")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("dialect", DefaultDialect, "")
	require.NoError(t, flags.Parse([]string{"--dialect", "mongodb"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "mongodb", cfg.Dialect)
}

func TestLoadConfigUnchangedFlagsIgnored(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("dialect", "redis", "")

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, DefaultDialect, cfg.Dialect, "default flag value must not override")
}

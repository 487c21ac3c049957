package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/redist/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points XDG_CONFIG_HOME at an empty temp dir so the user's own
// redist.toml never leaks into a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(EnvConfigFile, "")
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "__redist_default_register__", cfg.Registry.Key)
	assert.True(t, cfg.Registry.Global)
	assert.Equal(t, 0, cfg.Logging.Verbosity)
	assert.False(t, cfg.Logging.File)
}

func TestLoadPrecedence(t *testing.T) {
	t.Run("xdg_file_overrides_defaults", func(t *testing.T) {
		dir := isolate(t)
		writeFile(t, filepath.Join(dir, "redist", FileName), `
[registry]
key = "from-file"
global = false
`)

		cfg, err := Load("", nil)
		require.NoError(t, err)
		assert.Equal(t, "from-file", cfg.Registry.Key)
		assert.False(t, cfg.Registry.Global)
	})

	t.Run("env_overrides_file", func(t *testing.T) {
		dir := isolate(t)
		path := filepath.Join(dir, "custom.toml")
		writeFile(t, path, `
[registry]
key = "from-file"

[logging]
verbosity = 1
`)
		t.Setenv("REDIST_REGISTRY_KEY", "from-env")
		t.Setenv("REDIST_LOGGING_FILE", "true")

		cfg, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Registry.Key)
		assert.Equal(t, 1, cfg.Logging.Verbosity)
		assert.True(t, cfg.Logging.File)
	})

	t.Run("overrides_win", func(t *testing.T) {
		isolate(t)
		t.Setenv("REDIST_LOGGING_VERBOSITY", "1")

		cfg, err := Load("", map[string]interface{}{"logging.verbosity": 3})
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Logging.Verbosity)
	})

	t.Run("yaml_file", func(t *testing.T) {
		dir := isolate(t)
		path := filepath.Join(dir, "redist.yaml")
		writeFile(t, path, "registry:\n  key: from-yaml\n  global: false\nlogging:\n  verbosity: 2\n")

		cfg, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "from-yaml", cfg.Registry.Key)
		assert.False(t, cfg.Registry.Global)
		assert.Equal(t, 2, cfg.Logging.Verbosity)
	})

	t.Run("config_env_var_selects_file", func(t *testing.T) {
		dir := isolate(t)
		path := filepath.Join(dir, "elsewhere.toml")
		writeFile(t, path, "[registry]\nkey = \"elsewhere\"\n")
		t.Setenv(EnvConfigFile, path)

		cfg, err := Load("", nil)
		require.NoError(t, err)
		assert.Equal(t, "elsewhere", cfg.Registry.Key)
	})
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing_explicit_file", func(t *testing.T) {
		dir := isolate(t)

		_, err := Load(filepath.Join(dir, "nope.toml"), nil)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad), "got %v", err)
	})

	t.Run("malformed_file", func(t *testing.T) {
		dir := isolate(t)
		path := filepath.Join(dir, "bad.toml")
		writeFile(t, path, "[registry\nkey=")

		_, err := Load(path, nil)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse), "got %v", err)
	})

	t.Run("negative_verbosity", func(t *testing.T) {
		isolate(t)

		_, err := Load("", map[string]interface{}{"logging.verbosity": -1})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid), "got %v", err)
	})
}

func TestTOML(t *testing.T) {
	cfg := &Config{
		Registry: RegistryConfig{Key: "k", Global: true},
		Logging:  LoggingConfig{Verbosity: 2},
	}

	out, err := cfg.TOML()
	require.NoError(t, err)

	assert.Contains(t, string(out), "[registry]")
	assert.Regexp(t, `key = ['"]k['"]`, string(out))
	assert.Contains(t, string(out), "verbosity = 2")
}

func TestDefaultContent(t *testing.T) {
	assert.Contains(t, DefaultContent(), "[registry]")
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/bulkmv/pkg/config"
	"github.com/arthur-debert/bulkmv/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points XDG at empty temp dirs so the developer's own config
// never leaks into a test
func isolate(t *testing.T) (configHome, cacheHome string) {
	t.Helper()
	configHome, cacheHome = t.TempDir(), t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	return configHome, cacheHome
}

func writeUserConfig(t *testing.T, configHome, name, content string) string {
	t.Helper()
	dir := filepath.Join(configHome, config.AppName)
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	_, cacheHome := isolate(t)

	cfg, err := config.Load(config.Options{})
	require.NoError(t, err)

	assert.Empty(t, cfg.Editor)
	assert.True(t, cfg.Confirm)
	assert.Equal(t, filepath.Join(cacheHome, "bulkmv"), cfg.Handoff.Dir)
	assert.Equal(t, "bulk", cfg.Handoff.Prefix)
	assert.Equal(t, "auto", cfg.UI.Format)
	assert.True(t, cfg.UI.Clear)
	assert.False(t, cfg.Watch.Enabled)
	assert.Equal(t, 50*time.Millisecond, cfg.Watch.Settle)
	assert.False(t, cfg.Events.JSON)
	assert.Empty(t, cfg.Source)
}

func TestDefault_MatchesLoadWithoutSources(t *testing.T) {
	isolate(t)

	loaded, err := config.Load(config.Options{})
	require.NoError(t, err)
	assert.Equal(t, loaded, config.Default())
}

func TestLoad_Layers(t *testing.T) {
	configHome, _ := isolate(t)
	path := writeUserConfig(t, configHome, "config.toml", `
editor = ["nvim", "-f"]
confirm = false

[handoff]
dir = "/tmp/handoff"

[watch]
settle = "200ms"
`)

	t.Run("user file", func(t *testing.T) {
		cfg, err := config.Load(config.Options{})
		require.NoError(t, err)

		assert.Equal(t, path, cfg.Source)
		assert.Equal(t, []string{"nvim", "-f"}, cfg.Editor)
		assert.False(t, cfg.Confirm)
		assert.Equal(t, "/tmp/handoff", cfg.Handoff.Dir)
		assert.Equal(t, 200*time.Millisecond, cfg.Watch.Settle)
		assert.Equal(t, "bulk", cfg.Handoff.Prefix, "unset keys keep defaults")
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv("BULKMV_HANDOFF_DIR", "/env/handoff")
		t.Setenv("BULKMV_EDITOR", "code --wait")
		t.Setenv("BULKMV_EVENTS_JSON", "true")

		cfg, err := config.Load(config.Options{})
		require.NoError(t, err)

		assert.Equal(t, "/env/handoff", cfg.Handoff.Dir)
		assert.Equal(t, []string{"code", "--wait"}, cfg.Editor)
		assert.True(t, cfg.Events.JSON)
	})

	t.Run("flags over env", func(t *testing.T) {
		t.Setenv("BULKMV_UI_FORMAT", "term")

		cfg, err := config.Load(config.Options{Overrides: map[string]interface{}{
			"ui.format": "text",
			"confirm":   true,
		}})
		require.NoError(t, err)

		assert.Equal(t, "text", cfg.UI.Format)
		assert.True(t, cfg.Confirm)
	})
}

func TestLoad_YAMLUserConfig(t *testing.T) {
	configHome, _ := isolate(t)
	writeUserConfig(t, configHome, "config.yaml", `
ui:
  clear: false
watch:
  enabled: true
`)

	cfg, err := config.Load(config.Options{})
	require.NoError(t, err)
	assert.False(t, cfg.UI.Clear)
	assert.True(t, cfg.Watch.Enabled)
}

func TestLoad_ExplicitPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[handoff]\nprefix = \"rename\"\n"), 0644))

	cfg, err := config.Load(config.Options{Path: path})
	require.NoError(t, err)
	assert.Equal(t, "rename", cfg.Handoff.Prefix)
	assert.Equal(t, path, cfg.Source)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		path    string
		code    errors.ErrorCode
	}{
		{name: "missing explicit file", path: "/no/such/config.toml", code: errors.ErrConfigLoad},
		{name: "malformed toml", content: "confirm = = true", code: errors.ErrConfigParse},
		{name: "unknown format", content: "[ui]\nformat = \"fancy\"", code: errors.ErrConfigValid},
		{name: "negative settle", content: "[watch]\nsettle = \"-1s\"", code: errors.ErrConfigValid},
		{name: "bad duration", content: "[watch]\nsettle = \"soon\"", code: errors.ErrConfigParse},
		{name: "prefix with separator", content: "[handoff]\nprefix = \"a/b\"", code: errors.ErrConfigValid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := tt.path
			if path == "" {
				path = filepath.Join(t.TempDir(), "config.toml")
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			}

			_, err := config.Load(config.Options{Path: path})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestConfig_TOML(t *testing.T) {
	isolate(t)
	cfg, err := config.Load(config.Options{Overrides: map[string]interface{}{"editor": "hx"}})
	require.NoError(t, err)

	data, err := cfg.TOML()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, toml.Unmarshal(data, &decoded))
	assert.Equal(t, []interface{}{"hx"}, decoded["editor"])
	assert.Equal(t, true, decoded["confirm"])
	assert.Equal(t, "50ms", decoded["watch"].(map[string]interface{})["settle"])
	assert.Equal(t, "bulk", decoded["handoff"].(map[string]interface{})["prefix"])
}

func TestDefaultsContent(t *testing.T) {
	assert.Contains(t, config.DefaultsContent(), "[handoff]")
}

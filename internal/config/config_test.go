package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultPageSize, cfg.Table.PageSize)
	assert.Equal(t, "da", cfg.Language)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{name: "missing base url", mutate: func(c *Config) { c.API.BaseURL = "" }, field: "BaseURL"},
		{name: "bad base url", mutate: func(c *Config) { c.API.BaseURL = "not a url" }, field: "BaseURL"},
		{name: "zero page size", mutate: func(c *Config) { c.Table.PageSize = 0 }, field: "PageSize"},
		{name: "bad page size option", mutate: func(c *Config) { c.Table.PageSizeOptions = []int{10, -1} }, field: "PageSizeOptions"},
		{name: "unknown language", mutate: func(c *Config) { c.Language = "fr" }, field: "Language"},
		{name: "unknown log level", mutate: func(c *Config) { c.Logging.Level = "loud" }, field: "Level"},
		{name: "unknown output", mutate: func(c *Config) { c.Output.DefaultFormat = "xml" }, field: "DefaultFormat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestShallowMergeYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	overlay := `
api:
  base_url: https://iot.example.dk/api/v1
table:
  page_size_options: [25, 100]
language: en
unknown_section:
  ignored: true
`
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o600))

	cfg := Default()
	require.NoError(t, ShallowMergeYAML(cfg, path))

	assert.Equal(t, "https://iot.example.dk/api/v1", cfg.API.BaseURL)
	assert.Equal(t, DefaultTimeoutSeconds, cfg.API.TimeoutSeconds, "fields absent in the overlay are kept")
	assert.Equal(t, []int{25, 100}, cfg.Table.PageSizeOptions)
	assert.Equal(t, DefaultPageSize, cfg.Table.PageSize)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	require.Error(t, ShallowMergeYAML(nil, "x.yaml"))
	require.Error(t, ShallowMergeYAML(Default(), filepath.Join(t.TempDir(), "missing.yaml")))

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unterminated"), 0o600))
	assert.Error(t, ShallowMergeYAML(Default(), path))
}

func TestShallowMergeYAML_BadSectionLeavesTargetUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	overlay := `
api:
  base_url: https://iot.example.dk/api/v1
  timeout_seconds: soon
`
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o600))

	cfg := Default()
	want := cfg.API
	require.Error(t, ShallowMergeYAML(cfg, path))
	assert.Equal(t, want, cfg.API)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := ApplyEnv(cfg, lookupFrom(map[string]string{
		EnvAPIURL:   "https://env.example.dk",
		EnvToken:    "secret",
		EnvLang:     "en",
		EnvTimeout:  "5",
		EnvPageSize: "20",
		EnvLogLevel: "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.dk", cfg.API.BaseURL)
	assert.Equal(t, "secret", cfg.API.Token)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, 5, cfg.API.TimeoutSeconds)
	assert.Equal(t, 20, cfg.Table.PageSize)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestApplyEnv_BadNumbers(t *testing.T) {
	cfg := Default()
	err := ApplyEnv(cfg, lookupFrom(map[string]string{EnvTimeout: "soon", EnvPageSize: "many"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvTimeout)
	assert.Contains(t, err.Error(), EnvPageSize)
	assert.Equal(t, DefaultTimeoutSeconds, cfg.API.TimeoutSeconds)
}

func TestLoad_UserFileAndOverlay(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvLang, "")

	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("language: en\n"), 0o600))
	overlay := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(overlay, []byte("table:\n  page_size: 50\n"), 0o600))

	cfg, err := Load(overlay)
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, 50, cfg.Table.PageSize)
}

func TestLoad_MissingOverlayKeepsDefaults(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultPageSize, cfg.Table.PageSize)
}

func TestSave_DropsToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := Default()
	cfg.API.Token = "secret"
	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
	assert.Equal(t, "secret", cfg.API.Token, "caller's config is not modified")

	loaded := Default()
	loaded.Language = "en"
	require.NoError(t, ShallowMergeYAML(loaded, path))
	assert.Equal(t, "da", loaded.Language)
}

func TestGlobalConfig(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	assert.Equal(t, DefaultPageSize, GetPageSize())

	cfg := Default()
	cfg.Table.PageSize = 42
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "app.log")
	SetGlobalConfig(cfg)
	assert.Equal(t, 42, GetPageSize())
	require.NoError(t, EnsureLogDir())

	lc := GetLoggingConfig()
	assert.Equal(t, "file", lc.ToLoggingConfig().Output)
}

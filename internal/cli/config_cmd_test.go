package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/os2iot/iotconsole/internal/config"
)

func TestConfigInit_WritesEffectiveConfig(t *testing.T) {
	home := isolate(t)

	out, err := execute(t, "", "--api-url", "https://iot.example.dk/api/v1", "--lang", "en", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")

	data, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	var saved config.Config
	require.NoError(t, yaml.Unmarshal(data, &saved))
	assert.Equal(t, "https://iot.example.dk/api/v1", saved.API.BaseURL)
	assert.Equal(t, "en", saved.Language)
}

func TestConfigInit_RefusesOverwrite(t *testing.T) {
	isolate(t)

	_, err := execute(t, "", "config", "init")
	require.NoError(t, err)

	_, err = execute(t, "", "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "", "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigInit_NeverPersistsToken(t *testing.T) {
	home := isolate(t)

	_, err := execute(t, "", "--token", "secret", "config", "init")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
}

func TestConfigShow_MasksToken(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "--token", "secret", "-o", "json", "config", "show")
	require.NoError(t, err)

	var shown config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, maskedToken, shown.API.Token)
	assert.Equal(t, config.DefaultAPIURL, shown.API.BaseURL)
}

func TestConfigShow_DefaultsToYAML(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "base_url: "+config.DefaultAPIURL)
}

func TestConfigValidate(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")

	_, err = execute(t, "", "--api-url", "not a url", "config", "validate")
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestConfigFile_IsLoaded(t *testing.T) {
	home := isolate(t)
	_, url := newBackend(t)

	cfg := config.Default()
	cfg.API.BaseURL = url
	cfg.Output.DefaultFormat = "json"
	require.NoError(t, cfg.Save(filepath.Join(home, "config.yaml")))

	out, err := execute(t, "", "device-models", "list")
	require.NoError(t, err)
	assert.Contains(t, out, `"items"`)
	assert.Contains(t, out, "Temperature sensor")
}

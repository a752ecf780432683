package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetState clears the global viper instance and every environment variable
// the loader reads, so tests do not leak into each other.
func resetState(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	for _, env := range os.Environ() {
		key := strings.SplitN(env, "=", 2)[0]
		if strings.HasPrefix(key, EnvPrefix+"_") || strings.HasPrefix(key, "AZURE_") ||
			key == envModelID || key == "XDG_CONFIG_HOME" {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}
}

func chdirTemp(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	resetState(t)
	chdirTemp(t)

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 50, cfg.Server.MaxUploadMB)
	assert.Equal(t, "erg-monitor-reader-v4", cfg.Azure.ModelID)
	assert.Empty(t, cfg.Azure.Endpoint)
}

func TestLoadWithFile(t *testing.T) {
	resetState(t)

	configFile := filepath.Join(t.TempDir(), "ergsnap.yaml")
	yamlContent := `
log_level: debug
verbose: true
azure:
  endpoint: https://example.cognitiveservices.azure.com
  key: file-key
  model_id: custom-model
server:
  port: 9090
  cors_origin: https://app.example.com
batch:
  continue_on_error: true
`
	require.NoError(t, os.WriteFile(configFile, []byte(yamlContent), 0o644))

	cfg, err := NewLoader().LoadWithFile(configFile)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "https://example.cognitiveservices.azure.com", cfg.Azure.Endpoint)
	assert.Equal(t, "file-key", cfg.Azure.Key)
	assert.Equal(t, "custom-model", cfg.Azure.ModelID)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://app.example.com", cfg.Server.CORSOrigin)
	assert.True(t, cfg.Batch.ContinueOnError)
	// Unset values keep defaults.
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestLoadWithMissingFile(t *testing.T) {
	resetState(t)

	_, err := NewLoader().LoadWithFile("/nonexistent/ergsnap.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoadWithInvalidYAML(t *testing.T) {
	resetState(t)

	configFile := filepath.Join(t.TempDir(), "ergsnap.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("log_level: [unclosed"), 0o644))

	_, err := NewLoader().LoadWithFile(configFile)
	require.Error(t, err)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	resetState(t)
	chdirTemp(t)

	t.Setenv("ERGSNAP_LOG_LEVEL", "warn")
	t.Setenv("ERGSNAP_SERVER_PORT", "9999")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 9999, cfg.Server.Port)
}

func TestLoadLegacyAzureEnvironment(t *testing.T) {
	resetState(t)
	chdirTemp(t)

	t.Setenv(envAzureEndpoint, "https://legacy.cognitiveservices.azure.com")
	t.Setenv(envAzureKey, "legacy-key")
	t.Setenv(envModelID, "legacy-model")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "https://legacy.cognitiveservices.azure.com", cfg.Azure.Endpoint)
	assert.Equal(t, "legacy-key", cfg.Azure.Key)
	assert.Equal(t, "legacy-model", cfg.Azure.ModelID)
}

func TestLoadFileOutranksLegacyEnvironment(t *testing.T) {
	resetState(t)

	configFile := filepath.Join(t.TempDir(), "ergsnap.yaml")
	yamlContent := `
azure:
  endpoint: https://file.cognitiveservices.azure.com
  key: file-key
`
	require.NoError(t, os.WriteFile(configFile, []byte(yamlContent), 0o644))

	t.Setenv(envAzureEndpoint, "https://legacy.cognitiveservices.azure.com")
	t.Setenv(envAzureKey, "legacy-key")

	cfg, err := NewLoader().LoadWithFile(configFile)
	require.NoError(t, err)
	assert.Equal(t, "https://file.cognitiveservices.azure.com", cfg.Azure.Endpoint)
	assert.Equal(t, "file-key", cfg.Azure.Key)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	resetState(t)
	chdirTemp(t)

	t.Setenv("ERGSNAP_SERVER_PORT", "70000")

	_, err := NewLoader().Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}

func TestUnmarshalAfterFlagBinding(t *testing.T) {
	resetState(t)
	chdirTemp(t)

	loader := NewLoader()
	_, err := loader.Load()
	require.NoError(t, err)

	// A bound flag shows up as a plain viper value.
	loader.GetViper().Set("log_level", "debug")
	loader.GetViper().Set("server.port", 9191)

	cfg, err := loader.Unmarshal()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9191, cfg.Server.Port)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "ergsnap"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "ERGSNAP"
)

// Azure environment variables honored for compatibility with existing
// deployments, checked when the prefixed variables and config file leave the
// corresponding values unset.
const (
	envAzureEndpoint   = "AZURE_DOCUMENT_INTELLIGENCE_ENDPOINT"
	envAzureKey        = "AZURE_DOCUMENT_INTELLIGENCE_KEY"
	envAzureAPIVersion = "AZURE_DOC_INTELLIGENCE_API_VERSION"
	envModelID         = "ERG_MONITOR_MODEL_ID"
)

// Loader handles loading configuration from various sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader backed by the global viper
// instance so command-line flag bindings apply.
func NewLoader() *Loader {
	return &Loader{v: viper.GetViper()}
}

// Load reads configuration from the search paths, environment variables and
// defaults, validates it, and returns the result. A missing config file is
// fine; defaults and environment cover it.
func (l *Loader) Load() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")
	l.addConfigPaths()
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return l.finish()
}

// LoadWithFile loads configuration from a specific file path.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	if configFile == "" {
		return l.Load()
	}
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configFile)
	}

	l.v.SetConfigFile(configFile)
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
	}
	return l.finish()
}

// Unmarshal re-reads the assembled configuration from viper. Commands call
// this after flag binding so flag values take effect.
func (l *Loader) Unmarshal() (*Config, error) {
	return l.finish()
}

func (l *Loader) finish() (*Config, error) {
	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	applyAzureEnvironment(&config)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// applyAzureEnvironment fills Azure settings still unset after file and
// prefixed-env resolution from the legacy variable names. This is the only
// place ambient process state is read; the pipeline itself works purely from
// the assembled configuration.
func applyAzureEnvironment(config *Config) {
	if config.Azure.Endpoint == "" {
		config.Azure.Endpoint = os.Getenv(envAzureEndpoint)
	}
	if config.Azure.Key == "" {
		config.Azure.Key = os.Getenv(envAzureKey)
	}
	if v := os.Getenv(envAzureAPIVersion); v != "" && config.Azure.APIVersion == DefaultConfig().Azure.APIVersion {
		config.Azure.APIVersion = v
	}
	if v := os.Getenv(envModelID); v != "" && config.Azure.ModelID == DefaultConfig().Azure.ModelID {
		config.Azure.ModelID = v
	}
}

// GetViper returns the underlying viper instance for flag binding.
func (l *Loader) GetViper() *viper.Viper {
	return l.v
}

// addConfigPaths adds the standard configuration search paths.
func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(home)
	}

	l.v.AddConfigPath("/etc/ergsnap")

	if configDir, exists := os.LookupEnv("XDG_CONFIG_HOME"); exists {
		l.v.AddConfigPath(filepath.Join(configDir, "ergsnap"))
	} else if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(filepath.Join(home, ".config", "ergsnap"))
	}
}

// setupEnvironmentVariables configures environment variable handling.
func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

// setDefaults sets default values for all configuration options.
func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	l.v.SetDefault("log_level", defaults.LogLevel)
	l.v.SetDefault("verbose", defaults.Verbose)

	l.v.SetDefault("azure.model_id", defaults.Azure.ModelID)
	l.v.SetDefault("azure.api_version", defaults.Azure.APIVersion)
	l.v.SetDefault("azure.poll_interval", defaults.Azure.PollInterval)
	l.v.SetDefault("azure.max_polls", defaults.Azure.MaxPolls)

	l.v.SetDefault("server.host", defaults.Server.Host)
	l.v.SetDefault("server.port", defaults.Server.Port)
	l.v.SetDefault("server.cors_origin", defaults.Server.CORSOrigin)
	l.v.SetDefault("server.max_upload_mb", defaults.Server.MaxUploadMB)
	l.v.SetDefault("server.timeout_sec", defaults.Server.TimeoutSec)
	l.v.SetDefault("server.shutdown_timeout", defaults.Server.ShutdownTimeout)

	l.v.SetDefault("pipeline.max_workers", defaults.Pipeline.MaxWorkers)

	l.v.SetDefault("batch.continue_on_error", defaults.Batch.ContinueOnError)
}

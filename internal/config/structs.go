// Package config assembles the application configuration from files,
// environment variables and defaults, and converts it into component
// configurations.
package config

import (
	"fmt"
	"runtime"
	"time"

	"github.com/MeKo-Tech/ergsnap/internal/ocr"
	"github.com/MeKo-Tech/ergsnap/internal/pipeline"
)

// AzureConfig holds the document service connection settings.
type AzureConfig struct {
	Endpoint     string        `mapstructure:"endpoint"`
	Key          string        `mapstructure:"key"`
	ModelID      string        `mapstructure:"model_id"`
	APIVersion   string        `mapstructure:"api_version"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	MaxPolls     int           `mapstructure:"max_polls"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	CORSOrigin      string `mapstructure:"cors_origin"`
	MaxUploadMB     int    `mapstructure:"max_upload_mb"`
	TimeoutSec      int    `mapstructure:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

// PipelineConfig holds the tunables the pipeline exposes to operators.
type PipelineConfig struct {
	MaxWorkers int `mapstructure:"max_workers"`
}

// BatchConfig holds offline batch-mode settings.
type BatchConfig struct {
	ContinueOnError bool `mapstructure:"continue_on_error"`
}

// Config is the top-level application configuration.
type Config struct {
	LogLevel string         `mapstructure:"log_level"`
	Verbose  bool           `mapstructure:"verbose"`
	Azure    AzureConfig    `mapstructure:"azure"`
	Server   ServerConfig   `mapstructure:"server"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Batch    BatchConfig    `mapstructure:"batch"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Verbose:  false,
		Azure: AzureConfig{
			ModelID:      ocr.DefaultModelID,
			APIVersion:   ocr.DefaultAPIVersion,
			PollInterval: ocr.DefaultPollInterval,
			MaxPolls:     ocr.DefaultMaxPolls,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			CORSOrigin:      "*",
			MaxUploadMB:     50,
			TimeoutSec:      120,
			ShutdownTimeout: 10,
		},
		Pipeline: PipelineConfig{
			MaxWorkers: runtime.NumCPU(),
		},
		Batch: BatchConfig{
			ContinueOnError: false,
		},
	}
}

// Validate checks the configuration for invalid values. Missing Azure
// credentials are not an error here; requests may carry their own.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.MaxUploadMB < 1 {
		return fmt.Errorf("max upload size must be at least 1 MB, got %d", c.Server.MaxUploadMB)
	}
	if c.Pipeline.MaxWorkers < 0 {
		return fmt.Errorf("max workers must not be negative, got %d", c.Pipeline.MaxWorkers)
	}
	if c.Azure.MaxPolls < 1 {
		return fmt.Errorf("max polls must be at least 1, got %d", c.Azure.MaxPolls)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// ToPipelineConfig converts the application configuration into the pipeline's
// component configuration.
func (c *Config) ToPipelineConfig() pipeline.Config {
	pc := pipeline.DefaultConfig()
	pc.OCR = ocr.Config{
		Endpoint:     c.Azure.Endpoint,
		Key:          c.Azure.Key,
		ModelID:      c.Azure.ModelID,
		APIVersion:   c.Azure.APIVersion,
		PollInterval: c.Azure.PollInterval,
		MaxPolls:     c.Azure.MaxPolls,
	}.WithDefaults()
	if c.Pipeline.MaxWorkers > 0 {
		pc.Parallel.MaxWorkers = c.Pipeline.MaxWorkers
	}
	return pc
}

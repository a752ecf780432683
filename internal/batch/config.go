// Package batch processes monitor photos from the filesystem through the
// same pipeline the HTTP server uses, writing the same response JSON per
// input file.
package batch

import (
	"github.com/MeKo-Tech/ergsnap/internal/pipeline"
)

// Config holds all settings for a batch run.
type Config struct {
	// Pipeline configuration shared with the server.
	Pipeline pipeline.Config

	// Per-request processing flags applied to every file.
	Enhance bool
	Stitch  bool
	OCR     bool
	Strict  bool

	// Combine sends all discovered images as a single multi-image request
	// instead of one request per file.
	Combine bool

	// File discovery settings.
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// ContinueOnError keeps processing remaining files after a failure.
	ContinueOnError bool

	// Output settings.
	OutputFile string
	Quiet      bool
}

// DefaultConfig returns a batch configuration with the pipeline defaults and
// all processing stages enabled.
func DefaultConfig() *Config {
	return &Config{
		Pipeline:        pipeline.DefaultConfig(),
		Enhance:         true,
		Stitch:          false,
		OCR:             true,
		Strict:          true,
		IncludePatterns: []string{"*.jpg", "*.jpeg", "*.png", "*.bmp"},
	}
}

// options converts the batch flags into resolved pipeline options.
func (c *Config) options() pipeline.Options {
	return pipeline.Options{
		EnhanceReadability:      c.Enhance,
		StitchImages:            c.Stitch,
		PerformOCR:              c.OCR,
		RequireMonitorDetection: c.Strict,
	}
}

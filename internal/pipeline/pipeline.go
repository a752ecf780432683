// Package pipeline wires detection, normalization, stitching, OCR and result
// interpretation into one per-request processing flow.
package pipeline

import (
	"log/slog"
	"net/http"

	"github.com/MeKo-Tech/ergsnap/internal/detector"
	"github.com/MeKo-Tech/ergsnap/internal/ocr"
	"github.com/MeKo-Tech/ergsnap/internal/rectify"
	"github.com/MeKo-Tech/ergsnap/internal/workout"
)

// Config holds configuration for the pipeline and its components.
type Config struct {
	Detector detector.Config
	Rectify  rectify.Config
	OCR      ocr.Config
	Dedupe   workout.DedupeConfig
	Parallel ParallelConfig
}

// DefaultConfig returns a pipeline config with component defaults.
func DefaultConfig() Config {
	return Config{
		Detector: detector.DefaultConfig(),
		Rectify:  rectify.DefaultConfig(),
		OCR:      ocr.Config{}.WithDefaults(),
		Dedupe:   workout.DefaultDedupeConfig(),
		Parallel: DefaultParallelConfig(),
	}
}

// Builder constructs a Pipeline with fluent configuration.
type Builder struct {
	cfg        Config
	logger     *slog.Logger
	httpClient *http.Client
}

// NewBuilder creates a pipeline builder with defaults.
func NewBuilder() *Builder { return &Builder{cfg: DefaultConfig()} }

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.cfg = cfg
	return b
}

// WithOCRCredentials sets the document service endpoint and key.
func (b *Builder) WithOCRCredentials(endpoint, key string) *Builder {
	if endpoint != "" {
		b.cfg.OCR.Endpoint = endpoint
	}
	if key != "" {
		b.cfg.OCR.Key = key
	}
	return b
}

// WithModel overrides the custom model identifier and API version.
func (b *Builder) WithModel(modelID, apiVersion string) *Builder {
	if modelID != "" {
		b.cfg.OCR.ModelID = modelID
	}
	if apiVersion != "" {
		b.cfg.OCR.APIVersion = apiVersion
	}
	return b
}

// WithLogger sets the structured logger shared by all components.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithHTTPClient overrides the HTTP client used for OCR calls, mainly for
// tests.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithWorkers bounds the detection worker pool.
func (b *Builder) WithWorkers(n int) *Builder {
	if n > 0 {
		b.cfg.Parallel.MaxWorkers = n
	}
	return b
}

// Build assembles the pipeline.
func (b *Builder) Build() (*Pipeline, error) {
	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	normalizer := rectify.NewNormalizer(b.cfg.Rectify, logger)
	return &Pipeline{
		cfg:      b.cfg,
		detector: detector.New(b.cfg.Detector, normalizer, logger),
		ocr:      ocr.New(b.cfg.OCR, b.httpClient, logger),
		parser:   workout.NewParser(b.cfg.Dedupe, logger),
		logger:   logger.With("component", "pipeline"),
	}, nil
}

// Pipeline processes batches of monitor photos into workout records.
type Pipeline struct {
	cfg      Config
	detector *detector.Detector
	ocr      *ocr.Client
	parser   *workout.Parser
	logger   *slog.Logger
}

// Config returns the pipeline's effective configuration.
func (p *Pipeline) Config() Config { return p.cfg }

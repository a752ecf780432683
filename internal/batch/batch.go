package batch

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/MeKo-Tech/ergsnap/internal/pipeline"
)

// FileResult is the outcome for one input file (or, in combined mode, for the
// whole group of inputs).
type FileResult struct {
	File   string           `json:"file"`
	Files  []string         `json:"files,omitempty"`
	Result *pipeline.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// Result aggregates a complete batch run.
type Result struct {
	Files     []FileResult
	Succeeded int
	Failed    int
	Elapsed   time.Duration
}

// ProcessBatch discovers image files from the given paths and runs each one
// through the pipeline. With Combine set, all discovered images are sent as a
// single multi-image request instead.
func ProcessBatch(ctx context.Context, args []string, cfg *Config, logger *slog.Logger) (*Result, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "batch")

	filter := photoFilter{include: cfg.IncludePatterns, exclude: cfg.ExcludePatterns}
	files, err := discoverPhotos(args, cfg.Recursive, filter)
	if err != nil {
		return nil, fmt.Errorf("file discovery failed: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("no image files found")
	}

	pl, err := pipeline.NewBuilder().
		WithConfig(cfg.Pipeline).
		WithLogger(logger).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build pipeline: %w", err)
	}

	start := time.Now()
	result := &Result{}

	if cfg.Combine {
		result.Files = append(result.Files, processGroup(ctx, pl, files, cfg, log))
	} else {
		for _, file := range files {
			fr := processGroup(ctx, pl, []string{file}, cfg, log)
			result.Files = append(result.Files, fr)
			if fr.Error != "" && !cfg.ContinueOnError {
				result.tally()
				result.Elapsed = time.Since(start)
				return result, fmt.Errorf("processing %s failed: %s", file, fr.Error)
			}
			if err := ctx.Err(); err != nil {
				result.tally()
				result.Elapsed = time.Since(start)
				return result, err
			}
		}
	}

	result.tally()
	result.Elapsed = time.Since(start)
	return result, nil
}

// processGroup runs one pipeline request over the given files.
func processGroup(ctx context.Context, pl *pipeline.Pipeline, files []string, cfg *Config, log *slog.Logger) FileResult {
	fr := FileResult{File: files[0]}
	if len(files) > 1 {
		fr.Files = files
	}

	encoded, err := encodeFiles(files)
	if err != nil {
		fr.Error = err.Error()
		return fr
	}

	log.Info("processing", "file", fr.File, "images", len(files))
	res, err := pl.Process(ctx, encoded, cfg.options())
	if err != nil {
		fr.Error = err.Error()
		return fr
	}

	fr.Result = res
	if !res.Success && res.Error != "" {
		fr.Error = res.Error
	}
	return fr
}

// encodeFiles reads the given files and base64-encodes their contents the way
// the HTTP API expects images.
func encodeFiles(paths []string) ([]string, error) {
	encoded := make([]string, 0, len(paths))
	for _, path := range paths {
		raw, err := os.ReadFile(path) //nolint:gosec // G304: batch inputs are user-supplied paths
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		encoded = append(encoded, base64.StdEncoding.EncodeToString(raw))
	}
	return encoded, nil
}

func (r *Result) tally() {
	r.Succeeded, r.Failed = 0, 0
	for _, fr := range r.Files {
		if fr.Error != "" {
			r.Failed++
		} else {
			r.Succeeded++
		}
	}
}

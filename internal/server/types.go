// Package server exposes the processing pipeline over HTTP: a JSON process
// endpoint, a WebSocket variant with progress updates, health and metrics.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/MeKo-Tech/ergsnap/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// processor is the slice of the pipeline the server needs.
type processor interface {
	Process(ctx context.Context, encodedImages []string, opts pipeline.Options) (*pipeline.Result, error)
}

// Config holds server configuration.
type Config struct {
	Host           string
	Port           int
	CORSOrigin     string
	MaxUploadMB    int64
	TimeoutSec     int
	PipelineConfig pipeline.Config
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	pipeline    processor
	corsOrigin  string
	maxUploadMB int64
	timeoutSec  int
	logger      *slog.Logger
}

// ProcessRequest is the body of POST /process.
type ProcessRequest struct {
	Images  []string                `json:"images"`
	Options pipeline.RequestOptions `json:"options"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// New creates a server with a pipeline built from the given configuration.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	pl, err := pipeline.NewBuilder().
		WithConfig(cfg.PipelineConfig).
		WithLogger(logger).
		Build()
	if err != nil {
		return nil, err
	}

	return &Server{
		pipeline:    pl,
		corsOrigin:  cfg.CORSOrigin,
		maxUploadMB: cfg.MaxUploadMB,
		timeoutSec:  cfg.TimeoutSec,
		logger:      logger.With("component", "server"),
	}, nil
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/process", s.corsMiddleware(s.processHandler))
	mux.HandleFunc("/process/ws", s.processWebSocketHandler)
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.Handle("/metrics", promhttp.Handler())
}

// requestTimeout returns the per-request processing deadline.
func (s *Server) requestTimeout() time.Duration {
	if s.timeoutSec <= 0 {
		return 120 * time.Second
	}
	return time.Duration(s.timeoutSec) * time.Second
}

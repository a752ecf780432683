package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MeKo-Tech/ergsnap/internal/pipeline"
	"github.com/MeKo-Tech/ergsnap/internal/version"
)

// processHandler accepts a JSON request with base64 images and processing
// options, and responds with the full pipeline result. Pipeline failures are
// reported inside the result body with HTTP 200; only malformed requests get
// a 4xx.
func (s *Server) processHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadMB*1024*1024)
	var req ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Images) == 0 {
		s.writeError(w, http.StatusBadRequest, "no images provided")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout())
	defer cancel()

	start := time.Now()
	result, err := s.pipeline.Process(ctx, req.Images, req.Options.Resolve(len(req.Images)))
	if err != nil {
		processRequestsTotal.WithLabelValues("error").Inc()
		s.logger.Error("processing aborted", "error", err)
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	processDuration.Observe(time.Since(start).Seconds())
	processRequestsTotal.WithLabelValues(statusLabel(result)).Inc()

	s.writeJSON(w, http.StatusOK, result)
}

// healthHandler reports liveness.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: version.Version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	})
}

func statusLabel(result *pipeline.Result) string {
	switch {
	case !result.Success:
		return "failed"
	case result.NeedsBetterImage:
		return "needs_better_image"
	default:
		return "ok"
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

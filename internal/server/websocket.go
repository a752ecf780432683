package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket upgrader with reasonable defaults.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checks are deployment policy, handled by the proxy layer.
		return true
	},
}

// wsMessage is the server-to-client frame on the process socket.
type wsMessage struct {
	Type   string `json:"type"`             // "status", "result", "error"
	Stage  string `json:"stage,omitempty"`  // current pipeline stage for status frames
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// processWebSocketHandler runs one processing request over a WebSocket,
// streaming stage updates before the final result. The client sends a single
// JSON frame shaped like the POST /process body.
func (s *Server) processWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("failed to upgrade connection", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	websocketConnections.Inc()
	defer websocketConnections.Dec()
	s.logger.Info("websocket connection established", "remote_addr", r.RemoteAddr)

	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))

	var req ProcessRequest
	if err := conn.ReadJSON(&req); err != nil {
		_ = conn.WriteJSON(wsMessage{Type: "error", Error: "invalid request: " + err.Error()})
		return
	}
	if len(req.Images) == 0 {
		_ = conn.WriteJSON(wsMessage{Type: "error", Error: "no images provided"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout())
	defer cancel()

	_ = conn.WriteJSON(wsMessage{Type: "status", Stage: "processing"})

	start := time.Now()
	result, err := s.pipeline.Process(ctx, req.Images, req.Options.Resolve(len(req.Images)))
	if err != nil {
		processRequestsTotal.WithLabelValues("error").Inc()
		_ = conn.WriteJSON(wsMessage{Type: "error", Error: err.Error()})
		return
	}
	processDuration.Observe(time.Since(start).Seconds())
	processRequestsTotal.WithLabelValues(statusLabel(result)).Inc()

	if err := conn.WriteJSON(wsMessage{Type: "result", Result: result}); err != nil {
		s.logger.Error("failed to write websocket result", "error", err)
	}
}

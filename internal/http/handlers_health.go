package http

import (
	"context"
	"net/http"
	"time"

	applog "finboard/internal/log"
)

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Uptime    string `json:"uptime,omitempty"`
}

// handleHealth is a liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(s.started).Round(time.Second).String(),
	})
}

// handleReady pings the backend. Failure details go to the log only.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ready", Timestamp: time.Now().UTC().Format(time.RFC3339)}
	if s.backend == nil {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := s.backend.Ping(ctx); err != nil {
		applog.FromContext(ctx).OperationError(ctx, "Readiness check failed", applog.OpReadiness, err)
		resp.Status = "not_ready"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

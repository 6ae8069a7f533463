package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

var startTime = time.Now()

// ReadinessProbe reports whether a downstream dependency is reachable.
type ReadinessProbe func(ctx context.Context) error

// HealthHandlers serves the liveness and readiness endpoints.
type HealthHandlers struct {
	probe ReadinessProbe
}

// NewHealthHandlers constructs health handlers; probe may be nil when there
// is no dependency worth checking.
func NewHealthHandlers(probe ReadinessProbe) *HealthHandlers {
	return &HealthHandlers{probe: probe}
}

// Healthz responds with a simple status payload for liveness monitoring.
func (h *HealthHandlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeStatus(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"uptime":    time.Since(startTime).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Readyz additionally checks the content store when a probe is configured.
func (h *HealthHandlers) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.probe != nil {
		if err := h.probe(r.Context()); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, map[string]any{
				"status": "unavailable",
				"error":  err.Error(),
			})
			return
		}
	}
	writeStatus(w, http.StatusOK, map[string]any{"status": "ready"})
}

func writeStatus(w http.ResponseWriter, code int, payload map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/parabellum/pkg/metrics"
)

// ReadinessProvider reports whether the service accepts work.
type ReadinessProvider interface {
	Ready() bool
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	readiness ReadinessProvider
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(readiness ReadinessProvider) *HealthHandler {
	return &HealthHandler{readiness: readiness}
}

type healthResponse struct {
	Status string `json:"status"`
}

// HandleHealth handles GET /healthz requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !h.readiness.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "stopped"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// MetricsHandler serves the custom Prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
}

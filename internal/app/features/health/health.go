// internal/app/features/health/health.go
package health

import (
	"context"
	"net/http"

	"github.com/dalemusser/stratametrics/internal/app/system/apiclient"
	"github.com/dalemusser/stratametrics/internal/app/system/jsonutil"
	"github.com/dalemusser/stratametrics/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Pinger checks a dependency. *apiclient.Client satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler provides health check endpoints.
type Handler struct {
	backend Pinger
	logger  *zap.Logger
}

// NewHandler creates a new health check Handler.
func NewHandler(backend Pinger, logger *zap.Logger) *Handler {
	return &Handler{
		backend: backend,
		logger:  logger,
	}
}

// Response represents the health check response.
type Response struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

// Routes returns a chi.Router with health check routes mounted.
// Provides /health (full check), /health/ready, and /health/live.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Check)
	r.Get("/ready", h.Ready)
	r.Get("/live", h.Live)
	return r
}

// MountRootEndpoints adds /ready, /readyz, and /livez on the root router
// for Kubernetes probes.
func MountRootEndpoints(r chi.Router, h *Handler) {
	r.Get("/ready", h.Ready)
	r.Get("/readyz", h.Ready)
	r.Get("/livez", h.Live)
}

// Check probes the analytics backend and reports "degraded" when it is
// down. The dashboard still serves pages then; panels render empty.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	resp := Response{
		Status:   "ok",
		Services: map[string]string{"analytics_api": "ok"},
	}

	if err := h.ping(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Services["analytics_api"] = "unavailable"
		h.logger.Warn("health check: analytics backend ping failed",
			zap.String("kind", apiclient.KindOf(err)),
			zap.Error(err))
		jsonutil.ServiceUnavailable(w, resp)
		return
	}

	jsonutil.OK(w, resp)
}

// Ready reports whether the backend the panels depend on is reachable.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.ping(r.Context()); err != nil {
		h.logger.Warn("readiness check failed", zap.Error(err))
		jsonutil.ServiceUnavailable(w, map[string]string{"status": "not ready"})
		return
	}
	jsonutil.OK(w, map[string]string{"status": "ready"})
}

// Live reports that the process is serving requests.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	jsonutil.OK(w, map[string]string{"status": "alive"})
}

func (h *Handler) ping(ctx context.Context) error {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Ping(), h.logger, "health ping")
	defer cancel()
	return h.backend.Ping(ctx)
}

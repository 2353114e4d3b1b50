// PlantDiseaseDetector | 2026
// handler.go

package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
)

type Checker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	db       Checker
	redis    Checker
	ready    atomic.Bool
	shutdown atomic.Bool
}

type StatusResponse struct {
	Status string        `json:"status"`
	Checks []CheckResult `json:"checks,omitempty"`
}

type CheckResult struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

func NewHandler(db, redis Checker) *Handler {
	h := &Handler{
		db:    db,
		redis: redis,
	}
	h.ready.Store(true)
	return h
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Liveness)
	r.Get("/livez", h.Liveness)
	r.Get("/readyz", h.Readiness)
}

// BeginShutdown flips health endpoints to 503 so load balancers stop
// routing before the listener drains.
func (h *Handler) BeginShutdown() {
	h.shutdown.Store(true)
}

func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	if h.shutdown.Load() {
		h.writeStatus(w, http.StatusServiceUnavailable, StatusResponse{
			Status: "shutting_down",
		})
		return
	}

	h.writeStatus(w, http.StatusOK, StatusResponse{
		Status: "ok",
	})
}

func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.shutdown.Load() {
		h.writeStatus(w, http.StatusServiceUnavailable, StatusResponse{
			Status: "shutting_down",
		})
		return
	}

	if !h.ready.Load() {
		h.writeStatus(w, http.StatusServiceUnavailable, StatusResponse{
			Status: "not_ready",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := h.runHealthChecks(ctx)

	allHealthy := true
	for _, check := range checks {
		if !check.Healthy {
			allHealthy = false
			break
		}
	}

	status := http.StatusOK
	statusText := "ok"
	if !allHealthy {
		status = http.StatusServiceUnavailable
		statusText = "degraded"
	}

	h.writeStatus(w, status, StatusResponse{
		Status: statusText,
		Checks: checks,
	})
}

func (h *Handler) runHealthChecks(ctx context.Context) []CheckResult {
	checks := make([]CheckResult, 0, 2)

	checks = append(checks, h.check(ctx, "database", h.db))
	checks = append(checks, h.check(ctx, "redis", h.redis))

	return checks
}

func (h *Handler) check(
	ctx context.Context,
	name string,
	checker Checker,
) CheckResult {
	result := CheckResult{Name: name, Healthy: true}

	if checker == nil {
		return result
	}

	if err := checker.Ping(ctx); err != nil {
		result.Healthy = false
		result.Error = err.Error()
	}

	return result
}

func (h *Handler) writeStatus(
	w http.ResponseWriter,
	status int,
	resp StatusResponse,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	//nolint:errcheck // best-effort health response
	_ = json.NewEncoder(w).Encode(resp)
}

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"planetgen/internal/shared/response"
)

// Pinger is a backing service the health check probes. A nil Pinger means
// the service is disabled.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
}

type HealthHandler struct {
	db    Pinger
	redis Pinger
}

func NewHealthHandler(db, redis Pinger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

func probe(ctx context.Context, logger *slog.Logger, name string, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		logger.Warn("Dependency ping failed", "dependency", name, "error", err)
		return "disconnected"
	}
	return "connected"
}

// ServeHTTP always reports healthy: generation needs neither the catalog nor
// the cache, so their state is informational.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "health")

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Database:  probe(r.Context(), logger, "database", h.db),
		Redis:     probe(r.Context(), logger, "redis", h.redis),
	}

	response.Success(w, http.StatusOK, resp)
}

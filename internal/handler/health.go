package handler

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves GET /api/health. The endpoint always answers 200; the
// database state is reported in the body so probes stay cheap.
type HealthHandler struct {
	db HealthChecker
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db HealthChecker) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health handles the health check request.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	database := "connected"
	if err := h.db.Ping(ctx); err != nil {
		database = "disconnected"
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "healthy",
		"message":  "TaxerPay Backend is running",
		"database": database,
	})
}

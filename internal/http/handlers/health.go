package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/hongminglow/budget-be/internal/http/respond"
	"github.com/hongminglow/budget-be/internal/logger"
	"github.com/hongminglow/budget-be/internal/storage"
)

// HealthHandler returns uptime and whether the record store answers.
type HealthHandler struct {
	startedAt time.Time
	store     storage.RecordStore
}

// NewHealthHandler creates a health endpoint handler.
func NewHealthHandler(startedAt time.Time, store storage.RecordStore) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, store: store}
}

// Register wires the handler into a ServeMux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handle)
}

func (h *HealthHandler) handle(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(h.startedAt).Truncate(time.Second).String()

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if _, err := h.store.List(ctx, storage.Users); err != nil {
		logger.From(ctx).WarnContext(ctx, "health check: store unavailable", logger.FieldError, err)
		respond.JSON(w, http.StatusServiceUnavailable, "degraded", map[string]string{
			"status": "degraded",
			"uptime": uptime,
		})
		return
	}
	respond.JSON(w, http.StatusOK, "ok", map[string]string{
		"status": "ok",
		"uptime": uptime,
	})
}

package http

import (
	"net/http"

	"github.com/MKhiriev/go-invest-hub/internal/logger"
	"github.com/MKhiriev/go-invest-hub/models"
)

// health reports process liveness and database reachability. An unreachable
// database makes the whole check fail with a 500 and status "error".
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.pinger.Ping(ctx); err != nil {
		logger.FromRequest(r).Err(err).Msg("database ping failed")
		h.respondJSON(w, r, models.HealthResponse{
			Status: "error",
			DB:     false,
		}, http.StatusInternalServerError)
		return
	}

	h.respondJSON(w, r, models.HealthResponse{
		Status: "ok",
		DB:     true,
	}, http.StatusOK)
}

package http

import (
	"net/http"

	"github.com/MKhiriev/go-invest-hub/internal/utils"
)

// logs returns the caller's own audit trail, newest first.
func (h *Handler) logs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		h.respondMessage(w, r, msgMissingToken, http.StatusUnauthorized)
		return
	}

	records, err := h.services.LogService.LogsForUser(ctx, userID)
	if err != nil {
		h.respondInternalError(w, r, err)
		return
	}

	h.respondJSON(w, r, records, http.StatusOK)
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-invest-hub/internal/logger"
	"github.com/MKhiriev/go-invest-hub/internal/service"
	"github.com/MKhiriev/go-invest-hub/internal/store"
	"github.com/MKhiriev/go-invest-hub/internal/utils"
)

type profileUpdateRequest struct {
	RiskAppetite string `json:"risk_appetite"`
}

type profileUpdateResponse struct {
	Message      string `json:"message"`
	RiskAppetite string `json:"risk_appetite"`
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		h.respondMessage(w, r, msgMissingToken, http.StatusUnauthorized)
		return
	}

	user, err := h.services.AuthService.Profile(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoUserWasFound):
			h.respondMessage(w, r, "User not found", http.StatusNotFound)
			return
		default:
			h.respondInternalError(w, r, err)
			return
		}
	}

	h.respondJSON(w, r, user, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		h.respondMessage(w, r, msgMissingToken, http.StatusUnauthorized)
		return
	}

	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.respondMessage(w, r, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.UpdateRiskAppetite(ctx, userID, req.RiskAppetite); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			h.respondMessage(w, r, "Valid risk_appetite required", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrNoUserWasFound):
			h.respondMessage(w, r, "User not found", http.StatusNotFound)
			return
		default:
			h.respondInternalError(w, r, err)
			return
		}
	}

	h.respondJSON(w, r, profileUpdateResponse{
		Message:      "Profile updated successfully",
		RiskAppetite: req.RiskAppetite,
	}, http.StatusOK)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-invest-hub/internal/logger"
	"github.com/MKhiriev/go-invest-hub/internal/utils"
	"github.com/MKhiriev/go-invest-hub/models"
)

// Client-facing message strings. The exact wording is part of the API
// contract and is asserted by the handler tests.
const (
	msgMissingToken  = "Missing token"
	msgInvalidToken  = "Invalid token"
	msgAdminOnly     = "Admin access required"
	msgInvalidJSON   = "Invalid JSON was passed"
	msgInternalError = "Internal server error"
)

// respondJSON writes data as a JSON body with the given status code.
func (h *Handler) respondJSON(w http.ResponseWriter, r *http.Request, data any, statusCode int) {
	if _, err := utils.WriteJSON(w, data, statusCode); err != nil {
		logger.FromRequest(r).Err(err).Msg("failed to write response body")
	}
}

// respondMessage writes a `{"message": ...}` body. For error statuses the
// message is also recorded for the request's audit row.
func (h *Handler) respondMessage(w http.ResponseWriter, r *http.Request, message string, statusCode int) {
	if statusCode >= http.StatusBadRequest {
		recordError(r, message)
	}
	h.respondJSON(w, r, models.MessageResponse{Message: message}, statusCode)
}

// respondInternalError hides the underlying error from the client and keeps
// it in the log and the audit row.
func (h *Handler) respondInternalError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromRequest(r).Err(err).Msg("unexpected error occurred during request handling")
	recordError(r, err.Error())
	h.respondJSON(w, r, models.MessageResponse{Message: msgInternalError}, http.StatusInternalServerError)
}

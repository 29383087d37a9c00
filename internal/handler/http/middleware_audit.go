// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"sync"

	"github.com/MKhiriev/go-invest-hub/internal/utils"
	"github.com/MKhiriev/go-invest-hub/models"
)

// errorRecorderCtxKey keys the per-request error recorder in the request
// context. A dedicated unexported type prevents collisions with other
// context values.
type errorRecorderCtxKey struct{}

// errorRecorder collects the error message of a failed request so the audit
// middleware can persist it after the response has been written. The last
// recorded message wins.
type errorRecorder struct {
	mu      sync.Mutex
	message string
}

func (e *errorRecorder) set(message string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.message = message
}

func (e *errorRecorder) get() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.message
}

// recordError stores message in the request's error recorder, if one is
// present. Handlers call it (via respondMessage) for every classified error
// so the audit row carries the same text the client saw.
func recordError(r *http.Request, message string) {
	if recorder, ok := r.Context().Value(errorRecorderCtxKey{}).(*errorRecorder); ok {
		recorder.set(message)
	}
}

// withAudit produces exactly one [models.TransactionLog] record per handled
// request, after the response has been written.
//
// The record's identity is re-resolved from the request's bearer token
// independently of the auth middleware: public endpoints carry no token and
// are recorded as anonymous, and a token that fails verification also falls
// back to anonymous instead of failing the request. The record is handed to
// the auditor, which must accept it without blocking.
func (h *Handler) withAudit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &errorRecorder{}
		ctx := context.WithValue(r.Context(), errorRecorderCtxKey{}, recorder)

		lw := &responseWriter{
			ResponseWriter: w,
		}

		// Snapshot before ServeHTTP: chi strips route params from the
		// request as it matches, but the audit row must carry the path
		// exactly as the client sent it.
		endpoint := r.URL.RequestURI()
		method := r.Method

		next.ServeHTTP(lw, r.WithContext(ctx))

		record := models.TransactionLog{
			Endpoint:   endpoint,
			Method:     method,
			StatusCode: lw.status,
		}
		if record.StatusCode == 0 {
			record.StatusCode = http.StatusOK
		}
		if message := recorder.get(); message != "" {
			record.ErrorMessage = &message
		}

		if tokenString, err := utils.ParseBearerToken(r.Header.Get("Authorization")); err == nil {
			if token, err := utils.ValidateAndParseJWTToken(tokenString, h.appCfg.TokenSignKey, h.appCfg.TokenIssuer); err == nil {
				userID := token.UserID
				email := token.Email
				record.UserID = &userID
				record.Email = &email
			}
		}

		h.auditor.Enqueue(record)
	})
}

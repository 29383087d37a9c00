package http

import (
	"net/http"

	"github.com/MKhiriev/go-invest-hub/internal/logger"
	"github.com/MKhiriev/go-invest-hub/internal/utils"
)

// admin gates catalog writes behind the configured admin allow-list.
// It must run after [Handler.auth]: a request with no resolved identity is
// rejected with 401, a resolved identity outside the allow-list with 403.
func (h *Handler) admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		email, ok := utils.GetEmailFromContext(r.Context())
		if !ok {
			log.Warn().Msg("admin check without authenticated identity")
			h.respondMessage(w, r, msgMissingToken, http.StatusUnauthorized)
			return
		}

		if !h.appCfg.IsAdmin(email) {
			log.Warn().Str("email", email).Msg("non-admin attempted catalog write")
			h.respondMessage(w, r, msgAdminOnly, http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/nvx-labs/scamtrap/pkg/utils"
)

// HeaderAPIKey is the shared-secret header checked on protected routes.
const HeaderAPIKey = "x-api-key"

// APIKey rejects requests whose x-api-key header does not match the
// configured shared secret. The websocket feed cannot set headers from a
// browser, so a "key" query parameter is accepted as a fallback.
// An empty configured key means the server was never provisioned: every
// request is refused with 503 rather than silently running open.
func APIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				utils.RespondError(w, http.StatusServiceUnavailable, "server api key not configured")
				return
			}

			provided := r.Header.Get(HeaderAPIKey)
			if provided == "" {
				provided = r.URL.Query().Get("key")
			}
			if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				utils.RespondError(w, http.StatusUnauthorized, "invalid api key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

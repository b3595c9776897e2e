package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/aidetect/image-detector/internal/logger"
)

const apiKeyHeader = "X-API-Key"

// requireAPIKey guards the AI result-callback route with a shared secret in
// the X-API-Key header. This is the trust boundary replacing ownership checks
// on that path: any caller holding the key may write results to any record.
//
// The comparison is constant-time. When no key is configured the check is
// disabled — the handler constructor has already logged a warning for that
// configuration.
func (h *Handler) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.aiServiceKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		provided := r.Header.Get(apiKeyHeader)
		if provided == "" {
			log.Warn().Msg("AI callback rejected: missing API key")
			http.Error(w, ErrMissingAPIKey.Error(), http.StatusUnauthorized)
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(h.aiServiceKey)) != 1 {
			log.Warn().Msg("AI callback rejected: invalid API key")
			http.Error(w, ErrInvalidAPIKey.Error(), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

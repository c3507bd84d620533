package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"dnabot/appctx"
	"dnabot/core"
	"dnabot/core/log"
)

// APIKeyMiddleware protects the direct command API with a static bearer key
type APIKeyMiddleware struct {
	apiKey string
}

func NewAPIKeyMiddleware(apiKey string) *APIKeyMiddleware {
	return &APIKeyMiddleware{apiKey: apiKey}
}

// Enabled reports whether a key is configured
func (m *APIKeyMiddleware) Enabled() bool {
	return m.apiKey != ""
}

// WithAPIKey rejects requests whose "Authorization: Bearer <key>" does not match
func (m *APIKeyMiddleware) WithAPIKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.Enabled() {
			writeJSONError(w, "command API is disabled", http.StatusServiceUnavailable)
			return
		}

		token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !found || subtle.ConstantTimeCompare([]byte(token), []byte(m.apiKey)) != 1 {
			log.Warn("⚠️ Rejected command API request with invalid key", "remote_addr", r.RemoteAddr)
			writeJSONError(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		next(w, r)
	}
}

// RequestID tags every request context with a fresh correlation id
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := core.NewID("req")
		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(w, r.WithContext(appctx.SetRequestID(r.Context(), requestID)))
	})
}

func writeJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

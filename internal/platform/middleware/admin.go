package middleware

import (
	"log/slog"
	"net/http"

	"bankadapter/pkg/secrets"
)

// RequireAdminToken guards tenant config management endpoints. The expected
// token is stored as a bcrypt hash so the plaintext never sits in config.
func RequireAdminToken(expectedHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("X-Admin-Token")
			if expectedHash == "" || secrets.Verify(token, expectedHash) != nil {
				logger.WarnContext(r.Context(), "admin token mismatch",
					"request_id", GetRequestID(r.Context()),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"admin token required"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

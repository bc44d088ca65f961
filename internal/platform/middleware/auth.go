package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// TokenValidator validates inbound caller tokens before gateway logic runs.
type TokenValidator interface {
	ValidateToken(tokenString string) (*CallerClaims, error)
}

// CallerClaims represents the claims we expect from the token validator.
type CallerClaims struct {
	Subject  string
	ClientID string
}

type contextKeyCallerID struct{}

// ContextKeyCallerID is exported for use in handlers and tests.
var ContextKeyCallerID = contextKeyCallerID{}

// GetCallerID retrieves the authenticated caller subject from the context.
func GetCallerID(ctx context.Context) string {
	if callerID, ok := ctx.Value(ContextKeyCallerID).(string); ok {
		return callerID
	}
	return ""
}

// RequireAuth validates the caller's bearer token. The gateway's own
// delegation logic never sees unauthenticated requests.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || token == "" {
				logger.WarnContext(r.Context(), "unauthorized access - missing token",
					"request_id", GetRequestID(r.Context()),
				)
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(r.Context(), "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(r.Context()),
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyCallerID, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}

package config

import (
	"os"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr                string
	Environment         string
	DatabaseURL         string
	JWTSigningKey       string
	AdminTokenHash      string
	CredentialEnvPrefix string
	UpstreamTimeout     time.Duration
}

// DefaultUpstreamTimeout bounds every backoffice HTTP call. The inbound
// request hangs with the upstream if this is set to zero.
var DefaultUpstreamTimeout = 30 * time.Second

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("BANKADAPTER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	env := os.Getenv("BANKADAPTER_ENV")
	if env == "" {
		env = "development"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	credPrefix := os.Getenv("BANKADAPTER_CRED_PREFIX")
	if credPrefix == "" {
		credPrefix = "BANKADAPTER_CRED_"
	}

	upstreamTimeout := DefaultUpstreamTimeout
	if raw := os.Getenv("UPSTREAM_TIMEOUT"); raw != "" {
		if duration, err := time.ParseDuration(raw); err == nil {
			upstreamTimeout = duration
		}
	}

	return Server{
		Addr:                addr,
		Environment:         env,
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		JWTSigningKey:       jwtSigningKey,
		AdminTokenHash:      os.Getenv("ADMIN_TOKEN_HASH"),
		CredentialEnvPrefix: credPrefix,
		UpstreamTimeout:     upstreamTimeout,
	}
}

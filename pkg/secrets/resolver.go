package secrets

import (
	"fmt"
	"os"
	"strings"

	"bankadapter/internal/sentinel"
)

// Credentials is a resolved username/password pair for upstream login.
type Credentials struct {
	Username string
	Password string
}

// Resolver maps an opaque credential reference (as stored on a tenant config)
// to concrete credentials. Keeping resolution behind an interface decouples
// secret storage and rotation from the delegation logic.
type Resolver interface {
	Resolve(ref string) (Credentials, error)
}

// EnvResolver resolves credential references from environment variables.
// A reference "backoffice-admin" reads BANKADAPTER_CRED_BACKOFFICE_ADMIN,
// expected to hold "username:password".
type EnvResolver struct {
	prefix string
}

// NewEnvResolver creates an environment-backed resolver with the given
// variable prefix (e.g. "BANKADAPTER_CRED_").
func NewEnvResolver(prefix string) *EnvResolver {
	return &EnvResolver{prefix: prefix}
}

func (r *EnvResolver) Resolve(ref string) (Credentials, error) {
	key := r.prefix + envKey(ref)
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return Credentials{}, fmt.Errorf("credential %q (%s): %w", ref, key, sentinel.ErrNotFound)
	}
	username, password, found := strings.Cut(raw, ":")
	if !found || username == "" {
		return Credentials{}, fmt.Errorf("credential %q is not username:password: %w", ref, sentinel.ErrInvalidInput)
	}
	return Credentials{Username: username, Password: password}, nil
}

// StaticResolver resolves credentials from a fixed map. Used in tests and
// single-tenant deployments where the credential is supplied directly.
type StaticResolver map[string]Credentials

func (r StaticResolver) Resolve(ref string) (Credentials, error) {
	creds, ok := r[ref]
	if !ok {
		return Credentials{}, fmt.Errorf("credential %q: %w", ref, sentinel.ErrNotFound)
	}
	return creds, nil
}

func envKey(ref string) string {
	key := strings.ToUpper(ref)
	key = strings.NewReplacer("-", "_", ".", "_", "/", "_").Replace(key)
	return key
}

var (
	_ Resolver = (*EnvResolver)(nil)
	_ Resolver = (StaticResolver)(nil)
)

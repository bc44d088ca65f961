package models

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "bankadapter/pkg/domain-errors"
)

// Config is one configured upstream backoffice instance the gateway can act
// on behalf of. At most one config is active at a time; every inbound request
// reads the active record fresh.
type Config struct {
	ID            uuid.UUID `json:"id"`
	ClientID      string    `json:"client_id"`
	TargetDomain  string    `json:"target_domain"`
	Prefix        string    `json:"prefix"`
	CredentialRef string    `json:"credential_ref"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewConfig validates and builds a tenant config. TargetDomain is the
// upstream base URL including any path prefix (e.g. https://bo.example.com/api)
// and is stored without a trailing slash.
func NewConfig(id uuid.UUID, clientID, targetDomain, prefix, credentialRef string, now time.Time) (*Config, error) {
	targetDomain = strings.TrimRight(strings.TrimSpace(targetDomain), "/")
	if targetDomain == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "target domain cannot be empty")
	}
	parsed, err := url.Parse(targetDomain)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "target domain must be an absolute URL")
	}
	if clientID = strings.TrimSpace(clientID); clientID == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "client id cannot be empty")
	}
	if credentialRef = strings.TrimSpace(credentialRef); credentialRef == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "credential ref cannot be empty")
	}

	return &Config{
		ID:            id,
		ClientID:      clientID,
		TargetDomain:  targetDomain,
		Prefix:        strings.TrimSpace(prefix),
		CredentialRef: credentialRef,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

package handler

import (
	"time"

	"bankadapter/internal/tenant/models"
)

// ConfigResponse is the HTTP shape of a tenant config record. The credential
// itself never leaves the gateway; only the reference is echoed.
type ConfigResponse struct {
	ID            string `json:"id"`
	ClientID      string `json:"client_id"`
	TargetDomain  string `json:"target_domain"`
	Prefix        string `json:"prefix"`
	CredentialRef string `json:"credential_ref"`
	IsActive      bool   `json:"is_active"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func toConfigResponse(cfg *models.Config) *ConfigResponse {
	return &ConfigResponse{
		ID:            cfg.ID.String(),
		ClientID:      cfg.ClientID,
		TargetDomain:  cfg.TargetDomain,
		Prefix:        cfg.Prefix,
		CredentialRef: cfg.CredentialRef,
		IsActive:      cfg.IsActive,
		CreatedAt:     cfg.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     cfg.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

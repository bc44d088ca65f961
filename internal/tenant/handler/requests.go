package handler

import (
	"strings"

	dErrors "bankadapter/pkg/domain-errors"
)

// CreateConfigRequest is the admin payload for registering a tenant config.
type CreateConfigRequest struct {
	ClientID      string `json:"client_id"`
	TargetDomain  string `json:"target_domain"`
	Prefix        string `json:"prefix"`
	CredentialRef string `json:"credential_ref"`
}

func (r *CreateConfigRequest) Validate() error {
	if strings.TrimSpace(r.ClientID) == "" {
		return dErrors.New(dErrors.CodeValidation, "client_id is required")
	}
	if strings.TrimSpace(r.TargetDomain) == "" {
		return dErrors.New(dErrors.CodeValidation, "target_domain is required")
	}
	if strings.TrimSpace(r.CredentialRef) == "" {
		return dErrors.New(dErrors.CodeValidation, "credential_ref is required")
	}
	return nil
}

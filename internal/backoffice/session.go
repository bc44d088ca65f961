package backoffice

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"bankadapter/internal/tenant/models"
)

// Session is a short-lived backoffice credential scoped to a single inbound
// request. It is never cached, shared, or persisted.
type Session struct {
	Token string
}

type signinRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signinResponse struct {
	Data string `json:"data"`
}

// AcquireSession exchanges the tenant's stored admin credential for a session
// token. Acquisition failure is non-fatal: the gateway proceeds with an empty
// session and lets the backoffice reject the call, so auth failures surface
// as generic upstream errors rather than a distinct kind.
func (c *Client) AcquireSession(ctx context.Context, cfg *models.Config) Session {
	creds, err := c.credentials.Resolve(cfg.CredentialRef)
	if err != nil {
		c.warnLoginFailure(ctx, cfg, "failed to resolve admin credential", err)
		return Session{}
	}

	payload, err := json.Marshal(signinRequest{Username: creds.Username, Password: creds.Password})
	if err != nil {
		c.warnLoginFailure(ctx, cfg, "failed to marshal signin request", err)
		return Session{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.TargetDomain+"/auth/signin", bytes.NewReader(payload))
	if err != nil {
		c.warnLoginFailure(ctx, cfg, "failed to create signin request", err)
		return Session{}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.warnLoginFailure(ctx, cfg, "signin request failed", err)
		return Session{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.warnLoginFailure(ctx, cfg, "signin rejected", nil, "status", resp.StatusCode)
		return Session{}
	}

	var body signinResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.warnLoginFailure(ctx, cfg, "failed to decode signin response", err)
		return Session{}
	}
	if body.Data == "" {
		c.warnLoginFailure(ctx, cfg, "signin response carried no token", nil)
		return Session{}
	}

	return Session{Token: body.Data}
}

func (c *Client) warnLoginFailure(ctx context.Context, cfg *models.Config, msg string, err error, args ...any) {
	if c.metrics != nil {
		c.metrics.IncrementLoginFailures()
	}
	attrs := append([]any{"target_domain", cfg.TargetDomain}, args...)
	if err != nil {
		attrs = append(attrs, "error", err)
	}
	c.logger.WarnContext(ctx, msg, attrs...)
}

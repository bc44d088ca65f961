// Package backoffice is the upstream HTTP client for the backoffice system.
// It exchanges a stored admin credential for a short-lived session on every
// call, translates gateway operations into the backoffice's fixed routes, and
// normalizes failures into one taxonomy.
package backoffice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"bankadapter/internal/backoffice/metrics"
	"bankadapter/internal/tenant/models"
	"bankadapter/pkg/secrets"
)

// Client calls the backoffice on behalf of the active tenant. It is safe for
// concurrent use; every call is self-contained and shares nothing but the
// underlying transport.
type Client struct {
	httpClient  *http.Client
	logger      *slog.Logger
	credentials secrets.Resolver
	metrics     *metrics.Metrics
	tracer      trace.Tracer
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New creates a backoffice client. The timeout bounds every upstream call;
// there is no retry and no connection-level tuning at this layer.
func New(credentials secrets.Resolver, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:      slog.Default(),
		credentials: credentials,
		tracer:      otel.Tracer("bankadapter/backoffice"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do executes one translated call against the tenant's backoffice and returns
// the raw response body. The session is attached as a cookie unless the route
// is anonymous; an empty session is sent as-is and the backoffice decides.
func (c *Client) Do(ctx context.Context, cfg *models.Config, session Session, call Call) (json.RawMessage, error) {
	start := time.Now()

	ctx, span := c.tracer.Start(ctx, "backoffice."+call.Op, trace.WithAttributes(
		attribute.String("backoffice.op", call.Op),
		attribute.String("http.method", call.Method),
		attribute.String("tenant.prefix", cfg.Prefix),
	))

	raw, err := c.execute(ctx, cfg, session, call)

	outcome := "success"
	if err != nil {
		outcome = string(GetCategory(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
	if c.metrics != nil {
		c.metrics.ObserveCall(call.Op, outcome, start)
	}
	return raw, err
}

func (c *Client) execute(ctx context.Context, cfg *models.Config, session Session, call Call) (json.RawMessage, error) {
	var payload io.Reader
	if call.Body != nil {
		buf, err := json.Marshal(call.Body)
		if err != nil {
			return nil, newError(CategoryInternal, call.Op, "failed to marshal request body", err)
		}
		payload = bytes.NewReader(buf)
	}

	target := cfg.TargetDomain + call.Path
	if len(call.Query) > 0 {
		target += "?" + call.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, call.Method, target, payload)
	if err != nil {
		return nil, newError(CategoryInternal, call.Op, "failed to create request", err)
	}
	if call.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !call.Anonymous {
		req.AddCookie(&http.Cookie{Name: "token", Value: session.Token})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// http.Client.Timeout surfaces as a net.Error on the returned error,
		// not as a deadline on the request context.
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, newError(CategoryTimeout, call.Op, "request timeout", err)
		}
		return nil, newError(CategoryOutage, call.Op, "failed to execute request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(CategoryInternal, call.Op, "failed to read response body", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// Some mutation endpoints answer 2xx with no body. A non-empty
		// body must be valid JSON before it is passed through verbatim.
		if len(body) == 0 {
			return nil, nil
		}
		if !json.Valid(body) {
			return nil, newError(CategoryMalformed, call.Op, "response body is not valid JSON", nil)
		}
		return body, nil
	case call.Verification && resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, &Error{
			Category: CategoryRejected,
			Op:       call.Op,
			Status:   resp.StatusCode,
			Body:     body,
			Message:  fmt.Sprintf("verification rejected with status %d", resp.StatusCode),
		}
	default:
		return nil, &Error{
			Category: CategoryBadStatus,
			Op:       call.Op,
			Status:   resp.StatusCode,
			Message:  fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
		}
	}
}

// FetchMembers runs the list call and parses the member collection out of the
// response. The list endpoint is the backoffice's only read primitive; every
// by-key lookup goes through here.
func (c *Client) FetchMembers(ctx context.Context, cfg *models.Config, session Session, params ListParams) (Members, error) {
	call := ListMembers(params)
	raw, err := c.Do(ctx, cfg, session, call)
	if err != nil {
		return nil, err
	}
	members, err := ParseMembers(raw)
	if err != nil {
		return nil, newError(CategoryMalformed, call.Op, "failed to parse member list", err)
	}
	return members, nil
}

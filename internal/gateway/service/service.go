// Package service implements the credential-delegation core: every operation
// resolves the active tenant config, acquires a fresh backoffice session, and
// forwards the caller's intent upstream. Requests are fully self-contained;
// nothing is shared or cached between them.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks ConfigResolver,Upstream

import (
	"context"
	"encoding/json"
	"log/slog"

	"bankadapter/internal/backoffice"
	gwmetrics "bankadapter/internal/gateway/metrics"
	"bankadapter/internal/tenant/models"
	dErrors "bankadapter/pkg/domain-errors"
)

// ConfigResolver supplies the active tenant config, fresh on every call.
type ConfigResolver interface {
	ResolveActive(ctx context.Context) (*models.Config, error)
}

// Upstream is the backoffice client dependency.
type Upstream interface {
	AcquireSession(ctx context.Context, cfg *models.Config) backoffice.Session
	Do(ctx context.Context, cfg *models.Config, session backoffice.Session, call backoffice.Call) (json.RawMessage, error)
	FetchMembers(ctx context.Context, cfg *models.Config, session backoffice.Session, params backoffice.ListParams) (backoffice.Members, error)
}

// Service orchestrates delegation and owns the caller-facing envelope.
type Service struct {
	resolver ConfigResolver
	upstream Upstream
	logger   *slog.Logger
	metrics  *gwmetrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *gwmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(resolver ConfigResolver, upstream Upstream, opts ...Option) *Service {
	s := &Service{resolver: resolver, upstream: upstream, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAll fetches the member list, passing pagination/search parameters
// through unchanged. The upstream body is returned verbatim as data.
func (s *Service) GetAll(ctx context.Context, params backoffice.ListParams) (*Envelope, error) {
	s.countRequest("get_all")
	cfg, err := s.resolver.ResolveActive(ctx)
	if err != nil {
		return nil, err
	}
	session := s.upstream.AcquireSession(ctx, cfg)
	raw, err := s.upstream.Do(ctx, cfg, session, backoffice.ListMembers(params))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUpstream, "Failed to fetch members from backoffice")
	}
	return success(raw, cfg.Prefix), nil
}

// GetByID looks up one member by id. The backoffice has no by-id endpoint, so
// the full collection is fetched and scanned.
func (s *Service) GetByID(ctx context.Context, id string) (*Envelope, error) {
	s.countRequest("get_by_id")
	return s.findMember(ctx, "Failed to fetch member by ID from backoffice", func(members backoffice.Members) (backoffice.Member, bool) {
		return members.FindByID(id)
	})
}

// GetByPhone looks up one member by phone; the backoffice stores the phone as
// the username.
func (s *Service) GetByPhone(ctx context.Context, phone string) (*Envelope, error) {
	s.countRequest("get_by_phone")
	return s.findMember(ctx, "Failed to fetch member by phone from backoffice", func(members backoffice.Members) (backoffice.Member, bool) {
		return members.FindByUsername(phone)
	})
}

// GetBalance reports a member's credit balance. A missing or non-numeric
// balance field yields exactly 0, never a failure.
func (s *Service) GetBalance(ctx context.Context, id string) (*Envelope, error) {
	s.countRequest("get_balance")
	cfg, err := s.resolver.ResolveActive(ctx)
	if err != nil {
		return nil, err
	}
	session := s.upstream.AcquireSession(ctx, cfg)
	members, err := s.upstream.FetchMembers(ctx, cfg, session, backoffice.ListParams{})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUpstream, "Failed to fetch member balance from backoffice")
	}

	member, found := members.FindByID(id)
	if !found {
		s.countLookupMiss()
		return nil, dErrors.New(dErrors.CodeNotFound, "Member not found")
	}

	return success(map[string]any{
		"memberId": id,
		"balance":  member.CreditBalance(),
		"member":   member,
	}, cfg.Prefix), nil
}

// CreateMember forwards the caller's member payload to the backoffice.
func (s *Service) CreateMember(ctx context.Context, body map[string]any) (*Envelope, error) {
	s.countRequest("create_member")
	return s.forward(ctx, backoffice.CreateMember(body), "Failed to create member in backoffice")
}

// UpdateMember forwards the caller's update payload.
func (s *Service) UpdateMember(ctx context.Context, id string, body map[string]any) (*Envelope, error) {
	s.countRequest("update_member")
	return s.forward(ctx, backoffice.UpdateMember(id, body), "Failed to update member in backoffice")
}

// DeleteMember removes a member from the backoffice.
func (s *Service) DeleteMember(ctx context.Context, id string) (*Envelope, error) {
	s.countRequest("delete_member")
	cfg, _, err := s.dispatch(ctx, backoffice.DeleteMember(id))
	if err != nil {
		return nil, wrapUpstream(err, "Failed to delete member in backoffice")
	}
	return success(map[string]any{"success": true}, cfg.Prefix), nil
}

// AddCredit adds credit to a member's balance, keyed by phone.
func (s *Service) AddCredit(ctx context.Context, req backoffice.CreditRequest) (*Envelope, error) {
	s.countRequest("add_credit")
	return s.forward(ctx, backoffice.AddCredit(req), "Failed to add credit in backoffice")
}

// RemoveCredit removes credit from a member's balance, keyed by id.
func (s *Service) RemoveCredit(ctx context.Context, id string, req backoffice.CreditRequest) (*Envelope, error) {
	s.countRequest("remove_credit")
	return s.forward(ctx, backoffice.RemoveCredit(id, req), "Failed to remove credit in backoffice")
}

// CashoutCredit cashes out a member's full balance.
func (s *Service) CashoutCredit(ctx context.Context, id string, req backoffice.CreditRequest) (*Envelope, error) {
	s.countRequest("cashout_credit")
	return s.forward(ctx, backoffice.CashoutCredit(id, req), "Failed to cashout credit in backoffice")
}

// Deposit records a deposit on the backoffice dashboard.
func (s *Service) Deposit(ctx context.Context, req backoffice.DepositRequest) (*Envelope, error) {
	s.countRequest("deposit")
	return s.forward(ctx, backoffice.Deposit(req), "Failed to deposit in backoffice")
}

// CheckAccount verifies account name/ownership. An upstream client-error
// verdict comes back as a soft envelope carrying the backoffice's own
// validation message.
func (s *Service) CheckAccount(ctx context.Context, body map[string]any) (*Envelope, error) {
	s.countRequest("check_account")
	return s.verify(ctx, backoffice.CheckAccountName("check_account", body), "Failed to check account in backoffice")
}

// VerifyBankAccount verifies a bank account. It shares the backoffice
// check-account-name route with CheckAccount.
func (s *Service) VerifyBankAccount(ctx context.Context, body map[string]any) (*Envelope, error) {
	s.countRequest("verify_bank_account")
	return s.verify(ctx, backoffice.CheckAccountName("verify_bank_account", body), "Failed to verify bank account in backoffice")
}

// dispatch resolves the active tenant, acquires a session when the route
// needs one, and executes the call.
func (s *Service) dispatch(ctx context.Context, call backoffice.Call) (*models.Config, json.RawMessage, error) {
	cfg, err := s.resolver.ResolveActive(ctx)
	if err != nil {
		return nil, nil, err
	}

	var session backoffice.Session
	if !call.Anonymous {
		session = s.upstream.AcquireSession(ctx, cfg)
	}

	raw, err := s.upstream.Do(ctx, cfg, session, call)
	if err != nil {
		return cfg, nil, err
	}
	// A bodiless 2xx comes back as an empty fragment, which is not
	// encodable JSON. Normalize it so the envelope carries null data.
	if len(raw) == 0 {
		raw = nil
	}
	return cfg, raw, nil
}

func (s *Service) forward(ctx context.Context, call backoffice.Call, failMsg string) (*Envelope, error) {
	cfg, raw, err := s.dispatch(ctx, call)
	if err != nil {
		return nil, wrapUpstream(err, failMsg)
	}
	return success(raw, cfg.Prefix), nil
}

// verify is forward plus the soft-rejection path for verification calls.
func (s *Service) verify(ctx context.Context, call backoffice.Call, failMsg string) (*Envelope, error) {
	cfg, raw, err := s.dispatch(ctx, call)
	if err != nil {
		if body, ok := backoffice.AsRejection(err); ok {
			s.logger.WarnContext(ctx, "verification rejected by backoffice", "op", call.Op)
			return rejection(body, cfg.Prefix), nil
		}
		return nil, wrapUpstream(err, failMsg)
	}
	return success(raw, cfg.Prefix), nil
}

func (s *Service) findMember(ctx context.Context, failMsg string, match func(backoffice.Members) (backoffice.Member, bool)) (*Envelope, error) {
	cfg, err := s.resolver.ResolveActive(ctx)
	if err != nil {
		return nil, err
	}
	session := s.upstream.AcquireSession(ctx, cfg)
	members, err := s.upstream.FetchMembers(ctx, cfg, session, backoffice.ListParams{})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUpstream, failMsg)
	}

	member, found := match(members)
	if !found {
		s.countLookupMiss()
		return nil, dErrors.New(dErrors.CodeNotFound, "Member not found")
	}

	return success(map[string]any{"member": member}, cfg.Prefix), nil
}

// wrapUpstream flattens a backoffice failure into the single generic kind
// callers see, preserving resolver errors (which already carry their code).
func wrapUpstream(err error, msg string) error {
	if dErrors.HasCode(err, dErrors.CodeUnauthorized) || dErrors.HasCode(err, dErrors.CodeInternal) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeUpstream, msg)
}

func (s *Service) countRequest(op string) {
	if s.metrics != nil {
		s.metrics.IncrementRequests(op)
	}
}

func (s *Service) countLookupMiss() {
	if s.metrics != nil {
		s.metrics.IncrementLookupMisses()
	}
}

package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"bankadapter/internal/backoffice"
	"bankadapter/internal/gateway/service/mocks"
	"bankadapter/internal/tenant/models"
	dErrors "bankadapter/pkg/domain-errors"
)

type GatewaySuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockResolver *mocks.MockConfigResolver
	mockUpstream *mocks.MockUpstream
	service      *Service
	cfg          *models.Config
}

func (s *GatewaySuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockResolver = mocks.NewMockConfigResolver(s.ctrl)
	s.mockUpstream = mocks.NewMockUpstream(s.ctrl)
	s.service = New(s.mockResolver, s.mockUpstream,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	cfg, err := models.NewConfig(uuid.New(), "client-a", "https://bo.example.com/api", "LAB", "tenant-a", time.Now().UTC())
	s.Require().NoError(err)
	cfg.IsActive = true
	s.cfg = cfg
}

func (s *GatewaySuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestGatewaySuite(t *testing.T) {
	suite.Run(t, new(GatewaySuite))
}

var noActiveTenant = dErrors.New(dErrors.CodeUnauthorized, "No active token found")

func (s *GatewaySuite) expectResolve() {
	s.mockResolver.EXPECT().ResolveActive(gomock.Any()).Return(s.cfg, nil)
}

func (s *GatewaySuite) expectSession(token string) {
	s.mockUpstream.EXPECT().AcquireSession(gomock.Any(), s.cfg).Return(backoffice.Session{Token: token})
}

// twoMembers is the fixture collection used by the lookup tests.
func twoMembers() backoffice.Members {
	return backoffice.Members{
		{"id": "1", "username": "2055511111", "creditBalance": "12.5"},
		{"id": "2", "username": "2055522222"},
	}
}

// =============================================================================
// Read path
// =============================================================================

func (s *GatewaySuite) TestGetAll_ReturnsUpstreamBodyVerbatim() {
	raw := json.RawMessage(`{"data":{"members":[]},"total":0}`)
	s.expectResolve()
	s.expectSession("tok")
	s.mockUpstream.EXPECT().
		Do(gomock.Any(), s.cfg, backoffice.Session{Token: "tok"}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *models.Config, _ backoffice.Session, call backoffice.Call) (json.RawMessage, error) {
			assert.Equal(s.T(), "/member/list", call.Path)
			assert.Equal(s.T(), "3", call.Query.Get("page"))
			return raw, nil
		})

	env, err := s.service.GetAll(context.Background(), backoffice.ListParams{Page: "3"})
	s.Require().NoError(err)
	s.True(env.Success)
	s.Equal("LAB", env.Prefix)
	s.Equal(raw, env.Data)
	s.NotEmpty(env.Timestamp)
}

func (s *GatewaySuite) TestGetByID_FiltersFetchedCollection() {
	s.expectResolve()
	s.expectSession("tok")
	s.mockUpstream.EXPECT().
		FetchMembers(gomock.Any(), s.cfg, backoffice.Session{Token: "tok"}, backoffice.ListParams{}).
		Return(twoMembers(), nil)

	env, err := s.service.GetByID(context.Background(), "2")
	s.Require().NoError(err)

	data, ok := env.Data.(map[string]any)
	s.Require().True(ok)
	member, ok := data["member"].(backoffice.Member)
	s.Require().True(ok)
	s.Equal("2055522222", member.Username())
}

func (s *GatewaySuite) TestGetByID_MissIsNotFound() {
	s.expectResolve()
	s.expectSession("tok")
	s.mockUpstream.EXPECT().
		FetchMembers(gomock.Any(), s.cfg, gomock.Any(), gomock.Any()).
		Return(twoMembers(), nil)

	_, err := s.service.GetByID(context.Background(), "3")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	var dErr *dErrors.Error
	s.Require().ErrorAs(err, &dErr)
	s.Equal("Member not found", dErr.Message)
}

// A repeated lookup re-fetches and re-filters; nothing is remembered between
// calls, so two identical lookups against unchanged upstream data must agree.
func (s *GatewaySuite) TestGetByID_Idempotent() {
	for range 2 {
		s.expectResolve()
		s.expectSession("tok")
		s.mockUpstream.EXPECT().
			FetchMembers(gomock.Any(), s.cfg, gomock.Any(), gomock.Any()).
			Return(twoMembers(), nil)
	}

	first, err := s.service.GetByID(context.Background(), "1")
	s.Require().NoError(err)
	second, err := s.service.GetByID(context.Background(), "1")
	s.Require().NoError(err)
	s.Equal(first.Data, second.Data)
}

func (s *GatewaySuite) TestGetByPhone_MatchesOnUsername() {
	s.expectResolve()
	s.expectSession("tok")
	s.mockUpstream.EXPECT().
		FetchMembers(gomock.Any(), s.cfg, gomock.Any(), gomock.Any()).
		Return(twoMembers(), nil)

	env, err := s.service.GetByPhone(context.Background(), "2055511111")
	s.Require().NoError(err)

	data := env.Data.(map[string]any)
	member := data["member"].(backoffice.Member)
	s.Equal("1", member.ID())
}

func (s *GatewaySuite) TestGetBalance() {
	s.Run("string balance is coerced", func() {
		s.expectResolve()
		s.expectSession("tok")
		s.mockUpstream.EXPECT().
			FetchMembers(gomock.Any(), s.cfg, gomock.Any(), gomock.Any()).
			Return(twoMembers(), nil)

		env, err := s.service.GetBalance(context.Background(), "1")
		s.Require().NoError(err)

		data := env.Data.(map[string]any)
		s.Equal("1", data["memberId"])
		s.Equal(12.5, data["balance"])
		s.NotNil(data["member"])
	})

	s.Run("missing balance reports zero", func() {
		s.expectResolve()
		s.expectSession("tok")
		s.mockUpstream.EXPECT().
			FetchMembers(gomock.Any(), s.cfg, gomock.Any(), gomock.Any()).
			Return(twoMembers(), nil)

		env, err := s.service.GetBalance(context.Background(), "2")
		s.Require().NoError(err)
		s.Equal(float64(0), env.Data.(map[string]any)["balance"])
	})

	s.Run("unknown member is not found", func() {
		s.expectResolve()
		s.expectSession("tok")
		s.mockUpstream.EXPECT().
			FetchMembers(gomock.Any(), s.cfg, gomock.Any(), gomock.Any()).
			Return(twoMembers(), nil)

		_, err := s.service.GetBalance(context.Background(), "9")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

// =============================================================================
// Tenant resolution failures
// =============================================================================

// When no tenant is active the request dies before any upstream traffic.
func (s *GatewaySuite) TestNoActiveTenant_StopsBeforeUpstream() {
	s.mockResolver.EXPECT().ResolveActive(gomock.Any()).Return(nil, noActiveTenant).Times(3)

	_, err := s.service.GetAll(context.Background(), backoffice.ListParams{})
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	_, err = s.service.DeleteMember(context.Background(), "1")
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	_, err = s.service.CheckAccount(context.Background(), map[string]any{})
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

// =============================================================================
// Write path
// =============================================================================

func (s *GatewaySuite) TestCreateMember_ForwardsPayload() {
	raw := json.RawMessage(`{"data":{"id":"10"}}`)
	payload := map[string]any{"username": "2055533333", "fullName": "New Member"}

	s.expectResolve()
	s.expectSession("tok")
	s.mockUpstream.EXPECT().
		Do(gomock.Any(), s.cfg, backoffice.Session{Token: "tok"}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *models.Config, _ backoffice.Session, call backoffice.Call) (json.RawMessage, error) {
			assert.Equal(s.T(), "/member/create-member", call.Path)
			assert.Equal(s.T(), payload, call.Body)
			return raw, nil
		})

	env, err := s.service.CreateMember(context.Background(), payload)
	s.Require().NoError(err)
	s.Equal(raw, env.Data)
}

// Update and delete ride the backoffice's anonymous routes: no session is
// acquired at all.
func (s *GatewaySuite) TestUpdateMember_SkipsSessionAcquisition() {
	s.expectResolve()
	s.mockUpstream.EXPECT().
		Do(gomock.Any(), s.cfg, backoffice.Session{}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *models.Config, _ backoffice.Session, call backoffice.Call) (json.RawMessage, error) {
			assert.True(s.T(), call.Anonymous)
			return json.RawMessage(`{}`), nil
		})

	_, err := s.service.UpdateMember(context.Background(), "1", map[string]any{"fullName": "X"})
	s.Require().NoError(err)
}

func (s *GatewaySuite) TestDeleteMember_SynthesizesSuccessBody() {
	s.expectResolve()
	s.mockUpstream.EXPECT().
		Do(gomock.Any(), s.cfg, backoffice.Session{}, gomock.Any()).
		Return(json.RawMessage(`{"whatever":"upstream says"}`), nil)

	env, err := s.service.DeleteMember(context.Background(), "1")
	s.Require().NoError(err)
	s.Equal(map[string]any{"success": true}, env.Data)
}

func (s *GatewaySuite) TestAddCredit_DefaultsRemarks() {
	s.expectResolve()
	s.expectSession("tok")
	s.mockUpstream.EXPECT().
		Do(gomock.Any(), s.cfg, backoffice.Session{Token: "tok"}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *models.Config, _ backoffice.Session, call backoffice.Call) (json.RawMessage, error) {
			body := call.Body.(map[string]any)
			assert.Equal(s.T(), "Add credit via Bank Adapter", body["remarks"])
			assert.Equal(s.T(), "ADD_CREDIT", body["creditType"])
			return json.RawMessage(`{}`), nil
		})

	_, err := s.service.AddCredit(context.Background(), backoffice.CreditRequest{Phone: "2055511111", Amount: 50})
	s.Require().NoError(err)
}

// =============================================================================
// Upstream failure collapsing
// =============================================================================

func (s *GatewaySuite) TestUpstreamFailures_CollapseWithPerOpMessage() {
	upstreamErr := &backoffice.Error{Category: backoffice.CategoryBadStatus, Op: "x", Status: 502, Message: "unexpected status code: 502"}

	tests := []struct {
		name    string
		invoke  func() (*Envelope, error)
		message string
	}{
		{
			name: "list",
			invoke: func() (*Envelope, error) {
				s.expectResolve()
				s.expectSession("tok")
				s.mockUpstream.EXPECT().Do(gomock.Any(), s.cfg, gomock.Any(), gomock.Any()).Return(nil, upstreamErr)
				return s.service.GetAll(context.Background(), backoffice.ListParams{})
			},
			message: "Failed to fetch members from backoffice",
		},
		{
			name: "get by id",
			invoke: func() (*Envelope, error) {
				s.expectResolve()
				s.expectSession("tok")
				s.mockUpstream.EXPECT().FetchMembers(gomock.Any(), s.cfg, gomock.Any(), gomock.Any()).Return(nil, upstreamErr)
				return s.service.GetByID(context.Background(), "1")
			},
			message: "Failed to fetch member by ID from backoffice",
		},
		{
			name: "delete",
			invoke: func() (*Envelope, error) {
				s.expectResolve()
				s.mockUpstream.EXPECT().Do(gomock.Any(), s.cfg, gomock.Any(), gomock.Any()).Return(nil, upstreamErr)
				return s.service.DeleteMember(context.Background(), "1")
			},
			message: "Failed to delete member in backoffice",
		},
		{
			name: "deposit",
			invoke: func() (*Envelope, error) {
				s.expectResolve()
				s.expectSession("tok")
				s.mockUpstream.EXPECT().Do(gomock.Any(), s.cfg, gomock.Any(), gomock.Any()).Return(nil, upstreamErr)
				return s.service.Deposit(context.Background(), backoffice.DepositRequest{Phone: "2055511111"})
			},
			message: "Failed to deposit in backoffice",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := tt.invoke()
			require.Error(s.T(), err)
			assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeUpstream))

			var dErr *dErrors.Error
			require.ErrorAs(s.T(), err, &dErr)
			assert.Equal(s.T(), tt.message, dErr.Message)
		})
	}
}

// =============================================================================
// Verification soft rejections
// =============================================================================

func (s *GatewaySuite) TestCheckAccount_UpstreamRejectionIsSoft() {
	verdict := json.RawMessage(`{"message":"account name mismatch","statusCode":400}`)
	s.expectResolve()
	s.expectSession("tok")
	s.mockUpstream.EXPECT().
		Do(gomock.Any(), s.cfg, gomock.Any(), gomock.Any()).
		Return(nil, &backoffice.Error{
			Category: backoffice.CategoryRejected,
			Op:       "check_account",
			Status:   400,
			Body:     verdict,
			Message:  "verification rejected with status 400",
		})

	env, err := s.service.CheckAccount(context.Background(), map[string]any{"accountNumber": "123"})
	s.Require().NoError(err, "a rejected verification is a response, not an error")
	s.False(env.Success)
	s.Equal("LAB", env.Prefix)
	s.Equal(verdict, env.Data)
}

func (s *GatewaySuite) TestVerifyBankAccount_NonRejectionStillFails() {
	s.expectResolve()
	s.expectSession("tok")
	s.mockUpstream.EXPECT().
		Do(gomock.Any(), s.cfg, gomock.Any(), gomock.Any()).
		Return(nil, &backoffice.Error{Category: backoffice.CategoryOutage, Op: "verify_bank_account", Message: "failed to execute request"})

	_, err := s.service.VerifyBankAccount(context.Background(), map[string]any{"accountNumber": "123"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUpstream))

	var dErr *dErrors.Error
	s.Require().ErrorAs(err, &dErr)
	s.Equal("Failed to verify bank account in backoffice", dErr.Message)
}

package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"bankadapter/internal/tenant/service"
	"bankadapter/internal/tenant/store"
)

// The tenant admin handler is tested against the real service over the
// in-memory store; persistence-specific behavior lives in the store tests.
type HandlerSuite struct {
	suite.Suite
	router chi.Router
}

func (s *HandlerSuite) SetupTest() {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(store.NewInMemory(), service.WithLogger(log))

	s.router = chi.NewRouter()
	New(svc, log).Register(s.router)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		s.Require().NoError(err)
		payload = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, payload)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerSuite) createConfig(clientID string) ConfigResponse {
	w := s.do(http.MethodPost, "/admin/tenant-configs", CreateConfigRequest{
		ClientID:      clientID,
		TargetDomain:  "https://bo.example.com/api",
		Prefix:        "LAB",
		CredentialRef: "tenant-" + clientID,
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	var resp ConfigResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (s *HandlerSuite) TestCreateConfig() {
	resp := s.createConfig("client-a")

	s.Equal("client-a", resp.ClientID)
	s.Equal("https://bo.example.com/api", resp.TargetDomain)
	s.False(resp.IsActive, "new configs must start inactive")
	s.NotEmpty(resp.ID)
}

func (s *HandlerSuite) TestCreateConfig_ValidationErrors() {
	tests := []struct {
		name string
		req  CreateConfigRequest
	}{
		{name: "missing client_id", req: CreateConfigRequest{TargetDomain: "https://bo.example.com", CredentialRef: "r"}},
		{name: "missing target_domain", req: CreateConfigRequest{ClientID: "c", CredentialRef: "r"}},
		{name: "missing credential_ref", req: CreateConfigRequest{ClientID: "c", TargetDomain: "https://bo.example.com"}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do(http.MethodPost, "/admin/tenant-configs", tt.req)
			s.Equal(http.StatusBadRequest, w.Code)
		})
	}
}

func (s *HandlerSuite) TestCreateConfig_InvalidBody() {
	req := httptest.NewRequest(http.MethodPost, "/admin/tenant-configs", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerSuite) TestActivate_SwitchesActiveConfig() {
	first := s.createConfig("client-a")
	second := s.createConfig("client-b")

	w := s.do(http.MethodPost, "/admin/tenant-configs/"+first.ID+"/activate", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/admin/tenant-configs/"+second.ID+"/activate", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp ConfigResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.IsActive)

	w = s.do(http.MethodGet, "/admin/tenant-configs/"+first.ID, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.False(resp.IsActive, "activating a config must deactivate the previous one")
}

func (s *HandlerSuite) TestDeactivate() {
	cfg := s.createConfig("client-a")

	w := s.do(http.MethodPost, "/admin/tenant-configs/"+cfg.ID+"/activate", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/admin/tenant-configs/"+cfg.ID+"/deactivate", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp ConfigResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.False(resp.IsActive)
}

func (s *HandlerSuite) TestUnknownID_Returns404() {
	w := s.do(http.MethodGet, "/admin/tenant-configs/"+uuid.NewString(), nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/admin/tenant-configs/"+uuid.NewString()+"/activate", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerSuite) TestMalformedID_Returns400() {
	w := s.do(http.MethodGet, "/admin/tenant-configs/not-a-uuid", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

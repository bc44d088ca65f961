// Package handler exposes the member-facing HTTP surface. Every route
// delegates to the service; the handler only decodes input and writes the
// envelope or error.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bankadapter/internal/backoffice"
	"bankadapter/internal/gateway/service"
	"bankadapter/pkg/platform/httputil"
)

// Service is the delegation core the handler depends on.
type Service interface {
	GetAll(ctx context.Context, params backoffice.ListParams) (*service.Envelope, error)
	GetByID(ctx context.Context, id string) (*service.Envelope, error)
	GetByPhone(ctx context.Context, phone string) (*service.Envelope, error)
	GetBalance(ctx context.Context, id string) (*service.Envelope, error)
	CreateMember(ctx context.Context, body map[string]any) (*service.Envelope, error)
	UpdateMember(ctx context.Context, id string, body map[string]any) (*service.Envelope, error)
	DeleteMember(ctx context.Context, id string) (*service.Envelope, error)
	AddCredit(ctx context.Context, req backoffice.CreditRequest) (*service.Envelope, error)
	RemoveCredit(ctx context.Context, id string, req backoffice.CreditRequest) (*service.Envelope, error)
	CashoutCredit(ctx context.Context, id string, req backoffice.CreditRequest) (*service.Envelope, error)
	Deposit(ctx context.Context, req backoffice.DepositRequest) (*service.Envelope, error)
	CheckAccount(ctx context.Context, body map[string]any) (*service.Envelope, error)
	VerifyBankAccount(ctx context.Context, body map[string]any) (*service.Envelope, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/api/member", func(r chi.Router) {
		r.Get("/list", h.HandleList)
		r.Post("/create", h.HandleCreate)
		r.Post("/deposit", h.HandleDeposit)
		r.Post("/check-account", h.HandleCheckAccount)
		r.Post("/verify-bank-account", h.HandleVerifyBankAccount)
		r.Get("/phone/{phone}", h.HandleGetByPhone)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.HandleGetByID)
			r.Put("/", h.HandleUpdate)
			r.Delete("/", h.HandleDelete)
			r.Get("/balance", h.HandleGetBalance)
			r.Post("/add-credit", h.HandleAddCredit)
			r.Post("/remove-credit", h.HandleRemoveCredit)
			r.Post("/cashout-credit", h.HandleCashoutCredit)
		})
	})
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	params := backoffice.ListParams{
		Page:   r.URL.Query().Get("page"),
		Limit:  r.URL.Query().Get("limit"),
		Search: r.URL.Query().Get("search"),
	}
	h.respond(w, r)(h.service.GetAll(r.Context(), params))
}

func (h *Handler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.service.GetByID(r.Context(), chi.URLParam(r, "id")))
}

func (h *Handler) HandleGetByPhone(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.service.GetByPhone(r.Context(), chi.URLParam(r, "phone")))
}

func (h *Handler) HandleGetBalance(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.service.GetBalance(r.Context(), chi.URLParam(r, "id")))
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	body, ok := httputil.DecodeJSON[map[string]any](w, r, h.logger)
	if !ok {
		return
	}
	h.respond(w, r)(h.service.CreateMember(r.Context(), *body))
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	body, ok := httputil.DecodeJSON[map[string]any](w, r, h.logger)
	if !ok {
		return
	}
	h.respond(w, r)(h.service.UpdateMember(r.Context(), chi.URLParam(r, "id"), *body))
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.service.DeleteMember(r.Context(), chi.URLParam(r, "id")))
}

func (h *Handler) HandleAddCredit(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeJSON[backoffice.CreditRequest](w, r, h.logger)
	if !ok {
		return
	}
	// The upstream add-credit route is keyed by phone; the path id is kept
	// for route symmetry but the phone in the body drives the operation.
	h.respond(w, r)(h.service.AddCredit(r.Context(), *req))
}

func (h *Handler) HandleRemoveCredit(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeJSON[backoffice.CreditRequest](w, r, h.logger)
	if !ok {
		return
	}
	h.respond(w, r)(h.service.RemoveCredit(r.Context(), chi.URLParam(r, "id"), *req))
}

func (h *Handler) HandleCashoutCredit(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeJSON[backoffice.CreditRequest](w, r, h.logger)
	if !ok {
		return
	}
	h.respond(w, r)(h.service.CashoutCredit(r.Context(), chi.URLParam(r, "id"), *req))
}

func (h *Handler) HandleDeposit(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeJSON[backoffice.DepositRequest](w, r, h.logger)
	if !ok {
		return
	}
	h.respond(w, r)(h.service.Deposit(r.Context(), *req))
}

func (h *Handler) HandleCheckAccount(w http.ResponseWriter, r *http.Request) {
	body, ok := httputil.DecodeJSON[map[string]any](w, r, h.logger)
	if !ok {
		return
	}
	h.respond(w, r)(h.service.CheckAccount(r.Context(), *body))
}

func (h *Handler) HandleVerifyBankAccount(w http.ResponseWriter, r *http.Request) {
	body, ok := httputil.DecodeJSON[map[string]any](w, r, h.logger)
	if !ok {
		return
	}
	h.respond(w, r)(h.service.VerifyBankAccount(r.Context(), *body))
}

// respond writes either the service envelope or the mapped error. Soft
// verification rejections arrive as a non-nil envelope with Success false and
// still go out with status 200.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request) func(*service.Envelope, error) {
	return func(env *service.Envelope, err error) {
		if err != nil {
			h.logger.ErrorContext(r.Context(), "gateway operation failed", "path", r.URL.Path, "error", err)
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, env)
	}
}

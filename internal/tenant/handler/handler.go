package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"bankadapter/internal/tenant/models"
	"bankadapter/internal/tenant/service"
	dErrors "bankadapter/pkg/domain-errors"
	"bankadapter/pkg/platform/httputil"
)

// Service defines the interface for tenant config administration.
// Returns domain objects, not HTTP response DTOs.
type Service interface {
	CreateConfig(ctx context.Context, cmd *service.CreateCommand) (*models.Config, error)
	GetConfig(ctx context.Context, id uuid.UUID) (*models.Config, error)
	ActivateConfig(ctx context.Context, id uuid.UUID) (*models.Config, error)
	DeactivateConfig(ctx context.Context, id uuid.UUID) (*models.Config, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/tenant-configs", h.HandleCreateConfig)
	r.Get("/admin/tenant-configs/{id}", h.HandleGetConfig)
	r.Post("/admin/tenant-configs/{id}/activate", h.HandleActivateConfig)
	r.Post("/admin/tenant-configs/{id}/deactivate", h.HandleDeactivateConfig)
}

// HandleCreateConfig registers a new tenant config record (inactive).
func (h *Handler) HandleCreateConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeJSON[CreateConfigRequest](w, r, h.logger)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	cfg, err := h.service.CreateConfig(ctx, &service.CreateCommand{
		ClientID:      req.ClientID,
		TargetDomain:  req.TargetDomain,
		Prefix:        req.Prefix,
		CredentialRef: req.CredentialRef,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "create tenant config failed", "error", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toConfigResponse(cfg))
}

// HandleGetConfig returns one tenant config record.
func (h *Handler) HandleGetConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid config id"))
		return
	}

	cfg, err := h.service.GetConfig(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "get tenant config failed", "error", err, "config_id", id)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toConfigResponse(cfg))
}

// HandleActivateConfig makes the record the single active config.
func (h *Handler) HandleActivateConfig(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.ActivateConfig)
}

// HandleDeactivateConfig marks the record inactive.
func (h *Handler) HandleDeactivateConfig(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.DeactivateConfig)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, op func(context.Context, uuid.UUID) (*models.Config, error)) {
	ctx := r.Context()
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid config id"))
		return
	}

	cfg, err := op(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "tenant config transition failed", "error", err, "config_id", id)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toConfigResponse(cfg))
}

package refdata

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"bankadapter/pkg/platform/httputil"
)

type listResponse struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/api/bank/lao/list", h.HandleLaoBanks)
	r.Get("/api/currency/list", h.HandleCurrencies)
	r.Get("/api/customer-group/list", h.HandleCustomerGroups)
}

func (h *Handler) HandleLaoBanks(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, LaoBanks())
}

func (h *Handler) HandleCurrencies(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, Currencies())
}

func (h *Handler) HandleCustomerGroups(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, CustomerGroups())
}

func (h *Handler) writeList(w http.ResponseWriter, data any) {
	httputil.WriteJSON(w, http.StatusOK, listResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

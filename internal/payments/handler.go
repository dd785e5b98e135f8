package payments

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/freightdeck/freightdeck/internal/platform/httpx"
	"github.com/freightdeck/freightdeck/internal/shared"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/payments", func(r chi.Router) {
		r.Get("/settlements", h.settlements)
		r.Post("/{orderID}/mark-paid", h.markPaid)
	})
}

func (h *Handler) settlements(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, r, shared.ErrUnauthorized)
		return
	}

	summary, err := h.service.Settlements(r.Context(), identity.UserID)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	if _, ok := shared.IdentityFromContext(r.Context()); !ok {
		httpx.RespondError(w, r, shared.ErrUnauthorized)
		return
	}

	if err := h.service.MarkPaid(r.Context(), chi.URLParam(r, "orderID")); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"status": "Paid"})
}

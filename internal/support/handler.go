package support

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/freightdeck/freightdeck/internal/platform/httpx"
	"github.com/freightdeck/freightdeck/internal/shared"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service, validator: validator.New()}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/support", h.submit)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var ticket Ticket
	if err := httpx.DecodeJSON(r, &ticket); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	if err := h.validator.Struct(ticket); err != nil {
		httpx.RespondError(w, r, fmt.Errorf("%w: %v", shared.ErrValidation, err))
		return
	}

	reference, err := h.service.Submit(r.Context(), ticket)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusAccepted, map[string]any{"reference": reference})
}

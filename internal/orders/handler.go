package orders

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/freightdeck/freightdeck/internal/docstore"
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
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.save)
		r.Delete("/{orderID}", h.delete)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, r, shared.ErrUnauthorized)
		return
	}

	query := r.URL.Query()
	list, err := h.service.List(r.Context(), identity.UserID, query.Get("search"), query.Get("status"))
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{"orders": toResponses(list)})
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, r, shared.ErrUnauthorized)
		return
	}

	var form docstore.Document
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	order, err := h.service.Save(r.Context(), identity.UserID, form)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(order))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	if err := h.service.Delete(r.Context(), orderID); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type orderResponse struct {
	ID            string            `json:"id"`
	PaymentStatus string            `json:"payment_status"`
	Amount        float64           `json:"amount"`
	Doc           docstore.Document `json:"doc"`
}

func toResponse(o Order) orderResponse {
	return orderResponse{
		ID:            o.Key,
		PaymentStatus: o.PaymentStatus(),
		Amount:        o.Amount(),
		Doc:           o.Doc,
	}
}

func toResponses(list []Order) []orderResponse {
	out := make([]orderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toResponse(o))
	}
	return out
}

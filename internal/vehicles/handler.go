package vehicles

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/freightdeck/freightdeck/internal/docstore"
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
	r.Route("/vehicles", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.save)
		r.Delete("/{vehicleType}/{company}/{subtype}", h.delete)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, r, shared.ErrUnauthorized)
		return
	}

	list, err := h.service.List(r.Context(), identity.UserID, r.URL.Query().Get("search"))
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	out := make([]docstore.Document, 0, len(list))
	for _, v := range list {
		doc := v.Doc.Clone()
		doc["id"] = v.ID()
		doc["capacity"] = v.Capacity()
		out = append(out, doc)
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"vehicles": out})
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, r, shared.ErrUnauthorized)
		return
	}

	var req SaveRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, r, fmt.Errorf("%w: %v", shared.ErrValidation, err))
		return
	}

	vehicle, err := h.service.Save(r.Context(), identity.UserID, req)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"vehicle": vehicle.Doc, "id": vehicle.ID()})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(),
		chi.URLParam(r, "vehicleType"),
		chi.URLParam(r, "company"),
		chi.URLParam(r, "subtype"))
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

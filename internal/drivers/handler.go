package drivers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/freightdeck/freightdeck/internal/docstore"
	"github.com/freightdeck/freightdeck/internal/media"
	"github.com/freightdeck/freightdeck/internal/platform/httpx"
	"github.com/freightdeck/freightdeck/internal/shared"
)

const maxDocumentFormMemory = 8 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/drivers", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.save)
		r.Delete("/{mobile}", h.delete)
		r.Post("/{mobile}/approve", h.approve)
		r.Post("/{mobile}/reject", h.reject)
		r.Post("/{mobile}/documents", h.uploadDocument)
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
	for _, d := range list {
		doc := d.Doc.Clone()
		doc["approvalStatus"] = d.ApprovalStatus()
		out = append(out, doc)
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"drivers": out})
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

	driver, err := h.service.Save(r.Context(), identity.UserID, form)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"driver": driver.Doc})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "mobile")); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, r, shared.ErrUnauthorized)
		return
	}

	if err := h.service.Approve(r.Context(), identity.UserID, chi.URLParam(r, "mobile")); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"status": "approved"})
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, r, shared.ErrUnauthorized)
		return
	}

	var req rejectRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	if err := h.service.Reject(r.Context(), identity.UserID, chi.URLParam(r, "mobile"), req.Reason); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"status": "rejected"})
}

func (h *Handler) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if _, ok := shared.IdentityFromContext(r.Context()); !ok {
		httpx.RespondError(w, r, shared.ErrUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxDocumentFormMemory); err != nil {
		httpx.RespondError(w, r, fmt.Errorf("%w: %v", shared.ErrValidation, err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.RespondError(w, r, fmt.Errorf("%w: file is required", shared.ErrValidation))
		return
	}
	defer func() {
		_ = file.Close()
	}()

	asset, err := h.service.UploadDocument(r.Context(), chi.URLParam(r, "mobile"), r.FormValue("docType"), media.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, asset)
}

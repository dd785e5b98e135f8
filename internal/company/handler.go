package company

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cast"

	"github.com/freightdeck/freightdeck/internal/media"
	"github.com/freightdeck/freightdeck/internal/platform/httpx"
	"github.com/freightdeck/freightdeck/internal/shared"
)

// maxKYCFormMemory bounds how much of the multipart form stays in memory.
const maxKYCFormMemory = 32 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/company", func(r chi.Router) {
		r.Get("/", h.get)
		r.Post("/kyc", h.submitKYC)
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, r, shared.ErrUnauthorized)
		return
	}

	profile, err := h.service.Get(r.Context(), identity.UserID)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"company": profile.Doc})
}

func (h *Handler) submitKYC(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, r, shared.ErrUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxKYCFormMemory); err != nil {
		httpx.RespondError(w, r, fmt.Errorf("%w: %v", shared.ErrValidation, err))
		return
	}

	sub := KYCSubmission{
		Documents:    map[string]media.FileUpload{},
		UploadMethod: r.FormValue("documentUploadMethod"),
		Description:  r.FormValue("description"),
		Flags:        map[string]bool{},
	}
	for _, flag := range serviceFlags {
		sub.Flags[flag] = cast.ToBool(r.FormValue(flag))
	}

	var closers []multipart.File
	defer func() {
		for _, f := range closers {
			_ = f.Close()
		}
	}()

	for _, slot := range kycDocumentSlots {
		file, header, err := r.FormFile(slot.FormField)
		if err == http.ErrMissingFile {
			continue
		}
		if err != nil {
			httpx.RespondError(w, r, fmt.Errorf("%w: %v", shared.ErrValidation, err))
			return
		}
		closers = append(closers, file)
		sub.Documents[slot.FormField] = media.FileUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Content:     file,
		}
	}

	if file, header, err := r.FormFile("logo"); err == nil {
		closers = append(closers, file)
		sub.Logo = &media.FileUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Content:     file,
		}
	}

	profile, err := h.service.SubmitKYC(r.Context(), identity.UserID, sub)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"company": profile.Doc})
}

package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/freightdeck/freightdeck/internal/platform/httpx"
	"github.com/freightdeck/freightdeck/internal/shared"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger      *slog.Logger
	service     *Service
	development bool
}

// NewHandler constructs a Handler instance. In development mode the
// signup endpoint includes failure details in 500 responses.
func NewHandler(logger *slog.Logger, service *Service, development bool) *Handler {
	return &Handler{logger: logger, service: service, development: development}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.signup)
		r.Post("/signin", h.signin)
	})
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var in SignupInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	account, err := h.service.Signup(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrValidation), errors.Is(err, shared.ErrDuplicate):
			httpx.RespondError(w, r, err)
		default:
			h.logger.Error("signup", slog.Any("error", err))
			detail := ""
			if h.development {
				detail = err.Error()
			}
			httpx.Problem(w, http.StatusInternalServerError, "Internal Error", detail)
		}
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"user": account})
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	token, account, err := h.service.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			httpx.RespondError(w, r, err)
			return
		}
		h.logger.Error("signin", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"token": token, "user": account})
}

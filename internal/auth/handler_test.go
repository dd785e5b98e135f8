package auth

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	svc, _, _ := newTestService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, svc, false)

	r := chi.NewRouter()
	handler.MountRoutes(r)
	return r
}

func post(t *testing.T, router chi.Router, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const signupBody = `{
	"email": "asha@example.com",
	"password": "secret123",
	"companyName": "Acme Logistics",
	"phoneNumber": "9876543210",
	"firstName": "Asha",
	"lastName": "Patel"
}`

func TestSignupEndpointStatusContract(t *testing.T) {
	router := newTestRouter(t)

	rec := post(t, router, "/auth/signup", signupBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"kycStatus":"not-submitted"`)

	// Duplicate email.
	rec = post(t, router, "/auth/signup", signupBody)
	require.Equal(t, http.StatusConflict, rec.Code)

	// Missing required fields.
	rec = post(t, router, "/auth/signup", `{"email":"x@example.com"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSigninEndpointStatusContract(t *testing.T) {
	router := newTestRouter(t)

	rec := post(t, router, "/auth/signup", signupBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = post(t, router, "/auth/signin", `{"email":"asha@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"token"`)

	rec = post(t, router, "/auth/signin", `{"email":"asha@example.com","password":"nope12345"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/freightdeck/freightdeck/internal/auth"
	"github.com/freightdeck/freightdeck/internal/company"
	"github.com/freightdeck/freightdeck/internal/dashboard"
	"github.com/freightdeck/freightdeck/internal/drivers"
	"github.com/freightdeck/freightdeck/internal/orders"
	"github.com/freightdeck/freightdeck/internal/payments"
	"github.com/freightdeck/freightdeck/internal/shared"
	"github.com/freightdeck/freightdeck/internal/support"
	"github.com/freightdeck/freightdeck/internal/tracking"
	"github.com/freightdeck/freightdeck/internal/vehicles"
	"github.com/freightdeck/freightdeck/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config
	Tokens *shared.TokenManager

	AuthHandler      *auth.Handler
	DashboardHandler *dashboard.Handler
	OrdersHandler    *orders.Handler
	DriversHandler   *drivers.Handler
	VehiclesHandler  *vehicles.Handler
	PaymentsHandler  *payments.Handler
	TrackingHandler  *tracking.Handler
	CompanyHandler   *company.Handler
	SupportHandler   *support.Handler
	JobHandler       *jobs.Handler
}

// NewRouter constructs the chi.Router with FreightDeck defaults.
//
// Everything under /api except the auth and support endpoints requires a
// bearer token issued at signin.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		params.AuthHandler.MountRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(BearerAuth(params.Tokens))

			params.SupportHandler.MountRoutes(r)
			params.DashboardHandler.MountRoutes(r)
			params.OrdersHandler.MountRoutes(r)
			params.DriversHandler.MountRoutes(r)
			params.VehiclesHandler.MountRoutes(r)
			params.PaymentsHandler.MountRoutes(r)
			params.TrackingHandler.MountRoutes(r)
			params.CompanyHandler.MountRoutes(r)
			if params.JobHandler != nil {
				params.JobHandler.MountRoutes(r)
			}
		})
	})

	return r
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/freightdeck/freightdeck/internal/app"
	"github.com/freightdeck/freightdeck/internal/auth"
	"github.com/freightdeck/freightdeck/internal/company"
	"github.com/freightdeck/freightdeck/internal/dashboard"
	"github.com/freightdeck/freightdeck/internal/docstore"
	"github.com/freightdeck/freightdeck/internal/drivers"
	"github.com/freightdeck/freightdeck/internal/media"
	"github.com/freightdeck/freightdeck/internal/orders"
	"github.com/freightdeck/freightdeck/internal/payments"
	"github.com/freightdeck/freightdeck/internal/platform/cache"
	"github.com/freightdeck/freightdeck/internal/platform/db"
	"github.com/freightdeck/freightdeck/internal/shared"
	"github.com/freightdeck/freightdeck/internal/support"
	"github.com/freightdeck/freightdeck/internal/tracking"
	"github.com/freightdeck/freightdeck/internal/vehicles"
	"github.com/freightdeck/freightdeck/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if err := db.Migrate(cfg.PGDSN, cfg.MigrationsDir); err != nil {
		logger.Error("run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, dashboard caching disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}
	}()

	tokens := shared.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	store := docstore.NewPGStore(pool)
	uploader := media.NewClient(cfg.CloudinaryCloudName, cfg.CloudinaryUploadPreset)

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, store, tokens, logger)
	authHandler := auth.NewHandler(logger, authService, cfg.IsDevelopment())

	resolver := company.NewResolver(store, authRepo, logger)
	companyService := company.NewService(store, resolver, uploader, logger)
	companyHandler := company.NewHandler(companyService)

	ordersRepo := orders.NewRepository(store)
	ordersService := orders.NewService(ordersRepo, resolver, logger)
	ordersHandler := orders.NewHandler(ordersService)

	driversRepo := drivers.NewRepository(store)
	driversService := drivers.NewService(driversRepo, resolver, uploader, logger)
	driversHandler := drivers.NewHandler(driversService)

	vehiclesService := vehicles.NewService(vehicles.NewRepository(store), resolver, logger)
	vehiclesHandler := vehicles.NewHandler(vehiclesService)

	dashboardCache := dashboard.NewCache(redisClient, cfg.DashboardCacheTTL)
	dashboardService := dashboard.NewService(ordersRepo, driversRepo, resolver, dashboardCache, logger)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	paymentsService := payments.NewService(ordersRepo, resolver, logger)
	paymentsHandler := payments.NewHandler(paymentsService)

	trackingService := tracking.NewService(ordersRepo, resolver, logger)
	trackingHandler := tracking.NewHandler(trackingService)

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	supportService := support.NewService(jobClient, cfg.SupportInbox, logger)
	supportHandler := support.NewHandler(supportService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Tokens:           tokens,
		AuthHandler:      authHandler,
		DashboardHandler: dashboardHandler,
		OrdersHandler:    ordersHandler,
		DriversHandler:   driversHandler,
		VehiclesHandler:  vehiclesHandler,
		PaymentsHandler:  paymentsHandler,
		TrackingHandler:  trackingHandler,
		CompanyHandler:   companyHandler,
		SupportHandler:   supportHandler,
		JobHandler:       jobHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

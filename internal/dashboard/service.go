package dashboard

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/freightdeck/freightdeck/internal/drivers"
	"github.com/freightdeck/freightdeck/internal/orders"
)

// CompanyResolver resolves the company name an account belongs to.
type CompanyResolver interface {
	Resolve(ctx context.Context, userID string) (string, error)
}

// Service computes and caches the dashboard summary.
type Service struct {
	ordersRepo  orders.Repository
	driversRepo drivers.Repository
	resolver    CompanyResolver
	cache       *Cache
	logger      *slog.Logger
	now         func() time.Time
}

func NewService(ordersRepo orders.Repository, driversRepo drivers.Repository, resolver CompanyResolver, cache *Cache, logger *slog.Logger) *Service {
	return &Service{
		ordersRepo:  ordersRepo,
		driversRepo: driversRepo,
		resolver:    resolver,
		cache:       cache,
		logger:      logger,
		now:         time.Now,
	}
}

// Summary returns the account's dashboard KPIs, served from cache when a
// current version is available.
func (s *Service) Summary(ctx context.Context, userID string) (Summary, error) {
	company, err := s.resolver.Resolve(ctx, userID)
	if err != nil {
		return Summary{}, err
	}

	scope := company
	if scope == "" {
		scope = "user:" + userID
	}
	key, err := s.cache.BuildKey(ctx, "dashboard", "summary", scope)
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	err = s.cache.FetchJSON(ctx, key, &summary, func(ctx context.Context) (any, error) {
		return s.compute(ctx, userID, company)
	})
	return summary, err
}

// compute fetches orders and drivers in parallel and folds them down.
func (s *Service) compute(ctx context.Context, userID, company string) (Summary, error) {
	var (
		orderList  []orders.Order
		driverList []drivers.Driver
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if company == "" {
			orderList, err = s.ordersRepo.ByUser(gctx, userID)
		} else {
			orderList, err = s.ordersRepo.ByCompany(gctx, company)
		}
		return err
	})
	g.Go(func() error {
		all, err := s.driversRepo.All(gctx)
		if err != nil {
			return err
		}
		driverList = make([]drivers.Driver, 0, len(all))
		for _, d := range all {
			if drivers.Visible(d, company) {
				driverList = append(driverList, d)
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	summary := Aggregate(orderList, driverList, s.now())
	s.logger.Debug("dashboard summary computed",
		"company", company,
		"orders", summary.TotalOrders,
		"revenue", summary.TotalRevenue)
	return summary, nil
}

// Invalidate bumps the cache version after a write that changes the KPIs.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

package dashboard

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/freightdeck/freightdeck/internal/docstore"
	"github.com/freightdeck/freightdeck/internal/drivers"
	"github.com/freightdeck/freightdeck/internal/orders"
)

type staticResolver map[string]string

func (r staticResolver) Resolve(_ context.Context, userID string) (string, error) {
	return r[userID], nil
}

func newTestService(t *testing.T) (*Service, docstore.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := docstore.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(
		orders.NewRepository(store),
		drivers.NewRepository(store),
		staticResolver{"u1": "Acme Logistics"},
		NewCache(client, time.Minute),
		logger,
	)
	svc.now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }
	return svc, store
}

func seedAcme(t *testing.T, store docstore.Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, orders.Collection, "ORD-1", docstore.Document{
		"company_name": "Acme Logistics",
		"total_amount": "₹1,200",
		"createdAt":    "2024-01-10T08:00:00Z",
	}, false))
	require.NoError(t, store.Upsert(ctx, orders.Collection, "ORD-2", docstore.Document{
		"company_name": "Acme Logistics",
		"amount":       "0",
	}, false))
	require.NoError(t, store.Upsert(ctx, orders.Collection, "ORD-3", docstore.Document{
		"company_name": "Acme Logistics",
		"price":        "3,400.50",
		"createdAt":    "2024-03-01T00:00:00Z",
	}, false))
	require.NoError(t, store.Upsert(ctx, drivers.Collection, "+911111111111", docstore.Document{
		"status": "Active", "approvalStatus": "approved", "approvedBy": "Acme Logistics",
	}, false))
	require.NoError(t, store.Upsert(ctx, drivers.Collection, "+912222222222", docstore.Document{
		"status": "active", "approvalStatus": "approved", "approvedBy": "Globex",
	}, false))
}

func TestSummaryComputesCompanyKPIs(t *testing.T) {
	svc, store := newTestService(t)
	seedAcme(t, store)

	s, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, 3, s.TotalOrders)
	require.Equal(t, 4600.5, s.TotalRevenue)
	require.Equal(t, 1, s.ActiveDrivers)
	require.Len(t, s.MonthlyRevenue, 3)
	require.Equal(t, float64(0), s.MonthlyRevenue[1].Value)
}

func TestSummaryServesFromCacheUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	seedAcme(t, store)

	first, err := svc.Summary(ctx, "u1")
	require.NoError(t, err)

	// A new order does not show up until the cache version is bumped.
	require.NoError(t, store.Upsert(ctx, orders.Collection, "ORD-4", docstore.Document{
		"company_name": "Acme Logistics",
		"total_amount": "100",
		"createdAt":    "2024-03-10T00:00:00Z",
	}, false))

	cached, err := svc.Summary(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, first.TotalOrders, cached.TotalOrders)

	require.NoError(t, svc.Invalidate(ctx))
	fresh, err := svc.Summary(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, first.TotalOrders+1, fresh.TotalOrders)
	require.Equal(t, first.TotalRevenue+100, fresh.TotalRevenue)
}

func TestSummaryFallsBackToUserScope(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	require.NoError(t, store.Upsert(ctx, orders.Collection, "ORD-9", docstore.Document{
		"userId": "u2", "amount": "700", "createdAt": "2024-03-01T00:00:00Z",
	}, false))

	s, err := svc.Summary(ctx, "u2")
	require.NoError(t, err)
	require.Equal(t, 1, s.TotalOrders)
	require.Equal(t, float64(700), s.TotalRevenue)
}

package tracking

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freightdeck/freightdeck/internal/docstore"
	"github.com/freightdeck/freightdeck/internal/orders"
)

type staticResolver map[string]string

func (r staticResolver) Resolve(_ context.Context, userID string) (string, error) {
	return r[userID], nil
}

func newTestService(t *testing.T) (*Service, docstore.Store) {
	t.Helper()
	store := docstore.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(orders.NewRepository(store), staticResolver{"u1": "Acme Logistics"}, logger), store
}

func seed(t *testing.T, store docstore.Store, id string, doc docstore.Document) {
	t.Helper()
	doc["company_name"] = "Acme Logistics"
	require.NoError(t, store.Upsert(context.Background(), orders.Collection, id, doc, false))
}

func TestFromOrderPrefersDriverLocation(t *testing.T) {
	o := orders.Order{Key: "ORD-1", Doc: docstore.Document{
		"driver_current_location": map[string]any{"latitude": 18.52, "longitude": 73.85},
		"dest_lat":                19.07,
		"dest_lng":                72.87,
		"from_lat":                18.0,
		"from_lng":                74.0,
		"order_status":            "in-progress",
	}}
	sh := fromOrder(o)
	require.NotNil(t, sh.Current)
	require.Equal(t, 18.52, sh.Current.Lat)
	require.Equal(t, 73.85, sh.Current.Lng)
	require.Len(t, sh.Route, 3)
	require.Equal(t, "from", sh.Route[0].Label)
	require.Equal(t, "destination", sh.Route[2].Label)
}

func TestFromOrderFallsBackToDestination(t *testing.T) {
	o := orders.Order{Key: "ORD-1", Doc: docstore.Document{
		"dest_lat": 19.07,
		"dest_lng": 72.87,
	}}
	sh := fromOrder(o)
	require.NotNil(t, sh.Current)
	require.Equal(t, 19.07, sh.Current.Lat)
	// Zero origin coordinates never enter the route.
	require.Len(t, sh.Route, 2)
}

func TestFromOrderWithoutCoordinates(t *testing.T) {
	sh := fromOrder(orders.Order{Key: "ORD-1", Doc: docstore.Document{}})
	require.Nil(t, sh.Current)
	require.Empty(t, sh.Route)
	require.Equal(t, "Unknown", sh.Status)
}

func TestStatusFallbackChain(t *testing.T) {
	sh := fromOrder(orders.Order{Doc: docstore.Document{"status": "enroute"}})
	require.Equal(t, "enroute", sh.Status)

	sh = fromOrder(orders.Order{Doc: docstore.Document{"order_status": "completed", "status": "enroute"}})
	require.Equal(t, "completed", sh.Status)
}

func TestListFiltersByStatusAndSearch(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	seed(t, store, "ORD-1", docstore.Document{"order_status": "In-Progress", "driver_name": "Ravi"})
	seed(t, store, "ORD-2", docstore.Document{"order_status": "completed", "driver_name": "Sunil"})

	all, err := svc.List(ctx, "u1", "", "all")
	require.NoError(t, err)
	require.Len(t, all, 2)

	got, err := svc.List(ctx, "u1", "", "in-progress")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "ORD-1", got[0].ID)

	got, err = svc.List(ctx, "u1", "sunil", "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "ORD-2", got[0].ID)
}

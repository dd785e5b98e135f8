package docstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freightdeck/freightdeck/internal/shared"
)

func TestMergeUpsertPreservesUnspecifiedFields(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, store.Upsert(ctx, "AllOrders", "ORD-1", Document{
		"order_id":       "ORD-1",
		"total_amount":   "1200",
		"payment_status": "Pending",
	}, false))

	require.NoError(t, store.Upsert(ctx, "AllOrders", "ORD-1", Document{
		"payment_status": "Paid",
		"pending_amount": "0",
	}, true))

	doc, err := store.Get(ctx, "AllOrders", "ORD-1")
	require.NoError(t, err)
	require.Equal(t, "Paid", doc.String("payment_status"))
	require.Equal(t, "0", doc.String("pending_amount"))
	require.Equal(t, "1200", doc.String("total_amount"))
}

func TestPlainUpsertReplacesDocument(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, store.Upsert(ctx, "Drivers", "+911111111111", Document{
		"firstName":       "Ravi",
		"rejectionReason": "expired license",
	}, false))
	require.NoError(t, store.Upsert(ctx, "Drivers", "+911111111111", Document{
		"firstName": "Ravi",
	}, false))

	doc, err := store.Get(ctx, "Drivers", "+911111111111")
	require.NoError(t, err)
	require.Empty(t, doc.String("rejectionReason"))
}

func TestDeleteMissingKeyIsSilent(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	require.NoError(t, store.Delete(ctx, "AllOrders", "nope"))

	_, err := store.Get(ctx, "AllOrders", "nope")
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestFindByFieldAndListPrefix(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, store.Upsert(ctx, "AllOrders", "A", Document{"company_name": "Acme Logistics"}, false))
	require.NoError(t, store.Upsert(ctx, "AllOrders", "B", Document{"company_name": "Other"}, false))
	require.NoError(t, store.Upsert(ctx, "Vehicles", "Truck/Companies/Acme Logistics/subtypes/Open", Document{"subtype": "Open"}, false))
	require.NoError(t, store.Upsert(ctx, "Vehicles", "Truck/Companies/Acme Logistics/subtypes/Container", Document{"subtype": "Container"}, false))
	require.NoError(t, store.Upsert(ctx, "Vehicles", "Trailer/Companies/Acme Logistics/subtypes/Flatbed", Document{"subtype": "Flatbed"}, false))

	byCompany, err := store.FindByField(ctx, "AllOrders", "company_name", "Acme Logistics")
	require.NoError(t, err)
	require.Len(t, byCompany, 1)
	require.Equal(t, "A", byCompany[0].Key)

	trucks, err := store.ListPrefix(ctx, "Vehicles", "Truck/")
	require.NoError(t, err)
	require.Len(t, trucks, 2)
	require.Equal(t, "Truck/Companies/Acme Logistics/subtypes/Container", trucks[0].Key)
}

func TestDocumentHelpers(t *testing.T) {
	doc := Document{
		"total_amount": nil,
		"price":        1200.5,
		"primaryContact": map[string]any{
			"email": "ops@acme.example",
		},
		"realtimeTracking": true,
	}

	require.Equal(t, "1200.5", doc.FirstString("total_amount", "price", "amount"))
	require.Equal(t, "ops@acme.example", doc.Map("primaryContact").String("email"))
	require.Nil(t, doc.Map("total_amount"))
	require.True(t, doc.Bool("realtimeTracking"))
	require.Equal(t, 1200.5, doc.Float("price"))
}

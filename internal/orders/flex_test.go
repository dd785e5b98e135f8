package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/freightdeck/freightdeck/internal/docstore"
)

func TestCoerceAmount(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"₹1,200", 1200},
		{"3400.50", 3400.5},
		{"Rs. 2,000.25", 2000.25},
		{"", 0},
		{"N/A", 0},
		{"free", 0},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, CoerceAmount(tc.raw), "raw=%q", tc.raw)
	}
}

func TestAmountPrefersFirstNonEmptyField(t *testing.T) {
	o := Order{Doc: docstore.Document{
		"total_amount": "",
		"price":        "₹500",
		"amount":       "999",
	}}
	require.Equal(t, float64(500), o.Amount())

	o = Order{Doc: docstore.Document{"amount": "999"}}
	require.Equal(t, float64(999), o.Amount())
}

func TestParseFlexTimeShapes(t *testing.T) {
	structured, ok := ParseFlexTime(map[string]any{"seconds": float64(1700000000)})
	require.True(t, ok)
	require.Equal(t, time.Unix(1700000000, 0).UTC(), structured)

	underscored, ok := ParseFlexTime(map[string]any{"_seconds": float64(1700000000)})
	require.True(t, ok)
	require.Equal(t, structured, underscored)

	epoch, ok := ParseFlexTime(float64(1700000000))
	require.True(t, ok)
	require.Equal(t, structured, epoch)

	str, ok := ParseFlexTime("2023-11-14T22:13:20Z")
	require.True(t, ok)
	require.Equal(t, structured, str)

	_, ok = ParseFlexTime("not a date")
	require.False(t, ok)

	_, ok = ParseFlexTime(nil)
	require.False(t, ok)
}

func TestEffectiveDateFallbackChain(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	o := Order{Doc: docstore.Document{
		"createdAt":    map[string]any{"seconds": float64(1700000000)},
		"booking_date": "2024-01-01",
	}}
	require.Equal(t, time.Unix(1700000000, 0).UTC(), o.EffectiveDate(now))

	o = Order{Doc: docstore.Document{
		"createdAt":    "garbage",
		"booking_date": "2024-01-15",
		"date":         "2024-02-15",
	}}
	require.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), o.EffectiveDate(now))

	o = Order{Doc: docstore.Document{"order_date": "15/03/2024"}}
	require.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), o.EffectiveDate(now))

	o = Order{Doc: docstore.Document{}}
	require.Equal(t, now, o.EffectiveDate(now))
}

func TestPaymentStatusDefaultsToPending(t *testing.T) {
	o := Order{Doc: docstore.Document{}}
	require.Equal(t, "Pending", o.PaymentStatus())
	require.False(t, o.Paid())

	require.True(t, Order{Doc: docstore.Document{"payment_status": "Paid"}}.Paid())
	require.True(t, Order{Doc: docstore.Document{"payment_status": "paid"}}.Paid())
	require.False(t, Order{Doc: docstore.Document{"payment_status": "PAID"}}.Paid())
}

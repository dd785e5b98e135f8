package orders

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freightdeck/freightdeck/internal/docstore"
)

func sample() []Order {
	return []Order{
		{Key: "ORD-1", Doc: docstore.Document{
			"order_id":       "ORD-1",
			"driver_name":    "Ravi Kumar",
			"material":       "Steel Coils",
			"order_status":   "Completed",
			"booking_status": "confirmed",
		}},
		{Key: "ORD-2", Doc: docstore.Document{
			"order_id":     "ORD-2",
			"driver_name":  "Sunil",
			"material":     "Cement",
			"order_status": "pending",
		}},
		{Key: "ORD-3", Doc: docstore.Document{
			"order_id":       "ORD-3",
			"vehicle_type":   "Trailer",
			"booking_status": "Cancelled",
		}},
	}
}

func TestFilterSearchIsCaseAndMarkdownInsensitive(t *testing.T) {
	got := Filter(sample(), "*RAVI*", "")
	require.Len(t, got, 1)
	require.Equal(t, "ORD-1", got[0].Key)
}

func TestFilterStatusMatchesEitherAxis(t *testing.T) {
	got := Filter(sample(), "", "completed")
	require.Len(t, got, 1)
	require.Equal(t, "ORD-1", got[0].Key)

	got = Filter(sample(), "", "cancelled")
	require.Len(t, got, 1)
	require.Equal(t, "ORD-3", got[0].Key)
}

func TestFilterCombinesSearchAndStatus(t *testing.T) {
	got := Filter(sample(), "steel", "pending")
	require.Empty(t, got)

	got = Filter(sample(), "cement", "pending")
	require.Len(t, got, 1)
	require.Equal(t, "ORD-2", got[0].Key)
}

func TestFilterEmptyArgumentsReturnEverything(t *testing.T) {
	require.Len(t, Filter(sample(), "", ""), 3)
	require.Len(t, Filter(sample(), "   ", "  "), 3)
}

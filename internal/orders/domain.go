package orders

import (
	"github.com/freightdeck/freightdeck/internal/docstore"
)

// Collection is the document collection holding orders, keyed by order id.
const Collection = "AllOrders"

// Order wraps an order document together with its key. Order fields are
// free-form strings written by several producers over time; amounts may
// carry currency symbols and separators, dates arrive in three shapes.
// All normalization goes through Amount and EffectiveDate; never parse
// these fields anywhere else.
type Order struct {
	Key string
	Doc docstore.Document
}

// amountFields are the candidate amount fields in priority order.
var amountFields = []string{"total_amount", "price", "amount"}

// Amount coerces the order amount from the first non-empty candidate
// field. Strings with no digits coerce to 0.
func (o Order) Amount() float64 {
	return CoerceAmount(o.Doc.FirstString(amountFields...))
}

// PendingAmount coerces the pending settlement amount.
func (o Order) PendingAmount() float64 {
	return CoerceAmount(o.Doc.String("pending_amount"))
}

// PaymentStatus returns the raw payment status, defaulting to "Pending".
func (o Order) PaymentStatus() string {
	if s := o.Doc.String("payment_status"); s != "" {
		return s
	}
	return "Pending"
}

// Paid reports whether the order has been settled. The stored value is
// free-form; both historical spellings count.
func (o Order) Paid() bool {
	s := o.PaymentStatus()
	return s == "Paid" || s == "paid"
}

// searchFields is the fixed list of order fields free-text search runs over.
var searchFields = []string{
	"order_id",
	"booking_id",
	"user_name",
	"user_phone",
	"company_name",
	"booking_status",
	"order_status",
	"vehicle_type",
	"subtype_vehicle",
	"material",
	"destination_address",
	"from_address",
	"driver_name",
	"completed_by_driver",
	"driver_id",
	"load",
	"capacity",
}

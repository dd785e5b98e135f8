package orders

import (
	"fmt"
	"strings"

	"github.com/freightdeck/freightdeck/internal/docstore"
	"github.com/freightdeck/freightdeck/internal/shared"
)

// requiredFields must be present and non-blank before an order form is
// written. Everything else on the form is passed through as-is.
var requiredFields = []string{
	"order_id",
	"user_name",
	"user_phone",
	"company_name",
	"booking_status",
	"order_status",
	"vehicle_type",
	"material",
	"destination_address",
}

func validateForm(doc docstore.Document) error {
	missing := make([]string, 0, len(requiredFields))
	for _, field := range requiredFields {
		if strings.TrimSpace(doc.String(field)) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", shared.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

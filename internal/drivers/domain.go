package drivers

import (
	"github.com/freightdeck/freightdeck/internal/docstore"
)

// Collection holds driver records, keyed by mobile number.
const Collection = "Drivers"

// Fallback attribution when an account has no resolvable company.
const corporateAdmin = "Corporate Admin"

// DocumentTypes are the verification document slots a driver record
// carries. Slot names double as upload folder segments.
var DocumentTypes = []string{
	"Aadhaar_or_PAN_Card",
	"Driving_License",
	"Insurance_Certificate",
	"Vehicle_RC",
}

// searchFields is the fixed list of fields driver search runs over.
var searchFields = []string{
	"firstName",
	"lastName",
	"mobileNumber",
	"city",
	"state",
	"vehicleNumber",
}

// Driver wraps a driver document together with its key.
type Driver struct {
	Key string
	Doc docstore.Document
}

// ApprovalStatus returns the driver's approval state. Records written
// before the approval workflow existed have no status; they read as
// approved.
func (d Driver) ApprovalStatus() string {
	if s := d.Doc.String("approvalStatus"); s != "" {
		return s
	}
	return "approved"
}

// ApprovedBy returns who approved the driver.
func (d Driver) ApprovedBy() string {
	return d.Doc.String("approvedBy")
}

package drivers

import (
	"github.com/freightdeck/freightdeck/internal/search"
)

// Visible reports whether a driver belongs on the given company's roster
// at all: drivers the company approved, drivers registered under the
// company's name, and every pending registration awaiting review.
func Visible(d Driver, company string) bool {
	if d.ApprovalStatus() == "pending" {
		return true
	}
	return d.ApprovedBy() == company || d.Doc.String("company_name") == company
}

// Filter narrows a visible roster for display.
//
// With no search text the default view shows only the company's own
// approved drivers. A search widens scope to everything Visible let
// through, pending registrations included, matching over the fixed
// field list.
func Filter(list []Driver, company, searchText string) []Driver {
	query := search.Sanitize(searchText)

	matched := make([]Driver, 0, len(list))
	for _, d := range list {
		if query == "" {
			if d.ApprovalStatus() == "approved" && d.ApprovedBy() == company {
				matched = append(matched, d)
			}
			continue
		}
		fields := make([]string, 0, len(searchFields))
		for _, f := range searchFields {
			fields = append(fields, d.Doc.String(f))
		}
		if search.Matches(query, fields...) {
			matched = append(matched, d)
		}
	}
	return matched
}

package orders

import (
	"github.com/freightdeck/freightdeck/internal/search"
)

// Filter applies free-text search and the status filter over an
// in-memory order list.
//
// The status filter matches when EITHER order_status or booking_status
// equals the filter value: the two axes are tracked independently but
// treated as equivalent for filtering.
func Filter(list []Order, searchText, statusFilter string) []Order {
	filtered := list

	if query := search.Sanitize(searchText); query != "" {
		matched := make([]Order, 0, len(filtered))
		for _, o := range filtered {
			fields := make([]string, 0, len(searchFields))
			for _, f := range searchFields {
				fields = append(fields, o.Doc.String(f))
			}
			if search.Matches(query, fields...) {
				matched = append(matched, o)
			}
		}
		filtered = matched
	}

	if status := search.Sanitize(statusFilter); status != "" {
		matched := make([]Order, 0, len(filtered))
		for _, o := range filtered {
			orderStatus := search.Sanitize(o.Doc.String("order_status"))
			bookingStatus := search.Sanitize(o.Doc.String("booking_status"))
			if orderStatus == status || bookingStatus == status {
				matched = append(matched, o)
			}
		}
		filtered = matched
	}

	return filtered
}

package vehicles

import (
	"fmt"
	"strings"

	"github.com/freightdeck/freightdeck/internal/docstore"
)

// Collection holds vehicle type definitions.
const Collection = "Vehicles"

// Vehicle wraps a vehicle document together with its path key.
type Vehicle struct {
	Key string
	Doc docstore.Document
}

// ID is the synthetic identifier clients address a vehicle by.
func (v Vehicle) ID() string {
	return fmt.Sprintf("%s_%s_%s",
		v.Doc.String("vehicle_type"),
		v.Doc.String("company_name"),
		v.Doc.String("subtype"))
}

// PathSegment normalizes one component of the vehicle path key. Path
// segments come from form input, so runs of whitespace collapse to a
// single space.
func PathSegment(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// PathKey builds the storage key for a vehicle definition.
func PathKey(vehicleType, companyName, subtype string) string {
	return fmt.Sprintf("%s/Companies/%s/subtypes/%s",
		PathSegment(vehicleType), PathSegment(companyName), PathSegment(subtype))
}

// Capacity returns the display capacity, folding the legacy split
// capacity_unit field into the combined value when it is not already
// part of it.
func (v Vehicle) Capacity() string {
	capacity := strings.TrimSpace(v.Doc.String("capacity"))
	unit := strings.TrimSpace(v.Doc.String("capacity_unit"))
	if unit == "" || strings.Contains(strings.ToLower(capacity), strings.ToLower(unit)) {
		return capacity
	}
	return strings.TrimSpace(capacity + " " + unit)
}

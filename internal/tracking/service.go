package tracking

import (
	"context"
	"log/slog"

	"github.com/freightdeck/freightdeck/internal/orders"
	"github.com/freightdeck/freightdeck/internal/search"
)

// Point is a map coordinate with the stop it represents.
type Point struct {
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

// Shipment is the live-tracking view of one order.
type Shipment struct {
	ID        string  `json:"id"`
	BookingID string  `json:"bookingId"`
	Driver    string  `json:"driver"`
	Vehicle   string  `json:"vehicle"`
	Material  string  `json:"material"`
	Status    string  `json:"status"`
	Current   *Point  `json:"current,omitempty"`
	Route     []Point `json:"route"`
}

// CompanyResolver resolves the company name an account belongs to.
type CompanyResolver interface {
	Resolve(ctx context.Context, userID string) (string, error)
}

// Service projects the order book into shipment tracking views.
type Service struct {
	repo     orders.Repository
	resolver CompanyResolver
	logger   *slog.Logger
}

func NewService(repo orders.Repository, resolver CompanyResolver, logger *slog.Logger) *Service {
	return &Service{repo: repo, resolver: resolver, logger: logger}
}

// List returns the scoped shipments, filtered by a single status axis
// ("all" or empty passes everything) and a free-text search.
func (s *Service) List(ctx context.Context, userID, searchText, statusFilter string) ([]Shipment, error) {
	company, err := s.resolver.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	var list []orders.Order
	if company == "" {
		list, err = s.repo.ByUser(ctx, userID)
	} else {
		list, err = s.repo.ByCompany(ctx, company)
	}
	if err != nil {
		return nil, err
	}

	shipments := make([]Shipment, 0, len(list))
	for _, o := range list {
		shipments = append(shipments, fromOrder(o))
	}
	return filter(shipments, searchText, statusFilter), nil
}

// fromOrder builds the tracking view. The current position prefers the
// driver's last reported location and falls back to the destination so
// the map always has something to centre on.
func fromOrder(o orders.Order) Shipment {
	sh := Shipment{
		ID:        o.Key,
		BookingID: o.Doc.String("booking_id"),
		Driver:    o.Doc.String("driver_name"),
		Vehicle:   o.Doc.FirstString("vehicle_number", "vehicle_type"),
		Material:  o.Doc.String("material"),
		Status:    o.Doc.FirstString("order_status", "status"),
	}
	if sh.Status == "" {
		sh.Status = "Unknown"
	}

	current := Point{Label: "current"}
	if loc := o.Doc.Map("driver_current_location"); loc != nil {
		current.Lat = loc.Float("latitude")
		current.Lng = loc.Float("longitude")
	}
	if current.Lat == 0 && current.Lng == 0 {
		current.Lat = o.Doc.Float("dest_lat")
		current.Lng = o.Doc.Float("dest_lng")
	}
	if current.Lat != 0 || current.Lng != 0 {
		sh.Current = &current
	}

	sh.Route = make([]Point, 0, 3)
	candidates := []Point{
		{Label: "from", Lat: o.Doc.Float("from_lat"), Lng: o.Doc.Float("from_lng")},
		current,
		{Label: "destination", Lat: o.Doc.Float("dest_lat"), Lng: o.Doc.Float("dest_lng")},
	}
	for _, p := range candidates {
		if p.Lat != 0 && p.Lng != 0 {
			sh.Route = append(sh.Route, p)
		}
	}
	return sh
}

func filter(list []Shipment, searchText, statusFilter string) []Shipment {
	status := search.Sanitize(statusFilter)
	query := search.Sanitize(searchText)

	matched := make([]Shipment, 0, len(list))
	for _, sh := range list {
		if status != "" && status != "all" && search.Sanitize(sh.Status) != status {
			continue
		}
		if query != "" && !search.Matches(query, sh.ID, sh.BookingID, sh.Driver, sh.Vehicle, sh.Material) {
			continue
		}
		matched = append(matched, sh)
	}
	return matched
}

package vehicles

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/freightdeck/freightdeck/internal/docstore"
	"github.com/freightdeck/freightdeck/internal/search"
	"github.com/freightdeck/freightdeck/internal/shared"
)

// CompanyResolver resolves the company name an account belongs to.
type CompanyResolver interface {
	Resolve(ctx context.Context, userID string) (string, error)
}

// SaveRequest is the vehicle definition form. Previous identifies the
// definition being edited so a renamed type or subtype relocates the
// stored document instead of duplicating it.
type SaveRequest struct {
	VehicleType     string `json:"vehicle_type" validate:"required"`
	Subtype         string `json:"subtype" validate:"required"`
	Capacity        string `json:"capacity" validate:"required"`
	CapacityUnit    string `json:"capacity_unit"`
	AvailableWheels string `json:"available_wheels"`
	PricePerKg      string `json:"price_per_kg"`
	PricePerTonne   string `json:"price_per_tonne"`
	Previous        *struct {
		VehicleType string `json:"vehicle_type"`
		Subtype     string `json:"subtype"`
	} `json:"previous"`
}

// Service exposes the per-company vehicle catalog.
type Service struct {
	repo     Repository
	resolver CompanyResolver
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(repo Repository, resolver CompanyResolver, logger *slog.Logger) *Service {
	return &Service{repo: repo, resolver: resolver, logger: logger, now: time.Now}
}

// List returns the company's vehicle definitions, optionally narrowed by
// a containment search over every stored value. Accounts without a
// company profile fall back to the vehicles they created themselves.
func (s *Service) List(ctx context.Context, userID, searchText string) ([]Vehicle, error) {
	company, err := s.resolver.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	var list []Vehicle
	if company == "" {
		s.logger.Warn("no company profile, listing user-scoped vehicles", "user_id", userID)
		list, err = s.repo.ByUser(ctx, userID)
	} else {
		list, err = s.repo.ByCompany(ctx, company)
	}
	if err != nil {
		return nil, err
	}

	query := search.Sanitize(searchText)
	if query == "" {
		return list, nil
	}

	matched := make([]Vehicle, 0, len(list))
	for _, v := range list {
		fields := make([]string, 0, len(v.Doc))
		for key := range v.Doc {
			fields = append(fields, v.Doc.String(key))
		}
		if search.Matches(query, fields...) {
			matched = append(matched, v)
		}
	}
	return matched, nil
}

// Save writes a vehicle definition under its path key. When the request
// renames the type or subtype, the new path is written first and the old
// document removed after, so a failed write never loses the definition.
func (s *Service) Save(ctx context.Context, userID string, req SaveRequest) (Vehicle, error) {
	company, err := s.resolver.Resolve(ctx, userID)
	if err != nil {
		return Vehicle{}, err
	}
	if company == "" {
		return Vehicle{}, fmt.Errorf("%w: company profile", shared.ErrNotFound)
	}

	capacity := strings.TrimSpace(req.Capacity)
	unit := strings.TrimSpace(req.CapacityUnit)
	if unit != "" && !strings.Contains(strings.ToLower(capacity), strings.ToLower(unit)) {
		capacity = strings.TrimSpace(capacity + " " + unit)
	}

	key := PathKey(req.VehicleType, company, req.Subtype)
	doc := docstore.Document{
		"vehicle_type":     PathSegment(req.VehicleType),
		"company_name":     company,
		"subtype":          PathSegment(req.Subtype),
		"capacity":         capacity,
		"available_wheels": req.AvailableWheels,
		"price_per_kg":     req.PricePerKg,
		"price_per_tonne":  req.PricePerTonne,
		"userId":           userID,
		"createdAt":        s.now().UTC().Format(time.RFC3339),
	}

	if err := s.repo.Set(ctx, key, doc); err != nil {
		return Vehicle{}, err
	}

	if req.Previous != nil {
		oldKey := PathKey(req.Previous.VehicleType, company, req.Previous.Subtype)
		if oldKey != key {
			if err := s.repo.Delete(ctx, oldKey); err != nil {
				return Vehicle{}, err
			}
			s.logger.Info("vehicle relocated", "from", oldKey, "to", key)
		}
	}

	return Vehicle{Key: key, Doc: doc}, nil
}

// Delete removes a vehicle definition by its path components.
func (s *Service) Delete(ctx context.Context, vehicleType, companyName, subtype string) error {
	key := PathKey(vehicleType, companyName, subtype)
	if err := s.repo.Delete(ctx, key); err != nil {
		return err
	}
	s.logger.Info("vehicle deleted", "key", key)
	return nil
}

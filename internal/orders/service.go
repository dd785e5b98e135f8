package orders

import (
	"context"
	"log/slog"
	"strings"

	"github.com/freightdeck/freightdeck/internal/docstore"
)

// CompanyResolver resolves the company name an account belongs to. An
// empty name with a nil error means the account has no company yet.
type CompanyResolver interface {
	Resolve(ctx context.Context, userID string) (string, error)
}

// Service exposes order listing and mutation for a signed-in account.
type Service struct {
	repo     Repository
	resolver CompanyResolver
	logger   *slog.Logger
}

func NewService(repo Repository, resolver CompanyResolver, logger *slog.Logger) *Service {
	return &Service{repo: repo, resolver: resolver, logger: logger}
}

// List returns the account's orders, newest first by document key order
// left to the store, filtered by free-text search and status.
//
// Orders are scoped by company name when the account has one; accounts
// without a company fall back to orders tagged with their own user id.
func (s *Service) List(ctx context.Context, userID, searchText, statusFilter string) ([]Order, error) {
	list, err := s.fetchScoped(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Filter(list, searchText, statusFilter), nil
}

func (s *Service) fetchScoped(ctx context.Context, userID string) ([]Order, error) {
	company, err := s.resolver.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	if company == "" {
		s.logger.Warn("account has no company, falling back to user-scoped orders", "user_id", userID)
		return s.repo.ByUser(ctx, userID)
	}
	return s.repo.ByCompany(ctx, company)
}

// Save validates the order form and upserts it keyed by order_id. The
// write is a merge, so resubmitting a form updates the existing order
// without dropping fields other producers have written.
func (s *Service) Save(ctx context.Context, userID string, form docstore.Document) (Order, error) {
	if err := validateForm(form); err != nil {
		return Order{}, err
	}

	doc := form.Clone()
	doc["userId"] = userID
	orderID := strings.TrimSpace(doc.String("order_id"))

	if err := s.repo.Upsert(ctx, orderID, doc, true); err != nil {
		return Order{}, err
	}
	s.logger.Info("order saved", "order_id", orderID, "user_id", userID)
	return Order{Key: orderID, Doc: doc}, nil
}

// Delete removes an order by id.
func (s *Service) Delete(ctx context.Context, orderID string) error {
	if err := s.repo.Delete(ctx, orderID); err != nil {
		return err
	}
	s.logger.Info("order deleted", "order_id", orderID)
	return nil
}

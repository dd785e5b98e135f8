package orders

import (
	"context"

	"github.com/freightdeck/freightdeck/internal/docstore"
)

// Repository defines persistence operations for orders.
type Repository interface {
	ByCompany(ctx context.Context, companyName string) ([]Order, error)
	ByUser(ctx context.Context, userID string) ([]Order, error)
	Get(ctx context.Context, orderID string) (Order, error)
	Upsert(ctx context.Context, orderID string, doc docstore.Document, merge bool) error
	Delete(ctx context.Context, orderID string) error
}

type storeRepository struct {
	store docstore.Store
}

// NewRepository constructs a docstore-backed repository.
func NewRepository(store docstore.Store) Repository {
	return &storeRepository{store: store}
}

func (r *storeRepository) ByCompany(ctx context.Context, companyName string) ([]Order, error) {
	records, err := r.store.FindByField(ctx, Collection, "company_name", companyName)
	if err != nil {
		return nil, err
	}
	return fromRecords(records), nil
}

func (r *storeRepository) ByUser(ctx context.Context, userID string) ([]Order, error) {
	records, err := r.store.FindByField(ctx, Collection, "userId", userID)
	if err != nil {
		return nil, err
	}
	return fromRecords(records), nil
}

func (r *storeRepository) Get(ctx context.Context, orderID string) (Order, error) {
	doc, err := r.store.Get(ctx, Collection, orderID)
	if err != nil {
		return Order{}, err
	}
	return Order{Key: orderID, Doc: doc}, nil
}

func (r *storeRepository) Upsert(ctx context.Context, orderID string, doc docstore.Document, merge bool) error {
	return r.store.Upsert(ctx, Collection, orderID, doc, merge)
}

func (r *storeRepository) Delete(ctx context.Context, orderID string) error {
	return r.store.Delete(ctx, Collection, orderID)
}

func fromRecords(records []docstore.Record) []Order {
	out := make([]Order, 0, len(records))
	for _, rec := range records {
		out = append(out, Order{Key: rec.Key, Doc: rec.Doc})
	}
	return out
}

package drivers

import (
	"context"

	"github.com/freightdeck/freightdeck/internal/docstore"
)

// Repository defines persistence operations for drivers.
type Repository interface {
	All(ctx context.Context) ([]Driver, error)
	Get(ctx context.Context, mobileNumber string) (Driver, error)
	Set(ctx context.Context, mobileNumber string, doc docstore.Document) error
	Merge(ctx context.Context, mobileNumber string, patch docstore.Document) error
	Delete(ctx context.Context, mobileNumber string) error
}

type storeRepository struct {
	store docstore.Store
}

// NewRepository constructs a docstore-backed repository.
func NewRepository(store docstore.Store) Repository {
	return &storeRepository{store: store}
}

// All returns every driver record. Visibility is decided in memory:
// pending registrations belong to no company yet, so there is no
// per-company field to query on.
func (r *storeRepository) All(ctx context.Context) ([]Driver, error) {
	records, err := r.store.ListPrefix(ctx, Collection, "")
	if err != nil {
		return nil, err
	}
	out := make([]Driver, 0, len(records))
	for _, rec := range records {
		out = append(out, Driver{Key: rec.Key, Doc: rec.Doc})
	}
	return out, nil
}

func (r *storeRepository) Get(ctx context.Context, mobileNumber string) (Driver, error) {
	doc, err := r.store.Get(ctx, Collection, mobileNumber)
	if err != nil {
		return Driver{}, err
	}
	return Driver{Key: mobileNumber, Doc: doc}, nil
}

func (r *storeRepository) Set(ctx context.Context, mobileNumber string, doc docstore.Document) error {
	return r.store.Upsert(ctx, Collection, mobileNumber, doc, false)
}

func (r *storeRepository) Merge(ctx context.Context, mobileNumber string, patch docstore.Document) error {
	return r.store.Upsert(ctx, Collection, mobileNumber, patch, true)
}

func (r *storeRepository) Delete(ctx context.Context, mobileNumber string) error {
	return r.store.Delete(ctx, Collection, mobileNumber)
}

package vehicles

import (
	"context"
	"strings"

	"github.com/freightdeck/freightdeck/internal/docstore"
)

// Repository defines persistence operations for vehicle definitions.
type Repository interface {
	ByCompany(ctx context.Context, companyName string) ([]Vehicle, error)
	ByUser(ctx context.Context, userID string) ([]Vehicle, error)
	Set(ctx context.Context, key string, doc docstore.Document) error
	Delete(ctx context.Context, key string) error
}

type storeRepository struct {
	store docstore.Store
}

// NewRepository constructs a docstore-backed repository.
func NewRepository(store docstore.Store) Repository {
	return &storeRepository{store: store}
}

// ByCompany walks the hierarchical vehicle keys and keeps the documents
// under the company's subtree.
func (r *storeRepository) ByCompany(ctx context.Context, companyName string) ([]Vehicle, error) {
	records, err := r.store.ListPrefix(ctx, Collection, "")
	if err != nil {
		return nil, err
	}
	segment := "/Companies/" + PathSegment(companyName) + "/subtypes/"
	out := make([]Vehicle, 0, len(records))
	for _, rec := range records {
		if strings.Contains(rec.Key, segment) {
			out = append(out, Vehicle{Key: rec.Key, Doc: rec.Doc})
		}
	}
	return out, nil
}

func (r *storeRepository) ByUser(ctx context.Context, userID string) ([]Vehicle, error) {
	records, err := r.store.FindByField(ctx, Collection, "userId", userID)
	if err != nil {
		return nil, err
	}
	out := make([]Vehicle, 0, len(records))
	for _, rec := range records {
		out = append(out, Vehicle{Key: rec.Key, Doc: rec.Doc})
	}
	return out, nil
}

func (r *storeRepository) Set(ctx context.Context, key string, doc docstore.Document) error {
	return r.store.Upsert(ctx, Collection, key, doc, false)
}

func (r *storeRepository) Delete(ctx context.Context, key string) error {
	return r.store.Delete(ctx, Collection, key)
}

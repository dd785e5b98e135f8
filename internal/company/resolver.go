package company

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/freightdeck/freightdeck/internal/docstore"
	"github.com/freightdeck/freightdeck/internal/shared"
)

// AccountDirectory answers the company name recorded on the account
// itself. It backstops profiles written before the companies collection
// existed.
type AccountDirectory interface {
	CompanyNameOf(ctx context.Context, userID string) (string, error)
}

// Resolver maps a user id to the company name the account operates
// under. Resolution is intentionally forgiving: an account with no
// company resolves to "" without error, and callers decide how to
// degrade.
type Resolver struct {
	store      docstore.Store
	directory  AccountDirectory
	logger     *slog.Logger
	retryDelay time.Duration
}

func NewResolver(store docstore.Store, directory AccountDirectory, logger *slog.Logger) *Resolver {
	return &Resolver{
		store:      store,
		directory:  directory,
		logger:     logger,
		retryDelay: time.Second,
	}
}

// Resolve looks the company up by the account's user id, preferring the
// companies collection and falling back to the account directory.
func (r *Resolver) Resolve(ctx context.Context, userID string) (string, error) {
	records, err := r.store.FindByField(ctx, Collection, "userId", userID)
	if err != nil {
		return "", err
	}
	if len(records) > 0 {
		profile := Profile{Key: records[0].Key, Doc: records[0].Doc}
		if name := profile.Name(); name != "" {
			return name, nil
		}
	}

	name, err := r.directory.CompanyNameOf(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			r.logger.Warn("no company resolved for account", "user_id", userID)
			return "", nil
		}
		return "", err
	}
	if name == "" {
		r.logger.Warn("no company resolved for account", "user_id", userID)
	}
	return name, nil
}

// ResolveWithRetry retries resolution a few times before giving up.
// Profile writes race the first KYC submission after signup, so a miss
// right after signin is usually transient.
func (r *Resolver) ResolveWithRetry(ctx context.Context, userID string, attempts int) (string, error) {
	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(r.retryDelay):
			}
		}
		name, err := r.Resolve(ctx, userID)
		if err != nil {
			lastErr = err
			continue
		}
		if name != "" {
			return name, nil
		}
	}
	if lastErr != nil {
		return "", lastErr
	}
	return "", nil
}

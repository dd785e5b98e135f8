package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freightdeck/freightdeck/internal/shared"
)

// Store is the persistence contract shared by every domain module.
//
// Upsert with merge=true preserves fields the caller did not send, the
// same semantics a merge-set has in a document database. Deletes of a
// missing key succeed silently.
type Store interface {
	Upsert(ctx context.Context, collection, key string, doc Document, merge bool) error
	Delete(ctx context.Context, collection, key string) error
	Get(ctx context.Context, collection, key string) (Document, error)
	// FindByField returns all documents whose top-level field equals value.
	FindByField(ctx context.Context, collection, field, value string) ([]Record, error)
	// ListPrefix returns all documents whose key starts with keyPrefix,
	// ordered by key. Used for the hierarchical vehicle paths.
	ListPrefix(ctx context.Context, collection, keyPrefix string) ([]Record, error)
}

// PGStore implements Store on a PostgreSQL JSONB table.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore constructs a PostgreSQL-backed store.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// Upsert writes a document under (collection, key). With merge=true the
// stored document keeps any top-level fields absent from doc.
func (s *PGStore) Upsert(ctx context.Context, collection, key string, doc Document, merge bool) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("docstore: marshal %s/%s: %w", collection, key, err)
	}

	query := `INSERT INTO documents (collection, key, doc, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (collection, key)
		DO UPDATE SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at`
	if merge {
		query = `INSERT INTO documents (collection, key, doc, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (collection, key)
		DO UPDATE SET doc = documents.doc || EXCLUDED.doc, updated_at = EXCLUDED.updated_at`
	}

	if _, err := s.pool.Exec(ctx, query, collection, key, payload, time.Now().UTC()); err != nil {
		return fmt.Errorf("docstore: upsert %s/%s: %w", collection, key, err)
	}
	return nil
}

// Delete removes a document. Deleting a missing key is not an error.
func (s *PGStore) Delete(ctx context.Context, collection, key string) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND key = $2`,
		collection, key); err != nil {
		return fmt.Errorf("docstore: delete %s/%s: %w", collection, key, err)
	}
	return nil
}

// Get fetches a single document by key.
func (s *PGStore) Get(ctx context.Context, collection, key string) (Document, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM documents WHERE collection = $1 AND key = $2`,
		collection, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("docstore: get %s/%s: %w", collection, key, err)
	}
	return decodeDocument(payload)
}

// FindByField returns all documents whose top-level field equals value.
func (s *PGStore) FindByField(ctx context.Context, collection, field, value string) ([]Record, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT key, doc FROM documents WHERE collection = $1 AND doc->>$2 = $3 ORDER BY key`,
		collection, field, value)
	if err != nil {
		return nil, fmt.Errorf("docstore: find %s by %s: %w", collection, field, err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// ListPrefix returns all documents whose key starts with keyPrefix.
func (s *PGStore) ListPrefix(ctx context.Context, collection, keyPrefix string) ([]Record, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT key, doc FROM documents WHERE collection = $1 AND key LIKE $2 || '%' ORDER BY key`,
		collection, keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("docstore: list %s prefix %q: %w", collection, keyPrefix, err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

func collectRecords(rows pgx.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var (
			key     string
			payload []byte
		)
		if err := rows.Scan(&key, &payload); err != nil {
			return nil, err
		}
		doc, err := decodeDocument(payload)
		if err != nil {
			return nil, err
		}
		records = append(records, Record{Key: key, Doc: doc})
	}
	return records, rows.Err()
}

func decodeDocument(payload []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("docstore: decode document: %w", err)
	}
	return doc, nil
}

var _ Store = (*PGStore)(nil)

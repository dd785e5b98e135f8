package docstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/freightdeck/freightdeck/internal/shared"
)

// Memory is an in-memory Store used by tests. Merge semantics match
// the JSONB concatenation the PGStore performs: top-level fields only.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string]map[string]Document)}
}

func (m *Memory) Upsert(ctx context.Context, collection, key string, doc Document, merge bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	coll := m.collections[collection]
	if coll == nil {
		coll = make(map[string]Document)
		m.collections[collection] = coll
	}
	if existing, ok := coll[key]; ok && merge {
		merged := existing.Clone()
		for k, v := range doc {
			merged[k] = v
		}
		coll[key] = merged
		return nil
	}
	coll[key] = doc.Clone()
	return nil
}

func (m *Memory) Delete(ctx context.Context, collection, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if coll := m.collections[collection]; coll != nil {
		delete(coll, key)
	}
	return nil
}

func (m *Memory) Get(ctx context.Context, collection, key string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if coll := m.collections[collection]; coll != nil {
		if doc, ok := coll[key]; ok {
			return doc.Clone(), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *Memory) FindByField(ctx context.Context, collection, field, value string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var records []Record
	for key, doc := range m.collections[collection] {
		if doc.String(field) == value {
			records = append(records, Record{Key: key, Doc: doc.Clone()})
		}
	}
	sortRecords(records)
	return records, nil
}

func (m *Memory) ListPrefix(ctx context.Context, collection, keyPrefix string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var records []Record
	for key, doc := range m.collections[collection] {
		if strings.HasPrefix(key, keyPrefix) {
			records = append(records, Record{Key: key, Doc: doc.Clone()})
		}
	}
	sortRecords(records)
	return records, nil
}

func sortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool { return records[i].Key < records[j].Key })
}

var _ Store = (*Memory)(nil)

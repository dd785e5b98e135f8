// Package docstore implements keyed document collections on PostgreSQL.
//
// Collections hold schemaless JSONB documents addressed by a natural key
// (order id, driver mobile number, vehicle path). Reads are orphan-tolerant:
// cross-collection references are denormalized name matches, never enforced
// foreign keys, so a missing parent is a normal outcome.
package docstore

import (
	"github.com/spf13/cast"
)

// Document is a schemaless record stored in a collection.
type Document map[string]any

// Record pairs a document with the key it is stored under.
type Record struct {
	Key string
	Doc Document
}

// String reads a field as a string, coercing scalar types and
// returning "" for absent or null values.
func (d Document) String(key string) string {
	v, ok := d[key]
	if !ok || v == nil {
		return ""
	}
	return cast.ToString(v)
}

// FirstString returns the value of the first listed field that is non-empty.
func (d Document) FirstString(keys ...string) string {
	for _, key := range keys {
		if s := d.String(key); s != "" {
			return s
		}
	}
	return ""
}

// Map reads a field as a nested document. Absent or mistyped fields
// come back as nil.
func (d Document) Map(key string) Document {
	switch v := d[key].(type) {
	case Document:
		return v
	case map[string]any:
		return Document(v)
	default:
		return nil
	}
}

// Bool reads a field as a boolean, defaulting to false.
func (d Document) Bool(key string) bool {
	return cast.ToBool(d[key])
}

// Float reads a field as a float64, defaulting to 0 when the value
// cannot be coerced.
func (d Document) Float(key string) float64 {
	return cast.ToFloat64(d[key])
}

// Clone returns a shallow-plus-one-level copy so callers can mutate
// a fetched document without aliasing the store's snapshot.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		if nested, ok := v.(map[string]any); ok {
			inner := make(map[string]any, len(nested))
			for nk, nv := range nested {
				inner[nk] = nv
			}
			out[k] = inner
			continue
		}
		out[k] = v
	}
	return out
}

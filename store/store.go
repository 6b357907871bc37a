package store

import (
	"context"
	"time"
)

// RawDocument is the schemaless field→value mapping a DocumentStore hands
// back. Temporal values travel as RFC3339 strings; callers normalize them
// through the Time accessor at their own boundary.
type RawDocument map[string]any

// DocumentStore is a keyed, schemaless collection store with simple
// predicate/order primitives. Implementations assign document ids.
type DocumentStore interface {
	// QueryAll returns every document in the collection ordered by the given
	// document field. desc selects descending order.
	QueryAll(ctx context.Context, collection, orderBy string, desc bool) ([]RawDocument, error)
	// QueryWhere returns documents whose field equals value.
	QueryWhere(ctx context.Context, collection, field string, value any) ([]RawDocument, error)
	// Insert stores a new document and returns its generated id.
	Insert(ctx context.Context, collection string, fields RawDocument) (string, error)
	// UpdateFields merges fields into the stored document.
	UpdateFields(ctx context.Context, collection, id string, fields RawDocument) error
	// Delete removes the document. Deleting an absent id returns ErrDocNotFound.
	Delete(ctx context.Context, collection, id string) error
}

// TimeFormat is the interchange format for temporal fields inside documents.
// Fixed-width fractional seconds keep lexicographic order equal to
// chronological order for UTC values, which QueryAll ordering relies on.
const TimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// String returns the field as a string, or "" when absent or mistyped.
func (d RawDocument) String(key string) string {
	if v, ok := d[key].(string); ok {
		return v
	}
	return ""
}

// Bool returns the field as a bool, or false when absent or mistyped.
func (d RawDocument) Bool(key string) bool {
	if v, ok := d[key].(bool); ok {
		return v
	}
	return false
}

// Int64 returns the field as an int64, accepting the numeric shapes JSON
// decoding produces.
func (d RawDocument) Int64(key string) int64 {
	switch v := d[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

// Time parses a temporal field. The zero time is returned when the field is
// absent or unparseable.
func (d RawDocument) Time(key string) time.Time {
	s, ok := d[key].(string)
	if !ok || s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	return time.Time{}
}

// StringSlice returns the field as []string, tolerating the []any shape
// produced by JSON decoding.
func (d RawDocument) StringSlice(key string) []string {
	switch v := d[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implements DocumentStore in process memory. It backs the test
// suite and serves as the development fallback when no database is
// configured.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]RawDocument
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]RawDocument)}
}

func (s *MemoryStore) QueryAll(ctx context.Context, collection, orderBy string, desc bool) ([]RawDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]RawDocument, 0, len(s.collections[collection]))
	for _, doc := range s.collections[collection] {
		docs = append(docs, cloneDoc(doc))
	}
	sort.SliceStable(docs, func(i, j int) bool {
		a, b := fmt.Sprint(docs[i][orderBy]), fmt.Sprint(docs[j][orderBy])
		if desc {
			return a > b
		}
		return a < b
	})
	return docs, nil
}

func (s *MemoryStore) QueryWhere(ctx context.Context, collection, field string, value any) ([]RawDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []RawDocument
	for _, doc := range s.collections[collection] {
		if fmt.Sprint(doc[field]) == fmt.Sprint(value) {
			docs = append(docs, cloneDoc(doc))
		}
	}
	return docs, nil
}

func (s *MemoryStore) Insert(ctx context.Context, collection string, fields RawDocument) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	doc := cloneDoc(fields)
	doc["id"] = id
	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]RawDocument)
	}
	s.collections[collection][id] = doc
	return id, nil
}

func (s *MemoryStore) UpdateFields(ctx context.Context, collection, id string, fields RawDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return ErrDocNotFound
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection][id]; !ok {
		return ErrDocNotFound
	}
	delete(s.collections[collection], id)
	return nil
}

func cloneDoc(doc RawDocument) RawDocument {
	out := make(RawDocument, len(doc))
	for k, v := range doc {
		if slice, ok := v.([]string); ok {
			copied := make([]string, len(slice))
			copy(copied, slice)
			out[k] = copied
			continue
		}
		out[k] = v
	}
	return out
}

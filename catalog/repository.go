package catalog

import (
	"context"
	"time"

	"github.com/sarrafiye/goldweb/store"
)

// Repository reads catalog products from the document store. The catalog
// has no mutation path here.
type Repository struct {
	store store.DocumentStore
	now   func() time.Time
}

// NewRepository wires a repository over the given store.
func NewRepository(s store.DocumentStore) *Repository {
	return &Repository{store: s, now: time.Now}
}

// ListAll returns every product ordered by creation time descending.
func (r *Repository) ListAll(ctx context.Context) ([]Product, error) {
	docs, err := r.store.QueryAll(ctx, Collection, "createdAt", true)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	now := r.now()
	products := make([]Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, productFromDoc(doc, now))
	}
	return products, nil
}

// GetByID returns a single product.
func (r *Repository) GetByID(ctx context.Context, id string) (Product, error) {
	docs, err := r.store.QueryWhere(ctx, Collection, "id", id)
	if err != nil {
		return Product{}, &FetchError{Err: err}
	}
	if len(docs) == 0 {
		return Product{}, ErrNotFound
	}
	return productFromDoc(docs[0], r.now()), nil
}

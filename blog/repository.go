package blog

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/sarrafiye/goldweb/store"
)

// Repository translates between Post entities and the document store. All
// timestamp normalization happens here; nothing above this layer sees the
// store's raw temporal encoding.
type Repository struct {
	store store.DocumentStore
	now   func() time.Time
}

// NewRepository wires a repository over the given store.
func NewRepository(s store.DocumentStore) *Repository {
	return &Repository{store: s, now: time.Now}
}

// ListAll returns every post ordered by creation time descending. When
// publishedOnly is set, unpublished posts are filtered out after the fetch;
// the store never needs a compound index.
func (r *Repository) ListAll(ctx context.Context, publishedOnly bool) ([]Post, error) {
	docs, err := r.store.QueryAll(ctx, Collection, "createdAt", true)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	now := r.now()
	posts := make([]Post, 0, len(docs))
	for _, doc := range docs {
		p := postFromDoc(doc, now)
		if publishedOnly && !p.IsPublished {
			continue
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// GetBySlug fetches the post matching slug and increments its view counter
// in the same logical operation; the caller observes the post-increment
// value. The read-modify-write is not protected by any compare-and-swap, so
// concurrent readers of the same post can lose increments (last write wins
// on views). Unpublished matches yield ErrUnpublished.
func (r *Repository) GetBySlug(ctx context.Context, slug string) (Post, error) {
	docs, err := r.store.QueryWhere(ctx, Collection, "slug", slug)
	if err != nil {
		return Post{}, &FetchError{Err: err}
	}
	if len(docs) == 0 {
		return Post{}, ErrNotFound
	}
	// Legacy duplicate slugs resolve to the newest post. QueryWhere makes no
	// ordering promise, so the tie-break happens here.
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Time("createdAt").After(docs[j].Time("createdAt"))
	})
	p := postFromDoc(docs[0], r.now())
	if !p.IsPublished {
		return Post{}, ErrUnpublished
	}

	p.Views++
	if err := r.store.UpdateFields(ctx, Collection, p.ID, store.RawDocument{"views": p.Views}); err != nil {
		return Post{}, &MutationError{Op: "count view on", Err: err}
	}
	return p, nil
}

// Create persists a draft, assigning id, zero views and both timestamps.
// publishedAt is stamped only when the draft is born published.
func (r *Repository) Create(ctx context.Context, draft Draft) (Post, error) {
	now := r.now()
	doc := docFromDraft(draft, now)
	id, err := r.store.Insert(ctx, Collection, doc)
	if err != nil {
		return Post{}, &MutationError{Op: "create", Err: err}
	}
	doc["id"] = id
	return postFromDoc(doc, now), nil
}

// Update merges patch into the stored post and refreshes updatedAt. When the
// patch flips isPublished on and the post has never been published,
// publishedAt is stamped in the same operation; later edits never re-stamp
// it.
func (r *Repository) Update(ctx context.Context, id string, patch Patch) (Post, error) {
	docs, err := r.store.QueryWhere(ctx, Collection, "id", id)
	if err != nil {
		return Post{}, &FetchError{Err: err}
	}
	if len(docs) == 0 {
		return Post{}, ErrNotFound
	}
	now := r.now()
	existing := postFromDoc(docs[0], now)

	fields := docFromPatch(patch)
	fields["updatedAt"] = now.UTC().Format(store.TimeFormat)
	if patch.IsPublished != nil && *patch.IsPublished && existing.PublishedAt == nil {
		fields["publishedAt"] = now.UTC().Format(store.TimeFormat)
	}
	if err := r.store.UpdateFields(ctx, Collection, id, fields); err != nil {
		if errors.Is(err, store.ErrDocNotFound) {
			return Post{}, ErrNotFound
		}
		return Post{}, &MutationError{Op: "update", Err: err}
	}

	merged := docs[0]
	for k, v := range fields {
		merged[k] = v
	}
	return postFromDoc(merged, now), nil
}

// Delete hard-deletes the post. Deleting an absent id is a successful no-op
// so retried deletes stay idempotent.
func (r *Repository) Delete(ctx context.Context, id string) error {
	err := r.store.Delete(ctx, Collection, id)
	if errors.Is(err, store.ErrDocNotFound) {
		return nil
	}
	if err != nil {
		return &MutationError{Op: "delete", Err: err}
	}
	return nil
}

package blog

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Service orchestrates fetches and mutations for one session: it validates
// input, keeps the session cache consistent with the repository, and serves
// the derived views the handlers need. Authorization is the router's job;
// by the time a mutation reaches here the admin gate has already passed.
type Service struct {
	repo  *Repository
	cache *SessionCache
	log   *zap.SugaredLogger
}

// NewService builds a service around repo with a fresh session cache.
func NewService(repo *Repository, log *zap.SugaredLogger) *Service {
	return &Service{repo: repo, cache: NewSessionCache(), log: log}
}

// Cache exposes the session cache for read-side consumers.
func (s *Service) Cache() *SessionCache { return s.cache }

// RefreshPosts re-fetches the post list into the cache and returns the new
// snapshot. When two refreshes race, the snapshot of the later-started one
// wins regardless of completion order.
func (s *Service) RefreshPosts(ctx context.Context, publishedOnly bool) ([]Post, error) {
	token := s.cache.Begin()
	posts, err := s.repo.ListAll(ctx, publishedOnly)
	if err != nil {
		return nil, err
	}
	if !s.cache.SetPosts(token, posts) {
		s.log.Debugw("dropped stale post snapshot", "token", token)
		return s.cache.Posts(), nil
	}
	return posts, nil
}

// GetBySlug loads a single published post, incrementing its view counter,
// and records it as the session's current post.
func (s *Service) GetBySlug(ctx context.Context, slug string) (Post, error) {
	post, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return Post{}, err
	}
	s.cache.SetCurrent(post)
	return post, nil
}

// Related returns up to DefaultRecommendLimit recommendations for focal,
// refreshing the cached pool when it is empty.
func (s *Service) Related(ctx context.Context, focal Post) ([]Post, error) {
	pool := s.cache.Posts()
	if len(pool) == 0 {
		var err error
		pool, err = s.RefreshPosts(ctx, true)
		if err != nil {
			return nil, err
		}
	}
	return Recommend(focal, pool, DefaultRecommendLimit), nil
}

// CreatePost validates the draft, derives the slug when none is supplied,
// persists, and prepends the new post to the cache.
func (s *Service) CreatePost(ctx context.Context, draft Draft) (Post, error) {
	if err := validateRequired(draft.Title, draft.Excerpt, draft.Author, draft.Image, draft.Category); err != nil {
		return Post{}, err
	}
	if strings.TrimSpace(draft.Slug) == "" {
		draft.Slug = DeriveSlug(draft.Title)
	}
	if err := s.checkSlugFree(ctx, draft.Slug, ""); err != nil {
		return Post{}, err
	}

	post, err := s.repo.Create(ctx, draft)
	if err != nil {
		return Post{}, err
	}
	s.cache.ApplyCreate(post)
	s.log.Infow("post created", "id", post.ID, "slug", post.Slug)
	return post, nil
}

// UpdatePost validates the patch, re-derives the slug when the title changes
// without an explicit slug, persists, and replaces the cached entry.
func (s *Service) UpdatePost(ctx context.Context, id string, patch Patch) (Post, error) {
	if err := validatePatch(patch); err != nil {
		return Post{}, err
	}
	if patch.Title != nil && patch.Slug == nil {
		slug := DeriveSlug(*patch.Title)
		patch.Slug = &slug
	}
	if patch.Slug != nil {
		if err := s.checkSlugFree(ctx, *patch.Slug, id); err != nil {
			return Post{}, err
		}
	}

	post, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return Post{}, err
	}
	s.cache.ApplyUpdate(post)
	s.log.Infow("post updated", "id", post.ID, "slug", post.Slug)
	return post, nil
}

// DeletePost removes the post and its cache entries. Deleting an id that is
// already gone succeeds silently.
func (s *Service) DeletePost(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.ApplyDelete(id)
	s.log.Infow("post deleted", "id", id)
	return nil
}

// checkSlugFree enforces slug uniqueness at the orchestrator level; the
// store has no unique constraint on document fields.
func (s *Service) checkSlugFree(ctx context.Context, slug, selfID string) error {
	posts, err := s.repo.ListAll(ctx, false)
	if err != nil {
		return err
	}
	for _, p := range posts {
		if p.Slug == slug && p.ID != selfID {
			return &ValidationError{Field: "slug", Reason: "already in use"}
		}
	}
	return nil
}

var requiredFields = [5]string{"title", "excerpt", "author", "image", "category"}

func validateRequired(values ...string) error {
	for i, v := range values {
		if strings.TrimSpace(v) == "" {
			return &ValidationError{Field: requiredFields[i], Reason: "must not be empty"}
		}
	}
	return nil
}

func validatePatch(p Patch) error {
	checks := []struct {
		field string
		value *string
	}{
		{"title", p.Title},
		{"excerpt", p.Excerpt},
		{"author", p.Author},
		{"image", p.Image},
		{"category", p.Category},
	}
	for _, c := range checks {
		if c.value != nil && strings.TrimSpace(*c.value) == "" {
			return &ValidationError{Field: c.field, Reason: "must not be empty"}
		}
	}
	return nil
}

package blog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarrafiye/goldweb/store"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo := NewRepository(store.NewMemoryStore())
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return repo
}

func testDraft(title string, published bool) Draft {
	return Draft{
		Title:       title,
		Slug:        DeriveSlug(title),
		Content:     "<p>body</p>",
		Excerpt:     "excerpt",
		Author:      "editor",
		Image:       "https://cdn.example.com/cover.jpg",
		Category:    "gold",
		Tags:        []string{"invest", "market"},
		IsPublished: published,
	}
}

func TestRepositoryCreateAssignsServerFields(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	post, err := repo.Create(ctx, testDraft("Gold Basics", true))
	require.NoError(t, err)

	assert.NotEmpty(t, post.ID)
	assert.EqualValues(t, 0, post.Views)
	assert.Equal(t, post.CreatedAt, post.UpdatedAt)
	require.NotNil(t, post.PublishedAt)
	assert.Equal(t, post.CreatedAt, *post.PublishedAt)
}

func TestRepositoryCreateUnpublishedHasNoPublishedAt(t *testing.T) {
	repo := newTestRepo(t)

	post, err := repo.Create(context.Background(), testDraft("Draft Post", false))
	require.NoError(t, err)
	assert.Nil(t, post.PublishedAt)
}

func TestRepositoryGetBySlugRoundTripIncrementsViews(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	draft := testDraft("Gold Basics", true)

	created, err := repo.Create(ctx, draft)
	require.NoError(t, err)

	got, err := repo.GetBySlug(ctx, draft.Slug)
	require.NoError(t, err)

	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, draft.Title, got.Title)
	assert.Equal(t, draft.Content, got.Content)
	assert.Equal(t, draft.Excerpt, got.Excerpt)
	assert.Equal(t, draft.Author, got.Author)
	assert.Equal(t, draft.Image, got.Image)
	assert.Equal(t, draft.Category, got.Category)
	assert.Equal(t, draft.Tags, got.Tags)
	assert.EqualValues(t, 1, got.Views)
}

func TestRepositoryViewsNeverDecrease(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	draft := testDraft("Popular Post", true)
	_, err := repo.Create(ctx, draft)
	require.NoError(t, err)

	var last int64
	for i := 1; i <= 5; i++ {
		got, err := repo.GetBySlug(ctx, draft.Slug)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got.Views, last)
		assert.EqualValues(t, i, got.Views)
		last = got.Views
	}
}

func TestRepositoryGetBySlugErrors(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	_, err := repo.Create(ctx, testDraft("Hidden Post", false))
	require.NoError(t, err)

	_, err = repo.GetBySlug(ctx, "no-such-slug")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetBySlug(ctx, "hidden-post")
	assert.ErrorIs(t, err, ErrUnpublished)
}

func TestRepositoryListAllOrdersNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, title := range []string{"First", "Second", "Third"} {
		_, err := repo.Create(ctx, testDraft(title, true))
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, testDraft("Unpublished", false))
	require.NoError(t, err)

	all, err := repo.ListAll(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Unpublished", all[0].Title)
	assert.Equal(t, "Third", all[1].Title)
	assert.Equal(t, "Second", all[2].Title)
	assert.Equal(t, "First", all[3].Title)

	published, err := repo.ListAll(ctx, true)
	require.NoError(t, err)
	require.Len(t, published, 3)
	for _, p := range published {
		assert.True(t, p.IsPublished)
	}
}

func TestRepositoryUpdateStampsPublishedAtOnce(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, testDraft("Becomes Public", false))
	require.NoError(t, err)
	require.Nil(t, created.PublishedAt)

	published := true
	first, err := repo.Update(ctx, created.ID, Patch{IsPublished: &published})
	require.NoError(t, err)
	require.NotNil(t, first.PublishedAt)
	assert.Equal(t, first.UpdatedAt, *first.PublishedAt)

	newTitle := "Becomes Public Again"
	second, err := repo.Update(ctx, created.ID, Patch{Title: &newTitle})
	require.NoError(t, err)
	require.NotNil(t, second.PublishedAt)
	assert.Equal(t, *first.PublishedAt, *second.PublishedAt)
	assert.True(t, second.UpdatedAt.After(*second.PublishedAt))
}

func TestRepositoryUpdateRefreshesUpdatedAtOnly(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, testDraft("Edited Post", true))
	require.NoError(t, err)

	excerpt := "new excerpt"
	updated, err := repo.Update(ctx, created.ID, Patch{Excerpt: &excerpt})
	require.NoError(t, err)

	assert.Equal(t, "new excerpt", updated.Excerpt)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestRepositoryUpdateMissingPost(t *testing.T) {
	repo := newTestRepo(t)

	title := "x"
	_, err := repo.Update(context.Background(), "ghost", Patch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositoryDeleteIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, testDraft("Short Lived", true))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	// Second delete of the same id is a successful no-op.
	require.NoError(t, repo.Delete(ctx, created.ID))

	all, err := repo.ListAll(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRepositoryDuplicateSlugsResolveToNewest(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// The orchestrator prevents new duplicates; data predating that check
	// can still carry them. The newest post must win regardless of the
	// store's iteration order.
	draft := testDraft("Twin Post", true)
	_, err := repo.Create(ctx, draft)
	require.NoError(t, err)
	newer, err := repo.Create(ctx, draft)
	require.NoError(t, err)

	got, err := repo.GetBySlug(ctx, draft.Slug)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)
}

// faultyStore wraps a working store and fails selected operations, for
// exercising the error taxonomy.
type faultyStore struct {
	store.DocumentStore
	queryErr  error
	updateErr error
}

func (s *faultyStore) QueryAll(ctx context.Context, collection, orderBy string, desc bool) ([]store.RawDocument, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return s.DocumentStore.QueryAll(ctx, collection, orderBy, desc)
}

func (s *faultyStore) QueryWhere(ctx context.Context, collection, field string, value any) ([]store.RawDocument, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return s.DocumentStore.QueryWhere(ctx, collection, field, value)
}

func (s *faultyStore) UpdateFields(ctx context.Context, collection, id string, fields store.RawDocument) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	return s.DocumentStore.UpdateFields(ctx, collection, id, fields)
}

func TestRepositoryReadFailuresSurfaceFetchError(t *testing.T) {
	faulty := &faultyStore{DocumentStore: store.NewMemoryStore(), queryErr: errors.New("store down")}
	repo := NewRepository(faulty)
	ctx := context.Background()

	posts, err := repo.ListAll(ctx, false)
	var fErr *FetchError
	require.ErrorAs(t, err, &fErr)
	// No partial result accompanies the failure.
	assert.Nil(t, posts)

	got, err := repo.GetBySlug(ctx, "any-slug")
	require.ErrorAs(t, err, &fErr)
	assert.Equal(t, Post{}, got)
}

func TestRepositoryViewWriteFailureSurfacesMutationError(t *testing.T) {
	faulty := &faultyStore{DocumentStore: store.NewMemoryStore()}
	repo := NewRepository(faulty)
	ctx := context.Background()

	draft := testDraft("Fragile Post", true)
	_, err := repo.Create(ctx, draft)
	require.NoError(t, err)

	faulty.updateErr = errors.New("write refused")
	got, err := repo.GetBySlug(ctx, draft.Slug)
	var mErr *MutationError
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, Post{}, got)
}

func TestRepositoryCreateFailureSurfacesMutationError(t *testing.T) {
	repo := NewRepository(&insertRejectingStore{})

	_, err := repo.Create(context.Background(), testDraft("Never Stored", true))
	var mErr *MutationError
	require.ErrorAs(t, err, &mErr)
}

type insertRejectingStore struct {
	store.DocumentStore
}

func (s *insertRejectingStore) Insert(ctx context.Context, collection string, fields store.RawDocument) (string, error) {
	return "", errors.New("insert refused")
}

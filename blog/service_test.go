package blog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(newTestRepo(t), zap.NewNop().Sugar())
}

func TestServiceCreateValidatesRequiredFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*Draft)
		field  string
	}{
		{"empty title", func(d *Draft) { d.Title = "" }, "title"},
		{"blank excerpt", func(d *Draft) { d.Excerpt = "   " }, "excerpt"},
		{"empty author", func(d *Draft) { d.Author = "" }, "author"},
		{"empty image", func(d *Draft) { d.Image = "" }, "image"},
		{"empty category", func(d *Draft) { d.Category = "" }, "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := testDraft("Valid Title", true)
			tt.mutate(&draft)

			_, err := svc.CreatePost(ctx, draft)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}

	// Nothing reached the store.
	posts, err := svc.RefreshPosts(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestServiceCreateDerivesSlugWhenMissing(t *testing.T) {
	svc := newTestService(t)

	draft := testDraft("Altın Yatırımı: 2024 Rehberi!", true)
	draft.Slug = ""
	post, err := svc.CreatePost(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "altin-yatirimi-2024-rehberi", post.Slug)
}

func TestServiceCreateRejectsDuplicateSlug(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, testDraft("Gold Basics", true))
	require.NoError(t, err)

	_, err = svc.CreatePost(ctx, testDraft("Gold Basics", true))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "slug", vErr.Field)
}

func TestServiceCreatePrependsToCache(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, testDraft("First", true))
	require.NoError(t, err)
	second, err := svc.CreatePost(ctx, testDraft("Second", true))
	require.NoError(t, err)

	cached := svc.Cache().Posts()
	require.Len(t, cached, 2)
	assert.Equal(t, second.ID, cached[0].ID)
}

func TestServiceUpdateRederivesSlugFromTitle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, testDraft("Old Title", true))
	require.NoError(t, err)

	title := "Değerli Madenler"
	updated, err := svc.UpdatePost(ctx, created.ID, Patch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "degerli-madenler", updated.Slug)
}

func TestServiceUpdateKeepsOwnSlug(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, testDraft("Stable Post", true))
	require.NoError(t, err)

	// Re-saving with the same slug must not trip the uniqueness check.
	slug := created.Slug
	excerpt := "edited"
	_, err = svc.UpdatePost(ctx, created.ID, Patch{Slug: &slug, Excerpt: &excerpt})
	require.NoError(t, err)
}

func TestServiceUpdateRejectsBlankRequiredField(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, testDraft("Some Post", true))
	require.NoError(t, err)

	empty := " "
	_, err = svc.UpdatePost(ctx, created.ID, Patch{Author: &empty})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "author", vErr.Field)
}

func TestServiceUpdateSyncsCacheAndCurrent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, testDraft("Tracked Post", true))
	require.NoError(t, err)
	_, err = svc.GetBySlug(ctx, created.Slug)
	require.NoError(t, err)

	excerpt := "fresh"
	_, err = svc.UpdatePost(ctx, created.ID, Patch{Excerpt: &excerpt})
	require.NoError(t, err)

	current, ok := svc.Cache().Current()
	require.True(t, ok)
	assert.Equal(t, "fresh", current.Excerpt)
	assert.Equal(t, "fresh", svc.Cache().Posts()[0].Excerpt)
}

func TestServiceDeleteClearsCache(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, testDraft("Doomed Post", true))
	require.NoError(t, err)
	_, err = svc.GetBySlug(ctx, created.Slug)
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(ctx, created.ID))

	assert.Empty(t, svc.Cache().Posts())
	_, ok := svc.Cache().Current()
	assert.False(t, ok)

	// Deleting again still succeeds.
	require.NoError(t, svc.DeletePost(ctx, created.ID))
}

func TestServiceGetBySlugSetsCurrentWithIncrementedViews(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, testDraft("Viewed Post", true))
	require.NoError(t, err)

	got, err := svc.GetBySlug(ctx, created.Slug)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.Views)

	current, ok := svc.Cache().Current()
	require.True(t, ok)
	assert.EqualValues(t, 1, current.Views)
}

func TestServiceRelatedUsesCachedPool(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, title := range []string{"Gold One", "Gold Two", "Gold Three", "Gold Four"} {
		_, err := svc.CreatePost(ctx, testDraft(title, true))
		require.NoError(t, err)
	}

	focal, err := svc.GetBySlug(ctx, "gold-one")
	require.NoError(t, err)

	related, err := svc.Related(ctx, focal)
	require.NoError(t, err)
	require.Len(t, related, 3)
	for _, p := range related {
		assert.NotEqual(t, focal.ID, p.ID)
	}
}

func TestServiceRelatedRefreshesEmptyPool(t *testing.T) {
	repo := newTestRepo(t)
	seed := NewService(repo, zap.NewNop().Sugar())
	ctx := context.Background()

	var focal Post
	for i, title := range []string{"Gold A", "Gold B", "Gold C", "Gold D"} {
		p, err := seed.CreatePost(ctx, testDraft(title, true))
		require.NoError(t, err)
		if i == 0 {
			focal = p
		}
	}

	// A fresh session starts with an empty cache and must fetch the pool.
	fresh := NewService(repo, zap.NewNop().Sugar())
	related, err := fresh.Related(ctx, focal)
	require.NoError(t, err)
	assert.Len(t, related, 3)
}

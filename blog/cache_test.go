package blog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cachedPosts() []Post {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []Post{
		{ID: "1", Title: "Altın Fiyatları", Excerpt: "güncel", Content: "<p>çeyrek</p>", Category: "gold", IsPublished: true, CreatedAt: base.Add(3 * time.Hour)},
		{ID: "2", Title: "Gümüş Rehberi", Excerpt: "yatırım", Content: "<p>külçe</p>", Category: "silver", IsPublished: true, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "3", Title: "Taslak Yazı", Excerpt: "draft", Content: "<p>gizli</p>", Category: "gold", IsPublished: false, CreatedAt: base.Add(time.Hour)},
	}
}

func seedCache(posts []Post) *SessionCache {
	c := NewSessionCache()
	c.SetPosts(c.Begin(), posts)
	return c
}

func TestFilteredIdentityWithNeutralFilter(t *testing.T) {
	posts := cachedPosts()
	c := seedCache(posts)

	got := c.Filtered(FilterState{Category: CategoryAll})
	assert.Equal(t, posts, got)
}

func TestFilteredNeverResorts(t *testing.T) {
	// Deliberately out of createdAt order; the filter must preserve it.
	posts := []Post{
		{ID: "b", Category: "gold", IsPublished: true},
		{ID: "a", Category: "gold", IsPublished: true},
	}
	c := seedCache(posts)

	got := c.Filtered(FilterState{Category: "gold"})
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
}

func TestFilteredByCategoryAndPublished(t *testing.T) {
	c := seedCache(cachedPosts())

	tests := []struct {
		name   string
		filter FilterState
		want   []string
	}{
		{"category only", FilterState{Category: "gold"}, []string{"1", "3"}},
		{"category and published", FilterState{Category: "gold", PublishedOnly: true}, []string{"1"}},
		{"published only", FilterState{Category: CategoryAll, PublishedOnly: true}, []string{"1", "2"}},
		{"no matches", FilterState{Category: "platinum"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, p := range c.Filtered(tt.filter) {
				got = append(got, p.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilteredSearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	c := seedCache(cachedPosts())

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"title match", "altın", []string{"1"}},
		{"title match different case", "ALTIN", nil}, // simple lowercase fold, dotless ı differs from I
		{"excerpt match", "YATIRIM", nil},
		{"excerpt match exact case fold", "yatırım", []string{"2"}},
		{"content match", "külçe", []string{"2"}},
		{"no match", "platin", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, p := range c.Filtered(FilterState{Category: CategoryAll, SearchQuery: tt.query}) {
				got = append(got, p.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCacheMutationsKeepSnapshotConsistent(t *testing.T) {
	c := seedCache(cachedPosts())

	created := Post{ID: "4", Title: "Yeni Yazı", Category: "gold", IsPublished: true}
	c.ApplyCreate(created)
	got := c.Posts()
	require.Len(t, got, 4)
	assert.Equal(t, "4", got[0].ID)

	updated := created
	updated.Title = "Yeni Yazı v2"
	c.SetCurrent(created)
	c.ApplyUpdate(updated)
	got = c.Posts()
	assert.Equal(t, "Yeni Yazı v2", got[0].Title)
	current, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "Yeni Yazı v2", current.Title)

	c.ApplyDelete("4")
	got = c.Posts()
	require.Len(t, got, 3)
	_, ok = c.Current()
	assert.False(t, ok)
}

func TestCacheLastStartedWins(t *testing.T) {
	c := NewSessionCache()

	older := c.Begin()
	newer := c.Begin()

	// The newer fetch completes first; the older one must be dropped.
	require.True(t, c.SetPosts(newer, []Post{{ID: "new"}}))
	assert.False(t, c.SetPosts(older, []Post{{ID: "old"}}))

	got := c.Posts()
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].ID)
}

func TestCacheSupersededFetchDroppedWhileNewerInFlight(t *testing.T) {
	c := NewSessionCache()
	c.SetPosts(c.Begin(), []Post{{ID: "initial"}})

	older := c.Begin()
	_ = c.Begin() // newer fetch started, response still pending

	// The superseded response must not be installed, not even transiently.
	assert.False(t, c.SetPosts(older, []Post{{ID: "stale"}}))

	got := c.Posts()
	require.Len(t, got, 1)
	assert.Equal(t, "initial", got[0].ID)
}

func TestCacheSetCurrentRefreshesSnapshotEntry(t *testing.T) {
	posts := cachedPosts()
	c := seedCache(posts)

	refreshed := posts[0]
	refreshed.Views = 42
	c.SetCurrent(refreshed)

	got := c.Posts()
	assert.EqualValues(t, 42, got[0].Views)
}

package blog

import (
	"strings"
	"sync"
)

// SessionCache holds one session's most recent post snapshot plus the
// currently selected post. It is constructed per session and passed
// explicitly to its consumers; nothing here is shared across sessions or
// invalidated from outside. Staleness is resolved by re-fetching.
type SessionCache struct {
	mu      sync.RWMutex
	posts   []Post
	current *Post

	// Fetch generation counter implementing last-started-wins: only the most
	// recently started fetch may install its snapshot, so a response from a
	// superseded fetch is dropped even while the newer one is still in
	// flight.
	started uint64
}

// NewSessionCache returns an empty cache.
func NewSessionCache() *SessionCache {
	return &SessionCache{}
}

// Begin registers the start of a fetch and returns its generation token.
func (c *SessionCache) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started++
	return c.started
}

// SetPosts installs a fetched snapshot. It reports false and leaves the
// cache untouched when a newer fetch has started since token was issued,
// whether or not that fetch has completed.
func (c *SessionCache) SetPosts(token uint64, posts []Post) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token < c.started {
		return false
	}
	c.posts = append([]Post(nil), posts...)
	return true
}

// Posts returns a copy of the cached snapshot in cache order.
func (c *SessionCache) Posts() []Post {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Post(nil), c.posts...)
}

// Current returns the selected single post, if any.
func (c *SessionCache) Current() (Post, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return Post{}, false
	}
	return *c.current, true
}

// SetCurrent records the selected post and refreshes its entry in the
// snapshot when present.
func (c *SessionCache) SetCurrent(p Post) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = &p
	for i := range c.posts {
		if c.posts[i].ID == p.ID {
			c.posts[i] = p
			break
		}
	}
}

// ClearCurrent drops the selected post.
func (c *SessionCache) ClearCurrent() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
}

// ApplyCreate prepends a newly created post to the snapshot.
func (c *SessionCache) ApplyCreate(p Post) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posts = append([]Post{p}, c.posts...)
}

// ApplyUpdate replaces the matching snapshot entry and the selected post.
func (c *SessionCache) ApplyUpdate(p Post) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.posts {
		if c.posts[i].ID == p.ID {
			c.posts[i] = p
			break
		}
	}
	if c.current != nil && c.current.ID == p.ID {
		c.current = &p
	}
}

// ApplyDelete removes the post from the snapshot and clears the selected
// post when it was the one deleted.
func (c *SessionCache) ApplyDelete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.posts[:0]
	for _, p := range c.posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.posts = kept
	if c.current != nil && c.current.ID == id {
		c.current = nil
	}
}

// Filtered returns the snapshot entries matching f, preserving cache order.
// Filtering never re-sorts.
func (c *SessionCache) Filtered(f FilterState) []Post {
	c.mu.RLock()
	defer c.mu.RUnlock()

	query := strings.ToLower(f.SearchQuery)
	var out []Post
	for _, p := range c.posts {
		if f.Category != "" && f.Category != CategoryAll && p.Category != f.Category {
			continue
		}
		if f.PublishedOnly && !p.IsPublished {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesQuery(p Post, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(p.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Excerpt), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Content), lowerQuery)
}

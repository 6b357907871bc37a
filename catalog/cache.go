package catalog

import (
	"strings"
	"sync"
)

// SessionCache holds one session's product snapshot plus the currently
// selected product, mirroring the blog session cache: per-session,
// re-fetch to resolve staleness, last-started-wins on racing fetches.
type SessionCache struct {
	mu       sync.RWMutex
	products []Product
	selected *Product

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

// SetProducts installs a fetched snapshot unless a newer fetch has started
// since token was issued.
func (c *SessionCache) SetProducts(token uint64, products []Product) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token < c.started {
		return false
	}
	c.products = append([]Product(nil), products...)
	return true
}

// Products returns a copy of the cached snapshot in cache order.
func (c *SessionCache) Products() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Product(nil), c.products...)
}

// Selected returns the selected product, if any.
func (c *SessionCache) Selected() (Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.selected == nil {
		return Product{}, false
	}
	return *c.selected, true
}

// SetSelected records the selected product.
func (c *SessionCache) SetSelected(p Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = &p
}

// ClearSelected drops the selected product.
func (c *SessionCache) ClearSelected() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = nil
}

// Filtered returns the snapshot entries matching f, preserving cache order.
func (c *SessionCache) Filtered(f Filter) []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	query := strings.ToLower(f.SearchQuery)
	var out []Product
	for _, p := range c.products {
		if f.Category != "" && f.Category != CategoryAll && p.Category != f.Category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

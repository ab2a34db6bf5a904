package details

import (
	"sync"

	"github.com/project-tktt/job-viewer/internal/domain"
)

// Cache maps job URL to its detail payload
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*domain.Detail
}

// NewCache creates an empty details cache
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*domain.Detail)}
}

// Get returns the cached payload for url
func (c *Cache) Get(url string) (*domain.Detail, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.entries[url]
	return d, ok && d != nil
}

// Put stores a single payload
func (c *Cache) Put(url string, d *domain.Detail) {
	if url == "" || d == nil {
		return
	}
	c.mu.Lock()
	c.entries[url] = d
	c.mu.Unlock()
}

// ReplaceAll swaps the whole mapping in one step
func (c *Cache) ReplaceAll(entries map[string]*domain.Detail) {
	if entries == nil {
		entries = make(map[string]*domain.Detail)
	}
	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()
}

// Len returns the number of cached payloads
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

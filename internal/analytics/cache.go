package analytics

import "sync"

// Cache memoizes loaded Analytics by data path.  Entries change only
// through Refresh or Clear.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*Analytics
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]*Analytics)}
}

// Get returns the memoized Analytics for path, loading it on first use.
// A failed load is not memoized.
func (c *Cache) Get(path string) (*Analytics, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if a, ok := c.entries[path]; ok {
		return a, nil
	}
	a := New(path)
	if err := a.Load(); err != nil {
		return nil, err
	}
	c.entries[path] = a
	return a, nil
}

// Refresh reloads path.  When the reload fails the previous entry, if
// any, stays in place.
func (c *Cache) Refresh(path string) (*Analytics, error) {
	a := New(path)
	if err := a.Load(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.entries[path] = a
	c.mu.Unlock()
	return a, nil
}

func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*Analytics)
	c.mu.Unlock()
}

package grid

import (
	"container/list"
	"sync"
)

// cellCache keeps recently located cells with LRU eviction.
//
// Strategies whose cell geometry is expensive to build (reprojection,
// edge densification) use it to serve repeat hits on the same cell.
// It is safe for concurrent use.
type cellCache struct {
	maxEntries int // 0 means unlimited
	cells      map[string]*cacheEntry
	lru        *list.List // most recent at front
	mu         sync.Mutex

	hits, misses int
}

type cacheEntry struct {
	key     string
	cell    Cell
	element *list.Element
}

func newCellCache(maxEntries int) *cellCache {
	return &cellCache{
		maxEntries: maxEntries,
		cells:      make(map[string]*cacheEntry),
		lru:        list.New(),
	}
}

// Get returns the cached cell for key, or builds it with load.
//
// load is called without the lock held, so two goroutines missing on the
// same key may both build it; the last one wins.
func (c *cellCache) Get(key string, load func() (Cell, bool)) (Cell, bool) {
	c.mu.Lock()
	if entry, ok := c.cells[key]; ok {
		c.lru.MoveToFront(entry.element)
		c.hits++
		c.mu.Unlock()
		return entry.cell, true
	}
	c.misses++
	c.mu.Unlock()

	cell, ok := load()
	if !ok {
		return Cell{}, false
	}
	c.add(key, cell)
	return cell, true
}

func (c *cellCache) add(key string, cell Cell) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.cells[key]; ok {
		entry.cell = cell
		c.lru.MoveToFront(entry.element)
		return
	}

	if c.maxEntries > 0 {
		for c.lru.Len() >= c.maxEntries {
			c.evictLRU()
		}
	}

	entry := &cacheEntry{key: key, cell: cell}
	entry.element = c.lru.PushFront(entry)
	c.cells[key] = entry
}

// evictLRU removes the least recently used cell.
// Must be called with c.mu locked.
func (c *cellCache) evictLRU() {
	elem := c.lru.Back()
	if elem == nil {
		return
	}
	entry := elem.Value.(*cacheEntry)
	c.lru.Remove(elem)
	delete(c.cells, entry.key)
}

// Clear drops every cached cell.
func (c *cellCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cells = make(map[string]*cacheEntry)
	c.lru.Init()
	c.hits, c.misses = 0, 0
}

// Stats returns cache counters.
func (c *cellCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return CacheStats{
		Entries:    len(c.cells),
		MaxEntries: c.maxEntries,
		Hits:       c.hits,
		Misses:     c.misses,
	}
}

// CacheStats holds cell cache counters.
type CacheStats struct {
	Entries    int // Cells currently cached
	MaxEntries int // Capacity, 0 for unlimited
	Hits       int
	Misses     int
}

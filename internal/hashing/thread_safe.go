package hashing

import (
	"sync"

	"github.com/lgbarn/chessrules/internal/chess"
	"github.com/lgbarn/chessrules/internal/engine"
)

// ThreadSafeStatusCache wraps StatusCache with mutex protection for concurrent access.
type ThreadSafeStatusCache struct {
	cache *StatusCache
	mu    sync.Mutex
}

// NewThreadSafeStatusCache creates a new thread-safe cache.
// maxCapacity of 0 means unlimited capacity.
func NewThreadSafeStatusCache(maxCapacity int) *ThreadSafeStatusCache {
	return &ThreadSafeStatusCache{
		cache: NewStatusCache(maxCapacity),
	}
}

// Lookup returns the cached result for the position, if present.
// Lookups update the hit counters, so they take the write lock.
func (c *ThreadSafeStatusCache) Lookup(rules engine.Rules, board chess.Board, toMove chess.Colour) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Lookup(rules, board, toMove)
}

// Store records a result.
func (c *ThreadSafeStatusCache) Store(rules engine.Rules, board chess.Board, toMove chess.Colour, e Entry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Store(rules, board, toMove, e)
}

// Len returns the number of cached positions.
func (c *ThreadSafeStatusCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len()
}

// Hits returns the number of successful lookups.
func (c *ThreadSafeStatusCache) Hits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Hits()
}

// IsFull returns true if the cache has reached its capacity limit.
func (c *ThreadSafeStatusCache) IsFull() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.IsFull()
}

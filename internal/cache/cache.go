// Package cache provides an in-memory LRU cache with TTL, plus a demo-set
// cache keyed by user id with get-or-generate semantics. The generator itself
// stays stateless; cacheability lives here.
package cache

import (
	"container/list"
	"sync"
	"time"

	"fjacquet/cashsense/internal/models"
)

// LRUCache is a size-bounded cache with per-entry TTL.
type LRUCache[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
}

type cacheItem[T any] struct {
	key       string
	data      T
	expiresAt time.Time
}

// NewLRUCache creates an LRU cache holding at most maxSize entries, each
// valid for ttl.
func NewLRUCache[T any](maxSize int, ttl time.Duration) *LRUCache[T] {
	return &LRUCache[T]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

// Get retrieves a value from the cache.
func (c *LRUCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, exists := c.items[key]
	if !exists {
		return zero, false
	}

	item := elem.Value.(*cacheItem[T])
	if time.Now().After(item.expiresAt) {
		c.removeElement(elem)
		return zero, false
	}

	c.lru.MoveToFront(elem)
	return item.data, true
}

// Set stores a value in the cache.
func (c *LRUCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := &cacheItem[T]{
		key:       key,
		data:      data,
		expiresAt: time.Now().Add(c.ttl),
	}

	if elem, exists := c.items[key]; exists {
		elem.Value = item
		c.lru.MoveToFront(elem)
		return
	}

	elem := c.lru.PushFront(item)
	c.items[key] = elem

	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

// Delete removes a key from the cache.
func (c *LRUCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.items[key]; exists {
		c.removeElement(elem)
	}
}

// Size returns the current number of entries.
func (c *LRUCache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

func (c *LRUCache[T]) removeElement(elem *list.Element) {
	item := elem.Value.(*cacheItem[T])
	delete(c.items, item.key)
	c.lru.Remove(elem)
}

// DemoSet is a cached set of generated demo transactions.
type DemoSet struct {
	Transactions []models.Transaction
	GeneratedAt  time.Time
}

// DemoCache caches generated demo transaction sets per user.
type DemoCache struct {
	mu    sync.Mutex
	inner *LRUCache[DemoSet]
}

// NewDemoCache creates a DemoCache bounded to maxUsers entries with the
// given TTL.
func NewDemoCache(maxUsers int, ttl time.Duration) *DemoCache {
	return &DemoCache{inner: NewLRUCache[DemoSet](maxUsers, ttl)}
}

// GetOrGenerate returns the cached set for the user, generating and caching
// one when absent or expired. Concurrent callers for the same key generate
// at most once.
func (c *DemoCache) GetOrGenerate(userID string, generate func() []models.Transaction) DemoSet {
	c.mu.Lock()
	defer c.mu.Unlock()

	if set, ok := c.inner.Get(userID); ok {
		return set
	}

	set := DemoSet{
		Transactions: generate(),
		GeneratedAt:  time.Now(),
	}
	c.inner.Set(userID, set)
	return set
}

// Invalidate drops the cached set for the user.
func (c *DemoCache) Invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inner.Delete(userID)
}

package widgets

import (
	"sync"
	"time"
)

// memoCache stores the last successful fetch per widget so hub renders do
// not hit the upstream API on every request while the value is fresh.
type memoCache[T any] struct {
	mu      sync.RWMutex
	now     func() time.Time
	ttl     time.Duration
	entries map[string]memoCacheEntry[T]
}

type memoCacheEntry[T any] struct {
	value     T
	expiresAt time.Time
}

func newMemoCache[T any](ttl time.Duration, now func() time.Time) *memoCache[T] {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if now == nil {
		now = time.Now
	}
	return &memoCache[T]{
		now:     now,
		ttl:     ttl,
		entries: make(map[string]memoCacheEntry[T]),
	}
}

func (c *memoCache[T]) Get(key string) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return zero, false
	}
	return entry.value, true
}

func (c *memoCache[T]) Store(key string, value T) {
	if c == nil {
		return
	}
	expiry := c.now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for existing, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, existing)
		}
	}
	c.entries[key] = memoCacheEntry[T]{value: value, expiresAt: expiry}
}

func (c *memoCache[T]) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]memoCacheEntry[T])
	c.mu.Unlock()
}

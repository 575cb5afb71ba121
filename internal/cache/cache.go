// Package cache provides the embedding vector cache used at the external
// provider boundary, with Redis and in-memory drivers behind one interface.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrCacheMiss indicates a cache miss.
var ErrCacheMiss = errors.New("cache miss")

// Client defines the cache interface.
type Client interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// MemoryClient implements Client with an in-process map. Entries expire
// lazily on read; when the cache is full the oldest entry is evicted.
type MemoryClient struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	maxEntries int
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
	storedAt  time.Time
}

// NewMemoryClient creates an in-memory cache bounded to maxEntries.
func NewMemoryClient(maxEntries int) *MemoryClient {
	if maxEntries <= 0 {
		maxEntries = 10000
	}
	return &MemoryClient{
		entries:    make(map[string]memoryEntry),
		maxEntries: maxEntries,
	}
}

// Get retrieves a value, honoring expiry.
func (c *MemoryClient) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, ErrCacheMiss
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, ErrCacheMiss
	}
	return entry.value, nil
}

// Set stores a value with the given TTL (zero means no expiry).
func (c *MemoryClient) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := memoryEntry{value: value, storedAt: time.Now()}
	if ttl > 0 {
		entry.expiresAt = entry.storedAt.Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOldestLocked()
	}
	c.entries[key] = entry
	return nil
}

// Delete removes a value.
func (c *MemoryClient) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Close releases nothing for the in-memory driver.
func (c *MemoryClient) Close() error {
	return nil
}

func (c *MemoryClient) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.storedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = entry.storedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

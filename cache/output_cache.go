// Package cache keeps recent extraction outputs in memory.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	data       []byte
	expiration time.Time
}

// OutputCache holds extraction outputs by request ID for a limited time. The
// most recent output is also reachable through Latest.
type OutputCache struct {
	data       map[string]entry
	latest     string
	mutex      sync.RWMutex
	ttl        time.Duration
	maxSize    int
	cleanupInt time.Duration
	stopChan   chan struct{}
	stopOnce   sync.Once
}

func NewOutputCache(ttl time.Duration, maxSize int) *OutputCache {
	if maxSize < 1 {
		maxSize = 1
	}
	c := &OutputCache{
		data:       make(map[string]entry),
		ttl:        ttl,
		maxSize:    maxSize,
		cleanupInt: ttl / 2,
		stopChan:   make(chan struct{}),
	}

	if c.cleanupInt > 0 {
		go c.cleanupExpiredEntries()
	}

	return c
}

// Put stores output under id and makes it the latest output.
func (c *OutputCache) Put(id string, output []byte) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.data[id]; !exists && len(c.data) >= c.maxSize {
		c.evictOldestEntry()
	}

	c.data[id] = entry{
		data:       output,
		expiration: time.Now().Add(c.ttl),
	}
	c.latest = id
}

func (c *OutputCache) Get(id string) ([]byte, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.lookup(id)
}

// Latest returns the most recently stored output that has not expired.
func (c *OutputCache) Latest() ([]byte, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.latest == "" {
		return nil, false
	}
	return c.lookup(c.latest)
}

func (c *OutputCache) lookup(id string) ([]byte, bool) {
	e, exists := c.data[id]
	if !exists || time.Now().After(e.expiration) {
		return nil, false
	}
	return e.data, true
}

func (c *OutputCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.data)
}

func (c *OutputCache) evictOldestEntry() {
	var oldestKey string
	var oldestTime time.Time

	for key, e := range c.data {
		if oldestKey == "" || e.expiration.Before(oldestTime) {
			oldestKey = key
			oldestTime = e.expiration
		}
	}

	if oldestKey != "" {
		delete(c.data, oldestKey)
	}
}

func (c *OutputCache) cleanupExpiredEntries() {
	ticker := time.NewTicker(c.cleanupInt)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpiredEntries()
		case <-c.stopChan:
			return
		}
	}
}

func (c *OutputCache) removeExpiredEntries() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	for key, e := range c.data {
		if now.After(e.expiration) {
			delete(c.data, key)
		}
	}
}

// Stats reports cache occupancy for logging.
func (c *OutputCache) Stats() map[string]interface{} {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return map[string]interface{}{
		"total_entries": len(c.data),
		"max_size":      c.maxSize,
		"ttl_seconds":   int(c.ttl.Seconds()),
	}
}

// Close stops the cleanup goroutine and drops every entry.
func (c *OutputCache) Close() {
	c.stopOnce.Do(func() { close(c.stopChan) })

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]entry)
	c.latest = ""
}

package cache

import (
	"sync"
	"time"
)

// TTLMap is the in-process tier of the route cache. Expiry is lazy, checked
// on read; the working set is one entry per active slug, so a background
// sweeper is not worth a goroutine.
type TTLMap struct {
	mu      sync.RWMutex
	entries map[string]ttlEntry
	ttl     time.Duration
}

type ttlEntry struct {
	value     interface{}
	expiresAt time.Time
}

func NewTTLMap(ttl time.Duration) *TTLMap {
	return &TTLMap{
		entries: make(map[string]ttlEntry),
		ttl:     ttl,
	}
}

// Get returns the cached value for key, or false when absent or expired.
// Expired entries are evicted on the spot.
func (m *TTLMap) Get(key string) (interface{}, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		// Re-check under the write lock: Set may have raced us with a
		// fresh entry for the same key.
		if current, ok := m.entries[key]; ok && time.Now().After(current.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false
	}

	return entry.value, true
}

// Set stores value under key and restarts its TTL.
func (m *TTLMap) Set(key string, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = ttlEntry{
		value:     value,
		expiresAt: time.Now().Add(m.ttl),
	}
}

// Delete evicts key immediately. Used when an admin write must not wait out
// the TTL.
func (m *TTLMap) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// Clear drops every entry.
func (m *TTLMap) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]ttlEntry)
}

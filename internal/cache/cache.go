// SPDX-License-Identifier: Apache-2.0

// Package cache provides the minimal reactive-cache capability the sync core
// is written against: get, set, invalidate, and invalidation listeners.
//
// The cache itself holds no fetching logic. Invalidating a key only marks the
// view stale and notifies listeners; whoever owns the key (the service layer)
// refetches from the backend and calls Set with the fresh value.
package cache

import "sync"

// Cache is the capability interface consumed by the sync engine, the stream
// client and the optimistic updater.
type Cache interface {
	// Get returns the cached value under key and whether it is present.
	Get(key string) (any, bool)

	// Set stores value under key, marking the view fresh.
	Set(key string, value any)

	// Invalidate drops the value under key and notifies listeners.
	// Invalidating an absent key still notifies: staleness is a property of
	// the key, not of the stored value.
	Invalidate(key string)

	// InvalidateAll drops every cached view and notifies listeners once per
	// dropped key. Used on reconnect (assume stale, refetch).
	InvalidateAll()

	// OnInvalidate registers fn to run on every invalidation. The returned
	// function unsubscribes. Listeners run synchronously on the
	// invalidating goroutine and must not block.
	OnInvalidate(fn func(key string)) (unsubscribe func())
}

type memoryCache struct {
	mu        sync.Mutex
	values    map[string]any
	listeners map[int]func(key string)
	nextID    int
}

// NewMemory returns an empty in-memory Cache.
func NewMemory() Cache {
	return &memoryCache{
		values:    make(map[string]any),
		listeners: make(map[int]func(key string)),
	}
}

func (c *memoryCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.values[key]
	return value, ok
}

func (c *memoryCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.values[key] = value
}

func (c *memoryCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.values, key)
	listeners := c.snapshotListenersLocked()
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(key)
	}
}

func (c *memoryCache) InvalidateAll() {
	c.mu.Lock()
	keys := make([]string, 0, len(c.values))
	for key := range c.values {
		keys = append(keys, key)
	}
	c.values = make(map[string]any)
	listeners := c.snapshotListenersLocked()
	c.mu.Unlock()

	for _, key := range keys {
		for _, fn := range listeners {
			fn(key)
		}
	}
}

func (c *memoryCache) OnInvalidate(fn func(key string)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// snapshotListenersLocked copies the listener set so callbacks run outside
// the cache lock. Caller must hold c.mu.
func (c *memoryCache) snapshotListenersLocked() []func(key string) {
	out := make([]func(key string), 0, len(c.listeners))
	for _, fn := range c.listeners {
		out = append(out, fn)
	}
	return out
}

// Package cache provides a TTL'd LRU plus a view cache for rendered
// subcategory aggregates.
package cache

import (
	"fmt"
	"time"
)

// ViewCache holds marshaled view payloads keyed by subcategory and month.
// Every write to a subcategory must invalidate its whole key space, month
// keys included, or budget readers see stale totals.
type ViewCache struct {
	lru *LRU[[]byte]
}

func NewViewCache(maxSize int, ttl time.Duration) *ViewCache {
	return &ViewCache{lru: NewLRU[[]byte](maxSize, ttl)}
}

func viewKey(subcategoryID int64, month string) string {
	return fmt.Sprintf("view:%d:%s", subcategoryID, month)
}

func (c *ViewCache) Get(subcategoryID int64, month string) ([]byte, bool) {
	return c.lru.Get(viewKey(subcategoryID, month))
}

func (c *ViewCache) Set(subcategoryID int64, month string, payload []byte) {
	c.lru.Set(viewKey(subcategoryID, month), payload)
}

// Invalidate drops every cached view of the subcategory.
func (c *ViewCache) Invalidate(subcategoryID int64) {
	c.lru.DeletePrefix(fmt.Sprintf("view:%d:", subcategoryID))
}

func (c *ViewCache) Size() int { return c.lru.Size() }

// Unwrap exposes the underlying LRU, mainly so callers can start its
// janitor.
func (c *ViewCache) Unwrap() *LRU[[]byte] { return c.lru }

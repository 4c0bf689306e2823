package cache

import (
	"testing"
	"time"
)

func TestLRUEvictsOldest(t *testing.T) {
	c := NewLRU[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	if _, ok := c.Get("a"); ok {
		t.Error("oldest entry survived eviction")
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Errorf("newest entry missing, got %d/%v", v, ok)
	}
	if c.Size() != 2 {
		t.Errorf("size = %d, want 2", c.Size())
	}
}

func TestLRUExpiry(t *testing.T) {
	c := NewLRU[string](10, 10*time.Millisecond)
	c.Set("k", "v")
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("expired entry returned")
	}
	c.Set("k", "v")
	time.Sleep(20 * time.Millisecond)
	if n := c.CleanExpired(); n != 1 {
		t.Errorf("CleanExpired = %d, want 1", n)
	}
}

func TestViewCacheInvalidateDropsAllMonths(t *testing.T) {
	c := NewViewCache(16, time.Minute)
	c.Set(7, "2026-08", []byte("aug"))
	c.Set(7, "2026-09", []byte("sep"))
	c.Set(8, "2026-08", []byte("other"))

	c.Invalidate(7)

	if _, ok := c.Get(7, "2026-08"); ok {
		t.Error("invalidated view still cached")
	}
	if _, ok := c.Get(7, "2026-09"); ok {
		t.Error("sibling month survived invalidation")
	}
	if _, ok := c.Get(8, "2026-08"); !ok {
		t.Error("unrelated subcategory was invalidated")
	}
}

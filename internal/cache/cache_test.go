// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package cache

import (
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func TestCacheBasicOperations(t *testing.T) {
	c := New[string](1 * time.Minute)

	c.Set("key1", "value1")
	value, exists := c.Get("key1")
	if !exists {
		t.Error("Expected key1 to exist")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %v", value)
	}

	_, exists = c.Get("key2")
	if exists {
		t.Error("Expected key2 to not exist")
	}

	if c.TTL() != time.Minute {
		t.Errorf("TTL() = %v, want 1m", c.TTL())
	}
}

func TestCacheExpiration(t *testing.T) {
	clock := newFakeClock()
	c := New[string](5*time.Minute, WithClock(clock.Now))

	c.Set("key1", "value1")

	if _, exists := c.Get("key1"); !exists {
		t.Fatal("Expected key1 to exist immediately after set")
	}

	clock.Advance(5 * time.Minute)
	if _, exists := c.Get("key1"); !exists {
		t.Fatal("Expected key1 to exist exactly at the TTL boundary")
	}

	clock.Advance(time.Second)
	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be expired")
	}
	if c.Len() != 0 {
		t.Errorf("Expected expired entry to be removed, Len() = %d", c.Len())
	}
}

func TestCacheSetWithTTL(t *testing.T) {
	clock := newFakeClock()
	c := New[int](time.Hour, WithClock(clock.Now))

	c.SetWithTTL("short", 1, time.Second)
	c.Set("long", 2)

	clock.Advance(2 * time.Second)

	if _, ok := c.Get("short"); ok {
		t.Error("Expected short-lived entry to expire")
	}
	if v, ok := c.Get("long"); !ok || v != 2 {
		t.Errorf("Get(long) = %v, %v; want 2, true", v, ok)
	}
}

func TestCacheDelete(t *testing.T) {
	c := New[string](1 * time.Minute)

	c.Set("key1", "value1")
	if !c.Delete("key1") {
		t.Error("Delete() = false for a present key")
	}
	if c.Delete("key1") {
		t.Error("Delete() = true for an absent key")
	}

	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be deleted")
	}
}

func TestCacheDeletePrefix(t *testing.T) {
	c := New[int](time.Minute)

	c.Set("rec:u1:10", 1)
	c.Set("rec:u1:20", 2)
	c.Set("rec:u10:10", 3)
	c.Set("rec:u2:10", 4)

	if removed := c.DeletePrefix("rec:u1:"); removed != 2 {
		t.Errorf("DeletePrefix() = %d, want 2", removed)
	}

	for _, key := range []string{"rec:u10:10", "rec:u2:10"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("Expected %s to survive prefix delete", key)
		}
	}
}

func TestCacheClear(t *testing.T) {
	c := New[string](1 * time.Minute)

	c.Set("key1", "value1")
	c.Set("key2", "value2")
	c.Set("key3", "value3")

	if n := c.Clear(); n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}

	for _, key := range []string{"key1", "key2", "key3"} {
		if _, exists := c.Get(key); exists {
			t.Errorf("Expected %s to be cleared", key)
		}
	}

	stats := c.GetStats()
	if stats.TotalKeys != 0 {
		t.Errorf("TotalKeys = %d, want 0", stats.TotalKeys)
	}
	if stats.Evictions != 3 {
		t.Errorf("Evictions = %d, want 3", stats.Evictions)
	}
}

func TestCacheRangeSkipsExpired(t *testing.T) {
	clock := newFakeClock()
	c := New[int](time.Minute, WithClock(clock.Now))

	c.Set("a", 1)
	c.SetWithTTL("b", 2, time.Second)
	c.Set("c", 3)

	clock.Advance(2 * time.Second)

	var keys []string
	c.Range(func(key string, _ int) bool {
		keys = append(keys, key)
		return true
	})
	sort.Strings(keys)

	if fmt.Sprint(keys) != "[a c]" {
		t.Errorf("Range keys = %v, want [a c]", keys)
	}
}

func TestCacheRangeStopsEarly(t *testing.T) {
	c := New[int](time.Minute)
	for i := 0; i < 10; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}

	visited := 0
	c.Range(func(string, int) bool {
		visited++
		return visited < 3
	})

	if visited != 3 {
		t.Errorf("visited = %d, want 3", visited)
	}
}

func TestCacheRangeAllowsReentry(t *testing.T) {
	c := New[int](time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Range(func(key string, _ int) bool {
		c.Delete(key)
		return true
	})

	if c.Len() != 0 {
		t.Errorf("Len() = %d after deleting inside Range", c.Len())
	}
}

func TestCachePurgeExpired(t *testing.T) {
	clock := newFakeClock()
	c := New[int](time.Minute, WithClock(clock.Now))

	c.Set("old1", 1)
	c.Set("old2", 2)
	clock.Advance(30 * time.Second)
	c.Set("fresh", 3)
	clock.Advance(45 * time.Second)

	if removed := c.PurgeExpired(); removed != 2 {
		t.Errorf("PurgeExpired() = %d, want 2", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if got := c.GetStats().LastCleanup; !got.Equal(clock.Now()) {
		t.Errorf("LastCleanup = %v, want %v", got, clock.Now())
	}
}

func TestCacheStats(t *testing.T) {
	c := New[string](1 * time.Minute)

	c.Set("key1", "value1")

	c.Get("key1")
	c.Get("key1")
	c.Get("missing")

	stats := c.GetStats()
	if stats.Hits != 2 {
		t.Errorf("Expected 2 hits, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Expected 1 miss, got %d", stats.Misses)
	}
	if stats.TotalKeys != 1 {
		t.Errorf("Expected 1 key, got %d", stats.TotalKeys)
	}

	hitRate := c.HitRate()
	expected := 2.0 / 3.0 * 100.0
	if hitRate < expected-0.01 || hitRate > expected+0.01 {
		t.Errorf("Expected hit rate %.2f%%, got %.2f%%", expected, hitRate)
	}
}

func TestCacheHitRateEmpty(t *testing.T) {
	c := New[string](time.Minute)
	if c.HitRate() != 0 {
		t.Errorf("HitRate() = %v on empty cache, want 0", c.HitRate())
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := New[int](1 * time.Minute)
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d-%d", id, j)
				c.Set(key, j)
				c.Get(key)
				if j%10 == 0 {
					c.Range(func(string, int) bool { return true })
				}
			}
		}(i)
	}

	wg.Wait()

	if c.Len() != 1000 {
		t.Errorf("Len() = %d, want 1000", c.Len())
	}
}

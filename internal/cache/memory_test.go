package cache

import (
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache[string](time.Minute, time.Minute)

	c.Set("a", "alpha", DefaultTTL)

	got, ok := c.Get("a")
	if !ok || got != "alpha" {
		t.Errorf("Get(a) = (%q, %v); want (alpha, true)", got, ok)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d; want 1", c.Len())
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	c := NewMemoryCache[int](20*time.Millisecond, time.Hour)

	c.Set("k", 1, DefaultTTL)
	time.Sleep(40 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("expected key to expire")
	}
}

func TestMemoryCache_NoExpiration(t *testing.T) {
	c := NewMemoryCache[int](0, time.Hour)

	c.Set("k", 1, DefaultTTL)
	time.Sleep(10 * time.Millisecond)

	if _, ok := c.Get("k"); !ok {
		t.Error("expected key to survive with expiration disabled")
	}
}

func TestMemoryCache_Touch(t *testing.T) {
	c := NewMemoryCache[int](60*time.Millisecond, time.Hour)

	c.Set("k", 1, DefaultTTL)
	time.Sleep(40 * time.Millisecond)
	if !c.Touch("k") {
		t.Fatal("Touch() = false for a live key")
	}
	time.Sleep(40 * time.Millisecond)

	if _, ok := c.Get("k"); !ok {
		t.Error("expected Touch to extend the deadline")
	}
	if c.Touch("missing") {
		t.Error("Touch() = true for a missing key")
	}
}

func TestMemoryCache_DeleteClear(t *testing.T) {
	c := NewMemoryCache[int](time.Minute, time.Minute)

	var evicted []string
	c.OnEvicted(func(key string, _ int) {
		evicted = append(evicted, key)
	})

	c.Set("a", 1, DefaultTTL)
	c.Set("b", 2, DefaultTTL)
	c.Delete("a")

	if _, ok := c.Get("a"); ok {
		t.Error("expected a to be deleted")
	}
	if len(evicted) != 1 || evicted[0] != "a" {
		t.Errorf("evicted = %v; want [a]", evicted)
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Clear; want 0", c.Len())
	}
}

func TestMemoryCache_TouchDoesNotResurrect(t *testing.T) {
	c := NewMemoryCache[int](time.Minute, time.Minute)

	c.Set("k", 1, DefaultTTL)
	c.Delete("k")

	if c.Touch("k") {
		t.Error("Touch() = true for a deleted key")
	}
	if _, ok := c.Get("k"); ok {
		t.Error("Touch must not bring a deleted key back")
	}
}

func TestMemoryCache_TouchConcurrentDelete(t *testing.T) {
	c := NewMemoryCache[int](time.Minute, time.Minute)

	for i := 0; i < 200; i++ {
		c.Set("k", i, DefaultTTL)

		done := make(chan struct{})
		go func() {
			c.Touch("k")
			close(done)
		}()
		c.Delete("k")
		<-done

		// Whichever ran first, the key must be gone once both finish
		if _, ok := c.Get("k"); ok {
			t.Fatalf("iteration %d: Touch re-inserted a deleted key", i)
		}
	}
}

func TestMemoryCache_Add(t *testing.T) {
	c := NewMemoryCache[string](time.Minute, time.Minute)

	if !c.Add("k", "first", DefaultTTL) {
		t.Fatal("Add() = false for an absent key")
	}
	if c.Add("k", "second", DefaultTTL) {
		t.Error("Add() = true for a present key")
	}
	if got, _ := c.Get("k"); got != "first" {
		t.Errorf("Get() = %q; want first", got)
	}
}

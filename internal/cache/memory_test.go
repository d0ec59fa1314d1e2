// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func newTestMemoryCache(t *testing.T) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(MemoryOptions{DefaultTTL: time.Hour})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestMemoryCache_BasicOperations(t *testing.T) {
	c := newTestMemoryCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "key1", []byte("value1"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := c.Get(ctx, "key1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(val) != "value1" {
		t.Errorf("expected value1, got %s", string(val))
	}

	// Returned slices must not alias the stored value
	val[0] = 'X'
	again, _ := c.Get(ctx, "key1")
	if string(again) != "value1" {
		t.Errorf("stored value was mutated: %s", again)
	}

	if err := c.Delete(ctx, "key1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := c.Get(ctx, "key1"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := newTestMemoryCache(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "k", []byte("v"), time.Minute)

	now = now.Add(59 * time.Second)
	if _, err := c.Get(ctx, "k"); err != nil {
		t.Fatalf("expected hit before expiry, got %v", err)
	}

	now = now.Add(2 * time.Second)
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss after expiry, got %v", err)
	}
}

func TestMemoryCache_DeleteByPrefix(t *testing.T) {
	c := newTestMemoryCache(t)
	ctx := context.Background()

	for _, k := range []string{"news:en:10", "news:am:10", "blog:en:10"} {
		_ = c.Set(ctx, k, []byte("x"), 0)
	}

	if err := c.DeleteByPrefix(ctx, "news:"); err != nil {
		t.Fatalf("DeleteByPrefix failed: %v", err)
	}

	if _, err := c.Get(ctx, "news:en:10"); !errors.Is(err, ErrCacheMiss) {
		t.Error("news:en:10 survived prefix delete")
	}
	if _, err := c.Get(ctx, "blog:en:10"); err != nil {
		t.Errorf("blog:en:10 should remain, got %v", err)
	}
}

func TestMemoryCache_ClearAndStats(t *testing.T) {
	c := newTestMemoryCache(t)
	ctx := context.Background()

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	_, _ = c.Get(ctx, "a")
	_, _ = c.Get(ctx, "missing")

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 || s.Sets != 2 || s.Items != 2 {
		t.Errorf("unexpected stats: %+v", s)
	}
	if s.HitRate != 50 {
		t.Errorf("HitRate = %v, want 50", s.HitRate)
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if got := c.Stats().Items; got != 0 {
		t.Errorf("Items after Clear = %d, want 0", got)
	}
}

func TestMemoryCache_Closed(t *testing.T) {
	c := NewMemoryCache(MemoryOptions{DefaultTTL: time.Minute, CleanupInterval: time.Millisecond})
	_ = c.Close()
	_ = c.Close()

	ctx := context.Background()
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Get on closed cache: %v", err)
	}
	if err := c.Set(ctx, "k", nil, 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set on closed cache: %v", err)
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	c := newTestMemoryCache(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i%5))
			_ = c.Set(ctx, key, []byte{byte(i)}, 0)
			_, _ = c.Get(ctx, key)
			_ = c.DeleteByPrefix(ctx, "z")
		}(i)
	}
	wg.Wait()
}

func TestTyped(t *testing.T) {
	c := newTestMemoryCache(t)
	ctx := context.Background()

	type item struct {
		Title string `json:"title"`
	}
	typed := NewTyped[[]item](c, time.Minute)

	if _, ok := typed.Get(ctx, "news:en"); ok {
		t.Fatal("expected miss on empty cache")
	}
	if err := typed.Set(ctx, "news:en", []item{{Title: "Open day"}}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, ok := typed.Get(ctx, "news:en")
	if !ok || len(got) != 1 || got[0].Title != "Open day" {
		t.Errorf("Get = %+v, %v", got, ok)
	}

	if err := typed.Invalidate(ctx, "news:"); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if _, ok := typed.Get(ctx, "news:en"); ok {
		t.Error("expected miss after Invalidate")
	}

	// Corrupt bytes read as a miss
	_ = c.Set(ctx, "news:bad", []byte("{"), 0)
	if _, ok := typed.Get(ctx, "news:bad"); ok {
		t.Error("expected miss for undecodable value")
	}
}

func TestTyped_NilIsNoop(t *testing.T) {
	var typed *Typed[string]
	if NewTyped[string](nil, time.Minute) != nil {
		t.Fatal("NewTyped(nil) should return nil")
	}
	ctx := context.Background()
	if err := typed.Set(ctx, "k", "v"); err != nil {
		t.Errorf("Set on nil: %v", err)
	}
	if _, ok := typed.Get(ctx, "k"); ok {
		t.Error("Get on nil reported a hit")
	}
	if err := typed.Invalidate(ctx, "k"); err != nil {
		t.Errorf("Invalidate on nil: %v", err)
	}
}

func TestNew_MemoryWhenNoURL(t *testing.T) {
	c, err := New(context.Background(), Config{DefaultTTL: time.Minute})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer func() { _ = c.Close() }()
	if _, ok := c.(*MemoryCache); !ok {
		t.Errorf("expected *MemoryCache, got %T", c)
	}
}

func TestNew_BadRedisURL(t *testing.T) {
	if _, err := New(context.Background(), Config{RedisURL: "not a url"}); err == nil {
		t.Error("expected error for invalid redis URL")
	}
}

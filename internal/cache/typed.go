// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Typed wraps a Cache with JSON encoding for a single value type.
// A nil *Typed is valid and never caches anything.
type Typed[T any] struct {
	cache Cache
	ttl   time.Duration
}

// NewTyped returns a Typed view over c. It returns nil when c is nil.
func NewTyped[T any](c Cache, ttl time.Duration) *Typed[T] {
	if c == nil {
		return nil
	}
	return &Typed[T]{cache: c, ttl: ttl}
}

// Get reports whether key held a decodable value.
func (t *Typed[T]) Get(ctx context.Context, key string) (T, bool) {
	var value T
	if t == nil {
		return value, false
	}
	data, err := t.cache.Get(ctx, key)
	if err != nil {
		return value, false
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, false
	}
	return value, true
}

func (t *Typed[T]) Set(ctx context.Context, key string, value T) error {
	if t == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return t.cache.Set(ctx, key, data, t.ttl)
}

func (t *Typed[T]) Delete(ctx context.Context, key string) error {
	if t == nil {
		return nil
	}
	return t.cache.Delete(ctx, key)
}

// Invalidate drops all keys under prefix.
func (t *Typed[T]) Invalidate(ctx context.Context, prefix string) error {
	if t == nil {
		return nil
	}
	return t.cache.DeleteByPrefix(ctx, prefix)
}

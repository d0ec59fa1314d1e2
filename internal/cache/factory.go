// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Config selects and tunes the cache backend.
type Config struct {
	RedisURL   string // empty selects the memory backend
	Prefix     string
	DefaultTTL time.Duration
}

// New returns a Redis cache when a URL is configured and an in-process
// cache otherwise.
func New(ctx context.Context, cfg Config) (Cache, error) {
	if cfg.RedisURL != "" {
		c, err := NewRedisCache(ctx, RedisOptions{
			URL:            cfg.RedisURL,
			Prefix:         cfg.Prefix,
			DefaultTTL:     cfg.DefaultTTL,
			ConnectTimeout: 5 * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		slog.Info("using redis cache", "prefix", cfg.Prefix)
		return c, nil
	}

	slog.Info("using memory cache", "ttl", cfg.DefaultTTL)
	return NewMemoryCache(MemoryOptions{
		DefaultTTL:      cfg.DefaultTTL,
		CleanupInterval: time.Minute,
	}), nil
}

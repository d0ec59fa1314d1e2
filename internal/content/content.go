// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content implements the repositories behind the public site and
// the admin panel: news, blog posts, vacancies, contact messages and the
// read-only showcase lists.
//
// Every mutating operation (and every read of unpublished rows) requires
// an auth.Identity on the context. Bilingual fields resolve to the Amharic
// value when one is present and fall back to English otherwise.
package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/olegiv/brightside-go/internal/auth"
	"github.com/olegiv/brightside-go/internal/cache"
	"github.com/olegiv/brightside-go/internal/i18n"
	"github.com/olegiv/brightside-go/internal/store"
	"github.com/olegiv/brightside-go/internal/util"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrSlugConflict    = errors.New("slug already in use")
)

// ValidationError names the offending field. It matches ErrValidation
// under errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func required(field string) error {
	return invalid(field, "is required")
}

// ListOptions controls List on the content repositories.
type ListOptions struct {
	Language      i18n.Lang
	Limit         int // <= 0 means no limit
	PublishedOnly bool
}

// Options carries the collaborators shared by the repositories.
type Options struct {
	// UploadsDir is where "/uploads/..." image paths live on disk.
	UploadsDir string
	// Cache is optional; nil disables caching of public listings.
	Cache    cache.Cache
	CacheTTL time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func requireIdentity(ctx context.Context) (auth.Identity, error) {
	id, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return auth.Identity{}, ErrUnauthenticated
	}
	return id, nil
}

// canSeeUnpublished reports whether the caller is signed in.
func canSeeUnpublished(ctx context.Context) bool {
	_, ok := auth.IdentityFromContext(ctx)
	return ok
}

func checkListAccess(ctx context.Context, opts ListOptions) error {
	if !opts.PublishedOnly && !canSeeUnpublished(ctx) {
		return ErrUnauthenticated
	}
	return nil
}

// slugFor derives the slug for title or reports a validation error when
// nothing usable remains.
func slugFor(title string) (string, error) {
	slug := util.Slugify(title)
	if slug == "" {
		return "", invalid("title", "must contain letters or digits")
	}
	return slug, nil
}

// mapWriteError turns store failures into repository errors.
func mapWriteError(op string, err error) error {
	if store.IsUniqueViolation(err) {
		return ErrSlugConflict
	}
	return fmt.Errorf("%s: %w", op, err)
}

func localize(lang i18n.Lang, am *string, en string) string {
	if lang == i18n.Amharic && am != nil && strings.TrimSpace(*am) != "" {
		return *am
	}
	return en
}

// mergeText applies an optional patch value to a required field.
func mergeText(field string, patch *string, current string) (string, error) {
	if patch == nil {
		return current, nil
	}
	v := strings.TrimSpace(*patch)
	if v == "" {
		return "", required(field)
	}
	return v, nil
}

// listCache is the read-through cache for public listings. A fill that
// overlaps an invalidation is discarded, so a listing read before a write
// committed is never left behind after it.
type listCache[T any] struct {
	typed *cache.Typed[T]
	gen   atomic.Uint64
}

func newListCache[T any](opts Options) *listCache[T] {
	return &listCache[T]{typed: cache.NewTyped[T](opts.Cache, opts.CacheTTL)}
}

func (l *listCache[T]) get(ctx context.Context, key string) (T, bool) {
	return l.typed.Get(ctx, key)
}

// generation must be taken before the rows handed to fill are read.
func (l *listCache[T]) generation() uint64 {
	return l.gen.Load()
}

func (l *listCache[T]) fill(ctx context.Context, key string, gen uint64, v T) {
	if l.gen.Load() != gen {
		return
	}
	if err := l.typed.Set(ctx, key, v); err != nil {
		slog.Debug("cache set failed", "key", key, "error", err)
		return
	}
	// An invalidation that landed between the check and the Set.
	if l.gen.Load() != gen {
		if err := l.typed.Delete(ctx, key); err != nil {
			slog.Warn("cache delete failed", "key", key, "error", err)
		}
	}
}

func (l *listCache[T]) invalidate(ctx context.Context, prefix string) error {
	l.gen.Add(1)
	return l.typed.Invalidate(ctx, prefix)
}

// invalidateLogged is invalidate for write paths, where a cache failure
// must not fail the write.
func (l *listCache[T]) invalidateLogged(ctx context.Context, prefix string) {
	if err := l.invalidate(ctx, prefix); err != nil {
		slog.Warn("cache invalidation failed", "prefix", prefix, "error", err)
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers.
package testutil

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/olegiv/brightside-go/internal/auth"
	"github.com/olegiv/brightside-go/internal/store"
)

// TestSecret is a JWT secret that passes configuration validation.
const TestSecret = "test-secret-with-at-least-32-bytes!!"

// TestLogger creates a test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestDB creates a temporary sqlite database with migrations applied.
// It is closed automatically when the test finishes.
func TestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "brightside-test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

// TestUser inserts an admin user with the given password hash.
func TestUser(t *testing.T, q *store.Queries, username, passwordHash string) store.User {
	t.Helper()

	now := time.Now().UTC()
	u, err := q.CreateUser(context.Background(), store.CreateUserParams{
		Username:     username,
		PasswordHash: passwordHash,
		Email:        username + "@brightside.test",
		Role:         auth.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

// AuthContext returns a context carrying u as the signed-in identity.
func AuthContext(u store.User) context.Context {
	return auth.WithIdentity(context.Background(), auth.Identity{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	})
}

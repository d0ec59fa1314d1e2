// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// PasswordHasher hashes a plaintext password for storage.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// AdminSeed describes the bootstrap administrator.
type AdminSeed struct {
	Username string
	Password string
	Email    string
}

// Seed creates the bootstrap administrator when no user with that
// username exists yet.
func Seed(ctx context.Context, q *Queries, hasher PasswordHasher, admin AdminSeed) error {
	_, err := q.GetUserByUsername(ctx, admin.Username)
	if err == nil {
		slog.Info("admin user already exists, skipping seed", "username", admin.Username)
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := hasher.Hash(admin.Password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	user, err := q.CreateUser(ctx, CreateUserParams{
		Username:     admin.Username,
		PasswordHash: passwordHash,
		Email:        admin.Email,
		Role:         "admin",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user", "id", user.ID, "username", user.Username, "email", user.Email)
	return nil
}

// ResetPassword sets a new password for username, creating the account
// as an admin when it does not exist.
func ResetPassword(ctx context.Context, q *Queries, hasher PasswordHasher, admin AdminSeed) (created bool, err error) {
	passwordHash, err := hasher.Hash(admin.Password)
	if err != nil {
		return false, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	user, err := q.GetUserByUsername(ctx, admin.Username)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := q.CreateUser(ctx, CreateUserParams{
			Username:     admin.Username,
			PasswordHash: passwordHash,
			Email:        admin.Email,
			Role:         "admin",
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			return false, fmt.Errorf("creating user: %w", err)
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("loading user: %w", err)
	}

	if err := q.UpdateUserPassword(ctx, user.ID, passwordHash, now); err != nil {
		return false, fmt.Errorf("updating password: %w", err)
	}
	return false, nil
}

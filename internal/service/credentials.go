// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides the credential workflow (login, password
// change, session lookup) and event-log maintenance.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/brightside-go/internal/auth"
	"github.com/olegiv/brightside-go/internal/content"
	"github.com/olegiv/brightside-go/internal/store"
)

// ErrCredentialMismatch covers both an unknown username and a wrong
// password so callers cannot tell the two apart.
var ErrCredentialMismatch = errors.New("invalid credentials")

// MinPasswordLength applies to new passwords.
const MinPasswordLength = 8

// Session is the result of a successful login.
type Session struct {
	User      auth.Identity
	Token     string
	ExpiresAt time.Time
}

// Credentials verifies passwords and issues session tokens.
type Credentials struct {
	q         *store.Queries
	hasher    *auth.Hasher
	codec     *auth.TokenCodec
	now       func() time.Time
	dummyHash string
}

func NewCredentials(q *store.Queries, hasher *auth.Hasher, codec *auth.TokenCodec) (*Credentials, error) {
	// Verified against for unknown usernames so both failure paths cost
	// one argon2 computation.
	dummy, err := hasher.Hash("brightside-timing-equalizer")
	if err != nil {
		return nil, fmt.Errorf("preparing dummy hash: %w", err)
	}
	return &Credentials{
		q:         q,
		hasher:    hasher,
		codec:     codec,
		now:       time.Now,
		dummyHash: dummy,
	}, nil
}

func (c *Credentials) Login(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Session{}, &content.ValidationError{Field: "username", Reason: "is required"}
	}
	if password == "" {
		return Session{}, &content.ValidationError{Field: "password", Reason: "is required"}
	}

	user, err := c.q.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_, _ = c.hasher.Verify(password, c.dummyHash)
			slog.Warn("login failed: unknown user", "username", username)
			return Session{}, ErrCredentialMismatch
		}
		return Session{}, fmt.Errorf("loading user: %w", err)
	}

	ok, err := c.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		slog.Error("stored password hash is unreadable", "user_id", user.ID, "error", err)
		return Session{}, ErrCredentialMismatch
	}
	if !ok {
		slog.Warn("login failed: invalid password", "username", username, "user_id", user.ID)
		return Session{}, ErrCredentialMismatch
	}

	if c.hasher.NeedsRehash(user.PasswordHash) {
		c.rehash(ctx, user.ID, password)
	}

	identity := auth.Identity{ID: user.ID, Username: user.Username, Email: user.Email, Role: user.Role}
	token, expiresAt, err := c.codec.Issue(identity)
	if err != nil {
		return Session{}, fmt.Errorf("issuing token: %w", err)
	}

	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)
	return Session{User: identity, Token: token, ExpiresAt: expiresAt}, nil
}

func (c *Credentials) rehash(ctx context.Context, userID int64, password string) {
	hash, err := c.hasher.Hash(password)
	if err == nil {
		err = c.q.UpdateUserPassword(ctx, userID, hash, c.now().UTC())
	}
	if err != nil {
		slog.Error("failed to re-hash password", "error", err, "user_id", userID)
		return
	}
	slog.Info("password re-hashed with updated parameters", "user_id", userID)
}

// ChangePassword replaces the signed-in user's password after checking
// the current one. A failed check leaves the stored hash untouched.
func (c *Credentials) ChangePassword(ctx context.Context, current, next string) error {
	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return content.ErrUnauthenticated
	}
	if current == "" {
		return &content.ValidationError{Field: "currentPassword", Reason: "is required"}
	}
	if next == "" {
		return &content.ValidationError{Field: "newPassword", Reason: "is required"}
	}
	if len([]rune(next)) < MinPasswordLength {
		return &content.ValidationError{
			Field:  "newPassword",
			Reason: fmt.Sprintf("must be at least %d characters", MinPasswordLength),
		}
	}

	user, err := c.q.GetUserByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Token outlived its account.
			return content.ErrUnauthenticated
		}
		return fmt.Errorf("loading user: %w", err)
	}

	ok, err = c.hasher.Verify(current, user.PasswordHash)
	if err != nil || !ok {
		slog.Warn("password change rejected: current password mismatch", "user_id", user.ID)
		return ErrCredentialMismatch
	}

	hash, err := c.hasher.Hash(next)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := c.q.UpdateUserPassword(ctx, user.ID, hash, c.now().UTC()); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	slog.Info("password changed", "user_id", user.ID)
	return nil
}

// CurrentUser resolves a session token to its identity.
func (c *Credentials) CurrentUser(token string) (auth.Identity, error) {
	identity, err := c.codec.Verify(token)
	if err != nil {
		return auth.Identity{}, content.ErrUnauthenticated
	}
	return identity, nil
}

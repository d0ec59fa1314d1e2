// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is how long an issued session token stays valid.
const TokenTTL = 24 * time.Hour

const tokenIssuer = "brightside"

// ErrInvalidToken is returned for malformed, tampered and expired tokens
// alike; callers cannot tell them apart.
var ErrInvalidToken = errors.New("invalid session token")

// TokenCodec issues and verifies HMAC-signed session tokens.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption customizes a TokenCodec.
type TokenOption func(*TokenCodec)

// WithClock overrides the time source.
func WithClock(now func() time.Time) TokenOption {
	return func(c *TokenCodec) { c.now = now }
}

// WithTTL overrides the token lifetime.
func WithTTL(ttl time.Duration) TokenOption {
	return func(c *TokenCodec) { c.ttl = ttl }
}

// NewTokenCodec returns a codec signing with secret.
func NewTokenCodec(secret []byte, opts ...TokenOption) *TokenCodec {
	c := &TokenCodec{
		secret: append([]byte(nil), secret...),
		ttl:    TokenTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type sessionClaims struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a token for id and returns it with its expiry.
func (c *TokenCodec) Issue(id Identity) (string, time.Time, error) {
	now := c.now()
	expiresAt := now.Add(c.ttl)

	claims := sessionClaims{
		ID:       id.ID,
		Username: id.Username,
		Email:    id.Email,
		Role:     id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatInt(id.ID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks the signature and expiry of token and returns the identity
// it carries.
func (c *TokenCodec) Verify(token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrInvalidToken
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid || claims.ID <= 0 {
		return Identity{}, ErrInvalidToken
	}

	return Identity{
		ID:       claims.ID,
		Username: claims.Username,
		Email:    claims.Email,
		Role:     claims.Role,
	}, nil
}

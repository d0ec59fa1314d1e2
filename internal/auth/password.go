// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth provides keyed password hashing, the signed session token
// codec, and the request identity carried through handlers.
package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2 parameters (OWASP recommended second choice: m=19456, t=2, p=1)
const (
	Argon2Time    = 2
	Argon2Memory  = 19 * 1024
	Argon2Threads = 1
	Argon2KeyLen  = 32
	Argon2SaltLen = 16
)

// ErrMalformedHash is returned when a stored hash cannot be decoded.
var ErrMalformedHash = errors.New("malformed password hash")

// Hasher produces and checks keyed argon2id hashes. The password is first
// run through HMAC-SHA256 with a server-held pepper, so a leaked users
// table alone is not enough to mount an offline guess.
type Hasher struct {
	pepper []byte
	params argonParams
}

// HasherOption configures a Hasher.
type HasherOption func(*Hasher)

// WithCost overrides the argon2id cost parameters (memory in KiB).
// Hashes made with other parameters are reported by NeedsRehash.
func WithCost(time, memory uint32, threads uint8) HasherOption {
	return func(h *Hasher) {
		h.params = argonParams{time: time, memory: memory, threads: threads}
	}
}

// NewHasher returns a Hasher keyed with pepper.
func NewHasher(pepper []byte, opts ...HasherOption) *Hasher {
	p := make([]byte, len(pepper))
	copy(p, pepper)
	h := &Hasher{
		pepper: p,
		params: argonParams{time: Argon2Time, memory: Argon2Memory, threads: Argon2Threads},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Hasher) keyed(password string) []byte {
	mac := hmac.New(sha256.New, h.pepper)
	mac.Write([]byte(password))
	return mac.Sum(nil)
}

// Hash returns the encoded hash of password in the form
// $argon2id$v=19$m=<memory>,t=<time>,p=<threads>$salt$hash.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, Argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	p := h.params
	sum := argon2.IDKey(h.keyed(password), salt, p.time, p.memory, p.threads, Argon2KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.memory, p.time, p.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum)), nil
}

// Verify reports whether password matches encodedHash.
func (h *Hasher) Verify(password, encodedHash string) (bool, error) {
	params, salt, want, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	got := argon2.IDKey(h.keyed(password), salt, params.time, params.memory, params.threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// NeedsRehash reports whether encodedHash was made with parameters other
// than the hasher's own.
func (h *Hasher) NeedsRehash(encodedHash string) bool {
	params, _, _, err := decodeHash(encodedHash)
	if err != nil {
		return true
	}
	return params != h.params
}

type argonParams struct {
	memory  uint32
	time    uint32
	threads uint8
}

func decodeHash(encodedHash string) (argonParams, []byte, []byte, error) {
	var p argonParams

	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return p, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, fmt.Errorf("%w: version %q", ErrMalformedHash, parts[2])
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return p, nil, nil, fmt.Errorf("%w: parameters: %v", ErrMalformedHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}

	sum, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(sum) == 0 {
		return p, nil, nil, fmt.Errorf("%w: hash", ErrMalformedHash)
	}

	return p, salt, sum, nil
}

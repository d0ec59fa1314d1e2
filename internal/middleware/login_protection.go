// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/olegiv/brightside-go/internal/i18n"
)

const maxLockout = 24 * time.Hour

// LoginProtection combines a per-IP request rate limit with a per-username
// lockout that doubles in length each time it is triggered.
type LoginProtection struct {
	ipLimiters *limiterCache[string]

	mu       sync.Mutex
	attempts map[string]*loginAttempt

	maxFailedAttempts int
	lockoutDuration   time.Duration
	attemptWindow     time.Duration

	now  func() time.Time
	stop chan struct{}
	once sync.Once
}

type loginAttempt struct {
	count       int
	firstFailed time.Time
	lockedUntil time.Time
	lockouts    int
}

// LoginProtectionConfig holds configuration for login protection.
type LoginProtectionConfig struct {
	IPRateLimit       float64       // requests per second per IP
	IPBurst           int
	MaxFailedAttempts int           // failures within AttemptWindow before a lockout
	LockoutDuration   time.Duration // first lockout; doubles on each repeat, capped at 24h
	AttemptWindow     time.Duration
}

// DefaultLoginProtectionConfig returns the production settings.
func DefaultLoginProtectionConfig() LoginProtectionConfig {
	return LoginProtectionConfig{
		IPRateLimit:       0.5,
		IPBurst:           5,
		MaxFailedAttempts: 5,
		LockoutDuration:   15 * time.Minute,
		AttemptWindow:     15 * time.Minute,
	}
}

// NewLoginProtection starts a background sweeper; call Close to stop it.
func NewLoginProtection(cfg LoginProtectionConfig) *LoginProtection {
	def := DefaultLoginProtectionConfig()
	if cfg.IPRateLimit <= 0 {
		cfg.IPRateLimit = def.IPRateLimit
	}
	if cfg.IPBurst <= 0 {
		cfg.IPBurst = def.IPBurst
	}
	if cfg.MaxFailedAttempts <= 0 {
		cfg.MaxFailedAttempts = def.MaxFailedAttempts
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = def.LockoutDuration
	}
	if cfg.AttemptWindow <= 0 {
		cfg.AttemptWindow = def.AttemptWindow
	}

	lp := &LoginProtection{
		ipLimiters:        newLimiterCache[string](cfg.IPRateLimit, cfg.IPBurst),
		attempts:          make(map[string]*loginAttempt),
		maxFailedAttempts: cfg.MaxFailedAttempts,
		lockoutDuration:   cfg.LockoutDuration,
		attemptWindow:     cfg.AttemptWindow,
		now:               time.Now,
		stop:              make(chan struct{}),
	}
	go lp.sweep(10 * time.Minute)
	return lp
}

// Close stops the background sweeper.
func (lp *LoginProtection) Close() {
	lp.once.Do(func() { close(lp.stop) })
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// IsLocked reports whether username is locked out and for how much longer.
func (lp *LoginProtection) IsLocked(username string) (bool, time.Duration) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	a, ok := lp.attempts[normalizeUsername(username)]
	if !ok {
		return false, 0
	}
	if remaining := a.lockedUntil.Sub(lp.now()); remaining > 0 {
		return true, remaining
	}
	return false, 0
}

// RecordFailure counts a failed login. It reports whether the account is now
// locked and for how long.
func (lp *LoginProtection) RecordFailure(username string) (bool, time.Duration) {
	key := normalizeUsername(username)
	now := lp.now()

	lp.mu.Lock()
	defer lp.mu.Unlock()

	a, ok := lp.attempts[key]
	if !ok {
		lp.attempts[key] = &loginAttempt{count: 1, firstFailed: now}
		return false, 0
	}
	if now.Sub(a.firstFailed) > lp.attemptWindow {
		a.count = 1
		a.firstFailed = now
		return false, 0
	}

	a.count++
	if a.count < lp.maxFailedAttempts {
		return false, 0
	}

	lock := lp.lockoutDuration
	for i := 0; i < a.lockouts && lock < maxLockout; i++ {
		lock *= 2
	}
	lock = min(lock, maxLockout)

	a.lockedUntil = now.Add(lock)
	a.lockouts++
	a.count = 0

	slog.Warn("account locked after failed logins",
		"username", key,
		"lockouts", a.lockouts,
		"duration", lock,
		"category", "auth",
	)
	return true, lock
}

// RecordSuccess forgets the failure history of username.
func (lp *LoginProtection) RecordSuccess(username string) {
	lp.mu.Lock()
	delete(lp.attempts, normalizeUsername(username))
	lp.mu.Unlock()
}

// RemainingAttempts returns how many failures are left before a lockout.
func (lp *LoginProtection) RemainingAttempts(username string) int {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	a, ok := lp.attempts[normalizeUsername(username)]
	if !ok || lp.now().Sub(a.firstFailed) > lp.attemptWindow {
		return lp.maxFailedAttempts
	}
	return max(lp.maxFailedAttempts-a.count, 0)
}

func (lp *LoginProtection) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-lp.stop:
			return
		case <-ticker.C:
			lp.removeStale()
		}
	}
}

func (lp *LoginProtection) removeStale() {
	if lp.ipLimiters.clearIfExceeds(10000) {
		slog.Info("cleared login rate limiters due to size")
	}

	now := lp.now()
	lp.mu.Lock()
	for key, a := range lp.attempts {
		if now.After(a.lockedUntil) && now.Sub(a.firstFailed) > lp.attemptWindow {
			delete(lp.attempts, key)
		}
	}
	lp.mu.Unlock()
}

// Middleware rate limits POST requests per client IP.
func (lp *LoginProtection) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}

		ip := clientIP(r)
		if !lp.ipLimiters.get(ip).Allow() {
			slog.Warn("login rate limit exceeded", "ip", ip, "category", "auth")
			WriteError(w, http.StatusTooManyRequests, i18n.T(GetLanguage(r), "error.too_many_requests"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

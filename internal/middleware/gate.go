// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// login protection and request context handling.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/brightside-go/internal/auth"
	"github.com/olegiv/brightside-go/internal/i18n"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "brightside_auth"

// SetSessionCookie stores token in an http-only cookie that lives as long
// as the token itself.
func SetSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenTTL / time.Second),
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie in the browser.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionToken returns the raw token from the request cookie, if any.
func SessionToken(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// LoadIdentity verifies the session cookie and, when it is valid, stores the
// identity on the request context. It never rejects a request.
func LoadIdentity(codec *auth.TokenCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := SessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := codec.Verify(token)
			if err != nil {
				slog.Debug("ignoring invalid session cookie", "path", r.URL.Path, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

// SessionGate protects the pages under prefix. Requests without a verified
// identity are redirected to loginPath, which itself stays reachable. A
// cookie that failed verification is cleared on the way out.
// Must run after LoadIdentity.
func SessionGate(prefix, loginPath string, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if !strings.HasPrefix(path, prefix) || path == loginPath {
				next.ServeHTTP(w, r)
				return
			}

			if _, ok := auth.IdentityFromContext(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}

			if SessionToken(r) != "" {
				slog.Warn("session gate rejected token",
					"path", path,
					"ip", clientIP(r),
					"category", "auth",
				)
				ClearSessionCookie(w, secure)
			}
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
		})
	}
}

// RequireIdentity answers 401 with a JSON error when no verified identity is
// on the context. Must run after LoadIdentity.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.IdentityFromContext(r.Context()); !ok {
			WriteError(w, http.StatusUnauthorized, i18n.T(GetLanguage(r), "error.unauthenticated"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

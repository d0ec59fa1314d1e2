// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"
	"net/url"

	"filippo.io/csrf/gorilla"

	"github.com/olegiv/brightside-go/internal/i18n"
)

// CSRF rejects cross-origin state-changing requests using Fetch metadata.
// allowedOrigins are the frontend origins (scheme://host[:port]) that may
// call the API with credentials; they are trusted by host.
func CSRF(authKey []byte, allowedOrigins []string) func(http.Handler) http.Handler {
	opts := []csrf.Option{csrf.ErrorHandler(http.HandlerFunc(csrfFailed))}
	if hosts := originHosts(allowedOrigins); len(hosts) > 0 {
		opts = append(opts, csrf.TrustedOrigins(hosts))
	}
	return csrf.Protect(authKey, opts...)
}

// originHosts reduces origins to the host-only form the csrf package expects.
func originHosts(origins []string) []string {
	hosts := make([]string, 0, len(origins))
	for _, o := range origins {
		if o == "*" {
			continue
		}
		u, err := url.Parse(o)
		if err != nil || u.Host == "" {
			continue
		}
		hosts = append(hosts, u.Host)
	}
	return hosts
}

func csrfFailed(w http.ResponseWriter, r *http.Request) {
	reason := "unknown"
	if err := csrf.FailureReason(r); err != nil {
		reason = err.Error()
	}
	slog.Warn("cross-origin request rejected",
		"reason", reason,
		"method", r.Method,
		"path", r.URL.Path,
		"origin", r.Header.Get("Origin"),
		"sec_fetch_site", r.Header.Get("Sec-Fetch-Site"),
		"category", "auth",
	)
	WriteError(w, http.StatusForbidden, i18n.T(GetLanguage(r), "error.forbidden"))
}

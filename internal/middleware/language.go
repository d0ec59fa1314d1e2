// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"

	"github.com/olegiv/brightside-go/internal/i18n"
)

type languageKey struct{}

// Language picks the language for response messages: the ?language query
// parameter when it names a supported language, otherwise the best match
// for Accept-Language.
func Language(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := i18n.Default
		if q := r.URL.Query().Get("language"); q != "" && i18n.IsSupported(q) {
			lang = i18n.Parse(q)
		} else if h := r.Header.Get("Accept-Language"); h != "" {
			lang = i18n.MatchAcceptLanguage(h)
		}
		ctx := context.WithValue(r.Context(), languageKey{}, lang)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetLanguage returns the language chosen by Language, or the default.
func GetLanguage(r *http.Request) i18n.Lang {
	if lang, ok := r.Context().Value(languageKey{}).(i18n.Lang); ok {
		return lang
	}
	return i18n.Default
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/olegiv/brightside-go/internal/auth"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef-gate")

func testCodec(now time.Time) *auth.TokenCodec {
	return auth.NewTokenCodec(testSecret, auth.WithClock(func() time.Time { return now }))
}

func issue(t *testing.T, codec *auth.TokenCodec) string {
	t.Helper()
	token, _, err := codec.Issue(auth.Identity{ID: 1, Username: "admin", Role: auth.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	return token
}

// gated wires LoadIdentity and SessionGate in front of a handler that
// reports which identity it saw.
func gated(codec *auth.TokenCodec) http.Handler {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := auth.IdentityFromContext(r.Context())
		_, _ = w.Write([]byte(id.Username))
	})
	return LoadIdentity(codec)(SessionGate("/admin", "/admin/login", false)(inner))
}

func request(path, token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	}
	return req
}

func TestSessionGate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := testCodec(now)
	valid := issue(t, codec)

	expired := issue(t, testCodec(now.Add(-25*time.Hour)))
	forged := issue(t, auth.NewTokenCodec([]byte("another-secret-another-secret-00000")))

	tests := []struct {
		name        string
		path        string
		token       string
		wantStatus  int
		wantBody    string
		wantCleared bool
	}{
		{"valid cookie passes", "/admin/news.html", valid, http.StatusOK, "admin", false},
		{"no cookie redirects", "/admin/news.html", "", http.StatusSeeOther, "", false},
		{"expired cookie redirects", "/admin/index.html", expired, http.StatusSeeOther, "", true},
		{"forged cookie redirects", "/admin", forged, http.StatusSeeOther, "", true},
		{"garbage cookie redirects", "/admin/x", "not-a-token", http.StatusSeeOther, "", true},
		{"login page is public", "/admin/login", "", http.StatusOK, "", false},
		{"outside prefix untouched", "/api/news", "", http.StatusOK, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			gated(codec).ServeHTTP(rec, request(tt.path, tt.token))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusSeeOther {
				if loc := rec.Header().Get("Location"); loc != "/admin/login" {
					t.Errorf("Location = %q, want /admin/login", loc)
				}
			} else if rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}

			cleared := false
			for _, c := range rec.Result().Cookies() {
				if c.Name == SessionCookieName && c.MaxAge < 0 {
					cleared = true
				}
			}
			if cleared != tt.wantCleared {
				t.Errorf("cookie cleared = %v, want %v", cleared, tt.wantCleared)
			}
		})
	}
}

func TestRequireIdentity(t *testing.T) {
	codec := testCodec(time.Now())
	h := LoadIdentity(codec)(Language(RequireIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, request("/api/auth/user", issue(t, codec)))
	if rec.Code != http.StatusNoContent {
		t.Errorf("valid token: status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, request("/api/auth/user?language=am", "bogus"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Error == "" || body.Error == "error.unauthenticated" {
		t.Errorf("error message = %q, want a translated message", body.Error)
	}
}

func TestSessionCookies(t *testing.T) {
	rec := httptest.NewRecorder()
	expires := time.Now().Add(auth.TokenTTL)
	SetSessionCookie(rec, "tok", expires, true)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != SessionCookieName || c.Value != "tok" {
		t.Errorf("cookie = %s=%s", c.Name, c.Value)
	}
	if !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteLaxMode || c.Path != "/" {
		t.Errorf("cookie attributes = %+v", c)
	}
	if c.MaxAge != 86400 {
		t.Errorf("MaxAge = %d, want 86400", c.MaxAge)
	}

	rec = httptest.NewRecorder()
	ClearSessionCookie(rec, false)
	c = rec.Result().Cookies()[0]
	if c.MaxAge >= 0 || c.Value != "" {
		t.Errorf("cleared cookie = %+v", c)
	}
}

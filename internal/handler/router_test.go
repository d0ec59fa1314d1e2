// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/brightside-go/internal/auth"
	"github.com/olegiv/brightside-go/internal/config"
	"github.com/olegiv/brightside-go/internal/content"
	"github.com/olegiv/brightside-go/internal/middleware"
	"github.com/olegiv/brightside-go/internal/render"
	"github.com/olegiv/brightside-go/internal/scheduler"
	"github.com/olegiv/brightside-go/internal/service"
	"github.com/olegiv/brightside-go/internal/store"
	"github.com/olegiv/brightside-go/internal/testutil"
)

type fakeJobs struct {
	ran []string
}

func (f *fakeJobs) Jobs() []scheduler.JobInfo {
	return []scheduler.JobInfo{{Name: "vacancy-expiry", Schedule: scheduler.VacancyExpirySchedule}}
}

func (f *fakeJobs) TriggerNow(_ context.Context, name string) error {
	if name != "vacancy-expiry" {
		return fmt.Errorf("%w: %s", scheduler.ErrJobNotFound, name)
	}
	f.ran = append(f.ran, name)
	return nil
}

type apiFixture struct {
	t      *testing.T
	router http.Handler
	codec  *auth.TokenCodec
	q      *store.Queries
	user   store.User
	token  string
	jobs   *fakeJobs
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	db := testutil.TestDB(t)
	q := store.New(db)
	hasher := auth.NewHasher([]byte(testutil.TestSecret))
	codec := auth.NewTokenCodec([]byte(testutil.TestSecret))

	hash, err := hasher.Hash("admin123")
	require.NoError(t, err)
	user := testutil.TestUser(t, q, "admin", hash)

	creds, err := service.NewCredentials(q, hasher, codec)
	require.NoError(t, err)

	protection := middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		IPRateLimit:       100,
		IPBurst:           100,
		MaxFailedAttempts: 3,
	})
	t.Cleanup(protection.Close)

	adminDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(adminDir, "index.html"), []byte("admin dashboard"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(adminDir, "login.html"), []byte("admin login"), 0o644))

	cfg := &config.Config{
		JWTSecret:        testutil.TestSecret,
		Env:              "development",
		AllowedOrigins:   []string{"http://localhost:3000"},
		AdminDir:         adminDir,
		UploadsDir:       t.TempDir(),
		ContactRateLimit: 100,
	}
	opts := content.Options{UploadsDir: cfg.UploadsDir}
	jobs := &fakeJobs{}

	router := NewRouter(Deps{
		Config:          cfg,
		DB:              db,
		Codec:           codec,
		Credentials:     creds,
		Events:          service.NewEventService(q),
		News:            content.NewNewsRepository(q, opts),
		Blog:            content.NewBlogRepository(q, opts),
		Vacancies:       content.NewVacancyRepository(q, opts),
		Messages:        content.NewMessageRepository(q, opts),
		Showcase:        content.NewShowcaseRepository(q, opts),
		Markdown:        render.NewMarkdown(),
		LoginProtection: protection,
		Jobs:            jobs,
	})

	token, _, err := codec.Issue(auth.Identity{ID: user.ID, Username: user.Username, Email: user.Email, Role: user.Role})
	require.NoError(t, err)

	return &apiFixture{t: t, router: router, codec: codec, q: q, user: user, token: token, jobs: jobs}
}

// do sends a request through the router. A non-empty token is sent as the
// session cookie; a body starting with "{" is sent as JSON, anything else
// as a urlencoded form.
func (f *apiFixture) do(method, target, body, token string) *httptest.ResponseRecorder {
	f.t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	switch {
	case body == "":
	case strings.HasPrefix(body, "{"):
		req.Header.Set("Content-Type", "application/json")
	default:
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestAuthFlow(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid username or password", decode[map[string]string](t, rec)["error"])

	rec = f.do(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"admin123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode[map[string]any](t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, body, "token")
	assert.Equal(t, "admin", body["user"].(map[string]any)["username"])

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, int(auth.TokenTTL.Seconds()), cookie.MaxAge)

	rec = f.do(http.MethodGet, "/api/auth/user", "", cookie.Value)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, f.user.ID, decode[auth.Identity](t, rec).ID)

	rec = f.do(http.MethodGet, "/api/auth/user", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodPost, "/api/auth/logout", "", cookie.Value)
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := sessionCookie(rec)
	require.NotNil(t, cleared)
	assert.Negative(t, cleared.MaxAge)
}

func TestLoginFormBody(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodPost, "/api/auth/login", "username=admin&password=admin123", "")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotNil(t, sessionCookie(rec))
}

func TestLoginLockout(t *testing.T) {
	f := newAPIFixture(t)
	wrong := `{"username":"admin","password":"nope"}`

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodPost, "/api/auth/login", wrong, "").Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodPost, "/api/auth/login", wrong, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, f.do(http.MethodPost, "/api/auth/login", wrong, "").Code)

	rec := f.do(http.MethodPost, "/api/auth/login", `{"username":"ADMIN","password":"admin123"}`, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code, "locked out even with the right password")
	assert.Nil(t, sessionCookie(rec))
}

func TestChangePassword(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodPost, "/api/auth/change-password", `{"currentPassword":"admin123","newPassword":"new-password-1"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodPost, "/api/auth/change-password", `{"currentPassword":"wrong","newPassword":"new-password-1"}`, f.token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Current password is incorrect", decode[map[string]string](t, rec)["error"])

	rec = f.do(http.MethodPost, "/api/auth/change-password", `{"currentPassword":"admin123","newPassword":"short"}`, f.token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPost, "/api/auth/change-password", `{"currentPassword":"admin123","newPassword":"new-password-1"}`, f.token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"new-password-1"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestArticleCRUD(t *testing.T) {
	for _, kind := range []string{"news", "blog"} {
		t.Run(kind, func(t *testing.T) {
			f := newAPIFixture(t)
			base := "/api/" + kind
			create := `{"title":"Open Day","title_am":"ክፍት ቀን","content":"Welcome","published":true}`

			rec := f.do(http.MethodPost, base, create, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			rec = f.do(http.MethodPost, base, create, f.token)
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
			created := decode[content.ArticleRecord](t, rec)
			assert.Equal(t, "open-day", created.Slug)

			rec = f.do(http.MethodPost, base, create, f.token)
			assert.Equal(t, http.StatusConflict, rec.Code)

			rec = f.do(http.MethodPost, base, `{"title":"  ","content":"x"}`, f.token)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode[map[string]string](t, rec)["error"], "title")

			rec = f.do(http.MethodPost, base, `{"title":`, f.token)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			rec = f.do(http.MethodGet, base+"?slug=open-day&language=am", "", "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "ክፍት ቀን", decode[content.LocalizedArticle](t, rec).Title)

			rec = f.do(http.MethodGet, fmt.Sprintf("%s?id=%d", base, created.ID), "", "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			rec = f.do(http.MethodGet, base+"?id=999", "", f.token)
			assert.Equal(t, http.StatusNotFound, rec.Code)

			rec = f.do(http.MethodGet, base+"?id=abc", "", f.token)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			rec = f.do(http.MethodPut, base, fmt.Sprintf(`{"id":"%d","title":"Open Day 2026"}`, created.ID), f.token)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, "open-day-2026", decode[content.ArticleRecord](t, rec).Slug)

			rec = f.do(http.MethodPut, base, `{"title":"No id"}`, f.token)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			rec = f.do(http.MethodDelete, fmt.Sprintf("%s?id=%d", base, created.ID), "", f.token)
			require.Equal(t, http.StatusOK, rec.Code)

			rec = f.do(http.MethodDelete, fmt.Sprintf("%s?id=%d", base, created.ID), "", f.token)
			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}

func TestArticleListVisibility(t *testing.T) {
	f := newAPIFixture(t)

	require.Equal(t, http.StatusCreated, f.do(http.MethodPost, "/api/news", `{"title":"Public","content":"a","published":true}`, f.token).Code)
	require.Equal(t, http.StatusCreated, f.do(http.MethodPost, "/api/news", `{"title":"Draft","content":"b"}`, f.token).Code)

	tests := []struct {
		name   string
		target string
		token  string
		status int
		count  int
	}{
		{"anonymous sees published", "/api/news", "", http.StatusOK, 1},
		{"signed in sees everything", "/api/news", f.token, http.StatusOK, 2},
		{"signed in asks for published", "/api/news?publishedOnly=true", f.token, http.StatusOK, 1},
		{"anonymous asks for drafts", "/api/news?publishedOnly=false", "", http.StatusUnauthorized, 0},
		{"limit", "/api/news?limit=1", f.token, http.StatusOK, 1},
		{"bad limit", "/api/news?limit=-1", "", http.StatusBadRequest, 0},
		{"bad publishedOnly", "/api/news?publishedOnly=maybe", "", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(http.MethodGet, tt.target, "", tt.token)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.status == http.StatusOK {
				assert.Len(t, decode[[]content.LocalizedArticle](t, rec), tt.count)
			}
		})
	}
}

func TestArticleFormBody(t *testing.T) {
	f := newAPIFixture(t)

	form := url.Values{
		"title":     {"Form Post"},
		"content":   {"Sent as a form"},
		"published": {"true"},
		"excerpt":   {""},
	}
	rec := f.do(http.MethodPost, "/api/blog", form.Encode(), f.token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[content.ArticleRecord](t, rec)
	assert.True(t, created.Published)
	assert.Nil(t, created.Excerpt)

	update := url.Values{"id": {fmt.Sprint(created.ID)}, "published": {"false"}}
	rec = f.do(http.MethodPut, "/api/blog", update.Encode(), f.token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.False(t, decode[content.ArticleRecord](t, rec).Published)
}

func TestArticleHTML(t *testing.T) {
	f := newAPIFixture(t)

	body := `{"title":"Rendered","content":"# Welcome\n\n<script>alert(1)</script>","published":true}`
	require.Equal(t, http.StatusCreated, f.do(http.MethodPost, "/api/news", body, f.token).Code)

	rec := f.do(http.MethodGet, "/api/news/rendered/html", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	html := decode[map[string]any](t, rec)["html"].(string)
	assert.Contains(t, html, `<h1 id="welcome">Welcome</h1>`)
	assert.NotContains(t, html, "<script")

	rec = f.do(http.MethodGet, "/api/news/missing/html", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVacancies(t *testing.T) {
	f := newAPIFixture(t)
	tomorrow := time.Now().AddDate(0, 0, 1).Format(time.DateOnly)
	yesterday := time.Now().AddDate(0, 0, -1).Format(time.DateOnly)

	rec := f.do(http.MethodPost, "/api/vacancies",
		fmt.Sprintf(`{"title":"Math Teacher","description":"Teach","deadline":%q,"published":true}`, tomorrow), f.token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	open := decode[content.VacancyRecord](t, rec)

	rec = f.do(http.MethodPost, "/api/vacancies",
		fmt.Sprintf(`{"title":"Librarian","description":"Books","deadline":%q,"published":true}`, yesterday), f.token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.do(http.MethodPost, "/api/vacancies", `{"title":"Bad","description":"x","deadline":"next week"}`, f.token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodGet, "/api/vacancies", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decode[[]content.LocalizedVacancy](t, rec)
	require.Len(t, listed, 1, "expired vacancy is hidden from the public")
	assert.Equal(t, "math-teacher", listed[0].Slug)

	rec = f.do(http.MethodGet, "/api/vacancies", "", f.token)
	assert.Len(t, decode[[]content.LocalizedVacancy](t, rec), 2)

	rec = f.do(http.MethodGet, "/api/vacancies?slug=math-teacher", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodPut, "/api/vacancies", fmt.Sprintf(`{"id":%d,"published":false}`, open.ID), f.token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(http.MethodGet, "/api/vacancies?slug=math-teacher", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(http.MethodDelete, fmt.Sprintf("/api/vacancies?id=%d", open.ID), "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestContactAndInbox(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodPost, "/api/contact", `{"name":"Abebe","email":"abebe@example.com","message":"Hello"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sent := decode[map[string]any](t, rec)
	assert.Equal(t, true, sent["success"])
	id := int64(sent["id"].(float64))

	rec = f.do(http.MethodPost, "/api/contact", `{"name":"Abebe","email":"not-an-email","message":"Hello"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodGet, "/api/messages", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodGet, "/api/messages?unreadOnly=true", "", f.token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]content.Message](t, rec), 1)

	rec = f.do(http.MethodPut, "/api/messages", fmt.Sprintf(`{"id":%d}`, id), f.token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decode[content.Message](t, rec).IsRead)

	rec = f.do(http.MethodGet, "/api/messages?unreadOnly=true", "", f.token)
	assert.Empty(t, decode[[]content.Message](t, rec))

	rec = f.do(http.MethodGet, fmt.Sprintf("/api/messages?id=%d", id), "", f.token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodDelete, fmt.Sprintf("/api/messages?id=%d", id), "", f.token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, fmt.Sprintf("/api/messages?id=%d", id), "", f.token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShowcase(t *testing.T) {
	f := newAPIFixture(t)

	for _, target := range []string{"/api/testimonials", "/api/partners?language=am"} {
		rec := f.do(http.MethodGet, target, "", "")
		assert.Equal(t, http.StatusOK, rec.Code, target)
	}
}

func TestResponseLanguage(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodGet, "/api/news?slug=missing&language=am", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "አልተገኘም", decode[map[string]string](t, rec)["error"])

	req := httptest.NewRequest(http.MethodGet, "/api/blog?slug=missing", nil)
	req.Header.Set("Accept-Language", "am-ET,am;q=0.9")
	out := httptest.NewRecorder()
	f.router.ServeHTTP(out, req)
	assert.Equal(t, "አልተገኘም", decode[map[string]string](t, out)["error"])

	rec = f.do(http.MethodGet, "/api/nothing-here", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", decode[map[string]string](t, rec)["error"])
}

func TestTrailingSlashRedirect(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodGet, "/api/news/?limit=3", "", "")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/api/news?limit=3", rec.Header().Get("Location"))
}

func TestAdminEndpoints(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodGet, "/api/admin/stats", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodGet, "/api/admin/stats", "", f.token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode[map[string]any](t, rec), "unread_messages")

	rec = f.do(http.MethodGet, "/api/admin/events?limit=5", "", f.token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/api/admin/jobs", "", f.token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]scheduler.JobInfo](t, rec), 1)

	rec = f.do(http.MethodPost, "/api/admin/jobs/vacancy-expiry/run", "", f.token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"vacancy-expiry"}, f.jobs.ran)

	rec = f.do(http.MethodPost, "/api/admin/jobs/unknown/run", "", f.token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	editor, _, err := f.codec.Issue(auth.Identity{ID: f.user.ID, Username: "editor", Role: auth.RoleEditor})
	require.NoError(t, err)
	rec = f.do(http.MethodPost, "/api/admin/jobs/vacancy-expiry/run", "", editor)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Forbidden", decode[map[string]string](t, rec)["error"])

	rec = f.do(http.MethodPost, "/api/admin/jobs/vacancy-expiry/run?language=am", "", editor)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "ተከልክሏል", decode[map[string]string](t, rec)["error"])
	assert.Equal(t, []string{"vacancy-expiry"}, f.jobs.ran)
}

func TestAdminEvents_LimitIsCapped(t *testing.T) {
	f := newAPIFixture(t)
	ctx := context.Background()
	start := time.Now().UTC().Add(-time.Hour)
	for i := range maxEventLimit + 20 {
		require.NoError(t, f.q.CreateEvent(ctx, store.CreateEventParams{
			Level: "INFO", Category: "system", Message: fmt.Sprintf("event %d", i),
			Metadata: "{}", CreatedAt: start.Add(time.Duration(i) * time.Second),
		}))
	}

	tests := []struct {
		query string
		want  int
	}{
		{"", defaultEventLimit},
		{"?limit=10", 10},
		{"?limit=100000", maxEventLimit},
	}
	for _, tt := range tests {
		rec := f.do(http.MethodGet, "/api/admin/events"+tt.query, "", f.token)
		require.Equal(t, http.StatusOK, rec.Code, tt.query)
		assert.Len(t, decode[[]service.Event](t, rec), tt.want, tt.query)
	}
}

func TestLogin_LogsOncePerSuccess(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	f := newAPIFixture(t)
	rec := f.do(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"admin123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 1, strings.Count(buf.String(), `"msg":"user logged in"`))
}

func TestHealthEndpoints(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"status": statusHealthy}, decode[map[string]any](t, rec))

	rec = f.do(http.MethodGet, "/health?verbose=true", "", f.token)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[HealthStatus](t, rec)
	assert.Equal(t, statusHealthy, status.Checks["database"].Status)
	assert.Contains(t, status.Checks, "disk")
	assert.NotContains(t, status.Checks, "cache")
	require.NotNil(t, status.System)

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/health/live", "", "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/health/ready", "", "").Code)
}

func TestAdminPanelGate(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodGet, "/admin", "", "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))

	rec = f.do(http.MethodGet, "/admin/login", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin login", rec.Body.String())

	rec = f.do(http.MethodGet, "/admin", "", f.token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin dashboard", rec.Body.String())

	rec = f.do(http.MethodGet, "/admin", "", "garbage")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	cleared := sessionCookie(rec)
	require.NotNil(t, cleared)
	assert.Negative(t, cleared.MaxAge)
}

func TestSecurityHeaders(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodGet, "/health/live", "", "")
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"), "no HSTS in development")
}

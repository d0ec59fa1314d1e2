// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/jmoiron/sqlx"

	"github.com/olegiv/brightside-go/internal/auth"
	"github.com/olegiv/brightside-go/internal/cache"
	"github.com/olegiv/brightside-go/internal/config"
	"github.com/olegiv/brightside-go/internal/content"
	"github.com/olegiv/brightside-go/internal/middleware"
	"github.com/olegiv/brightside-go/internal/render"
	"github.com/olegiv/brightside-go/internal/service"
)

const (
	requestTimeout = 30 * time.Second
	adminPrefix    = "/admin"
	adminLoginPath = "/admin/login"
)

// Deps are the services the router dispatches to.
type Deps struct {
	Config          *config.Config
	DB              *sqlx.DB
	Cache           cache.Cache
	Codec           *auth.TokenCodec
	Credentials     *service.Credentials
	Events          *service.EventService
	News            *content.ArticleRepository
	Blog            *content.ArticleRepository
	Vacancies       *content.VacancyRepository
	Messages        *content.MessageRepository
	Showcase        *content.ShowcaseRepository
	Markdown        *render.Markdown
	LoginProtection *middleware.LoginProtection
	Jobs            JobRunner
}

// NewRouter builds the HTTP handler for the whole application.
func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	secure := !cfg.IsDevelopment()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(requestTimeout))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Accept-Language"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.Language)
	r.Use(middleware.LoadIdentity(d.Codec))

	health := NewHealthHandler(d.DB, d.Cache, cfg.UploadsDir)
	r.Get("/health", health.Health)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.CSRF([]byte(cfg.JWTSecret), cfg.AllowedOrigins))
		api.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, r, http.StatusNotFound, "error.not_found")
		})
		api.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, r, http.StatusMethodNotAllowed, "error.method_not_allowed")
		})

		authH := NewAuthHandler(d.Credentials, d.LoginProtection, secure)
		api.Route("/auth", func(ar chi.Router) {
			ar.With(d.LoginProtection.Middleware).Post("/login", authH.Login)
			ar.Post("/logout", authH.Logout)
			ar.Get("/user", authH.User)
			ar.With(middleware.RequireIdentity).Post("/change-password", authH.ChangePassword)
		})

		mountArticles(api, "/news", NewArticleHandler(d.News, d.Markdown))
		mountArticles(api, "/blog", NewArticleHandler(d.Blog, d.Markdown))

		vacancies := NewVacancyHandler(d.Vacancies)
		api.Route("/vacancies", func(vr chi.Router) {
			vr.Get("/", vacancies.Get)
			vr.Group(func(p chi.Router) {
				p.Use(middleware.RequireIdentity)
				p.Post("/", vacancies.Create)
				p.Put("/", vacancies.Update)
				p.Delete("/", vacancies.Delete)
			})
		})

		messages := NewMessageHandler(d.Messages)
		api.With(httprate.Limit(
			cfg.ContactRateLimit,
			time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				writeError(w, r, http.StatusTooManyRequests, "error.too_many_requests")
			}),
		)).Post("/contact", messages.Contact)
		api.Route("/messages", func(mr chi.Router) {
			mr.Use(middleware.RequireIdentity)
			mr.Get("/", messages.Get)
			mr.Put("/", messages.Update)
			mr.Delete("/", messages.Delete)
		})

		showcase := NewShowcaseHandler(d.Showcase)
		api.Get("/testimonials", showcase.Testimonials)
		api.Get("/partners", showcase.Partners)

		admin := NewAdminHandler(d.News, d.Blog, d.Vacancies, d.Messages, d.Events, d.Jobs)
		api.Route("/admin", func(adm chi.Router) {
			adm.Use(middleware.RequireIdentity)
			adm.Get("/stats", admin.Stats)
			adm.Get("/events", admin.Events)
			adm.Get("/jobs", admin.Jobs)
			adm.Post("/jobs/{name}/run", admin.RunJob)
		})
	})

	mountAdminPanel(r, cfg.AdminDir, secure)
	return r
}

func mountArticles(api chi.Router, path string, h *ArticleHandler) {
	api.Route(path, func(ar chi.Router) {
		ar.Get("/", h.Get)
		ar.Get("/{slug}/html", h.HTML)
		ar.Group(func(p chi.Router) {
			p.Use(middleware.RequireIdentity)
			p.Post("/", h.Create)
			p.Put("/", h.Update)
			p.Delete("/", h.Delete)
		})
	})
}

// mountAdminPanel serves the static admin UI behind the session gate. The
// login page is served from login.html and stays public.
func mountAdminPanel(r chi.Router, dir string, secure bool) {
	files := http.StripPrefix(adminPrefix, http.FileServer(http.Dir(dir)))
	loginPage := filepath.Join(dir, "login.html")

	r.Group(func(g chi.Router) {
		g.Use(middleware.SessionGate(adminPrefix, adminLoginPath, secure))
		g.Get(adminLoginPath, func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, loginPage)
		})
		g.Handle(adminPrefix, files)
		g.Handle(adminPrefix+"/*", files)
	})
}

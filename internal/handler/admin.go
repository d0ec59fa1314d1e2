// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/brightside-go/internal/auth"
	"github.com/olegiv/brightside-go/internal/content"
	"github.com/olegiv/brightside-go/internal/scheduler"
	"github.com/olegiv/brightside-go/internal/service"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 500
)

// JobRunner is the part of the scheduler exposed to administrators.
type JobRunner interface {
	Jobs() []scheduler.JobInfo
	TriggerNow(ctx context.Context, name string) error
}

// AdminHandler serves dashboard data under /api/admin.
type AdminHandler struct {
	news      *content.ArticleRepository
	blog      *content.ArticleRepository
	vacancies *content.VacancyRepository
	messages  *content.MessageRepository
	events    *service.EventService
	jobs      JobRunner
}

func NewAdminHandler(
	news, blog *content.ArticleRepository,
	vacancies *content.VacancyRepository,
	messages *content.MessageRepository,
	events *service.EventService,
	jobs JobRunner,
) *AdminHandler {
	return &AdminHandler{
		news:      news,
		blog:      blog,
		vacancies: vacancies,
		messages:  messages,
		events:    events,
		jobs:      jobs,
	}
}

// Stats returns the dashboard counters.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := content.Dashboard(r.Context(), h.news, h.blog, h.vacancies, h.messages)
	if err != nil {
		writeServiceError(w, r, err, "dashboard stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Events returns the newest event log entries (?limit, default 50, at most 500).
func (h *AdminHandler) Events(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		writeServiceError(w, r, err, "list events")
		return
	}
	if limit == 0 {
		limit = defaultEventLimit
	}
	limit = min(limit, maxEventLimit)

	events, err := h.events.Recent(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err, "list events")
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *AdminHandler) Jobs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.jobs.Jobs())
}

// RunJob triggers a scheduled job immediately. Admins only.
func (h *AdminHandler) RunJob(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())
	if !id.IsAdmin() {
		slog.Warn("access denied",
			"status", http.StatusForbidden,
			"path", r.URL.Path,
			"user_id", id.ID,
			"user_role", id.Role,
			"category", "auth",
		)
		writeError(w, r, http.StatusForbidden, "error.forbidden")
		return
	}

	name := chi.URLParam(r, "name")
	if err := h.jobs.TriggerNow(r.Context(), name); err != nil {
		if errors.Is(err, scheduler.ErrJobNotFound) {
			writeError(w, r, http.StatusNotFound, "error.not_found")
			return
		}
		slog.Error("manual job run failed", "name", name, "error", err)
		writeError(w, r, http.StatusInternalServerError, "error.internal")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "job": name})
}

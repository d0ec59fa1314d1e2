// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/brightside-go/internal/auth"
	"github.com/olegiv/brightside-go/internal/content"
	"github.com/olegiv/brightside-go/internal/render"
)

var articleForm = formFields{bools: []string{"published"}, ints: []string{"id"}}

// ArticleHandler serves /api/news and /api/blog.
type ArticleHandler struct {
	repo *content.ArticleRepository
	md   *render.Markdown
}

func NewArticleHandler(repo *content.ArticleRepository, md *render.Markdown) *ArticleHandler {
	return &ArticleHandler{repo: repo, md: md}
}

// listOptions reads language, limit and publishedOnly. When publishedOnly is
// absent, signed-in callers see everything and anonymous callers see only
// published rows.
func listOptions(r *http.Request) (content.ListOptions, error) {
	limit, err := queryLimit(r)
	if err != nil {
		return content.ListOptions{}, err
	}

	_, signedIn := auth.IdentityFromContext(r.Context())
	publishedOnly := !signedIn
	if raw := r.URL.Query().Get("publishedOnly"); raw != "" {
		if publishedOnly, err = strconv.ParseBool(raw); err != nil {
			return content.ListOptions{}, &content.ValidationError{Field: "publishedOnly", Reason: "must be true or false"}
		}
	}

	return content.ListOptions{
		Language:      contentLanguage(r),
		Limit:         limit,
		PublishedOnly: publishedOnly,
	}, nil
}

// Get handles GET: one article by ?slug, the raw record by ?id (admin), or
// a listing.
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if slug := q.Get("slug"); slug != "" {
		a, err := h.repo.GetBySlug(r.Context(), slug, contentLanguage(r))
		if err != nil {
			writeServiceError(w, r, err, "get "+h.repo.Kind())
			return
		}
		writeJSON(w, http.StatusOK, a)
		return
	}

	if q.Has("id") {
		id, ok := queryID(r)
		if !ok {
			writeError(w, r, http.StatusBadRequest, "error.invalid_id")
			return
		}
		rec, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, "get "+h.repo.Kind())
			return
		}
		writeJSON(w, http.StatusOK, rec)
		return
	}

	opts, err := listOptions(r)
	if err != nil {
		writeServiceError(w, r, err, "list "+h.repo.Kind())
		return
	}
	items, err := h.repo.List(r.Context(), opts)
	if err != nil {
		writeServiceError(w, r, err, "list "+h.repo.Kind())
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in content.ArticleInput
	if err := decodeBody(w, r, &in, articleForm); err != nil {
		writeServiceError(w, r, err, "decode "+h.repo.Kind())
		return
	}

	rec, err := h.repo.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err, "create "+h.repo.Kind())
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

type articleUpdate struct {
	ID flexID `json:"id"`
	content.ArticlePatch
}

// Update handles PUT with the id in the body alongside the changed fields.
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in articleUpdate
	if err := decodeBody(w, r, &in, articleForm); err != nil {
		writeServiceError(w, r, err, "decode "+h.repo.Kind())
		return
	}
	if in.ID <= 0 {
		writeError(w, r, http.StatusBadRequest, "error.invalid_id")
		return
	}

	rec, err := h.repo.Update(r.Context(), int64(in.ID), in.ArticlePatch)
	if err != nil {
		writeServiceError(w, r, err, "update "+h.repo.Kind())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "error.invalid_id")
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "delete "+h.repo.Kind())
		return
	}
	writeSuccess(w, r, "msg.deleted")
}

// renderedArticle is an article body converted to HTML.
type renderedArticle struct {
	content.LocalizedArticle
	HTML string `json:"html"`
}

// HTML handles GET /{slug}/html.
func (h *ArticleHandler) HTML(w http.ResponseWriter, r *http.Request) {
	a, err := h.repo.GetBySlug(r.Context(), chi.URLParam(r, "slug"), contentLanguage(r))
	if err != nil {
		writeServiceError(w, r, err, "get "+h.repo.Kind())
		return
	}

	html, err := h.md.HTML(a.Content)
	if err != nil {
		writeServiceError(w, r, err, "render "+h.repo.Kind())
		return
	}
	writeJSON(w, http.StatusOK, renderedArticle{LocalizedArticle: a, HTML: html})
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/brightside-go/internal/content"
)

// ShowcaseHandler serves the home page testimonials and partner logos.
type ShowcaseHandler struct {
	repo *content.ShowcaseRepository
}

func NewShowcaseHandler(repo *content.ShowcaseRepository) *ShowcaseHandler {
	return &ShowcaseHandler{repo: repo}
}

func (h *ShowcaseHandler) Testimonials(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.Testimonials(r.Context(), contentLanguage(r))
	if err != nil {
		writeServiceError(w, r, err, "list testimonials")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ShowcaseHandler) Partners(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.Partners(r.Context(), contentLanguage(r))
	if err != nil {
		writeServiceError(w, r, err, "list partners")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/brightside-go/internal/content"
)

var vacancyForm = formFields{bools: []string{"published"}, ints: []string{"id"}}

// VacancyHandler serves /api/vacancies.
type VacancyHandler struct {
	repo *content.VacancyRepository
}

func NewVacancyHandler(repo *content.VacancyRepository) *VacancyHandler {
	return &VacancyHandler{repo: repo}
}

func (h *VacancyHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if slug := q.Get("slug"); slug != "" {
		v, err := h.repo.GetBySlug(r.Context(), slug, contentLanguage(r))
		if err != nil {
			writeServiceError(w, r, err, "get vacancy")
			return
		}
		writeJSON(w, http.StatusOK, v)
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
			writeServiceError(w, r, err, "get vacancy")
			return
		}
		writeJSON(w, http.StatusOK, rec)
		return
	}

	opts, err := listOptions(r)
	if err != nil {
		writeServiceError(w, r, err, "list vacancies")
		return
	}
	items, err := h.repo.List(r.Context(), opts)
	if err != nil {
		writeServiceError(w, r, err, "list vacancies")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *VacancyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in content.VacancyInput
	if err := decodeBody(w, r, &in, vacancyForm); err != nil {
		writeServiceError(w, r, err, "decode vacancy")
		return
	}

	rec, err := h.repo.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err, "create vacancy")
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

type vacancyUpdate struct {
	ID flexID `json:"id"`
	content.VacancyPatch
}

func (h *VacancyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in vacancyUpdate
	if err := decodeBody(w, r, &in, vacancyForm); err != nil {
		writeServiceError(w, r, err, "decode vacancy")
		return
	}
	if in.ID <= 0 {
		writeError(w, r, http.StatusBadRequest, "error.invalid_id")
		return
	}

	rec, err := h.repo.Update(r.Context(), int64(in.ID), in.VacancyPatch)
	if err != nil {
		writeServiceError(w, r, err, "update vacancy")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *VacancyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "error.invalid_id")
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "delete vacancy")
		return
	}
	writeSuccess(w, r, "msg.deleted")
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/brightside-go/internal/content"
	"github.com/olegiv/brightside-go/internal/i18n"
	"github.com/olegiv/brightside-go/internal/middleware"
)

// MessageHandler serves the public contact form and the admin inbox.
type MessageHandler struct {
	repo *content.MessageRepository
}

func NewMessageHandler(repo *content.MessageRepository) *MessageHandler {
	return &MessageHandler{repo: repo}
}

// Contact handles POST /api/contact.
func (h *MessageHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var in content.MessageInput
	if err := decodeBody(w, r, &in, formFields{}); err != nil {
		writeServiceError(w, r, err, "decode message")
		return
	}

	msg, err := h.repo.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err, "create message")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"id":      msg.ID,
		"message": i18n.T(middleware.GetLanguage(r), "msg.message_sent"),
	})
}

// Get lists messages (?unreadOnly=true) or returns one by ?id.
func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Has("id") {
		id, ok := queryID(r)
		if !ok {
			writeError(w, r, http.StatusBadRequest, "error.invalid_id")
			return
		}
		msg, err := h.repo.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, "get message")
			return
		}
		writeJSON(w, http.StatusOK, msg)
		return
	}

	msgs, err := h.repo.List(r.Context(), r.URL.Query().Get("unreadOnly") == "true")
	if err != nil {
		writeServiceError(w, r, err, "list messages")
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

type messageUpdate struct {
	ID     flexID `json:"id"`
	IsRead *bool  `json:"is_read"`
}

// Update sets the read flag. A missing is_read marks the message read.
func (h *MessageHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in messageUpdate
	if err := decodeBody(w, r, &in, formFields{bools: []string{"is_read"}, ints: []string{"id"}}); err != nil {
		writeServiceError(w, r, err, "decode message")
		return
	}
	if in.ID <= 0 {
		writeError(w, r, http.StatusBadRequest, "error.invalid_id")
		return
	}

	isRead := in.IsRead == nil || *in.IsRead
	msg, err := h.repo.MarkAsRead(r.Context(), int64(in.ID), isRead)
	if err != nil {
		writeServiceError(w, r, err, "update message")
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "error.invalid_id")
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "delete message")
		return
	}
	writeSuccess(w, r, "msg.deleted")
}

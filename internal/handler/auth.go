// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/brightside-go/internal/auth"
	"github.com/olegiv/brightside-go/internal/content"
	"github.com/olegiv/brightside-go/internal/middleware"
	"github.com/olegiv/brightside-go/internal/service"
)

// AuthHandler serves /api/auth.
type AuthHandler struct {
	creds        *service.Credentials
	protection   *middleware.LoginProtection
	secureCookie bool
}

func NewAuthHandler(creds *service.Credentials, protection *middleware.LoginProtection, secureCookie bool) *AuthHandler {
	return &AuthHandler{creds: creds, protection: protection, secureCookie: secureCookie}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool          `json:"success"`
	User    auth.Identity `json:"user"`
}

// Login verifies credentials and sets the session cookie. The token is not
// returned in the body.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(w, r, &req, formFields{}); err != nil {
		writeServiceError(w, r, err, "decode login")
		return
	}

	if locked, remaining := h.protection.IsLocked(req.Username); locked {
		writeError(w, r, http.StatusTooManyRequests, "error.locked_out", remaining.Round(time.Second).String())
		return
	}

	sess, err := h.creds.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrCredentialMismatch) {
			if locked, d := h.protection.RecordFailure(req.Username); locked {
				writeError(w, r, http.StatusTooManyRequests, "error.locked_out", d.String())
				return
			}
			slog.Warn("login failed", "username", req.Username,
				"remaining_attempts", h.protection.RemainingAttempts(req.Username), "category", "auth")
			writeError(w, r, http.StatusUnauthorized, "error.invalid_credentials")
			return
		}
		writeServiceError(w, r, err, "login")
		return
	}

	h.protection.RecordSuccess(req.Username)
	middleware.SetSessionCookie(w, sess.Token, sess.ExpiresAt, h.secureCookie)
	writeJSON(w, http.StatusOK, loginResponse{Success: true, User: sess.User})
}

// Logout clears the cookie. Issued tokens stay valid until they expire.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w, h.secureCookie)
	writeSuccess(w, r, "msg.logged_out")
}

// User returns the identity carried by the session cookie.
func (h *AuthHandler) User(w http.ResponseWriter, r *http.Request) {
	id, err := h.creds.CurrentUser(middleware.SessionToken(r))
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, "error.unauthenticated")
		return
	}
	writeJSON(w, http.StatusOK, id)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeBody(w, r, &req, formFields{}); err != nil {
		writeServiceError(w, r, err, "decode change password")
		return
	}

	err := h.creds.ChangePassword(r.Context(), req.CurrentPassword, req.NewPassword)
	switch {
	case err == nil:
		writeSuccess(w, r, "msg.password_changed")
	case errors.Is(err, service.ErrCredentialMismatch):
		writeError(w, r, http.StatusBadRequest, "error.current_password")
	case errors.Is(err, content.ErrUnauthenticated):
		writeError(w, r, http.StatusUnauthorized, "error.unauthenticated")
	default:
		writeServiceError(w, r, err, "change password")
	}
}

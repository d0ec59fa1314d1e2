// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the JSON API and wires it into a chi router.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/olegiv/brightside-go/internal/content"
	"github.com/olegiv/brightside-go/internal/i18n"
	"github.com/olegiv/brightside-go/internal/middleware"
)

// maxBodyBytes bounds JSON and form bodies.
const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("bad request")

func writeJSON(w http.ResponseWriter, status int, v any) {
	middleware.WriteJSON(w, status, v)
}

// writeError writes {"error": ...} with a message translated for the request.
func writeError(w http.ResponseWriter, r *http.Request, status int, key string, args ...any) {
	middleware.WriteError(w, status, i18n.T(middleware.GetLanguage(r), key, args...))
}

// writeSuccess writes {"success": true, "message": ...}.
func writeSuccess(w http.ResponseWriter, r *http.Request, key string) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": i18n.T(middleware.GetLanguage(r), key),
	})
}

// writeServiceError maps repository and service errors to HTTP statuses.
// Anything unrecognised is logged and reported as a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, op string) {
	var ve *content.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, r, http.StatusBadRequest, "error.validation", ve.Error())
	case errors.Is(err, content.ErrValidation), errors.Is(err, errBadRequest):
		writeError(w, r, http.StatusBadRequest, "error.bad_request")
	case errors.Is(err, content.ErrUnauthenticated):
		writeError(w, r, http.StatusUnauthorized, "error.unauthenticated")
	case errors.Is(err, content.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "error.not_found")
	case errors.Is(err, content.ErrSlugConflict):
		writeError(w, r, http.StatusConflict, "error.slug_conflict")
	default:
		slog.Error(op+" failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
		writeError(w, r, http.StatusInternalServerError, "error.internal")
	}
}

// flexID accepts an id sent either as a JSON number or a numeric string.
type flexID int64

func (f *flexID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", s)
	}
	*f = flexID(n)
	return nil
}

// formFields names the form keys that are not plain strings.
type formFields struct {
	bools []string
	ints  []string
}

// decodeBody reads a JSON body, or a urlencoded/multipart form converted
// field by field. Empty form values are treated as absent.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any, fields formFields) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return fmt.Errorf("%w: %v", errBadRequest, err)
		}
		data, err := formJSON(r.PostForm, fields)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("%w: %v", errBadRequest, err)
		}
		return nil
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", errBadRequest)
		}
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func formJSON(form url.Values, fields formFields) ([]byte, error) {
	obj := make(map[string]any, len(form))
	for key, values := range form {
		if len(values) == 0 || values[0] == "" {
			continue
		}
		obj[key] = values[0]
	}
	for _, key := range fields.bools {
		if v, ok := obj[key]; ok {
			obj[key] = v == "true"
		}
	}
	for _, key := range fields.ints {
		if v, ok := obj[key]; ok {
			n, err := strconv.ParseInt(v.(string), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s must be a number", errBadRequest, key)
			}
			obj[key] = n
		}
	}
	return json.Marshal(obj)
}

// queryID parses the ?id= parameter.
func queryID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryLimit parses ?limit=; absent means no limit.
func queryLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &content.ValidationError{Field: "limit", Reason: "must be a non-negative integer"}
	}
	return n, nil
}

// contentLanguage is the language content is resolved to. Unlike response
// messages it follows only the explicit ?language parameter.
func contentLanguage(r *http.Request) i18n.Lang {
	return i18n.Parse(r.URL.Query().Get("language"))
}

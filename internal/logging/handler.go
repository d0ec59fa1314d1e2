// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging builds the process logger. Records at WARN and above are
// also written to the events table so the admin dashboard can show failed
// logins, lockouts and store errors.
package logging

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"github.com/olegiv/brightside-go/internal/store"
)

// Event categories.
const (
	CategoryAuth    = "auth"
	CategoryContent = "content"
	CategoryCache   = "cache"
	CategorySystem  = "system"
)

// EventWriter persists one event. *store.Queries satisfies it.
type EventWriter interface {
	CreateEvent(ctx context.Context, arg store.CreateEventParams) error
}

// EventLogHandler is a slog.Handler that wraps another handler and also
// writes records at or above its level to the event log.
type EventLogHandler struct {
	inner  slog.Handler
	events EventWriter
	level  slog.Level
	attrs  []slog.Attr
}

// NewEventLogHandler mirrors WARN and above into events.
func NewEventLogHandler(inner slog.Handler, events EventWriter) *EventLogHandler {
	return &EventLogHandler{inner: inner, events: events, level: slog.LevelWarn}
}

// NewBaseHandler returns a text handler in development and a JSON handler
// everywhere else.
func NewBaseHandler(w io.Writer, development bool, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if development {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level {
		h.writeEvent(r)
	}
	return nil
}

func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EventLogHandler{
		inner:  h.inner.WithAttrs(attrs),
		events: h.events,
		level:  h.level,
		attrs:  append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...),
	}
}

func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{
		inner:  h.inner.WithGroup(name),
		events: h.events,
		level:  h.level,
		attrs:  h.attrs,
	}
}

// writeEvent uses a background context so the event survives a cancelled
// request. Write failures are dropped: logging them would recurse.
func (h *EventLogHandler) writeEvent(r slog.Record) {
	fields := make(map[string]string, r.NumAttrs()+len(h.attrs))
	category := ""
	collect := func(a slog.Attr) bool {
		if a.Key == "category" {
			category = a.Value.String()
			return true
		}
		fields[a.Key] = a.Value.String()
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(collect)

	if category == "" {
		category = inferCategory(r.Message)
	}

	metadata := "{}"
	if len(fields) > 0 {
		if b, err := json.Marshal(fields); err == nil {
			metadata = string(b)
		}
	}

	_ = h.events.CreateEvent(context.Background(), store.CreateEventParams{
		Level:     eventLevel(r.Level),
		Category:  category,
		Message:   r.Message,
		Metadata:  metadata,
		CreatedAt: r.Time.UTC(),
	})
}

func eventLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warning"
	default:
		return "info"
	}
}

func inferCategory(msg string) string {
	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "login") || strings.Contains(msg, "password") ||
		strings.Contains(msg, "token") || strings.Contains(msg, "lockout") || strings.Contains(msg, "locked"):
		return CategoryAuth
	case strings.Contains(msg, "cache"):
		return CategoryCache
	case strings.Contains(msg, "image") || strings.Contains(msg, "news") ||
		strings.Contains(msg, "blog") || strings.Contains(msg, "vacanc") || strings.Contains(msg, "message"):
		return CategoryContent
	default:
		return CategorySystem
	}
}

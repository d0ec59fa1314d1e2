// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/olegiv/brightside-go/internal/store"
	"github.com/olegiv/brightside-go/internal/testutil"
)

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func newTestLogger(t *testing.T) (*slog.Logger, *store.Queries) {
	t.Helper()
	q := store.New(testutil.TestDB(t))
	return slog.New(NewEventLogHandler(discardHandler{}, q)), q
}

func recentEvents(t *testing.T, q *store.Queries) []store.Event {
	t.Helper()
	events, err := q.ListRecentEvents(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	return events
}

func TestEventLogHandler_LevelThreshold(t *testing.T) {
	logger, q := newTestLogger(t)

	logger.Debug("debug message")
	logger.Info("info message")
	if n := len(recentEvents(t, q)); n != 0 {
		t.Fatalf("expected no events below WARN, got %d", n)
	}

	logger.Warn("login failed: invalid password", "username", "admin")
	logger.Error("database error", "error", "disk full")

	events := recentEvents(t, q)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	byMsg := map[string]store.Event{}
	for _, e := range events {
		byMsg[e.Message] = e
	}

	warn := byMsg["login failed: invalid password"]
	if warn.Level != "warning" {
		t.Errorf("warn level = %q, want warning", warn.Level)
	}
	if warn.Category != CategoryAuth {
		t.Errorf("warn category = %q, want %q", warn.Category, CategoryAuth)
	}

	errEvent := byMsg["database error"]
	if errEvent.Level != "error" {
		t.Errorf("error level = %q, want error", errEvent.Level)
	}
	if errEvent.Category != CategorySystem {
		t.Errorf("error category = %q, want %q", errEvent.Category, CategorySystem)
	}
}

func TestEventLogHandler_MetadataAndCategory(t *testing.T) {
	logger, q := newTestLogger(t)

	logger.With("component", "scheduler").Warn("job failed", "category", CategoryCache, "detail", `quote " and \ slash`)

	events := recentEvents(t, q)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Category != CategoryCache {
		t.Errorf("category = %q, want explicit %q", e.Category, CategoryCache)
	}

	var meta map[string]string
	if err := json.Unmarshal([]byte(e.Metadata), &meta); err != nil {
		t.Fatalf("metadata is not JSON: %v (%s)", err, e.Metadata)
	}
	if meta["component"] != "scheduler" {
		t.Errorf("component = %q, want scheduler", meta["component"])
	}
	if meta["detail"] != `quote " and \ slash` {
		t.Errorf("detail = %q", meta["detail"])
	}
	if _, ok := meta["category"]; ok {
		t.Error("category should not be repeated in metadata")
	}
}

func TestInferCategory(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{"Login failed: unknown user", CategoryAuth},
		{"account locked after failed attempts", CategoryAuth},
		{"cache invalidation failed", CategoryCache},
		{"failed to delete image", CategoryContent},
		{"listing vacancies failed", CategoryContent},
		{"server shutting down", CategorySystem},
	}
	for _, tt := range tests {
		if got := inferCategory(tt.msg); got != tt.want {
			t.Errorf("inferCategory(%q) = %q, want %q", tt.msg, got, tt.want)
		}
	}
}

func TestNewBaseHandler(t *testing.T) {
	var buf bytes.Buffer
	slog.New(NewBaseHandler(&buf, false, slog.LevelInfo)).Info("hello", "k", "v")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("production handler should emit JSON, got %q", buf.String())
	}

	buf.Reset()
	slog.New(NewBaseHandler(&buf, true, slog.LevelInfo)).Info("hello", "k", "v")
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("development handler should emit text, got %q", buf.String())
	}

	buf.Reset()
	slog.New(NewBaseHandler(&buf, true, slog.LevelWarn)).Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at WARN, got %q", buf.String())
	}
}

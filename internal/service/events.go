// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/olegiv/brightside-go/internal/auth"
	"github.com/olegiv/brightside-go/internal/content"
	"github.com/olegiv/brightside-go/internal/store"
)

// Event is an audit-log entry as shown on the admin dashboard.
type Event struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Metadata  string    `json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}

// EventService reads and prunes the event log written by
// logging.EventLogHandler.
type EventService struct {
	queries *store.Queries
	now     func() time.Time
}

func NewEventService(q *store.Queries) *EventService {
	return &EventService{queries: q, now: time.Now}
}

// Recent returns the newest events. Identity is required.
func (s *EventService) Recent(ctx context.Context, limit int) ([]Event, error) {
	if _, ok := auth.IdentityFromContext(ctx); !ok {
		return nil, content.ErrUnauthenticated
	}
	rows, err := s.queries.ListRecentEvents(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	out := make([]Event, 0, len(rows))
	for _, r := range rows {
		out = append(out, Event{
			ID:        r.ID,
			Level:     r.Level,
			Category:  r.Category,
			Message:   r.Message,
			Metadata:  r.Metadata,
			CreatedAt: r.CreatedAt,
		})
	}
	return out, nil
}

// Prune deletes events older than retention and returns how many were
// removed.
func (s *EventService) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.now().UTC().Add(-retention)
	n, err := s.queries.DeleteEventsBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning events: %w", err)
	}
	return n, nil
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type CreateEventParams struct {
	Level     string    `db:"level"`
	Category  string    `db:"category"`
	Message   string    `db:"message"`
	Metadata  string    `db:"metadata"`
	CreatedAt time.Time `db:"created_at"`
}

func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) error {
	_, err := sqlx.NamedExecContext(ctx, q.db, `INSERT INTO events
		(level, category, message, metadata, created_at)
		VALUES (:level, :category, :message, :metadata, :created_at)`, arg)
	return err
}

func (q *Queries) ListRecentEvents(ctx context.Context, limit int) ([]Event, error) {
	query, args := limitClause(limit, nil)
	items := []Event{}
	err := sqlx.SelectContext(ctx, q.db, &items,
		"SELECT id, level, category, message, metadata, created_at FROM events ORDER BY created_at DESC, id DESC"+query,
		args...)
	return items, err
}

// DeleteEventsBefore removes events older than cutoff and returns how many
// were removed.
func (q *Queries) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, "DELETE FROM events WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const messageColumns = "id, name, email, phone, subject, message, is_read, created_at"

func (q *Queries) ListMessages(ctx context.Context, unreadOnly bool) ([]Message, error) {
	query := "SELECT " + messageColumns + " FROM messages"
	var args []any
	if unreadOnly {
		query += " WHERE is_read = ?"
		args = append(args, false)
	}
	query += " ORDER BY created_at DESC, id DESC"

	items := []Message{}
	if err := sqlx.SelectContext(ctx, q.db, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (q *Queries) GetMessage(ctx context.Context, id int64) (Message, error) {
	var m Message
	err := sqlx.GetContext(ctx, q.db, &m,
		"SELECT "+messageColumns+" FROM messages WHERE id = ?", id)
	return m, err
}

type CreateMessageParams struct {
	Name      string         `db:"name"`
	Email     string         `db:"email"`
	Phone     sql.NullString `db:"phone"`
	Subject   sql.NullString `db:"subject"`
	Message   string         `db:"message"`
	CreatedAt time.Time      `db:"created_at"`
}

func (q *Queries) CreateMessage(ctx context.Context, arg CreateMessageParams) (Message, error) {
	res, err := sqlx.NamedExecContext(ctx, q.db, `INSERT INTO messages
		(name, email, phone, subject, message, is_read, created_at)
		VALUES (:name, :email, :phone, :subject, :message, FALSE, :created_at)`, arg)
	if err != nil {
		return Message{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Message{}, fmt.Errorf("reading message id: %w", err)
	}
	return Message{
		ID:        id,
		Name:      arg.Name,
		Email:     arg.Email,
		Phone:     arg.Phone,
		Subject:   arg.Subject,
		Message:   arg.Message,
		CreatedAt: arg.CreatedAt,
	}, nil
}

func (q *Queries) SetMessageRead(ctx context.Context, id int64, isRead bool) error {
	_, err := q.db.ExecContext(ctx, "UPDATE messages SET is_read = ? WHERE id = ?", isRead, id)
	return err
}

func (q *Queries) DeleteMessage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM messages WHERE id = ?", id)
	return err
}

func (q *Queries) CountUnreadMessages(ctx context.Context) (int64, error) {
	var n int64
	err := sqlx.GetContext(ctx, q.db, &n, "SELECT COUNT(*) FROM messages WHERE is_read = ?", false)
	return n, err
}

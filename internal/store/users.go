// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const userColumns = "id, username, password_hash, email, role, created_at, updated_at"

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	var u User
	err := sqlx.GetContext(ctx, q.db, &u,
		"SELECT "+userColumns+" FROM users WHERE username = ?", username)
	return u, err
}

func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	var u User
	err := sqlx.GetContext(ctx, q.db, &u,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return u, err
}

type CreateUserParams struct {
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Email        string    `db:"email"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	res, err := sqlx.NamedExecContext(ctx, q.db, `INSERT INTO users
		(username, password_hash, email, role, created_at, updated_at)
		VALUES (:username, :password_hash, :email, :role, :created_at, :updated_at)`, arg)
	if err != nil {
		return User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return User{}, fmt.Errorf("reading user id: %w", err)
	}
	return User{
		ID:           id,
		Username:     arg.Username,
		PasswordHash: arg.PasswordHash,
		Email:        arg.Email,
		Role:         arg.Role,
		CreatedAt:    arg.CreatedAt,
		UpdatedAt:    arg.UpdatedAt,
	}, nil
}

func (q *Queries) UpdateUserPassword(ctx context.Context, id int64, hash string, now time.Time) error {
	_, err := q.db.ExecContext(ctx,
		"UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?", hash, now, id)
	return err
}

func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := sqlx.GetContext(ctx, q.db, &n, "SELECT COUNT(*) FROM users")
	return n, err
}

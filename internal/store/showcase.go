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

func (q *Queries) ListActiveTestimonials(ctx context.Context) ([]Testimonial, error) {
	items := []Testimonial{}
	err := sqlx.SelectContext(ctx, q.db, &items, `SELECT id, name, name_am, role, role_am,
		content, content_am, image_path, display_order, active, created_at, updated_at
		FROM testimonials WHERE active = ? ORDER BY display_order, id`, true)
	return items, err
}

func (q *Queries) ListActivePartners(ctx context.Context) ([]Partner, error) {
	items := []Partner{}
	err := sqlx.SelectContext(ctx, q.db, &items, `SELECT id, name, name_am, logo_path,
		website_url, display_order, active, created_at, updated_at
		FROM partners WHERE active = ? ORDER BY display_order, id`, true)
	return items, err
}

type CreateTestimonialParams struct {
	Name         string         `db:"name"`
	NameAm       sql.NullString `db:"name_am"`
	Role         sql.NullString `db:"role"`
	RoleAm       sql.NullString `db:"role_am"`
	Content      string         `db:"content"`
	ContentAm    sql.NullString `db:"content_am"`
	ImagePath    sql.NullString `db:"image_path"`
	DisplayOrder int64          `db:"display_order"`
	Active       bool           `db:"active"`
	CreatedAt    time.Time      `db:"created_at"`
}

// CreateTestimonial is used by seeding and tests; the admin API does not
// manage testimonials.
func (q *Queries) CreateTestimonial(ctx context.Context, arg CreateTestimonialParams) (int64, error) {
	res, err := sqlx.NamedExecContext(ctx, q.db, `INSERT INTO testimonials
		(name, name_am, role, role_am, content, content_am, image_path, display_order, active, created_at, updated_at)
		VALUES (:name, :name_am, :role, :role_am, :content, :content_am, :image_path, :display_order, :active, :created_at, :created_at)`, arg)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading testimonial id: %w", err)
	}
	return id, nil
}

type CreatePartnerParams struct {
	Name         string         `db:"name"`
	NameAm       sql.NullString `db:"name_am"`
	LogoPath     string         `db:"logo_path"`
	WebsiteURL   sql.NullString `db:"website_url"`
	DisplayOrder int64          `db:"display_order"`
	Active       bool           `db:"active"`
	CreatedAt    time.Time      `db:"created_at"`
}

// CreatePartner is used by seeding and tests.
func (q *Queries) CreatePartner(ctx context.Context, arg CreatePartnerParams) (int64, error) {
	res, err := sqlx.NamedExecContext(ctx, q.db, `INSERT INTO partners
		(name, name_am, logo_path, website_url, display_order, active, created_at, updated_at)
		VALUES (:name, :name_am, :logo_path, :website_url, :display_order, :active, :created_at, :created_at)`, arg)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading partner id: %w", err)
	}
	return id, nil
}

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

const vacancyColumns = `id, title, title_am, slug, description, description_am,
	requirements, requirements_am, location, location_am, type, type_am,
	google_form_link, deadline, published, created_at, updated_at`

// ListVacanciesParams filters the vacancy list. When PublishedOnly is set,
// rows whose deadline is before OpenOn (YYYY-MM-DD) are left out as well.
type ListVacanciesParams struct {
	PublishedOnly bool
	OpenOn        string
	Limit         int
}

func (q *Queries) ListVacancies(ctx context.Context, arg ListVacanciesParams) ([]Vacancy, error) {
	query := "SELECT " + vacancyColumns + " FROM vacancies"
	var args []any
	if arg.PublishedOnly {
		query += " WHERE published = ? AND (deadline IS NULL OR deadline >= ?)"
		args = append(args, true, arg.OpenOn)
	}
	query += " ORDER BY created_at DESC, id DESC"

	limit, args := limitClause(arg.Limit, args)
	query += limit

	items := []Vacancy{}
	if err := sqlx.SelectContext(ctx, q.db, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (q *Queries) GetVacancyBySlug(ctx context.Context, slug string) (Vacancy, error) {
	var v Vacancy
	err := sqlx.GetContext(ctx, q.db, &v,
		"SELECT "+vacancyColumns+" FROM vacancies WHERE slug = ?", slug)
	return v, err
}

func (q *Queries) GetVacancyByID(ctx context.Context, id int64) (Vacancy, error) {
	var v Vacancy
	err := sqlx.GetContext(ctx, q.db, &v,
		"SELECT "+vacancyColumns+" FROM vacancies WHERE id = ?", id)
	return v, err
}

type CreateVacancyParams struct {
	Title          string         `db:"title"`
	TitleAm        sql.NullString `db:"title_am"`
	Slug           string         `db:"slug"`
	Description    string         `db:"description"`
	DescriptionAm  sql.NullString `db:"description_am"`
	Requirements   sql.NullString `db:"requirements"`
	RequirementsAm sql.NullString `db:"requirements_am"`
	Location       sql.NullString `db:"location"`
	LocationAm     sql.NullString `db:"location_am"`
	Type           sql.NullString `db:"type"`
	TypeAm         sql.NullString `db:"type_am"`
	GoogleFormLink sql.NullString `db:"google_form_link"`
	Deadline       sql.NullString `db:"deadline"`
	Published      bool           `db:"published"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func (q *Queries) CreateVacancy(ctx context.Context, arg CreateVacancyParams) (Vacancy, error) {
	res, err := sqlx.NamedExecContext(ctx, q.db, `INSERT INTO vacancies
		(title, title_am, slug, description, description_am, requirements, requirements_am,
		 location, location_am, type, type_am, google_form_link, deadline, published,
		 created_at, updated_at)
		VALUES (:title, :title_am, :slug, :description, :description_am, :requirements, :requirements_am,
		 :location, :location_am, :type, :type_am, :google_form_link, :deadline, :published,
		 :created_at, :updated_at)`, arg)
	if err != nil {
		return Vacancy{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Vacancy{}, fmt.Errorf("reading vacancy id: %w", err)
	}

	return Vacancy{
		ID:             id,
		Title:          arg.Title,
		TitleAm:        arg.TitleAm,
		Slug:           arg.Slug,
		Description:    arg.Description,
		DescriptionAm:  arg.DescriptionAm,
		Requirements:   arg.Requirements,
		RequirementsAm: arg.RequirementsAm,
		Location:       arg.Location,
		LocationAm:     arg.LocationAm,
		Type:           arg.Type,
		TypeAm:         arg.TypeAm,
		GoogleFormLink: arg.GoogleFormLink,
		Deadline:       arg.Deadline,
		Published:      arg.Published,
		CreatedAt:      arg.CreatedAt,
		UpdatedAt:      arg.UpdatedAt,
	}, nil
}

func (q *Queries) UpdateVacancy(ctx context.Context, v Vacancy) error {
	_, err := sqlx.NamedExecContext(ctx, q.db, `UPDATE vacancies SET
		title = :title, title_am = :title_am, slug = :slug,
		description = :description, description_am = :description_am,
		requirements = :requirements, requirements_am = :requirements_am,
		location = :location, location_am = :location_am,
		type = :type, type_am = :type_am,
		google_form_link = :google_form_link, deadline = :deadline,
		published = :published, updated_at = :updated_at
		WHERE id = :id`, v)
	return err
}

func (q *Queries) DeleteVacancy(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM vacancies WHERE id = ?", id)
	return err
}

// CountOpenVacancies counts published vacancies still accepting
// applications on day (YYYY-MM-DD).
func (q *Queries) CountOpenVacancies(ctx context.Context, day string) (int64, error) {
	var n int64
	err := sqlx.GetContext(ctx, q.db, &n,
		"SELECT COUNT(*) FROM vacancies WHERE published = ? AND (deadline IS NULL OR deadline >= ?)",
		true, day)
	return n, err
}

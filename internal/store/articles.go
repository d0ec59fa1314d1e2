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

// ArticleTable names one of the two tables holding Article rows.
type ArticleTable string

const (
	NewsTable ArticleTable = "news"
	BlogTable ArticleTable = "blog_posts"
)

// Valid reports whether t is a known article table. Table names are
// interpolated into SQL, so nothing else may pass.
func (t ArticleTable) Valid() bool {
	return t == NewsTable || t == BlogTable
}

func (t ArticleTable) check() error {
	if !t.Valid() {
		return fmt.Errorf("unknown article table %q", string(t))
	}
	return nil
}

const articleColumns = `id, title, title_am, slug, content, content_am, excerpt, excerpt_am,
	image_path, published, author_id, created_at, updated_at`

type ListArticlesParams struct {
	PublishedOnly bool
	Limit         int
}

func (q *Queries) ListArticles(ctx context.Context, table ArticleTable, arg ListArticlesParams) ([]Article, error) {
	if err := table.check(); err != nil {
		return nil, err
	}

	query := "SELECT " + articleColumns + " FROM " + string(table)
	var args []any
	if arg.PublishedOnly {
		query += " WHERE published = ?"
		args = append(args, true)
	}
	query += " ORDER BY created_at DESC, id DESC"

	limit, args := limitClause(arg.Limit, args)
	query += limit

	items := []Article{}
	if err := sqlx.SelectContext(ctx, q.db, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (q *Queries) GetArticleBySlug(ctx context.Context, table ArticleTable, slug string) (Article, error) {
	var a Article
	if err := table.check(); err != nil {
		return a, err
	}
	err := sqlx.GetContext(ctx, q.db, &a,
		"SELECT "+articleColumns+" FROM "+string(table)+" WHERE slug = ?", slug)
	return a, err
}

func (q *Queries) GetArticleByID(ctx context.Context, table ArticleTable, id int64) (Article, error) {
	var a Article
	if err := table.check(); err != nil {
		return a, err
	}
	err := sqlx.GetContext(ctx, q.db, &a,
		"SELECT "+articleColumns+" FROM "+string(table)+" WHERE id = ?", id)
	return a, err
}

type CreateArticleParams struct {
	Title     string         `db:"title"`
	TitleAm   sql.NullString `db:"title_am"`
	Slug      string         `db:"slug"`
	Content   string         `db:"content"`
	ContentAm sql.NullString `db:"content_am"`
	Excerpt   sql.NullString `db:"excerpt"`
	ExcerptAm sql.NullString `db:"excerpt_am"`
	ImagePath sql.NullString `db:"image_path"`
	Published bool           `db:"published"`
	AuthorID  sql.NullInt64  `db:"author_id"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (q *Queries) CreateArticle(ctx context.Context, table ArticleTable, arg CreateArticleParams) (Article, error) {
	if err := table.check(); err != nil {
		return Article{}, err
	}

	res, err := sqlx.NamedExecContext(ctx, q.db, `INSERT INTO `+string(table)+`
		(title, title_am, slug, content, content_am, excerpt, excerpt_am,
		 image_path, published, author_id, created_at, updated_at)
		VALUES (:title, :title_am, :slug, :content, :content_am, :excerpt, :excerpt_am,
		 :image_path, :published, :author_id, :created_at, :updated_at)`, arg)
	if err != nil {
		return Article{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Article{}, fmt.Errorf("reading %s id: %w", table, err)
	}

	return Article{
		ID:        id,
		Title:     arg.Title,
		TitleAm:   arg.TitleAm,
		Slug:      arg.Slug,
		Content:   arg.Content,
		ContentAm: arg.ContentAm,
		Excerpt:   arg.Excerpt,
		ExcerptAm: arg.ExcerptAm,
		ImagePath: arg.ImagePath,
		Published: arg.Published,
		AuthorID:  arg.AuthorID,
		CreatedAt: arg.CreatedAt,
		UpdatedAt: arg.UpdatedAt,
	}, nil
}

// UpdateArticle writes every mutable column of a; ID and CreatedAt are
// only used to locate the row.
func (q *Queries) UpdateArticle(ctx context.Context, table ArticleTable, a Article) error {
	if err := table.check(); err != nil {
		return err
	}
	_, err := sqlx.NamedExecContext(ctx, q.db, `UPDATE `+string(table)+` SET
		title = :title, title_am = :title_am, slug = :slug,
		content = :content, content_am = :content_am,
		excerpt = :excerpt, excerpt_am = :excerpt_am,
		image_path = :image_path, published = :published, updated_at = :updated_at
		WHERE id = :id`, a)
	return err
}

func (q *Queries) DeleteArticle(ctx context.Context, table ArticleTable, id int64) error {
	if err := table.check(); err != nil {
		return err
	}
	_, err := q.db.ExecContext(ctx, "DELETE FROM "+string(table)+" WHERE id = ?", id)
	return err
}

func (q *Queries) CountArticles(ctx context.Context, table ArticleTable, publishedOnly bool) (int64, error) {
	if err := table.check(); err != nil {
		return 0, err
	}
	query := "SELECT COUNT(*) FROM " + string(table)
	var args []any
	if publishedOnly {
		query += " WHERE published = ?"
		args = append(args, true)
	}
	var n int64
	err := sqlx.GetContext(ctx, q.db, &n, query, args...)
	return n, err
}

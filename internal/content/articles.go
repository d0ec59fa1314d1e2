// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/brightside-go/internal/i18n"
	"github.com/olegiv/brightside-go/internal/store"
	"github.com/olegiv/brightside-go/internal/util"
)

// LocalizedArticle is a news item or blog post resolved to one language.
// Content is left empty in listings.
type LocalizedArticle struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content,omitempty"`
	Excerpt   *string   `json:"excerpt"`
	ImagePath *string   `json:"image_path"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ArticleRecord is the full bilingual row as edited in the admin panel.
type ArticleRecord struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	TitleAm   *string   `json:"title_am"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	ContentAm *string   `json:"content_am"`
	Excerpt   *string   `json:"excerpt"`
	ExcerptAm *string   `json:"excerpt_am"`
	ImagePath *string   `json:"image_path"`
	Published bool      `json:"published"`
	AuthorID  *int64    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ArticleInput is the body of a create request.
type ArticleInput struct {
	Title     string `json:"title"`
	TitleAm   string `json:"title_am"`
	Content   string `json:"content"`
	ContentAm string `json:"content_am"`
	Excerpt   string `json:"excerpt"`
	ExcerptAm string `json:"excerpt_am"`
	ImagePath string `json:"image_path"`
	Published bool   `json:"published"`
}

// ArticlePatch is a partial update; nil fields are left unchanged and
// empty optional fields are cleared.
type ArticlePatch struct {
	Title     *string `json:"title"`
	TitleAm   *string `json:"title_am"`
	Content   *string `json:"content"`
	ContentAm *string `json:"content_am"`
	Excerpt   *string `json:"excerpt"`
	ExcerptAm *string `json:"excerpt_am"`
	ImagePath *string `json:"image_path"`
	Published *bool   `json:"published"`
}

// ArticleRepository serves one of the two article tables (news or blog).
type ArticleRepository struct {
	q     *store.Queries
	table store.ArticleTable
	kind  string
	opts  Options
	lists *listCache[[]LocalizedArticle]
}

// NewNewsRepository returns the repository for news items.
func NewNewsRepository(q *store.Queries, opts Options) *ArticleRepository {
	return newArticleRepository(q, store.NewsTable, "news", opts)
}

// NewBlogRepository returns the repository for blog posts.
func NewBlogRepository(q *store.Queries, opts Options) *ArticleRepository {
	return newArticleRepository(q, store.BlogTable, "blog", opts)
}

func newArticleRepository(q *store.Queries, table store.ArticleTable, kind string, opts Options) *ArticleRepository {
	return &ArticleRepository{
		q:     q,
		table: table,
		kind:  kind,
		opts:  opts,
		lists: newListCache[[]LocalizedArticle](opts),
	}
}

// Kind is the entity name used in cache keys and log records.
func (r *ArticleRepository) Kind() string { return r.kind }

func (r *ArticleRepository) List(ctx context.Context, opts ListOptions) ([]LocalizedArticle, error) {
	if err := checkListAccess(ctx, opts); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s:list:%s:%d", r.kind, opts.Language, max(opts.Limit, 0))
	if opts.PublishedOnly {
		if items, ok := r.lists.get(ctx, key); ok {
			return items, nil
		}
	}

	gen := r.lists.generation()
	rows, err := r.q.ListArticles(ctx, r.table, store.ListArticlesParams{
		PublishedOnly: opts.PublishedOnly,
		Limit:         opts.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", r.kind, err)
	}

	items := make([]LocalizedArticle, 0, len(rows))
	for _, row := range rows {
		a := localizeArticle(row, opts.Language)
		a.Content = ""
		items = append(items, a)
	}

	if opts.PublishedOnly {
		r.lists.fill(ctx, key, gen, items)
	}
	return items, nil
}

// GetBySlug returns one localized article. Unpublished articles are only
// visible to signed-in callers.
func (r *ArticleRepository) GetBySlug(ctx context.Context, slug string, lang i18n.Lang) (LocalizedArticle, error) {
	row, err := r.q.GetArticleBySlug(ctx, r.table, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LocalizedArticle{}, ErrNotFound
		}
		return LocalizedArticle{}, fmt.Errorf("loading %s by slug: %w", r.kind, err)
	}
	if !row.Published && !canSeeUnpublished(ctx) {
		return LocalizedArticle{}, ErrNotFound
	}
	return localizeArticle(row, lang), nil
}

// GetByID returns the raw bilingual row for editing.
func (r *ArticleRepository) GetByID(ctx context.Context, id int64) (ArticleRecord, error) {
	if _, err := requireIdentity(ctx); err != nil {
		return ArticleRecord{}, err
	}
	row, err := r.load(ctx, id)
	if err != nil {
		return ArticleRecord{}, err
	}
	return articleRecord(row), nil
}

func (r *ArticleRepository) Create(ctx context.Context, in ArticleInput) (ArticleRecord, error) {
	author, err := requireIdentity(ctx)
	if err != nil {
		return ArticleRecord{}, err
	}

	title := strings.TrimSpace(in.Title)
	body := strings.TrimSpace(in.Content)
	if title == "" {
		return ArticleRecord{}, required("title")
	}
	if body == "" {
		return ArticleRecord{}, required("content")
	}
	slug, err := slugFor(title)
	if err != nil {
		return ArticleRecord{}, err
	}

	now := r.opts.now().UTC()
	row, err := r.q.CreateArticle(ctx, r.table, store.CreateArticleParams{
		Title:     title,
		TitleAm:   util.NullStringFromValue(in.TitleAm),
		Slug:      slug,
		Content:   body,
		ContentAm: util.NullStringFromValue(in.ContentAm),
		Excerpt:   util.NullStringFromValue(in.Excerpt),
		ExcerptAm: util.NullStringFromValue(in.ExcerptAm),
		ImagePath: util.NullStringFromValue(in.ImagePath),
		Published: in.Published,
		AuthorID:  util.NullInt64FromValue(author.ID),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return ArticleRecord{}, mapWriteError("creating "+r.kind, err)
	}

	r.lists.invalidateLogged(ctx, r.kind+":")
	return articleRecord(row), nil
}

// Update merges patch into the stored row. The slug is regenerated only
// when the title changes; a replaced image file is removed afterwards.
func (r *ArticleRepository) Update(ctx context.Context, id int64, patch ArticlePatch) (ArticleRecord, error) {
	if _, err := requireIdentity(ctx); err != nil {
		return ArticleRecord{}, err
	}

	row, err := r.load(ctx, id)
	if err != nil {
		return ArticleRecord{}, err
	}
	previousImage := row.ImagePath

	title, err := mergeText("title", patch.Title, row.Title)
	if err != nil {
		return ArticleRecord{}, err
	}
	if title != row.Title {
		if row.Slug, err = slugFor(title); err != nil {
			return ArticleRecord{}, err
		}
		row.Title = title
	}
	if row.Content, err = mergeText("content", patch.Content, row.Content); err != nil {
		return ArticleRecord{}, err
	}
	if patch.TitleAm != nil {
		row.TitleAm = util.NullStringFromPtr(patch.TitleAm)
	}
	if patch.ContentAm != nil {
		row.ContentAm = util.NullStringFromPtr(patch.ContentAm)
	}
	if patch.Excerpt != nil {
		row.Excerpt = util.NullStringFromPtr(patch.Excerpt)
	}
	if patch.ExcerptAm != nil {
		row.ExcerptAm = util.NullStringFromPtr(patch.ExcerptAm)
	}
	if patch.ImagePath != nil {
		row.ImagePath = util.NullStringFromPtr(patch.ImagePath)
	}
	if patch.Published != nil {
		row.Published = *patch.Published
	}
	row.UpdatedAt = r.opts.now().UTC()

	if err := r.q.UpdateArticle(ctx, r.table, row); err != nil {
		return ArticleRecord{}, mapWriteError("updating "+r.kind, err)
	}

	if previousImage.Valid && previousImage != row.ImagePath {
		removeUpload(r.opts.UploadsDir, previousImage.String)
	}
	r.lists.invalidateLogged(ctx, r.kind+":")
	return articleRecord(row), nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	if _, err := requireIdentity(ctx); err != nil {
		return err
	}

	row, err := r.load(ctx, id)
	if err != nil {
		return err
	}
	if err := r.q.DeleteArticle(ctx, r.table, id); err != nil {
		return fmt.Errorf("deleting %s: %w", r.kind, err)
	}

	if row.ImagePath.Valid {
		removeUpload(r.opts.UploadsDir, row.ImagePath.String)
	}
	r.lists.invalidateLogged(ctx, r.kind+":")
	return nil
}

// Count returns the number of rows, optionally published ones only.
func (r *ArticleRepository) Count(ctx context.Context, publishedOnly bool) (int64, error) {
	n, err := r.q.CountArticles(ctx, r.table, publishedOnly)
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", r.kind, err)
	}
	return n, nil
}

func (r *ArticleRepository) load(ctx context.Context, id int64) (store.Article, error) {
	row, err := r.q.GetArticleByID(ctx, r.table, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Article{}, ErrNotFound
		}
		return store.Article{}, fmt.Errorf("loading %s: %w", r.kind, err)
	}
	return row, nil
}

func localizeArticle(a store.Article, lang i18n.Lang) LocalizedArticle {
	excerpt := a.Excerpt
	if lang == i18n.Amharic {
		excerpt = util.CoalesceNull(a.ExcerptAm, a.Excerpt)
	}
	return LocalizedArticle{
		ID:        a.ID,
		Title:     localize(lang, util.StringPtr(a.TitleAm), a.Title),
		Slug:      a.Slug,
		Content:   localize(lang, util.StringPtr(a.ContentAm), a.Content),
		Excerpt:   util.StringPtr(excerpt),
		ImagePath: util.StringPtr(a.ImagePath),
		Published: a.Published,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func articleRecord(a store.Article) ArticleRecord {
	return ArticleRecord{
		ID:        a.ID,
		Title:     a.Title,
		TitleAm:   util.StringPtr(a.TitleAm),
		Slug:      a.Slug,
		Content:   a.Content,
		ContentAm: util.StringPtr(a.ContentAm),
		Excerpt:   util.StringPtr(a.Excerpt),
		ExcerptAm: util.StringPtr(a.ExcerptAm),
		ImagePath: util.StringPtr(a.ImagePath),
		Published: a.Published,
		AuthorID:  util.Int64Ptr(a.AuthorID),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

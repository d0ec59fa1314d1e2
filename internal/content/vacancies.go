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

// LocalizedVacancy is a vacancy resolved to one language. Description and
// Requirements are left empty in listings.
type LocalizedVacancy struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description,omitempty"`
	Requirements   *string   `json:"requirements,omitempty"`
	Location       *string   `json:"location"`
	Type           *string   `json:"type"`
	GoogleFormLink *string   `json:"google_form_link"`
	Deadline       *string   `json:"deadline"`
	Published      bool      `json:"published"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type VacancyRecord struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	TitleAm        *string   `json:"title_am"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description"`
	DescriptionAm  *string   `json:"description_am"`
	Requirements   *string   `json:"requirements"`
	RequirementsAm *string   `json:"requirements_am"`
	Location       *string   `json:"location"`
	LocationAm     *string   `json:"location_am"`
	Type           *string   `json:"type"`
	TypeAm         *string   `json:"type_am"`
	GoogleFormLink *string   `json:"google_form_link"`
	Deadline       *string   `json:"deadline"`
	Published      bool      `json:"published"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type VacancyInput struct {
	Title          string `json:"title"`
	TitleAm        string `json:"title_am"`
	Description    string `json:"description"`
	DescriptionAm  string `json:"description_am"`
	Requirements   string `json:"requirements"`
	RequirementsAm string `json:"requirements_am"`
	Location       string `json:"location"`
	LocationAm     string `json:"location_am"`
	Type           string `json:"type"`
	TypeAm         string `json:"type_am"`
	GoogleFormLink string `json:"google_form_link"`
	Deadline       string `json:"deadline"` // YYYY-MM-DD, optional
	Published      bool   `json:"published"`
}

// VacancyPatch is a partial update. An empty Deadline clears it.
type VacancyPatch struct {
	Title          *string `json:"title"`
	TitleAm        *string `json:"title_am"`
	Description    *string `json:"description"`
	DescriptionAm  *string `json:"description_am"`
	Requirements   *string `json:"requirements"`
	RequirementsAm *string `json:"requirements_am"`
	Location       *string `json:"location"`
	LocationAm     *string `json:"location_am"`
	Type           *string `json:"type"`
	TypeAm         *string `json:"type_am"`
	GoogleFormLink *string `json:"google_form_link"`
	Deadline       *string `json:"deadline"`
	Published      *bool   `json:"published"`
}

// VacancyCacheKind prefixes every cached vacancy listing.
const VacancyCacheKind = "vacancies"

type VacancyRepository struct {
	q     *store.Queries
	opts  Options
	lists *listCache[[]LocalizedVacancy]
}

func NewVacancyRepository(q *store.Queries, opts Options) *VacancyRepository {
	return &VacancyRepository{
		q:     q,
		opts:  opts,
		lists: newListCache[[]LocalizedVacancy](opts),
	}
}

// Today is the date deadlines are compared against, in the server's
// local time zone.
func (r *VacancyRepository) Today() string {
	return r.opts.now().Format(time.DateOnly)
}

// List returns vacancies newest first. With PublishedOnly, vacancies whose
// deadline has passed are left out; a deadline of today is still open.
func (r *VacancyRepository) List(ctx context.Context, opts ListOptions) ([]LocalizedVacancy, error) {
	if err := checkListAccess(ctx, opts); err != nil {
		return nil, err
	}

	today := r.Today()
	// The date is part of the key so listings roll over at midnight.
	key := fmt.Sprintf("%s:list:%s:%s:%d", VacancyCacheKind, today, opts.Language, max(opts.Limit, 0))
	if opts.PublishedOnly {
		if items, ok := r.lists.get(ctx, key); ok {
			return items, nil
		}
	}

	gen := r.lists.generation()
	rows, err := r.q.ListVacancies(ctx, store.ListVacanciesParams{
		PublishedOnly: opts.PublishedOnly,
		OpenOn:        today,
		Limit:         opts.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("listing vacancies: %w", err)
	}

	items := make([]LocalizedVacancy, 0, len(rows))
	for _, row := range rows {
		v := localizeVacancy(row, opts.Language)
		v.Description = ""
		v.Requirements = nil
		items = append(items, v)
	}

	if opts.PublishedOnly {
		r.lists.fill(ctx, key, gen, items)
	}
	return items, nil
}

func (r *VacancyRepository) GetBySlug(ctx context.Context, slug string, lang i18n.Lang) (LocalizedVacancy, error) {
	row, err := r.q.GetVacancyBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LocalizedVacancy{}, ErrNotFound
		}
		return LocalizedVacancy{}, fmt.Errorf("loading vacancy by slug: %w", err)
	}
	if !row.Published && !canSeeUnpublished(ctx) {
		return LocalizedVacancy{}, ErrNotFound
	}
	return localizeVacancy(row, lang), nil
}

func (r *VacancyRepository) GetByID(ctx context.Context, id int64) (VacancyRecord, error) {
	if _, err := requireIdentity(ctx); err != nil {
		return VacancyRecord{}, err
	}
	row, err := r.load(ctx, id)
	if err != nil {
		return VacancyRecord{}, err
	}
	return vacancyRecord(row), nil
}

func (r *VacancyRepository) Create(ctx context.Context, in VacancyInput) (VacancyRecord, error) {
	if _, err := requireIdentity(ctx); err != nil {
		return VacancyRecord{}, err
	}

	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" {
		return VacancyRecord{}, required("title")
	}
	if description == "" {
		return VacancyRecord{}, required("description")
	}
	deadline, err := parseDeadline(in.Deadline)
	if err != nil {
		return VacancyRecord{}, err
	}
	slug, err := slugFor(title)
	if err != nil {
		return VacancyRecord{}, err
	}

	now := r.opts.now().UTC()
	row, err := r.q.CreateVacancy(ctx, store.CreateVacancyParams{
		Title:          title,
		TitleAm:        util.NullStringFromValue(in.TitleAm),
		Slug:           slug,
		Description:    description,
		DescriptionAm:  util.NullStringFromValue(in.DescriptionAm),
		Requirements:   util.NullStringFromValue(in.Requirements),
		RequirementsAm: util.NullStringFromValue(in.RequirementsAm),
		Location:       util.NullStringFromValue(in.Location),
		LocationAm:     util.NullStringFromValue(in.LocationAm),
		Type:           util.NullStringFromValue(in.Type),
		TypeAm:         util.NullStringFromValue(in.TypeAm),
		GoogleFormLink: util.NullStringFromValue(in.GoogleFormLink),
		Deadline:       deadline,
		Published:      in.Published,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return VacancyRecord{}, mapWriteError("creating vacancy", err)
	}

	r.lists.invalidateLogged(ctx, VacancyCacheKind+":")
	return vacancyRecord(row), nil
}

func (r *VacancyRepository) Update(ctx context.Context, id int64, patch VacancyPatch) (VacancyRecord, error) {
	if _, err := requireIdentity(ctx); err != nil {
		return VacancyRecord{}, err
	}

	row, err := r.load(ctx, id)
	if err != nil {
		return VacancyRecord{}, err
	}

	title, err := mergeText("title", patch.Title, row.Title)
	if err != nil {
		return VacancyRecord{}, err
	}
	if title != row.Title {
		if row.Slug, err = slugFor(title); err != nil {
			return VacancyRecord{}, err
		}
		row.Title = title
	}
	if row.Description, err = mergeText("description", patch.Description, row.Description); err != nil {
		return VacancyRecord{}, err
	}
	if patch.Deadline != nil {
		if row.Deadline, err = parseDeadline(*patch.Deadline); err != nil {
			return VacancyRecord{}, err
		}
	}

	optional := []struct {
		patch *string
		dst   *sql.NullString
	}{
		{patch.TitleAm, &row.TitleAm},
		{patch.DescriptionAm, &row.DescriptionAm},
		{patch.Requirements, &row.Requirements},
		{patch.RequirementsAm, &row.RequirementsAm},
		{patch.Location, &row.Location},
		{patch.LocationAm, &row.LocationAm},
		{patch.Type, &row.Type},
		{patch.TypeAm, &row.TypeAm},
		{patch.GoogleFormLink, &row.GoogleFormLink},
	}
	for _, f := range optional {
		if f.patch != nil {
			*f.dst = util.NullStringFromPtr(f.patch)
		}
	}
	if patch.Published != nil {
		row.Published = *patch.Published
	}
	row.UpdatedAt = r.opts.now().UTC()

	if err := r.q.UpdateVacancy(ctx, row); err != nil {
		return VacancyRecord{}, mapWriteError("updating vacancy", err)
	}

	r.lists.invalidateLogged(ctx, VacancyCacheKind+":")
	return vacancyRecord(row), nil
}

func (r *VacancyRepository) Delete(ctx context.Context, id int64) error {
	if _, err := requireIdentity(ctx); err != nil {
		return err
	}
	if _, err := r.load(ctx, id); err != nil {
		return err
	}
	if err := r.q.DeleteVacancy(ctx, id); err != nil {
		return fmt.Errorf("deleting vacancy: %w", err)
	}
	r.lists.invalidateLogged(ctx, VacancyCacheKind+":")
	return nil
}

// CountOpen returns the number of published vacancies still open today.
func (r *VacancyRepository) CountOpen(ctx context.Context) (int64, error) {
	n, err := r.q.CountOpenVacancies(ctx, r.Today())
	if err != nil {
		return 0, fmt.Errorf("counting vacancies: %w", err)
	}
	return n, nil
}

// ExpireCache drops every cached listing so rows whose deadline has just
// passed stop being served.
func (r *VacancyRepository) ExpireCache(ctx context.Context) error {
	return r.lists.invalidate(ctx, VacancyCacheKind+":")
}

func (r *VacancyRepository) load(ctx context.Context, id int64) (store.Vacancy, error) {
	row, err := r.q.GetVacancyByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Vacancy{}, ErrNotFound
		}
		return store.Vacancy{}, fmt.Errorf("loading vacancy: %w", err)
	}
	return row, nil
}

// parseDeadline accepts "" (no deadline) or a YYYY-MM-DD date. A full
// timestamp is cut back to its date part.
func parseDeadline(s string) (sql.NullString, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullString{}, nil
	}
	if len(s) > len(time.DateOnly) && s[len(time.DateOnly)] == 'T' {
		s = s[:len(time.DateOnly)]
	}
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return sql.NullString{}, invalid("deadline", "must be a date in YYYY-MM-DD format")
	}
	return sql.NullString{String: d.Format(time.DateOnly), Valid: true}, nil
}

func localizeVacancy(v store.Vacancy, lang i18n.Lang) LocalizedVacancy {
	pick := func(am, en sql.NullString) *string {
		if lang == i18n.Amharic {
			return util.StringPtr(util.CoalesceNull(am, en))
		}
		return util.StringPtr(en)
	}
	return LocalizedVacancy{
		ID:             v.ID,
		Title:          localize(lang, util.StringPtr(v.TitleAm), v.Title),
		Slug:           v.Slug,
		Description:    localize(lang, util.StringPtr(v.DescriptionAm), v.Description),
		Requirements:   pick(v.RequirementsAm, v.Requirements),
		Location:       pick(v.LocationAm, v.Location),
		Type:           pick(v.TypeAm, v.Type),
		GoogleFormLink: util.StringPtr(v.GoogleFormLink),
		Deadline:       util.StringPtr(v.Deadline),
		Published:      v.Published,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

func vacancyRecord(v store.Vacancy) VacancyRecord {
	return VacancyRecord{
		ID:             v.ID,
		Title:          v.Title,
		TitleAm:        util.StringPtr(v.TitleAm),
		Slug:           v.Slug,
		Description:    v.Description,
		DescriptionAm:  util.StringPtr(v.DescriptionAm),
		Requirements:   util.StringPtr(v.Requirements),
		RequirementsAm: util.StringPtr(v.RequirementsAm),
		Location:       util.StringPtr(v.Location),
		LocationAm:     util.StringPtr(v.LocationAm),
		Type:           util.StringPtr(v.Type),
		TypeAm:         util.StringPtr(v.TypeAm),
		GoogleFormLink: util.StringPtr(v.GoogleFormLink),
		Deadline:       util.StringPtr(v.Deadline),
		Published:      v.Published,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

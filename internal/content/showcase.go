// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"fmt"

	"github.com/olegiv/brightside-go/internal/i18n"
	"github.com/olegiv/brightside-go/internal/store"
	"github.com/olegiv/brightside-go/internal/util"
)

type Testimonial struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Role      *string `json:"role"`
	Content   string  `json:"content"`
	ImagePath *string `json:"image_path"`
}

type Partner struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	LogoPath   string  `json:"logo_path"`
	WebsiteURL *string `json:"website_url"`
}

// ShowcaseRepository serves the testimonials and partners shown on the
// home page. These lists are maintained directly in the database.
type ShowcaseRepository struct {
	q            *store.Queries
	testimonials *listCache[[]Testimonial]
	partners     *listCache[[]Partner]
}

func NewShowcaseRepository(q *store.Queries, opts Options) *ShowcaseRepository {
	return &ShowcaseRepository{
		q:            q,
		testimonials: newListCache[[]Testimonial](opts),
		partners:     newListCache[[]Partner](opts),
	}
}

func (r *ShowcaseRepository) Testimonials(ctx context.Context, lang i18n.Lang) ([]Testimonial, error) {
	key := "testimonials:" + string(lang)
	if items, ok := r.testimonials.get(ctx, key); ok {
		return items, nil
	}

	gen := r.testimonials.generation()
	rows, err := r.q.ListActiveTestimonials(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing testimonials: %w", err)
	}
	items := make([]Testimonial, 0, len(rows))
	for _, t := range rows {
		role := t.Role
		if lang == i18n.Amharic {
			role = util.CoalesceNull(t.RoleAm, t.Role)
		}
		items = append(items, Testimonial{
			ID:        t.ID,
			Name:      localize(lang, util.StringPtr(t.NameAm), t.Name),
			Role:      util.StringPtr(role),
			Content:   localize(lang, util.StringPtr(t.ContentAm), t.Content),
			ImagePath: util.StringPtr(t.ImagePath),
		})
	}

	r.testimonials.fill(ctx, key, gen, items)
	return items, nil
}

func (r *ShowcaseRepository) Partners(ctx context.Context, lang i18n.Lang) ([]Partner, error) {
	key := "partners:" + string(lang)
	if items, ok := r.partners.get(ctx, key); ok {
		return items, nil
	}

	gen := r.partners.generation()
	rows, err := r.q.ListActivePartners(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing partners: %w", err)
	}
	items := make([]Partner, 0, len(rows))
	for _, p := range rows {
		items = append(items, Partner{
			ID:         p.ID,
			Name:       localize(lang, util.StringPtr(p.NameAm), p.Name),
			LogoPath:   p.LogoPath,
			WebsiteURL: util.StringPtr(p.WebsiteURL),
		})
	}

	r.partners.fill(ctx, key, gen, items)
	return items, nil
}

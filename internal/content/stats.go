// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import "context"

// DashboardStats are the counters on the admin landing page.
type DashboardStats struct {
	News           int64 `json:"news"`
	PublishedNews  int64 `json:"published_news"`
	Blog           int64 `json:"blog"`
	PublishedBlog  int64 `json:"published_blog"`
	OpenVacancies  int64 `json:"open_vacancies"`
	UnreadMessages int64 `json:"unread_messages"`
}

// Dashboard gathers the admin counters. Identity is required.
func Dashboard(ctx context.Context, news, blog *ArticleRepository, vacancies *VacancyRepository, messages *MessageRepository) (DashboardStats, error) {
	if _, err := requireIdentity(ctx); err != nil {
		return DashboardStats{}, err
	}

	var s DashboardStats
	var err error
	if s.News, err = news.Count(ctx, false); err != nil {
		return s, err
	}
	if s.PublishedNews, err = news.Count(ctx, true); err != nil {
		return s, err
	}
	if s.Blog, err = blog.Count(ctx, false); err != nil {
		return s, err
	}
	if s.PublishedBlog, err = blog.Count(ctx, true); err != nil {
		return s, err
	}
	if s.OpenVacancies, err = vacancies.CountOpen(ctx); err != nil {
		return s, err
	}
	if s.UnreadMessages, err = messages.UnreadCount(ctx); err != nil {
		return s, err
	}
	return s, nil
}

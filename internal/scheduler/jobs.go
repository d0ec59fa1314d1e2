// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Default schedules for the built-in jobs.
const (
	VacancyExpirySchedule = "0 0 * * *"  // local midnight
	EventPruneSchedule    = "30 3 * * *" // daily, off-peak
)

// CacheExpirer drops cached listings whose contents depend on the date.
type CacheExpirer interface {
	ExpireCache(ctx context.Context) error
}

// EventPruner deletes log entries older than a retention window.
type EventPruner interface {
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

// VacancyExpiryJob clears cached vacancy listings when the date changes so
// that vacancies whose deadline has passed stop appearing.
func VacancyExpiryJob(vacancies CacheExpirer) Job {
	return Job{
		Name:        "vacancy-expiry",
		Description: "Drop cached vacancy listings at midnight",
		Schedule:    VacancyExpirySchedule,
		Run:         vacancies.ExpireCache,
	}
}

// EventPruneJob removes event log entries older than retentionDays.
func EventPruneJob(events EventPruner, retentionDays int, logger *slog.Logger) Job {
	retention := time.Duration(retentionDays) * 24 * time.Hour
	return Job{
		Name:        "event-prune",
		Description: "Delete old event log entries",
		Schedule:    EventPruneSchedule,
		Run: func(ctx context.Context) error {
			n, err := events.Prune(ctx, retention)
			if err != nil {
				return err
			}
			if n > 0 {
				logger.Info("pruned event log", "deleted", n, "retention_days", retentionDays)
			}
			return nil
		},
	}
}

// Default builds a scheduler with the built-in jobs. Event pruning is
// skipped when retentionDays is not positive.
func Default(logger *slog.Logger, vacancies CacheExpirer, events EventPruner, retentionDays int) (*Scheduler, error) {
	s := New(logger, 0)
	if err := s.Add(VacancyExpiryJob(vacancies)); err != nil {
		return nil, err
	}
	if retentionDays > 0 {
		if err := s.Add(EventPruneJob(events, retentionDays, s.logger)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

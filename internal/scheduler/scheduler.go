// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrJobNotFound is returned by TriggerNow for an unknown job name.
var ErrJobNotFound = errors.New("job not found")

// Job is a named unit of periodic work.
type Job struct {
	Name        string
	Description string
	Schedule    string // standard five-field cron expression or descriptor
	Run         func(ctx context.Context) error
}

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Schedule    string    `json:"schedule"`
	LastRun     time.Time `json:"last_run"`
	NextRun     time.Time `json:"next_run"`
	LastError   string    `json:"last_error,omitempty"`
}

type entry struct {
	job     Job
	id      cron.EntryID
	lastErr string
}

// Scheduler wraps a cron instance. Jobs run in server-local time, which is
// also the clock vacancy deadlines are compared against.
type Scheduler struct {
	cron    *cron.Cron
	logger  *slog.Logger
	timeout time.Duration

	mu   sync.Mutex
	jobs map[string]*entry
}

// New creates a scheduler. Each run is bounded by timeout (default one minute).
func New(logger *slog.Logger, timeout time.Duration) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.Local),
			cron.WithChain(cron.Recover(cronLogger{logger}), cron.SkipIfStillRunning(cronLogger{logger})),
		),
		logger:  logger,
		timeout: timeout,
		jobs:    make(map[string]*entry),
	}
}

// Add registers a job. Names must be unique.
func (s *Scheduler) Add(job Job) error {
	if job.Name == "" || job.Run == nil {
		return fmt.Errorf("job needs a name and a run function")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.Name]; exists {
		return fmt.Errorf("job already registered: %s", job.Name)
	}

	e := &entry{job: job}
	id, err := s.cron.AddFunc(job.Schedule, func() { _ = s.run(context.Background(), e) })
	if err != nil {
		return fmt.Errorf("invalid cron expression %q for %s: %w", job.Schedule, job.Name, err)
	}
	e.id = id
	s.jobs[job.Name] = e

	s.logger.Debug("registered scheduled job", "name", job.Name, "schedule", job.Schedule)
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn("scheduler stop timed out; jobs still running")
	}
}

// Jobs lists registered jobs by name.
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]JobInfo, 0, len(s.jobs))
	for _, e := range s.jobs {
		ce := s.cron.Entry(e.id)
		out = append(out, JobInfo{
			Name:        e.job.Name,
			Description: e.job.Description,
			Schedule:    e.job.Schedule,
			LastRun:     ce.Prev,
			NextRun:     ce.Next,
			LastError:   e.lastErr,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// TriggerNow runs a job synchronously, outside its schedule.
func (s *Scheduler) TriggerNow(ctx context.Context, name string) error {
	s.mu.Lock()
	e, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}

	s.logger.Info("manually triggering job", "name", name)
	return s.run(ctx, e)
}

func (s *Scheduler) run(ctx context.Context, e *entry) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	err := e.job.Run(ctx)

	s.mu.Lock()
	e.lastErr = ""
	if err != nil {
		e.lastErr = err.Error()
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("scheduled job failed", "name", e.job.Name, "error", err, "category", "system")
		return err
	}
	s.logger.Debug("scheduled job finished", "name", e.job.Name, "duration", time.Since(start))
	return nil
}

// cronLogger adapts slog to cron's logging interface.
type cronLogger struct{ l *slog.Logger }

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}

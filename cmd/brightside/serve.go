// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/olegiv/brightside-go/internal/auth"
	"github.com/olegiv/brightside-go/internal/cache"
	"github.com/olegiv/brightside-go/internal/config"
	"github.com/olegiv/brightside-go/internal/content"
	"github.com/olegiv/brightside-go/internal/handler"
	"github.com/olegiv/brightside-go/internal/i18n"
	"github.com/olegiv/brightside-go/internal/logging"
	"github.com/olegiv/brightside-go/internal/middleware"
	"github.com/olegiv/brightside-go/internal/render"
	"github.com/olegiv/brightside-go/internal/scheduler"
	"github.com/olegiv/brightside-go/internal/service"
	"github.com/olegiv/brightside-go/internal/store"
	"github.com/olegiv/brightside-go/internal/version"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Run migrations, make sure the bootstrap admin exists, start the scheduled
jobs and serve the API until SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	base := logging.NewBaseHandler(os.Stdout, cfg.IsDevelopment(), cfg.SlogLevel())
	slog.SetDefault(slog.New(base))

	if err := i18n.Init(); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	slog.Info("running database migrations", "driver", cfg.DBDriver)
	if err := store.Migrate(db); err != nil {
		return err
	}
	q := store.New(db)

	// From here on WARN and ERROR records also land in the event log.
	logger := slog.New(logging.NewEventLogHandler(base, q))
	slog.SetDefault(logger)

	hasher := auth.NewHasher(cfg.Pepper())
	if err := store.Seed(ctx, q, hasher, adminSeed(cfg)); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	contentCache, err := cache.New(ctx, cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: cfg.CacheTTL,
	})
	if err != nil {
		return err
	}
	defer func() { _ = contentCache.Close() }()

	opts := content.Options{
		UploadsDir: cfg.UploadsDir,
		Cache:      contentCache,
		CacheTTL:   cfg.CacheTTL,
	}
	vacancies := content.NewVacancyRepository(q, opts)
	events := service.NewEventService(q)

	codec := auth.NewTokenCodec([]byte(cfg.JWTSecret))
	creds, err := service.NewCredentials(q, hasher, codec)
	if err != nil {
		return err
	}

	sched, err := scheduler.Default(logger, vacancies, events, cfg.EventRetentionDays)
	if err != nil {
		return fmt.Errorf("configuring scheduler: %w", err)
	}
	sched.Start()

	protection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	defer protection.Close()

	router := handler.NewRouter(handler.Deps{
		Config:          cfg,
		DB:              db,
		Cache:           contentCache,
		Codec:           codec,
		Credentials:     creds,
		Events:          events,
		News:            content.NewNewsRepository(q, opts),
		Blog:            content.NewBlogRepository(q, opts),
		Vacancies:       vacancies,
		Messages:        content.NewMessageRepository(q, opts),
		Showcase:        content.NewShowcaseRepository(q, opts),
		Markdown:        render.NewMarkdown(),
		LoginProtection: protection,
		Jobs:            sched,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", srv.Addr, "env", cfg.Env, "version", version.Get().Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			sched.Stop(context.Background())
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	sched.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

// openDatabase connects using the configured driver. For SQLite the
// directory holding the database file is created first.
func openDatabase(cfg *config.Config) (*sqlx.DB, error) {
	if cfg.DBDriver == config.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DBDSN), 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}
	return store.Open(cfg.DBDriver, cfg.DBDSN, store.DefaultDBConfig())
}

func adminSeed(cfg *config.Config) store.AdminSeed {
	return store.AdminSeed{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
		Email:    cfg.AdminEmail,
	}
}

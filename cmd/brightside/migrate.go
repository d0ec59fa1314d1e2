// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/olegiv/brightside-go/internal/config"
	"github.com/olegiv/brightside-go/internal/store"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(func(db *sqlx.DB) error {
				if err := store.Migrate(db); err != nil {
					return err
				}
				return printSchemaVersion(cmd, db)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(func(db *sqlx.DB) error {
				if err := store.MigrateDown(db); err != nil {
					return err
				}
				return printSchemaVersion(cmd, db)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show which migrations have been applied",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return withDatabase(store.MigrationStatus)
		},
	})

	return cmd
}

// withDatabase loads the configuration, opens the database and hands it
// to fn.
func withDatabase(fn func(db *sqlx.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
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
	return fn(db)
}

func printSchemaVersion(cmd *cobra.Command, db *sqlx.DB) error {
	v, err := store.SchemaVersion(db)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version: %d\n", v)
	return nil
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/olegiv/brightside-go/internal/auth"
	"github.com/olegiv/brightside-go/internal/config"
	"github.com/olegiv/brightside-go/internal/service"
	"github.com/olegiv/brightside-go/internal/store"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage administrator accounts",
	}
	cmd.AddCommand(newResetPasswordCmd())
	return cmd
}

func newResetPasswordCmd() *cobra.Command {
	var username, password, email string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set an administrator password, creating the account if needed",
		Example: `  brightside admin reset-password --username admin --password 'n3w-s3cret!'
  brightside admin reset-password --username editor --password 'pass-word-1' --email editor@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if username == "" {
				return errors.New("--username is required")
			}
			if len([]rune(password)) < service.MinPasswordLength {
				return fmt.Errorf("--password must be at least %d characters", service.MinPasswordLength)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if email == "" {
				email = username + "@" + emailDomain(cfg.AdminEmail)
			}

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := store.Migrate(db); err != nil {
				return err
			}

			created, err := store.ResetPassword(cmd.Context(), store.New(db), auth.NewHasher(cfg.Pepper()), store.AdminSeed{
				Username: username,
				Password: password,
				Email:    email,
			})
			if err != nil {
				return err
			}

			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "created admin %q\n", username)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "password updated for %q\n", username)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "account username")
	cmd.Flags().StringVar(&password, "password", "", "new password")
	cmd.Flags().StringVar(&email, "email", "", "email for a newly created account")
	return cmd
}

// emailDomain returns the part of addr after the last "@".
func emailDomain(addr string) string {
	if i := strings.LastIndex(addr, "@"); i >= 0 && i < len(addr)-1 {
		return addr[i+1:]
	}
	return "localhost"
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "brightside dev") {
		t.Errorf("version output = %q", out.String())
	}
}

func TestRootCommandTree(t *testing.T) {
	cmd := newRootCmd()
	for _, path := range [][]string{
		{"serve"},
		{"migrate", "up"},
		{"migrate", "down"},
		{"migrate", "status"},
		{"admin", "reset-password"},
		{"version"},
	} {
		found, _, err := cmd.Find(path)
		if err != nil || found.Name() != path[len(path)-1] {
			t.Errorf("command %v not registered", path)
		}
	}
}

func TestEmailDomain(t *testing.T) {
	tests := map[string]string{
		"admin@brightside.edu.et": "brightside.edu.et",
		"a@b@example.com":         "example.com",
		"no-at-sign":              "localhost",
		"trailing@":               "localhost",
	}
	for in, want := range tests {
		if got := emailDomain(in); got != want {
			t.Errorf("emailDomain(%q) = %q, want %q", in, got, want)
		}
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"database/sql"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestNullStringFromValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected sql.NullString
	}{
		{"empty", "", sql.NullString{}},
		{"blank", "   ", sql.NullString{}},
		{"value", "Addis Ababa", sql.NullString{String: "Addis Ababa", Valid: true}},
		{"trimmed", "  ሰላም ", sql.NullString{String: "ሰላም", Valid: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NullStringFromValue(tt.input); got != tt.expected {
				t.Errorf("NullStringFromValue(%q) = %+v, want %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNullStringFromPtr(t *testing.T) {
	if got := NullStringFromPtr(nil); got.Valid {
		t.Errorf("NullStringFromPtr(nil) = %+v, want NULL", got)
	}
	if got := NullStringFromPtr(ptr("")); got.Valid {
		t.Errorf("NullStringFromPtr(\"\") = %+v, want NULL", got)
	}
	if got := NullStringFromPtr(ptr("x")); !got.Valid || got.String != "x" {
		t.Errorf("NullStringFromPtr(x) = %+v", got)
	}
}

func TestPointerHelpers(t *testing.T) {
	if StringPtr(sql.NullString{}) != nil {
		t.Error("StringPtr(NULL) != nil")
	}
	if p := StringPtr(sql.NullString{String: "a", Valid: true}); p == nil || *p != "a" {
		t.Errorf("StringPtr(a) = %v", p)
	}
	if Int64Ptr(sql.NullInt64{}) != nil {
		t.Error("Int64Ptr(NULL) != nil")
	}
	if p := Int64Ptr(NullInt64FromValue(9)); p == nil || *p != 9 {
		t.Errorf("Int64Ptr(9) = %v", p)
	}
}

func TestCoalesce(t *testing.T) {
	tests := []struct {
		name      string
		secondary sql.NullString
		primary   string
		want      string
	}{
		{"null falls back", sql.NullString{}, "News", "News"},
		{"blank falls back", sql.NullString{String: " ", Valid: true}, "News", "News"},
		{"secondary wins", sql.NullString{String: "ዜና", Valid: true}, "News", "ዜና"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Coalesce(tt.secondary, tt.primary); got != tt.want {
				t.Errorf("Coalesce() = %q, want %q", got, tt.want)
			}
		})
	}

	got := CoalesceNull(sql.NullString{}, sql.NullString{String: "Remote", Valid: true})
	if got.String != "Remote" {
		t.Errorf("CoalesceNull() = %+v, want Remote", got)
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"database/sql"
	"strings"
)

// NullStringFromValue creates a sql.NullString from a string value.
// Blank strings (after trimming) become NULL.
func NullStringFromValue(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

// NullStringFromPtr converts an optional string into sql.NullString with
// the same blank-is-NULL rule as NullStringFromValue.
func NullStringFromPtr(ptr *string) sql.NullString {
	if ptr == nil {
		return sql.NullString{}
	}
	return NullStringFromValue(*ptr)
}

// StringPtr returns nil for NULL and a pointer to the value otherwise.
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// NullInt64FromValue creates a valid sql.NullInt64 from an int64 value.
func NullInt64FromValue(val int64) sql.NullInt64 {
	return sql.NullInt64{Int64: val, Valid: true}
}

// Int64Ptr returns nil for NULL and a pointer to the value otherwise.
func Int64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	v := ni.Int64
	return &v
}

// Coalesce returns the secondary value when it is set and the primary
// value otherwise.
func Coalesce(secondary sql.NullString, primary string) string {
	if secondary.Valid && strings.TrimSpace(secondary.String) != "" {
		return secondary.String
	}
	return primary
}

// CoalesceNull is Coalesce for an optional primary value.
func CoalesceNull(secondary, primary sql.NullString) sql.NullString {
	if secondary.Valid && strings.TrimSpace(secondary.String) != "" {
		return secondary
	}
	return primary
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// UploadsURLPrefix is the public URL prefix under which uploaded files
// are served.
const UploadsURLPrefix = "/uploads/"

// ErrNotLocalUpload is returned when an image path does not point into
// the local uploads area (absolute URLs, foreign paths).
var ErrNotLocalUpload = errors.New("not a local upload path")

// ValidatePathWithinBase ensures that a resolved path is within the expected
// base directory. It cleans both paths and checks that the resolved path
// starts with the base path. Returns an error if path traversal is detected.
func ValidatePathWithinBase(basePath, targetPath string) error {
	absBase, err := filepath.Abs(filepath.Clean(basePath))
	if err != nil {
		return fmt.Errorf("invalid base path: %w", err)
	}

	absTarget, err := filepath.Abs(filepath.Clean(targetPath))
	if err != nil {
		return fmt.Errorf("invalid target path: %w", err)
	}

	// Trailing separator keeps /uploads-malicious out when base is /uploads
	if absTarget != absBase && !strings.HasPrefix(absTarget, absBase+string(filepath.Separator)) {
		return fmt.Errorf("path traversal detected: path escapes base directory")
	}

	return nil
}

// SafeJoinPath joins path components and validates the result is within
// the base directory.
func SafeJoinPath(basePath string, components ...string) (string, error) {
	fullPath := filepath.Join(append([]string{basePath}, components...)...)

	if err := ValidatePathWithinBase(basePath, fullPath); err != nil {
		return "", err
	}

	return fullPath, nil
}

// UploadFilePath maps a stored public image path such as
// "/uploads/news/photo.jpg" to its location on disk below uploadsDir.
// Anything that is not a plain "/uploads/..." path yields ErrNotLocalUpload.
func UploadFilePath(uploadsDir, publicPath string) (string, error) {
	if !strings.HasPrefix(publicPath, UploadsURLPrefix) {
		return "", ErrNotLocalUpload
	}
	rel := strings.TrimPrefix(publicPath, UploadsURLPrefix)
	if rel == "" || strings.ContainsAny(rel, "?#\\") {
		return "", ErrNotLocalUpload
	}

	full, err := SafeJoinPath(uploadsDir, filepath.FromSlash(rel))
	if err != nil {
		return "", err
	}
	if filepath.Clean(full) == filepath.Clean(uploadsDir) {
		return "", ErrNotLocalUpload
	}
	return full, nil
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/olegiv/brightside-go/internal/util"
)

// removeUpload deletes the file behind a public "/uploads/..." path.
// Failures are logged and otherwise ignored: the row change has already
// been committed and a stray file is harmless.
func removeUpload(uploadsDir, publicPath string) {
	path, err := util.UploadFilePath(uploadsDir, publicPath)
	if err != nil {
		if !errors.Is(err, util.ErrNotLocalUpload) {
			slog.Warn("refusing to delete image outside uploads directory", "path", publicPath, "error", err)
		}
		return
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("image already removed", "path", path)
			return
		}
		slog.Warn("failed to delete image", "path", path, "error", err)
		return
	}
	slog.Info("deleted image", "path", path)
}

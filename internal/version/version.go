// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

import "fmt"

// Set via -ldflags "-X github.com/olegiv/brightside-go/internal/version.version=..."
var (
	version   = "dev"
	gitCommit = "unknown"
	buildTime = ""
)

// Info contains build-time version information.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time,omitempty"`
}

// Get returns the version the binary was built with.
func Get() Info {
	return Info{Version: version, GitCommit: gitCommit, BuildTime: buildTime}
}

func (i Info) String() string {
	s := fmt.Sprintf("brightside %s (%s)", i.Version, i.GitCommit)
	if i.BuildTime != "" {
		s += " built " + i.BuildTime
	}
	return s
}

// Sunlink
// Copyright (c) 2025 The Sunlink Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Sunlink.
//
// Sunlink is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Sunlink is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Sunlink.  If not, see <http://www.gnu.org/licenses/>.

// Package sunshine talks to a local Sunshine streaming host: detecting its
// installation, authenticating against its HTTPS API and registering games
// as launchable apps.
package sunshine

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/sunlink-project/sunlink/pkg/config"
	"github.com/sunlink-project/sunlink/pkg/helpers"
	"github.com/sunlink-project/sunlink/pkg/helpers/command"
	"github.com/sunlink-project/sunlink/pkg/helpers/flatpak"
)

// appImageGlobs are the well-known locations a self-contained Sunshine
// AppImage tends to live in.
func appImageGlobs() []string {
	home, _ := os.UserHomeDir()
	return []string{
		filepath.Join(home, "Applications", "Sunshine*.AppImage"),
		filepath.Join(home, "Downloads", "Sunshine*.AppImage"),
		"/opt/sunshine*/Sunshine*.AppImage",
	}
}

// Detect determines whether and how Sunshine is installed. Variants are
// tried in a fixed priority order: Flatpak, Snap, native binary on PATH,
// then the AppImage install-path globs. Absence is a value, not an error.
// Snap is reported so the caller can refuse it.
func Detect(ctx context.Context, exec command.Executor) config.InstallForm {
	if flatpak.IsInstalled(ctx, exec, flatpak.SunshineID) {
		return config.FormFlatpak
	}
	if err := exec.Run(ctx, "snap", "list", "sunshine"); err == nil {
		return config.FormSnap
	}
	if _, err := exec.LookPath("sunshine"); err == nil {
		return config.FormNative
	}
	for _, pattern := range appImageGlobs() {
		matches, err := filepath.Glob(pattern)
		if err == nil && len(matches) > 0 {
			log.Debug().Str("path", matches[0]).Msg("found Sunshine AppImage")
			return config.FormAppImage
		}
	}
	return config.FormAbsent
}

// IsRunning reports whether a Sunshine process is currently in the process
// table. The API refuses credentials while the host is down, so this gates
// the interactive auth flow.
func IsRunning(ctx context.Context, exec command.Executor) bool {
	return helpers.ProcessRunning(ctx, exec, "sunshine", flatpak.SunshineID)
}

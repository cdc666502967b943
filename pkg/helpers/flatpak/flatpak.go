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

// Package flatpak probes for Flatpak-packaged applications.
package flatpak

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sunlink-project/sunlink/pkg/helpers/command"
)

// App IDs of the Flatpak applications Sunlink knows about.
const (
	LutrisID    = "net.lutris.Lutris"
	HeroicID    = "com.heroicgameslauncher.hgl"
	BottlesID   = "com.usebottles.bottles"
	SteamID     = "com.valvesoftware.Steam"
	RetroArchID = "org.libretro.RetroArch"
	RyujinxID   = "io.github.ryubing.Ryujinx"
	SunshineID  = "dev.lizardbyte.app.Sunshine"
)

// IsInstalled reports whether the given Flatpak app ID appears in the
// installed app list. A missing flatpak binary means nothing is installed;
// that is a normal outcome, not an error.
func IsInstalled(ctx context.Context, exec command.Executor, appID string) bool {
	out, err := exec.Output(ctx, "flatpak", "list", "--app", "--columns=application")
	if err != nil {
		log.Debug().Err(err).Msg("flatpak list failed, assuming no flatpak apps")
		return false
	}
	return strings.Contains(string(out), appID)
}

// BasePath returns the base path for Flatpak app data.
func BasePath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".var", "app")
}

// AppDataPath returns the data path for a specific Flatpak app.
func AppDataPath(appID string) string {
	return filepath.Join(BasePath(), appID)
}

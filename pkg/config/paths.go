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

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// InstallForm describes how an external application is installed.
type InstallForm int

const (
	FormAbsent InstallForm = iota
	FormNative
	FormFlatpak
	FormAppImage
	// FormSnap is detected but not supported: the Snap confinement blocks
	// the command wrapping the registered launch commands rely on.
	FormSnap
)

func (f InstallForm) String() string {
	switch f {
	case FormNative:
		return "native"
	case FormFlatpak:
		return "flatpak"
	case FormAppImage:
		return "appimage"
	case FormSnap:
		return "snap"
	case FormAbsent:
		return "absent"
	default:
		return fmt.Sprintf("InstallForm(%d)", int(f))
	}
}

// SunshinePaths resolves the durable state paths Sunlink shares with a
// Sunshine installation. A Flatpak Sunshine keeps its config inside its
// sandboxed app data directory; every other form uses ~/.config/sunshine.
type SunshinePaths struct {
	Base string
}

// NewSunshinePaths returns the state paths for the given install form.
func NewSunshinePaths(form InstallForm) SunshinePaths {
	home, _ := os.UserHomeDir()
	if form == FormFlatpak {
		return SunshinePaths{
			Base: filepath.Join(home, ".var", "app",
				"dev.lizardbyte.app.Sunshine", "config", "sunshine"),
		}
	}
	return SunshinePaths{
		Base: filepath.Join(home, ".config", "sunshine"),
	}
}

// CoversDir is where resolved cover images are cached.
func (p SunshinePaths) CoversDir() string {
	return filepath.Join(p.Base, "covers")
}

// APIKeyFile holds the cached SteamGridDB API key.
func (p SunshinePaths) APIKeyFile() string {
	return filepath.Join(p.Base, "steamgriddb_api_key.txt")
}

// CredentialsFile holds the cached Sunshine auth token.
func (p SunshinePaths) CredentialsFile() string {
	return filepath.Join(p.Base, "credentials")
}

// EnsureDirs creates the directories Sunlink writes into.
func (p SunshinePaths) EnsureDirs(fs afero.Fs) error {
	if err := fs.MkdirAll(p.CoversDir(), 0o750); err != nil {
		return fmt.Errorf("failed to create covers directory: %w", err)
	}
	return nil
}

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

package launchers

import (
	"context"
	"encoding/json"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/sunlink-project/sunlink/pkg/helpers"
	"github.com/sunlink-project/sunlink/pkg/helpers/command"
	"github.com/sunlink-project/sunlink/pkg/helpers/flatpak"
)

// Switch dump formats Ryujinx can load.
var ryujinxExtensions = []string{".nsp", ".xci", ".nca", ".nro"}

// Ryujinx lists Switch games by walking the ROM directories configured in
// the emulator's Config.json. Only the Flatpak packaging (Ryubing) is
// probed, matching upstream's current distribution.
type Ryujinx struct {
	exec command.Executor
	fs   afero.Fs

	// ExtraDirs are additional ROM directories from Sunlink's own settings,
	// scanned after the emulator-configured ones.
	ExtraDirs []string
}

// NewRyujinx creates the Ryujinx adapter.
func NewRyujinx(exec command.Executor, fs afero.Fs) *Ryujinx {
	return &Ryujinx{exec: exec, fs: fs}
}

// Name implements Adapter.
func (*Ryujinx) Name() string { return "Ryujinx" }

// Installed implements Adapter.
func (r *Ryujinx) Installed(ctx context.Context) bool {
	return flatpak.IsInstalled(ctx, r.exec, flatpak.RyujinxID)
}

// Command returns the invocation prefix for Ryujinx.
func (*Ryujinx) Command() []string {
	return []string{"flatpak", "run", flatpak.RyujinxID}
}

func ryujinxConfigPath() string {
	return filepath.Join(flatpak.AppDataPath(flatpak.RyujinxID),
		"config", "Ryujinx", "Config.json")
}

func ryujinxDefaultGamesDir() string {
	return filepath.Join(flatpak.AppDataPath(flatpak.RyujinxID),
		"data", "Ryujinx", "games")
}

// gameDirs reads the configured ROM directories, falling back to the
// default games directory when the config is absent, malformed or empty.
func (r *Ryujinx) gameDirs() []string {
	dirs := []string{ryujinxDefaultGamesDir()}

	data, err := afero.ReadFile(r.fs, ryujinxConfigPath())
	if err == nil {
		var cfg struct {
			GameDirs []string `json:"game_dirs"`
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			log.Warn().Err(err).Msg("failed to parse Ryujinx config")
		} else if len(cfg.GameDirs) > 0 {
			dirs = cfg.GameDirs
		}
	}

	return append(dirs, r.ExtraDirs...)
}

// ListGames implements Adapter. Titles are derived from the filename with
// the extension and any bracketed tag segments stripped.
func (r *Ryujinx) ListGames(_ context.Context) []GameEntry {
	var (
		mu      sync.Mutex
		entries []GameEntry
	)

	// fastwalk runs the callback from multiple workers.
	conf := fastwalk.Config{Follow: true}
	for _, dir := range r.gameDirs() {
		if ok, _ := afero.DirExists(r.fs, dir); !ok {
			log.Debug().Str("dir", dir).Msg("Ryujinx games directory not found")
			continue
		}

		err := fastwalk.Walk(&conf, dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				log.Debug().Err(err).Str("path", path).Msg("skipping unreadable entry")
				return nil
			}
			if d.IsDir() || !ryujinxGameFile(path) {
				return nil
			}

			base := filepath.Base(path)
			title := helpers.StripBracketTags(strings.TrimSuffix(base, filepath.Ext(base)))
			entry := GameEntry{
				ID:     path,
				Title:  title,
				Source: SourceRyujinx,
			}
			if entry.Valid() {
				mu.Lock()
				entries = append(entries, entry)
				mu.Unlock()
			}
			return nil
		})
		if err != nil {
			log.Warn().Err(err).Str("dir", dir).Msg("failed to walk Ryujinx games directory")
		}
	}

	log.Debug().Int("count", len(entries)).Msg("found Ryujinx games")
	return entries
}

func ryujinxGameFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range ryujinxExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

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
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/sunlink-project/sunlink/pkg/helpers/command"
	"github.com/sunlink-project/sunlink/pkg/helpers/flatpak"
)

// Utility entries Steam installs alongside games. Anything whose name starts
// with one of these (case-insensitive) is not a game.
var steamExcludedPrefixes = []string{
	"proton",
	"steam linux runtime",
	"steamworks common",
	"steamvr",
}

var (
	steamLibraryPathRe = regexp.MustCompile(`"path"\s*"([^"]*)"`)
	steamKVRe          = regexp.MustCompile(`^\s*"(appid|name)"\s*"([^"]*)"`)
)

// Steam lists installed Steam games by scanning library manifests.
//
// The manifests are Valve's undocumented key-value format. This adapter is a
// deliberately tolerant line-oriented extractor, not a parser: it pulls out
// the few keys it needs and ignores everything else, so unrelated keys or
// structural oddities in a manifest never break discovery.
type Steam struct {
	exec command.Executor
	fs   afero.Fs
}

// NewSteam creates the Steam adapter.
func NewSteam(exec command.Executor, fs afero.Fs) *Steam {
	return &Steam{exec: exec, fs: fs}
}

// Name implements Adapter.
func (*Steam) Name() string { return "Steam" }

// Command returns the invocation prefix for Steam, preferring Flatpak.
func (s *Steam) Command(ctx context.Context) (args []string, ok bool) {
	if flatpak.IsInstalled(ctx, s.exec, flatpak.SteamID) {
		return []string{"flatpak", "run", flatpak.SteamID}, true
	}
	if _, err := s.exec.LookPath("steam"); err == nil {
		return []string{"steam"}, true
	}
	return nil, false
}

// Installed implements Adapter.
func (s *Steam) Installed(ctx context.Context) bool {
	_, ok := s.Command(ctx)
	return ok
}

// steamRoot resolves the Steam root directory for the detected packaging.
func (s *Steam) steamRoot(ctx context.Context) string {
	home, _ := os.UserHomeDir()
	if flatpak.IsInstalled(ctx, s.exec, flatpak.SteamID) {
		return filepath.Join(flatpak.AppDataPath(flatpak.SteamID), ".steam", "steam")
	}
	return filepath.Join(home, ".steam", "steam")
}

// ListGames implements Adapter.
func (s *Steam) ListGames(ctx context.Context) []GameEntry {
	root := s.steamRoot(ctx)

	libraries := s.libraryPaths(filepath.Join(root, "config", "libraryfolders.vdf"))
	if len(libraries) == 0 {
		libraries = []string{root}
	}

	var entries []GameEntry
	for _, lib := range libraries {
		steamApps := filepath.Join(lib, "steamapps")
		files, err := afero.ReadDir(s.fs, steamApps)
		if err != nil {
			log.Debug().Str("path", steamApps).Msg("no steamapps directory")
			continue
		}

		for _, f := range files {
			name := f.Name()
			if !strings.HasPrefix(name, "appmanifest_") || !strings.HasSuffix(name, ".acf") {
				continue
			}
			appID, appName, ok := s.scanAppManifest(filepath.Join(steamApps, name))
			if !ok {
				continue
			}
			if steamExcluded(appName) {
				log.Debug().Str("name", appName).Msg("excluding Steam utility entry")
				continue
			}
			entries = append(entries, GameEntry{
				ID:     appID,
				Title:  appName,
				Source: SourceSteam,
			})
		}
	}

	log.Debug().Int("count", len(entries)).Msg("found Steam games")
	return entries
}

// libraryPaths extracts "path" values from libraryfolders.vdf. Files with
// unrelated keys are fine; only the path entries are read.
func (s *Steam) libraryPaths(vdfPath string) []string {
	content, err := afero.ReadFile(s.fs, vdfPath)
	if err != nil {
		log.Debug().Str("path", vdfPath).Msg("no libraryfolders.vdf")
		return nil
	}

	var paths []string
	for _, m := range steamLibraryPathRe.FindAllStringSubmatch(string(content), -1) {
		paths = append(paths, m[1])
	}
	return paths
}

// scanAppManifest pulls appid and name out of an appmanifest_*.acf file,
// stopping as soon as both have been found.
func (s *Steam) scanAppManifest(path string) (appID, name string, ok bool) {
	content, err := afero.ReadFile(s.fs, path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to read app manifest")
		return "", "", false
	}

	for line := range strings.Lines(string(content)) {
		m := steamKVRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		switch m[1] {
		case "appid":
			appID = m[2]
		case "name":
			name = m[2]
		}
		if appID != "" && name != "" {
			return appID, name, true
		}
	}

	log.Debug().Str("path", path).Msg("app manifest missing appid or name")
	return "", "", false
}

func steamExcluded(name string) bool {
	lower := strings.ToLower(name)
	for _, prefix := range steamExcludedPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

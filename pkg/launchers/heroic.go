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
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/sunlink-project/sunlink/pkg/helpers/command"
	"github.com/sunlink-project/sunlink/pkg/helpers/flatpak"
)

// Heroic store backends. Each has its own install manifest with its own
// record shape.
const (
	RunnerLegendary = "legendary"
	RunnerGOG       = "gog"
	RunnerNile      = "nile"
	RunnerSideload  = "sideload"
)

// Heroic lists games installed through the Heroic Games Launcher by reading
// the per-store manifest files it maintains on disk.
type Heroic struct {
	exec command.Executor
	fs   afero.Fs
}

// NewHeroic creates the Heroic adapter.
func NewHeroic(exec command.Executor, fs afero.Fs) *Heroic {
	return &Heroic{exec: exec, fs: fs}
}

// Name implements Adapter.
func (*Heroic) Name() string { return "Heroic" }

// Command returns the invocation prefix for Heroic, preferring Flatpak.
func (h *Heroic) Command(ctx context.Context) (args []string, ok bool) {
	if flatpak.IsInstalled(ctx, h.exec, flatpak.HeroicID) {
		return []string{"flatpak", "run", flatpak.HeroicID}, true
	}
	if _, err := h.exec.LookPath("heroic"); err == nil {
		return []string{"heroic"}, true
	}
	return nil, false
}

// Installed implements Adapter.
func (h *Heroic) Installed(ctx context.Context) bool {
	_, ok := h.Command(ctx)
	return ok
}

// storePaths returns the per-runner manifest paths for the given config root.
func heroicStorePaths(configRoot string) map[string]string {
	return map[string]string{
		RunnerLegendary: filepath.Join(configRoot, "legendaryConfig", "legendary", "installed.json"),
		RunnerGOG:       filepath.Join(configRoot, "gog_store", "installed.json"),
		RunnerNile:      filepath.Join(configRoot, "nile_config", "nile", "installed.json"),
		RunnerSideload:  filepath.Join(configRoot, "sideload_apps", "library.json"),
	}
}

// configRoot resolves Heroic's config directory for the detected packaging.
func (h *Heroic) configRoot(ctx context.Context) string {
	if flatpak.IsInstalled(ctx, h.exec, flatpak.HeroicID) {
		return filepath.Join(flatpak.AppDataPath(flatpak.HeroicID), "config", "heroic")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "heroic")
}

// ListGames implements Adapter. Each store manifest is parsed independently;
// one malformed file never hides the others.
func (h *Heroic) ListGames(ctx context.Context) []GameEntry {
	var entries []GameEntry
	for runner, path := range heroicStorePaths(h.configRoot(ctx)) {
		entries = append(entries, h.listStore(runner, path)...)
	}
	log.Debug().Int("count", len(entries)).Msg("found Heroic games")
	return entries
}

func (h *Heroic) listStore(runner, path string) []GameEntry {
	data, err := afero.ReadFile(h.fs, path)
	if err != nil {
		log.Debug().Str("runner", runner).Str("path", path).Msg("no Heroic store manifest")
		return nil
	}

	// The manifests come in two top-level shapes: an object or a bare array.
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err == nil {
		switch {
		case obj["installed"] != nil:
			return parseHeroicInstalledList(obj["installed"], runner)
		case obj["games"] != nil:
			return parseHeroicSideload(obj["games"])
		default:
			return parseHeroicKeyed(obj, runner)
		}
	}

	var list json.RawMessage
	if err := json.Unmarshal(data, &list); err == nil && strings.HasPrefix(strings.TrimSpace(string(list)), "[") {
		return parseHeroicInstalledList(list, runner)
	}

	log.Warn().Str("path", path).Msg("failed to parse Heroic store manifest")
	return nil
}

type heroicInstalledRecord struct {
	AppName      string `json:"appName"`
	AppNameSnake string `json:"app_name"`
	InstallPath  string `json:"install_path"`
	Title        string `json:"title"`
}

func (r heroicInstalledRecord) id() string {
	if r.AppName != "" {
		return r.AppName
	}
	return r.AppNameSnake
}

// title prefers an explicit title, then the last segment of the install
// path, then the app id itself.
func (r heroicInstalledRecord) title() string {
	if r.Title != "" {
		return r.Title
	}
	if r.InstallPath != "" {
		return filepath.Base(r.InstallPath)
	}
	return r.id()
}

// parseHeroicInstalledList handles the GOG/Nile style list of records.
func parseHeroicInstalledList(raw json.RawMessage, runner string) []GameEntry {
	var records []heroicInstalledRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Warn().Err(err).Str("runner", runner).Msg("failed to parse Heroic installed list")
		return nil
	}

	var entries []GameEntry
	for _, r := range records {
		entry := GameEntry{
			ID:     r.id(),
			Title:  r.title(),
			Source: SourceHeroic,
			Runner: runner,
		}
		if !entry.Valid() {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// parseHeroicSideload handles the sideloaded-apps library, which requires
// explicit id and title fields.
func parseHeroicSideload(raw json.RawMessage) []GameEntry {
	var records []struct {
		AppName string `json:"app_name"`
		Title   string `json:"title"`
	}
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Warn().Err(err).Msg("failed to parse Heroic sideload library")
		return nil
	}

	var entries []GameEntry
	for _, r := range records {
		entry := GameEntry{
			ID:     r.AppName,
			Title:  r.Title,
			Source: SourceHeroic,
			Runner: RunnerSideload,
		}
		if !entry.Valid() {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// parseHeroicKeyed handles the Legendary style object keyed by app id.
func parseHeroicKeyed(obj map[string]json.RawMessage, runner string) []GameEntry {
	var entries []GameEntry
	for appID, raw := range obj {
		var record struct {
			Title   string `json:"title"`
			AppName string `json:"app_name"`
		}
		if err := json.Unmarshal(raw, &record); err != nil {
			log.Debug().Str("appID", appID).Msg("skipping malformed Heroic record")
			continue
		}

		title := record.Title
		if title == "" {
			title = record.AppName
		}
		entry := GameEntry{
			ID:     appID,
			Title:  title,
			Source: SourceHeroic,
			Runner: runner,
		}
		if !entry.Valid() {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

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

// RetroArch lists games from the emulator's .lpl playlist files.
type RetroArch struct {
	exec command.Executor
	fs   afero.Fs
}

// NewRetroArch creates the RetroArch adapter.
func NewRetroArch(exec command.Executor, fs afero.Fs) *RetroArch {
	return &RetroArch{exec: exec, fs: fs}
}

// Name implements Adapter.
func (*RetroArch) Name() string { return "RetroArch" }

// Command returns the invocation prefix for RetroArch, preferring Flatpak.
func (r *RetroArch) Command(ctx context.Context) (args []string, ok bool) {
	if flatpak.IsInstalled(ctx, r.exec, flatpak.RetroArchID) {
		return []string{"flatpak", "run", flatpak.RetroArchID}, true
	}
	if _, err := r.exec.LookPath("retroarch"); err == nil {
		return []string{"retroarch"}, true
	}
	return nil, false
}

// Installed implements Adapter.
func (r *RetroArch) Installed(ctx context.Context) bool {
	_, ok := r.Command(ctx)
	return ok
}

// configDir resolves RetroArch's config directory for the detected packaging.
func (r *RetroArch) configDir(ctx context.Context) string {
	if flatpak.IsInstalled(ctx, r.exec, flatpak.RetroArchID) {
		return filepath.Join(flatpak.AppDataPath(flatpak.RetroArchID), "config", "retroarch")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "retroarch")
}

// configValue extracts a `key = "value"` setting from retroarch.cfg.
// Returns "" when the file or key is missing.
func (r *RetroArch) configValue(ctx context.Context, key string) string {
	content, err := afero.ReadFile(r.fs, filepath.Join(r.configDir(ctx), "retroarch.cfg"))
	if err != nil {
		return ""
	}

	for line := range strings.Lines(string(content)) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || !strings.HasPrefix(line, key) {
			continue
		}
		_, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)
		if value != "" {
			return expandHome(value)
		}
	}
	return ""
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// playlistDir resolves where the .lpl playlists live: the configured
// playlist_directory, else the default playlists directory.
func (r *RetroArch) playlistDir(ctx context.Context) string {
	if dir := r.configValue(ctx, "playlist_directory"); dir != "" {
		return dir
	}
	return filepath.Join(r.configDir(ctx), "playlists")
}

// coresDir resolves where libretro cores live: the configured
// libretro_directory, else the default cores directory if it exists, else
// the Flatpak runtime path that only resolves inside the sandbox.
func (r *RetroArch) coresDir(ctx context.Context) string {
	if dir := r.configValue(ctx, "libretro_directory"); dir != "" {
		return dir
	}

	defaultDir := filepath.Join(r.configDir(ctx), "cores")
	if ok, _ := afero.DirExists(r.fs, defaultDir); ok {
		return defaultDir
	}

	if flatpak.IsInstalled(ctx, r.exec, flatpak.RetroArchID) {
		return "/app/libretro"
	}
	return defaultDir
}

// ListGames implements Adapter. Every *.lpl file in the playlist directory
// is parsed as JSON; items need both a path and a label to become entries.
// Core metadata is carried through for launch-command construction.
func (r *RetroArch) ListGames(ctx context.Context) []GameEntry {
	dir := r.playlistDir(ctx)
	files, err := afero.ReadDir(r.fs, dir)
	if err != nil {
		log.Debug().Str("dir", dir).Msg("no RetroArch playlist directory")
		return nil
	}

	var entries []GameEntry
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".lpl") {
			continue
		}
		entries = append(entries, r.parsePlaylist(filepath.Join(dir, f.Name()))...)
	}

	log.Debug().Int("count", len(entries)).Msg("found RetroArch games")
	return entries
}

func (r *RetroArch) parsePlaylist(path string) []GameEntry {
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to read playlist")
		return nil
	}

	var playlist struct {
		Items []struct {
			Path     string `json:"path"`
			Label    string `json:"label"`
			CorePath string `json:"core_path"`
			CoreName string `json:"core_name"`
		} `json:"items"`
	}
	if err := json.Unmarshal(data, &playlist); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to parse playlist")
		return nil
	}

	var entries []GameEntry
	for _, item := range playlist.Items {
		entry := GameEntry{
			ID:       item.Path,
			Title:    item.Label,
			Source:   SourceRetroArch,
			CorePath: item.CorePath,
			CoreName: item.CoreName,
		}
		if !entry.Valid() {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// coreSentinel reports whether a recorded core path is one of the values
// RetroArch uses to mean "no core chosen".
func coreSentinel(corePath string) bool {
	switch strings.ToUpper(corePath) {
	case "DETECT", "", "NULL":
		return true
	default:
		return false
	}
}

// sanitizeCoreName converts a playlist core name into a candidate library
// filename stem: lower-cased, spaces and hyphens to underscores, parens
// stripped.
func sanitizeCoreName(coreName string) string {
	s := strings.ToLower(coreName)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "(", "")
	s = strings.ReplaceAll(s, ")", "")
	return s
}

func compactCoreName(s string) string {
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, " ", "")
}

// ResolveCore determines the core library to launch a playlist entry with.
// An explicit core path wins unless it is a sentinel. Otherwise the core
// name is sanitized and searched in the cores directory, exact filenames
// first, then substring matches among .so files, finally falling back to a
// best-guess path that may not exist. Returns "" when nothing can be
// derived.
func (r *RetroArch) ResolveCore(ctx context.Context, corePath, coreName string) string {
	if !coreSentinel(corePath) {
		return expandHome(corePath)
	}
	if coreName == "" {
		return ""
	}

	coresDir := r.coresDir(ctx)
	sanitized := sanitizeCoreName(coreName)
	candidates := []string{
		sanitized + "_libretro.so",
		sanitized + ".so",
	}

	for _, candidate := range candidates {
		path := filepath.Join(coresDir, candidate)
		if ok, _ := afero.Exists(r.fs, path); ok {
			return path
		}
	}

	if files, err := afero.ReadDir(r.fs, coresDir); err == nil {
		compact := compactCoreName(sanitized)
		for _, f := range files {
			if !strings.HasSuffix(f.Name(), ".so") {
				continue
			}
			// Playlist core names often carry a system prefix around the
			// actual core ("Nintendo - SNES / SFC (Snes9x)" for snes9x), so
			// the match goes both ways on the compacted forms.
			stem := compactCoreName(strings.ToLower(strings.TrimSuffix(f.Name(), "_libretro.so")))
			if strings.Contains(compactCoreName(strings.ToLower(f.Name())), compact) ||
				(stem != "" && strings.Contains(compact, stem)) {
				return filepath.Join(coresDir, f.Name())
			}
		}
	}

	// Best guess, unverified. The launched process may still find it.
	return filepath.Join(coresDir, candidates[0])
}

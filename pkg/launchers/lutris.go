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

	"github.com/rs/zerolog/log"
	"github.com/sunlink-project/sunlink/pkg/helpers/command"
	"github.com/sunlink-project/sunlink/pkg/helpers/flatpak"
)

// Lutris lists games via Lutris' own CLI in JSON listing mode.
type Lutris struct {
	exec command.Executor
}

// NewLutris creates the Lutris adapter.
func NewLutris(exec command.Executor) *Lutris {
	return &Lutris{exec: exec}
}

// Name implements Adapter.
func (*Lutris) Name() string { return "Lutris" }

// Command returns the invocation prefix for Lutris, preferring the Flatpak
// packaging over a native binary on PATH. ok is false when neither exists.
func (l *Lutris) Command(ctx context.Context) (args []string, ok bool) {
	if flatpak.IsInstalled(ctx, l.exec, flatpak.LutrisID) {
		return []string{"flatpak", "run", flatpak.LutrisID}, true
	}
	if _, err := l.exec.LookPath("lutris"); err == nil {
		return []string{"lutris"}, true
	}
	return nil, false
}

// Installed implements Adapter.
func (l *Lutris) Installed(ctx context.Context) bool {
	_, ok := l.Command(ctx)
	return ok
}

type lutrisGame struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

// ListGames implements Adapter. It runs `lutris -lo --json` (through the
// detected packaging) and maps the returned array directly.
func (l *Lutris) ListGames(ctx context.Context) []GameEntry {
	cmd, ok := l.Command(ctx)
	if !ok {
		return nil
	}

	args := append(cmd[1:], "-lo", "--json")
	out, err := l.exec.Output(ctx, cmd[0], args...)
	if err != nil {
		log.Warn().Err(err).Msg("failed to list Lutris games")
		return nil
	}

	var games []lutrisGame
	if err := json.Unmarshal(out, &games); err != nil {
		log.Warn().Err(err).Msg("failed to parse Lutris game list")
		return nil
	}

	entries := make([]GameEntry, 0, len(games))
	for _, g := range games {
		entry := GameEntry{
			ID:     g.ID.String(),
			Title:  g.Name,
			Source: SourceLutris,
		}
		if !entry.Valid() {
			log.Debug().Str("id", entry.ID).Msg("skipping incomplete Lutris record")
			continue
		}
		entries = append(entries, entry)
	}

	log.Debug().Int("count", len(entries)).Msg("found Lutris games")
	return entries
}

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
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sunlink-project/sunlink/pkg/helpers/command"
	"github.com/sunlink-project/sunlink/pkg/helpers/flatpak"
)

// Bottles lists Windows programs registered inside Bottles containers by
// scraping the bottles-cli text output. Only the Flatpak packaging is
// supported, matching upstream's distribution.
type Bottles struct {
	exec command.Executor
}

// NewBottles creates the Bottles adapter.
func NewBottles(exec command.Executor) *Bottles {
	return &Bottles{exec: exec}
}

// Name implements Adapter.
func (*Bottles) Name() string { return "Bottles" }

// Installed implements Adapter.
func (b *Bottles) Installed(ctx context.Context) bool {
	return flatpak.IsInstalled(ctx, b.exec, flatpak.BottlesID)
}

// ListGames implements Adapter. It lists gaming-environment bottles, then
// queries each bottle for its registered programs. A program is itself a
// game entry whose id and title are the program's own name, with the bottle
// name carried as launch-time context.
func (b *Bottles) ListGames(ctx context.Context) []GameEntry {
	out, err := b.exec.Output(ctx,
		"flatpak", "run", "--command=bottles-cli", flatpak.BottlesID,
		"list", "bottles", "-f", "environment:gaming")
	if err != nil {
		log.Warn().Err(err).Msg("failed to list bottles")
		return nil
	}

	var entries []GameEntry
	for _, bottle := range parseBottlesList(string(out)) {
		out, err := b.exec.Output(ctx,
			"flatpak", "run", "--command=bottles-cli", flatpak.BottlesID,
			"programs", "-b", bottle)
		if err != nil {
			log.Warn().Err(err).Str("bottle", bottle).Msg("failed to list bottle programs")
			continue
		}
		for _, program := range parseBottlesPrograms(string(out)) {
			entries = append(entries, GameEntry{
				ID:     program,
				Title:  program,
				Source: SourceBottles,
				Bottle: bottle,
			})
		}
	}

	log.Debug().Int("count", len(entries)).Msg("found Bottles games")
	return entries
}

// parseBottlesList extracts bottle names from the list output. Only lines
// with a leading dash bullet marker name a bottle.
func parseBottlesList(out string) []string {
	var bottles []string
	for line := range strings.Lines(out) {
		line = strings.TrimRight(line, "\n")
		if !strings.HasPrefix(line, "-") {
			continue
		}
		name := strings.TrimSpace(strings.TrimLeft(line, "- "))
		if name != "" {
			bottles = append(bottles, name)
		}
	}
	return bottles
}

// parseBottlesPrograms extracts program names from the programs output,
// skipping the "Found N programs:" header and blank lines and stripping
// bullet markers.
func parseBottlesPrograms(out string) []string {
	var programs []string
	for line := range strings.Lines(out) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "Found") {
			continue
		}
		name := strings.TrimSpace(strings.TrimLeft(line, "- "))
		if name != "" {
			programs = append(programs, name)
		}
	}
	return programs
}

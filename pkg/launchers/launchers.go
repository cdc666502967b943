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

// Package launchers discovers installed games from external game launchers
// and emulators, normalizing their native records into uniform entries.
package launchers

import (
	"context"
	"sort"
)

// Source identifies which launcher produced a game entry. It determines the
// launch-command template and the display bucket the entry belongs to.
type Source int

const (
	SourceUnknown Source = iota
	SourceLutris
	SourceHeroic
	SourceBottles
	SourceSteam
	SourceRyujinx
	SourceRetroArch
)

func (s Source) String() string {
	switch s {
	case SourceLutris:
		return "Lutris"
	case SourceHeroic:
		return "Heroic"
	case SourceBottles:
		return "Bottles"
	case SourceSteam:
		return "Steam"
	case SourceRyujinx:
		return "Ryujinx"
	case SourceRetroArch:
		return "RetroArch"
	case SourceUnknown:
		return "Unknown"
	default:
		return "Unknown"
	}
}

// GameEntry is the uniform record produced by every adapter. ID is the
// source-native identifier used to build a launch command; its semantics
// depend on Source (Lutris numeric id, Heroic app name, Steam appid,
// ROM/playlist file path). The variant payload fields are consumed only at
// launch-command construction time.
type GameEntry struct {
	ID    string
	Title string

	Source Source

	// Runner is the Heroic store backend: legendary, gog, nile or sideload.
	Runner string
	// Bottle is the Bottles container a program lives in.
	Bottle string
	// CorePath and CoreName describe the RetroArch core recorded in the
	// playlist. CorePath may be a sentinel value like "DETECT".
	CorePath string
	CoreName string
}

// Valid reports whether the entry is usable. Adapters drop invalid records
// rather than emit partial entries.
func (e GameEntry) Valid() bool {
	return e.ID != "" && e.Title != ""
}

// Adapter converts one launcher's native game records into uniform entries.
type Adapter interface {
	// Name is the human-readable source name.
	Name() string

	// Installed reports whether the backing application is present. Absence
	// is a normal outcome, never an error.
	Installed(ctx context.Context) bool

	// ListGames returns every discovered game. It never fails: malformed
	// records are logged and skipped, and a missing backing file or command
	// yields an empty result.
	ListGames(ctx context.Context) []GameEntry
}

// SortEntries orders entries alphabetically by title, with the source tag as
// a secondary key so that equal titles from different sources keep a stable,
// deterministic order.
func SortEntries(entries []GameEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Title != entries[j].Title {
			return entries[i].Title < entries[j].Title
		}
		return entries[i].Source < entries[j].Source
	})
}

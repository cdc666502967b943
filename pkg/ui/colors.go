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

package ui

import "github.com/sunlink-project/sunlink/pkg/launchers"

const resetColor = "\033[0m"

// sourceColors matches each launcher's brand color, roughly.
var sourceColors = map[launchers.Source]string{
	launchers.SourceLutris:    "\033[38;5;214m",
	launchers.SourceHeroic:    "\033[38;5;39m",
	launchers.SourceBottles:   "\033[38;5;203m",
	launchers.SourceSteam:     "\033[38;5;67m",
	launchers.SourceRyujinx:   "\033[38;5;160m",
	launchers.SourceRetroArch: "\033[38;5;71m",
}

// ColorSource wraps a source tag in its ANSI color.
func ColorSource(s launchers.Source) string {
	color, ok := sourceColors[s]
	if !ok {
		return s.String()
	}
	return color + s.String() + resetColor
}

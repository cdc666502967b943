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

// Package helpers contains small utilities shared across Sunlink packages.
package helpers

import (
	"regexp"
	"strings"
)

var bracketTagRe = regexp.MustCompile(`\[[^]]*\]`)

// NormalizeTitle converts a game title into its on-disk cover cache key:
// lower-cased with spaces replaced by hyphens.
func NormalizeTitle(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "-")
}

// StripBracketTags removes bracketed tag segments like "[T-En]" or "[v1.2]"
// from a ROM filename-derived title and trims surrounding whitespace.
func StripBracketTags(name string) string {
	return strings.TrimSpace(bracketTagRe.ReplaceAllString(name, ""))
}

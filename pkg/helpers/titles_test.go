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

package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "lowercases_and_hyphenates",
			title: "The Witcher 3",
			want:  "the-witcher-3",
		},
		{
			name:  "every_space_becomes_a_hyphen",
			title: "Half  Life 2",
			want:  "half--life-2",
		},
		{
			name:  "already_normal",
			title: "celeste",
			want:  "celeste",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeTitle(tt.title))
		})
	}
}

func TestStripBracketTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "single_tag",
			in:   "Super Game [T-En]",
			want: "Super Game",
		},
		{
			name: "multiple_tags",
			in:   "Super Game [T-En][Fix]",
			want: "Super Game",
		},
		{
			name: "no_tags",
			in:   "Super Game",
			want: "Super Game",
		},
		{
			name: "tag_in_the_middle",
			in:   "Super [v2] Game",
			want: "Super  Game",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, StripBracketTags(tt.in))
		})
	}
}

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

package flatpak_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sunlink-project/sunlink/pkg/helpers/flatpak"
	testhelpers "github.com/sunlink-project/sunlink/pkg/testing/helpers"
)

const listCmd = "flatpak list --app --columns=application"

func TestIsInstalled(t *testing.T) {
	t.Parallel()

	t.Run("app_listed", func(t *testing.T) {
		t.Parallel()
		exec := &testhelpers.MockExecutor{
			Outputs: map[string][]byte{
				listCmd: []byte("net.lutris.Lutris\ncom.usebottles.bottles\n"),
			},
		}
		assert.True(t, flatpak.IsInstalled(t.Context(), exec, flatpak.LutrisID))
		assert.True(t, flatpak.IsInstalled(t.Context(), exec, flatpak.BottlesID))
	})

	t.Run("app_not_listed", func(t *testing.T) {
		t.Parallel()
		exec := &testhelpers.MockExecutor{
			Outputs: map[string][]byte{listCmd: []byte("net.lutris.Lutris\n")},
		}
		assert.False(t, flatpak.IsInstalled(t.Context(), exec, flatpak.SteamID))
	})

	t.Run("flatpak_missing", func(t *testing.T) {
		t.Parallel()
		exec := &testhelpers.MockExecutor{
			Errs: map[string]error{listCmd: errors.New("exec: \"flatpak\": executable file not found in $PATH")},
		}
		assert.False(t, flatpak.IsInstalled(t.Context(), exec, flatpak.LutrisID))
	})
}

func TestAppDataPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	want := filepath.Join("/home/tester", ".var", "app", flatpak.RyujinxID)
	assert.Equal(t, want, flatpak.AppDataPath(flatpak.RyujinxID))
}

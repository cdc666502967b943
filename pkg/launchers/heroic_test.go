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

package launchers_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunlink-project/sunlink/pkg/launchers"
	testhelpers "github.com/sunlink-project/sunlink/pkg/testing/helpers"
)

func heroicEntryByID(t *testing.T, entries []launchers.GameEntry, id string) launchers.GameEntry {
	t.Helper()
	for _, e := range entries {
		if e.ID == id {
			return e
		}
	}
	t.Fatalf("no entry with id %q", id)
	return launchers.GameEntry{}
}

func TestHeroicListGames(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	fs := testhelpers.NewMemoryFS()
	root := filepath.Join(home, ".config", "heroic")

	require.NoError(t, fs.WriteFile(
		filepath.Join(root, "legendaryConfig", "legendary", "installed.json"),
		[]byte(`{
			"Fortnite": {"app_name": "Fortnite", "title": "Fortnite", "install_path": "/games/Fortnite"},
			"Anonymous": {"install_size": 1024}
		}`)))
	require.NoError(t, fs.WriteFile(
		filepath.Join(root, "gog_store", "installed.json"),
		[]byte(`{"installed": [
			{"appName": "1207658924", "install_path": "/games/The Witcher 3"},
			{"appName": ""}
		]}`)))
	require.NoError(t, fs.WriteFile(
		filepath.Join(root, "nile_config", "nile", "installed.json"),
		[]byte(`[{"id": "amzn1.adg.product.x", "app_name": "amzn1.adg.product.x", "install_path": "/games/Blackwell"}]`)))
	require.NoError(t, fs.WriteFile(
		filepath.Join(root, "sideload_apps", "library.json"),
		[]byte(`{"games": [
			{"app_name": "custom-1", "title": "Itch Thing"},
			{"app_name": "custom-2"}
		]}`)))

	exec := &testhelpers.MockExecutor{Binaries: []string{"heroic"}}
	h := launchers.NewHeroic(exec, fs.Fs)

	require.True(t, h.Installed(t.Context()))
	games := h.ListGames(t.Context())
	require.Len(t, games, 4)

	legendary := heroicEntryByID(t, games, "Fortnite")
	assert.Equal(t, "Fortnite", legendary.Title)
	assert.Equal(t, launchers.RunnerLegendary, legendary.Runner)
	assert.Equal(t, launchers.SourceHeroic, legendary.Source)

	// Title falls back to the last install path segment for GOG records.
	gog := heroicEntryByID(t, games, "1207658924")
	assert.Equal(t, "The Witcher 3", gog.Title)
	assert.Equal(t, launchers.RunnerGOG, gog.Runner)

	nile := heroicEntryByID(t, games, "amzn1.adg.product.x")
	assert.Equal(t, "Blackwell", nile.Title)
	assert.Equal(t, launchers.RunnerNile, nile.Runner)

	sideload := heroicEntryByID(t, games, "custom-1")
	assert.Equal(t, "Itch Thing", sideload.Title)
	assert.Equal(t, launchers.RunnerSideload, sideload.Runner)
}

func TestHeroicListGamesMissingManifests(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	fs := testhelpers.NewMemoryFS()
	exec := &testhelpers.MockExecutor{Binaries: []string{"heroic"}}
	assert.Empty(t, launchers.NewHeroic(exec, fs.Fs).ListGames(t.Context()))
}

func TestHeroicListGamesMalformedStoreIsIsolated(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	fs := testhelpers.NewMemoryFS()
	root := filepath.Join(home, ".config", "heroic")

	require.NoError(t, fs.WriteFile(
		filepath.Join(root, "gog_store", "installed.json"),
		[]byte("{not json")))
	require.NoError(t, fs.WriteFile(
		filepath.Join(root, "sideload_apps", "library.json"),
		[]byte(`{"games": [{"app_name": "ok", "title": "Survivor"}]}`)))

	exec := &testhelpers.MockExecutor{Binaries: []string{"heroic"}}
	games := launchers.NewHeroic(exec, fs.Fs).ListGames(t.Context())
	require.Len(t, games, 1)
	assert.Equal(t, "Survivor", games[0].Title)
}

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

package sunshine_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunlink-project/sunlink/pkg/config"
	"github.com/sunlink-project/sunlink/pkg/launchers"
	"github.com/sunlink-project/sunlink/pkg/sunshine"
	testhelpers "github.com/sunlink-project/sunlink/pkg/testing/helpers"
)

func testBuilder() *sunshine.CommandBuilder {
	return &sunshine.CommandBuilder{
		Lutris:    []string{"lutris"},
		Heroic:    []string{"flatpak", "run", "com.heroicgameslauncher.hgl"},
		Steam:     []string{"steam"},
		RetroArch: []string{"flatpak", "run", "org.libretro.RetroArch"},
		Ryujinx:   []string{"flatpak", "run", "io.github.ryubing.Ryujinx"},
		ResolveCore: func(_ context.Context, corePath, _ string) string {
			return corePath
		},
	}
}

func TestCommandBuilderBuild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		entry launchers.GameEntry
		want  string
	}{
		{
			name:  "lutris",
			entry: launchers.GameEntry{ID: "7", Title: "Celeste", Source: launchers.SourceLutris},
			want:  "env LUTRIS_SKIP_INIT=1 lutris lutris:rungameid/7",
		},
		{
			name: "heroic",
			entry: launchers.GameEntry{
				ID: "Fortnite", Title: "Fortnite",
				Source: launchers.SourceHeroic, Runner: launchers.RunnerLegendary,
			},
			want: "flatpak run com.heroicgameslauncher.hgl heroic://launch/legendary/Fortnite --no-gui --no-sandbox",
		},
		{
			name:  "steam",
			entry: launchers.GameEntry{ID: "620", Title: "Portal 2", Source: launchers.SourceSteam},
			want:  "steam steam://run/620",
		},
		{
			name: "bottles",
			entry: launchers.GameEntry{
				ID: "The Witcher 3", Title: "The Witcher 3",
				Source: launchers.SourceBottles, Bottle: "Gaming",
			},
			want: `flatpak run --command=bottles-cli com.usebottles.bottles run -b "Gaming" -p "The Witcher 3"`,
		},
		{
			name: "retroarch",
			entry: launchers.GameEntry{
				ID: "/roms/gba/Advance Wars.gba", Title: "Advance Wars",
				Source: launchers.SourceRetroArch, CorePath: "/cores/mgba_libretro.so",
			},
			want: `flatpak run org.libretro.RetroArch -L "/cores/mgba_libretro.so" "/roms/gba/Advance Wars.gba"`,
		},
		{
			name: "ryujinx",
			entry: launchers.GameEntry{
				ID: "/roms/switch/Zelda.xci", Title: "Zelda",
				Source: launchers.SourceRyujinx,
			},
			want: `flatpak run io.github.ryubing.Ryujinx "/roms/switch/Zelda.xci"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := testBuilder().Build(t.Context(), tt.entry)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommandBuilderWrapHost(t *testing.T) {
	t.Parallel()

	b := testBuilder()
	b.WrapHost = true
	got, err := b.Build(t.Context(), launchers.GameEntry{
		ID: "620", Title: "Portal 2", Source: launchers.SourceSteam,
	})
	require.NoError(t, err)
	assert.Equal(t, "flatpak-spawn --host steam steam://run/620", got)
}

func TestCommandBuilderErrors(t *testing.T) {
	t.Parallel()

	t.Run("launcher_absent", func(t *testing.T) {
		t.Parallel()
		b := testBuilder()
		b.Steam = nil
		_, err := b.Build(t.Context(), launchers.GameEntry{
			ID: "620", Title: "Portal 2", Source: launchers.SourceSteam,
		})
		require.ErrorIs(t, err, sunshine.ErrNoLauncher)
	})

	t.Run("unresolvable_core", func(t *testing.T) {
		t.Parallel()
		b := testBuilder()
		b.ResolveCore = func(context.Context, string, string) string { return "" }
		_, err := b.Build(t.Context(), launchers.GameEntry{
			ID: "/roms/x.gba", Title: "X", Source: launchers.SourceRetroArch, CorePath: "DETECT",
		})
		require.ErrorIs(t, err, sunshine.ErrNoCore)
	})
}

// Detection priority: Flatpak beats a native binary on PATH, and absence is
// a value, not an error. The AppImage globs scan the real filesystem, so
// HOME is pointed at an empty directory.
func TestDetect(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	const flatpakList = "flatpak list --app --columns=application"

	t.Run("flatpak_wins_over_native", func(t *testing.T) {
		exec := &testhelpers.MockExecutor{
			Outputs:  map[string][]byte{flatpakList: []byte("dev.lizardbyte.app.Sunshine\n")},
			Binaries: []string{"sunshine"},
		}
		assert.Equal(t, config.FormFlatpak, sunshine.Detect(t.Context(), exec))
	})

	t.Run("snap_detected", func(t *testing.T) {
		exec := &testhelpers.MockExecutor{
			Outputs: map[string][]byte{
				"snap list sunshine": []byte("Name      Version  Rev  Tracking\nsunshine  2025.122 123  latest/stable\n"),
			},
		}
		assert.Equal(t, config.FormSnap, sunshine.Detect(t.Context(), exec))
	})

	t.Run("native_fallback", func(t *testing.T) {
		exec := &testhelpers.MockExecutor{Binaries: []string{"sunshine"}}
		assert.Equal(t, config.FormNative, sunshine.Detect(t.Context(), exec))
	})

	t.Run("appimage_glob", func(t *testing.T) {
		home, _ := os.UserHomeDir()
		appImage := filepath.Join(home, "Applications", "Sunshine-1.0.AppImage")
		require.NoError(t, os.MkdirAll(filepath.Dir(appImage), 0o755))
		require.NoError(t, os.WriteFile(appImage, []byte{0x7f}, 0o755))
		t.Cleanup(func() { _ = os.Remove(appImage) })

		assert.Equal(t, config.FormAppImage, sunshine.Detect(t.Context(), &testhelpers.MockExecutor{}))
	})

	t.Run("absent", func(t *testing.T) {
		assert.Equal(t, config.FormAbsent, sunshine.Detect(t.Context(), &testhelpers.MockExecutor{}))
	})
}

func TestIsRunning(t *testing.T) {
	t.Parallel()

	exec := &testhelpers.MockExecutor{
		Outputs: map[string][]byte{
			"ps -e -o args=": []byte("bwrap -- /app/bin/sunshine\n"),
		},
	}
	assert.True(t, sunshine.IsRunning(t.Context(), exec))

	idle := &testhelpers.MockExecutor{
		Outputs: map[string][]byte{"ps -e -o args=": []byte("bash\n")},
	}
	assert.False(t, sunshine.IsRunning(t.Context(), idle))
}

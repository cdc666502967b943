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

package sunshine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sunlink-project/sunlink/pkg/helpers/flatpak"
	"github.com/sunlink-project/sunlink/pkg/launchers"
)

// ErrNoLauncher is returned when an entry's source launcher was not detected.
var ErrNoLauncher = errors.New("launcher command unavailable")

// ErrNoCore is returned when a RetroArch entry's core cannot be resolved.
// Such entries are skipped with a warning rather than registered broken.
var ErrNoCore = errors.New("could not resolve core")

// CoreResolver resolves a RetroArch playlist core reference to a library
// path, or "" when no core can be derived.
type CoreResolver func(ctx context.Context, corePath, coreName string) string

// CommandBuilder constructs the shell command Sunshine runs to launch a
// game. It is a pure function of the entry and the launcher invocations
// detected at startup.
type CommandBuilder struct {
	// Invocation prefixes per launcher; nil means the launcher is absent.
	Lutris    []string
	Heroic    []string
	Steam     []string
	RetroArch []string
	Ryujinx   []string

	ResolveCore CoreResolver

	// WrapHost is set when Sunshine itself runs inside a Flatpak sandbox:
	// commands must escape to the host to reach the launchers.
	WrapHost bool
}

// Build returns the launch command for a game entry.
func (b *CommandBuilder) Build(ctx context.Context, e launchers.GameEntry) (string, error) {
	var args []string

	switch e.Source {
	case launchers.SourceLutris:
		if b.Lutris == nil {
			return "", ErrNoLauncher
		}
		args = append([]string{"env", "LUTRIS_SKIP_INIT=1"}, b.Lutris...)
		args = append(args, "lutris:rungameid/"+e.ID)

	case launchers.SourceHeroic:
		if b.Heroic == nil {
			return "", ErrNoLauncher
		}
		args = append(args, b.Heroic...)
		args = append(args, fmt.Sprintf("heroic://launch/%s/%s", e.Runner, e.ID),
			"--no-gui", "--no-sandbox")

	case launchers.SourceSteam:
		if b.Steam == nil {
			return "", ErrNoLauncher
		}
		args = append(args, b.Steam...)
		args = append(args, "steam://run/"+e.ID)

	case launchers.SourceBottles:
		args = append(args,
			"flatpak", "run", "--command=bottles-cli", flatpak.BottlesID,
			"run", "-b", quote(e.Bottle), "-p", quote(e.ID))

	case launchers.SourceRetroArch:
		if b.RetroArch == nil {
			return "", ErrNoLauncher
		}
		core := ""
		if b.ResolveCore != nil {
			core = b.ResolveCore(ctx, e.CorePath, e.CoreName)
		}
		if core == "" {
			return "", fmt.Errorf("%w for %q", ErrNoCore, e.Title)
		}
		args = append(args, b.RetroArch...)
		args = append(args, "-L", quote(core), quote(e.ID))

	case launchers.SourceRyujinx:
		if b.Ryujinx == nil {
			return "", ErrNoLauncher
		}
		args = append(args, b.Ryujinx...)
		args = append(args, quote(e.ID))

	case launchers.SourceUnknown:
		return "", fmt.Errorf("unknown source for %q", e.Title)

	default:
		return "", fmt.Errorf("unknown source for %q", e.Title)
	}

	cmd := strings.Join(args, " ")
	if b.WrapHost {
		cmd = "flatpak-spawn --host " + cmd
	}
	return cmd, nil
}

// quote wraps an argument in double quotes for the registered shell command.
func quote(s string) string {
	return `"` + s + `"`
}

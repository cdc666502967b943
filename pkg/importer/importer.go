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

// Package importer sequences a full Sunlink run: probing sources, scanning
// games, selection, cover resolution and registration with Sunshine.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/sunlink-project/sunlink/pkg/config"
	"github.com/sunlink-project/sunlink/pkg/helpers/command"
	"github.com/sunlink-project/sunlink/pkg/launchers"
	"github.com/sunlink-project/sunlink/pkg/steamgriddb"
	"github.com/sunlink-project/sunlink/pkg/sunshine"
	"github.com/sunlink-project/sunlink/pkg/ui"
)

// CoverResolver resolves a cover image path for a game title.
type CoverResolver interface {
	ResolveCover(ctx context.Context, title string) string
}

// Importer wires the discovery, selection and registration phases together.
// A failure in any single source or cover never aborts the run; only the
// hard dependency checks on Sunshine itself do.
type Importer struct {
	Cfg      *config.Instance
	Fs       afero.Fs
	Exec     command.Executor
	Prompter *ui.Prompter
}

// Run executes one full import.
func (im *Importer) Run(ctx context.Context) error {
	form := sunshine.Detect(ctx, im.Exec)
	switch form {
	case config.FormAbsent:
		im.Prompter.Notify("Sunshine is not installed. Install Sunshine and try again.")
		return nil
	case config.FormSnap:
		im.Prompter.Notify("Sunshine installed via Snap is not supported. " +
			"Install the Flatpak or native package and try again.")
		return nil
	case config.FormNative, config.FormFlatpak, config.FormAppImage:
	}
	log.Info().Stringer("form", form).Msg("detected Sunshine installation")

	paths := config.NewSunshinePaths(form)
	if err := paths.EnsureDirs(im.Fs); err != nil {
		return fmt.Errorf("failed to prepare state directories: %w", err)
	}

	client := sunshine.NewClient(im.Fs, im.Cfg.SunshineURL(), paths.CredentialsFile())
	running := sunshine.IsRunning(ctx, im.Exec)
	if err := client.Authenticate(ctx, running, im.Prompter); err != nil {
		switch {
		case errors.Is(err, sunshine.ErrNotRunning):
			im.Prompter.Notify("Error: Sunshine is not running. Start Sunshine and try again.")
			return nil
		case errors.Is(err, sunshine.ErrAuthAborted):
			return nil
		default:
			return fmt.Errorf("failed to authenticate with Sunshine: %w", err)
		}
	}

	lutris := launchers.NewLutris(im.Exec)
	heroic := launchers.NewHeroic(im.Exec, im.Fs)
	bottles := launchers.NewBottles(im.Exec)
	steam := launchers.NewSteam(im.Exec, im.Fs)
	ryujinx := launchers.NewRyujinx(im.Exec, im.Fs)
	ryujinx.ExtraDirs = im.Cfg.ExtraRomDirs()
	retroarch := launchers.NewRetroArch(im.Exec, im.Fs)

	adapters := []launchers.Adapter{lutris, heroic, bottles, steam, ryujinx, retroarch}
	installed := probeAll(ctx, adapters)

	var names []string
	for i, a := range adapters {
		if installed[i] {
			names = append(names, a.Name())
		}
	}
	if len(names) == 0 {
		im.Prompter.Notify("No game sources detected.")
		return nil
	}

	entries := scanAll(ctx, adapters, installed)
	if len(entries) == 0 {
		im.Prompter.Notify("No games found.")
		return nil
	}
	launchers.SortEntries(entries)

	existing := make(map[string]struct{})
	for _, app := range client.ListApps(ctx) {
		existing[app.Name] = struct{}{}
	}

	im.Prompter.Notify(gamesFoundMessage(names))
	for i, e := range entries {
		status := ""
		if _, dup := existing[e.Title]; dup {
			status = " (already in Sunshine)"
		}
		im.Prompter.Notify(fmt.Sprintf("%d. [%s] %s%s", i+1, ui.ColorSource(e.Source), e.Title, status))
	}
	im.Prompter.Notify(fmt.Sprintf("%d. Add all games", len(entries)+1))

	selected, ok := im.promptSelection(len(entries))
	if !ok {
		return nil
	}

	picks := Registrable(entries, selected, existing)
	if len(picks) == 0 {
		im.Prompter.Notify("Nothing new to add to Sunshine.")
		return nil
	}

	var resolver CoverResolver
	if im.Prompter.YesNo("Do you want to download images from SteamGridDB?") {
		key, ok := steamgriddb.EnsureKey(ctx, im.Fs, paths.APIKeyFile(), im.Prompter,
			steamgriddb.ValidateKeyFunc(im.Fs, paths.CoversDir(), im.Cfg.CoverDimensions()))
		if ok {
			resolver = steamgriddb.NewClient(key, im.Fs, paths.CoversDir(), im.Cfg.CoverDimensions())
		}
	}

	builder := im.buildCommandBuilder(ctx, form, lutris, heroic, steam, ryujinx, retroarch)
	im.register(ctx, client, builder, resolver, picks)
	return nil
}

// promptSelection loops until the input parses into valid indices.
func (im *Importer) promptSelection(n int) ([]int, bool) {
	const prompt = "Enter the number(s) of the game(s) you want to add to Sunshine " +
		"(comma-separated for multiple, or ranges like 2-9): "
	for {
		line, ok := im.Prompter.ReadLine(prompt)
		if !ok {
			return nil, false
		}
		selected, err := ui.ParseSelection(line, n)
		if err != nil {
			im.Prompter.Notify("Invalid selection. Please try again.")
			continue
		}
		return selected, true
	}
}

func (im *Importer) buildCommandBuilder(
	ctx context.Context,
	form config.InstallForm,
	lutris *launchers.Lutris,
	heroic *launchers.Heroic,
	steam *launchers.Steam,
	ryujinx *launchers.Ryujinx,
	retroarch *launchers.RetroArch,
) *sunshine.CommandBuilder {
	builder := &sunshine.CommandBuilder{
		WrapHost:    form == config.FormFlatpak,
		ResolveCore: retroarch.ResolveCore,
	}
	if cmd, ok := lutris.Command(ctx); ok {
		builder.Lutris = cmd
	}
	if cmd, ok := heroic.Command(ctx); ok {
		builder.Heroic = cmd
	}
	if cmd, ok := steam.Command(ctx); ok {
		builder.Steam = cmd
	}
	if cmd, ok := retroarch.Command(ctx); ok {
		builder.RetroArch = cmd
	}
	if ryujinx.Installed(ctx) {
		builder.Ryujinx = ryujinx.Command()
	}
	return builder
}

// register resolves covers and registers the picked entries, one task per
// game. Per-entry failures are logged and never abort the batch.
func (im *Importer) register(
	ctx context.Context,
	client *sunshine.Client,
	builder *sunshine.CommandBuilder,
	resolver CoverResolver,
	picks []launchers.GameEntry,
) {
	results := make([]string, len(picks))
	forEach(len(picks), func(i int) {
		e := picks[i]

		imagePath := config.DefaultImage
		if resolver != nil {
			imagePath = resolver.ResolveCover(ctx, e.Title)
		}

		cmd, err := builder.Build(ctx, e)
		if err != nil {
			log.Warn().Err(err).Str("title", e.Title).Msg("skipping game")
			results[i] = fmt.Sprintf("Skipped %s: %v", e.Title, err)
			return
		}

		if err := client.RegisterApp(ctx, e.Title, cmd, imagePath); err != nil {
			log.Error().Err(err).Str("title", e.Title).Msg("failed to register game")
			results[i] = fmt.Sprintf("Failed to add %s to Sunshine.", e.Title)
			return
		}
		results[i] = fmt.Sprintf("Added %s to Sunshine with image %s.", e.Title, imagePath)
	})

	for _, msg := range results {
		im.Prompter.Notify(msg)
	}
}

// gamesFoundMessage names the detected sources in one line.
func gamesFoundMessage(names []string) string {
	switch len(names) {
	case 0:
		return "No game sources detected."
	case 1:
		return fmt.Sprintf("Games found in %s:", names[0])
	case 2:
		return fmt.Sprintf("Games found in %s and %s:", names[0], names[1])
	default:
		return fmt.Sprintf("Games found in %s and %s:",
			strings.Join(names[:len(names)-1], ", "), names[len(names)-1])
	}
}

// Registrable filters a selection down to the entries that are not already
// registered in Sunshine. Dedup is keyed on the exact title only; the same
// title coming from two sources in the same run stays selectable twice.
func Registrable(
	entries []launchers.GameEntry,
	selected []int,
	existing map[string]struct{},
) []launchers.GameEntry {
	var picks []launchers.GameEntry
	for _, idx := range selected {
		if idx < 0 || idx >= len(entries) {
			continue
		}
		e := entries[idx]
		if _, dup := existing[e.Title]; dup {
			log.Debug().Str("title", e.Title).Msg("already in Sunshine, skipping")
			continue
		}
		picks = append(picks, e)
	}
	return picks
}

//go:build linux

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

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/sunlink-project/sunlink/pkg/config"
	"github.com/sunlink-project/sunlink/pkg/helpers"
	"github.com/sunlink-project/sunlink/pkg/helpers/command"
	"github.com/sunlink-project/sunlink/pkg/importer"
	"github.com/sunlink-project/sunlink/pkg/ui"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	debugFlag := flag.Bool(
		"debug",
		false,
		"enable debug logging to stderr",
	)
	cfgPath := flag.String(
		"config",
		config.DefaultConfigPath(),
		"path to settings file",
	)
	flag.Parse()

	fs := afero.NewOsFs()
	cfg := config.NewInstance(fs, *cfgPath)

	debug := *debugFlag || cfg.DebugLogging()
	var logWriters []io.Writer
	if debug {
		logWriters = append(logWriters, os.Stderr)
	}
	if err := helpers.InitLogging(config.LogDir(), debug, logWriters...); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	// A user interrupt during any interactive step aborts the whole run
	// cleanly; nothing partial is saved.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		fmt.Println("\nInterrupted. Exiting...")
		os.Exit(0)
	}()

	im := &importer.Importer{
		Cfg:      cfg,
		Fs:       fs,
		Exec:     &command.RealExecutor{},
		Prompter: ui.NewPrompter(os.Stdin, os.Stdout),
	}
	return im.Run(ctx)
}

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

package importer

import (
	"context"

	"github.com/sunlink-project/sunlink/pkg/launchers"
	"golang.org/x/sync/errgroup"
)

// forEach runs fn for every index in parallel and joins before returning.
// Each task writes only its own slot; the caller merges after the barrier.
func forEach(n int, fn func(i int)) {
	var g errgroup.Group
	for i := range n {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}

// probeAll checks every adapter's presence in parallel.
func probeAll(ctx context.Context, adapters []launchers.Adapter) []bool {
	installed := make([]bool, len(adapters))
	forEach(len(adapters), func(i int) {
		installed[i] = adapters[i].Installed(ctx)
	})
	return installed
}

// scanAll lists games from every installed adapter in parallel, merging the
// per-adapter results only after all scans complete.
func scanAll(ctx context.Context, adapters []launchers.Adapter, installed []bool) []launchers.GameEntry {
	slots := make([][]launchers.GameEntry, len(adapters))
	forEach(len(adapters), func(i int) {
		if installed[i] {
			slots[i] = adapters[i].ListGames(ctx)
		}
	})

	var entries []launchers.GameEntry
	for _, slot := range slots {
		entries = append(entries, slot...)
	}
	return entries
}

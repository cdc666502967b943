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
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sunlink-project/sunlink/pkg/helpers/command"
)

// ProcessRunning reports whether any process in the process table matches
// one of the given substrings. A failure to read the process table is
// treated as "not running" and logged, never raised.
func ProcessRunning(ctx context.Context, exec command.Executor, patterns ...string) bool {
	out, err := exec.Output(ctx, "ps", "-e", "-o", "args=")
	if err != nil {
		log.Warn().Err(err).Msg("failed to read process table")
		return false
	}

	for line := range strings.Lines(string(out)) {
		for _, p := range patterns {
			if strings.Contains(line, p) {
				return true
			}
		}
	}
	return false
}

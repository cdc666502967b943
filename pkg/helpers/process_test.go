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

package helpers_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sunlink-project/sunlink/pkg/helpers"
	testhelpers "github.com/sunlink-project/sunlink/pkg/testing/helpers"
)

func TestProcessRunning(t *testing.T) {
	t.Parallel()

	psTable := []byte("/usr/lib/systemd/systemd --user\n" +
		"/usr/bin/sunshine --config /etc/sunshine.conf\n" +
		"bash\n")

	t.Run("matches_substring", func(t *testing.T) {
		t.Parallel()
		exec := &testhelpers.MockExecutor{
			Outputs: map[string][]byte{"ps -e -o args=": psTable},
		}
		assert.True(t, helpers.ProcessRunning(t.Context(), exec, "sunshine"))
	})

	t.Run("any_pattern_suffices", func(t *testing.T) {
		t.Parallel()
		exec := &testhelpers.MockExecutor{
			Outputs: map[string][]byte{"ps -e -o args=": psTable},
		}
		assert.True(t, helpers.ProcessRunning(t.Context(), exec, "nonexistent", "systemd"))
	})

	t.Run("no_match", func(t *testing.T) {
		t.Parallel()
		exec := &testhelpers.MockExecutor{
			Outputs: map[string][]byte{"ps -e -o args=": psTable},
		}
		assert.False(t, helpers.ProcessRunning(t.Context(), exec, "retroarch"))
	})

	t.Run("ps_failure_means_not_running", func(t *testing.T) {
		t.Parallel()
		exec := &testhelpers.MockExecutor{
			Errs: map[string]error{"ps -e -o args=": errors.New("no ps")},
		}
		assert.False(t, helpers.ProcessRunning(t.Context(), exec, "sunshine"))
	})
}

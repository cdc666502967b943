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

package steamgriddb

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// KeyHelpURL is shown to the user before prompting for a new API key.
const KeyHelpURL = "https://www.steamgriddb.com/profile/preferences/api"

// KeyPrompter supplies an API key interactively. Implementations may return
// ok=false to signal the user gave up.
type KeyPrompter interface {
	PromptAPIKey() (key string, ok bool)
	Notify(message string)
}

// KeyValidator checks an API key against the remote service. Split out so
// tests can substitute the network probe.
type KeyValidator func(ctx context.Context, apiKey string) bool

// EnsureKey returns a validated SteamGridDB API key: the cached key from
// keyPath when it still validates, otherwise keys prompted in a loop until
// one validates, which is then persisted. Returns ok=false only when the
// prompter gives up.
func EnsureKey(
	ctx context.Context,
	fs afero.Fs,
	keyPath string,
	prompter KeyPrompter,
	validate KeyValidator,
) (string, bool) {
	if cached, err := afero.ReadFile(fs, keyPath); err == nil {
		key := strings.TrimSpace(string(cached))
		if key != "" && validate(ctx, key) {
			return key, true
		}
		prompter.Notify("Existing API key is invalid. Please enter a new one.")
	}

	prompter.Notify("To get your SteamGridDB API key, visit: " + KeyHelpURL)
	for {
		key, ok := prompter.PromptAPIKey()
		if !ok {
			return "", false
		}
		key = strings.TrimSpace(key)
		if key == "" || !validate(ctx, key) {
			prompter.Notify("Invalid API key. Please try again.")
			continue
		}

		if err := afero.WriteFile(fs, keyPath, []byte(key), 0o600); err != nil {
			log.Warn().Err(err).Str("path", keyPath).Msg("failed to persist API key")
		}
		return key, true
	}
}

// ValidateKeyFunc adapts a fresh Client to the validator signature used by
// EnsureKey.
func ValidateKeyFunc(fs afero.Fs, coversDir, dimensions string) KeyValidator {
	return func(ctx context.Context, apiKey string) bool {
		return NewClient(apiKey, fs, coversDir, dimensions).ValidateKey(ctx)
	}
}

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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunlink-project/sunlink/pkg/sunshine"
)

const tokenPath = "/sunshine/credentials"

type scriptedCredPrompter struct {
	creds    [][2]string
	messages []string
}

func (p *scriptedCredPrompter) PromptCredentials() (string, string, bool) {
	if len(p.creds) == 0 {
		return "", "", false
	}
	c := p.creds[0]
	p.creds = p.creds[1:]
	return c[0], c[1], true
}

func (p *scriptedCredPrompter) Notify(message string) {
	p.messages = append(p.messages, message)
}

// newSunshineServer fakes the local Sunshine API over TLS with a self-signed
// certificate, the same situation the insecure client exists for.
func newSunshineServer(t *testing.T, accept string) (*httptest.Server, *[]map[string]any) {
	t.Helper()

	var registered []map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/api/apps", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != accept {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Method == http.MethodPost {
			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			registered = append(registered, body)
			_, _ = w.Write([]byte(`{"status": true}`))
			return
		}
		_, _ = w.Write([]byte(`{"apps": [{"name": "Desktop"}, {"name": "Steam Big Picture"}]}`))
	})

	srv := httptest.NewTLSServer(mux)
	t.Cleanup(srv.Close)
	return srv, &registered
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	goodToken := sunshine.EncodeToken("admin", "hunter2")

	t.Run("cached_token_accepted", func(t *testing.T) {
		t.Parallel()
		srv, _ := newSunshineServer(t, goodToken)
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, tokenPath, []byte(goodToken+"\n"), 0o600))

		c := sunshine.NewClient(fs, srv.URL, tokenPath)
		prompter := &scriptedCredPrompter{}
		require.NoError(t, c.Authenticate(t.Context(), true, prompter))
		assert.Empty(t, prompter.messages)

		apps := c.ListApps(t.Context())
		require.Len(t, apps, 2)
		assert.Equal(t, "Desktop", apps[0].Name)
	})

	t.Run("stale_token_removed_then_reprompt", func(t *testing.T) {
		t.Parallel()
		srv, _ := newSunshineServer(t, goodToken)
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, tokenPath, []byte("Basic c3RhbGU6c3RhbGU="), 0o600))

		c := sunshine.NewClient(fs, srv.URL, tokenPath)
		prompter := &scriptedCredPrompter{creds: [][2]string{
			{"admin", "wrong"},
			{"admin", "hunter2"},
		}}
		require.NoError(t, c.Authenticate(t.Context(), true, prompter))
		assert.Contains(t, prompter.messages, "Invalid credentials. Please try again.")

		persisted, err := afero.ReadFile(fs, tokenPath)
		require.NoError(t, err)
		assert.Equal(t, goodToken, string(persisted))
	})

	t.Run("not_running_fails_fast", func(t *testing.T) {
		t.Parallel()
		srv, _ := newSunshineServer(t, goodToken)
		fs := afero.NewMemMapFs()

		c := sunshine.NewClient(fs, srv.URL, tokenPath)
		prompter := &scriptedCredPrompter{creds: [][2]string{{"admin", "hunter2"}}}
		err := c.Authenticate(t.Context(), false, prompter)
		require.ErrorIs(t, err, sunshine.ErrNotRunning)
		// The prompter must never have been consulted.
		assert.Len(t, prompter.creds, 1)
	})

	t.Run("not_running_keeps_cached_token", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, tokenPath, []byte(goodToken), 0o600))

		// Host down: nothing listens on the base URL. The cached token was
		// never rejected, so it must survive for the next run.
		c := sunshine.NewClient(fs, "https://127.0.0.1:1", tokenPath)
		err := c.Authenticate(t.Context(), false, &scriptedCredPrompter{})
		require.ErrorIs(t, err, sunshine.ErrNotRunning)

		persisted, err := afero.ReadFile(fs, tokenPath)
		require.NoError(t, err)
		assert.Equal(t, goodToken, string(persisted))
	})

	t.Run("prompter_gives_up", func(t *testing.T) {
		t.Parallel()
		srv, _ := newSunshineServer(t, goodToken)
		c := sunshine.NewClient(afero.NewMemMapFs(), srv.URL, tokenPath)
		err := c.Authenticate(t.Context(), true, &scriptedCredPrompter{})
		require.ErrorIs(t, err, sunshine.ErrAuthAborted)
	})
}

func TestListAppsFailureYieldsEmpty(t *testing.T) {
	t.Parallel()

	c := sunshine.NewClient(afero.NewMemMapFs(), "https://127.0.0.1:1", tokenPath)
	assert.Empty(t, c.ListApps(t.Context()))
}

func TestRegisterApp(t *testing.T) {
	t.Parallel()

	goodToken := sunshine.EncodeToken("admin", "hunter2")
	srv, registered := newSunshineServer(t, goodToken)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, tokenPath, []byte(goodToken), 0o600))
	c := sunshine.NewClient(fs, srv.URL, tokenPath)
	require.NoError(t, c.Authenticate(t.Context(), true, &scriptedCredPrompter{}))

	err := c.RegisterApp(t.Context(), "Celeste", `env LUTRIS_SKIP_INIT=1 lutris lutris:rungameid/7`, "/covers/celeste.png")
	require.NoError(t, err)

	require.Len(t, *registered, 1)
	body := (*registered)[0]
	assert.Equal(t, "Celeste", body["name"])
	assert.Equal(t, `env LUTRIS_SKIP_INIT=1 lutris lutris:rungameid/7`, body["cmd"])
	assert.Equal(t, "/covers/celeste.png", body["image-path"])
	assert.InDelta(t, -1, body["index"], 0)
	assert.Equal(t, false, body["exclude-global-prep-cmd"])
	assert.Equal(t, true, body["auto-detach"])
	assert.Equal(t, true, body["wait-all"])
	assert.InDelta(t, 5, body["exit-timeout"], 0)
	assert.Equal(t, []any{}, body["prep-cmd"])
	assert.Equal(t, "", body["output"])
}

func TestEncodeToken(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Basic YWRtaW46aHVudGVyMg==", sunshine.EncodeToken("admin", "hunter2"))
}

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
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/sunlink-project/sunlink/pkg/shared/httpclient"
)

// ErrNotRunning is returned when authentication is attempted while no
// Sunshine process is running. Callers fail fast instead of prompting.
var ErrNotRunning = errors.New("sunshine is not running")

// ErrAuthAborted is returned when the credential prompter gives up.
var ErrAuthAborted = errors.New("authentication aborted")

// App is an entry already registered in Sunshine. Name is the sole
// deduplication key, compared case-sensitively.
type App struct {
	Name string `json:"name"`
}

// CredentialPrompter supplies Sunshine username/password pairs
// interactively. ok=false signals the user gave up.
type CredentialPrompter interface {
	PromptCredentials() (username, password string, ok bool)
	Notify(message string)
}

// Client is an authenticated client for the Sunshine local HTTPS API.
// Sunshine serves a self-signed certificate, so TLS verification is
// intentionally disabled.
type Client struct {
	http      *httpclient.Client
	fs        afero.Fs
	baseURL   string
	tokenPath string
	token     string
}

// NewClient creates a Sunshine API client. tokenPath is where the validated
// auth token is cached between runs.
func NewClient(fs afero.Fs, baseURL, tokenPath string) *Client {
	return &Client{
		http:      httpclient.NewInsecureClient(""),
		fs:        fs,
		baseURL:   strings.TrimRight(baseURL, "/"),
		tokenPath: tokenPath,
	}
}

// EncodeToken derives the authorization header value from a username and
// password. The encoding is reversible, not a hash; the token is only as
// secret as the file it is cached in.
func EncodeToken(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

// validateToken probes the API with the given token and reports whether the
// host accepts it.
func (c *Client) validateToken(ctx context.Context, token string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/apps", http.NoBody)
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", token)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug().Err(err).Msg("sunshine token validation request failed")
		return false
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	return resp.StatusCode == http.StatusOK
}

// Authenticate establishes a validated auth token, trying the cached token
// first and falling back to interactive credentials.
//
// If the host process is not running, this fails fast with ErrNotRunning
// before touching the cache, so a token the host never saw is not lost to a
// connection error. A cached token the host actually rejects is deleted
// before prompting. Bad credentials re-prompt until the prompter gives up.
func (c *Client) Authenticate(ctx context.Context, running bool, prompter CredentialPrompter) error {
	if !running {
		return ErrNotRunning
	}

	if cached, err := afero.ReadFile(c.fs, c.tokenPath); err == nil {
		token := strings.TrimSpace(string(cached))
		if token != "" && c.validateToken(ctx, token) {
			c.setToken(token)
			return nil
		}
		log.Info().Msg("cached sunshine token rejected, removing")
		if err := c.fs.Remove(c.tokenPath); err != nil {
			log.Warn().Err(err).Str("path", c.tokenPath).Msg("failed to remove stale token")
		}
	}

	for {
		username, password, ok := prompter.PromptCredentials()
		if !ok {
			return ErrAuthAborted
		}

		token := EncodeToken(username, password)
		if !c.validateToken(ctx, token) {
			prompter.Notify("Invalid credentials. Please try again.")
			continue
		}

		if err := afero.WriteFile(c.fs, c.tokenPath, []byte(token), 0o600); err != nil {
			log.Warn().Err(err).Str("path", c.tokenPath).Msg("failed to persist token")
		}
		c.setToken(token)
		return nil
	}
}

func (c *Client) setToken(token string) {
	c.token = token
	c.http.SetAuthorization(token)
}

// ListApps fetches the apps currently registered in Sunshine. Any failure
// is logged and yields an empty list so a flaky host never aborts a run.
func (c *Client) ListApps(ctx context.Context) []App {
	resp, err := c.http.Get(ctx, c.baseURL+"/api/apps")
	if err != nil {
		log.Warn().Err(err).Msg("failed to list sunshine apps")
		return nil
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Msg("sunshine app list returned non-OK status")
		return nil
	}

	var result struct {
		Apps []App `json:"apps"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Warn().Err(err).Msg("failed to decode sunshine app list")
		return nil
	}
	return result.Apps
}

// newAppRequest is the POST body Sunshine expects for a new app entry.
type newAppRequest struct {
	Name                 string   `json:"name"`
	Output               string   `json:"output"`
	Cmd                  string   `json:"cmd"`
	Index                int      `json:"index"`
	ExcludeGlobalPrepCmd bool     `json:"exclude-global-prep-cmd"`
	Elevated             bool     `json:"elevated"`
	AutoDetach           bool     `json:"auto-detach"`
	WaitAll              bool     `json:"wait-all"`
	ExitTimeout          int      `json:"exit-timeout"`
	PrepCmd              []string `json:"prep-cmd"`
	Detached             []string `json:"detached"`
	ImagePath            string   `json:"image-path"`
}

// RegisterApp registers a new launchable app with Sunshine. Failure is
// reported to the caller, who logs it per-entry; registrations are attempted
// exactly once and never abort the batch.
func (c *Client) RegisterApp(ctx context.Context, name, launchCmd, imagePath string) error {
	body, err := json.Marshal(newAppRequest{
		Name:        name,
		Cmd:         launchCmd,
		Index:       -1,
		AutoDetach:  true,
		WaitAll:     true,
		ExitTimeout: 5,
		PrepCmd:     []string{},
		Detached:    []string{},
		ImagePath:   imagePath,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal app request: %w", err)
	}

	resp, err := c.http.Post(ctx, c.baseURL+"/api/apps", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to register app: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sunshine rejected app %q: status %d", name, resp.StatusCode)
	}
	return nil
}

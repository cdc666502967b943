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

// Package steamgriddb resolves game cover art from the SteamGridDB API.
package steamgriddb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	// Grid images arrive as PNG, JPEG or WebP.
	_ "golang.org/x/image/webp"
	_ "image/jpeg"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/sunlink-project/sunlink/pkg/config"
	"github.com/sunlink-project/sunlink/pkg/helpers"
	"github.com/sunlink-project/sunlink/pkg/shared/httpclient"
)

// DefaultBaseURL is the production SteamGridDB API endpoint.
const DefaultBaseURL = "https://www.steamgriddb.com/api/v2"

// Client resolves and caches cover images from SteamGridDB.
type Client struct {
	http       *httpclient.Client
	fs         afero.Fs
	baseURL    string
	coversDir  string
	dimensions string
}

// NewClient creates a cover resolver. apiKey is sent as a bearer token;
// resolved covers are cached under coversDir keyed by normalized title.
func NewClient(apiKey string, fs afero.Fs, coversDir, dimensions string) *Client {
	return &Client{
		http:       httpclient.NewClient("Bearer " + apiKey),
		fs:         fs,
		baseURL:    DefaultBaseURL,
		coversDir:  coversDir,
		dimensions: dimensions,
	}
}

// SetBaseURL overrides the API endpoint, for tests.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

type searchResponse struct {
	Data []struct {
		ID int64 `json:"id"`
	} `json:"data"`
}

type gridsResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// CoverPath returns the cache path a title's cover resolves to.
func (c *Client) CoverPath(title string) string {
	return filepath.Join(c.coversDir, helpers.NormalizeTitle(title)+".png")
}

// ResolveCover resolves the cover image for a game title, returning the
// on-disk path of a cached or freshly downloaded PNG. Every failure mode
// falls back to the default image reference; this never fails loudly.
//
// A second call for the same normalized title short-circuits to the cached
// file without touching the network.
func (c *Client) ResolveCover(ctx context.Context, title string) string {
	coverPath := c.CoverPath(title)
	if ok, _ := afero.Exists(c.fs, coverPath); ok {
		return coverPath
	}

	gameID, ok := c.search(ctx, title)
	if !ok {
		return config.DefaultImage
	}

	imageURL, ok := c.firstGrid(ctx, gameID)
	if !ok {
		log.Info().Str("title", title).Msg("no cover found on SteamGridDB")
		return config.DefaultImage
	}

	body, contentType, err := c.http.GetBytes(ctx, imageURL)
	if err != nil {
		log.Warn().Err(err).Str("title", title).Msg("failed to download cover")
		return config.DefaultImage
	}

	data, err := toPNG(body, contentType)
	if err != nil {
		log.Warn().Err(err).Str("title", title).Msg("failed to convert cover")
		return config.DefaultImage
	}

	if err := afero.WriteFile(c.fs, coverPath, data, 0o644); err != nil {
		log.Warn().Err(err).Str("path", coverPath).Msg("failed to write cover")
		return config.DefaultImage
	}

	return coverPath
}

// search returns the id of the first autocomplete match for title.
func (c *Client) search(ctx context.Context, title string) (int64, bool) {
	searchURL := c.baseURL + "/search/autocomplete/" + url.PathEscape(title)

	var result searchResponse
	if !c.getJSON(ctx, searchURL, &result) {
		log.Warn().Str("title", title).Msg("SteamGridDB search failed")
		return 0, false
	}
	if len(result.Data) == 0 {
		log.Info().Str("title", title).Msg("no SteamGridDB results")
		return 0, false
	}
	return result.Data[0].ID, true
}

// firstGrid returns the image URL of the first static grid for a game id.
func (c *Client) firstGrid(ctx context.Context, gameID int64) (string, bool) {
	gridURL := fmt.Sprintf("%s/grids/game/%d?dimensions=%s&types=static",
		c.baseURL, gameID, c.dimensions)

	var result gridsResponse
	if !c.getJSON(ctx, gridURL, &result) {
		return "", false
	}
	if len(result.Data) == 0 {
		return "", false
	}
	return result.Data[0].URL, true
}

func (c *Client) getJSON(ctx context.Context, reqURL string, v any) bool {
	resp, err := c.http.Get(ctx, reqURL)
	if err != nil {
		log.Warn().Err(err).Str("url", reqURL).Msg("SteamGridDB request failed")
		return false
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("url", reqURL).
			Msg("SteamGridDB returned non-OK status")
		return false
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		log.Warn().Err(err).Str("url", reqURL).Msg("failed to decode SteamGridDB response")
		return false
	}
	return true
}

// toPNG normalizes downloaded image bytes to PNG. Bytes already declared as
// PNG are written verbatim; everything else is decoded and re-encoded.
func toPNG(body []byte, contentType string) ([]byte, error) {
	if strings.Contains(contentType, "image/png") {
		return body, nil
	}

	img, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// ValidateKey probes the API with a lightweight authenticated call against a
// known grid id and reports whether the key is accepted.
func (c *Client) ValidateKey(ctx context.Context) bool {
	resp, err := c.http.Get(ctx, c.baseURL+"/grids/game/1")
	if err != nil {
		log.Debug().Err(err).Msg("SteamGridDB key validation request failed")
		return false
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	return resp.StatusCode == http.StatusOK
}

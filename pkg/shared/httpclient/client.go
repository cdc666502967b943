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

// Package httpclient provides a shared HTTP client with authentication
// support and sensible defaults.
package httpclient

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// DefaultTimeout is the default timeout for HTTP requests.
const DefaultTimeout = 30 * time.Second

// AuthTransport injects a fixed Authorization header value into every request.
type AuthTransport struct {
	Base http.RoundTripper
	// Authorization is the full header value, e.g. "Bearer xyz" or "Basic xyz".
	Authorization string
}

// RoundTrip implements http.RoundTripper with automatic authentication.
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	if t.Authorization != "" {
		req.Header.Set("Authorization", t.Authorization)
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform HTTP round trip: %w", err)
	}
	return resp, nil
}

func newTransport(insecureTLS bool) *http.Transport {
	tr := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ResponseHeaderTimeout: 30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
	}
	if insecureTLS {
		// Sunshine serves its local API over a self-signed certificate.
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}
	return tr
}

// Client provides an HTTP client with authentication and sensible defaults.
type Client struct {
	*http.Client
}

// NewClient creates a client that sends the given Authorization header value
// with every request. An empty value disables authentication.
func NewClient(authorization string) *Client {
	return &Client{
		Client: &http.Client{
			Transport: &AuthTransport{
				Base:          newTransport(false),
				Authorization: authorization,
			},
			Timeout: DefaultTimeout,
		},
	}
}

// NewInsecureClient creates a client that skips TLS certificate verification,
// for local services with self-signed certificates.
func NewInsecureClient(authorization string) *Client {
	return &Client{
		Client: &http.Client{
			Transport: &AuthTransport{
				Base:          newTransport(true),
				Authorization: authorization,
			},
			Timeout: DefaultTimeout,
		},
	}
}

// SetAuthorization replaces the Authorization header value sent by the client.
func (c *Client) SetAuthorization(authorization string) {
	if t, ok := c.Transport.(*AuthTransport); ok {
		t.Authorization = authorization
	}
}

// Get performs a GET request and returns the response.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error performing GET request: %w", err)
	}

	return resp, nil
}

// Post performs a POST request with the given body and returns the response.
func (c *Client) Post(ctx context.Context, url, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error performing POST request: %w", err)
	}

	return resp, nil
}

// GetBytes performs a GET request and returns the body bytes along with the
// response Content-Type. Non-200 status codes are returned as errors.
func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, string, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("invalid status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("error reading response body: %w", err)
	}

	return body, resp.Header.Get("Content-Type"), nil
}

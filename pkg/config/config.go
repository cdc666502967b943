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

// Package config holds Sunlink's user settings and well-known paths.
package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	AppName    = "sunlink"
	ConfigFile = "config.toml"

	// DefaultImage is the sentinel image reference registered when no cover
	// could be resolved. It is not a file path.
	DefaultImage = "default.png"
)

// Values is the schema of the optional user settings file.
type Values struct {
	SunshineURL     string   `toml:"sunshine_url"`
	CoverDimensions string   `toml:"cover_dimensions,omitempty"`
	ExtraRomDirs    []string `toml:"extra_rom_dirs,omitempty,multiline"`
	DebugLogging    bool     `toml:"debug_logging"`
}

// BaseDefaults are the settings used when no config file exists.
var BaseDefaults = Values{
	SunshineURL:     "https://localhost:47990",
	CoverDimensions: "600x900",
}

// Instance is a loaded settings file.
type Instance struct {
	fs      afero.Fs
	cfgPath string
	vals    Values
	mu      sync.RWMutex
}

// DefaultConfigPath returns the XDG location of the settings file.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, ConfigFile)
}

// LogDir returns the XDG location of the log directory.
func LogDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}

// NewInstance loads settings from cfgPath, falling back to BaseDefaults when
// the file is absent. A malformed file is logged and replaced by defaults.
func NewInstance(fs afero.Fs, cfgPath string) *Instance {
	inst := &Instance{
		fs:      fs,
		cfgPath: cfgPath,
		vals:    BaseDefaults,
	}

	data, err := afero.ReadFile(fs, cfgPath)
	if err != nil {
		log.Debug().Str("path", cfgPath).Msg("no config file, using defaults")
		return inst
	}

	vals := BaseDefaults
	if err := toml.Unmarshal(data, &vals); err != nil {
		log.Warn().Err(err).Str("path", cfgPath).Msg("malformed config file, using defaults")
		return inst
	}

	inst.vals = vals
	return inst
}

// Save writes the current settings back to disk.
func (i *Instance) Save() error {
	i.mu.RLock()
	defer i.mu.RUnlock()

	data, err := toml.Marshal(i.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := i.fs.MkdirAll(filepath.Dir(i.cfgPath), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := afero.WriteFile(i.fs, i.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// SunshineURL returns the base URL of the Sunshine API.
func (i *Instance) SunshineURL() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.vals.SunshineURL
}

// CoverDimensions returns the requested cover grid dimensions filter.
func (i *Instance) CoverDimensions() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.vals.CoverDimensions
}

// ExtraRomDirs returns additional ROM directories to scan beyond the
// emulator's own configuration.
func (i *Instance) ExtraRomDirs() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return append([]string(nil), i.vals.ExtraRomDirs...)
}

// DebugLogging reports whether debug logging is enabled in settings.
func (i *Instance) DebugLogging() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.vals.DebugLogging
}

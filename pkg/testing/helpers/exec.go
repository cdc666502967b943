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

// Package helpers provides utilities for mocking external collaborators in tests.
package helpers

import (
	"context"
	"os/exec"
	"strings"
	"sync"
)

// MockExecutor implements command.Executor against a canned table of results.
// Keys are the command name joined with its arguments by single spaces.
type MockExecutor struct {
	// Outputs maps a full command line to the bytes Output should return.
	Outputs map[string][]byte
	// Errs maps a full command line to an error for Run/Output.
	Errs map[string]error
	// Binaries lists names LookPath should resolve; everything else is not found.
	Binaries []string

	mu    sync.Mutex
	calls []string
}

func key(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

func (m *MockExecutor) record(k string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, k)
}

// Calls returns every command line executed so far, in order.
func (m *MockExecutor) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Run executes a mocked command. Command lines with no configured output or
// error behave like a missing binary.
func (m *MockExecutor) Run(_ context.Context, name string, args ...string) error {
	k := key(name, args)
	m.record(k)
	if err, ok := m.Errs[k]; ok {
		return err
	}
	if _, ok := m.Outputs[k]; ok {
		return nil
	}
	return exec.ErrNotFound
}

// Output returns the configured output bytes for the command line.
func (m *MockExecutor) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	k := key(name, args)
	m.record(k)
	if err := m.Errs[k]; err != nil {
		return nil, err
	}
	if out, ok := m.Outputs[k]; ok {
		return out, nil
	}
	return nil, exec.ErrNotFound
}

// LookPath resolves only the names listed in Binaries.
func (m *MockExecutor) LookPath(name string) (string, error) {
	for _, b := range m.Binaries {
		if b == name {
			return "/usr/bin/" + name, nil
		}
	}
	return "", exec.ErrNotFound
}

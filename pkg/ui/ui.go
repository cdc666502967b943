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

// Package ui implements the interactive terminal prompts and the
// multi-select input parser.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter reads interactive answers from a terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Notify prints a message line.
func (p *Prompter) Notify(message string) {
	_, _ = fmt.Fprintln(p.out, message)
}

// ReadLine prints a prompt and reads one trimmed input line. ok is false on
// EOF.
func (p *Prompter) ReadLine(prompt string) (line string, ok bool) {
	_, _ = fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

// YesNo asks a yes/no question, re-prompting until a valid answer arrives.
// EOF counts as no.
func (p *Prompter) YesNo(prompt string) bool {
	for {
		line, ok := p.ReadLine(prompt + " (y/n): ")
		if !ok {
			return false
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		p.Notify("Invalid input. Please enter 'y' for yes or 'n' for no.")
	}
}

// PromptCredentials implements sunshine.CredentialPrompter.
func (p *Prompter) PromptCredentials() (username, password string, ok bool) {
	username, ok = p.ReadLine("Sunshine username: ")
	if !ok {
		return "", "", false
	}
	password, ok = p.ReadLine("Sunshine password: ")
	if !ok {
		return "", "", false
	}
	return username, password, true
}

// PromptAPIKey implements steamgriddb.KeyPrompter.
func (p *Prompter) PromptAPIKey() (key string, ok bool) {
	return p.ReadLine("Please enter your SteamGridDB API key: ")
}

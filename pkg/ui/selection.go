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

package ui

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidSelection is returned for input that cannot be parsed into
// in-range indices. Callers re-prompt.
var ErrInvalidSelection = errors.New("invalid selection")

// ParseSelection parses a 1-based multi-select input against a list of n
// items and returns sorted, de-duplicated 0-based indices.
//
// Accepted forms, comma-separated: single numbers ("7") and inclusive
// ranges ("2-4"). The sentinel value n+1 selects everything.
func ParseSelection(input string, n int) ([]int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrInvalidSelection
	}

	if input == strconv.Itoa(n+1) {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}

	seen := make(map[int]struct{})
	for part := range strings.SplitSeq(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(part, "-")
		if isRange {
			start, err := strconv.Atoi(strings.TrimSpace(lo))
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidSelection, part)
			}
			end, err := strconv.Atoi(strings.TrimSpace(hi))
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidSelection, part)
			}
			// Bounds are checked before expansion so a huge range cannot
			// balloon the map.
			if start < 1 || end > n {
				return nil, fmt.Errorf("%w: range %q out of range", ErrInvalidSelection, part)
			}
			for i := start - 1; i < end; i++ {
				seen[i] = struct{}{}
			}
			continue
		}

		idx, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSelection, part)
		}
		seen[idx-1] = struct{}{}
	}

	indices := make([]int, 0, len(seen))
	for i := range seen {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("%w: index %d out of range", ErrInvalidSelection, i+1)
		}
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices, nil
}

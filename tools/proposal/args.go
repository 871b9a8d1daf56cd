// seehuhn.de/go/proposal - compose sales proposals from PDF templates
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"seehuhn.de/go/proposal/geometry"
)

// parsePageNo parses a 1-based page number.
func parsePageNo(s string, numPages int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid page number %q", s)
	}
	if n < 1 || n > numPages {
		return 0, fmt.Errorf("page %d not in range 1-%d", n, numPages)
	}
	return n, nil
}

// parsePages parses page lists like "1,3-5,9".  The arguments are joined
// with commas first, so that "1 3-5" is accepted as well.  The pages are
// returned in the order given.
func parsePages(args []string, numPages int) ([]int, error) {
	var res []int
	for _, part := range strings.Split(strings.Join(args, ","), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		from, to, isRange := strings.Cut(part, "-")
		if !isRange {
			n, err := parsePageNo(part, numPages)
			if err != nil {
				return nil, err
			}
			res = append(res, n)
			continue
		}
		a, err := parsePageNo(from, numPages)
		if err != nil {
			return nil, err
		}
		b, err := parsePageNo(to, numPages)
		if err != nil {
			return nil, err
		}
		if a > b {
			return nil, fmt.Errorf("invalid page range %q", part)
		}
		for n := a; n <= b; n++ {
			res = append(res, n)
		}
	}
	if len(res) == 0 {
		return nil, errors.New("no pages given")
	}
	return res, nil
}

// formatPages is the inverse of parsePages, for sorted input.
func formatPages(pages []int) string {
	pages = slices.Clone(pages)
	slices.Sort(pages)
	pages = slices.Compact(pages)

	var parts []string
	for i := 0; i < len(pages); {
		j := i
		for j+1 < len(pages) && pages[j+1] == pages[j]+1 {
			j++
		}
		switch {
		case j == i:
			parts = append(parts, strconv.Itoa(pages[i]))
		case j == i+1:
			parts = append(parts, strconv.Itoa(pages[i]), strconv.Itoa(pages[j]))
		default:
			parts = append(parts, strconv.Itoa(pages[i])+"-"+strconv.Itoa(pages[j]))
		}
		i = j + 1
	}
	return strings.Join(parts, ",")
}

// parseRect parses the four numbers x, y, width and height.
func parseRect(args []string) (geometry.Rect, error) {
	if len(args) != 4 {
		return geometry.Rect{}, fmt.Errorf("expected x y width height, got %d values", len(args))
	}
	var v [4]float64
	for i, s := range args {
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return geometry.Rect{}, fmt.Errorf("invalid coordinate %q", s)
		}
		v[i] = x
	}
	if v[2] < 0 || v[3] < 0 {
		return geometry.Rect{}, errors.New("width and height must not be negative")
	}
	return geometry.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

// pageValues collects repeated "page=value" flags.
type pageValues map[int]string

func (pv pageValues) String() string {
	var parts []string
	for _, n := range slices.Sorted(maps.Keys(pv)) {
		parts = append(parts, strconv.Itoa(n)+"="+pv[n])
	}
	return strings.Join(parts, " ")
}

func (pv pageValues) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("expected page=value, got %q", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil || n < 1 {
		return fmt.Errorf("invalid page number %q", key)
	}
	pv[n] = value
	return nil
}

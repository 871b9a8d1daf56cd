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

package template

import (
	"fmt"
	"slices"
)

// ShapeError describes a page whose stored sub-configuration did not match
// its declared type.  Such pages are repaired by installing an empty
// sub-configuration, so a ShapeError is informational only.
type ShapeError struct {
	Index  int
	Type   PageType
	Reason string
	Err    error
}

func (e *ShapeError) Error() string {
	msg := fmt.Sprintf("page %d (%s): %s", e.Index, e.Type, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}

// Normalize returns a repaired copy of c:
//   - page indices are set to the position of the page in the list,
//   - nil sub-configurations are replaced by empty defaults,
//   - negative desk counts and dangling floor plan references are cleared,
//   - floor plan suite indices are sorted, with duplicates and indices
//     outside the page list removed.
//
// All repairs are reported in the returned slice.
func Normalize(c *Config) (*Config, []*ShapeError) {
	res := c.Clone()
	n := len(res.Pages)

	var repairs []*ShapeError
	report := func(i int, t PageType, format string, args ...any) {
		repairs = append(repairs, &ShapeError{
			Index:  i,
			Type:   t,
			Reason: fmt.Sprintf(format, args...),
		})
	}

	for i := range res.Pages {
		p := &res.Pages[i]
		if p.Index != i {
			report(i, p.Type(), "stored page index %d", p.Index)
			p.Index = i
		}

		switch k := p.Kind.(type) {
		case *Suite:
			fillDefaults(k)
			if k.DeskCount != nil && *k.DeskCount < 0 {
				report(i, TypeSuite, "negative desk count %d", *k.DeskCount)
				k.DeskCount = nil
			}
			if o := k.OverviewPageIndex; o != nil && (*o < 0 || *o >= n) {
				report(i, TypeSuite, "floor plan page %d does not exist", *o)
				k.OverviewPageIndex = nil
			}
		case *Overview:
			fillDefaults(k)
			kept := slices.DeleteFunc(slices.Clone(k.SuitePageIndices), func(idx int) bool {
				return idx < 0 || idx >= n
			})
			if len(kept) != len(k.SuitePageIndices) {
				report(i, TypeOverview, "removed links to missing pages")
			}
			sorted := sortedUnique(kept)
			if !slices.Equal(sorted, kept) && len(kept) == len(k.SuitePageIndices) {
				report(i, TypeOverview, "suite indices not sorted or duplicated")
			}
			k.SuitePageIndices = sorted
		}
	}
	return res, repairs
}

// Validate checks the structural invariants of a configuration.
// If pageCount is non-negative, the configuration must describe exactly
// that many pages.
func (c *Config) Validate(pageCount int) error {
	if pageCount >= 0 && len(c.Pages) != pageCount {
		return fmt.Errorf("configuration has %d pages, template has %d",
			len(c.Pages), pageCount)
	}
	for i := range c.Pages {
		p := &c.Pages[i]
		if p.Index != i {
			return fmt.Errorf("page %d: stored index %d", i, p.Index)
		}
		switch p.Type() {
		case TypeSuite:
			s := p.Suite()
			if s == nil {
				return &ShapeError{Index: i, Type: TypeSuite, Reason: "missing suite configuration"}
			}
			if s.DeskCount != nil && *s.DeskCount < 0 {
				return fmt.Errorf("page %d: negative desk count %d", i, *s.DeskCount)
			}
			if o := s.OverviewPageIndex; o != nil && c.TypeOf(*o+1) != TypeOverview {
				return fmt.Errorf("page %d: page %d is not a floor plan", i, *o)
			}
		case TypeOverview:
			o := p.Overview()
			if o == nil {
				return &ShapeError{Index: i, Type: TypeOverview, Reason: "missing overview configuration"}
			}
			if !slices.IsSorted(o.SuitePageIndices) {
				return fmt.Errorf("page %d: suite indices not sorted", i)
			}
			for _, idx := range o.SuitePageIndices {
				if c.TypeOf(idx+1) != TypeSuite {
					return fmt.Errorf("page %d: linked page %d is not a suite", i, idx)
				}
			}
		case TypeConference:
			if p.Conference() == nil {
				return &ShapeError{Index: i, Type: TypeConference, Reason: "missing conference configuration"}
			}
		}
	}
	return nil
}

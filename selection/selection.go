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

// Package selection manages the set of template pages chosen for a
// proposal, including bulk selection of the suites on a floor.
package selection

import (
	"maps"
	"math"
	"slices"

	"seehuhn.de/go/proposal/template"
)

// Set is a set of 1-based page numbers.
// The zero value is not usable, use [New] to create a Set.
type Set map[int]struct{}

// New returns a set containing the given page numbers.
func New(pageNos ...int) Set {
	s := make(Set, len(pageNos))
	for _, n := range pageNos {
		s[n] = struct{}{}
	}
	return s
}

// All returns a set containing the pages 1, ..., pageCount.
func All(pageCount int) Set {
	s := make(Set, pageCount)
	for n := 1; n <= pageCount; n++ {
		s[n] = struct{}{}
	}
	return s
}

// Contains reports whether pageNo is in the set.
func (s Set) Contains(pageNo int) bool {
	_, ok := s[pageNo]
	return ok
}

// Add adds page numbers to the set.
func (s Set) Add(pageNos ...int) {
	for _, n := range pageNos {
		s[n] = struct{}{}
	}
}

// Toggle adds pageNo to the set if it is missing, and removes it otherwise.
func (s Set) Toggle(pageNo int) {
	if s.Contains(pageNo) {
		delete(s, pageNo)
	} else {
		s[pageNo] = struct{}{}
	}
}

// Clear removes all pages from the set.
func (s Set) Clear() {
	clear(s)
}

// Sorted returns the page numbers in increasing order.
// This is the page order used for exports.
func (s Set) Sorted() []int {
	return slices.Sorted(maps.Keys(s))
}

// Criteria restrict the suites chosen by [MatchingSuites].
type Criteria struct {
	// MinDesks is the minimum desk count.  Nil means 0.
	MinDesks *int

	// MaxDesks is the maximum desk count.  Nil means no limit.
	MaxDesks *int

	// ExcludeRented removes suites which are already rented.
	ExcludeRented bool
}

// DefaultCriteria returns the criteria used when the user has not entered
// any limits: all desk counts, rented suites excluded.
func DefaultCriteria() Criteria {
	return Criteria{ExcludeRented: true}
}

func (c Criteria) bounds() (lo, hi float64) {
	lo, hi = 0, math.Inf(1)
	if c.MinDesks != nil {
		lo = float64(*c.MinDesks)
	}
	if c.MaxDesks != nil {
		hi = float64(*c.MaxDesks)
	}
	return lo, hi
}

// Matches reports whether a suite page satisfies the criteria.
// Suites without a desk count are treated as having zero desks.
func (c Criteria) Matches(p *template.Page) bool {
	s := p.Suite()
	if s == nil {
		return false
	}
	lo, hi := c.bounds()
	desks := float64(s.Desks())
	if desks < lo || desks > hi {
		return false
	}
	return !(c.ExcludeRented && s.Rented)
}

// MatchingSuites returns the suite pages which satisfy the criteria,
// in the order given.
func MatchingSuites(suites []template.Page, c Criteria) []template.Page {
	var res []template.Page
	for i := range suites {
		if c.Matches(&suites[i]) {
			res = append(res, suites[i])
		}
	}
	return res
}

// Group is a floor plan page together with the suite pages linked to it.
type Group struct {
	Overview template.Page
	Suites   []template.Page
}

// OverviewGroups returns one group for every floor plan page which links
// at least one suite.  Links to pages which are not suites are skipped.
func OverviewGroups(cfg *template.Config) []Group {
	var res []Group
	for i := range cfg.Pages {
		p := &cfg.Pages[i]
		o := p.Overview()
		if o == nil || len(o.SuitePageIndices) == 0 {
			continue
		}
		g := Group{Overview: *p}
		for _, idx := range o.SuitePageIndices {
			if sp, ok := cfg.Page(idx); ok && sp.Type() == template.TypeSuite {
				g.Suites = append(g.Suites, *sp)
			}
		}
		res = append(res, g)
	}
	return res
}

// AutoSelect adds the floor plan page of g and all of its suites which
// match c to the selection.  Pages already in the selection stay selected.
// The page numbers which were added are returned in increasing order.
func AutoSelect(sel Set, g Group, c Criteria) []int {
	var added []int
	add := func(pageNo int) {
		if !sel.Contains(pageNo) {
			sel.Add(pageNo)
			added = append(added, pageNo)
		}
	}
	add(g.Overview.Index + 1)
	for _, p := range MatchingSuites(g.Suites, c) {
		add(p.Index + 1)
	}
	slices.Sort(added)
	return added
}

// PricedPages returns the price overrides which apply to a selection:
// entries for pages which are not selected, are not suites with a price
// region, or which have an empty value are dropped.
func PricedPages(sel Set, prices map[int]string, cfg *template.Config) map[int]string {
	res := make(map[int]string)
	for pageNo, price := range prices {
		if price == "" || !sel.Contains(pageNo) {
			continue
		}
		p, ok := cfg.PageByNumber(pageNo)
		if !ok {
			continue
		}
		if s := p.Suite(); s != nil && s.PriceRedaction != nil {
			res[pageNo] = price
		}
	}
	return res
}

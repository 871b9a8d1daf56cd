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

// Package highlight determines which suite locations are marked on a floor
// plan page.
package highlight

import (
	"seehuhn.de/go/proposal/geometry"
	"seehuhn.de/go/proposal/template"
)

// PageSet is a set of 1-based page numbers.
type PageSet interface {
	Contains(pageNo int) bool
}

// ForOverview returns the highlight rectangles to draw on the page with
// 1-based number overviewPageNo, given the set of selected pages.
//
// If the page is a floor plan, the suites linked to it are visited in the
// stored order of the floor plan; for each linked suite page which is
// selected, all of its highlight rectangles are appended in stored order.
// The result therefore does not depend on how the selection was built.
// For all other pages the result is empty.
func ForOverview(overviewPageNo int, selected PageSet, cfg *template.Config) []geometry.Rect {
	p, ok := cfg.PageByNumber(overviewPageNo)
	if !ok {
		return nil
	}
	o := p.Overview()
	if o == nil {
		return nil
	}

	var res []geometry.Rect
	for _, idx := range o.SuitePageIndices {
		if !selected.Contains(idx + 1) {
			continue
		}
		suitePage, ok := cfg.Page(idx)
		if !ok {
			continue
		}
		s := suitePage.Suite()
		if s == nil {
			continue
		}
		res = append(res, s.HighlightRects...)
	}
	return res
}

// Numbers is a PageSet given by a list of page numbers.
type Numbers []int

// Contains implements the [PageSet] interface.
func (n Numbers) Contains(pageNo int) bool {
	for _, m := range n {
		if m == pageNo {
			return true
		}
	}
	return false
}

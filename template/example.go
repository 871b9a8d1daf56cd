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

import "seehuhn.de/go/proposal/geometry"

// Example returns the configuration of the sample template, an eleven
// page brochure for a building with two floors of suites.  It is used to
// seed an empty store.
func Example() *Config {
	c := CreateBlank("default-template", "123 Main St", 11, DefaultDimensions)

	price := func(s string) *string { return &s }
	listRect := geometry.Rect{X: 52, Y: 152, Width: 440, Height: 32}
	foundingRect := geometry.Rect{X: 52, Y: 118, Width: 440, Height: 32}
	suite := func(overview, desks int, list string, founding *string, highlight geometry.Rect) *Suite {
		l, f := listRect, foundingRect
		return &Suite{
			OverviewPageIndex:   &overview,
			HighlightRects:      []geometry.Rect{highlight},
			PriceRedaction:      &PriceRedaction{ListPrice: &l, FoundingPrice: &f},
			DeskCount:           &desks,
			ListPrice:           price(list),
			FoundingMemberPrice: founding,
		}
	}

	pages := []struct {
		label string
		kind  Kind
	}{
		{"4th Floor Overview", &Overview{SuitePageIndices: []int{1, 2, 3, 4}}},
		{"Suite 404 - 8 desks", suite(0, 8, "$9,625", price("$8,750"), geometry.Rect{X: 75, Y: 332, Width: 47, Height: 85})},
		{"Suite 411 - 4 desks", suite(0, 4, "$4,500", nil, geometry.Rect{X: 412, Y: 383, Width: 38, Height: 47})},
		{"Suite 416 - 5 desks", suite(0, 5, "$4,000", nil, geometry.Rect{X: 338, Y: 389, Width: 56, Height: 41})},
		{"Suite 420 - 4 desks", suite(0, 4, "$2,750", nil, geometry.Rect{X: 142, Y: 467, Width: 40, Height: 44})},
		{"5th Floor Overview", &Overview{SuitePageIndices: []int{6, 7}}},
		{"Suite 506 - 4 desks", suite(5, 4, "$3,800", price("$3,450"), geometry.Rect{X: 322, Y: 306, Width: 73, Height: 39})},
		{"Suite 509 - 6 desks", suite(5, 6, "$8,100", nil, geometry.Rect{X: 393, Y: 439, Width: 77, Height: 49})},
		{"Conference Rooms", Other{}},
		{"Common Areas", Other{}},
		{"Membership Benefits", Other{}},
	}
	for i, p := range pages {
		c.Pages[i].Label = p.label
		c.Pages[i].Kind = p.kind
	}
	return c
}

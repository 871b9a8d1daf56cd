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

package compose

import (
	"strconv"
	"strings"

	"seehuhn.de/go/proposal/geometry"
	"seehuhn.de/go/proposal/internal/stdfont"
	"seehuhn.de/go/proposal/template"
)

// SummaryTitle is the heading of the summary page.
const SummaryTitle = "Proposal Summary"

// Layout of the summary page, in PDF units.
const (
	summaryTitleSize   = 22
	summaryTitleOffset = 80  // baseline of the title, below the top edge
	summaryFirstRow    = 130 // bottom of the first row, below the top edge
	summaryRowHeight   = 30
	summaryRowSpacing  = 10
	summaryMargin      = 50
)

// SummaryRow is one line of the summary page.
type SummaryRow struct {
	Name  string
	Price string
	Desks string
}

// SummaryRows returns the rows of the summary page for the given
// selection: one row per selected suite page, in selection order.
// The result is empty if no suite page is selected.
func SummaryRows(pages []int, prices map[int]string, cfg *template.Config) []SummaryRow {
	var rows []SummaryRow
	for _, pageNo := range pages {
		p, ok := cfg.PageByNumber(pageNo)
		if !ok {
			continue
		}
		s := p.Suite()
		if s == nil {
			continue
		}
		row := SummaryRow{
			Name:  DisplayName(p.Label),
			Price: SuitePrice(prices[pageNo], s),
		}
		if n := s.Desks(); n > 0 {
			row.Desks = "up to " + strconv.Itoa(n) + " desks"
		}
		rows = append(rows, row)
	}
	return rows
}

// DisplayName shortens a suite label to the part before the first " - ".
// If that part is empty, the full label is used.
func DisplayName(label string) string {
	name, _, _ := strings.Cut(label, " - ")
	if name == "" {
		return label
	}
	return name
}

// SuitePrice returns the price shown for a suite: the override if it is
// not empty, otherwise the founding member price, otherwise the list
// price.  If none of these is set, the result is empty.
func SuitePrice(override string, s *template.Suite) string {
	switch {
	case override != "":
		return override
	case s == nil:
		return ""
	case s.FoundingMemberPrice != nil && *s.FoundingMemberPrice != "":
		return *s.FoundingMemberPrice
	case s.ListPrice != nil:
		return *s.ListPrice
	}
	return ""
}

// SummaryPosition returns the index in the output at which the summary
// page is inserted: directly after the first floor plan page, or at the
// start if no floor plan page is selected.
func SummaryPosition(pages []int, cfg *template.Config) int {
	for i, pageNo := range pages {
		if cfg.TypeOf(pageNo) == template.TypeOverview {
			return i + 1
		}
	}
	return 0
}

// drawSummary draws the summary page.
func drawSummary(c *canvas, rows []SummaryRow, dims template.Dimensions, style template.Style, regular, bold *stdfont.Font) {
	width, height := dims.Width, dims.Height
	blue := fromRGB(style.BadgeBlue)
	gray := fromRGB(style.BadgeGray)

	c.FillRect(geometry.Rect{Width: width, Height: height}, fromRGB(style.BackgroundFill))
	c.CenteredText(bold, summaryTitleSize, 0, width, height-summaryTitleOffset, blue, stdfont.Encode(SummaryTitle))

	colWidth := (width - 2*summaryMargin) / 3
	y := height - summaryFirstRow
	for _, row := range rows {
		textY := y + (summaryRowHeight-fontSize)/2 + 1
		x := float64(summaryMargin)

		c.FillRect(geometry.Rect{X: x, Y: y, Width: colWidth, Height: summaryRowHeight}, blue)
		c.CenteredText(bold, fontSize, x, colWidth, textY, white, stdfont.Encode(row.Name))
		x += colWidth

		c.FillRect(geometry.Rect{X: x, Y: y, Width: colWidth, Height: summaryRowHeight}, gray)
		c.CenteredText(regular, fontSize, x, colWidth, textY, blue, stdfont.Encode(row.Price))
		x += colWidth

		c.FillRect(geometry.Rect{X: x, Y: y, Width: colWidth, Height: summaryRowHeight}, blue)
		c.CenteredText(bold, fontSize, x, colWidth, textY, white, stdfont.Encode(row.Desks))

		y -= summaryRowHeight + summaryRowSpacing
	}
}

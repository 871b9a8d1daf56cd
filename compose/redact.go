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
	"seehuhn.de/go/proposal/geometry"
	"seehuhn.de/go/proposal/internal/stdfont"
	"seehuhn.de/go/proposal/template"
)

const (
	fontSize    = 12
	badgeHeight = 24

	// highlightWidth is the line width of highlight outlines.
	highlightWidth = 2
)

// drawPriceBadge covers the printed prices of a suite page and draws a
// two-cell badge showing the replacement price.  The badge spans the width
// of the founding price region and is centred vertically between the
// bottom of the founding price region and the top of the list price
// region.
func drawPriceBadge(c *canvas, pr *template.PriceRedaction, price string, style template.Style, regular, bold *stdfont.Font) {
	list, found := *pr.ListPrice, *pr.FoundingPrice
	cream := fromRGB(style.BackgroundFill)

	c.FillRect(list, cream)
	c.FillRect(found, cream)

	badgeY := (found.Y+list.Top())/2 - badgeHeight/2
	half := found.Width / 2
	textY := badgeY + (badgeHeight-fontSize)/2 + 1

	left := geometry.Rect{X: found.X, Y: badgeY, Width: half, Height: badgeHeight}
	right := geometry.Rect{X: found.X + half, Y: badgeY, Width: half, Height: badgeHeight}
	if left.IsEmpty() {
		return
	}

	c.FillRect(left, fromRGB(style.BadgeBlue))
	c.CenteredText(bold, fontSize, left.X, half, textY, white, stdfont.Encode("Price"))

	c.FillRect(right, fromRGB(style.BadgeGray))
	c.CenteredText(regular, fontSize, right.X, half, textY, fromRGB(style.BadgeBlue), stdfont.Encode(price))
}

// drawConferenceText covers the text region of a conference page and
// draws the replacement text centred in the region.
func drawConferenceText(c *canvas, r geometry.Rect, text string, style template.Style, regular *stdfont.Font) {
	c.FillRect(r, fromRGB(style.BackgroundFill))
	if r.IsEmpty() {
		return
	}
	textY := r.Y + (r.Height-fontSize)/2 + 1
	c.CenteredText(regular, fontSize, r.X, r.Width, textY, darkText, stdfont.Encode(text))
}

// drawHighlights outlines the given rectangles in red.
func drawHighlights(c *canvas, rects []geometry.Rect) {
	for _, r := range rects {
		c.StrokeRect(r, red, highlightWidth)
	}
}

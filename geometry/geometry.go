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

// Package geometry converts rectangles between PDF page space and display
// space.
//
// PDF space has its origin in the bottom-left corner of the page, with y
// increasing upwards.  Display space (rendered images, drawing surfaces) has
// its origin in the top-left corner, with y increasing downwards.  All
// rectangles stored in template configurations use PDF space; conversion
// happens only where a rectangle crosses to or from a raster surface.
package geometry

import (
	"math"

	"seehuhn.de/go/geom/rect"
)

// MinDrawSize is the minimum width and height, in display units, of a
// rectangle entered by dragging.  Smaller drags are ignored.
const MinDrawSize = 3

// Rect is an axis-aligned rectangle given by its corner (X, Y) and its
// extent.  In PDF space (X, Y) is the bottom-left corner, in display space
// it is the top-left corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsEmpty reports whether the rectangle covers no area.
func (r Rect) IsEmpty() bool {
	return !(r.Width > 0 && r.Height > 0)
}

// Scale multiplies all four fields by s.
func (r Rect) Scale(s float64) Rect {
	return Rect{X: r.X * s, Y: r.Y * s, Width: r.Width * s, Height: r.Height * s}
}

// Top returns the largest y coordinate covered by a PDF-space rectangle.
func (r Rect) Top() float64 {
	return r.Y + r.Height
}

// Bounds converts a PDF-space rectangle into corner form.
func (r Rect) Bounds() rect.Rect {
	return rect.Rect{
		LLx: r.X,
		LLy: r.Y,
		URx: r.X + r.Width,
		URy: r.Y + r.Height,
	}
}

// FromBounds converts a rectangle in corner form to a Rect.
// The corners may be given in any order.
func FromBounds(b rect.Rect) Rect {
	return Rect{
		X:      math.Min(b.LLx, b.URx),
		Y:      math.Min(b.LLy, b.URy),
		Width:  math.Abs(b.URx - b.LLx),
		Height: math.Abs(b.URy - b.LLy),
	}
}

// Contains reports whether the point (x, y) lies within r, after growing r
// by pad units on every side.
func (r Rect) Contains(x, y, pad float64) bool {
	return x >= r.X-pad && x <= r.X+r.Width+pad &&
		y >= r.Y-pad && y <= r.Y+r.Height+pad
}

// PDFToDisplay converts a PDF-space rectangle on a page of the given height
// to display space.
func PDFToDisplay(r Rect, pageHeight float64) Rect {
	return Rect{
		X:      r.X,
		Y:      pageHeight - r.Y - r.Height,
		Width:  r.Width,
		Height: r.Height,
	}
}

// DisplayToPDF converts a display-space rectangle on a page of the given
// height to PDF space.  This is the inverse of [PDFToDisplay].
func DisplayToPDF(r Rect, pageHeight float64) Rect {
	return Rect{
		X:      r.X,
		Y:      pageHeight - r.Y - r.Height,
		Width:  r.Width,
		Height: r.Height,
	}
}

// DisplayToPDFRounded is like [DisplayToPDF], but rounds every field to a
// whole number of PDF units.
func DisplayToPDFRounded(r Rect, pageHeight float64) Rect {
	p := DisplayToPDF(r, pageHeight)
	return Rect{
		X:      math.Round(p.X),
		Y:      math.Round(p.Y),
		Width:  math.Round(p.Width),
		Height: math.Round(p.Height),
	}
}

// FromDrag returns the display-space rectangle spanned by a drag gesture
// from (x0, y0) to (x1, y1).
func FromDrag(x0, y0, x1, y1 float64) Rect {
	return Rect{
		X:      math.Min(x0, x1),
		Y:      math.Min(y0, y1),
		Width:  math.Abs(x1 - x0),
		Height: math.Abs(y1 - y0),
	}
}

// Drawable reports whether a display-space rectangle is large enough to be
// accepted as user input.
func Drawable(r Rect) bool {
	return r.Width > MinDrawSize && r.Height > MinDrawSize
}

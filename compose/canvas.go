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
	"bytes"
	"strconv"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/proposal/geometry"
	"seehuhn.de/go/proposal/internal/stdfont"
	"seehuhn.de/go/proposal/template"
)

func fromRGB(c template.RGB) color.Color {
	return color.DeviceRGB(c.Components())
}

var (
	white    = color.DeviceRGB(1, 1, 1)
	red      = color.DeviceRGB(1, 0, 0)
	darkText = color.DeviceRGB(0.1, 0.1, 0.1)
)

// canvas collects the content stream drawn on top of a page, or the
// content of a generated page.
type canvas struct {
	*graphics.Writer
	buf *bytes.Buffer

	// For overlays, fonts are given names starting with bases[f] which
	// avoid the font resources of the template page, given in taken.
	bases map[*stdfont.Font]string
	taken pdf.Dict
	named map[*stdfont.Font]bool
}

func newCanvas(rm *pdf.ResourceManager) *canvas {
	buf := &bytes.Buffer{}
	return &canvas{
		Writer: graphics.NewWriter(buf, rm),
		buf:    buf,
	}
}

func newOverlay(rm *pdf.ResourceManager, taken pdf.Dict, bases map[*stdfont.Font]string) *canvas {
	c := newCanvas(rm)
	c.bases = bases
	c.taken = taken
	c.named = make(map[*stdfont.Font]bool)
	return c
}

func (c *canvas) isEmpty() bool {
	return c.buf.Len() == 0
}

// FillRect paints r with a solid colour.  Empty rectangles are ignored.
func (c *canvas) FillRect(r geometry.Rect, col color.Color) {
	if r.IsEmpty() {
		return
	}
	c.SetFillColor(col)
	c.Rectangle(r.X, r.Y, r.Width, r.Height)
	c.Fill()
}

// StrokeRect draws the outline of r.  Empty rectangles are ignored.
func (c *canvas) StrokeRect(r geometry.Rect, col color.Color, lineWidth float64) {
	if r.IsEmpty() {
		return
	}
	c.SetStrokeColor(col)
	c.SetLineWidth(lineWidth)
	c.Rectangle(r.X, r.Y, r.Width, r.Height)
	c.Stroke()
}

// Text shows s with its baseline starting at (x, y).
func (c *canvas) Text(f *stdfont.Font, size float64, x, y float64, col color.Color, s pdf.String) {
	if len(s) == 0 {
		return
	}
	if base, ok := c.bases[f]; ok && !c.named[f] {
		c.named[f] = true
		err := c.SetFontNameInternal(f, freeName(c.taken, base))
		if err != nil && c.Err == nil {
			c.Err = err
		}
	}

	c.SetFillColor(col)
	c.TextBegin()
	c.TextSetFont(f, size)
	c.TextFirstLine(x, y)
	c.TextShowRaw(s)
	c.TextEnd()
}

// CenteredText shows s horizontally centred in the column starting at x
// with the given width.
func (c *canvas) CenteredText(f *stdfont.Font, size float64, x, width, y float64, col color.Color, s pdf.String) {
	w := f.Width(s, size)
	c.Text(f, size, x+(width-w)/2, y, col, s)
}

// freeName returns a resource name starting with base which is not yet
// used in dict.
func freeName(dict pdf.Dict, base string) pdf.Name {
	name := pdf.Name(base)
	for i := 2; ; i++ {
		if _, used := dict[name]; !used {
			return name
		}
		name = pdf.Name(base + "." + strconv.Itoa(i))
	}
}

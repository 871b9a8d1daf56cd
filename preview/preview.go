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

// Package preview renders the pages of a proposal to raster images, with
// the highlight outlines drawn on floor plan pages.
//
// The images are schematic.  They show the layout of a page, which is
// enough to check the position of highlights, but they do not attempt to
// reproduce the page faithfully.
package preview

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"log"

	"golang.org/x/image/vector"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"

	"seehuhn.de/go/proposal/compose"
	"seehuhn.de/go/proposal/geometry"
	"seehuhn.de/go/proposal/highlight"
	"seehuhn.de/go/proposal/selection"
	"seehuhn.de/go/proposal/template"
)

// DefaultScale is the ratio between image pixels and PDF units used if
// no scale is given.
const DefaultScale = 1.5

// outlineWidth is the width of highlight outlines, in PDF units.
const outlineWidth = 2

var outlineColor = color.RGBA{R: 255, A: 255}

// Options control the rendering of previews.
type Options struct {
	// Scale is the number of pixels per PDF unit.  If this is zero,
	// [DefaultScale] is used.
	Scale float64

	Logger *log.Logger
}

func (opt *Options) scale() float64 {
	if opt == nil || opt.Scale <= 0 {
		return DefaultScale
	}
	return opt.Scale
}

func (opt *Options) logf(format string, args ...any) {
	if opt != nil && opt.Logger != nil {
		opt.Logger.Printf(format, args...)
	}
}

// Page is the preview of one template page.
type Page struct {
	PageNo int
	Image  *image.RGBA

	// Outlines gives the highlight outlines drawn on the image, in
	// display coordinates.
	Outlines []geometry.Rect
}

// Result is the preview of a proposal.
type Result struct {
	Pages   []*Page
	Summary []compose.SummaryRow
}

// Render renders the selected pages of a proposal.
//
// Pages are rendered in ascending order, independent of the order in
// the request.  Price overrides only affect the summary rows.
func Render(ctx context.Context, tmpl []byte, req *compose.Request, cfg *template.Config, opt *Options) (*Result, error) {
	if req == nil || len(req.Pages) == 0 {
		return nil, compose.ErrNoPages
	}

	r, err := pdf.NewReader(bytes.NewReader(tmpl), nil)
	if err != nil {
		return nil, &compose.TemplateLoadError{Err: err}
	}
	defer r.Close()

	numPages, err := pagetree.NumPages(r)
	if err != nil {
		return nil, &compose.TemplateLoadError{Err: err}
	}
	if cfg != nil && len(cfg.Pages) != numPages {
		opt.logf("template has %d pages, but the configuration describes %d",
			numPages, len(cfg.Pages))
	}

	pageNos := selection.New(req.Pages...).Sorted()
	for _, pageNo := range pageNos {
		if pageNo < 1 || pageNo > numPages {
			return nil, &compose.PageRangeError{PageNo: pageNo, NumPages: numPages}
		}
	}

	scale := opt.scale()
	selected := highlight.Numbers(pageNos)

	res := &Result{
		Summary: Summary(req, cfg),
	}
	for _, pageNo := range pageNos {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pageDict, box, err := pageAt(r, pageNo)
		if err != nil {
			return nil, &compose.TemplateLoadError{Err: fmt.Errorf("page %d: %w", pageNo, err)}
		}
		if box == nil || box.IsZero() {
			d := template.DefaultDimensions
			if cfg != nil {
				d = cfg.SummaryDimensions()
			}
			box = &pdf.Rectangle{URx: d.Width, URy: d.Height}
		}

		img, err := RenderPage(r, pageDict, box, scale)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNo, err)
		}

		rects := highlight.ForOverview(pageNo, selected, cfg)
		outlines := Outlines(rects, box, scale)
		for _, o := range outlines {
			drawOutline(img, o, outlineWidth*scale)
		}

		res.Pages = append(res.Pages, &Page{
			PageNo:   pageNo,
			Image:    img,
			Outlines: outlines,
		})
	}
	return res, nil
}

// Summary returns the rows of the summary page for the proposal, or nil
// if no suite page is selected.  Rows are in ascending page order.
func Summary(req *compose.Request, cfg *template.Config) []compose.SummaryRow {
	pageNos := selection.New(req.Pages...).Sorted()
	return compose.SummaryRows(pageNos, req.Prices, cfg)
}

// Outlines converts highlight rectangles on a page with the given media
// box to display coordinates at the given scale.
func Outlines(rects []geometry.Rect, box *pdf.Rectangle, scale float64) []geometry.Rect {
	if len(rects) == 0 {
		return nil
	}
	res := make([]geometry.Rect, 0, len(rects))
	for _, r := range rects {
		r.X -= box.LLx
		r.Y -= box.LLy
		d := geometry.PDFToDisplay(r, box.URy-box.LLy)
		res = append(res, d.Scale(scale))
	}
	return res
}

// drawOutline strokes the boundary of r, in display coordinates, onto img.
// The line is centred on the boundary.
func drawOutline(img *image.RGBA, r geometry.Rect, width float64) {
	b := img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())

	h := width / 2
	x0, y0 := float32(r.X-h), float32(r.Y-h)
	x1, y1 := float32(r.X+r.Width+h), float32(r.Y+r.Height+h)
	z.MoveTo(x0, y0)
	z.LineTo(x1, y0)
	z.LineTo(x1, y1)
	z.LineTo(x0, y1)
	z.ClosePath()

	if r.Width > width && r.Height > width {
		// inner boundary, opposite orientation
		w := float32(width)
		z.MoveTo(x0+w, y0+w)
		z.LineTo(x0+w, y1-w)
		z.LineTo(x1-w, y1-w)
		z.LineTo(x1-w, y0+w)
		z.ClosePath()
	}

	z.Draw(img, b, image.NewUniform(outlineColor), b.Min)
}

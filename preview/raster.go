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

package preview

import (
	"errors"
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/pagetree"
	"seehuhn.de/go/pdf/reader"
)

// maxFormDepth limits the nesting of form XObjects.
const maxFormDepth = 8

// curveSteps is the number of line segments used for a Bézier curve.
const curveSteps = 8

var (
	paper      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	imageColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

// RenderPage draws a schematic picture of a page.  Paths are filled and
// stroked in their colours, text is shown as bars along the baseline, and
// images are shown as gray boxes.  Clipping paths and shadings are
// ignored.
//
// The image covers the given box, at scale pixels per PDF unit.
func RenderPage(r pdf.Getter, pageDict pdf.Dict, box *pdf.Rectangle, scale float64) (*image.RGBA, error) {
	w := max(int(math.Ceil(box.Dx()*scale)), 1)
	h := max(int(math.Ceil(box.Dy()*scale)), 1)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(paper), image.Point{}, xdraw.Src)

	// user space to pixel coordinates, with y pointing down
	toPixel := matrix.Matrix{scale, 0, 0, -scale, -box.LLx * scale, box.URy * scale}

	p := newPainter(r, img, toPixel, 0)
	err := p.r.ParsePage(pageDict, matrix.Identity)
	if err != nil {
		return nil, err
	}
	return img, nil
}

type point struct {
	x, y float64
}

type subpath struct {
	points []point
	closed bool
}

// painter interprets one content stream.  It keeps track of the current
// transformation matrix itself, and uses the reader for everything else.
type painter struct {
	r     *reader.Reader
	img   *image.RGBA
	z     *vector.Rasterizer
	depth int

	ctm   matrix.Matrix
	stack []matrix.Matrix

	path []subpath

	// textStart is the device position of the first glyph shown by the
	// current text operator.
	textStart *point
}

func newPainter(r pdf.Getter, img *image.RGBA, ctm matrix.Matrix, depth int) *painter {
	b := img.Bounds()
	p := &painter{
		r:     reader.New(r, nil),
		img:   img,
		z:     vector.NewRasterizer(b.Dx(), b.Dy()),
		depth: depth,
		ctm:   ctm,
	}
	p.r.Text = p.text
	p.r.UnknownOp = p.unknownOp
	p.r.EveryOp = p.everyOp
	return p
}

func (p *painter) everyOp(op string, args []pdf.Object) error {
	switch op {
	case "q":
		p.stack = append(p.stack, p.ctm)
	case "Q":
		if n := len(p.stack); n > 0 {
			p.ctm = p.stack[n-1]
			p.stack = p.stack[:n-1]
		}
	case "cm":
		if m, ok := numbers(args, 6); ok {
			p.ctm = matrix.Matrix(m).Mul(p.ctm)
		}
	case "Tj", "TJ", "'", `"`:
		p.textEnd()
	}
	return nil
}

func (p *painter) unknownOp(op string, args []pdf.Object) error {
	switch op {
	case "m":
		if a, ok := numbers(args, 2); ok {
			p.path = append(p.path, subpath{points: []point{p.device(a[0], a[1])}})
		}
	case "l":
		if a, ok := numbers(args, 2); ok {
			p.lineTo(p.device(a[0], a[1]))
		}
	case "c":
		if a, ok := numbers(args, 6); ok {
			p.curveTo(p.device(a[0], a[1]), p.device(a[2], a[3]), p.device(a[4], a[5]))
		}
	case "v":
		if a, ok := numbers(args, 4); ok {
			if cur, ok := p.current(); ok {
				p.curveTo(cur, p.device(a[0], a[1]), p.device(a[2], a[3]))
			}
		}
	case "y":
		if a, ok := numbers(args, 4); ok {
			end := p.device(a[2], a[3])
			p.curveTo(p.device(a[0], a[1]), end, end)
		}
	case "h":
		p.closePath()
	case "re":
		if a, ok := numbers(args, 4); ok {
			x, y, w, h := a[0], a[1], a[2], a[3]
			p.path = append(p.path, subpath{
				points: []point{
					p.device(x, y), p.device(x+w, y),
					p.device(x+w, y+h), p.device(x, y+h),
				},
				closed: true,
			})
		}
	case "f", "F", "f*":
		p.fill()
		p.path = nil
	case "S":
		p.stroke()
		p.path = nil
	case "s":
		p.closePath()
		p.stroke()
		p.path = nil
	case "B", "B*":
		p.fill()
		p.stroke()
		p.path = nil
	case "b", "b*":
		p.closePath()
		p.fill()
		p.stroke()
		p.path = nil
	case "n":
		p.path = nil
	case "Do":
		if len(args) == 1 {
			if name, ok := args[0].(pdf.Name); ok {
				return p.xObject(name)
			}
		}
	}
	return nil
}

func (p *painter) device(x, y float64) point {
	x, y = p.ctm.Apply(x, y)
	return point{x, y}
}

func (p *painter) current() (point, bool) {
	if len(p.path) == 0 {
		return point{}, false
	}
	sp := p.path[len(p.path)-1].points
	return sp[len(sp)-1], true
}

func (p *painter) lineTo(q point) {
	if len(p.path) == 0 {
		p.path = append(p.path, subpath{})
	}
	last := &p.path[len(p.path)-1]
	last.points = append(last.points, q)
}

func (p *painter) curveTo(c1, c2, end point) {
	start, ok := p.current()
	if !ok {
		return
	}
	for i := 1; i <= curveSteps; i++ {
		t := float64(i) / curveSteps
		s := 1 - t
		a, b, c, d := s*s*s, 3*s*s*t, 3*s*t*t, t*t*t
		p.lineTo(point{
			a*start.x + b*c1.x + c*c2.x + d*end.x,
			a*start.y + b*c1.y + c*c2.y + d*end.y,
		})
	}
}

func (p *painter) closePath() {
	if len(p.path) > 0 {
		p.path[len(p.path)-1].closed = true
	}
}

func (p *painter) fill() {
	p.resetRasterizer()
	for _, sp := range p.path {
		if len(sp.points) < 3 {
			continue
		}
		p.polygon(sp.points...)
	}
	p.draw(toRGBA(p.r.FillColor))
}

// stroke draws each segment of the current path as a quadrilateral.
// Joins and caps are not drawn.
func (p *painter) stroke() {
	width := max(p.r.LineWidth*p.unitLength(), 1)

	p.resetRasterizer()
	for _, sp := range p.path {
		pts := sp.points
		if sp.closed && len(pts) > 1 {
			pts = append(pts[:len(pts):len(pts)], pts[0])
		}
		for i := 1; i < len(pts); i++ {
			p.segment(pts[i-1], pts[i], width)
		}
	}
	p.draw(toRGBA(p.r.StrokeColor))
}

func (p *painter) segment(a, b point, width float64) {
	dx, dy := b.x-a.x, b.y-a.y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	p.polygon(
		point{a.x + nx, a.y + ny},
		point{b.x + nx, b.y + ny},
		point{b.x - nx, b.y - ny},
		point{a.x - nx, a.y - ny},
	)
}

// unitLength returns the approximate length of a unit vector in user
// space, after transformation to pixels.
func (p *painter) unitLength() float64 {
	m := p.ctm
	return math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
}

func (p *painter) text(string) error {
	if p.textStart == nil {
		x, y := p.textPosition()
		p.textStart = &point{x, y}
	}
	return nil
}

// textEnd draws a bar from the first glyph of the current text operator
// to the current text position.  The bar is 60% of the font size high.
func (p *painter) textEnd() {
	start := p.textStart
	if start == nil {
		return
	}
	p.textStart = nil

	x, y := p.textPosition()
	trm := p.textRenderingMatrix()
	hx, hy := 0.6*trm[2], 0.6*trm[3]

	p.resetRasterizer()
	p.polygon(
		*start,
		point{x, y},
		point{x + hx, y + hy},
		point{start.x + hx, start.y + hy},
	)
	c := toRGBA(p.r.FillColor)
	c.R = uint8((int(c.R) + 255) / 2)
	c.G = uint8((int(c.G) + 255) / 2)
	c.B = uint8((int(c.B) + 255) / 2)
	p.draw(c)
}

// textRenderingMatrix maps text space to pixel coordinates.
func (p *painter) textRenderingMatrix() matrix.Matrix {
	s := p.r.State
	M := matrix.Matrix{s.TextFontSize * s.TextHorizontalScaling, 0, 0, s.TextFontSize, 0, s.TextRise}
	return M.Mul(s.TextMatrix).Mul(p.ctm)
}

func (p *painter) textPosition() (float64, float64) {
	M := p.textRenderingMatrix()
	return M[4], M[5]
}

func (p *painter) xObject(name pdf.Name) error {
	if p.r.Resources == nil {
		return nil
	}
	stm, err := pdf.GetStream(p.r.R, p.r.Resources.XObject[name])
	if err != nil || stm == nil {
		return err
	}
	subtype, _ := pdf.GetName(p.r.R, stm.Dict["Subtype"])
	switch subtype {
	case "Image":
		p.resetRasterizer()
		p.polygon(p.device(0, 0), p.device(1, 0), p.device(1, 1), p.device(0, 1))
		p.draw(imageColor)
	case "Form":
		if p.depth >= maxFormDepth {
			return nil
		}
		return p.form(stm)
	}
	return nil
}

func (p *painter) form(stm *pdf.Stream) error {
	r := p.r.R

	ctm := p.ctm
	if m, err := pdf.GetArray(r, stm.Dict["Matrix"]); err == nil && len(m) == 6 {
		var M matrix.Matrix
		for i, x := range m {
			v, err := pdf.GetNumber(r, x)
			if err != nil {
				return err
			}
			M[i] = float64(v)
		}
		ctm = M.Mul(ctm)
	}

	sub := newPainter(r, p.img, ctm, p.depth+1)
	sub.r.Reset()
	sub.r.State.FillColor = p.r.FillColor
	sub.r.State.StrokeColor = p.r.StrokeColor
	resources, err := pdf.GetDict(r, stm.Dict["Resources"])
	if err != nil {
		return err
	}
	err = pdf.DecodeDict(r, sub.r.Resources, resources)
	if err != nil {
		return err
	}

	body, err := pdf.DecodeStream(r, stm, 0)
	if err != nil {
		return err
	}
	defer body.Close()
	return sub.r.ParseContentStream(body)
}

func (p *painter) resetRasterizer() {
	b := p.img.Bounds()
	p.z.Reset(b.Dx(), b.Dy())
}

func (p *painter) polygon(pts ...point) {
	p.z.MoveTo(float32(pts[0].x), float32(pts[0].y))
	for _, q := range pts[1:] {
		p.z.LineTo(float32(q.x), float32(q.y))
	}
	p.z.ClosePath()
}

func (p *painter) draw(c color.RGBA) {
	b := p.img.Bounds()
	p.z.Draw(p.img, b, image.NewUniform(c), b.Min)
}

// numbers returns the first n numeric arguments.
func numbers(args []pdf.Object, n int) ([]float64, bool) {
	if len(args) < n {
		return nil, false
	}
	res := make([]float64, n)
	for i := range res {
		switch x := args[i].(type) {
		case pdf.Integer:
			res[i] = float64(x)
		case pdf.Real:
			res[i] = float64(x)
		case pdf.Number:
			res[i] = float64(x)
		default:
			return nil, false
		}
	}
	return res, true
}

// toRGBA converts a PDF colour to RGB.  Colours in other colour spaces are
// approximated from the number of colour components.
func toRGBA(c pdfcolor.Color) color.RGBA {
	if c == nil {
		return color.RGBA{A: 255}
	}
	values, pat, _ := pdfcolor.Operator(c)
	if pat != nil {
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
	clamp := func(x float64) uint8 {
		return uint8(math.Round(255 * min(max(x, 0), 1)))
	}
	switch len(values) {
	case 1:
		g := clamp(values[0])
		return color.RGBA{R: g, G: g, B: g, A: 255}
	case 3:
		return color.RGBA{R: clamp(values[0]), G: clamp(values[1]), B: clamp(values[2]), A: 255}
	case 4:
		k := 1 - values[3]
		return color.RGBA{
			R: clamp((1 - values[0]) * k),
			G: clamp((1 - values[1]) * k),
			B: clamp((1 - values[2]) * k),
			A: 255,
		}
	default:
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
}

var errNoPage = errors.New("page not found")

// pageAt returns the page dictionary and media box of the page with the
// given 1-based number.
func pageAt(r pdf.Getter, pageNo int) (pdf.Dict, *pdf.Rectangle, error) {
	_, pageDict, err := pagetree.GetPage(r, pageNo-1)
	if err != nil {
		return nil, nil, err
	}
	if pageDict == nil {
		return nil, nil, errNoPage
	}
	box, err := pdf.GetRectangle(r, pageDict["MediaBox"])
	if err != nil {
		return nil, nil, err
	}
	return pageDict, box, nil
}

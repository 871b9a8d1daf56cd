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

// Package extract finds the text printed inside a region of a template
// page.  This is used to pre-fill prices and replacement texts when a
// redaction region is configured.
package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"
	"seehuhn.de/go/pdf/reader"

	"seehuhn.de/go/proposal/geometry"
)

// Padding is the distance by which a region is enlarged on all sides when
// looking for text.
const Padding = 5

// A Run is a piece of text shown by a single text operator.
// X and Y give the start of the baseline, in PDF units.
type Run struct {
	X, Y float64
	Text string
}

// Runs returns the text runs on the page with the given 0-based index.
func Runs(r pdf.Getter, pageIndex int) ([]Run, error) {
	_, pageDict, err := pagetree.GetPage(r, pageIndex)
	if err != nil {
		return nil, err
	}

	c := &collector{}
	contents := reader.New(r, nil)
	contents.EveryOp = func(op string, _ []pdf.Object) error {
		if runBoundary[op] {
			c.boundary()
		}
		return nil
	}
	contents.Text = func(text string) error {
		x, y := contents.GetTextPositionDevice()
		c.glyph(x, y, text)
		return nil
	}

	err = contents.ParsePage(pageDict, matrix.Identity)
	if err != nil {
		return nil, err
	}
	return c.runs, nil
}

// TextInRect returns the text of all runs which start inside the padded
// region, joined by spaces.  No space is inserted where one of the
// adjacent runs already has white space at the join.  The result is empty
// if no text is found.
func TextInRect(r pdf.Getter, pageIndex int, rect geometry.Rect) (string, error) {
	runs, err := Runs(r, pageIndex)
	if err != nil {
		return "", err
	}
	return TextIn(runs, rect), nil
}

// PriceInRect returns the first run inside the padded region which
// contains a dollar sign.  The result is empty if there is no such run.
func PriceInRect(r pdf.Getter, pageIndex int, rect geometry.Rect) (string, error) {
	runs, err := Runs(r, pageIndex)
	if err != nil {
		return "", err
	}
	return PriceIn(runs, rect), nil
}

// TextIn is like [TextInRect], but operates on previously extracted runs.
func TextIn(runs []Run, rect geometry.Rect) string {
	var b strings.Builder
	var last rune
	for _, run := range runs {
		if run.Text == "" || !rect.Contains(run.X, run.Y, Padding) {
			continue
		}
		first, _ := utf8.DecodeRuneInString(run.Text)
		if b.Len() > 0 && !unicode.IsSpace(last) && !unicode.IsSpace(first) {
			b.WriteByte(' ')
		}
		b.WriteString(run.Text)
		last, _ = utf8.DecodeLastRuneInString(run.Text)
	}
	return strings.TrimSpace(b.String())
}

// PriceIn is like [PriceInRect], but operates on previously extracted runs.
func PriceIn(runs []Run, rect geometry.Rect) string {
	for _, run := range runs {
		if rect.Contains(run.X, run.Y, Padding) && strings.Contains(run.Text, "$") {
			return strings.TrimSpace(run.Text)
		}
	}
	return ""
}

// runBoundary lists the content stream operators which end the current
// run of text.
var runBoundary = map[string]bool{
	"BT": true, "ET": true,
	"Tj": true, "TJ": true, "'": true, `"`: true,
	"Td": true, "TD": true, "Tm": true, "T*": true,
}

type collector struct {
	runs []Run
	open bool
}

func (c *collector) boundary() {
	c.open = false
}

func (c *collector) glyph(x, y float64, text string) {
	if !c.open {
		c.runs = append(c.runs, Run{X: x, Y: y})
		c.open = true
	}
	c.runs[len(c.runs)-1].Text += text
}

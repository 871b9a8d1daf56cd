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
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/pdf"

	"seehuhn.de/go/proposal/geometry"
	"seehuhn.de/go/proposal/internal/testpdf"
	"seehuhn.de/go/proposal/template"
)

// drawOp is a simplified content stream operator, for comparisons.
type drawOp struct {
	Name string
	Args []float64
	Font pdf.Name
	Text string
}

func simplify(ops []testpdf.Operator) []drawOp {
	res := make([]drawOp, 0, len(ops))
	for _, op := range ops {
		d := drawOp{Name: op.Name, Args: op.Numbers()}
		for _, arg := range op.Args {
			switch arg := arg.(type) {
			case pdf.Name:
				d.Font = arg
			case pdf.String:
				d.Text = string(arg)
			}
		}
		res = append(res, d)
	}
	return res
}

// overlayOps returns the operators drawn after the isolated template
// content of a page.
func overlayOps(t *testing.T, info *testpdf.Info) []drawOp {
	t.Helper()
	for i, op := range info.Operators {
		if op.Name == "Q" {
			return simplify(info.Operators[i+1:])
		}
	}
	t.Fatal("page has no overlay")
	return nil
}

var approx = cmpopts.EquateApprox(0, 1e-6)

func rgb(c template.RGB) []float64 {
	r, g, b := c.Components()
	return []float64{r, g, b}
}

func TestPriceBadgeOperators(t *testing.T) {
	req := &Request{Pages: []int{2}, Prices: map[int]string{2: "$9,000"}}
	out, err := Export(context.Background(), sampleTemplate(t, 11), req, template.Example(), nil)
	if err != nil {
		t.Fatal(err)
	}
	pages := inspect(t, out)
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}

	style := template.DefaultStyle()
	cream := rgb(style.BackgroundFill)
	blue := rgb(style.BadgeBlue)
	gray := rgb(style.BadgeGray)

	// The list price region is {52 152 440 32}, the founding price region
	// is {52 118 440 32}.  The badge is at y = (118+184)/2 - 12 = 139.
	// "Price" is 29.352 wide in 12pt Helvetica-Bold, "$9,000" is 36.696
	// wide in 12pt Helvetica.
	want := []drawOp{
		{Name: "rg", Args: cream},
		{Name: "re", Args: []float64{52, 152, 440, 32}},
		{Name: "f"},
		{Name: "re", Args: []float64{52, 118, 440, 32}},
		{Name: "f"},

		{Name: "rg", Args: blue},
		{Name: "re", Args: []float64{52, 139, 220, 24}},
		{Name: "f"},
		{Name: "rg", Args: []float64{1, 1, 1}},
		{Name: "BT"},
		{Name: "Tf", Args: []float64{12}, Font: "PropHelvB"},
		{Name: "Td", Args: []float64{147.324, 146}},
		{Name: "Tj", Text: "Price"},
		{Name: "ET"},

		{Name: "rg", Args: gray},
		{Name: "re", Args: []float64{272, 139, 220, 24}},
		{Name: "f"},
		{Name: "rg", Args: blue},
		{Name: "BT"},
		{Name: "Tf", Args: []float64{12}, Font: "PropHelv"},
		{Name: "Td", Args: []float64{363.652, 146}},
		{Name: "Tj", Text: "$9,000"},
		{Name: "ET"},
	}
	if d := cmp.Diff(want, overlayOps(t, pages[1]), approx); d != "" {
		t.Errorf("badge (-want +got):\n%s", d)
	}
}

func TestConferenceTextOperators(t *testing.T) {
	region := geometry.Rect{X: 100, Y: 200, Width: 300, Height: 40}
	cfg := template.CreateBlank("x", "test", 1, template.DefaultDimensions)
	cfg.Pages[0].Kind = &template.Conference{TextRedaction: &region}

	req := &Request{Pages: []int{1}, Texts: map[int]string{1: "Two rooms"}}
	out, err := Export(context.Background(), sampleTemplate(t, 1), req, cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	pages := inspect(t, out)

	// "Two rooms" is 59.34 wide in 12pt Helvetica
	want := []drawOp{
		{Name: "rg", Args: rgb(template.DefaultStyle().BackgroundFill)},
		{Name: "re", Args: []float64{100, 200, 300, 40}},
		{Name: "f"},
		{Name: "rg", Args: []float64{0.1, 0.1, 0.1}},
		{Name: "BT"},
		{Name: "Tf", Args: []float64{12}, Font: "PropHelv"},
		{Name: "Td", Args: []float64{220.33, 215}},
		{Name: "Tj", Text: "Two rooms"},
		{Name: "ET"},
	}
	if d := cmp.Diff(want, overlayOps(t, pages[0]), approx); d != "" {
		t.Errorf("conference text (-want +got):\n%s", d)
	}
}

func TestHighlightOperators(t *testing.T) {
	req := &Request{Pages: []int{1, 2}}
	out, err := Export(context.Background(), sampleTemplate(t, 11), req, template.Example(), nil)
	if err != nil {
		t.Fatal(err)
	}
	pages := inspect(t, out)

	want := []drawOp{
		{Name: "RG", Args: []float64{1, 0, 0}},
		{Name: "w", Args: []float64{2}},
		{Name: "re", Args: []float64{75, 332, 47, 85}},
		{Name: "S"},
	}
	if d := cmp.Diff(want, overlayOps(t, pages[0]), approx); d != "" {
		t.Errorf("highlight (-want +got):\n%s", d)
	}
}

func TestCustomStyle(t *testing.T) {
	region := geometry.Rect{X: 100, Y: 200, Width: 300, Height: 40}
	text := "Boardroom"
	custom := template.Style{
		BackgroundFill: template.RGB{R: 255},
		BadgeBlue:      template.RGB{B: 255},
		BadgeGray:      template.RGB{G: 255},
	}

	cases := []struct {
		name  string
		style template.Style
		want  template.RGB
	}{
		{"custom", custom, custom.BackgroundFill},
		{"unset", template.Style{}, template.DefaultStyle().BackgroundFill},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := template.CreateBlank("x", "test", 1, template.DefaultDimensions)
			cfg.Pages[0].Kind = &template.Conference{TextRedaction: &region, DefaultText: &text}
			cfg.Style = tc.style

			out, err := Export(context.Background(), sampleTemplate(t, 1), &Request{Pages: []int{1}}, cfg, nil)
			if err != nil {
				t.Fatal(err)
			}
			ops := overlayOps(t, inspect(t, out)[0])
			if len(ops) == 0 || ops[0].Name != "rg" {
				t.Fatalf("overlay does not start with a fill colour: %v", ops)
			}
			if d := cmp.Diff(rgb(tc.want), ops[0].Args, approx); d != "" {
				t.Errorf("background fill (-want +got):\n%s", d)
			}
		})
	}
}

func TestSummaryRowOperators(t *testing.T) {
	req := &Request{Pages: []int{2, 3}}
	out, err := Export(context.Background(), sampleTemplate(t, 11), req, template.Example(), nil)
	if err != nil {
		t.Fatal(err)
	}
	pages := inspect(t, out)

	var rects [][]float64
	for _, op := range simplify(pages[0].Find("re")) {
		rects = append(rects, op.Args)
	}
	// background, then three cells per row with a fixed row pitch
	want := [][]float64{
		{0, 0, 540, 779},
		{50, 649, 440.0 / 3, 30},
		{50 + 440.0/3, 649, 440.0 / 3, 30},
		{50 + 880.0/3, 649, 440.0 / 3, 30},
		{50, 609, 440.0 / 3, 30},
		{50 + 440.0/3, 609, 440.0 / 3, 30},
		{50 + 880.0/3, 609, 440.0 / 3, 30},
	}
	if d := cmp.Diff(want, rects, approx); d != "" {
		t.Errorf("summary cells (-want +got):\n%s", d)
	}
	if d := cmp.Diff(map[pdf.Name]pdf.Name{"F1": "Helvetica-Bold", "F2": "Helvetica"}, pages[0].FontNames); d != "" {
		t.Errorf("summary fonts (-want +got):\n%s", d)
	}
}

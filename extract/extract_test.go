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

package extract

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/pdf"

	"seehuhn.de/go/proposal/geometry"
	"seehuhn.de/go/proposal/internal/testpdf"
)

func TestCollector(t *testing.T) {
	c := &collector{}
	c.boundary()
	c.glyph(10, 20, "$")
	c.glyph(16, 20, "9")
	c.glyph(22, 20, "5")
	c.boundary()
	c.boundary()
	c.glyph(50, 20, "/mo")
	c.boundary()

	want := []Run{
		{X: 10, Y: 20, Text: "$95"},
		{X: 50, Y: 20, Text: "/mo"},
	}
	if d := cmp.Diff(want, c.runs); d != "" {
		t.Errorf("runs (-want +got):\n%s", d)
	}
}

var sampleRuns = []Run{
	{X: 60, Y: 160, Text: "List price"},
	{X: 300, Y: 160, Text: " $9,625 "},
	{X: 60, Y: 125, Text: "Founding member"},
	{X: 300, Y: 125, Text: "$8,750"},
	{X: 60, Y: 600, Text: "Suite 404"},
}

func TestTextIn(t *testing.T) {
	cases := []struct {
		name string
		rect geometry.Rect
		want string
	}{
		{"list row", geometry.Rect{X: 52, Y: 152, Width: 440, Height: 32}, "List price $9,625"},
		{"both rows", geometry.Rect{X: 52, Y: 118, Width: 440, Height: 66}, "List price $9,625 Founding member $8,750"},
		{"padding", geometry.Rect{X: 65, Y: 605, Width: 100, Height: 20}, "Suite 404"},
		{"outside padding", geometry.Rect{X: 66, Y: 605, Width: 100, Height: 20}, ""},
		{"empty", geometry.Rect{X: 0, Y: 0, Width: 10, Height: 10}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TextIn(sampleRuns, tc.rect); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPriceIn(t *testing.T) {
	list := geometry.Rect{X: 52, Y: 152, Width: 440, Height: 32}
	founding := geometry.Rect{X: 52, Y: 118, Width: 440, Height: 32}
	both := geometry.Rect{X: 52, Y: 118, Width: 440, Height: 66}
	title := geometry.Rect{X: 50, Y: 590, Width: 100, Height: 30}

	cases := []struct {
		rect geometry.Rect
		want string
	}{
		{list, "$9,625"},
		{founding, "$8,750"},
		{both, "$9,625"},
		{title, ""},
	}
	for _, tc := range cases {
		if got := PriceIn(sampleRuns, tc.rect); got != tc.want {
			t.Errorf("PriceIn(%v) = %q, want %q", tc.rect, got, tc.want)
		}
	}
}

func TestRunsFromPDF(t *testing.T) {
	data, err := testpdf.Write([]testpdf.Page{{
		Width:  400,
		Height: 400,
		Texts: []testpdf.Text{
			{X: 100, Y: 200, S: "$9,625"},
			{X: 100, Y: 300, S: "Hello"},
			{X: 127.336, Y: 300, S: " World"},
		},
	}})
	if err != nil {
		t.Fatal(err)
	}
	r, err := pdf.NewReader(bytes.NewReader(data), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	runs, err := Runs(r, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []Run{
		{X: 100, Y: 200, Text: "$9,625"},
		{X: 100, Y: 300, Text: "Hello"},
		{X: 127.336, Y: 300, Text: " World"},
	}
	if d := cmp.Diff(want, runs, cmpopts.EquateApprox(0, 1e-6)); d != "" {
		t.Errorf("runs (-want +got):\n%s", d)
	}

	line := geometry.Rect{X: 90, Y: 290, Width: 200, Height: 30}
	text, err := TextInRect(r, 0, line)
	if err != nil {
		t.Fatal(err)
	}
	if text != "Hello World" {
		t.Errorf("TextInRect: got %q, want %q", text, "Hello World")
	}

	price, err := PriceInRect(r, 0, geometry.Rect{X: 90, Y: 190, Width: 200, Height: 30})
	if err != nil {
		t.Fatal(err)
	}
	if price != "$9,625" {
		t.Errorf("PriceInRect: got %q, want %q", price, "$9,625")
	}

	price, err = PriceInRect(r, 0, line)
	if err != nil {
		t.Fatal(err)
	}
	if price != "" {
		t.Errorf("PriceInRect without a price: got %q", price)
	}
}

func TestTextInJoin(t *testing.T) {
	runs := []Run{
		{X: 10, Y: 10, Text: "Hello"},
		{X: 40, Y: 10, Text: " World"},
		{X: 80, Y: 10, Text: "again "},
		{X: 120, Y: 10, Text: "and"},
		{X: 140, Y: 10, Text: ""},
		{X: 150, Y: 10, Text: "more"},
	}
	got := TextIn(runs, geometry.Rect{X: 0, Y: 0, Width: 200, Height: 20})
	if want := "Hello World again and more"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

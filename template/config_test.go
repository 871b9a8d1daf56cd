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

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/proposal/geometry"
)

func TestCreateBlank(t *testing.T) {
	c := CreateBlank("abc", "Tower", 3, Dimensions{Width: 612, Height: 792})

	if c.PDFStorageKey != "abc" {
		t.Errorf("storage key %q, want %q", c.PDFStorageKey, "abc")
	}
	if d := cmp.Diff(DefaultStyle(), c.Style); d != "" {
		t.Errorf("style (-want +got):\n%s", d)
	}
	want := []Page{
		{Index: 0, Label: "Page 1", Kind: Other{}},
		{Index: 1, Label: "Page 2", Kind: Other{}},
		{Index: 2, Label: "Page 3", Kind: Other{}},
	}
	if d := cmp.Diff(want, c.Pages); d != "" {
		t.Errorf("pages (-want +got):\n%s", d)
	}
	if err := c.Validate(3); err != nil {
		t.Error(err)
	}
}

func TestDefaultStyle(t *testing.T) {
	s := DefaultStyle()
	want := Style{
		BackgroundFill: RGB{255, 253, 245},
		BadgeBlue:      RGB{43, 58, 103},
		BadgeGray:      RGB{235, 235, 235},
	}
	if d := cmp.Diff(want, s); d != "" {
		t.Errorf("style (-want +got):\n%s", d)
	}
}

func TestWithPageUpdateIsPure(t *testing.T) {
	c1 := Example()
	before := c1.Clone()

	c2, err := c1.WithPageUpdate(1, func(p *Page) {
		p.Label = "changed"
		s := p.Suite()
		*s.DeskCount = 99
		s.HighlightRects[0].X = -1
		s.PriceRedaction.ListPrice.Width = 1
	})
	if err != nil {
		t.Fatal(err)
	}

	if d := cmp.Diff(before, c1); d != "" {
		t.Errorf("original modified (-want +got):\n%s", d)
	}
	if c2.Pages[1].Label != "changed" || c2.Pages[1].Suite().Desks() != 99 {
		t.Errorf("update not applied: %+v", c2.Pages[1])
	}
}

func TestWithPageUpdateErrors(t *testing.T) {
	c := CreateBlank("x", "x", 2, DefaultDimensions)

	_, err := c.WithPageUpdate(2, func(p *Page) {})
	if !errors.Is(err, ErrPageRange) {
		t.Errorf("out of range: got %v", err)
	}

	_, err = c.WithPageUpdate(0, func(p *Page) { p.Index = 1 })
	if err == nil {
		t.Error("index change was accepted")
	}
}

func TestChangePageType(t *testing.T) {
	c := CreateBlank("x", "x", 2, DefaultDimensions)
	c, err := c.SetLabel(0, "Suite 12 - 3 desks")
	if err != nil {
		t.Fatal(err)
	}

	c, err = c.ChangePageType(0, TypeSuite)
	if err != nil {
		t.Fatal(err)
	}
	p := c.Pages[0]
	if p.Label != "Suite 12 - 3 desks" {
		t.Errorf("label lost: %q", p.Label)
	}
	if d := cmp.Diff(NewKind(TypeSuite), p.Kind); d != "" {
		t.Errorf("suite defaults (-want +got):\n%s", d)
	}

	c, err = c.ChangePageType(0, TypeConference)
	if err != nil {
		t.Fatal(err)
	}
	if c.Pages[0].Suite() != nil {
		t.Error("suite configuration kept after type change")
	}
	if c.Pages[0].Conference() == nil {
		t.Error("conference configuration not created")
	}

	c, err = c.ChangePageType(0, TypeOther)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(Page{Index: 0, Label: "Suite 12 - 3 desks", Kind: Other{}}, c.Pages[0]); d != "" {
		t.Errorf("other page (-want +got):\n%s", d)
	}

	if _, err := c.ChangePageType(0, PageType(17)); err == nil {
		t.Error("invalid type accepted")
	}
}

// Changing a page to the type it already has must keep populated fields.
func TestChangePageTypeIdempotent(t *testing.T) {
	c := Example()
	want := c.Pages[1]

	c1, err := c.ChangePageType(1, TypeSuite)
	if err != nil {
		t.Fatal(err)
	}
	c2, err := c1.ChangePageType(1, TypeSuite)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(want, c1.Pages[1]); d != "" {
		t.Errorf("first call (-want +got):\n%s", d)
	}
	if d := cmp.Diff(c1.Pages[1], c2.Pages[1]); d != "" {
		t.Errorf("second call (-want +got):\n%s", d)
	}

	// missing fields are filled in
	c3, err := c.WithPageUpdate(1, func(p *Page) { p.Suite().HighlightRects = nil })
	if err != nil {
		t.Fatal(err)
	}
	c3, err = c3.ChangePageType(1, TypeSuite)
	if err != nil {
		t.Fatal(err)
	}
	if rr := c3.Pages[1].Suite().HighlightRects; rr == nil || len(rr) != 0 {
		t.Errorf("highlight rects %v, want empty non-nil slice", rr)
	}
}

func TestTypedNilKind(t *testing.T) {
	c := CreateBlank("x", "x", 1, DefaultDimensions)
	c.Pages[0].Kind = (*Suite)(nil)

	c2, err := c.AddHighlightRect(0, geometry.Rect{X: 1, Y: 2, Width: 3, Height: 4})
	if err != nil {
		t.Fatal(err)
	}
	got := c2.Pages[0].Suite().HighlightRects
	want := []geometry.Rect{{X: 1, Y: 2, Width: 3, Height: 4}}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("highlights (-want +got):\n%s", d)
	}
}

func TestSummaryDimensions(t *testing.T) {
	c := CreateBlank("x", "x", 1, Dimensions{})
	if d := c.SummaryDimensions(); d != DefaultDimensions {
		t.Errorf("got %v, want %v", d, DefaultDimensions)
	}
	c.PageDimensions = Dimensions{Width: 612, Height: 792}
	if d := c.SummaryDimensions(); d != c.PageDimensions {
		t.Errorf("got %v, want %v", d, c.PageDimensions)
	}
}

func TestParsePageType(t *testing.T) {
	for _, pt := range []PageType{TypeOther, TypeSuite, TypeOverview, TypeConference} {
		got, err := ParsePageType(pt.String())
		if err != nil || got != pt {
			t.Errorf("ParsePageType(%q) = %v, %v", pt.String(), got, err)
		}
	}
	if _, err := ParsePageType("floor"); err == nil {
		t.Error("unknown type accepted")
	}
}

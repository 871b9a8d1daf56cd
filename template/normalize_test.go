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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize(t *testing.T) {
	c := Example()
	c.Pages[2].Index = 7
	neg := -3
	c.Pages[3].Suite().DeskCount = &neg
	far := 40
	c.Pages[4].Suite().OverviewPageIndex = &far
	c.Pages[5].Overview().SuitePageIndices = []int{7, 6, 7}
	c.Pages[8].Kind = nil

	res, repairs := Normalize(c)

	if len(repairs) != 4 {
		t.Errorf("got %d repairs, want 4: %v", len(repairs), repairs)
	}
	if res.Pages[2].Index != 2 {
		t.Errorf("index not repaired")
	}
	if res.Pages[3].Suite().DeskCount != nil {
		t.Errorf("negative desk count kept")
	}
	if res.Pages[4].Suite().OverviewPageIndex != nil {
		t.Errorf("dangling floor plan reference kept")
	}
	if d := cmp.Diff([]int{6, 7}, res.Pages[5].Overview().SuitePageIndices); d != "" {
		t.Errorf("links (-want +got):\n%s", d)
	}
	if res.Pages[8].Kind != (Other{}) {
		t.Errorf("nil kind not repaired: %#v", res.Pages[8].Kind)
	}
	if err := res.Validate(11); err != nil {
		t.Error(err)
	}

	// the input is left alone
	if c.Pages[2].Index != 7 {
		t.Error("input modified")
	}
}

func TestValidate(t *testing.T) {
	c := Example()
	if err := c.Validate(11); err != nil {
		t.Fatal(err)
	}
	if err := c.Validate(12); err == nil {
		t.Error("page count mismatch not detected")
	}

	bad, err := c.ChangePageType(2, TypeOther)
	if err != nil {
		t.Fatal(err)
	}
	if err := bad.Validate(-1); err == nil {
		t.Error("link to non-suite page not detected")
	}

	bad, err = c.ChangePageType(0, TypeOther)
	if err != nil {
		t.Fatal(err)
	}
	if err := bad.Validate(-1); err == nil {
		t.Error("back reference to non-overview page not detected")
	}
}

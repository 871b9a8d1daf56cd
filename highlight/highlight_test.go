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

package highlight

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/proposal/geometry"
	"seehuhn.de/go/proposal/template"
)

type set map[int]bool

func (s set) Contains(pageNo int) bool { return s[pageNo] }

func TestForOverview(t *testing.T) {
	cfg := template.Example()

	r404 := geometry.Rect{X: 75, Y: 332, Width: 47, Height: 85}
	r416 := geometry.Rect{X: 338, Y: 389, Width: 56, Height: 41}
	r506 := geometry.Rect{X: 322, Y: 306, Width: 73, Height: 39}

	cases := []struct {
		name     string
		page     int
		selected []int
		want     []geometry.Rect
	}{
		{"two suites", 1, []int{1, 4, 2}, []geometry.Rect{r404, r416}},
		{"other floor", 6, []int{1, 2, 6, 7}, []geometry.Rect{r506}},
		{"overview not selected", 1, []int{2}, []geometry.Rect{r404}},
		{"nothing selected", 1, nil, nil},
		{"suite page", 2, []int{1, 2}, nil},
		{"other page", 9, []int{1, 2, 9}, nil},
		{"out of range", 40, []int{1, 2}, nil},
		{"unknown numbers ignored", 1, []int{0, -3, 99, 3}, []geometry.Rect{{X: 412, Y: 383, Width: 38, Height: 47}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ForOverview(c.page, Numbers(c.selected), cfg)
			if d := cmp.Diff(c.want, got); d != "" {
				t.Errorf("ForOverview(%d) (-want +got):\n%s", c.page, d)
			}
		})
	}
}

// The order of the result must only depend on the stored link order.
func TestForOverviewSelectionOrder(t *testing.T) {
	cfg := template.Example()
	cfg, err := cfg.AddHighlightRect(2, geometry.Rect{X: 1, Y: 2, Width: 3, Height: 4})
	if err != nil {
		t.Fatal(err)
	}

	base := []int{1, 2, 3, 4, 5}
	want := ForOverview(1, Numbers(base), cfg)
	if len(want) != 5 {
		t.Fatalf("got %d rects, want 5", len(want))
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		perm := append([]int{}, base...)
		rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })

		got := ForOverview(1, Numbers(perm), cfg)
		if d := cmp.Diff(want, got); d != "" {
			t.Errorf("selection %v (-want +got):\n%s", perm, d)
		}

		m := set{}
		for _, p := range perm {
			m[p] = true
		}
		got = ForOverview(1, m, cfg)
		if d := cmp.Diff(want, got); d != "" {
			t.Errorf("map selection %v (-want +got):\n%s", perm, d)
		}
	}
}

// Links to pages which are no longer suites are skipped.
func TestForOverviewStaleLink(t *testing.T) {
	cfg := template.Example()
	cfg, err := cfg.ChangePageType(1, template.TypeOther)
	if err != nil {
		t.Fatal(err)
	}
	got := ForOverview(1, Numbers{1, 2, 3}, cfg)
	want := []geometry.Rect{{X: 412, Y: 383, Width: 38, Height: 47}}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

// Zero-area rectangles are passed through unchanged.
func TestForOverviewEmptyRect(t *testing.T) {
	cfg := template.Example()
	cfg, err := cfg.UpdateSuite(1, func(s *template.Suite) {
		s.HighlightRects = []geometry.Rect{{}}
	})
	if err != nil {
		t.Fatal(err)
	}
	got := ForOverview(1, Numbers{2}, cfg)
	if d := cmp.Diff([]geometry.Rect{{}}, got); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

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
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/proposal/template"
)

func TestSummaryRows(t *testing.T) {
	cfg := template.Example()
	prices := map[int]string{7: "$3,000"}

	got := SummaryRows([]int{8, 1, 2, 7, 11, 99}, prices, cfg)
	want := []SummaryRow{
		{Name: "Suite 509", Price: "$8,100", Desks: "up to 6 desks"},
		{Name: "Suite 404", Price: "$8,750", Desks: "up to 8 desks"},
		{Name: "Suite 506", Price: "$3,000", Desks: "up to 4 desks"},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("rows (-want +got):\n%s", d)
	}

	if rows := SummaryRows([]int{1, 9}, nil, cfg); len(rows) != 0 {
		t.Errorf("expected no rows, got %v", rows)
	}
}

func TestDisplayName(t *testing.T) {
	cases := map[string]string{
		"Suite 404 - 8 desks": "Suite 404",
		"Suite 404":           "Suite 404",
		" - only a suffix":    " - only a suffix",
		"A - B - C":           "A",
		"":                    "",
	}
	for in, want := range cases {
		if got := DisplayName(in); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSuitePrice(t *testing.T) {
	list, founding, empty := "$2", "$1", ""
	cases := []struct {
		name     string
		override string
		suite    *template.Suite
		want     string
	}{
		{"override", "$5", &template.Suite{ListPrice: &list, FoundingMemberPrice: &founding}, "$5"},
		{"founding", "", &template.Suite{ListPrice: &list, FoundingMemberPrice: &founding}, "$1"},
		{"empty founding", "", &template.Suite{ListPrice: &list, FoundingMemberPrice: &empty}, "$2"},
		{"list", "", &template.Suite{ListPrice: &list}, "$2"},
		{"blank", "", &template.Suite{}, ""},
		{"no suite", "", nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SuitePrice(tc.override, tc.suite); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSummaryPosition(t *testing.T) {
	cfg := template.Example()
	cases := []struct {
		pages []int
		want  int
	}{
		{[]int{1, 2, 9}, 1},
		{[]int{2, 3}, 0},
		{[]int{9, 2, 6, 7, 1}, 3},
		{[]int{2, 6}, 2},
	}
	for _, tc := range cases {
		if got := SummaryPosition(tc.pages, cfg); got != tc.want {
			t.Errorf("SummaryPosition(%v) = %d, want %d", tc.pages, got, tc.want)
		}
	}
}

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

package main

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/proposal/geometry"
)

func TestParsePages(t *testing.T) {
	cases := []struct {
		args []string
		want []int
		ok   bool
	}{
		{[]string{"1,2,9"}, []int{1, 2, 9}, true},
		{[]string{"9", "1"}, []int{9, 1}, true},
		{[]string{"3-5,1"}, []int{3, 4, 5, 1}, true},
		{[]string{"1,,2,"}, []int{1, 2}, true},
		{[]string{"0"}, nil, false},
		{[]string{"12"}, nil, false},
		{[]string{"5-3"}, nil, false},
		{[]string{"a"}, nil, false},
		{[]string{""}, nil, false},
	}
	for _, tc := range cases {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			got, err := parsePages(tc.args, 11)
			if (err == nil) != tc.ok {
				t.Fatalf("unexpected error: %v", err)
			}
			if d := cmp.Diff(tc.want, got); d != "" {
				t.Errorf("pages (-want +got):\n%s", d)
			}
		})
	}
}

func TestFormatPages(t *testing.T) {
	cases := []struct {
		in   []int
		want string
	}{
		{[]int{}, ""},
		{[]int{3}, "3"},
		{[]int{1, 2}, "1,2"},
		{[]int{5, 1, 2, 3, 9, 3}, "1-3,5,9"},
	}
	for _, tc := range cases {
		if got := formatPages(tc.in); got != tc.want {
			t.Errorf("formatPages(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatPagesRoundTrip(t *testing.T) {
	in := []int{1, 2, 3, 6, 8, 9, 10, 11}
	got, err := parsePages([]string{formatPages(in)}, 11)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(in, got); d != "" {
		t.Errorf("pages (-want +got):\n%s", d)
	}
}

func TestParseRect(t *testing.T) {
	got, err := parseRect([]string{"52", "118.5", "440", "32"})
	if err != nil {
		t.Fatal(err)
	}
	want := geometry.Rect{X: 52, Y: 118.5, Width: 440, Height: 32}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("rect (-want +got):\n%s", d)
	}

	for _, bad := range [][]string{
		{"1", "2", "3"},
		{"1", "2", "x", "4"},
		{"1", "2", "-3", "4"},
	} {
		if _, err := parseRect(bad); err == nil {
			t.Errorf("parseRect(%q) succeeded", bad)
		}
	}
}

func TestPageValues(t *testing.T) {
	pv := pageValues{}
	for _, s := range []string{"2=$9,000", "9=Board room = 12 seats"} {
		if err := pv.Set(s); err != nil {
			t.Fatal(err)
		}
	}
	want := pageValues{2: "$9,000", 9: "Board room = 12 seats"}
	if d := cmp.Diff(want, pv); d != "" {
		t.Errorf("values (-want +got):\n%s", d)
	}
	if got := pv.String(); got != "2=$9,000 9=Board room = 12 seats" {
		t.Errorf("String() = %q", got)
	}

	for _, bad := range []string{"9000", "x=1", "0=1"} {
		if err := pv.Set(bad); err == nil {
			t.Errorf("Set(%q) succeeded", bad)
		}
	}
}

func TestFormatPrices(t *testing.T) {
	in := pageValues{2: "9000", 3: "$ 12,500", 4: "call us", 5: ""}
	want := map[int]string{2: "$9,000", 3: "$12,500", 4: "call us", 5: ""}
	if d := cmp.Diff(want, formatPrices(in)); d != "" {
		t.Errorf("prices (-want +got):\n%s", d)
	}
}

func TestJSONToYAML(t *testing.T) {
	in := `{"name": "123 Main St", "pages": [{"pageIndex": 0, "type": "other", "label": "true"}]}`
	got, err := jsonToYAML([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	want := `name: 123 Main St
pages:
    - pageIndex: 0
      type: other
      label: "true"
`
	if d := cmp.Diff(want, string(got)); d != "" {
		t.Errorf("yaml (-want +got):\n%s", d)
	}
}

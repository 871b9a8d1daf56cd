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

package stdfont

import (
	"math"
	"slices"
	"testing"

	"seehuhn.de/go/pdf"
)

func TestEncode(t *testing.T) {
	cases := []struct {
		in   string
		want pdf.String
	}{
		{"Price", pdf.String("Price")},
		{"café", pdf.String("caf\xe9")},
		{"€5", pdf.String("\x805")},
		{"✓ ok", pdf.String("? ok")},
		{"", pdf.String{}},
	}
	for _, tc := range cases {
		got := Encode(tc.in)
		if string(got) != string(tc.want) {
			t.Errorf("Encode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWidth(t *testing.T) {
	F, err := Helvetica()
	if err != nil {
		t.Fatal(err)
	}
	if w := F.Width(nil, 12); w != 0 {
		t.Errorf("empty string has width %g", w)
	}
	// "i" is 222 units wide in Helvetica
	if w := F.Width(pdf.String("ii"), 10); math.Abs(w-4.44) > 1e-9 {
		t.Errorf("got width %g, want 4.44", w)
	}

	B, err := HelveticaBold()
	if err != nil {
		t.Fatal(err)
	}
	s := pdf.String("Proposal")
	if B.Width(s, 12) <= F.Width(s, 12) {
		t.Error("bold text is not wider than regular text")
	}
}

func TestCodes(t *testing.T) {
	F, err := Helvetica()
	if err != nil {
		t.Fatal(err)
	}

	var text string
	var widths []float64
	var spaces []bool
	for code := range F.Codes(Encode("a é")) {
		text += code.Text
		widths = append(widths, code.Width)
		spaces = append(spaces, code.UseWordSpacing)
	}
	if text != "a é" {
		t.Errorf("got text %q", text)
	}
	if !slices.Equal(widths, []float64{556, 278, 556}) {
		t.Errorf("got widths %v", widths)
	}
	if !slices.Equal(spaces, []bool{false, true, false}) {
		t.Errorf("got word spacing flags %v", spaces)
	}
}

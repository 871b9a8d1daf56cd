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

	"seehuhn.de/go/pdf"
)

func TestFreeName(t *testing.T) {
	dict := pdf.Dict{"F": nil, "PropHelv": nil, "PropHelv.2": nil}
	if got := freeName(dict, "PropHelv"); got != "PropHelv.3" {
		t.Errorf("got %q, want PropHelv.3", got)
	}
	if got := freeName(nil, "PropHelv"); got != "PropHelv" {
		t.Errorf("got %q, want PropHelv", got)
	}
}

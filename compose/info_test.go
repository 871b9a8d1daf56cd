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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/proposal/internal/testpdf"
	"seehuhn.de/go/proposal/template"
)

func TestInspect(t *testing.T) {
	data, err := testpdf.Write(testpdf.Pages(3, 612, 792))
	if err != nil {
		t.Fatal(err)
	}

	n, dims, err := Inspect(data)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("got %d pages, want 3", n)
	}
	want := template.Dimensions{Width: 612, Height: 792}
	if d := cmp.Diff(want, dims); d != "" {
		t.Errorf("dimensions (-want +got):\n%s", d)
	}
}

func TestInspectInvalid(t *testing.T) {
	_, _, err := Inspect([]byte("not a PDF file"))
	var loadErr *TemplateLoadError
	if !errors.As(err, &loadErr) {
		t.Errorf("got %v, want TemplateLoadError", err)
	}
}

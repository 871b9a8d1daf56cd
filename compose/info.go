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
	"bytes"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"

	"seehuhn.de/go/proposal/template"
)

// Inspect returns the number of pages of a template PDF, together with
// the size of its first page.  This is the information needed to create a
// blank configuration for a newly imported template.
func Inspect(tmpl []byte) (int, template.Dimensions, error) {
	r, err := pdf.NewReader(bytes.NewReader(tmpl), nil)
	if err != nil {
		return 0, template.Dimensions{}, &TemplateLoadError{Err: err}
	}
	defer r.Close()

	numPages, err := pagetree.NumPages(r)
	if err != nil {
		return 0, template.Dimensions{}, &TemplateLoadError{Err: err}
	}
	if numPages == 0 {
		return 0, template.DefaultDimensions, nil
	}

	_, dict, err := pagetree.GetPage(r, 0)
	if err != nil {
		return 0, template.Dimensions{}, &TemplateLoadError{Err: err}
	}
	box, err := pdf.GetRectangle(r, dict["MediaBox"])
	if err != nil || box == nil || box.IsZero() {
		return numPages, template.DefaultDimensions, nil
	}
	dims := template.Dimensions{
		Width:  box.URx - box.LLx,
		Height: box.URy - box.LLy,
	}
	return numPages, dims, nil
}

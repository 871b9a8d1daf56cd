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

// Package testpdf generates small PDF files in memory and inspects the
// content of their pages.  It is used by the unit tests of other packages.
package testpdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/pagetree"
	"seehuhn.de/go/pdf/reader/scanner"

	"seehuhn.de/go/proposal/internal/stdfont"
)

// Text is a line of text on a generated page.
type Text struct {
	X, Y float64
	S    string
}

// Box is a filled rectangle on a generated page, with an RGB colour.
type Box struct {
	X, Y, Width, Height float64
	R, G, B             float64
}

// Page describes a generated page.  Boxes are drawn before texts.
type Page struct {
	Width, Height float64
	Boxes         []Box
	Texts         []Text
}

// Pages returns n pages of the given size.  Each page shows the text
// "Page i" in its top-left corner.
func Pages(n int, width, height float64) []Page {
	res := make([]Page, n)
	for i := range res {
		res[i] = Page{
			Width:  width,
			Height: height,
			Texts:  []Text{{X: 36, Y: height - 36, S: fmt.Sprintf("Page %d", i+1)}},
		}
	}
	return res
}

// Write returns a PDF file with the given pages.  Text is set in
// Helvetica, 12pt, using the font resource name /F.  Each text is shown
// in a text object of its own.
func Write(pages []Page) ([]byte, error) {
	F, err := stdfont.Helvetica()
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	w, err := pdf.NewWriter(buf, pdf.V1_7, nil)
	if err != nil {
		return nil, err
	}
	rm := pdf.NewResourceManager(w)
	tree := pagetree.NewWriter(w)

	for _, p := range pages {
		body := &bytes.Buffer{}
		page := graphics.NewWriter(body, rm)
		if len(p.Texts) > 0 {
			err := page.SetFontNameInternal(F, "F")
			if err != nil {
				return nil, err
			}
		}
		for _, b := range p.Boxes {
			page.SetFillColor(color.DeviceRGB(b.R, b.G, b.B))
			page.Rectangle(b.X, b.Y, b.Width, b.Height)
			page.Fill()
		}
		if len(p.Boxes) > 0 {
			page.SetFillColor(color.DeviceGray(0))
		}
		for _, t := range p.Texts {
			page.TextBegin()
			page.TextSetFont(F, 12)
			page.TextFirstLine(t.X, t.Y)
			page.TextShowRaw(stdfont.Encode(t.S))
			page.TextEnd()
		}
		if page.Err != nil {
			return nil, page.Err
		}

		contentRef := w.Alloc()
		stm, err := w.OpenStream(contentRef, nil)
		if err != nil {
			return nil, err
		}
		if _, err := stm.Write(body.Bytes()); err != nil {
			return nil, err
		}
		if err := stm.Close(); err != nil {
			return nil, err
		}

		err = tree.AppendPage(pdf.Dict{
			"Type": pdf.Name("Page"),
			"MediaBox": pdf.Array{
				pdf.Integer(0), pdf.Integer(0), pdf.Number(p.Width), pdf.Number(p.Height),
			},
			"Resources": pdf.AsDict(page.Resources),
			"Contents":  contentRef,
		})
		if err != nil {
			return nil, err
		}
	}

	ref, err := tree.Close()
	if err != nil {
		return nil, err
	}
	w.GetMeta().Catalog.Pages = ref

	if err := rm.Close(); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Operator is a content stream operator together with its arguments.
type Operator struct {
	Name string
	Args []pdf.Object
}

// Numbers returns the numeric arguments of op, in order.
func (op Operator) Numbers() []float64 {
	var res []float64
	for _, arg := range op.Args {
		switch x := arg.(type) {
		case pdf.Integer:
			res = append(res, float64(x))
		case pdf.Real:
			res = append(res, float64(x))
		case pdf.Number:
			res = append(res, float64(x))
		}
	}
	return res
}

// Info summarises one page of a PDF file.
type Info struct {
	MediaBox *pdf.Rectangle

	// Operators is the concatenation of all content streams of the page.
	Operators []Operator

	// FontNames lists the BaseFont names of the font resources.
	FontNames map[pdf.Name]pdf.Name
}

// Inspect parses a PDF file and returns information about each page.
func Inspect(data []byte) ([]*Info, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), nil)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	n, err := pagetree.NumPages(r)
	if err != nil {
		return nil, err
	}

	pages := make([]*Info, n)
	for i := range pages {
		_, dict, err := pagetree.GetPage(r, i)
		if err != nil {
			return nil, err
		}
		info := &Info{FontNames: map[pdf.Name]pdf.Name{}}

		info.MediaBox, err = pdf.GetRectangle(r, dict["MediaBox"])
		if err != nil {
			return nil, err
		}

		body, err := contentBytes(r, dict["Contents"])
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		info.Operators, err = parse(body)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}

		resources, err := pdf.GetDict(r, dict["Resources"])
		if err != nil {
			return nil, err
		}
		fonts, err := pdf.GetDict(r, resources["Font"])
		if err != nil {
			return nil, err
		}
		for name, obj := range fonts {
			fd, err := pdf.GetDict(r, obj)
			if err != nil {
				return nil, err
			}
			base, _ := fd["BaseFont"].(pdf.Name)
			info.FontNames[name] = base
		}

		pages[i] = info
	}
	return pages, nil
}

func parse(body []byte) ([]Operator, error) {
	var ops []Operator
	s := scanner.NewScanner()
	s.SetInput(bytes.NewReader(body))
	for s.Scan() {
		op := s.Operator()
		ops = append(ops, Operator{Name: op.Name, Args: slices.Clone(op.Args)})
	}
	return ops, s.Error()
}

// contentBytes returns the concatenated, decoded content streams given by
// the /Contents entry of a page dictionary.
func contentBytes(r pdf.Getter, obj pdf.Object) ([]byte, error) {
	obj, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil, err
	}

	var parts []pdf.Object
	switch obj := obj.(type) {
	case nil:
		return nil, nil
	case pdf.Array:
		parts = obj
	case *pdf.Stream:
		parts = []pdf.Object{obj}
	default:
		return nil, errors.New("invalid /Contents entry")
	}

	var body []byte
	for _, part := range parts {
		stm, err := pdf.GetStream(r, part)
		if err != nil {
			return nil, err
		}
		if stm == nil {
			continue
		}
		rc, err := pdf.DecodeStream(r, stm, 0)
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		body = append(body, data...)
		body = append(body, '\n')
	}
	return body, nil
}

// Strings returns the arguments of all "Tj" operators in the content, in
// order.
func (info *Info) Strings() []string {
	var res []string
	for _, op := range info.Operators {
		if op.Name != "Tj" || len(op.Args) == 0 {
			continue
		}
		if s, ok := op.Args[0].(pdf.String); ok {
			res = append(res, string(s))
		}
	}
	return res
}

// Count returns the number of operators with the given name.
func (info *Info) Count(name string) int {
	n := 0
	for _, op := range info.Operators {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Find returns the operators with the given name, in order.
func (info *Info) Find(name string) []Operator {
	var res []Operator
	for _, op := range info.Operators {
		if op.Name == name {
			res = append(res, op)
		}
	}
	return res
}

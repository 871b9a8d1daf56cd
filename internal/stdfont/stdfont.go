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

// Package stdfont provides the Helvetica fonts from the standard 14 PDF
// fonts, for use with a [graphics.Writer].
//
// Fonts use WinAnsiEncoding and are not embedded.  Text must be encoded
// with [Encode] and shown using TextShowRaw, so that the strings in the
// content stream are plain WinAnsi bytes.
package stdfont

import (
	"iter"
	"sync"

	"golang.org/x/text/encoding/charmap"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/font"
	"seehuhn.de/go/pdf/font/loader"
	"seehuhn.de/go/pdf/font/pdfenc"
	"seehuhn.de/go/postscript/afm"
)

// Font is one of the standard 14 PDF fonts.
// Font implements both [font.Font] and [font.Embedded].
type Font struct {
	name pdf.Name

	// widths holds the advance widths, indexed by WinAnsi character code,
	// in units of 1/1000 of the font size.
	widths [256]float64
}

var builtinFonts = loader.NewFontLoader()

func load(name pdf.Name) (*Font, error) {
	fd, err := builtinFonts.Open(string(name), loader.FontTypeAFM)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	metrics, err := afm.Read(fd)
	if err != nil {
		return nil, err
	}
	return fromAFM(name, metrics), nil
}

// fromAFM extracts the widths of the WinAnsi glyphs.  Glyphs missing
// from the font have width zero.
func fromAFM(name pdf.Name, metrics *afm.Metrics) *Font {
	f := &Font{name: name}
	for code, glyphName := range pdfenc.WinAnsi.Encoding {
		if g, ok := metrics.Glyphs[glyphName]; ok {
			f.widths[code] = g.WidthX
		}
	}
	return f
}

// The fonts are read-only after loading and can be shared between
// goroutines.  Every PDF file gets its own copy of the font dictionary.
var (
	// Helvetica returns the Helvetica font.
	Helvetica = sync.OnceValues(func() (*Font, error) {
		return load("Helvetica")
	})

	// HelveticaBold returns the Helvetica-Bold font.
	HelveticaBold = sync.OnceValues(func() (*Font, error) {
		return load("Helvetica-Bold")
	})
)

// PostScriptName implements the [font.Font] interface.
func (f *Font) PostScriptName() string {
	return string(f.name)
}

// Embed implements the [pdf.Embedder] interface.
func (f *Font) Embed(rm *pdf.ResourceManager) (pdf.Native, font.Embedded, error) {
	ref := rm.Out.Alloc()
	err := rm.Out.Put(ref, pdf.Dict{
		"Type":     pdf.Name("Font"),
		"Subtype":  pdf.Name("Type1"),
		"BaseFont": f.name,
		"Encoding": pdf.Name("WinAnsiEncoding"),
	})
	if err != nil {
		return nil, nil, err
	}
	return ref, f, nil
}

// WritingMode implements the [font.Embedded] interface.
func (f *Font) WritingMode() font.WritingMode {
	return font.Horizontal
}

// Codes implements the [font.Embedded] interface.
func (f *Font) Codes(s pdf.String) iter.Seq[*font.Code] {
	return func(yield func(*font.Code) bool) {
		var code font.Code
		for _, c := range s {
			code.Width = f.widths[c]
			code.Text = string(charmap.Windows1252.DecodeByte(c))
			code.UseWordSpacing = c == ' '
			if !yield(&code) {
				return
			}
		}
	}
}

// Width returns the width of the encoded string s at the given font size.
func (f *Font) Width(s pdf.String, size float64) float64 {
	var w float64
	for _, c := range s {
		w += f.widths[c]
	}
	return w * size / 1000
}

// Encode converts s to WinAnsi character codes.
// Characters which cannot be represented are replaced by '?'.
func Encode(s string) pdf.String {
	res := make(pdf.String, 0, len(s))
	for _, r := range s {
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			b = '?'
		}
		res = append(res, b)
	}
	return res
}

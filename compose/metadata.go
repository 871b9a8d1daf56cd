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
	"time"

	"golang.org/x/text/language"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/xmp"
)

// pdfSchema is the XMP namespace for PDF properties.
type pdfSchema struct {
	_        xmp.Namespace `xmp:"http://ns.adobe.com/pdf/1.3/"`
	_        xmp.Prefix    `xmp:"pdf"`
	Producer xmp.AgentName
}

// DefaultProducer is recorded as the producing application in exported
// files, unless [Options.Producer] is set.
const DefaultProducer = "seehuhn.de/go/proposal"

func writeMetadata(w *pdf.Writer, title, producer string, date time.Time, pretty bool) error {
	if producer == "" {
		producer = DefaultProducer
	}

	dc := &xmp.DublinCore{}
	if title != "" {
		dc.Title.Set(language.MustParse("x-default"), title)
	}
	basic := &xmp.Basic{
		CreateDate: xmp.NewDate(date),
		ModifyDate: xmp.NewDate(date),
	}
	info := &pdfSchema{
		Producer: xmp.NewAgentName(producer),
	}

	packet := xmp.NewPacket()
	if err := packet.Set(dc, basic, info); err != nil {
		return err
	}

	ref := w.Alloc()
	stm, err := w.OpenStream(ref, pdf.Dict{
		"Type":    pdf.Name("Metadata"),
		"Subtype": pdf.Name("XML"),
	})
	if err != nil {
		return err
	}
	err = packet.Write(stm, &xmp.PacketOptions{Pretty: pretty})
	if err != nil {
		return err
	}
	err = stm.Close()
	if err != nil {
		return err
	}

	w.GetMeta().Catalog.Metadata = ref
	return nil
}

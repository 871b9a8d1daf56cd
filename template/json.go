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

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

type configJSON struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	PDFStorageKey  string      `json:"pdfStorageKey"`
	PageDimensions *Dimensions `json:"pageDimensions,omitempty"`
	Pages          []pageJSON  `json:"pages"`
	Style          *Style      `json:"style,omitempty"`
}

type pageJSON struct {
	PageIndex        int             `json:"pageIndex"`
	Label            string          `json:"label"`
	Type             string          `json:"type"`
	SuiteConfig      json.RawMessage `json:"suiteConfig,omitempty"`
	OverviewConfig   json.RawMessage `json:"overviewConfig,omitempty"`
	ConferenceConfig json.RawMessage `json:"conferenceConfig,omitempty"`
}

type pageOut struct {
	PageIndex        int         `json:"pageIndex"`
	Label            string      `json:"label"`
	Type             string      `json:"type"`
	SuiteConfig      *Suite      `json:"suiteConfig,omitempty"`
	OverviewConfig   *Overview   `json:"overviewConfig,omitempty"`
	ConferenceConfig *Conference `json:"conferenceConfig,omitempty"`
}

// MarshalJSON encodes the configuration in the storage format.
// Only the sub-config matching the page type is written.
func (c *Config) MarshalJSON() ([]byte, error) {
	out := struct {
		ID             string     `json:"id"`
		Name           string     `json:"name"`
		PDFStorageKey  string     `json:"pdfStorageKey"`
		PageDimensions Dimensions `json:"pageDimensions"`
		Pages          []pageOut  `json:"pages"`
		Style          Style      `json:"style"`
	}{
		ID:             c.ID,
		Name:           c.Name,
		PDFStorageKey:  c.PDFStorageKey,
		PageDimensions: c.PageDimensions,
		Pages:          make([]pageOut, len(c.Pages)),
		Style:          c.Style,
	}
	for i, p := range c.Pages {
		p = p.clone()
		fillDefaults(p.Kind)
		po := pageOut{
			PageIndex: p.Index,
			Label:     p.Label,
			Type:      p.Type().String(),
		}
		switch k := p.Kind.(type) {
		case *Suite:
			po.SuiteConfig = k
		case *Overview:
			po.OverviewConfig = k
		case *Conference:
			po.ConferenceConfig = k
		}
		out.Pages[i] = po
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a configuration in the storage format.
// Malformed sub-configs are replaced by empty defaults, see [Decode].
func (c *Config) UnmarshalJSON(data []byte) error {
	res, _, err := Decode(data)
	if err != nil {
		return err
	}
	*c = *res
	return nil
}

// Decode parses a configuration in the storage format.
//
// Pages whose sub-config is missing or does not match the declared type
// are repaired by installing an empty sub-config of the declared type.
// Each repair is reported in the returned slice; repairs are not errors.
// The returned configuration has been passed through [Normalize].
func Decode(data []byte) (*Config, []*ShapeError, error) {
	style := DefaultStyle()
	w := configJSON{Style: &style}
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&w); err != nil {
		return nil, nil, fmt.Errorf("decode template config: %w", err)
	}

	c := &Config{
		ID:            w.ID,
		Name:          w.Name,
		PDFStorageKey: w.PDFStorageKey,
		Pages:         make([]Page, len(w.Pages)),
		Style:         DefaultStyle(),
	}
	if w.PageDimensions != nil {
		c.PageDimensions = *w.PageDimensions
	}
	if w.Style != nil {
		c.Style = *w.Style
	}

	var repairs []*ShapeError
	for i, pw := range w.Pages {
		kind, shapeErr := decodeKind(&pw)
		if shapeErr != nil {
			repairs = append(repairs, shapeErr)
		}
		c.Pages[i] = Page{
			Index: pw.PageIndex,
			Label: pw.Label,
			Kind:  kind,
		}
	}

	c, more := Normalize(c)
	repairs = append(repairs, more...)
	return c, repairs, nil
}

// Read decodes a configuration from r.  See [Decode].
func Read(r io.Reader) (*Config, []*ShapeError, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	return Decode(data)
}

func decodeKind(pw *pageJSON) (Kind, *ShapeError) {
	t, err := ParsePageType(pw.Type)
	if err != nil {
		return Other{}, &ShapeError{
			Index:  pw.PageIndex,
			Type:   TypeOther,
			Reason: err.Error(),
		}
	}

	var raw json.RawMessage
	var kind Kind
	switch t {
	case TypeOther:
		return Other{}, nil
	case TypeSuite:
		raw = pw.SuiteConfig
		kind = &Suite{}
	case TypeOverview:
		raw = pw.OverviewConfig
		kind = &Overview{}
	case TypeConference:
		raw = pw.ConferenceConfig
		kind = &Conference{}
	}

	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return NewKind(t), &ShapeError{
			Index:  pw.PageIndex,
			Type:   t,
			Reason: "missing " + t.String() + " configuration",
		}
	}
	if err := json.Unmarshal(raw, kind); err != nil {
		return NewKind(t), &ShapeError{
			Index:  pw.PageIndex,
			Type:   t,
			Reason: "malformed " + t.String() + " configuration",
			Err:    err,
		}
	}
	fillDefaults(kind)
	return kind, nil
}

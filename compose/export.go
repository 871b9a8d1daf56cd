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

// Package compose assembles a proposal from the pages of a template PDF.
//
// Selected pages are copied from the template in the requested order.
// Depending on the page configuration, an overlay is drawn on top of a
// copied page: a price badge on suite pages, replacement text on
// conference pages, and highlight outlines on floor plan pages.  If any
// suite page is selected, a summary page is added.
package compose

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"
	"seehuhn.de/go/pdf/pdfcopy"

	"seehuhn.de/go/proposal/highlight"
	"seehuhn.de/go/proposal/internal/stdfont"
	"seehuhn.de/go/proposal/template"
)

// Request lists the pages and the per-page values of a proposal.
type Request struct {
	// Pages contains the 1-based numbers of the template pages to include,
	// in output order.
	Pages []int

	// Prices maps suite page numbers to price overrides.
	Prices map[int]string

	// Texts maps conference page numbers to replacement texts.
	Texts map[int]string
}

// Options can be used to control the output of [Export].
// The zero value is ready to use.
type Options struct {
	// Logger, if set, receives notes about redactions which were skipped
	// and about mismatches between the template and its configuration.
	Logger *log.Logger

	// Title is stored in the XMP metadata of the output.
	Title string

	// Producer names the application in the XMP metadata of the output.
	// If this is empty, [DefaultProducer] is used.
	Producer string

	// Date is used as the creation date of the output.  If this is the
	// zero time, the current time is used.
	Date time.Time

	HumanReadable bool
}

func (opt *Options) logf(format string, args ...any) {
	if opt.Logger != nil {
		opt.Logger.Printf(format, args...)
	}
}

// ErrNoPages is returned by [Export] if no pages are selected.
var ErrNoPages = errors.New("no pages selected")

// TemplateLoadError indicates that the template PDF could not be read.
type TemplateLoadError struct {
	Err error
}

func (e *TemplateLoadError) Error() string {
	return "cannot load template: " + e.Err.Error()
}

func (e *TemplateLoadError) Unwrap() error {
	return e.Err
}

// PageRangeError is returned if a selected page does not exist in the
// template.
type PageRangeError struct {
	PageNo   int
	NumPages int
}

func (e *PageRangeError) Error() string {
	return fmt.Sprintf("page %d not in range 1-%d", e.PageNo, e.NumPages)
}

// FileName returns the conventional file name for a proposal created at
// time t.
func FileName(t time.Time) string {
	return "proposal-" + t.UTC().Format(time.DateOnly) + ".pdf"
}

// Export creates a proposal from the template PDF tmpl and returns the
// resulting PDF file.
//
// If cfg is nil, all pages are treated as having type "other" and are
// copied without modification.
func Export(ctx context.Context, tmpl []byte, req *Request, cfg *template.Config, opt *Options) ([]byte, error) {
	if opt == nil {
		opt = &Options{}
	}
	if req == nil || len(req.Pages) == 0 {
		return nil, ErrNoPages
	}

	r, err := pdf.NewReader(bytes.NewReader(tmpl), nil)
	if err != nil {
		return nil, &TemplateLoadError{Err: err}
	}
	defer r.Close()

	numPages, err := pagetree.NumPages(r)
	if err != nil {
		return nil, &TemplateLoadError{Err: err}
	}
	for _, pageNo := range req.Pages {
		if pageNo < 1 || pageNo > numPages {
			return nil, &PageRangeError{PageNo: pageNo, NumPages: numPages}
		}
	}
	if cfg != nil && len(cfg.Pages) != numPages {
		opt.logf("template has %d pages, but the configuration describes %d",
			numPages, len(cfg.Pages))
	}

	regular, err := stdfont.Helvetica()
	if err != nil {
		return nil, err
	}
	bold, err := stdfont.HelveticaBold()
	if err != nil {
		return nil, err
	}

	v := pdf.GetVersion(r)
	if v < pdf.V1_7 {
		v = pdf.V1_7
	}
	buf := &bytes.Buffer{}
	w, err := pdf.NewWriter(buf, v, &pdf.WriterOptions{HumanReadable: opt.HumanReadable})
	if err != nil {
		return nil, err
	}
	rm := pdf.NewResourceManager(w)

	e := &exporter{
		r:        r,
		w:        w,
		rm:       rm,
		tree:     pagetree.NewWriter(w),
		copier:   pdfcopy.NewCopier(w, r),
		cfg:      cfg,
		req:      req,
		opt:      opt,
		selected: highlight.Numbers(req.Pages),
		style:    template.DefaultStyle(),
		regular:  regular,
		bold:     bold,
		fontBases: map[*stdfont.Font]string{
			regular: "PropHelv",
			bold:    "PropHelvB",
		},
		seen: make(map[pdf.Reference]bool),
	}
	if cfg != nil && cfg.Style != (template.Style{}) {
		e.style = cfg.Style
	}

	rows := SummaryRows(req.Pages, req.Prices, cfg)
	summaryPos := -1
	if len(rows) > 0 {
		summaryPos = SummaryPosition(req.Pages, cfg)
	}

	for i, pageNo := range req.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i == summaryPos {
			if err := e.writeSummary(rows); err != nil {
				return nil, err
			}
		}
		if err := e.copyPage(pageNo); err != nil {
			return nil, err
		}
	}
	if summaryPos == len(req.Pages) {
		if err := e.writeSummary(rows); err != nil {
			return nil, err
		}
	}

	pages, err := e.tree.Close()
	if err != nil {
		return nil, err
	}
	w.GetMeta().Catalog.Pages = pages

	date := opt.Date
	if date.IsZero() {
		date = time.Now()
	}
	err = writeMetadata(w, opt.Title, opt.Producer, date, opt.HumanReadable)
	if err != nil {
		return nil, err
	}

	err = rm.Close()
	if err != nil {
		return nil, err
	}
	err = w.Close()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type exporter struct {
	r      *pdf.Reader
	w      *pdf.Writer
	rm     *pdf.ResourceManager
	tree   *pagetree.Writer
	copier *pdfcopy.Copier

	cfg      *template.Config
	req      *Request
	opt      *Options
	selected highlight.PageSet
	style    template.Style

	regular, bold *stdfont.Font
	fontBases     map[*stdfont.Font]string

	// push and pop are the shared content streams which isolate the
	// graphics state of a template page from its overlay.
	push, pop pdf.Reference

	// seen records the template pages which have been copied already.
	seen map[pdf.Reference]bool
}

// skippedPageKeys lists the page dictionary entries which are not copied
// verbatim.
var skippedPageKeys = map[pdf.Name]bool{
	"Type":          true,
	"Parent":        true,
	"Contents":      true,
	"Resources":     true,
	"Annots":        true,
	"B":             true,
	"StructParents": true,
}

func (e *exporter) copyPage(pageNo int) error {
	srcRef, dict, err := pagetree.GetPage(e.r, pageNo-1)
	if err != nil {
		return &TemplateLoadError{Err: fmt.Errorf("page %d: %w", pageNo, err)}
	}

	resources, err := pdf.GetDict(e.r, dict["Resources"])
	if err != nil {
		return &TemplateLoadError{Err: fmt.Errorf("page %d: %w", pageNo, err)}
	}
	fonts, err := pdf.GetDict(e.r, resources["Font"])
	if err != nil {
		return &TemplateLoadError{Err: fmt.Errorf("page %d: %w", pageNo, err)}
	}

	overlay, err := e.overlay(pageNo, fonts)
	if err != nil {
		return err
	}

	out := pdf.Dict{}
	for key, val := range dict {
		if skippedPageKeys[key] || val == nil {
			continue
		}
		out[key] = val
	}
	newRef := e.w.Alloc()
	if srcRef != 0 && !e.seen[srcRef] {
		e.seen[srcRef] = true
		annots, err := e.annotations(dict["Annots"])
		if err != nil {
			e.opt.logf("page %d: annotations not copied: %v", pageNo, err)
		} else if len(annots) > 0 {
			e.copier.Redirect(srcRef, newRef)
			out["Annots"] = annots
		}
	}
	pageDict, err := e.copier.CopyDict(out)
	if err != nil {
		return err
	}
	pageDict["Type"] = pdf.Name("Page")

	newResources, err := e.copier.CopyDict(resources)
	if err != nil {
		return err
	}
	if newResources == nil {
		newResources = pdf.Dict{}
	}

	if overlay.isEmpty() {
		if contents := dict["Contents"]; contents != nil {
			copied, err := e.copier.Copy(contents.AsPDF(e.w.GetOptions()))
			if err != nil {
				return err
			}
			pageDict["Contents"] = copied
		}
		pageDict["Resources"] = newResources
		return e.tree.AppendPageRef(newRef, pageDict)
	}

	if len(overlay.Resources.Font) > 0 {
		newFonts, err := e.copier.CopyDict(fonts)
		if err != nil {
			return err
		}
		if newFonts == nil {
			newFonts = pdf.Dict{}
		}
		for name, ref := range overlay.Resources.Font {
			newFonts[name] = ref
		}
		newResources["Font"] = newFonts
	}
	pageDict["Resources"] = newResources

	parts, err := contentParts(e.r, dict["Contents"])
	if err != nil {
		return &TemplateLoadError{Err: fmt.Errorf("page %d: %w", pageNo, err)}
	}
	parts, err = e.copier.CopyArray(parts)
	if err != nil {
		return err
	}
	push, pop, err := e.isolation()
	if err != nil {
		return err
	}
	overlayRef, err := e.writeContent(overlay.buf.Bytes())
	if err != nil {
		return err
	}
	contents := pdf.Array{push}
	contents = append(contents, parts...)
	contents = append(contents, pop, overlayRef)
	pageDict["Contents"] = contents

	return e.tree.AppendPageRef(newRef, pageDict)
}

// overlay returns the drawing operations to be placed on top of a copied
// template page.  The font resources of the template page are given in
// fonts.
func (e *exporter) overlay(pageNo int, fonts pdf.Dict) (*canvas, error) {
	c := newOverlay(e.rm, fonts, e.fontBases)
	p, ok := e.cfg.PageByNumber(pageNo)
	if !ok {
		return c, nil
	}

	if s := p.Suite(); s != nil {
		price := e.req.Prices[pageNo]
		switch {
		case price == "":
			// keep the printed prices
		case !s.PriceRedaction.Complete():
			e.opt.logf("page %d: no price region configured, price %q not shown", pageNo, price)
		default:
			drawPriceBadge(c, s.PriceRedaction, price, e.style, e.regular, e.bold)
		}
	}

	if conf := p.Conference(); conf != nil {
		text := e.req.Texts[pageNo]
		if text == "" && conf.DefaultText != nil {
			text = *conf.DefaultText
		}
		switch {
		case text == "":
		case conf.TextRedaction == nil:
			e.opt.logf("page %d: no text region configured, text not replaced", pageNo)
		default:
			drawConferenceText(c, *conf.TextRedaction, text, e.style, e.regular)
		}
	}

	drawHighlights(c, highlight.ForOverview(pageNo, e.selected, e.cfg))
	if c.Err != nil {
		return nil, fmt.Errorf("page %d: %w", pageNo, c.Err)
	}
	return c, nil
}

func (e *exporter) writeSummary(rows []SummaryRow) error {
	dims := e.cfg.SummaryDimensions()

	c := newCanvas(e.rm)
	drawSummary(c, rows, dims, e.style, e.regular, e.bold)
	if c.Err != nil {
		return fmt.Errorf("summary page: %w", c.Err)
	}
	contentRef, err := e.writeContent(c.buf.Bytes())
	if err != nil {
		return err
	}

	return e.tree.AppendPage(pdf.Dict{
		"Type": pdf.Name("Page"),
		"MediaBox": pdf.Array{
			pdf.Integer(0), pdf.Integer(0),
			pdf.Number(dims.Width), pdf.Number(dims.Height),
		},
		"Resources": pdf.AsDict(c.Resources),
		"Contents":  contentRef,
	})
}

// annotations returns the annotations of a template page which can be
// carried over to the proposal.  Links to destinations inside the template
// are dropped, since the target pages may be missing from the output.
func (e *exporter) annotations(obj pdf.Object) (pdf.Array, error) {
	annots, err := pdf.GetArray(e.r, obj)
	if err != nil {
		return nil, err
	}
	var res pdf.Array
	for _, a := range annots {
		if a == nil {
			continue
		}
		dict, err := pdf.GetDict(e.r, a)
		if err != nil {
			return nil, err
		}
		subtype, _ := pdf.GetName(e.r, dict["Subtype"])
		if subtype == "Link" && !e.isURIAction(dict["A"]) {
			continue
		}
		res = append(res, a)
	}
	return res, nil
}

func (e *exporter) isURIAction(obj pdf.Object) bool {
	action, err := pdf.GetDict(e.r, obj)
	if err != nil || action == nil {
		return false
	}
	s, _ := pdf.GetName(e.r, action["S"])
	return s == "URI"
}

func (e *exporter) isolation() (push, pop pdf.Reference, err error) {
	if e.push == 0 {
		e.push, err = e.writeContent([]byte("q\n"))
		if err != nil {
			return 0, 0, err
		}
		e.pop, err = e.writeContent([]byte("Q\n"))
		if err != nil {
			return 0, 0, err
		}
	}
	return e.push, e.pop, nil
}

func (e *exporter) writeContent(body []byte) (pdf.Reference, error) {
	ref := e.w.Alloc()
	var stm io.WriteCloser
	var err error
	if e.opt.HumanReadable {
		stm, err = e.w.OpenStream(ref, nil)
	} else {
		stm, err = e.w.OpenStream(ref, nil, &pdf.FilterCompress{})
	}
	if err != nil {
		return 0, err
	}
	_, err = stm.Write(body)
	if err != nil {
		return 0, err
	}
	err = stm.Close()
	if err != nil {
		return 0, err
	}
	return ref, nil
}

// contentParts returns the content streams of a page, as an array of
// objects in the template file.
func contentParts(r pdf.Getter, obj pdf.Object) (pdf.Array, error) {
	switch obj := obj.(type) {
	case nil:
		return nil, nil
	case pdf.Array:
		return obj, nil
	case pdf.Reference:
		resolved, err := pdf.Resolve(r, obj)
		if err != nil {
			return nil, err
		}
		if arr, ok := resolved.(pdf.Array); ok {
			return arr, nil
		}
		return pdf.Array{obj}, nil
	default:
		return nil, fmt.Errorf("unexpected page contents of type %T", obj)
	}
}

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

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"slices"
	"strconv"

	"seehuhn.de/go/pdf"

	"seehuhn.de/go/proposal/extract"
	"seehuhn.de/go/proposal/geometry"
	"seehuhn.de/go/proposal/template"
)

func cmdTag(ctx context.Context, a *app, args []string) error {
	fs := lookup("tag").flags()
	label := fs.String("label", "", "set the page label")
	args, err := parse(fs, args, 3)
	if err != nil {
		return err
	}

	cfg, err := a.load(ctx, args[0])
	if err != nil {
		return err
	}
	pageNo, err := parsePageNo(args[1], len(cfg.Pages))
	if err != nil {
		return err
	}
	t, err := template.ParsePageType(args[2])
	if err != nil {
		return err
	}

	cfg, err = cfg.ChangePageType(pageNo-1, t)
	if err != nil {
		return err
	}
	if isSet(fs, "label") {
		cfg, err = cfg.SetLabel(pageNo-1, *label)
		if err != nil {
			return err
		}
	}
	return a.save(ctx, cfg)
}

func cmdSuite(ctx context.Context, a *app, args []string) error {
	fs := lookup("suite").flags()
	desks := fs.Int("desks", 0, "number of desks, negative to clear")
	rented := fs.Bool("rented", false, "mark the suite as rented")
	listPrice := fs.String("list", "", "list price, empty to clear")
	foundingPrice := fs.String("founding", "", "founding member price, empty to clear")
	overview := fs.Int("floorplan", 0, "page number of the floor plan, 0 to clear")
	args, err := parse(fs, args, 2)
	if err != nil {
		return err
	}

	cfg, err := a.load(ctx, args[0])
	if err != nil {
		return err
	}
	pageNo, err := parsePageNo(args[1], len(cfg.Pages))
	if err != nil {
		return err
	}
	idx := pageNo - 1

	cfg, err = cfg.UpdateSuite(idx, func(s *template.Suite) {
		if isSet(fs, "desks") {
			if *desks < 0 {
				s.DeskCount = nil
			} else {
				n := *desks
				s.DeskCount = &n
			}
		}
		if isSet(fs, "rented") {
			s.Rented = *rented
		}
		if isSet(fs, "list") {
			s.ListPrice = template.FormatDollar(*listPrice)
		}
		if isSet(fs, "founding") {
			s.FoundingMemberPrice = template.FormatDollar(*foundingPrice)
		}
	})
	if err != nil {
		return err
	}

	if isSet(fs, "floorplan") {
		cfg, err = cfg.SetOverviewForSuite(idx, *overview-1)
		if err != nil {
			return err
		}
	}
	return a.save(ctx, cfg)
}

func cmdConference(ctx context.Context, a *app, args []string) error {
	fs := lookup("conference").flags()
	text := fs.String("text", "", "default replacement text, empty to clear")
	args, err := parse(fs, args, 2)
	if err != nil {
		return err
	}

	cfg, err := a.load(ctx, args[0])
	if err != nil {
		return err
	}
	pageNo, err := parsePageNo(args[1], len(cfg.Pages))
	if err != nil {
		return err
	}

	cfg, err = cfg.UpdateConference(pageNo-1, func(c *template.Conference) {
		if !isSet(fs, "text") {
			return
		}
		if *text == "" {
			c.DefaultText = nil
		} else {
			t := *text
			c.DefaultText = &t
		}
	})
	if err != nil {
		return err
	}
	return a.save(ctx, cfg)
}

func cmdLink(ctx context.Context, a *app, args []string) error {
	fs := lookup("link").flags()
	args, err := parse(fs, args, 3)
	if err != nil {
		return err
	}

	cfg, err := a.load(ctx, args[0])
	if err != nil {
		return err
	}
	overviewNo, err := parsePageNo(args[1], len(cfg.Pages))
	if err != nil {
		return err
	}
	suiteNo, err := parsePageNo(args[2], len(cfg.Pages))
	if err != nil {
		return err
	}

	cfg, err = cfg.ToggleSuiteLink(overviewNo-1, suiteNo-1)
	if err != nil {
		return err
	}
	if err := a.save(ctx, cfg); err != nil {
		return err
	}

	verb := "unlinked"
	if slices.Contains(cfg.Pages[overviewNo-1].Overview().SuitePageIndices, suiteNo-1) {
		verb = "linked"
	}
	fmt.Fprintf(a.stdout, "page %d %s to floor plan on page %d\n", suiteNo, verb, overviewNo)
	return nil
}

// regionKinds lists the regions which can be set using the rect command.
var regionKinds = []string{"highlight", "list", "founding", "text"}

func cmdRect(ctx context.Context, a *app, args []string) error {
	fs := lookup("rect").flags()
	display := fs.Bool("display", false, "coordinates have their origin in the top-left corner")
	clearRegion := fs.Bool("clear", false, "remove the region instead of setting it")
	del := fs.Int("delete", 0, "remove the `n`th highlight region")
	noFill := fs.Bool("no-fill", false, "do not fill in prices or texts from the template")
	if err := fs.Parse(args); err != nil {
		return err
	}
	args = fs.Args()

	needCoords := !*clearRegion && *del == 0
	if len(args) < 3 || needCoords && len(args) < 7 {
		fs.Usage()
		return errors.New("rect: missing arguments")
	}

	cfg, err := a.load(ctx, args[0])
	if err != nil {
		return err
	}
	pageNo, err := parsePageNo(args[1], len(cfg.Pages))
	if err != nil {
		return err
	}
	idx := pageNo - 1
	kind := args[2]
	if !slices.Contains(regionKinds, kind) {
		return fmt.Errorf("unknown region kind %q, expected one of %v", kind, regionKinds)
	}

	var r *geometry.Rect
	if needCoords {
		rect, err := a.regionArgs(cfg, args[3:7], *display)
		if err != nil {
			return err
		}
		r = &rect
	}

	switch kind {
	case "highlight":
		switch {
		case *del > 0:
			cfg, err = cfg.DeleteHighlightRect(idx, *del-1)
		case r != nil:
			cfg, err = cfg.AddHighlightRect(idx, *r)
		default:
			cfg, err = cfg.UpdateSuite(idx, func(s *template.Suite) {
				s.HighlightRects = []geometry.Rect{}
			})
		}
	case "list":
		cfg, err = cfg.SetPriceRect(idx, template.ListPriceField, r)
	case "founding":
		cfg, err = cfg.SetPriceRect(idx, template.FoundingPriceField, r)
	case "text":
		cfg, err = cfg.SetTextRedaction(idx, r)
	}
	if err != nil {
		return err
	}

	if r != nil && kind != "highlight" && !*noFill {
		cfg, err = a.fillFromTemplate(ctx, cfg, idx, kind, *r)
		if err != nil {
			return err
		}
	}
	return a.save(ctx, cfg)
}

// regionArgs parses the coordinates of a region.  Display coordinates are
// converted into PDF coordinates and rounded to whole units.
func (a *app) regionArgs(cfg *template.Config, args []string, display bool) (geometry.Rect, error) {
	r, err := parseRect(args)
	if err != nil {
		return geometry.Rect{}, err
	}
	if display {
		r = geometry.DisplayToPDFRounded(r, cfg.PageDimensions.Height)
	}
	if !geometry.Drawable(r) {
		return geometry.Rect{}, fmt.Errorf("region %gx%g is too small", r.Width, r.Height)
	}
	return r, nil
}

// fillFromTemplate reads the text inside a newly set price or text region
// and stores it as the corresponding value, unless a value is already
// present.
func (a *app) fillFromTemplate(ctx context.Context, cfg *template.Config, idx int, kind string, r geometry.Rect) (*template.Config, error) {
	p := &cfg.Pages[idx]
	switch kind {
	case "list":
		if s := p.Suite(); s == nil || s.ListPrice != nil {
			return cfg, nil
		}
	case "founding":
		if s := p.Suite(); s == nil || s.FoundingMemberPrice != nil {
			return cfg, nil
		}
	case "text":
		if c := p.Conference(); c == nil || c.DefaultText != nil {
			return cfg, nil
		}
	}

	data, err := a.templatePDF(ctx, cfg)
	if err != nil {
		a.logf("%v, values not filled in", err)
		return cfg, nil
	}
	doc, err := pdf.NewReader(bytes.NewReader(data), nil)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	if kind == "text" {
		text, err := extract.TextInRect(doc, idx, r)
		if err != nil || text == "" {
			return cfg, err
		}
		fmt.Fprintf(a.stdout, "default text: %s\n", text)
		return cfg.UpdateConference(idx, func(c *template.Conference) {
			c.DefaultText = &text
		})
	}

	raw, err := extract.PriceInRect(doc, idx, r)
	if err != nil {
		return nil, err
	}
	price := template.FormatDollar(raw)
	if price == nil {
		return cfg, nil
	}
	fmt.Fprintf(a.stdout, "%s price: %s\n", kind, *price)
	return cfg.UpdateSuite(idx, func(s *template.Suite) {
		if kind == "list" {
			s.ListPrice = price
		} else {
			s.FoundingMemberPrice = price
		}
	})
}

func cmdExtract(ctx context.Context, a *app, args []string) error {
	fs := lookup("extract").flags()
	display := fs.Bool("display", false, "coordinates have their origin in the top-left corner")
	price := fs.Bool("price", false, "only print the first run containing a dollar sign")
	args, err := parse(fs, args, 6)
	if err != nil {
		return err
	}

	cfg, err := a.load(ctx, args[0])
	if err != nil {
		return err
	}
	pageNo, err := parsePageNo(args[1], len(cfg.Pages))
	if err != nil {
		return err
	}
	r, err := a.regionArgs(cfg, args[2:6], *display)
	if err != nil {
		return err
	}

	data, err := a.templatePDF(ctx, cfg)
	if err != nil {
		return err
	}
	doc, err := pdf.NewReader(bytes.NewReader(data), nil)
	if err != nil {
		return err
	}
	defer doc.Close()

	var text string
	if *price {
		text, err = extract.PriceInRect(doc, pageNo-1, r)
	} else {
		text, err = extract.TextInRect(doc, pageNo-1, r)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, strconv.Quote(text))
	return nil
}

// isSet reports whether a flag was given on the command line.
func isSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

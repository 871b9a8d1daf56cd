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
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"golang.org/x/term"

	"seehuhn.de/go/proposal/compose"
	"seehuhn.de/go/proposal/preview"
	"seehuhn.de/go/proposal/selection"
	"seehuhn.de/go/proposal/template"
	"seehuhn.de/go/proposal/tools/internal/buildinfo"
)

func cmdSelect(ctx context.Context, a *app, args []string) error {
	fs := lookup("select").flags()
	minDesks := fs.Int("min", 0, "minimum number of desks")
	maxDesks := fs.Int("max", 0, "maximum number of desks (default: no limit)")
	withRented := fs.Bool("rented", false, "include rented suites")
	floor := fs.Int("floorplan", 0, "only use the floor plan on this page")
	args, err := parse(fs, args, 1)
	if err != nil {
		return err
	}

	cfg, err := a.load(ctx, args[0])
	if err != nil {
		return err
	}

	sel := selection.New()
	if len(args) > 1 {
		pages, err := parsePages(args[1:], len(cfg.Pages))
		if err != nil {
			return err
		}
		sel.Add(pages...)
	}

	crit := selection.DefaultCriteria()
	crit.ExcludeRented = !*withRented
	if isSet(fs, "min") {
		crit.MinDesks = minDesks
	}
	if isSet(fs, "max") {
		crit.MaxDesks = maxDesks
	}

	groups := selection.OverviewGroups(cfg)
	found := false
	for _, g := range groups {
		if *floor > 0 && g.Overview.Index+1 != *floor {
			continue
		}
		found = true
		added := selection.AutoSelect(sel, g, crit)
		if len(added) > 0 {
			a.logf("%s: added pages %s", g.Overview.Label, formatPages(added))
		}
	}
	if *floor > 0 && !found {
		return fmt.Errorf("page %d is not a floor plan with linked suites", *floor)
	}

	fmt.Fprintln(a.stdout, formatPages(sel.Sorted()))
	return nil
}

func cmdExport(ctx context.Context, a *app, args []string) error {
	fs := lookup("export").flags()
	out := fs.String("o", "", "output `file`, \"-\" for standard output")
	force := fs.Bool("f", false, "write PDF data to a terminal")
	human := fs.Bool("human", a.settings.Export.HumanReadable, "write uncompressed content streams")
	prices := pageValues{}
	texts := pageValues{}
	fs.Var(prices, "price", "price override as `page=value`, may be repeated")
	fs.Var(texts, "text", "conference text as `page=value`, may be repeated")
	args, err := parse(fs, args, 2)
	if err != nil {
		return err
	}

	cfg, err := a.load(ctx, args[0])
	if err != nil {
		return err
	}
	pages, err := parsePages(args[1:], len(cfg.Pages))
	if err != nil {
		return err
	}
	tmpl, err := a.templatePDF(ctx, cfg)
	if err != nil {
		return err
	}

	now := time.Now()
	req := &compose.Request{
		Pages:  pages,
		Prices: selection.PricedPages(selection.New(pages...), formatPrices(prices), cfg),
		Texts:  texts,
	}
	opt := &compose.Options{
		Logger:        a.logger,
		Title:         cfg.Name,
		Producer:      buildinfo.Producer(toolName),
		Date:          now,
		HumanReadable: *human,
	}
	data, err := compose.Export(ctx, tmpl, req, cfg, opt)
	if err != nil {
		return err
	}

	fname := *out
	if fname == "" {
		fname = filepath.Join(a.settings.Export.OutputDir, compose.FileName(now))
	}
	if fname == "-" {
		if !*force && term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("refusing to write PDF data to a terminal, use -f to override")
		}
		_, err = a.stdout.Write(data)
		return err
	}
	if err := os.WriteFile(fname, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%s: %d pages\n", fname, len(pages)+summaryPages(req, cfg))
	return nil
}

// formatPrices normalises price overrides which consist only of digits
// and separators.  Other values are used verbatim.
func formatPrices(prices pageValues) map[int]string {
	res := make(map[int]string, len(prices))
	for pageNo, price := range prices {
		if p := template.FormatDollar(price); p != nil && onlyNumber(price) {
			price = *p
		}
		res[pageNo] = price
	}
	return res
}

func onlyNumber(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c == '$' || c == ',' || c == ' ':
		default:
			return false
		}
	}
	return true
}

func summaryPages(req *compose.Request, cfg *template.Config) int {
	if len(compose.SummaryRows(req.Pages, req.Prices, cfg)) > 0 {
		return 1
	}
	return 0
}

func cmdPreview(ctx context.Context, a *app, args []string) error {
	fs := lookup("preview").flags()
	dir := fs.String("o", ".", "output `directory`")
	scale := fs.Float64("scale", a.settings.Preview.Scale, "pixels per PDF unit")
	prices := pageValues{}
	fs.Var(prices, "price", "price override as `page=value`, may be repeated")
	args, err := parse(fs, args, 2)
	if err != nil {
		return err
	}

	cfg, err := a.load(ctx, args[0])
	if err != nil {
		return err
	}
	pages, err := parsePages(args[1:], len(cfg.Pages))
	if err != nil {
		return err
	}
	tmpl, err := a.templatePDF(ctx, cfg)
	if err != nil {
		return err
	}

	req := &compose.Request{
		Pages:  pages,
		Prices: selection.PricedPages(selection.New(pages...), formatPrices(prices), cfg),
	}
	res, err := preview.Render(ctx, tmpl, req, cfg, &preview.Options{
		Scale:  *scale,
		Logger: a.logger,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		return err
	}
	for _, p := range res.Pages {
		fname := filepath.Join(*dir, fmt.Sprintf("page-%03d.png", p.PageNo))
		if err := writePNG(fname, p); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "%s: %d highlights\n", fname, len(p.Outlines))
	}

	if len(res.Summary) > 0 {
		fmt.Fprintln(a.stdout)
		writeSummary(a.stdout, res.Summary)
	}
	return nil
}

func writePNG(fname string, p *preview.Page) error {
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, p.Image); err != nil {
		return err
	}
	return os.WriteFile(fname, buf.Bytes(), 0o644)
}

func writeSummary(w io.Writer, rows []compose.SummaryRow) {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, compose.SummaryTitle)
	for _, row := range rows {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", row.Name, row.Price, row.Desks)
	}
	tw.Flush()
}

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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"seehuhn.de/go/proposal/compose"
	"seehuhn.de/go/proposal/storage"
	"seehuhn.de/go/proposal/template"
)

func cmdInit(ctx context.Context, a *app, args []string) error {
	fs := lookup("init").flags()
	name := fs.String("name", "", "template name (default: the file name)")
	args, err := parse(fs, args, 1)
	if err != nil {
		return err
	}

	fname := args[0]
	data, err := os.ReadFile(fname)
	if err != nil {
		return err
	}
	numPages, dims, err := compose.Inspect(data)
	if err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}
	if numPages == 0 {
		return fmt.Errorf("%s: no pages", fname)
	}

	if *name != "" {
		fname = *name
	}
	cfg, err := storage.Import(ctx, a.stores.Configs, a.stores.PDFs, fname, data, numPages, dims)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%s\t%s (%d pages, %gx%g)\n",
		cfg.ID, cfg.Name, len(cfg.Pages), dims.Width, dims.Height)
	return nil
}

func cmdList(ctx context.Context, a *app, args []string) error {
	fs := lookup("list").flags()
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}

	all, err := a.stores.Configs.List(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPAGES\tSUITES\tFLOOR PLANS")
	for _, cfg := range all {
		counts := make(map[template.PageType]int)
		for i := range cfg.Pages {
			counts[cfg.Pages[i].Type()]++
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n", cfg.ID, cfg.Name, len(cfg.Pages),
			counts[template.TypeSuite], counts[template.TypeOverview])
	}
	return tw.Flush()
}

func cmdShow(ctx context.Context, a *app, args []string) error {
	fs := lookup("show").flags()
	asYAML := fs.Bool("yaml", false, "print YAML instead of JSON")
	args, err := parse(fs, args, 1)
	if err != nil {
		return err
	}

	cfg, err := a.load(ctx, args[0])
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if *asYAML {
		data, err = jsonToYAML(data)
		if err != nil {
			return err
		}
	} else {
		data = append(data, '\n')
	}
	_, err = a.stdout.Write(data)
	return err
}

// jsonToYAML converts JSON data into block-style YAML.  Keys keep the
// names used by the JSON encoding.
func jsonToYAML(data []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	blockStyle(&node)
	return yaml.Marshal(&node)
}

func blockStyle(n *yaml.Node) {
	n.Style &^= yaml.FlowStyle
	if n.Kind == yaml.ScalarNode && n.Style&yaml.DoubleQuotedStyle != 0 && n.Tag == "!!str" {
		n.Style &^= yaml.DoubleQuotedStyle
	}
	for _, child := range n.Content {
		blockStyle(child)
	}
}

func cmdDelete(ctx context.Context, a *app, args []string) error {
	fs := lookup("delete").flags()
	args, err := parse(fs, args, 1)
	if err != nil {
		return err
	}

	err = storage.Remove(ctx, a.stores.Configs, a.stores.PDFs, args[0])
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no template with id %q", args[0])
	}
	return err
}

func cmdSeed(ctx context.Context, a *app, args []string) error {
	fs := lookup("seed").flags()
	pdfFile := fs.String("pdf", "", "store `file` as the PDF of the example template")
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}

	var data []byte
	if *pdfFile != "" {
		var err error
		data, err = os.ReadFile(*pdfFile)
		if err != nil {
			return err
		}
		numPages, _, err := compose.Inspect(data)
		if err != nil {
			return fmt.Errorf("%s: %w", *pdfFile, err)
		}
		if want := len(template.Example().Pages); numPages != want {
			return fmt.Errorf("%s: has %d pages, the example template needs %d",
				*pdfFile, numPages, want)
		}
	}

	added, err := storage.Seed(ctx, a.stores.Configs, a.stores.PDFs, data)
	if err != nil {
		return err
	}
	if added {
		fmt.Fprintf(a.stdout, "added %q\n", template.Example().Name)
	} else {
		fmt.Fprintln(a.stdout, "store is not empty, nothing added")
	}
	return nil
}

func cmdSettings(ctx context.Context, a *app, args []string) error {
	fs := lookup("settings").flags()
	write := fs.Bool("write", false, "write the settings file")
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}

	if err := a.settings.Validate(); err != nil {
		return err
	}
	if *write {
		if err := a.settings.Save(a.settingsFile); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "settings written to %s\n", a.settingsFile)
		return nil
	}

	data, err := yaml.Marshal(a.settings)
	if err != nil {
		return err
	}
	_, err = a.stdout.Write(data)
	return err
}

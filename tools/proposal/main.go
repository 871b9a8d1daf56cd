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

// Proposal manages proposal templates and assembles proposals from them.
//
// A template is a PDF brochure together with a configuration which
// describes the pages: suite pages with prices and floor plan highlights,
// floor plan pages, and conference pages with a replaceable text.
// Proposals are assembled by selecting pages of a template, optionally
// overriding prices and texts.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"seehuhn.de/go/proposal/storage"
	"seehuhn.de/go/proposal/template"
	"seehuhn.de/go/proposal/tools/internal/buildinfo"
	"seehuhn.de/go/proposal/tools/internal/profile"
	"seehuhn.de/go/proposal/tools/internal/settings"
)

const toolName = "proposal"

type command struct {
	name  string
	args  string
	help  string
	local bool // does not need the template store
	run   func(ctx context.Context, a *app, args []string) error
}

// commands is set in init, to avoid an initialization cycle.
var commands []*command

func init() {
	commands = []*command{
		{name: "init", args: "file.pdf", help: "import a template PDF", run: cmdInit},
		{name: "list", help: "list the stored templates", run: cmdList},
		{name: "show", args: "id", help: "print a template configuration", run: cmdShow},
		{name: "delete", args: "id", help: "delete a template", run: cmdDelete},
		{name: "seed", help: "store the example template if the store is empty", run: cmdSeed},
		{name: "tag", args: "id page type", help: "set the type and label of a page", run: cmdTag},
		{name: "suite", args: "id page", help: "edit the settings of a suite page", run: cmdSuite},
		{name: "conference", args: "id page", help: "edit the settings of a conference page", run: cmdConference},
		{name: "link", args: "id floorplan suite", help: "link or unlink a suite and a floor plan", run: cmdLink},
		{name: "rect", args: "id page kind x y w h", help: "set a highlight, price or text region", run: cmdRect},
		{name: "extract", args: "id page x y w h", help: "print the text inside a region", run: cmdExtract},
		{name: "select", args: "id [pages]", help: "select floor plans and matching suites", run: cmdSelect},
		{name: "export", args: "id pages", help: "write a proposal PDF", run: cmdExport},
		{name: "preview", args: "id pages", help: "render a proposal to PNG images", run: cmdPreview},
		{name: "settings", help: "print or save the settings", local: true, run: cmdSettings},
	}
}

func main() {
	settingsFile := flag.String("settings", settings.DefaultPath(), "read settings from `file`")
	verbose := flag.Bool("v", false, "report skipped redactions")
	cpuprofile := flag.String("cpuprofile", "", "write CPU profile to `file`")
	memprofile := flag.String("memprofile", "", "write memory profile to `file`")
	flag.Usage = usage
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix(toolName + ": ")

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	stop, err := profile.Start(*cpuprofile, *memprofile)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, *settingsFile, *verbose, flag.Args())
	cancel()
	if err2 := stop(); err == nil {
		err = err2
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, buildinfo.Short(toolName))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Usage: %s [options] command [arguments]\n", toolName)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(out, "  %-11s %s\n", c.name, c.help)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Options:")
	flag.PrintDefaults()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Run \"%s command -h\" for the options of a command.\n", toolName)
}

// app holds the state shared by all commands.
type app struct {
	settingsFile string
	settings     *settings.Settings
	stores       *settings.Stores
	logger       *log.Logger
	stdout       io.Writer
}

func run(ctx context.Context, settingsFile string, verbose bool, args []string) error {
	var cmd *command
	for _, c := range commands {
		if c.name == args[0] {
			cmd = c
			break
		}
	}
	if cmd == nil {
		return fmt.Errorf("unknown command %q", args[0])
	}

	s, err := settings.LoadOrDefault(settingsFile)
	if err != nil {
		return err
	}

	a := &app{
		settingsFile: settingsFile,
		settings:     s,
		stdout:       os.Stdout,
	}
	if verbose {
		a.logger = log.New(os.Stderr, toolName+": ", 0)
	}

	if !cmd.local {
		a.stores, err = s.Open(ctx)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer a.stores.Close()
	}

	return cmd.run(ctx, a, args[1:])
}

// flags returns the flag set for a command.
func (c *command) flags() *flag.FlagSet {
	fs := flag.NewFlagSet(c.name, flag.ExitOnError)
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage: %s %s [options] %s\n\n%s.\n", toolName, c.name, c.args, c.help)
		hasFlags := false
		fs.VisitAll(func(*flag.Flag) { hasFlags = true })
		if hasFlags {
			fmt.Fprintln(out)
			fs.PrintDefaults()
		}
	}
	return fs
}

func lookup(name string) *command {
	for _, c := range commands {
		if c.name == name {
			return c
		}
	}
	panic("unknown command " + name)
}

// parse parses the flags of a command and checks that at least minArgs
// positional arguments remain.
func parse(fs *flag.FlagSet, args []string, minArgs int) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < minArgs {
		fs.Usage()
		return nil, fmt.Errorf("%s: missing arguments", fs.Name())
	}
	return fs.Args(), nil
}

// load reads a template configuration from the store.
func (a *app) load(ctx context.Context, id string) (*template.Config, error) {
	cfg, err := a.stores.Configs.Load(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("no template with id %q", id)
	} else if err != nil {
		return nil, err
	}
	return cfg, nil
}

// save writes a modified configuration back to the store.
func (a *app) save(ctx context.Context, cfg *template.Config) error {
	return a.stores.Configs.Save(ctx, cfg)
}

// templatePDF loads the PDF file of a template.
func (a *app) templatePDF(ctx context.Context, cfg *template.Config) ([]byte, error) {
	data, err := a.stores.PDFs.Load(ctx, cfg.PDFStorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("template %q: PDF file is missing", cfg.Name)
	}
	return data, err
}

func (a *app) logf(format string, args ...any) {
	if a.logger != nil {
		a.logger.Printf(format, args...)
	}
}

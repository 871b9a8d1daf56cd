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

// Package storagetest contains tests which every storage backend must
// pass.
package storagetest

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/proposal/storage"
	"seehuhn.de/go/proposal/template"
)

// ConfigStore checks the behaviour of an empty configuration store.
func ConfigStore(t *testing.T, s storage.ConfigStore) {
	t.Helper()
	ctx := context.Background()

	all, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Fatalf("new store has %d entries", len(all))
	}

	_, err = s.Load(ctx, "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("loading missing config: got %v, want ErrNotFound", err)
	}

	example := template.Example()
	blank := template.CreateBlank("b-id", "Another Building", 3, template.DefaultDimensions)
	for _, cfg := range []*template.Config{blank, example} {
		if err := s.Save(ctx, cfg); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.Load(ctx, example.ID)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(example, got); d != "" {
		t.Errorf("round trip (-want +got):\n%s", d)
	}

	// saving again replaces the entry
	renamed, err := blank.SetLabel(0, "Cover")
	if err != nil {
		t.Fatal(err)
	}
	renamed.Name = "A Building"
	if err := s.Save(ctx, renamed); err != nil {
		t.Fatal(err)
	}

	all, err = s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, cfg := range all {
		names = append(names, cfg.Name)
	}
	if d := cmp.Diff([]string{"123 Main St", "A Building"}, names); d != "" {
		t.Errorf("list (-want +got):\n%s", d)
	}
	if all[1].Pages[0].Label != "Cover" {
		t.Errorf("update was not stored")
	}

	if err := s.Delete(ctx, blank.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, blank.ID); err != nil {
		t.Errorf("deleting twice: %v", err)
	}
	_, err = s.Load(ctx, blank.ID)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("loading deleted config: got %v, want ErrNotFound", err)
	}
}

// BinaryStore checks the behaviour of an empty binary store.
func BinaryStore(t *testing.T, s storage.BinaryStore) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Load(ctx, "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("loading missing entry: got %v, want ErrNotFound", err)
	}

	data := []byte("%PDF-1.7\n\x00\xff binary data")
	if err := s.Save(ctx, "key", data); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load(ctx, "key")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("got %q, want %q", got, data)
	}

	data = []byte("replaced")
	if err := s.Save(ctx, "key", data); err != nil {
		t.Fatal(err)
	}
	got, err = s.Load(ctx, "key")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("got %q, want %q", got, data)
	}

	if err := s.Delete(ctx, "key"); err != nil {
		t.Fatal(err)
	}
	_, err = s.Load(ctx, "key")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("loading deleted entry: got %v, want ErrNotFound", err)
	}
}

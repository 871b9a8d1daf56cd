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

// Package dirstore keeps templates in a local directory.
//
// Configurations are stored as JSON files in the "configs" subdirectory,
// template PDF files in the "pdfs" subdirectory.
package dirstore

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"seehuhn.de/go/proposal/storage"
	"seehuhn.de/go/proposal/template"
)

// Dir is a storage directory.
type Dir struct {
	root string
}

// Open returns the storage directory at root, creating it if needed.
func Open(root string) (*Dir, error) {
	for _, sub := range []string{"configs", "pdfs"} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}
	return &Dir{root: root}, nil
}

// Configs returns the configuration store of the directory.
func (d *Dir) Configs() *ConfigStore {
	return &ConfigStore{dir: filepath.Join(d.root, "configs")}
}

// PDFs returns the PDF store of the directory.
func (d *Dir) PDFs() *PDFStore {
	return &PDFStore{dir: filepath.Join(d.root, "pdfs")}
}

// ConfigStore implements [storage.ConfigStore].
type ConfigStore struct {
	dir string
}

// List implements the [storage.ConfigStore] interface.
func (s *ConfigStore) List(ctx context.Context) ([]*template.Config, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var res []*template.Config
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id, ok := strings.CutSuffix(e.Name(), ".json")
		if !ok || e.IsDir() {
			continue
		}
		cfg, err := s.Load(ctx, id)
		if err != nil {
			return nil, err
		}
		res = append(res, cfg)
	}
	slices.SortFunc(res, func(a, b *template.Config) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return res, nil
}

// Load implements the [storage.ConfigStore] interface.
func (s *ConfigStore) Load(ctx context.Context, id string) (*template.Config, error) {
	fname, err := fileName(s.dir, id, ".json")
	if err != nil {
		return nil, err
	}
	data, err := readFile(fname)
	if err != nil {
		return nil, err
	}
	cfg, _, err := template.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("config %q: %w", id, err)
	}
	return cfg, nil
}

// Save implements the [storage.ConfigStore] interface.
func (s *ConfigStore) Save(ctx context.Context, cfg *template.Config) error {
	fname, err := fileName(s.dir, cfg.ID, ".json")
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(fname, data)
}

// Delete implements the [storage.ConfigStore] interface.
func (s *ConfigStore) Delete(ctx context.Context, id string) error {
	fname, err := fileName(s.dir, id, ".json")
	if err != nil {
		return err
	}
	return removeFile(fname)
}

// PDFStore implements [storage.BinaryStore].
type PDFStore struct {
	dir string
}

// Save implements the [storage.BinaryStore] interface.
func (s *PDFStore) Save(ctx context.Context, key string, data []byte) error {
	fname, err := fileName(s.dir, key, ".pdf")
	if err != nil {
		return err
	}
	return writeFile(fname, data)
}

// Load implements the [storage.BinaryStore] interface.
func (s *PDFStore) Load(ctx context.Context, key string) ([]byte, error) {
	fname, err := fileName(s.dir, key, ".pdf")
	if err != nil {
		return nil, err
	}
	return readFile(fname)
}

// Delete implements the [storage.BinaryStore] interface.
func (s *PDFStore) Delete(ctx context.Context, key string) error {
	fname, err := fileName(s.dir, key, ".pdf")
	if err != nil {
		return err
	}
	return removeFile(fname)
}

// fileName returns the file used for the given key.  Keys which could
// refer to a file outside dir are rejected.
func fileName(dir, key, ext string) (string, error) {
	if key == "" || !filepath.IsLocal(key) || filepath.Base(key) != key {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(dir, key+ext), nil
}

func readFile(fname string) ([]byte, error) {
	data, err := os.ReadFile(fname)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrNotFound
	}
	return data, err
}

// writeFile replaces the contents of fname.  Readers never see a
// partially written file.
func writeFile(fname string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(fname), ".tmp-*")
	if err != nil {
		return err
	}
	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Close()
	} else {
		tmp.Close()
	}
	if err == nil {
		err = os.Rename(tmp.Name(), fname)
	}
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

func removeFile(fname string) error {
	err := os.Remove(fname)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

var (
	_ storage.ConfigStore = (*ConfigStore)(nil)
	_ storage.BinaryStore = (*PDFStore)(nil)
)

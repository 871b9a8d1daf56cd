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

// Package storage defines where template configurations and template PDF
// files are kept.
//
// The packages below this one implement the interfaces for different
// backends: a local directory, an SQL database, and MongoDB.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"seehuhn.de/go/proposal/template"
)

// ErrNotFound is returned when loading an entry which does not exist.
var ErrNotFound = errors.New("not found")

// ConfigStore keeps template configurations, indexed by their ID.
type ConfigStore interface {
	// List returns all stored configurations, ordered by name.
	List(ctx context.Context) ([]*template.Config, error)

	// Load returns the configuration with the given ID.
	// If there is no such configuration, ErrNotFound is returned.
	Load(ctx context.Context, id string) (*template.Config, error)

	// Save stores a configuration, replacing any previous configuration
	// with the same ID.
	Save(ctx context.Context, cfg *template.Config) error

	// Delete removes a configuration.  Deleting a missing configuration
	// is not an error.
	Delete(ctx context.Context, id string) error
}

// BinaryStore keeps template PDF files, indexed by storage key.
type BinaryStore interface {
	Save(ctx context.Context, key string, data []byte) error

	// Load returns the data stored under key.
	// If there is no such entry, ErrNotFound is returned.
	Load(ctx context.Context, key string) ([]byte, error)

	Delete(ctx context.Context, key string) error
}

// NewID returns a new, random template ID.
func NewID() string {
	return uuid.NewString()
}

// Seed stores the example configuration if the store is empty.
// If pdfData is not nil, it is stored as the template PDF of the example.
// The return value indicates whether the example was added.
func Seed(ctx context.Context, configs ConfigStore, pdfs BinaryStore, pdfData []byte) (bool, error) {
	all, err := configs.List(ctx)
	if err != nil {
		return false, err
	}
	if len(all) > 0 {
		return false, nil
	}

	cfg := template.Example()
	if pdfData != nil {
		err = pdfs.Save(ctx, cfg.PDFStorageKey, pdfData)
		if err != nil {
			return false, fmt.Errorf("store example PDF: %w", err)
		}
	}
	err = configs.Save(ctx, cfg)
	if err != nil {
		return false, err
	}
	return true, nil
}

// Import stores a newly uploaded template PDF together with a blank
// configuration for it.  The name of the template is derived from
// fileName.
func Import(ctx context.Context, configs ConfigStore, pdfs BinaryStore, fileName string, pdfData []byte, pageCount int, dims template.Dimensions) (*template.Config, error) {
	id := NewID()
	err := pdfs.Save(ctx, id, pdfData)
	if err != nil {
		return nil, err
	}

	cfg := template.CreateBlank(id, TemplateName(fileName), pageCount, dims)
	err = configs.Save(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// TemplateName returns the base name of a file, without a ".pdf"
// extension.
func TemplateName(fileName string) string {
	name := filepath.Base(fileName)
	if ext := filepath.Ext(name); strings.EqualFold(ext, ".pdf") {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

// Remove deletes a template configuration together with its PDF file.
// The PDF of the example template is kept.
func Remove(ctx context.Context, configs ConfigStore, pdfs BinaryStore, id string) error {
	cfg, err := configs.Load(ctx, id)
	if err != nil {
		return err
	}
	err = configs.Delete(ctx, id)
	if err != nil {
		return err
	}
	if cfg.ID == template.Example().ID || cfg.PDFStorageKey == "" {
		return nil
	}
	return pdfs.Delete(ctx, cfg.PDFStorageKey)
}

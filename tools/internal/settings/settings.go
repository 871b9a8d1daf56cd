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

// Package settings reads and writes the settings file of the proposal
// tool.
package settings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"seehuhn.de/go/proposal/storage"
	"seehuhn.de/go/proposal/storage/dirstore"
	"seehuhn.de/go/proposal/storage/mongostore"
	"seehuhn.de/go/proposal/storage/sqlstore"
)

// Settings is the root of the settings file.
type Settings struct {
	Storage Storage `yaml:"storage"`
	Preview Preview `yaml:"preview"`
	Export  Export  `yaml:"export"`
}

// Storage selects the backend for templates and their PDF files.
type Storage struct {
	// Driver is one of "dir", "sqlite", "postgres", "mysql" or "mongo".
	Driver string `yaml:"driver"`

	// Dir is the storage directory for the "dir" driver.
	Dir string `yaml:"dir,omitempty"`

	// Path is the database file for the "sqlite" driver.
	Path string `yaml:"path,omitempty"`

	// Server settings for the "postgres" and "mysql" drivers.
	Host     string `yaml:"host,omitempty"`
	Port     int    `yaml:"port,omitempty"`
	User     string `yaml:"user,omitempty"`
	Password string `yaml:"password,omitempty"`
	Database string `yaml:"database,omitempty"`
	SSLMode  string `yaml:"ssl_mode,omitempty"`

	// URI is the connection string for the "mongo" driver.
	URI string `yaml:"uri,omitempty"`
}

// Preview holds the settings for raster previews.
type Preview struct {
	Scale float64 `yaml:"scale"`
}

// Export holds the settings for exported proposals.
type Export struct {
	OutputDir     string `yaml:"output_dir"`
	HumanReadable bool   `yaml:"human_readable"`
}

// PasswordEnv names the environment variable which, if set, overrides the
// database password from the settings file.
const PasswordEnv = "PROPOSAL_DB_PASSWORD"

// DataDir returns the directory where local data is kept by default.
func DataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "proposal-data"
	}
	return filepath.Join(base, "proposal")
}

// DefaultPath returns the default location of the settings file.
func DefaultPath() string {
	return filepath.Join(DataDir(), "settings.yaml")
}

// Default returns the default settings.
func Default() *Settings {
	dataDir := DataDir()
	return &Settings{
		Storage: Storage{
			Driver: "sqlite",
			Path:   filepath.Join(dataDir, "proposals.db"),
			Dir:    filepath.Join(dataDir, "templates"),
		},
		Preview: Preview{
			Scale: 1.5,
		},
		Export: Export{
			OutputDir: ".",
		},
	}
}

// Load loads the settings from a file.  Fields missing from the file keep
// their default values.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadOrDefault loads the settings from path, or returns the default
// settings if the file does not exist.
func LoadOrDefault(path string) (*Settings, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Save writes the settings to a file.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// Validate checks that the settings are complete.
func (s *Settings) Validate() error {
	st := &s.Storage
	switch st.Driver {
	case "dir":
		if st.Dir == "" {
			return errors.New("storage: missing dir")
		}
	case "sqlite":
		if st.Path == "" {
			return errors.New("storage: missing path")
		}
	case "postgres", "mysql":
		if st.Host == "" || st.Database == "" {
			return fmt.Errorf("storage: %s needs host and database", st.Driver)
		}
	case "mongo":
		if st.URI == "" {
			return errors.New("storage: missing uri")
		}
	default:
		return fmt.Errorf("storage: unknown driver %q", st.Driver)
	}
	if s.Preview.Scale <= 0 {
		return fmt.Errorf("preview: invalid scale %g", s.Preview.Scale)
	}
	return nil
}

func (st *Storage) password() string {
	if pw, ok := os.LookupEnv(PasswordEnv); ok {
		return pw
	}
	return st.Password
}

// Stores gives access to the configured storage backend.
type Stores struct {
	Configs storage.ConfigStore
	PDFs    storage.BinaryStore

	closer io.Closer
}

// Close releases the resources held by the backend.
func (s *Stores) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Open connects to the storage backend.
func (s *Settings) Open(ctx context.Context) (*Stores, error) {
	st := &s.Storage
	switch st.Driver {
	case "dir":
		d, err := dirstore.Open(st.Dir)
		if err != nil {
			return nil, err
		}
		return &Stores{Configs: d.Configs(), PDFs: d.PDFs()}, nil

	case "sqlite", "postgres", "mysql":
		var db *sqlstore.DB
		var err error
		switch st.Driver {
		case "sqlite":
			db, err = sqlstore.OpenSQLite(ctx, st.Path)
		case "postgres":
			dsn := sqlstore.PostgresDSN(st.Host, st.Port, st.User, st.password(), st.Database, st.SSLMode)
			db, err = sqlstore.Open(ctx, sqlstore.Postgres, dsn)
		case "mysql":
			dsn := sqlstore.MySQLDSN(st.Host, st.Port, st.User, st.password(), st.Database)
			db, err = sqlstore.Open(ctx, sqlstore.MySQL, dsn)
		}
		if err != nil {
			return nil, err
		}
		return &Stores{Configs: db.Configs(), PDFs: db.PDFs(), closer: db}, nil

	case "mongo":
		db, err := mongostore.Connect(ctx, st.URI, st.Database)
		if err != nil {
			return nil, err
		}
		return &Stores{Configs: db.Configs(), PDFs: db.PDFs(), closer: db}, nil
	}
	return nil, fmt.Errorf("storage: unknown driver %q", st.Driver)
}

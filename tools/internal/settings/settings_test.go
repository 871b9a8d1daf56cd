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

package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "settings.yaml")

	s := Default()
	s.Storage.Driver = "postgres"
	s.Storage.Host = "db.example.com"
	s.Storage.Database = "proposals"
	s.Preview.Scale = 2
	if err := s.Save(path); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(s, got); d != "" {
		t.Errorf("round trip (-want +got):\n%s", d)
	}
}

func TestPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	data := "storage:\n  driver: dir\n  dir: /srv/templates\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Storage.Driver = "dir"
	want.Storage.Dir = "/srv/templates"
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("settings (-want +got):\n%s", d)
	}
}

func TestLoadOrDefault(t *testing.T) {
	got, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(Default(), got); d != "" {
		t.Errorf("settings (-want +got):\n%s", d)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(s *Settings)
		ok     bool
	}{
		{"default", func(s *Settings) {}, true},
		{"unknown driver", func(s *Settings) { s.Storage.Driver = "oracle" }, false},
		{"mongo without uri", func(s *Settings) { s.Storage.Driver = "mongo" }, false},
		{"mysql without host", func(s *Settings) { s.Storage.Driver = "mysql" }, false},
		{"zero scale", func(s *Settings) { s.Preview.Scale = 0 }, false},
		{"empty dir", func(s *Settings) { s.Storage.Driver = "dir"; s.Storage.Dir = "" }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Default()
			tc.modify(s)
			err := s.Validate()
			if (err == nil) != tc.ok {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestOpenDir(t *testing.T) {
	s := Default()
	s.Storage.Driver = "dir"
	s.Storage.Dir = t.TempDir()

	stores, err := s.Open(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer stores.Close()

	all, err := stores.Configs.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Errorf("new store has %d entries", len(all))
	}
}

func TestPasswordOverride(t *testing.T) {
	st := &Storage{Password: "from-file"}
	t.Setenv(PasswordEnv, "from-env")
	if got := st.password(); got != "from-env" {
		t.Errorf("got %q, want from-env", got)
	}
}

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

// Package sqlstore keeps templates in an SQL database.
//
// Three database systems are supported: SQLite (via modernc.org/sqlite),
// PostgreSQL (via github.com/lib/pq) and MySQL (via
// github.com/go-sql-driver/mysql).
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"seehuhn.de/go/proposal/storage"
	"seehuhn.de/go/proposal/template"
)

// Dialect selects the SQL variant used for a database.
type Dialect int

// These are the supported database systems.
const (
	SQLite Dialect = iota
	Postgres
	MySQL
)

func (d Dialect) String() string {
	switch d {
	case SQLite:
		return "sqlite"
	case Postgres:
		return "postgres"
	case MySQL:
		return "mysql"
	default:
		return "Dialect(" + strconv.Itoa(int(d)) + ")"
	}
}

// ParseDialect converts a driver name to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql":
		return Postgres, nil
	case "mysql":
		return MySQL, nil
	default:
		return 0, fmt.Errorf("unknown database driver %q", name)
	}
}

// driverName returns the name under which the database/sql driver for
// the dialect is registered.
func (d Dialect) driverName() string {
	return d.String()
}

// DB is a database holding template configurations and PDF files.
type DB struct {
	conn    *sql.DB
	dialect Dialect
}

// OpenSQLite opens (or creates) the SQLite database file at path.
// The special path ":memory:" gives a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	return Open(ctx, SQLite, path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
}

// PostgresDSN builds a connection string for a PostgreSQL server.
// All values are quoted, so they may contain spaces, quotes and
// backslashes.
func PostgresDSN(host string, port int, user, password, dbName, sslMode string) string {
	if port == 0 {
		port = 5432
	}
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		pgQuote(host), port, pgQuote(user), pgQuote(password), pgQuote(dbName), pgQuote(sslMode))
}

var pgEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// pgQuote quotes a value for use in a key/value connection string.
func pgQuote(s string) string {
	return "'" + pgEscaper.Replace(s) + "'"
}

// MySQLDSN builds a connection string for a MySQL server.
func MySQLDSN(host string, port int, user, password, dbName string) string {
	if port == 0 {
		port = 3306
	}
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", host, port)
	cfg.DBName = dbName
	cfg.ParseTime = true
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

// Open connects to a database and creates the tables if needed.
func Open(ctx context.Context, dialect Dialect, dsn string) (*DB, error) {
	conn, err := sql.Open(dialect.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if dialect == SQLite {
		// SQLite only supports one writer at a time.
		conn.SetMaxOpenConns(1)
	}

	db := &DB{conn: conn, dialect: dialect}
	if err := db.migrate(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Configs returns the configuration store of the database.
func (db *DB) Configs() *ConfigStore {
	return &ConfigStore{db: db}
}

// PDFs returns the PDF store of the database.
func (db *DB) PDFs() *PDFStore {
	return &PDFStore{db: db}
}

func (db *DB) migrate(ctx context.Context) error {
	var migrations []string
	switch db.dialect {
	case SQLite:
		migrations = []string{
			`CREATE TABLE IF NOT EXISTS configs (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				data TEXT NOT NULL,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS pdfs (
				storage_key TEXT PRIMARY KEY,
				data BLOB NOT NULL,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX IF NOT EXISTS idx_configs_name ON configs(name)`,
		}
	case Postgres:
		migrations = []string{
			`CREATE TABLE IF NOT EXISTS configs (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				data TEXT NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
			`CREATE TABLE IF NOT EXISTS pdfs (
				storage_key TEXT PRIMARY KEY,
				data BYTEA NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
			`CREATE INDEX IF NOT EXISTS idx_configs_name ON configs(name)`,
		}
	case MySQL:
		migrations = []string{
			`CREATE TABLE IF NOT EXISTS configs (
				id VARCHAR(191) PRIMARY KEY,
				name TEXT NOT NULL,
				data LONGTEXT NOT NULL,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS pdfs (
				storage_key VARCHAR(191) PRIMARY KEY,
				data LONGBLOB NOT NULL,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
			// MySQL has no CREATE INDEX IF NOT EXISTS
			`CREATE INDEX idx_configs_name ON configs(name(191))`,
		}
	}
	for _, m := range migrations {
		if _, err := db.conn.ExecContext(ctx, m); err != nil {
			if isDuplicateKeyName(err) {
				continue
			}
			return fmt.Errorf("migration failed: %s: %w", firstLine(m), err)
		}
	}
	return nil
}

// isDuplicateKeyName reports whether err is the MySQL error for an index
// which exists already.
func isDuplicateKeyName(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1061
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}

// rebind replaces the "?" placeholders in query by the placeholders used
// by the dialect.
func (db *DB) rebind(query string) string {
	if db.dialect != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// upsert returns a statement which inserts a row, or updates the given
// columns if a row with the same key exists.
func (db *DB) upsert(table, key string, columns ...string) string {
	all := append([]string{key}, columns...)
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(all)), ", ")
	q := "INSERT INTO " + table + " (" + strings.Join(all, ", ") + ") VALUES (" + marks + ")"

	var set []string
	for _, col := range columns {
		if db.dialect == MySQL {
			set = append(set, col+" = VALUES("+col+")")
		} else {
			set = append(set, col+" = excluded."+col)
		}
	}
	if db.dialect == MySQL {
		q += " ON DUPLICATE KEY UPDATE " + strings.Join(set, ", ")
	} else {
		q += " ON CONFLICT (" + key + ") DO UPDATE SET " + strings.Join(set, ", ")
	}
	return db.rebind(q)
}

// ConfigStore implements [storage.ConfigStore].
type ConfigStore struct {
	db *DB
}

// List implements the [storage.ConfigStore] interface.
func (s *ConfigStore) List(ctx context.Context) ([]*template.Config, error) {
	rows, err := s.db.conn.QueryContext(ctx, `SELECT id, data FROM configs ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list configs: %w", err)
	}
	defer rows.Close()

	var res []*template.Config
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		cfg, _, err := template.Decode([]byte(data))
		if err != nil {
			return nil, fmt.Errorf("config %q: %w", id, err)
		}
		res = append(res, cfg)
	}
	return res, rows.Err()
}

// Load implements the [storage.ConfigStore] interface.
func (s *ConfigStore) Load(ctx context.Context, id string) (*template.Config, error) {
	var data string
	err := s.db.conn.QueryRowContext(ctx,
		s.db.rebind(`SELECT data FROM configs WHERE id = ?`), id,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get config: %w", err)
	}
	cfg, _, err := template.Decode([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("config %q: %w", id, err)
	}
	return cfg, nil
}

// Save implements the [storage.ConfigStore] interface.
func (s *ConfigStore) Save(ctx context.Context, cfg *template.Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = s.db.conn.ExecContext(ctx,
		s.db.upsert("configs", "id", "name", "data", "updated_at"),
		cfg.ID, cfg.Name, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// Delete implements the [storage.ConfigStore] interface.
func (s *ConfigStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.conn.ExecContext(ctx, s.db.rebind(`DELETE FROM configs WHERE id = ?`), id)
	return err
}

// PDFStore implements [storage.BinaryStore].
type PDFStore struct {
	db *DB
}

// Save implements the [storage.BinaryStore] interface.
func (s *PDFStore) Save(ctx context.Context, key string, data []byte) error {
	_, err := s.db.conn.ExecContext(ctx,
		s.db.upsert("pdfs", "storage_key", "data", "updated_at"),
		key, data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save pdf: %w", err)
	}
	return nil
}

// Load implements the [storage.BinaryStore] interface.
func (s *PDFStore) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.conn.QueryRowContext(ctx,
		s.db.rebind(`SELECT data FROM pdfs WHERE storage_key = ?`), key,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get pdf: %w", err)
	}
	return data, nil
}

// Delete implements the [storage.BinaryStore] interface.
func (s *PDFStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.conn.ExecContext(ctx, s.db.rebind(`DELETE FROM pdfs WHERE storage_key = ?`), key)
	return err
}

var (
	_ storage.ConfigStore = (*ConfigStore)(nil)
	_ storage.BinaryStore = (*PDFStore)(nil)
)

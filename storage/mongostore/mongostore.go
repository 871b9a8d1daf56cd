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

// Package mongostore keeps templates in a MongoDB database.
package mongostore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"seehuhn.de/go/proposal/storage"
	"seehuhn.de/go/proposal/template"
)

// DefaultDatabase is the database used if none is given.
const DefaultDatabase = "proposals"

// DB is a MongoDB database holding template configurations and PDF files.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect connects to the MongoDB server at uri and checks that the
// server is reachable.
func Connect(ctx context.Context, uri, database string) (*DB, error) {
	if database == "" {
		database = DefaultDatabase
	}
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &DB{client: client, db: client.Database(database)}, nil
}

// Close disconnects from the server.
func (db *DB) Close() error {
	return db.client.Disconnect(context.Background())
}

// Configs returns the configuration store of the database.
func (db *DB) Configs() *ConfigStore {
	return &ConfigStore{coll: db.db.Collection("configs")}
}

// PDFs returns the PDF store of the database.
func (db *DB) PDFs() *PDFStore {
	return &PDFStore{coll: db.db.Collection("pdfs")}
}

// configDoc is the document stored for a configuration.  The configuration
// is kept in its JSON form, so that all backends store the same data.
type configDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Data      string    `bson:"data"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type pdfDoc struct {
	Key       string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func newConfigDoc(cfg *template.Config, now time.Time) (*configDoc, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	return &configDoc{
		ID:        cfg.ID,
		Name:      cfg.Name,
		Data:      string(data),
		UpdatedAt: now,
	}, nil
}

func (doc *configDoc) config() (*template.Config, error) {
	cfg, _, err := template.Decode([]byte(doc.Data))
	if err != nil {
		return nil, fmt.Errorf("config %q: %w", doc.ID, err)
	}
	return cfg, nil
}

// ConfigStore implements [storage.ConfigStore].
type ConfigStore struct {
	coll *mongo.Collection
}

// List implements the [storage.ConfigStore] interface.
func (s *ConfigStore) List(ctx context.Context) ([]*template.Config, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list configs: %w", err)
	}
	defer cursor.Close(ctx)

	var res []*template.Config
	for cursor.Next(ctx) {
		var doc configDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		cfg, err := doc.config()
		if err != nil {
			return nil, err
		}
		res = append(res, cfg)
	}
	return res, cursor.Err()
}

// Load implements the [storage.ConfigStore] interface.
func (s *ConfigStore) Load(ctx context.Context, id string) (*template.Config, error) {
	var doc configDoc
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get config: %w", err)
	}
	return doc.config()
}

// Save implements the [storage.ConfigStore] interface.
func (s *ConfigStore) Save(ctx context.Context, cfg *template.Config) error {
	doc, err := newConfigDoc(cfg, time.Now().UTC())
	if err != nil {
		return err
	}
	_, err = s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: doc.ID}}, doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// Delete implements the [storage.ConfigStore] interface.
func (s *ConfigStore) Delete(ctx context.Context, id string) error {
	_, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return err
}

// PDFStore implements [storage.BinaryStore].
//
// PDF files are stored as single documents, which limits their size to
// the 16MB maximum document size of MongoDB.
type PDFStore struct {
	coll *mongo.Collection
}

// Save implements the [storage.BinaryStore] interface.
func (s *PDFStore) Save(ctx context.Context, key string, data []byte) error {
	doc := &pdfDoc{Key: key, Data: data, UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: key}}, doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save pdf: %w", err)
	}
	return nil
}

// Load implements the [storage.BinaryStore] interface.
func (s *PDFStore) Load(ctx context.Context, key string) ([]byte, error) {
	var doc pdfDoc
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get pdf: %w", err)
	}
	return doc.Data, nil
}

// Delete implements the [storage.BinaryStore] interface.
func (s *PDFStore) Delete(ctx context.Context, key string) error {
	_, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: key}})
	return err
}

var (
	_ storage.ConfigStore = (*ConfigStore)(nil)
	_ storage.BinaryStore = (*PDFStore)(nil)
)

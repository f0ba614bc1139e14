// Package seed loads fixture folders, tags and notes into an empty or
// existing database, replacing whatever was there.
package seed

import (
	"bytes"
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

type Document struct {
	Folders []Folder `yaml:"folders"`
	Tags    []Tag    `yaml:"tags"`
	Notes   []Note   `yaml:"notes"`
}

type Folder struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
}

type Tag struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
}

type Note struct {
	ID       int64   `yaml:"id"`
	Title    string  `yaml:"title"`
	Content  string  `yaml:"content"`
	FolderID *int64  `yaml:"folderId"`
	Tags     []int64 `yaml:"tags"`
}

// Default returns a reader over the embedded fixture document.
func Default() io.Reader {
	return bytes.NewReader(defaultSeed)
}

// Decode parses a seed document.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error decoding seed document: %w", err)
	}
	return &doc, nil
}

// Load replaces the contents of every table with the document read from r.
// Everything happens in one transaction, so a bad document leaves the
// database as it was.
func Load(ctx context.Context, db *sql.DB, r io.Reader) error {
	doc, err := Decode(r)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting seed transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `TRUNCATE notes_tags, notes, tags, folders RESTART IDENTITY`); err != nil {
		return fmt.Errorf("error truncating tables: %w", err)
	}

	for _, f := range doc.Folders {
		if _, err := tx.ExecContext(ctx, `INSERT INTO folders (id, name) VALUES ($1, $2)`, f.ID, f.Name); err != nil {
			return fmt.Errorf("error inserting folder %d: %w", f.ID, err)
		}
	}
	for _, t := range doc.Tags {
		if _, err := tx.ExecContext(ctx, `INSERT INTO tags (id, name) VALUES ($1, $2)`, t.ID, t.Name); err != nil {
			return fmt.Errorf("error inserting tag %d: %w", t.ID, err)
		}
	}
	for _, n := range doc.Notes {
		query := `INSERT INTO notes (id, title, content, folder_id) VALUES ($1, $2, $3, $4)`
		if _, err := tx.ExecContext(ctx, query, n.ID, n.Title, n.Content, n.FolderID); err != nil {
			return fmt.Errorf("error inserting note %d: %w", n.ID, err)
		}
		for _, tagID := range n.Tags {
			query := `INSERT INTO notes_tags (note_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
			if _, err := tx.ExecContext(ctx, query, n.ID, tagID); err != nil {
				return fmt.Errorf("error tagging note %d with %d: %w", n.ID, tagID, err)
			}
		}
	}

	// Explicit ids bypass the sequences; move them past the fixtures.
	for _, table := range []string{"folders", "tags", "notes"} {
		query := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)`, table)
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("error resetting %s sequence: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing seed: %w", err)
	}
	return nil
}

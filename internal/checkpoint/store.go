// Package checkpoint persists named scan positions so a long-running scan
// can be resumed across CLI invocations.
package checkpoint

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/docstream-labs/docstream/pkg/core"
)

//go:embed schema.sql
var schemaSQL string

// Checkpoint is a saved scan position.
type Checkpoint struct {
	Name       string
	Token      core.PagingToken
	DocumentID string
	UpdatedAt  time.Time
}

// Store keeps checkpoints in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the checkpoint database at path.
// Use ":memory:" for an in-memory store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping checkpoint database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize checkpoint schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts the checkpoint under name.
func (s *Store) Save(name, documentID string, token core.PagingToken) error {
	if len(token) == 0 {
		return fmt.Errorf("checkpoint %q: empty token", name)
	}
	_, err := s.db.Exec(`
		INSERT INTO checkpoints (name, token, document_id, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			token = excluded.token,
			document_id = excluded.document_id,
			updated_at = excluded.updated_at`,
		name, []byte(token), documentID, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to save checkpoint %q: %w", name, err)
	}
	return nil
}

// Load returns the checkpoint under name, or nil if none exists.
func (s *Store) Load(name string) (*Checkpoint, error) {
	var (
		cp        Checkpoint
		token     []byte
		updatedAt string
	)
	err := s.db.QueryRow(
		`SELECT name, token, document_id, updated_at FROM checkpoints WHERE name = ?`, name).
		Scan(&cp.Name, &token, &cp.DocumentID, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load checkpoint %q: %w", name, err)
	}
	cp.Token = core.PagingToken(token)
	if cp.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("checkpoint %q has a malformed timestamp: %w", name, err)
	}
	return &cp, nil
}

// Delete removes the checkpoint under name. Deleting a missing checkpoint
// is not an error.
func (s *Store) Delete(name string) error {
	if _, err := s.db.Exec(`DELETE FROM checkpoints WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete checkpoint %q: %w", name, err)
	}
	return nil
}

// List returns all checkpoints ordered by name.
func (s *Store) List() ([]Checkpoint, error) {
	rows, err := s.db.Query(`SELECT name, token, document_id, updated_at FROM checkpoints ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}
	defer rows.Close()

	var out []Checkpoint
	for rows.Next() {
		var (
			cp        Checkpoint
			token     []byte
			updatedAt string
		)
		if err := rows.Scan(&cp.Name, &token, &cp.DocumentID, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan checkpoint row: %w", err)
		}
		cp.Token = core.PagingToken(token)
		if cp.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
			return nil, fmt.Errorf("checkpoint %q has a malformed timestamp: %w", cp.Name, err)
		}
		out = append(out, cp)
	}
	return out, rows.Err()
}

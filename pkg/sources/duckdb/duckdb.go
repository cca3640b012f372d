// Package duckdb provides a DuckDB-backed row source for DocStream.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/docstream-labs/docstream/pkg/source"
)

// Source implements the source.Source interface over DuckDB.
type Source struct {
	source.BaseSQLSource
}

// New creates a new DuckDB source instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Source{
		BaseSQLSource: source.BaseSQLSource{Logger: logger},
	}
}

// Connect opens the DuckDB database. An empty Path opens an in-memory
// database.
func (s *Source) Connect(ctx context.Context, cfg source.Config) error {
	s.Logger.Debug("connecting to duckdb", slog.String("path", cfg.Path))

	db, err := sql.Open("duckdb", cfg.Path)
	if err != nil {
		return fmt.Errorf("failed to open duckdb database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb database: %w", err)
	}

	s.DB = db
	s.Cfg = cfg
	return nil
}

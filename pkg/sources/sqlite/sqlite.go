// Package sqlite provides a SQLite-backed row source for DocStream.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/docstream-labs/docstream/pkg/source"
)

// Source implements the source.Source interface over SQLite.
type Source struct {
	source.BaseSQLSource
}

// New creates a new SQLite source instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Source{
		BaseSQLSource: source.BaseSQLSource{Logger: logger},
	}
}

// Connect opens the SQLite database. Use ":memory:" (or leave Path empty)
// for an in-memory database.
func (s *Source) Connect(ctx context.Context, cfg source.Config) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	s.Logger.Debug("connecting to sqlite", slog.String("path", path))

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.DB = db
	s.Cfg = cfg
	return nil
}

package source

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/docstream-labs/docstream/pkg/core"
)

// SQLStatement is what a bound query must provide to be executable by a
// database/sql backed source.
type SQLStatement interface {
	core.BoundQuery
	SQL() string
	Args() []any
}

// BaseSQLSource provides common database/sql paging for sources. Embed it
// in concrete implementations to get a standard Execute and Close.
//
// Paging tokens minted by this source are 8-byte big-endian row offsets
// into the ordered result of the statement. They are opaque to every other
// package; nothing outside this file may construct or inspect one.
type BaseSQLSource struct {
	DB     *sql.DB
	Cfg    Config
	Logger *slog.Logger

	// Rebind rewrites placeholder syntax for the backend (e.g. `?` to
	// `$n` for postgres). Nil leaves the statement unchanged.
	Rebind func(string) string
}

// Close closes the database connection.
func (b *BaseSQLSource) Close() error {
	if b.DB != nil {
		if b.Logger != nil {
			b.Logger.Debug("closing database connection")
		}
		return b.DB.Close()
	}
	return nil
}

// Execute fetches one page of the statement's result. pageSize <= 0
// disables paging: the whole result is returned as a single page with no
// continuation token.
func (b *BaseSQLSource) Execute(ctx context.Context, query core.BoundQuery, pageSize int, state core.PagingToken) (core.Page, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}
	stmt, ok := query.(SQLStatement)
	if !ok {
		return nil, &core.InvalidArgumentError{Reason: fmt.Sprintf("bound query %T is not an executable SQL statement", query)}
	}

	offset := 0
	if state != nil {
		var err error
		offset, err = decodeOffset(state)
		if err != nil {
			return nil, err
		}
	}

	sqlStr := stmt.SQL()
	if b.Rebind != nil {
		sqlStr = b.Rebind(sqlStr)
	}
	if pageSize > 0 {
		sqlStr = fmt.Sprintf("%s LIMIT %d OFFSET %d", sqlStr, pageSize, offset)
	}

	rows, err := b.DB.QueryContext(ctx, sqlStr, stmt.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	var out []core.Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, core.NewRow(cols, values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return &sqlPage{rows: out, offset: offset, pageSize: pageSize}, nil
}

// sqlPage is one LIMIT/OFFSET window of a statement's ordered result.
type sqlPage struct {
	rows     []core.Row
	offset   int
	pageSize int
}

func (p *sqlPage) Rows() []core.Row {
	return p.rows
}

func (p *sqlPage) PagingState() core.PagingToken {
	// A short page ends the stream; a full page may be followed by more.
	if p.pageSize <= 0 || len(p.rows) < p.pageSize {
		return nil
	}
	return encodeOffset(p.offset + len(p.rows))
}

func (p *sqlPage) PagingStateAfter(i int) core.PagingToken {
	return encodeOffset(p.offset + i + 1)
}

func encodeOffset(offset int) core.PagingToken {
	t := make(core.PagingToken, 8)
	binary.BigEndian.PutUint64(t, uint64(offset))
	return t
}

func decodeOffset(t core.PagingToken) (int, error) {
	if len(t) != 8 {
		return 0, &core.InvalidArgumentError{Reason: "malformed paging state"}
	}
	return int(binary.BigEndian.Uint64(t)), nil
}

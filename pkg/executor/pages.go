package executor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/docstream-labs/docstream/pkg/core"
)

// PageIterator is a lazy, pull-driven sequence of pages. Usage follows the
// sql.Rows convention:
//
//	it := ex.ExecutePages(ctx, q, 100, nil)
//	defer it.Close()
//	for it.Next() {
//		p := it.Page()
//		...
//	}
//	if err := it.Err(); err != nil { ... }
//
// A source failure is terminal: Next returns false and Err reports it.
type PageIterator struct {
	ctx      context.Context
	source   core.RowSource
	query    core.BoundQuery
	pageSize int
	logger   *slog.Logger

	state   core.PagingToken // token for the next fetch
	started bool
	done    bool
	closed  bool
	page    core.Page
	err     error
	fetches int
}

// Next fetches the next page. It blocks on the in-flight fetch and returns
// false when the source is exhausted, the iterator is closed, or an error
// occurred.
func (it *PageIterator) Next() bool {
	if it.err != nil || it.done || it.closed {
		return false
	}
	if err := it.ctx.Err(); err != nil {
		it.err = err
		it.page = nil
		return false
	}

	if it.started {
		next := it.page.PagingState()
		if next == nil {
			it.done = true
			it.page = nil
			return false
		}
		it.state = next
	}

	page, err := it.source.Execute(it.ctx, it.query, it.pageSize, it.state)
	it.fetches++
	if err != nil {
		it.err = fmt.Errorf("page fetch failed: %w", err)
		it.page = nil
		return false
	}

	it.started = true
	it.page = page
	it.logger.Debug("fetched page",
		slog.Int("fetch", it.fetches),
		slog.Int("rows", len(page.Rows())),
		slog.Bool("has_more", page.PagingState() != nil))
	return true
}

// Page returns the page fetched by the last successful Next call.
func (it *PageIterator) Page() core.Page {
	return it.page
}

// Err returns the terminal error, if any.
func (it *PageIterator) Err() error {
	return it.err
}

// Close stops the iterator. No further pages are requested after Close;
// it is safe to call multiple times.
func (it *PageIterator) Close() {
	it.closed = true
	it.page = nil
}

// Fetches reports how many page fetches were issued so far.
func (it *PageIterator) Fetches() int {
	return it.fetches
}

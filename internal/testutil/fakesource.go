package testutil

import (
	"context"
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/docstream-labs/docstream/pkg/core"
	"github.com/docstream-labs/docstream/pkg/source"
)

// FakeSource is an in-memory core.RowSource programmed with expected
// statements and their full result sets. It pages results by the requested
// page size using row-offset tokens, validates every Execute call against
// the programmed expectations, and counts fetches so tests can assert how
// many pages a scan actually pulled.
type FakeSource struct {
	mu      sync.Mutex
	queries []*QueryExpectation
}

// NewFakeSource creates an empty fake source.
func NewFakeSource() *FakeSource {
	return &FakeSource{}
}

// WithQuery programs an expectation for a statement with the given SQL and
// bound args. Chain Returning on the result to supply rows.
func (f *FakeSource) WithQuery(sql string, args ...any) *QueryExpectation {
	q := &QueryExpectation{sql: sql, args: args}
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	return q
}

// Execute implements core.RowSource.
func (f *FakeSource) Execute(_ context.Context, query core.BoundQuery, pageSize int, state core.PagingToken) (core.Page, error) {
	stmt, ok := query.(source.SQLStatement)
	if !ok {
		return nil, fmt.Errorf("fake source: bound query %T has no SQL", query)
	}

	q := f.match(stmt.SQL(), stmt.Args())
	if q == nil {
		return nil, fmt.Errorf("fake source: unexpected query %q with args %v", stmt.SQL(), stmt.Args())
	}
	return q.execute(pageSize, state)
}

func (f *FakeSource) match(sql string, args []any) *QueryExpectation {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, q := range f.queries {
		if q.sql != sql {
			continue
		}
		if len(q.args) == 0 && len(args) == 0 {
			return q
		}
		if reflect.DeepEqual(q.args, args) {
			return q
		}
	}
	return nil
}

// QueryExpectation is one programmed statement with its result rows.
type QueryExpectation struct {
	sql      string
	args     []any
	rows     []core.Row
	failWith error

	wantPageSize int

	mu       sync.Mutex
	executes int
}

// Returning supplies the statement's complete ordered result set.
func (q *QueryExpectation) Returning(rows []core.Row) *QueryExpectation {
	q.rows = rows
	return q
}

// WithPageSize makes the expectation reject fetches with a different page
// size.
func (q *QueryExpectation) WithPageSize(n int) *QueryExpectation {
	q.wantPageSize = n
	return q
}

// FailingWith makes every fetch of this statement fail.
func (q *QueryExpectation) FailingWith(err error) *QueryExpectation {
	q.failWith = err
	return q
}

// Executes reports how many times the statement was fetched (one per page).
func (q *QueryExpectation) Executes() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.executes
}

func (q *QueryExpectation) execute(pageSize int, state core.PagingToken) (core.Page, error) {
	q.mu.Lock()
	q.executes++
	q.mu.Unlock()

	if q.failWith != nil {
		return nil, q.failWith
	}
	if q.wantPageSize != 0 && pageSize != q.wantPageSize {
		return nil, fmt.Errorf("fake source: query %q fetched with page size %d, want %d", q.sql, pageSize, q.wantPageSize)
	}

	offset := 0
	if state != nil {
		if len(state) != 8 {
			return nil, fmt.Errorf("fake source: malformed paging state %x", []byte(state))
		}
		offset = int(binary.BigEndian.Uint64(state))
	}
	if offset > len(q.rows) {
		offset = len(q.rows)
	}

	end := len(q.rows)
	if pageSize > 0 && offset+pageSize < end {
		end = offset + pageSize
	}

	return &fakePage{rows: q.rows[offset:end], offset: offset, total: len(q.rows)}, nil
}

// fakePage is one window of an expectation's rows. Tokens point at exact
// row offsets, so a scan can resume mid-page.
type fakePage struct {
	rows   []core.Row
	offset int
	total  int
}

func (p *fakePage) Rows() []core.Row {
	return p.rows
}

func (p *fakePage) PagingState() core.PagingToken {
	return p.tokenAt(p.offset + len(p.rows))
}

func (p *fakePage) PagingStateAfter(i int) core.PagingToken {
	return p.tokenAt(p.offset + i + 1)
}

func (p *fakePage) tokenAt(offset int) core.PagingToken {
	if offset >= p.total {
		return nil
	}
	t := make(core.PagingToken, 8)
	binary.BigEndian.PutUint64(t, uint64(offset))
	return t
}

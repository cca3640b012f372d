package core

import "context"

// BoundQuery is a fully bound, executable statement. The engine needs only
// the table definition (for identity-depth validation and key extraction);
// sources assert their own concrete statement types for execution.
type BoundQuery interface {
	// Table returns the definition of the table the query reads.
	Table() *Table
}

// RowSource returns bounded pages of rows for a bound query. Implementations
// are black boxes: retry policy, timeouts and token format are theirs alone.
type RowSource interface {
	// Execute fetches one page. A nil state starts from the beginning;
	// otherwise state must be a token previously returned by this source
	// for the same query. pageSize is a hint; a source may return fewer
	// rows. A returned error is terminal for the scan.
	Execute(ctx context.Context, query BoundQuery, pageSize int, state PagingToken) (Page, error)
}

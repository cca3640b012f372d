package executor

import (
	"errors"

	"github.com/docstream-labs/docstream/pkg/core"
)

// ErrConsistency signals a boundary-detection logic error: a merge into an
// accumulation that was already finalized. It is a programming-error class
// and should be unreachable in correct use; fail fast rather than silently
// drop rows.
var ErrConsistency = errors.New("docstream: merge into a completed document accumulation")

// accumulator holds one in-progress document: the contiguous run of rows
// sharing a document key observed so far, plus the position of the last
// row so a resumption token can be minted when the boundary is proven.
//
// The fold over seeds keeps at most one accumulator live and finalizes it
// in O(1), so stack and state stay bounded regardless of how many rows a
// document spans or how many documents a scan yields.
type accumulator struct {
	id       string
	key      []any
	rows     []core.Row
	page     core.Page // page of the last appended row
	rowIndex int       // index of the last appended row within page
	complete bool
}

func newAccumulator(s seed) *accumulator {
	return &accumulator{
		id:       s.id,
		key:      s.key,
		rows:     []core.Row{s.row},
		page:     s.page,
		rowIndex: s.rowIndex,
	}
}

// append merges a seed with an equal document key into the accumulation.
func (a *accumulator) append(s seed) error {
	if a.complete {
		return ErrConsistency
	}
	a.rows = append(a.rows, s.row)
	a.page = s.page
	a.rowIndex = s.rowIndex
	return nil
}

// finish finalizes the accumulation on a proven boundary: a row with a
// different key was observed, so this document's row run is maximal. The
// document is resumable immediately after its last row.
func (a *accumulator) finish() (*RawDocument, error) {
	if a.complete {
		return nil, ErrConsistency
	}
	a.complete = true
	return &RawDocument{
		id:      a.id,
		key:     a.key,
		rows:    a.rows,
		hasMore: true,
		state:   a.page.PagingStateAfter(a.rowIndex),
	}, nil
}

// end finalizes the accumulation on the terminal sentinel: no further rows
// follow in this stream. hasMore records whether the store could still
// hold rows on pages never fetched; such a document carries no token and
// must be completed by a follow-up query scoped to its key.
func (a *accumulator) end() (*RawDocument, error) {
	if a.complete {
		return nil, ErrConsistency
	}
	a.complete = true
	return &RawDocument{
		id:      a.id,
		key:     a.key,
		rows:    a.rows,
		hasMore: a.page.PagingState() != nil,
		state:   nil,
	}, nil
}

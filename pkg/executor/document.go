package executor

import "github.com/docstream-labs/docstream/pkg/core"

// RawDocument is a finalized document: the maximal contiguous run of rows
// sharing one document key, frozen at the moment its boundary was
// confirmed. It is immutable; the consumer owns it once yielded.
type RawDocument struct {
	id      string
	key     []any
	rows    []core.Row
	hasMore bool
	state   core.PagingToken
}

// ID returns the document id: the first primary-key value as a string.
func (d *RawDocument) ID() string {
	return d.id
}

// Key returns the ordered document-key values (the leading identity-depth
// primary-key columns).
func (d *RawDocument) Key() []any {
	return d.key
}

// Rows returns the document's rows in source order. The slice is read-only.
func (d *RawDocument) Rows() []core.Row {
	return d.rows
}

// HasPagingState reports whether the scan continues past this document:
// either a later document follows, or the store could still hold rows for
// this key on pages never fetched.
func (d *RawDocument) HasPagingState() bool {
	return d.hasMore
}

// MakePagingState returns a token that resumes the scan immediately after
// this document, or nil. It is nil for the final document of an exhausted
// scan, and also for a document finalized by end-of-stream whose key may
// extend onto unfetched pages; in the latter case HasPagingState is true
// and the caller completes the document with a key-scoped follow-up query.
func (d *RawDocument) MakePagingState() core.PagingToken {
	return d.state.Clone()
}

// PopulateFrom merges this document with the first document of a separate,
// key-scoped sub-scan: the result carries the sub-scan's rows and this
// document's identity and paging state, so resuming the outer scan is
// unaffected by the population. An empty sub-scan returns the receiver
// unchanged.
func (d *RawDocument) PopulateFrom(sub *DocumentIterator) (*RawDocument, error) {
	defer sub.Close()
	if !sub.Next() {
		if err := sub.Err(); err != nil {
			return nil, err
		}
		return d, nil
	}
	return &RawDocument{
		id:      d.id,
		key:     d.key,
		rows:    sub.Document().Rows(),
		hasMore: d.hasMore,
		state:   d.state,
	}, nil
}

package executor

import (
	"log/slog"
)

// DocumentIterator is a lazy, pull-driven sequence of completed documents.
// It follows the sql.Rows convention:
//
//	it, err := ex.QueryDocuments(ctx, q, 100, nil)
//	if err != nil { ... }
//	defer it.Close()
//	for it.Next() {
//		doc := it.Document()
//		...
//	}
//	if err := it.Err(); err != nil { ... }
//
// The iterator owns all accumulation state; it must not be shared across
// goroutines. Independent iterators (a top-level scan and a key-scoped
// populate sub-scan, say) compose without synchronization.
type DocumentIterator struct {
	seeds    *seedStream
	logger   *slog.Logger
	streamID string

	current *accumulator
	doc     *RawDocument
	emitted int
	done    bool
	closed  bool
	err     error
}

// Next advances to the next completed document. It returns false when the
// scan is exhausted, the iterator is closed, or an error occurred. Exactly
// one row beyond the document is consumed to prove its boundary, which may
// pull in the next page; no further pages are fetched.
func (it *DocumentIterator) Next() bool {
	if it.err != nil || it.done || it.closed {
		return false
	}

	// Explicit loop, one live accumulation: a boundary decision is made
	// for every seed as soon as it arrives, so stack depth stays constant
	// for arbitrarily long documents and scans.
	for {
		s, ok, err := it.seeds.next()
		if err != nil {
			it.fail(err)
			return false
		}

		if !ok { // terminal sentinel
			it.done = true
			if it.current == nil {
				it.finishLog()
				return false
			}
			doc, err := it.current.end()
			if err != nil {
				it.fail(err)
				return false
			}
			it.current = nil
			it.doc = doc
			it.emitted++
			it.finishLog()
			return true
		}

		if it.current == nil {
			it.current = newAccumulator(s)
			continue
		}

		if keysEqual(it.current.key, s.key) {
			if err := it.current.append(s); err != nil {
				it.fail(err)
				return false
			}
			continue
		}

		// Boundary: s opens the next document and proves the current one
		// closed.
		doc, err := it.current.finish()
		if err != nil {
			it.fail(err)
			return false
		}
		it.current = newAccumulator(s)
		it.doc = doc
		it.emitted++
		return true
	}
}

// Document returns the document produced by the last successful Next call.
func (it *DocumentIterator) Document() *RawDocument {
	return it.doc
}

// Err returns the terminal error, if any. Documents already emitted are
// unaffected by a later failure.
func (it *DocumentIterator) Err() error {
	return it.err
}

// Close stops the scan. No further pages are requested after Close; it is
// safe to call multiple times.
func (it *DocumentIterator) Close() {
	if it.closed {
		return
	}
	it.closed = true
	it.doc = nil
	it.current = nil
	it.seeds.close()
}

func (it *DocumentIterator) fail(err error) {
	it.err = err
	it.doc = nil
	it.current = nil
	it.logger.Debug("document scan failed",
		slog.String("stream_id", it.streamID),
		slog.Int("documents", it.emitted),
		slog.String("error", err.Error()))
}

func (it *DocumentIterator) finishLog() {
	it.logger.Debug("document scan exhausted",
		slog.String("stream_id", it.streamID),
		slog.Int("documents", it.emitted),
		slog.Int("fetches", it.seeds.pages.Fetches()))
}

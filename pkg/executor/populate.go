package executor

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// SubQueryFunc opens a key-scoped document scan used to populate one
// document with the rows its top-level scan did not fetch.
type SubQueryFunc func(ctx context.Context, doc *RawDocument) (*DocumentIterator, error)

// PopulateAll populates many documents concurrently, running at most limit
// sub-scans at a time (no limit when limit <= 0). Result order matches the
// input order. The first failure cancels the remaining sub-scans.
func PopulateAll(ctx context.Context, docs []*RawDocument, subQuery SubQueryFunc, limit int) ([]*RawDocument, error) {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	out := make([]*RawDocument, len(docs))
	for i, doc := range docs {
		g.Go(func() error {
			sub, err := subQuery(ctx, doc)
			if err != nil {
				return err
			}
			populated, err := doc.PopulateFrom(sub)
			if err != nil {
				return err
			}
			out[i] = populated
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

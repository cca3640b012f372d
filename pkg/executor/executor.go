package executor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/docstream-labs/docstream/pkg/core"
)

// Executor runs pre-built document queries against a row source, groups
// document rows and manages document pagination.
type Executor struct {
	source core.RowSource
	logger *slog.Logger
}

// New creates an executor over the given row source.
// If logger is nil, a discard logger is used.
func New(source core.RowSource, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Executor{source: source, logger: logger}
}

// QueryDocuments streams whole top-level documents (identity depth 1).
// See QueryDocumentsDepth.
func (ex *Executor) QueryDocuments(ctx context.Context, query core.BoundQuery, pageSize int, state core.PagingToken) (*DocumentIterator, error) {
	return ex.QueryDocumentsDepth(ctx, 1, query, pageSize, state)
}

// QueryDocumentsDepth streams documents whose identity is the leading
// depth primary-key columns. Depth is validated synchronously, before any
// page is fetched. The returned iterator owns the scan: pulling document
// N+1 triggers exactly the page fetches needed to confirm document N's
// boundary, no more.
func (ex *Executor) QueryDocumentsDepth(ctx context.Context, depth int, query core.BoundQuery, pageSize int, state core.PagingToken) (*DocumentIterator, error) {
	if query == nil || query.Table() == nil {
		return nil, &core.InvalidArgumentError{Reason: "bound query has no table"}
	}
	pk := query.Table().PrimaryKeyColumns()
	if depth < 1 || depth > len(pk) {
		return nil, &core.InvalidArgumentError{
			Reason: fmt.Sprintf("identity depth %d out of range [1, %d]", depth, len(pk)),
		}
	}

	keyCols := make([]string, depth)
	for i := 0; i < depth; i++ {
		keyCols[i] = pk[i].Name
	}

	streamID := uuid.NewString()
	ex.logger.Debug("starting document scan",
		slog.String("stream_id", streamID),
		slog.String("table", query.Table().QualifiedName()),
		slog.Int("depth", depth),
		slog.Int("page_size", pageSize),
		slog.Bool("resumed", state != nil))

	return &DocumentIterator{
		seeds: &seedStream{
			pages:   ex.ExecutePages(ctx, query, pageSize, state),
			idCol:   pk[0].Name,
			keyCols: keyCols,
		},
		logger:   ex.logger,
		streamID: streamID,
	}, nil
}

// ExecutePages exposes the raw page sequence for callers that need pages
// without document grouping. The iterator is lazy: page K+1 is not fetched
// until the consumer asks for it, and only one fetch is ever outstanding.
func (ex *Executor) ExecutePages(ctx context.Context, query core.BoundQuery, pageSize int, state core.PagingToken) *PageIterator {
	return &PageIterator{
		ctx:      ctx,
		source:   ex.source,
		query:    query,
		pageSize: pageSize,
		state:    state,
		logger:   ex.logger,
	}
}

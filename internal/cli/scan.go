package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docstream-labs/docstream/internal/checkpoint"
	"github.com/docstream-labs/docstream/internal/config"
	"github.com/docstream-labs/docstream/pkg/core"
	"github.com/docstream-labs/docstream/pkg/executor"
	"github.com/docstream-labs/docstream/pkg/query"
	"github.com/docstream-labs/docstream/pkg/source"
)

// NewScanCommand creates the scan command.
func NewScanCommand() *cobra.Command {
	var (
		resume string
		limit  int
		key    []string
		ckpt   string
		ckptDB string
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Stream documents out of the configured collection table",
		Long: `Scan reads the collection table in primary-key order and groups
consecutive rows sharing the identity prefix into documents.

Each emitted document carries a resume token; pass one back with
--resume to continue a previous scan after that document. Use --key to
scope the scan to a single partition key (or a deeper prefix).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configFromContext(cmd)
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd)
			ctx := cmd.Context()

			stmt, src, err := openScan(ctx, cfg, logger, key)
			if err != nil {
				return err
			}
			defer func() { _ = src.Close() }()

			state, err := decodeToken(resume)
			if err != nil {
				return fmt.Errorf("invalid --resume token: %w", err)
			}

			var store *checkpoint.Store
			if ckpt != "" {
				if dir := filepath.Dir(ckptDB); dir != "." && dir != "" {
					if err := os.MkdirAll(dir, 0o755); err != nil {
						return fmt.Errorf("failed to create checkpoint directory: %w", err)
					}
				}
				if store, err = checkpoint.Open(ckptDB); err != nil {
					return err
				}
				defer func() { _ = store.Close() }()

				if state == nil {
					cp, err := store.Load(ckpt)
					if err != nil {
						return err
					}
					if cp != nil {
						logger.Debug("resuming from checkpoint", "name", ckpt, "after_document", cp.DocumentID)
						state = cp.Token
					}
				}
			}

			ex := executor.New(src, logger)
			it, err := ex.QueryDocumentsDepth(ctx, cfg.Depth, stmt, cfg.PageSize, state)
			if err != nil {
				return err
			}
			defer it.Close()

			var docs []*executor.RawDocument
			for it.Next() {
				docs = append(docs, it.Document())
				if limit > 0 && len(docs) >= limit {
					break
				}
			}
			if err := it.Err(); err != nil {
				return err
			}

			if store != nil && len(docs) > 0 {
				last := docs[len(docs)-1]
				if token := last.MakePagingState(); token != nil {
					if err := store.Save(ckpt, last.ID(), token); err != nil {
						return err
					}
				} else {
					// Scan exhausted: clear the checkpoint so the next run
					// starts over.
					if err := store.Delete(ckpt); err != nil {
						return err
					}
				}
			}

			return renderDocuments(cmd.OutOrStdout(), docs, cfg.Output)
		},
	}

	cmd.Flags().StringVar(&resume, "resume", "", "Resume token from a previous scan")
	cmd.Flags().IntVar(&limit, "limit", 0, "Stop after this many documents (0 = all)")
	cmd.Flags().StringSliceVar(&key, "key", nil, "Scope the scan to this primary-key prefix")
	cmd.Flags().StringVar(&ckpt, "checkpoint", "", "Persist the scan position under this name and resume from it")
	cmd.Flags().StringVar(&ckptDB, "checkpoint-db", ".docstream/checkpoints.db", "Path to the checkpoint database")

	return cmd
}

// openScan builds the scan statement from config and connects the source.
func openScan(ctx context.Context, cfg *config.Config, logger *slog.Logger, key []string) (*query.Statement, source.Source, error) {
	table, err := cfg.Table.Build()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	stmt := query.Select(table).Build()
	if len(key) > 0 {
		values := make([]any, len(key))
		for i, v := range key {
			values[i] = v
		}
		stmt, err = stmt.BindKeyPrefix(values...)
		if err != nil {
			return nil, nil, err
		}
	}

	src, err := source.New(cfg.Source, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := src.Connect(ctx, cfg.Source); err != nil {
		return nil, nil, err
	}
	return stmt, src, nil
}

// NewPagesCommand creates the pages command.
func NewPagesCommand() *cobra.Command {
	var (
		resume string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Dump raw pages from the configured collection table",
		Long: `Pages fetches the underlying row pages without grouping them into
documents. Useful for inspecting page boundaries and resume tokens.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configFromContext(cmd)
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd)
			ctx := cmd.Context()

			stmt, src, err := openScan(ctx, cfg, logger, nil)
			if err != nil {
				return err
			}
			defer func() { _ = src.Close() }()

			state, err := decodeToken(resume)
			if err != nil {
				return fmt.Errorf("invalid --resume token: %w", err)
			}

			ex := executor.New(src, logger)
			it := ex.ExecutePages(ctx, stmt, cfg.PageSize, state)
			defer it.Close()

			out := cmd.OutOrStdout()
			n := 0
			for it.Next() {
				page := it.Page()
				fmt.Fprintf(out, "page %d: %d rows, next=%s\n",
					n, len(page.Rows()), tokenString(page.PagingState()))
				n++
				if limit > 0 && n >= limit {
					break
				}
			}
			return it.Err()
		},
	}

	cmd.Flags().StringVar(&resume, "resume", "", "Resume token from a previous page")
	cmd.Flags().IntVar(&limit, "limit", 0, "Stop after this many pages (0 = all)")

	return cmd
}

func tokenString(t core.PagingToken) string {
	if t == nil {
		return "(end)"
	}
	return encodeToken(t)
}

package cli

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/docstream-labs/docstream/pkg/core"
	"github.com/docstream-labs/docstream/pkg/executor"
)

// encodeToken renders a paging token as a base64 string for CLI round-trips.
func encodeToken(t core.PagingToken) string {
	return base64.StdEncoding.EncodeToString(t)
}

// decodeToken parses a base64 resume token; empty means start from scratch.
func decodeToken(s string) (core.PagingToken, error) {
	if s == "" {
		return nil, nil
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return core.PagingToken(raw), nil
}

func renderDocuments(w io.Writer, docs []*executor.RawDocument, format string) error {
	switch format {
	case "json":
		return renderDocumentsJSON(w, docs)
	default:
		return renderDocumentsTable(w, docs)
	}
}

type documentJSON struct {
	ID          string           `json:"id"`
	Key         []any            `json:"key"`
	Rows        []map[string]any `json:"rows"`
	ResumeToken *string          `json:"resumeToken"`
}

func renderDocumentsJSON(w io.Writer, docs []*executor.RawDocument) error {
	enc := json.NewEncoder(w)
	for _, doc := range docs {
		out := documentJSON{
			ID:   doc.ID(),
			Key:  doc.Key(),
			Rows: make([]map[string]any, 0, len(doc.Rows())),
		}
		for _, row := range doc.Rows() {
			m := make(map[string]any, row.Len())
			for i, col := range row.Columns() {
				m[col] = formatValue(row.Value(i))
			}
			out.Rows = append(out.Rows, m)
		}
		if state := doc.MakePagingState(); state != nil {
			token := encodeToken(state)
			out.ResumeToken = &token
		}
		if err := enc.Encode(out); err != nil {
			return err
		}
	}
	return nil
}

func renderDocumentsTable(w io.Writer, docs []*executor.RawDocument) error {
	if len(docs) == 0 {
		_, _ = fmt.Fprintln(w, "(0 documents)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "id", "rows", "resume token"})

	for i, doc := range docs {
		token := "(end)"
		if state := doc.MakePagingState(); state != nil {
			token = encodeToken(state)
		} else if doc.HasPagingState() {
			// Finalized by end-of-stream with pages left unfetched: the
			// document may extend; there is no positional resume token.
			token = "(unresolved)"
		}
		t.AppendRow(table.Row{i, doc.ID(), len(doc.Rows()), token})
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d documents)\n", len(docs))
	return nil
}

func formatValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

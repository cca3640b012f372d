package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docstream-labs/docstream/internal/testutil"
	"github.com/docstream-labs/docstream/pkg/core"
	"github.com/docstream-labs/docstream/pkg/executor"
	"github.com/docstream-labs/docstream/pkg/query"
	"github.com/docstream-labs/docstream/pkg/source"
)

func openTestSource(t *testing.T) *Source {
	t.Helper()
	src := New(testutil.NewTestLogger(t))
	require.NoError(t, src.Connect(context.Background(), source.Config{Path: ":memory:"}))
	t.Cleanup(func() { _ = src.Close() })
	return src
}

func seedCollection(t *testing.T, src *Source) *core.Table {
	t.Helper()
	ctx := context.Background()

	_, err := src.DB.ExecContext(ctx, `CREATE TABLE collection1 (key TEXT, p0 TEXT, test_value REAL)`)
	require.NoError(t, err)

	rows := [][]any{
		{"1", "x", 1.0},
		{"1", "y", 2.0},
		{"2", "x", 3.0},
		{"3", "x", 1.0},
		{"4", "x", 2.0},
		{"4", "y", 3.0},
	}
	for _, r := range rows {
		_, err := src.DB.ExecContext(ctx, `INSERT INTO collection1 (key, p0, test_value) VALUES (?, ?, ?)`, r...)
		require.NoError(t, err)
	}

	return core.NewTable("", "collection1",
		core.Column{Name: "key", Type: "text", Kind: core.KindPartitionKey},
		core.Column{Name: "p0", Type: "text", Kind: core.KindClustering},
		core.Column{Name: "test_value", Type: "real", Kind: core.KindRegular},
	)
}

func TestScanDocumentsEndToEnd(t *testing.T) {
	src := openTestSource(t)
	table := seedCollection(t, src)
	ctx := context.Background()

	ex := executor.New(src, testutil.NewTestLogger(t))
	allDocs := query.Select(table).Build()

	for _, pageSize := range []int{1, 2, 100} {
		it, err := ex.QueryDocuments(ctx, allDocs, pageSize, nil)
		require.NoError(t, err)

		var ids []string
		var docs []*executor.RawDocument
		for it.Next() {
			docs = append(docs, it.Document())
			ids = append(ids, it.Document().ID())
		}
		require.NoError(t, it.Err())
		it.Close()

		assert.Equal(t, []string{"1", "2", "3", "4"}, ids, "pageSize=%d", pageSize)
		assert.Len(t, docs[0].Rows(), 2)
		assert.False(t, docs[3].HasPagingState())

		// Resume after the first document.
		require.True(t, docs[0].HasPagingState())
		it, err = ex.QueryDocuments(ctx, allDocs, pageSize, docs[0].MakePagingState())
		require.NoError(t, err)
		ids = nil
		for it.Next() {
			ids = append(ids, it.Document().ID())
		}
		require.NoError(t, it.Err())
		it.Close()
		assert.Equal(t, []string{"2", "3", "4"}, ids, "resumed pageSize=%d", pageSize)
	}
}

func TestScanKeyScoped(t *testing.T) {
	src := openTestSource(t)
	table := seedCollection(t, src)
	ctx := context.Background()

	ex := executor.New(src, testutil.NewTestLogger(t))
	scoped, err := query.Select(table).Build().BindKeyPrefix("4")
	require.NoError(t, err)

	it, err := ex.QueryDocuments(ctx, scoped, 10, nil)
	require.NoError(t, err)
	defer it.Close()

	require.True(t, it.Next())
	doc := it.Document()
	assert.Equal(t, "4", doc.ID())
	assert.Len(t, doc.Rows(), 2)
	assert.False(t, it.Next())
	require.NoError(t, it.Err())
}

func TestRegistered(t *testing.T) {
	assert.True(t, source.IsRegistered("sqlite"))

	src, err := source.New(source.Config{Type: "sqlite"}, nil)
	require.NoError(t, err)
	require.NoError(t, src.Connect(context.Background(), source.Config{Path: ":memory:"}))
	assert.NoError(t, src.Close())
}

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowAccessors(t *testing.T) {
	row := NewRow([]string{"key", "seq", "score", "blob"}, []any{"a", int64(3), 1.5, []byte("raw")})

	assert.Equal(t, []string{"key", "seq", "score", "blob"}, row.Columns())
	assert.Equal(t, 4, row.Len())

	v, ok := row.Get("key")
	require.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = row.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, "a", row.GetString("key"))
	assert.Equal(t, "raw", row.GetString("blob"))
	assert.Equal(t, "3", row.GetString("seq"))
	assert.Equal(t, "", row.GetString("missing"))

	assert.Equal(t, 1.5, row.GetDouble("score"))
	assert.Equal(t, 3.0, row.GetDouble("seq"))
	assert.Equal(t, 0.0, row.GetDouble("key"))
	assert.Equal(t, 0.0, row.GetDouble("missing"))

	assert.Equal(t, int64(3), row.Value(1))
}

func TestNewRowsSharesColumns(t *testing.T) {
	rows := NewRows([]string{"key", "v"},
		[]any{"a", 1.0},
		[]any{"b", 2.0},
	)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].GetString("key"))
	assert.Equal(t, "b", rows[1].GetString("key"))
	assert.Equal(t, 2.0, rows[1].GetDouble("v"))
}

func TestRowString(t *testing.T) {
	row := NewRow([]string{"key", "v"}, []any{"a", 1.5})
	assert.Equal(t, "{key=a, v=1.5}", row.String())
}

func TestTablePrimaryKeyColumns(t *testing.T) {
	table := NewTable("ks", "t",
		Column{Name: "c", Type: "text", Kind: KindClustering},
		Column{Name: "p", Type: "text", Kind: KindPartitionKey},
		Column{Name: "r", Type: "double", Kind: KindRegular},
	)

	// Partition keys come before clustering columns regardless of
	// declaration order.
	pk := table.PrimaryKeyColumns()
	require.Len(t, pk, 2)
	assert.Equal(t, "p", pk[0].Name)
	assert.Equal(t, "c", pk[1].Name)

	assert.Equal(t, "ks.t", table.QualifiedName())
}

func TestPagingTokenClone(t *testing.T) {
	assert.Nil(t, PagingToken(nil).Clone())

	orig := PagingToken{1, 2, 3}
	c := orig.Clone()
	assert.Equal(t, orig, c)
	c[0] = 9
	assert.Equal(t, PagingToken{1, 2, 3}, orig)
}

package core

import (
	"fmt"
	"strings"
)

// Row is an ordered mapping from column name to typed value. A row belongs
// to exactly one page and is immutable once read.
type Row struct {
	names  []string
	index  map[string]int
	values []any
}

// NewRow creates a row over the given result columns. The names slice is
// retained, not copied; callers building many rows should reuse it and
// prefer NewRows so the name index is shared as well.
func NewRow(names []string, values []any) Row {
	return Row{names: names, index: indexNames(names), values: values}
}

// NewRows creates one row per values slice, sharing a single name index.
func NewRows(names []string, values ...[]any) []Row {
	idx := indexNames(names)
	rows := make([]Row, 0, len(values))
	for _, v := range values {
		rows = append(rows, Row{names: names, index: idx, values: v})
	}
	return rows
}

func indexNames(names []string) map[string]int {
	idx := make(map[string]int, len(names))
	for i, n := range names {
		idx[n] = i
	}
	return idx
}

// Columns returns the result column names in order.
func (r Row) Columns() []string {
	return r.names
}

// Len returns the number of columns in the row.
func (r Row) Len() int {
	return len(r.values)
}

// Get returns the value of the named column. The second return value is
// false when the column is not part of the row.
func (r Row) Get(name string) (any, bool) {
	i, ok := r.index[name]
	if !ok || i >= len(r.values) {
		return nil, false
	}
	return r.values[i], true
}

// Value returns the value at the given column position.
func (r Row) Value(i int) any {
	return r.values[i]
}

// GetString returns the named column as a string. Missing columns and nil
// values yield the empty string; []byte values are converted.
func (r Row) GetString(name string) string {
	v, ok := r.Get(name)
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprint(s)
	}
}

// GetDouble returns the named column as a float64. Missing columns and
// non-numeric values yield zero.
func (r Row) GetDouble(name string) float64 {
	v, ok := r.Get(name)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

// String renders the row for logs and test failures.
func (r Row) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, n := range r.names {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", n, r.values[i])
	}
	b.WriteByte('}')
	return b.String()
}

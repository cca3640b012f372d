package core

// ColumnKind classifies a column's role in the table's primary key.
type ColumnKind int

const (
	// KindRegular marks a non-key column.
	KindRegular ColumnKind = iota
	// KindPartitionKey marks a partition-key column.
	KindPartitionKey
	// KindClustering marks a clustering-key column.
	KindClustering
)

// Column describes a single column of a table.
type Column struct {
	Name string
	Type string
	Kind ColumnKind
}

// Table describes a column-family table: its identity and ordered columns.
type Table struct {
	Keyspace string
	Name     string
	Columns  []Column

	pk []Column
}

// NewTable creates a table definition. Column order is significant: the
// primary key is the partition-key columns followed by the clustering
// columns, each in declared order.
func NewTable(keyspace, name string, columns ...Column) *Table {
	t := &Table{Keyspace: keyspace, Name: name, Columns: columns}
	for _, c := range columns {
		if c.Kind == KindPartitionKey {
			t.pk = append(t.pk, c)
		}
	}
	for _, c := range columns {
		if c.Kind == KindClustering {
			t.pk = append(t.pk, c)
		}
	}
	return t
}

// PrimaryKeyColumns returns the ordered primary-key columns: partition keys
// first, then clustering columns.
func (t *Table) PrimaryKeyColumns() []Column {
	return t.pk
}

// QualifiedName returns keyspace.name, or just the name when the keyspace
// is empty.
func (t *Table) QualifiedName() string {
	if t.Keyspace == "" {
		return t.Name
	}
	return t.Keyspace + "." + t.Name
}

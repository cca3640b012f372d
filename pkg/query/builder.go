// Package query builds bound select statements for the document engine.
//
// The engine treats statements as opaque (it only reads the table
// definition); this package exists so that sources, the CLI and tests have
// a concrete statement to execute. Statements render to SQL with `?`
// placeholders; dialect-specific rewriting is a source concern.
package query

import (
	"fmt"
	"strings"

	"github.com/docstream-labs/docstream/pkg/core"
)

// Op is a comparison operator usable in a predicate.
type Op string

const (
	Eq  Op = "="
	Gt  Op = ">"
	Gte Op = ">="
	Lt  Op = "<"
	Lte Op = "<="
)

// Predicate is a single column comparison bound to a value.
type Predicate struct {
	Column string
	Op     Op
	Value  any
}

// Builder assembles a select statement for one table.
type Builder struct {
	table *core.Table
	preds []Predicate
}

// Select starts a statement reading all columns of the given table.
func Select(table *core.Table) *Builder {
	return &Builder{table: table}
}

// Where adds a predicate. Predicates are combined with AND, in the order
// they were added.
func (b *Builder) Where(column string, op Op, value any) *Builder {
	b.preds = append(b.preds, Predicate{Column: column, Op: op, Value: value})
	return b
}

// Build renders the statement. Rows are always ordered by the full primary
// key so that rows sharing a key prefix are contiguous in the result.
func (b *Builder) Build() *Statement {
	return &Statement{table: b.table, preds: b.preds}
}

// Statement is a bound select statement. It implements core.BoundQuery.
type Statement struct {
	table *core.Table
	preds []Predicate
}

// Table returns the table the statement reads.
func (s *Statement) Table() *core.Table {
	return s.table
}

// Predicates returns the statement's predicates in order.
func (s *Statement) Predicates() []Predicate {
	return s.preds
}

// SQL renders the statement with `?` placeholders.
func (s *Statement) SQL() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT * FROM %s", s.table.QualifiedName())
	for i, p := range s.preds {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		fmt.Fprintf(&sb, "%s %s ?", p.Column, p.Op)
	}
	if pk := s.table.PrimaryKeyColumns(); len(pk) > 0 {
		sb.WriteString(" ORDER BY ")
		for i, c := range pk {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(c.Name)
		}
	}
	return sb.String()
}

// Args returns the bound values in placeholder order.
func (s *Statement) Args() []any {
	args := make([]any, 0, len(s.preds))
	for _, p := range s.preds {
		args = append(args, p.Value)
	}
	return args
}

// BindKeyPrefix returns a new statement additionally scoped by equality on
// the leading primary-key columns, one per given value. This is the "pull
// the rest of this document" follow-up used with PopulateFrom.
func (s *Statement) BindKeyPrefix(values ...any) (*Statement, error) {
	pk := s.table.PrimaryKeyColumns()
	if len(values) == 0 || len(values) > len(pk) {
		return nil, &core.InvalidArgumentError{
			Reason: fmt.Sprintf("key prefix length %d out of range for table %s", len(values), s.table.QualifiedName()),
		}
	}
	preds := make([]Predicate, 0, len(s.preds)+len(values))
	preds = append(preds, s.preds...)
	for i, v := range values {
		preds = append(preds, Predicate{Column: pk[i].Name, Op: Eq, Value: v})
	}
	return &Statement{table: s.table, preds: preds}, nil
}

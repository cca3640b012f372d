// Package core defines the shared language of the DocStream system.
//
// This package contains:
//   - Row, Column and Table types describing column-family data
//   - The Page and RowSource contracts implemented by storage backends
//   - Paging tokens and the error taxonomy
//
// The Golden Rule: pkg/core imports ONLY the standard library.
// All other packages depend on core, not the reverse.
package core

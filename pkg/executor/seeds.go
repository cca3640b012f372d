package executor

import "github.com/docstream-labs/docstream/pkg/core"

// seed is the atomic unit fed into the document accumulator: one row
// wrapped with its document identity and origin page.
type seed struct {
	id       string
	key      []any
	row      core.Row
	page     core.Page
	rowIndex int
}

// seedStream maps the rows of successive pages into seeds, in source
// order. It is a pure transform: no buffering beyond the current page,
// and the underlying page iterator advances only when a row is needed.
type seedStream struct {
	pages   *PageIterator
	idCol   string
	keyCols []string

	page core.Page
	rows []core.Row
	pos  int
}

// next returns the next seed. ok is false at end of stream; empty pages
// are skipped transparently.
func (s *seedStream) next() (seed, bool, error) {
	for {
		if s.page != nil && s.pos < len(s.rows) {
			row := s.rows[s.pos]
			i := s.pos
			s.pos++

			key := make([]any, len(s.keyCols))
			for j, c := range s.keyCols {
				v, _ := row.Get(c)
				key[j] = keyValue(v)
			}
			return seed{
				id:       row.GetString(s.idCol),
				key:      key,
				row:      row,
				page:     s.page,
				rowIndex: i,
			}, true, nil
		}

		if !s.pages.Next() {
			if err := s.pages.Err(); err != nil {
				return seed{}, false, err
			}
			return seed{}, false, nil
		}
		s.page = s.pages.Page()
		s.rows = s.page.Rows()
		s.pos = 0
	}
}

func (s *seedStream) close() {
	s.pages.Close()
	s.page = nil
	s.rows = nil
}

// keyValue normalizes a key column value so that element-wise comparison
// with == is well defined across drivers ([]byte and string compare equal).
func keyValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

// keysEqual compares two document keys element-wise.
func keysEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

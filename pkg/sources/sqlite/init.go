// This file registers the SQLite source with the source registry.
// Import this package with a blank identifier to register the source:
//
//	import _ "github.com/docstream-labs/docstream/pkg/sources/sqlite"
package sqlite

import (
	"log/slog"

	"github.com/docstream-labs/docstream/pkg/source"
)

func init() {
	source.Register("sqlite", func(logger *slog.Logger) source.Source { return New(logger) })
}

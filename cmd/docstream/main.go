// Package main provides the docstream CLI.
package main

import (
	"os"

	"github.com/docstream-labs/docstream/internal/cli"

	// Register the built-in row sources.
	_ "github.com/docstream-labs/docstream/pkg/sources/duckdb"
	_ "github.com/docstream-labs/docstream/pkg/sources/postgres"
	_ "github.com/docstream-labs/docstream/pkg/sources/sqlite"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

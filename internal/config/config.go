// Package config provides configuration management for the docstream CLI.
//
// Configuration is layered: defaults, then a docstream.yaml file, then
// DOCSTREAM_* environment variables, then command-line flags. Later
// layers override earlier ones.
package config

import (
	"fmt"

	"github.com/docstream-labs/docstream/pkg/core"
	"github.com/docstream-labs/docstream/pkg/source"
)

// Config holds all CLI configuration options.
type Config struct {
	Source   source.Config `koanf:"source"`
	Table    TableConfig   `koanf:"table"`
	PageSize int           `koanf:"page_size"`
	Depth    int           `koanf:"depth"`
	Verbose  bool          `koanf:"verbose"`
	Output   string        `koanf:"output"`
}

// TableConfig describes the collection table a scan runs against.
// Partition keys precede clustering keys in the document identity.
type TableConfig struct {
	Keyspace       string   `koanf:"keyspace"`
	Name           string   `koanf:"name"`
	PartitionKeys  []string `koanf:"partition_keys"`
	ClusteringKeys []string `koanf:"clustering_keys"`
	Columns        []string `koanf:"columns"`
}

// Default configuration values.
const (
	DefaultPageSize   = 100
	DefaultDepth      = 1
	DefaultOutput     = "table"
	DefaultSourceType = "sqlite"
)

// Build converts the table configuration into a core schema.
func (t TableConfig) Build() (*core.Table, error) {
	if t.Name == "" {
		return nil, fmt.Errorf("table name is required")
	}
	if len(t.PartitionKeys) == 0 {
		return nil, fmt.Errorf("table %q needs at least one partition key", t.Name)
	}

	cols := make([]core.Column, 0, len(t.PartitionKeys)+len(t.ClusteringKeys)+len(t.Columns))
	for _, name := range t.PartitionKeys {
		cols = append(cols, core.Column{Name: name, Type: "text", Kind: core.KindPartitionKey})
	}
	for _, name := range t.ClusteringKeys {
		cols = append(cols, core.Column{Name: name, Type: "text", Kind: core.KindClustering})
	}
	for _, name := range t.Columns {
		cols = append(cols, core.Column{Name: name, Type: "text", Kind: core.KindRegular})
	}
	return core.NewTable(t.Keyspace, t.Name, cols...), nil
}

// Validate checks cross-field constraints after loading.
func (c *Config) Validate() error {
	if c.PageSize < 0 {
		return fmt.Errorf("page_size must not be negative, got %d", c.PageSize)
	}
	if c.Depth < 1 {
		return fmt.Errorf("depth must be at least 1, got %d", c.Depth)
	}
	if c.Depth > len(c.Table.PartitionKeys)+len(c.Table.ClusteringKeys) {
		return fmt.Errorf("depth %d exceeds the primary key size of table %q", c.Depth, c.Table.Name)
	}
	return nil
}

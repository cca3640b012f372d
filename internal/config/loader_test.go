package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docstream-labs/docstream/pkg/core"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docstream.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultSourceType, cfg.Source.Type)
	assert.Equal(t, DefaultPageSize, cfg.PageSize)
	assert.Equal(t, DefaultDepth, cfg.Depth)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.False(t, cfg.Verbose)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
source:
  type: postgres
  host: db.example.com
  port: 5433
  database: docs
page_size: 25
table:
  keyspace: test_docs
  name: collection1
  partition_keys: [key]
  clustering_keys: [p0, p1]
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Source.Type)
	assert.Equal(t, "db.example.com", cfg.Source.Host)
	assert.Equal(t, 5433, cfg.Source.Port)
	assert.Equal(t, "docs", cfg.Source.Database)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, "collection1", cfg.Table.Name)
	assert.Equal(t, []string{"p0", "p1"}, cfg.Table.ClusteringKeys)
	// Untouched keys keep their defaults.
	assert.Equal(t, DefaultDepth, cfg.Depth)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "page_size: 25\n")

	t.Setenv("DOCSTREAM_PAGE_SIZE", "50")
	t.Setenv("DOCSTREAM_SOURCE__TYPE", "duckdb")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, "duckdb", cfg.Source.Type)
}

func TestLoadFlagsOverrideEverything(t *testing.T) {
	t.Setenv("DOCSTREAM_PAGE_SIZE", "50")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("page-size", DefaultPageSize, "")
	flags.String("source-type", "", "")
	flags.String("db-path", "", "")
	flags.Bool("verbose", false, "")
	require.NoError(t, flags.Parse([]string{
		"--page-size=7",
		"--source-type=sqlite",
		"--db-path=/tmp/docs.db",
	}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.PageSize)
	assert.Equal(t, "sqlite", cfg.Source.Type)
	assert.Equal(t, "/tmp/docs.db", cfg.Source.Path)
	// Flags left at their default are not applied.
	assert.False(t, cfg.Verbose)
}

func TestTableConfigBuild(t *testing.T) {
	tc := TableConfig{
		Keyspace:       "test_docs",
		Name:           "collection1",
		PartitionKeys:  []string{"key"},
		ClusteringKeys: []string{"p0", "p1"},
		Columns:        []string{"test_value"},
	}

	table, err := tc.Build()
	require.NoError(t, err)

	assert.Equal(t, "test_docs.collection1", table.QualifiedName())
	pk := table.PrimaryKeyColumns()
	require.Len(t, pk, 3)
	assert.Equal(t, "key", pk[0].Name)
	assert.Equal(t, core.KindPartitionKey, pk[0].Kind)
	assert.Equal(t, "p1", pk[2].Name)
	assert.Equal(t, core.KindClustering, pk[2].Kind)
}

func TestTableConfigBuildErrors(t *testing.T) {
	_, err := TableConfig{}.Build()
	assert.ErrorContains(t, err, "name is required")

	_, err = TableConfig{Name: "collection1"}.Build()
	assert.ErrorContains(t, err, "partition key")
}

func TestConfigValidate(t *testing.T) {
	base := Config{
		PageSize: 10,
		Depth:    1,
		Table:    TableConfig{Name: "c1", PartitionKeys: []string{"key"}, ClusteringKeys: []string{"p0"}},
	}

	require.NoError(t, base.Validate())

	bad := base
	bad.PageSize = -1
	assert.ErrorContains(t, bad.Validate(), "page_size")

	bad = base
	bad.Depth = 0
	assert.ErrorContains(t, bad.Validate(), "depth")

	bad = base
	bad.Depth = 3
	assert.ErrorContains(t, bad.Validate(), "exceeds")
}

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// findConfigFile finds the config file to use.
// Priority: explicit path > docstream.yaml > docstream.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"docstream.yaml", "docstream.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// flagKey maps a CLI flag name onto its config key. Most flags map by a
// straight kebab-to-snake rename; connection flags live under "source.".
func flagKey(name string) string {
	switch name {
	case "source-type":
		return "source.type"
	case "db-path":
		return "source.path"
	case "db-host":
		return "source.host"
	case "db-port":
		return "source.port"
	case "db-name":
		return "source.database"
	case "db-user":
		return "source.username"
	case "db-password":
		return "source.password"
	case "keyspace":
		return "table.keyspace"
	case "table":
		return "table.name"
	case "partition-keys":
		return "table.partition_keys"
	case "clustering-keys":
		return "table.clustering_keys"
	}
	return strings.ReplaceAll(name, "-", "_")
}

// Load loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"source.type": DefaultSourceType,
		"page_size":   DefaultPageSize,
		"depth":       DefaultDepth,
		"verbose":     false,
		"output":      DefaultOutput,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if used := findConfigFile(cfgFile); used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment variables (DOCSTREAM_ prefix)
	// Transform: DOCSTREAM_PAGE_SIZE -> page_size, DOCSTREAM_SOURCE__TYPE -> source.type
	if err := k.Load(env.Provider("DOCSTREAM_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "DOCSTREAM_"))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			return flagKey(f.Name), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

package config

import (
	"github.com/querybench-labs/querybench/pkg/complete"
	"github.com/querybench-labs/querybench/pkg/dialect"
)

// Default configuration values.
const (
	DefaultDialect = "sql"
	DefaultOutput  = "text"
)

// Config is the resolved querybench configuration.
type Config struct {
	// Dialect is the default dialect tag for documents that do not
	// declare one (sql, mongodb, redis, or a custom name).
	Dialect string `koanf:"dialect"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`

	// Output selects the CLI output format (text or json).
	Output string `koanf:"output"`

	// Schema is the metadata snapshot completion draws from.
	Schema SchemaConfig `koanf:"schema"`
}

// SchemaConfig describes the known schema per dialect family. All of it is
// optional; completion degrades to keywords without it.
type SchemaConfig struct {
	// Tables maps table or view names to column names.
	Tables map[string][]string `koanf:"tables"`

	// Collections maps collection names to field names, including
	// dotted nested paths.
	Collections map[string][]string `koanf:"collections"`

	// Keyspaces lists the known key-value database indices.
	Keyspaces []int `koanf:"keyspaces"`

	// Keys is a cached key-name list for key completion.
	Keys []string `koanf:"keys"`
}

// DefaultDialectTag returns the configured dialect parsed into a tag.
func (c *Config) DefaultDialectTag() dialect.Dialect {
	return dialect.Parse(c.Dialect)
}

// Metadata builds the read-only completion snapshot from the schema
// section. The returned value borrows the config's maps; callers must not
// mutate it.
func (c *Config) Metadata() *complete.Metadata {
	return &complete.Metadata{
		Tables:      c.Schema.Tables,
		Collections: c.Schema.Collections,
		Keyspaces:   c.Schema.Keyspaces,
		Keys:        c.Schema.Keys,
	}
}

// Package dialect defines the query dialect tags shared by the completion
// engine, the dangerous-query classifier, and the CLI surfaces.
package dialect

import "strings"

// Dialect identifies the query language a piece of text is written in.
type Dialect string

// Known dialects. Unknown is a valid tag: it yields keyword-only completion
// and no classification.
const (
	SQL     Dialect = "sql"
	Mongo   Dialect = "mongo"
	Redis   Dialect = "redis"
	Unknown Dialect = "unknown"
)

// Parse maps a user-supplied dialect name to a Dialect tag.
// Unrecognized names map to Unknown rather than failing, since the
// completion engine degrades gracefully for custom dialects.
func Parse(name string) Dialect {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sql", "postgres", "postgresql", "mysql", "sqlite", "mariadb":
		return SQL
	case "mongo", "mongodb", "documentdb":
		return Mongo
	case "redis", "valkey", "keydb":
		return Redis
	default:
		return Unknown
	}
}

// String returns the canonical tag name.
func (d Dialect) String() string {
	return string(d)
}

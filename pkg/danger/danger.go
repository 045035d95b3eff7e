// Package danger flags query text that looks destructive, so the host can
// ask for confirmation before executing it. Classification is heuristic and
// purely advisory: it never errors, and "not flagged" means exactly that,
// not "verified safe".
package danger

import "strings"

// Kind identifies why a query was flagged.
type Kind int

// The closed set of dangerous-query kinds.
const (
	DeleteNoWhere Kind = iota + 1
	UpdateNoWhere
	Truncate
	Drop
	Alter
	Script
	MongoDeleteMany
	MongoUpdateMany
	MongoDropCollection
	MongoDropDatabase
	RedisFlushAll
	RedisFlushDb
	RedisMultiDelete
	RedisKeysPattern
)

// warnings maps each kind to its fixed, human-readable confirmation text.
var warnings = map[Kind]string{
	DeleteNoWhere:       "DELETE without a WHERE clause removes every row in the table",
	UpdateNoWhere:       "UPDATE without a WHERE clause modifies every row in the table",
	Truncate:            "TRUNCATE removes all rows and cannot be rolled back on some engines",
	Drop:                "DROP permanently removes the object and its data",
	Alter:               "ALTER changes the schema and may be hard to reverse",
	Script:              "this script contains at least one destructive statement",
	MongoDeleteMany:     "deleteMany with an empty filter removes every document in the collection",
	MongoUpdateMany:     "updateMany with an empty filter modifies every document in the collection",
	MongoDropCollection: "drop permanently removes the collection",
	MongoDropDatabase:   "dropDatabase permanently removes the entire database",
	RedisFlushAll:       "FLUSHALL removes every key in every database",
	RedisFlushDb:        "FLUSHDB removes every key in the current database",
	RedisMultiDelete:    "DEL with multiple keys removes them all at once",
	RedisKeysPattern:    "KEYS blocks the server while scanning the whole keyspace",
}

// Warning returns the fixed warning text for a kind, or "" for zero.
func (k Kind) Warning() string {
	return warnings[k]
}

// String returns a stable identifier for logging.
func (k Kind) String() string {
	switch k {
	case DeleteNoWhere:
		return "delete-no-where"
	case UpdateNoWhere:
		return "update-no-where"
	case Truncate:
		return "truncate"
	case Drop:
		return "drop"
	case Alter:
		return "alter"
	case Script:
		return "script"
	case MongoDeleteMany:
		return "mongo-delete-many"
	case MongoUpdateMany:
		return "mongo-update-many"
	case MongoDropCollection:
		return "mongo-drop-collection"
	case MongoDropDatabase:
		return "mongo-drop-database"
	case RedisFlushAll:
		return "redis-flush-all"
	case RedisFlushDb:
		return "redis-flush-db"
	case RedisMultiDelete:
		return "redis-multi-delete"
	case RedisKeysPattern:
		return "redis-keys-pattern"
	default:
		return "none"
	}
}

// Classify inspects query text and reports whether it looks destructive.
// Text starting with "db." goes through the document-shell heuristic,
// everything else through the SQL one. Command dialects are not
// prefix-distinguishable from SQL, so callers that know they are talking to
// a key-value store use ClassifyCommand directly.
func Classify(text string) (Kind, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, false
	}
	if strings.HasPrefix(trimmed, "db.") {
		return classifyShell(trimmed)
	}
	return classifySQL(trimmed)
}

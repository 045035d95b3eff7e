// Package complete produces context-aware completion suggestions for query
// console text. It is a pure function of the text, the cursor offset, the
// dialect tag, and a caller-owned metadata snapshot: nothing is cached and
// the snapshot is never mutated, so it is safe to call on every keystroke
// from any number of goroutines.
package complete

import (
	"strings"

	"github.com/querybench-labs/querybench/pkg/dialect"
)

// ItemKind categorizes a suggestion for editor rendering.
type ItemKind int

// Suggestion kinds.
const (
	KindKeyword ItemKind = iota + 1
	KindField
	KindStruct // table, view, or collection
	KindMethod
	KindOperator
	KindValue
	KindFunction
)

// Item is a single completion suggestion.
type Item struct {
	Label string
	Kind  ItemKind
}

// Metadata is the read-only schema snapshot suggestions are drawn from. The
// caller owns it; the engine only reads it for the duration of one call.
type Metadata struct {
	// Tables maps table or view names to their column names.
	Tables map[string][]string

	// Collections maps collection names to their known field names,
	// including dotted nested paths.
	Collections map[string][]string

	// Keyspaces lists the known key-value database indices.
	Keyspaces []int

	// Keys is the cached key-name list for the active keyspace.
	Keys []string
}

// completer is implemented once per dialect: a candidate keyword list plus
// context-sensitive suggestion assembly.
type completer interface {
	keywords() []string
	complete(text string, cursor int, meta *Metadata) []Item
}

// completers is the fixed dialect dispatch table.
var completers = map[dialect.Dialect]completer{
	dialect.SQL:     sqlCompleter{},
	dialect.Mongo:   mongoCompleter{},
	dialect.Redis:   redisCompleter{},
	dialect.Unknown: unknownCompleter{},
}

// Complete returns ordered, de-duplicated suggestions for the cursor
// position. The cursor is clamped to the text length; a nil metadata
// snapshot behaves like an empty one.
func Complete(text string, cursor int, d dialect.Dialect, meta *Metadata) []Item {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(text) {
		cursor = len(text)
	}
	if meta == nil {
		meta = &Metadata{}
	}

	c, ok := completers[d]
	if !ok {
		c = unknownCompleter{}
	}

	return dedupe(c.complete(text, cursor, meta))
}

// Keywords returns the candidate keyword list for a dialect: SQL keywords,
// shell method names, or command names. Unknown dialects share the SQL list.
func Keywords(d dialect.Dialect) []string {
	c, ok := completers[d]
	if !ok {
		c = unknownCompleter{}
	}
	return c.keywords()
}

// unknownCompleter serves custom dialects with keyword-only completion.
type unknownCompleter struct{}

func (unknownCompleter) keywords() []string { return sqlKeywords }

func (unknownCompleter) complete(text string, cursor int, _ *Metadata) []Item {
	prefix, _ := identifierPrefix(text, cursor)
	return keywordItems(sqlKeywords, prefix)
}

// identifierPrefix scans backward from the cursor over identifier
// characters and returns the prefix being typed plus its start offset.
func identifierPrefix(text string, cursor int) (string, int) {
	start := cursor
	for start > 0 && isIdentChar(text[start-1]) {
		start--
	}
	return text[start:cursor], start
}

func isIdentChar(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_' || c == '$'
}

// hasPrefixFold is a case-insensitive prefix match.
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// keywordItems filters a keyword list by prefix.
func keywordItems(words []string, prefix string) []Item {
	var items []Item
	for _, w := range words {
		if hasPrefixFold(w, prefix) {
			items = append(items, Item{Label: w, Kind: KindKeyword})
		}
	}
	return items
}

// dedupe removes items whose upper-cased label was already seen, keeping
// first-occurrence order.
func dedupe(items []Item) []Item {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, item := range items {
		key := strings.ToUpper(item.Label)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

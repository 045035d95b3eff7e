package complete

import (
	"sort"
	"strings"
)

// sqlKeywords is the candidate keyword list for SQL-like dialects.
var sqlKeywords = []string{
	"SELECT", "FROM", "WHERE", "JOIN", "LEFT", "RIGHT", "INNER", "OUTER",
	"ON", "AS", "AND", "OR", "NOT", "IN", "BETWEEN", "LIKE", "IS", "NULL",
	"GROUP", "BY", "ORDER", "HAVING", "LIMIT", "OFFSET", "DISTINCT",
	"INSERT", "INTO", "VALUES", "UPDATE", "SET", "DELETE", "CREATE",
	"TABLE", "ALTER", "DROP", "TRUNCATE", "UNION", "ALL", "EXCEPT",
	"INTERSECT", "WITH", "CASE", "WHEN", "THEN", "ELSE", "END", "EXISTS",
	"ASC", "DESC", "COUNT", "SUM", "AVG", "MIN", "MAX",
}

// sqlKeywordSet is sqlKeywords as an upper-cased lookup set, used to tell
// keywords from identifiers while building the alias table.
var sqlKeywordSet = func() map[string]bool {
	set := make(map[string]bool, len(sqlKeywords))
	for _, kw := range sqlKeywords {
		set[kw] = true
	}
	return set
}()

// tableIntroducers are the tokens after which the next identifier names a
// table.
var tableIntroducers = map[string]bool{
	"FROM": true, "JOIN": true, "UPDATE": true, "INTO": true,
}

type sqlCompleter struct{}

func (sqlCompleter) keywords() []string { return sqlKeywords }

func (sqlCompleter) complete(text string, cursor int, meta *Metadata) []Item {
	prefix, start := identifierPrefix(text, cursor)

	// alias.column completion: resolve the qualifier and offer only that
	// table's columns.
	if start > 0 && text[start-1] == '.' {
		qualifier, _ := identifierPrefix(text, start-1)
		return qualifiedColumns(text, qualifier, prefix, meta)
	}

	items := keywordItems(sqlKeywords, prefix)

	tableContext := tableIntroducerBefore(text[:start])
	if tableContext || prefix != "" {
		for _, table := range sortedKeys(meta.Tables) {
			if hasPrefixFold(table, prefix) {
				items = append(items, Item{Label: table, Kind: KindStruct})
			}
		}
	}

	if !tableContext && prefix != "" {
		for _, table := range sortedKeys(meta.Tables) {
			for _, col := range meta.Tables[table] {
				if hasPrefixFold(col, prefix) {
					items = append(items, Item{Label: col, Kind: KindField})
				}
			}
		}
	}

	return items
}

// qualifiedColumns resolves a "qualifier." before the prefix through the
// statement's alias table and offers that table's columns. An unresolved
// qualifier offers nothing rather than guessing.
func qualifiedColumns(text, qualifier, prefix string, meta *Metadata) []Item {
	if qualifier == "" {
		return nil
	}

	table, ok := buildAliasTable(text)[strings.ToUpper(qualifier)]
	if !ok {
		table = qualifier
	}

	var items []Item
	for name, cols := range meta.Tables {
		if !strings.EqualFold(name, table) {
			continue
		}
		for _, col := range cols {
			if hasPrefixFold(col, prefix) {
				items = append(items, Item{Label: col, Kind: KindField})
			}
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Label < items[j].Label })
	return items
}

// buildAliasTable scans the whole statement for FROM/JOIN/UPDATE/INTO
// <table> [AS] <alias> patterns. Both the alias and the table name map to
// the table, keyed upper-cased.
func buildAliasTable(text string) map[string]string {
	tokens := tokenize(text)
	aliases := make(map[string]string)

	for i, tok := range tokens {
		if !tableIntroducers[strings.ToUpper(tok)] {
			continue
		}
		if i+1 >= len(tokens) {
			break
		}

		table := tokens[i+1]
		if sqlKeywordSet[strings.ToUpper(table)] {
			continue
		}
		aliases[strings.ToUpper(table)] = table

		if i+2 < len(tokens) {
			next := tokens[i+2]
			if strings.EqualFold(next, "AS") {
				if i+3 < len(tokens) && !sqlKeywordSet[strings.ToUpper(tokens[i+3])] {
					aliases[strings.ToUpper(tokens[i+3])] = table
				}
			} else if !sqlKeywordSet[strings.ToUpper(next)] {
				aliases[strings.ToUpper(next)] = table
			}
		}
	}

	return aliases
}

// tableIntroducerBefore reports whether the last complete token before the
// prefix introduces a table name. TABLE is included for DDL statements.
func tableIntroducerBefore(before string) bool {
	tokens := tokenize(before)
	if len(tokens) == 0 {
		return false
	}
	last := strings.ToUpper(tokens[len(tokens)-1])
	return tableIntroducers[last] || last == "TABLE"
}

// tokenize splits text into identifier and number runs, dropping everything
// else.
func tokenize(s string) []string {
	var tokens []string
	start := -1
	for i := 0; i < len(s); i++ {
		if isIdentChar(s[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, s[start:i])
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, s[start:])
	}
	return tokens
}

// sortedKeys returns map keys in a stable order so suggestion lists do not
// jitter between keystrokes.
func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

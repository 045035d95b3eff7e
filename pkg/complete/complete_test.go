package complete

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/querybench-labs/querybench/pkg/dialect"
)

func sqlMeta() *Metadata {
	return &Metadata{
		Tables: map[string][]string{
			"users":  {"id", "name", "email"},
			"orders": {"id", "total"},
		},
	}
}

func mongoMeta() *Metadata {
	return &Metadata{
		Collections: map[string][]string{
			"users":  {"name", "age", "address.city"},
			"orders": {"total"},
		},
	}
}

func labels(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Label
	}
	return out
}

func TestSQLQualifiedColumns(t *testing.T) {
	text := "SELECT u. FROM users u"
	items := Complete(text, strings.Index(text, ".")+1, dialect.SQL, sqlMeta())

	require.Len(t, items, 3)
	assert.ElementsMatch(t, []string{"id", "name", "email"}, labels(items))
	for _, item := range items {
		assert.Equal(t, KindField, item.Kind)
	}
}

func TestSQLAliasViaAS(t *testing.T) {
	text := "SELECT o.t FROM orders AS o"
	items := Complete(text, len("SELECT o.t"), dialect.SQL, sqlMeta())

	require.Len(t, items, 1)
	assert.Equal(t, "total", items[0].Label)
}

func TestSQLUnresolvedQualifierFallsBackToTableName(t *testing.T) {
	items := Complete("SELECT orders.", len("SELECT orders."), dialect.SQL, sqlMeta())
	assert.ElementsMatch(t, []string{"id", "total"}, labels(items))
}

func TestSQLTableContext(t *testing.T) {
	items := Complete("SELECT * FROM ", 14, dialect.SQL, sqlMeta())

	got := labels(items)
	assert.Contains(t, got, "users")
	assert.Contains(t, got, "orders")
	assert.Contains(t, got, "SELECT") // keywords stay available
	for _, item := range items {
		assert.NotEqual(t, KindField, item.Kind, "no columns in table context")
	}
}

func TestSQLColumnsByPrefix(t *testing.T) {
	items := Complete("SELECT na", 9, dialect.SQL, sqlMeta())

	require.Len(t, items, 1)
	assert.Equal(t, Item{Label: "name", Kind: KindField}, items[0])
}

func TestSQLCaseInsensitivePrefix(t *testing.T) {
	items := Complete("select * from us", 16, dialect.SQL, sqlMeta())
	assert.Contains(t, labels(items), "users")
}

func TestSQLDedupeByUpperLabel(t *testing.T) {
	// "id" appears in both tables; the result carries it once.
	items := Complete("SELECT id", 9, dialect.SQL, sqlMeta())

	count := 0
	for _, item := range items {
		if strings.EqualFold(item.Label, "id") {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestSQLNoContextMeansKeywordsOnly(t *testing.T) {
	items := Complete("SELECT ", 7, dialect.SQL, sqlMeta())
	for _, item := range items {
		assert.Equal(t, KindKeyword, item.Kind)
	}
}

func TestMongoCollectionsAfterDB(t *testing.T) {
	items := Complete("db.", 3, dialect.Mongo, mongoMeta())

	assert.ElementsMatch(t, []string{"orders", "users"}, labels(items))
	for _, item := range items {
		assert.Equal(t, KindStruct, item.Kind)
	}
}

func TestMongoCollectionPrefix(t *testing.T) {
	items := Complete("db.us", 5, dialect.Mongo, mongoMeta())

	require.Len(t, items, 1)
	assert.Equal(t, "users", items[0].Label)
}

func TestMongoMethodsAfterCollection(t *testing.T) {
	items := Complete("db.users.", 9, dialect.Mongo, mongoMeta())

	got := labels(items)
	assert.Contains(t, got, "find")
	assert.Contains(t, got, "deleteMany")
	for _, item := range items {
		assert.Equal(t, KindMethod, item.Kind)
	}
}

func TestMongoMethodPrefix(t *testing.T) {
	items := Complete("db.users.fi", 11, dialect.Mongo, mongoMeta())
	assert.ElementsMatch(t, []string{"find", "findOne"}, labels(items))
}

func TestMongoOperatorsInsideDocument(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"after brace", `db.users.find({`},
		{"after quote", `db.users.find({"`},
		{"after colon", `db.users.find({"age":`},
		{"after bracket", `db.users.find({"$or": [`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := Complete(tt.text, len(tt.text), dialect.Mongo, mongoMeta())
			got := labels(items)
			assert.Contains(t, got, "$eq")
			assert.Contains(t, got, "$match")
			for _, item := range items {
				assert.Equal(t, KindOperator, item.Kind)
			}
		})
	}
}

func TestMongoOperatorPrefix(t *testing.T) {
	text := `db.users.find({"$e`
	items := Complete(text, len(text), dialect.Mongo, mongoMeta())
	assert.ElementsMatch(t, []string{"$eq", "$exists"}, labels(items))
}

func TestMongoFieldsInsideOpenCall(t *testing.T) {
	text := "db.users.find( na"
	items := Complete(text, len(text), dialect.Mongo, mongoMeta())

	require.Len(t, items, 1)
	assert.Equal(t, Item{Label: "name", Kind: KindField}, items[0])
}

func TestMongoUnknownCollectionFallsBackToAllFields(t *testing.T) {
	text := "db.ghost.find( "
	items := Complete(text, len(text), dialect.Mongo, mongoMeta())

	got := labels(items)
	assert.Contains(t, got, "name")
	assert.Contains(t, got, "total")
}

func TestMongoDefaultContextOffersMethods(t *testing.T) {
	items := Complete("fi", 2, dialect.Mongo, mongoMeta())
	assert.ElementsMatch(t, []string{"find", "findOne"}, labels(items))
}

func TestRedisCommandNames(t *testing.T) {
	items := Complete("GE", 2, dialect.Redis, nil)
	assert.ElementsMatch(t, []string{"GET", "GETSET", "GETDEL"}, labels(items))
}

func TestRedisEmptyOffersAllCommands(t *testing.T) {
	items := Complete("", 0, dialect.Redis, nil)
	assert.Len(t, items, len(redisCommands))
}

func TestRedisKeyArguments(t *testing.T) {
	meta := &Metadata{Keys: []string{"user:1", "session:2"}}

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"get first arg", "GET ", []string{"user:1", "session:2"}},
		{"get by prefix", "GET us", []string{"user:1"}},
		{"del every arg", "DEL user:1 ", []string{"user:1", "session:2"}},
		{"mget every arg", "MGET a b ", []string{"user:1", "session:2"}},
		{"mset even arg", "MSET k v ", []string{"user:1", "session:2"}},
		{"mset odd arg is a value", "MSET k ", nil},
		{"set second arg is a value", "SET user:1 ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := Complete(tt.text, len(tt.text), dialect.Redis, meta)
			assert.ElementsMatch(t, tt.want, labels(items))
		})
	}
}

func TestRedisSelectOffersKeyspaces(t *testing.T) {
	meta := &Metadata{Keyspaces: []int{0, 1, 2}}
	items := Complete("SELECT ", 7, dialect.Redis, meta)
	assert.ElementsMatch(t, []string{"0", "1", "2"}, labels(items))
}

func TestRedisOptionTables(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"set options", "SET k v ", []string{"NX", "XX", "EX", "PX", "EXAT", "PXAT", "KEEPTTL", "GET"}},
		{"set option prefix", "SET k v E", []string{"EX", "EXAT"}},
		{"expire options", "EXPIRE k 100 ", []string{"NX", "XX", "GT", "LT"}},
		{"zadd option prefix", "ZADD k N", []string{"NX"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := Complete(tt.text, len(tt.text), dialect.Redis, nil)
			assert.ElementsMatch(t, tt.want, labels(items))
		})
	}
}

func TestUnknownDialectKeywordOnly(t *testing.T) {
	items := Complete("SEL", 3, dialect.Unknown, sqlMeta())

	require.Len(t, items, 1)
	assert.Equal(t, Item{Label: "SELECT", Kind: KindKeyword}, items[0])
}

func TestKeywords(t *testing.T) {
	assert.Contains(t, Keywords(dialect.SQL), "SELECT")
	assert.Contains(t, Keywords(dialect.Mongo), "find")
	assert.Contains(t, Keywords(dialect.Redis), "FLUSHALL")
	assert.Contains(t, Keywords(dialect.Unknown), "SELECT")
}

func TestCursorClamping(t *testing.T) {
	items := Complete("db.", 99, dialect.Mongo, mongoMeta())
	assert.ElementsMatch(t, []string{"orders", "users"}, labels(items))

	items = Complete("db.", -5, dialect.Mongo, mongoMeta())
	for _, item := range items {
		assert.Equal(t, KindKeyword, item.Kind)
	}
}

func TestNoDuplicateUpperLabels(t *testing.T) {
	texts := []string{"SELECT id", "SELECT * FROM ", "db.", "GE"}
	dialects := []dialect.Dialect{dialect.SQL, dialect.SQL, dialect.Mongo, dialect.Redis}

	for i, text := range texts {
		items := Complete(text, len(text), dialects[i], sqlMeta())
		seen := map[string]bool{}
		for _, item := range items {
			upper := strings.ToUpper(item.Label)
			assert.False(t, seen[upper], "duplicate label %q in %q", item.Label, text)
			seen[upper] = true
		}
	}
}

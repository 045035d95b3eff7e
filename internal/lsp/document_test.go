package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeLineOffsets(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []int
	}{
		{"empty", "", []int{0}},
		{"single line", "db.users.find()", []int{0}},
		{"two lines", "SELECT 1;\nSELECT 2;", []int{0, 10}},
		{"trailing newline", "FLUSHALL\n", []int{0, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, computeLineOffsets(tt.content))
		})
	}
}

func TestPositionOffsetRoundTrip(t *testing.T) {
	doc := &Document{
		Content: "db.users.find()\ndb.orders.drop()",
		Lines:   computeLineOffsets("db.users.find()\ndb.orders.drop()"),
	}

	tests := []struct {
		pos    Position
		offset int
	}{
		{Position{Line: 0, Character: 0}, 0},
		{Position{Line: 0, Character: 3}, 3},
		{Position{Line: 1, Character: 0}, 16},
		{Position{Line: 1, Character: 9}, 25},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.offset, doc.PositionToOffset(tt.pos))
		assert.Equal(t, tt.pos, doc.OffsetToPosition(tt.offset))
	}
}

func TestPositionToOffsetClamping(t *testing.T) {
	doc := &Document{Content: "db.", Lines: computeLineOffsets("db.")}

	assert.Equal(t, 3, doc.PositionToOffset(Position{Line: 0, Character: 100}))
	assert.Equal(t, 3, doc.PositionToOffset(Position{Line: 5, Character: 0}))
	assert.Equal(t, Position{}, doc.OffsetToPosition(-1))
}

func TestDocumentStore(t *testing.T) {
	store := NewDocumentStore()

	store.Open("file:///q.mongodb", "mongodb", "db.users.find()", 1)

	doc := store.Get("file:///q.mongodb")
	assert.NotNil(t, doc)
	assert.Equal(t, "mongodb", doc.LanguageID)
	assert.Equal(t, "db.users.find()", doc.Content)
	assert.Equal(t, 1, doc.Version)

	store.Update("file:///q.mongodb", "db.users.drop()", 2)
	doc = store.Get("file:///q.mongodb")
	assert.Equal(t, "db.users.drop()", doc.Content)
	assert.Equal(t, 2, doc.Version)
	assert.Equal(t, "mongodb", doc.LanguageID, "language ID survives updates")

	assert.Equal(t, []string{"file:///q.mongodb"}, store.List())

	store.Close("file:///q.mongodb")
	assert.Nil(t, store.Get("file:///q.mongodb"))
}

func TestGetWordAtPosition(t *testing.T) {
	content := `db.users.find({"$eq": 1})`
	doc := &Document{Content: content, Lines: computeLineOffsets(content)}

	word, _ := doc.GetWordAtPosition(Position{Line: 0, Character: 4})
	assert.Equal(t, "users", word)

	word, _ = doc.GetWordAtPosition(Position{Line: 0, Character: 17})
	assert.Equal(t, "$eq", word)
}

func TestURIToPath(t *testing.T) {
	assert.Equal(t, "/tmp/q.sql", URIToPath("file:///tmp/q.sql"))
	assert.Equal(t, "/tmp/q.sql", URIToPath("/tmp/q.sql"))
	assert.Equal(t, "file:///tmp/q.sql", PathToURI("/tmp/q.sql"))
	assert.Equal(t, "file:///tmp/q.sql", PathToURI("file:///tmp/q.sql"))
}

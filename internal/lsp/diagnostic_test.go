package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDoc(s *Server, uri, languageID, content string) *Document {
	s.documents.Open(uri, languageID, content, 1)
	return s.documents.Get(uri)
}

func TestGetDiagnosticsCleanQueries(t *testing.T) {
	s, _ := newTestServer(testConfig())

	tests := []struct {
		name       string
		languageID string
		content    string
	}{
		{"sql select", "sql", "SELECT * FROM users"},
		{"sql delete with where", "sql", "DELETE FROM users WHERE id = 1"},
		{"mongo find", "mongodb", `db.users.find({"name": "John"})`},
		{"redis single del", "redis", "DEL user:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := openDoc(s, "file:///clean", tt.languageID, tt.content)
			assert.Empty(t, s.getDiagnostics(doc))
		})
	}
}

func TestGetDiagnosticsUnsupportedMethod(t *testing.T) {
	s, _ := newTestServer(testConfig())
	doc := openDoc(s, "file:///q.mongodb", "mongodb", "db.t.unknownMethod()")

	diags := s.getDiagnostics(doc)
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, DiagnosticSeverityError, d.Severity)
	assert.Equal(t, codeParseError, d.Code)
	assert.Equal(t, diagnosticSource, d.Source)
	assert.Contains(t, d.Message, "unsupported method")

	// The method name itself is underlined
	assert.Equal(t, Position{Line: 0, Character: 5}, d.Range.Start)
	assert.Equal(t, Position{Line: 0, Character: 18}, d.Range.End)
}

func TestGetDiagnosticsLeadingWhitespaceSpan(t *testing.T) {
	s, _ := newTestServer(testConfig())
	doc := openDoc(s, "file:///q.mongodb", "mongodb", "  db.t.unknownMethod()")

	diags := s.getDiagnostics(doc)
	require.Len(t, diags, 1)

	// Parse offsets are absolute, so the span must not shift by the
	// leading whitespace a second time
	d := diags[0]
	assert.Equal(t, codeParseError, d.Code)
	assert.Equal(t, Position{Line: 0, Character: 7}, d.Range.Start)
	assert.Equal(t, Position{Line: 0, Character: 20}, d.Range.End)
}

func TestGetDiagnosticsShellSyntaxError(t *testing.T) {
	s, _ := newTestServer(testConfig())
	doc := openDoc(s, "file:///q.mongodb", "mongodb", `db.users.find({"name": "John"`)

	diags := s.getDiagnostics(doc)
	require.NotEmpty(t, diags)

	for _, d := range diags {
		assert.Equal(t, DiagnosticSeverityError, d.Severity)
	}
}

func TestGetDiagnosticsDangerWarnings(t *testing.T) {
	s, _ := newTestServer(testConfig())

	tests := []struct {
		name       string
		languageID string
		content    string
		code       string
	}{
		{"delete without where", "sql", "DELETE FROM users", "delete-no-where"},
		{"truncate", "sql", "TRUNCATE TABLE users", "truncate"},
		{"script", "sql", "SELECT 1; DELETE FROM users", "script"},
		{"mongo delete many", "mongodb", "db.users.deleteMany({})", "mongo-delete-many"},
		{"mongo drop", "mongodb", "db.users.drop()", "mongo-drop-collection"},
		{"flushall", "redis", "FLUSHALL", "redis-flush-all"},
		{"multi del", "redis", "DEL a b", "redis-multi-delete"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := openDoc(s, "file:///danger", tt.languageID, tt.content)

			diags := s.getDiagnostics(doc)
			require.NotEmpty(t, diags)

			var warning *Diagnostic
			for i := range diags {
				if diags[i].Severity == DiagnosticSeverityWarning {
					warning = &diags[i]
					break
				}
			}
			require.NotNil(t, warning, "expected a warning diagnostic")
			assert.Equal(t, tt.code, warning.Code)
			assert.NotEmpty(t, warning.Message)
		})
	}
}

func TestGetHoverShellSummary(t *testing.T) {
	s, _ := newTestServer(testConfig())
	openDoc(s, "file:///q.mongodb", "mongodb", `db.users.find({"name": "John"})`)

	hover := s.getHover(HoverParams{
		TextDocumentPositionParams: positionParams("file:///q.mongodb", 0, 4),
	})

	require.NotNil(t, hover)
	assert.Equal(t, MarkupKindMarkdown, hover.Contents.Kind)
	assert.Contains(t, hover.Contents.Value, "find")
	assert.Contains(t, hover.Contents.Value, "users")
}

func TestGetHoverDangerWarning(t *testing.T) {
	s, _ := newTestServer(testConfig())
	openDoc(s, "file:///q.sql", "sql", "DELETE FROM users")

	hover := s.getHover(HoverParams{
		TextDocumentPositionParams: positionParams("file:///q.sql", 0, 2),
	})

	require.NotNil(t, hover)
	assert.Contains(t, hover.Contents.Value, "⚠")
}

func TestGetHoverMethodDoc(t *testing.T) {
	s, _ := newTestServer(testConfig())
	openDoc(s, "file:///q.mongodb", "mongodb", `db.users.find({"name": "John"})`)

	hover := s.getHover(HoverParams{
		TextDocumentPositionParams: positionParams("file:///q.mongodb", 0, 11),
	})

	require.NotNil(t, hover)
	assert.Contains(t, hover.Contents.Value, "Returns documents matching the filter.")
	require.NotNil(t, hover.Range)
	assert.Equal(t, Position{Line: 0, Character: 9}, hover.Range.Start)
	assert.Equal(t, Position{Line: 0, Character: 13}, hover.Range.End)
}

func TestGetHoverRedisClassifiesHoveredLine(t *testing.T) {
	s, _ := newTestServer(testConfig())
	openDoc(s, "file:///q.redis", "redis", "GET user:1\nFLUSHALL")

	hover := s.getHover(HoverParams{
		TextDocumentPositionParams: positionParams("file:///q.redis", 1, 2),
	})
	require.NotNil(t, hover)
	assert.Contains(t, hover.Contents.Value, "⚠")

	hover = s.getHover(HoverParams{
		TextDocumentPositionParams: positionParams("file:///q.redis", 0, 2),
	})
	assert.Nil(t, hover)
}

func TestGetHoverNothingToShow(t *testing.T) {
	s, _ := newTestServer(testConfig())
	openDoc(s, "file:///q.sql", "sql", "SELECT * FROM users")

	hover := s.getHover(HoverParams{
		TextDocumentPositionParams: positionParams("file:///q.sql", 0, 2),
	})
	assert.Nil(t, hover)
}

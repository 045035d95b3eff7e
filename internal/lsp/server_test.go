package lsp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/querybench-labs/querybench/internal/cli/config"
	"github.com/querybench-labs/querybench/pkg/dialect"
)

func testConfig() *config.Config {
	return &config.Config{
		Dialect: "sql",
		Schema: config.SchemaConfig{
			Tables: map[string][]string{
				"users":  {"id", "name", "email"},
				"orders": {"id", "total"},
			},
			Collections: map[string][]string{
				"users": {"name", "age"},
			},
			Keyspaces: []int{0, 1},
			Keys:      []string{"user:1"},
		},
	}
}

func newTestServer(cfg *config.Config) (*Server, *bytes.Buffer) {
	out := &bytes.Buffer{}
	s := NewServerWithLogger(strings.NewReader(""), out, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return s, out
}

func frame(t *testing.T, payload any) string {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(body), body)
}

func TestReadMessage(t *testing.T) {
	input := frame(t, map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "initialize",
	})
	s := NewServerWithLogger(strings.NewReader(input), &bytes.Buffer{}, testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	msg, err := s.readMessage()
	require.NoError(t, err)
	assert.Equal(t, "initialize", msg.Method)
	assert.NotNil(t, msg.ID)
}

func TestReadMessageMissingContentLength(t *testing.T) {
	s := NewServerWithLogger(strings.NewReader("\r\n"), &bytes.Buffer{}, testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := s.readMessage()
	assert.Error(t, err)
}

func TestWriteMessageFraming(t *testing.T) {
	s, out := newTestServer(testConfig())

	s.sendNotification("window/showMessage", &ShowMessageParams{
		Type:    MessageTypeInfo,
		Message: "hello",
	})

	written := out.String()
	require.True(t, strings.HasPrefix(written, "Content-Length: "))

	parts := strings.SplitN(written, "\r\n\r\n", 2)
	require.Len(t, parts, 2)

	var msg JSONRPCMessage
	require.NoError(t, json.Unmarshal([]byte(parts[1]), &msg))
	assert.Equal(t, "2.0", msg.JSONRPC)
	assert.Equal(t, "window/showMessage", msg.Method)
}

func TestHandleInitializeCapabilities(t *testing.T) {
	s, out := newTestServer(testConfig())

	id := json.RawMessage("1")
	params, _ := json.Marshal(InitializeParams{RootURI: "file:///tmp/project"})
	err := s.handleInitialize(&JSONRPCMessage{ID: &id, Params: params})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/project", s.projectRoot)

	parts := strings.SplitN(out.String(), "\r\n\r\n", 2)
	require.Len(t, parts, 2)

	var msg JSONRPCMessage
	require.NoError(t, json.Unmarshal([]byte(parts[1]), &msg))

	var result InitializeResult
	require.NoError(t, json.Unmarshal(msg.Result, &result))
	assert.True(t, result.Capabilities.HoverProvider)
	require.NotNil(t, result.Capabilities.CompletionProvider)
	assert.Contains(t, result.Capabilities.CompletionProvider.TriggerCharacters, ".")
	require.NotNil(t, result.Capabilities.TextDocumentSync)
	assert.Equal(t, TextDocumentSyncKindFull, result.Capabilities.TextDocumentSync.Change)
}

func TestDocDialect(t *testing.T) {
	s, _ := newTestServer(testConfig())

	tests := []struct {
		name       string
		languageID string
		expected   dialect.Dialect
	}{
		{"declared mongodb", "mongodb", dialect.Mongo},
		{"declared redis", "redis", dialect.Redis},
		{"declared postgres alias", "postgresql", dialect.SQL},
		{"unknown falls back to config", "lua", dialect.SQL},
		{"empty falls back to config", "", dialect.SQL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &Document{LanguageID: tt.languageID}
			assert.Equal(t, tt.expected, s.docDialect(doc))
		})
	}
}

func TestHandleUnknownMethod(t *testing.T) {
	s, out := newTestServer(testConfig())

	id := json.RawMessage("7")
	err := s.handleMessage(&JSONRPCMessage{ID: &id, Method: "textDocument/definition"})
	require.NoError(t, err)

	parts := strings.SplitN(out.String(), "\r\n\r\n", 2)
	require.Len(t, parts, 2)

	var msg JSONRPCMessage
	require.NoError(t, json.Unmarshal([]byte(parts[1]), &msg))
	require.NotNil(t, msg.Error)
	assert.Equal(t, -32601, msg.Error.Code)
}

func TestHandleUnknownNotificationIgnored(t *testing.T) {
	s, out := newTestServer(testConfig())

	err := s.handleMessage(&JSONRPCMessage{Method: "workspace/didChangeConfiguration"})
	require.NoError(t, err)
	assert.Empty(t, out.String())
}

package lsp

import (
	"context"
	"errors"
	"strings"

	"github.com/querybench-labs/querybench/pkg/danger"
	"github.com/querybench-labs/querybench/pkg/diag"
	"github.com/querybench-labs/querybench/pkg/dialect"
	"github.com/querybench-labs/querybench/pkg/shell"
)

// Diagnostic source and codes.
const (
	diagnosticSource = "querybench"

	codeParseError  = "E001"
	codeSyntaxError = "E002"
)

// publishDiagnostics analyzes the document and publishes any findings.
func (s *Server) publishDiagnostics(uri string) {
	doc := s.documents.Get(uri)
	if doc == nil {
		return
	}

	diagnostics := s.getDiagnostics(doc)

	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// getDiagnostics combines parse errors, syntax diagnostics, and dangerous
// query warnings for one document.
func (s *Server) getDiagnostics(doc *Document) []Diagnostic {
	diagnostics := []Diagnostic{}

	switch s.docDialect(doc) {
	case dialect.Mongo:
		diagnostics = append(diagnostics, s.shellParseDiagnostics(doc)...)
		diagnostics = append(diagnostics, s.syntaxDiagnostics(doc)...)
		diagnostics = append(diagnostics, s.dangerDiagnostics(doc, danger.Classify)...)
	case dialect.SQL:
		diagnostics = append(diagnostics, s.dangerDiagnostics(doc, danger.Classify)...)
	case dialect.Redis:
		diagnostics = append(diagnostics, s.dangerDiagnostics(doc, danger.ClassifyCommand)...)
	}

	return diagnostics
}

// shellParseDiagnostics reports structured parse errors with their exact
// byte span underlined.
func (s *Server) shellParseDiagnostics(doc *Document) []Diagnostic {
	text := strings.TrimSpace(doc.Content)
	if text == "" || !strings.HasPrefix(text, "db.") {
		return nil
	}

	_, err := shell.Parse(doc.Content)
	if err == nil {
		return nil
	}

	var parseErr *shell.ParseError
	if !errors.As(err, &parseErr) {
		return nil
	}

	// Span offsets are absolute in the document text
	start, length := parseErr.Span()
	end := start + length
	if length == 0 {
		end = start + 1
	}

	return []Diagnostic{{
		Range: Range{
			Start: doc.OffsetToPosition(start),
			End:   doc.OffsetToPosition(end),
		},
		Severity: DiagnosticSeverityError,
		Code:     codeParseError,
		Source:   diagnosticSource,
		Message:  parseErr.Message,
	}}
}

// syntaxDiagnostics runs the tree-sitter adapter over shell text.
func (s *Server) syntaxDiagnostics(doc *Document) []Diagnostic {
	findings := diag.Collect(context.Background(), doc.Content)

	diagnostics := make([]Diagnostic, 0, len(findings))
	for _, f := range findings {
		severity := DiagnosticSeverityError
		if f.Severity == diag.SeverityWarning {
			severity = DiagnosticSeverityWarning
		}
		diagnostics = append(diagnostics, Diagnostic{
			Range: Range{
				Start: Position{Line: f.Range.Start.Line, Character: f.Range.Start.Column},
				End:   Position{Line: f.Range.End.Line, Character: f.Range.End.Column},
			},
			Severity: severity,
			Code:     codeSyntaxError,
			Source:   diagnosticSource,
			Message:  f.Message,
		})
	}
	return diagnostics
}

// dangerDiagnostics flags queries likely to cause broad data loss. The
// classifier has no position information, so the warning spans the whole
// document.
func (s *Server) dangerDiagnostics(doc *Document, classify func(string) (danger.Kind, bool)) []Diagnostic {
	kind, ok := classify(doc.Content)
	if !ok {
		return nil
	}

	return []Diagnostic{{
		Range: Range{
			Start: Position{Line: 0, Character: 0},
			End:   doc.OffsetToPosition(len(doc.Content)),
		},
		Severity: DiagnosticSeverityWarning,
		Code:     kind.String(),
		Source:   diagnosticSource,
		Message:  kind.Warning(),
	}}
}

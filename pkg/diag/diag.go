// Package diag reports syntax diagnostics for query console text. It runs a
// tree-sitter JavaScript grammar over the text (document-shell queries are a
// JavaScript expression subset) and surfaces error and missing nodes as
// ranged diagnostics. Diagnostics are advisory: any failure of the
// underlying parse yields an empty sequence, never an error.
package diag

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// Severity ranks a diagnostic for editor rendering.
type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
)

// Position is a zero-based line/column pair.
type Position struct {
	Line   uint32
	Column uint32
}

// Range is a half-open [Start, End) span.
type Range struct {
	Start Position
	End   Position
}

// Diagnostic is one ranged finding.
type Diagnostic struct {
	Severity Severity
	Message  string
	Range    Range
}

// Collect parses text and returns a diagnostic per syntax error. Each call
// builds its own parser, so Collect is safe to invoke concurrently.
func Collect(ctx context.Context, text string) []Diagnostic {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, []byte(text))
	if err != nil || tree == nil {
		return []Diagnostic{}
	}
	defer tree.Close()

	diags := []Diagnostic{}
	collectErrors(tree.RootNode(), &diags)
	return diags
}

// collectErrors walks the tree depth-first. An error node is reported once
// and its subtree skipped, so one mistake does not fan out into a cascade.
func collectErrors(node *sitter.Node, out *[]Diagnostic) {
	if node.IsError() {
		*out = append(*out, Diagnostic{
			Severity: SeverityError,
			Message:  "syntax error",
			Range:    nodeRange(node),
		})
		return
	}
	if node.IsMissing() {
		*out = append(*out, Diagnostic{
			Severity: SeverityError,
			Message:  fmt.Sprintf("missing %s", node.Type()),
			Range:    nodeRange(node),
		})
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		collectErrors(node.Child(i), out)
	}
}

func nodeRange(node *sitter.Node) Range {
	return Range{
		Start: Position{
			Line:   node.StartPoint().Row,
			Column: node.StartPoint().Column,
		},
		End: Position{
			Line:   node.EndPoint().Row,
			Column: node.EndPoint().Column,
		},
	}
}

package lsp

import (
	"fmt"
	"strings"

	"github.com/querybench-labs/querybench/pkg/danger"
	"github.com/querybench-labs/querybench/pkg/dialect"
	"github.com/querybench-labs/querybench/pkg/shell"
)

// methodDocs describes each shell method for hover.
var methodDocs = map[string]string{
	"find":           "Returns documents matching the filter.",
	"findOne":        "Returns the first document matching the filter.",
	"aggregate":      "Runs an aggregation pipeline of stage documents.",
	"count":          "Counts documents matching the filter.",
	"countDocuments": "Counts documents matching the filter.",
	"insertOne":      "Inserts a single document.",
	"insertMany":     "Inserts an array of documents.",
	"updateOne":      "Updates the first document matching the filter.",
	"updateMany":     "Updates every document matching the filter.",
	"replaceOne":     "Replaces the first document matching the filter.",
	"deleteOne":      "Deletes the first document matching the filter.",
	"deleteMany":     "Deletes every document matching the filter.",
	"drop":           "Drops the collection.",
}

// getHover returns hover content for the given position: a summary of the
// parsed operation for shell queries, documentation for the method under the
// cursor, and the danger warning when the query is flagged.
func (s *Server) getHover(params HoverParams) *Hover {
	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return nil
	}

	var sections []string
	var hoverRange *Range

	if s.docDialect(doc) == dialect.Mongo {
		if summary := shellSummary(doc.Content); summary != "" {
			sections = append(sections, summary)
		}
		if word, wordRange, ok := methodAtPosition(doc, params.Position); ok {
			sections = append(sections, fmt.Sprintf("`%s`: %s", word, methodDocs[word]))
			hoverRange = &wordRange
		}
	}

	if kind, ok := classifyForHover(s.docDialect(doc), doc, params.Position); ok {
		sections = append(sections, fmt.Sprintf("⚠ %s", kind.Warning()))
	}

	if len(sections) == 0 {
		return nil
	}

	return &Hover{
		Contents: MarkupContent{
			Kind:  MarkupKindMarkdown,
			Value: strings.Join(sections, "\n\n"),
		},
		Range: hoverRange,
	}
}

// classifyForHover applies the dialect's danger heuristic. Command dialects
// classify only the hovered line, since each line is its own command.
func classifyForHover(d dialect.Dialect, doc *Document, pos Position) (danger.Kind, bool) {
	if d == dialect.Redis {
		return danger.ClassifyCommand(doc.GetLine(int(pos.Line)))
	}
	return danger.Classify(doc.Content)
}

// methodAtPosition reports the shell method name under the cursor, if any.
func methodAtPosition(doc *Document, pos Position) (string, Range, bool) {
	word, wordRange := doc.GetWordAtPosition(pos)
	if _, ok := methodDocs[word]; !ok {
		return "", Range{}, false
	}
	return word, wordRange, true
}

// shellSummary renders a one-line description of a parsed shell query.
func shellSummary(text string) string {
	query, err := shell.Parse(text)
	if err != nil {
		return ""
	}

	summary := fmt.Sprintf("**%s** on collection `%s`", shell.Name(query.Operation), query.Collection)
	if query.Database != "" {
		summary += fmt.Sprintf(" in database `%s`", query.Database)
	}
	return summary
}

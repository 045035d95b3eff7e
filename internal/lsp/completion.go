package lsp

import (
	"github.com/querybench-labs/querybench/pkg/complete"
)

// kindMap translates engine suggestion kinds to LSP completion item kinds.
var kindMap = map[complete.ItemKind]CompletionItemKind{
	complete.KindKeyword:  CompletionItemKindKeyword,
	complete.KindField:    CompletionItemKindField,
	complete.KindStruct:   CompletionItemKindStruct,
	complete.KindMethod:   CompletionItemKindMethod,
	complete.KindOperator: CompletionItemKindOperator,
	complete.KindValue:    CompletionItemKindValue,
	complete.KindFunction: CompletionItemKindFunction,
}

// getCompletions returns completion items for the given position.
func (s *Server) getCompletions(params CompletionParams) []CompletionItem {
	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return nil
	}

	offset := doc.PositionToOffset(params.Position)
	d := s.docDialect(doc)

	suggestions := complete.Complete(doc.Content, offset, d, s.cfg.Metadata())

	items := make([]CompletionItem, 0, len(suggestions))
	for _, sug := range suggestions {
		kind, ok := kindMap[sug.Kind]
		if !ok {
			kind = CompletionItemKindText
		}
		items = append(items, CompletionItem{
			Label: sug.Label,
			Kind:  kind,
		})
	}

	s.logger.Debug("Completion", "uri", params.TextDocument.URI, "dialect", d, "items", len(items))
	return items
}

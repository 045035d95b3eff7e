package complete

import "strings"

// mongoMethods mirrors the shell method surface the parser understands.
var mongoMethods = []string{
	"find", "findOne", "aggregate", "count", "countDocuments",
	"insertOne", "insertMany", "updateOne", "updateMany", "replaceOne",
	"deleteOne", "deleteMany", "drop",
}

// mongoOperators are query and pipeline operators offered inside document
// literals.
var mongoOperators = []string{
	"$eq", "$ne", "$gt", "$gte", "$lt", "$lte", "$in", "$nin",
	"$and", "$or", "$not", "$nor", "$exists", "$type", "$regex",
	"$set", "$unset", "$inc", "$push", "$pull", "$rename",
	"$match", "$group", "$project", "$sort", "$limit", "$skip",
	"$lookup", "$unwind", "$count", "$addFields",
}

type mongoCompleter struct{}

func (mongoCompleter) keywords() []string { return mongoMethods }

func (mongoCompleter) complete(text string, cursor int, meta *Metadata) []Item {
	prefix, start := identifierPrefix(text, cursor)

	// db.<prefix> completes collection names, nothing else.
	if qual, qstart, ok := dottedQualifier(text, start); ok {
		if qual == "db" {
			var items []Item
			for _, name := range sortedKeys(meta.Collections) {
				if hasPrefixFold(name, prefix) {
					items = append(items, Item{Label: name, Kind: KindStruct})
				}
			}
			return items
		}
		// db.<collection>.<prefix> completes shell methods.
		if inner, _, ok := dottedQualifier(text, qstart); ok && inner == "db" {
			var items []Item
			for _, m := range mongoMethods {
				if hasPrefixFold(m, prefix) {
					items = append(items, Item{Label: m, Kind: KindMethod})
				}
			}
			return items
		}
	}

	// Inside a document literal, operators trump everything else.
	if inDocumentPosition(text, start) {
		var items []Item
		for _, op := range mongoOperators {
			if hasPrefixFold(op, prefix) {
				items = append(items, Item{Label: op, Kind: KindOperator})
			}
		}
		return items
	}

	// Inside an open method call the filter keys are the collection's
	// fields.
	if coll, ok := openCallCollection(text, cursor); ok {
		return fieldItems(coll, prefix, meta)
	}

	return keywordItems(mongoMethods, prefix)
}

// dottedQualifier returns the identifier immediately before a '.' that ends
// at start, along with the identifier's own start offset.
func dottedQualifier(text string, start int) (string, int, bool) {
	if start < 1 || text[start-1] != '.' {
		return "", 0, false
	}
	qual, qstart := identifierPrefix(text, start-1)
	if qual == "" {
		return "", 0, false
	}
	return qual, qstart, true
}

// inDocumentPosition reports whether the prefix sits where a document key or
// operator belongs: right after '{', ',', ':' or '[', possibly with an
// opening quote in between.
func inDocumentPosition(text string, start int) bool {
	i := start - 1
	for i >= 0 && (text[i] == ' ' || text[i] == '\t') {
		i--
	}
	if i >= 0 && (text[i] == '"' || text[i] == '\'') {
		i--
		for i >= 0 && (text[i] == ' ' || text[i] == '\t') {
			i--
		}
	}
	if i < 0 {
		return false
	}
	switch text[i] {
	case '{', ',', ':', '[':
		return true
	}
	return false
}

// openCallCollection extracts the collection from a db.<coll>.<method>( form
// when the cursor is inside the still-open argument list.
func openCallCollection(text string, cursor int) (string, bool) {
	trimmed := strings.TrimLeft(text, " \t")
	if !strings.HasPrefix(trimmed, "db.") {
		return "", false
	}
	shift := len(text) - len(trimmed)

	open := strings.IndexByte(trimmed, '(')
	if open < 0 || shift+open >= cursor {
		return "", false
	}
	if strings.Contains(trimmed[open:cursor-shift], ")") {
		return "", false
	}

	head := trimmed[len("db."):open]
	dot := strings.LastIndexByte(head, '.')
	if dot <= 0 {
		return "", false
	}
	return head[:dot], true
}

// fieldItems offers the collection's known fields, falling back to the union
// of all fields when the collection is not in the metadata.
func fieldItems(coll, prefix string, meta *Metadata) []Item {
	var fields []string
	for name, cols := range meta.Collections {
		if strings.EqualFold(name, coll) {
			fields = cols
			break
		}
	}
	if fields == nil {
		for _, name := range sortedKeys(meta.Collections) {
			fields = append(fields, meta.Collections[name]...)
		}
	}

	var items []Item
	for _, f := range fields {
		if hasPrefixFold(f, prefix) {
			items = append(items, Item{Label: f, Kind: KindField})
		}
	}
	return items
}

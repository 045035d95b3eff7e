// Package shell parses db.collection.method(args) console syntax into
// structured, executable queries. It accepts the relaxed JSON that query
// consoles allow (unquoted keys, single quotes) as well as MongoDB extended
// JSON, and a plain JSON-object fallback form for hosts that build queries
// programmatically.
package shell

import (
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ErrEmptyQuery reports blank input. It carries no position because there is
// no span to underline.
var ErrEmptyQuery = errors.New("empty query")

// supportedMethods is the fixed dispatch set, in the order reported by
// unsupported-method errors.
var supportedMethods = []string{
	"find", "findOne", "aggregate", "count", "countDocuments",
	"insertOne", "insertMany", "updateOne", "updateMany", "replaceOne",
	"deleteOne", "deleteMany", "drop",
}

// Parse converts console text into a Query. Errors are *ParseError with the
// byte span of the offending text, except for blank input.
func Parse(text string) (*Query, error) {
	trimmed, base := trimWithOffset(text)
	if trimmed == "" {
		return nil, ErrEmptyQuery
	}

	if strings.HasPrefix(trimmed, "db.") {
		return parseShell(trimmed, base)
	}
	if strings.HasPrefix(trimmed, "{") {
		return parseFallback(trimmed, base)
	}

	return nil, &ParseError{Message: errMissingPrefix, Offset: base, Length: len(trimmed)}
}

// parseShell handles the db.collection.method(args) form. The collection is
// everything before the last '.' preceding the first '(', so names with dots
// (system.users) parse correctly.
func parseShell(trimmed string, base int) (*Query, error) {
	rest := trimmed[len("db."):]
	restBase := base + len("db.")

	paren := strings.IndexByte(rest, '(')
	if paren < 0 {
		return nil, &ParseError{Message: errMissingParen, Offset: base, Length: len(trimmed)}
	}

	dot := strings.LastIndexByte(rest[:paren], '.')
	if dot < 0 {
		return nil, &ParseError{Message: errMissingDot, Offset: base, Length: paren + len("db.")}
	}

	collection := rest[:dot]
	if collection == "" {
		return nil, &ParseError{Message: errEmptyCollection, Offset: restBase, Length: 1}
	}

	method := rest[dot+1 : paren]
	methodOff := restBase + dot + 1

	closing, err := MatchParen(rest, paren)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Offset += restBase
		}
		return nil, err
	}

	argsBase := restBase + paren + 1
	args, offsets := splitArgsAt(rest[paren+1:closing], argsBase)

	op, err := buildOperation(method, methodOff, args, offsets)
	if err != nil {
		return nil, err
	}

	return &Query{Collection: collection, Operation: op}, nil
}

// buildOperation dispatches on the method name. The table is fixed; anything
// else fails with an error that enumerates the supported set.
func buildOperation(method string, methodOff int, args []string, offsets []int) (Operation, error) {
	switch method {
	case "find", "findOne":
		filter, err := docArg(args, offsets, 0)
		if err != nil {
			return nil, err
		}
		projection, err := docArg(args, offsets, 1)
		if err != nil {
			return nil, err
		}
		op := &Find{Filter: filter, Projection: projection}
		if method == "findOne" {
			op.Limit = 1
		}
		return op, nil

	case "aggregate":
		if len(args) == 0 {
			return nil, methodError(method, methodOff, "aggregate requires a pipeline array")
		}
		pipeline, err := pipelineArg(args[0], offsets[0])
		if err != nil {
			return nil, err
		}
		return &Aggregate{Pipeline: pipeline}, nil

	case "count", "countDocuments":
		filter, err := docArg(args, offsets, 0)
		if err != nil {
			return nil, err
		}
		return &Count{Filter: filter}, nil

	case "insertOne":
		if len(args) == 0 {
			return nil, methodError(method, methodOff, "insertOne requires a document")
		}
		doc, err := parseDoc(args[0], offsets[0])
		if err != nil {
			return nil, err
		}
		return &InsertOne{Document: doc}, nil

	case "insertMany":
		if len(args) == 0 {
			return nil, methodError(method, methodOff, "insertMany requires an array of documents")
		}
		docs, err := pipelineArg(args[0], offsets[0])
		if err != nil {
			return nil, err
		}
		return &InsertMany{Documents: docs}, nil

	case "updateOne", "updateMany", "replaceOne":
		second := "update"
		if method == "replaceOne" {
			second = "replacement"
		}
		if len(args) < 2 {
			return nil, methodError(method, methodOff, fmt.Sprintf(errTooFewArguments, method, second))
		}
		filter, err := parseDoc(args[0], offsets[0])
		if err != nil {
			return nil, err
		}
		change, err := parseDoc(args[1], offsets[1])
		if err != nil {
			return nil, err
		}
		upsert, err := upsertOption(args, offsets)
		if err != nil {
			return nil, err
		}
		switch method {
		case "updateOne":
			return &UpdateOne{Filter: filter, Update: change, Upsert: upsert}, nil
		case "updateMany":
			return &UpdateMany{Filter: filter, Update: change, Upsert: upsert}, nil
		default:
			return &ReplaceOne{Filter: filter, Replacement: change, Upsert: upsert}, nil
		}

	case "deleteOne", "deleteMany":
		filter, err := docArg(args, offsets, 0)
		if err != nil {
			return nil, err
		}
		if method == "deleteOne" {
			return &DeleteOne{Filter: filter}, nil
		}
		return &DeleteMany{Filter: filter}, nil

	case "drop":
		return &Drop{}, nil

	default:
		return nil, &ParseError{
			Message: fmt.Sprintf(errUnsupportedMethod, method, strings.Join(supportedMethods, ", ")),
			Offset:  methodOff,
			Length:  max(len(method), 1),
		}
	}
}

// docArg parses the optional document at argument index i, defaulting to an
// empty document when absent.
func docArg(args []string, offsets []int, i int) (bson.M, error) {
	if i >= len(args) || args[i] == "" {
		return bson.M{}, nil
	}
	return parseDoc(args[i], offsets[i])
}

// parseDoc normalizes relaxed JSON and decodes it as an extended-JSON
// document.
func parseDoc(arg string, off int) (bson.M, error) {
	norm := NormalizeRelaxedJSON(arg)

	var doc bson.M
	if err := bson.UnmarshalExtJSON([]byte(norm), false, &doc); err != nil {
		return nil, &ParseError{
			Message: fmt.Sprintf("invalid document: %v", err),
			Offset:  off,
			Length:  len(arg),
		}
	}
	return doc, nil
}

// pipelineArg decodes a JSON array of stage documents. Extended-JSON
// decoding is document-rooted, so the array is wrapped in a throwaway
// document first.
func pipelineArg(arg string, off int) ([]bson.M, error) {
	norm := NormalizeRelaxedJSON(strings.TrimSpace(arg))
	if !strings.HasPrefix(norm, "[") {
		return nil, &ParseError{
			Message: "expected a JSON array",
			Offset:  off,
			Length:  len(arg),
		}
	}

	var wrapper struct {
		Stages []bson.M `bson:"stages"`
	}
	if err := bson.UnmarshalExtJSON([]byte(`{"stages":`+norm+`}`), false, &wrapper); err != nil {
		return nil, &ParseError{
			Message: fmt.Sprintf("invalid array: %v", err),
			Offset:  off,
			Length:  len(arg),
		}
	}
	return wrapper.Stages, nil
}

// upsertOption reads the optional third options document of the update
// methods and extracts its upsert flag.
func upsertOption(args []string, offsets []int) (bool, error) {
	if len(args) < 3 || args[2] == "" {
		return false, nil
	}
	opts, err := parseDoc(args[2], offsets[2])
	if err != nil {
		return false, err
	}
	upsert, _ := opts["upsert"].(bool)
	return upsert, nil
}

func methodError(method string, methodOff int, msg string) error {
	return &ParseError{Message: msg, Offset: methodOff, Length: len(method)}
}

// parseFallback handles the JSON-object form: {"collection": ..., plus one
// of filter/aggregate/pipeline/count/replace}. Absent all hints it becomes a
// Find with an empty filter.
func parseFallback(trimmed string, base int) (*Query, error) {
	doc, err := parseDoc(trimmed, base)
	if err != nil {
		return nil, err
	}

	collection, _ := doc["collection"].(string)
	if collection == "" {
		return nil, &ParseError{Message: errEmptyCollection, Offset: base, Length: len(trimmed)}
	}
	database, _ := doc["database"].(string)

	q := &Query{Database: database, Collection: collection}

	switch {
	// replace may carry a sibling filter, so it is checked before filter.
	case doc["replace"] != nil:
		q.Operation = &ReplaceOne{Filter: asDoc(doc["filter"]), Replacement: asDoc(doc["replace"])}
	case doc["filter"] != nil:
		q.Operation = &Find{Filter: asDoc(doc["filter"])}
	case doc["aggregate"] != nil:
		q.Operation = &Aggregate{Pipeline: asDocs(doc["aggregate"])}
	case doc["pipeline"] != nil:
		q.Operation = &Aggregate{Pipeline: asDocs(doc["pipeline"])}
	case doc["count"] != nil:
		q.Operation = &Count{Filter: asDoc(doc["count"])}
	default:
		q.Operation = &Find{Filter: bson.M{}}
	}

	return q, nil
}

// asDoc coerces a decoded value to a document, yielding an empty one for
// anything else.
func asDoc(v any) bson.M {
	if doc, ok := v.(bson.M); ok {
		return doc
	}
	return bson.M{}
}

// asDocs coerces a decoded value to a slice of documents.
func asDocs(v any) []bson.M {
	arr, ok := v.(bson.A)
	if !ok {
		return nil
	}
	docs := make([]bson.M, 0, len(arr))
	for _, el := range arr {
		docs = append(docs, asDoc(el))
	}
	return docs
}

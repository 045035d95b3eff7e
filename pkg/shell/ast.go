package shell

import "go.mongodb.org/mongo-driver/v2/bson"

// Query is the structured form of a console statement, ready to hand to a
// driver layer. Collection is never empty and exactly one Operation is bound.
type Query struct {
	Database   string // optional; empty means the connection default
	Collection string
	Operation  Operation
}

// Operation is the closed set of executable operation variants. Documents
// attached to an operation are opaque bson maps; the parser does not
// interpret them beyond decoding.
type Operation interface {
	opNode()
}

// Find reads documents matching Filter.
type Find struct {
	Filter     bson.M
	Projection bson.M
	Sort       bson.M
	Limit      int64
	Skip       int64
}

// Count counts documents matching Filter.
type Count struct {
	Filter bson.M
}

// Aggregate runs an ordered pipeline of stage documents.
type Aggregate struct {
	Pipeline []bson.M
}

// InsertOne inserts a single document.
type InsertOne struct {
	Document bson.M
}

// InsertMany inserts documents in order.
type InsertMany struct {
	Documents []bson.M
}

// UpdateOne applies Update to the first document matching Filter.
type UpdateOne struct {
	Filter bson.M
	Update bson.M
	Upsert bool
}

// UpdateMany applies Update to every document matching Filter.
type UpdateMany struct {
	Filter bson.M
	Update bson.M
	Upsert bool
}

// ReplaceOne swaps the first document matching Filter for Replacement.
type ReplaceOne struct {
	Filter      bson.M
	Replacement bson.M
	Upsert      bool
}

// DeleteOne removes the first document matching Filter.
type DeleteOne struct {
	Filter bson.M
}

// DeleteMany removes every document matching Filter.
type DeleteMany struct {
	Filter bson.M
}

// Drop removes the whole collection.
type Drop struct{}

func (*Find) opNode()       {}
func (*Count) opNode()      {}
func (*Aggregate) opNode()  {}
func (*InsertOne) opNode()  {}
func (*InsertMany) opNode() {}
func (*UpdateOne) opNode()  {}
func (*UpdateMany) opNode() {}
func (*ReplaceOne) opNode() {}
func (*DeleteOne) opNode()  {}
func (*DeleteMany) opNode() {}
func (*Drop) opNode()       {}

// Name returns the console method name for an operation variant, for
// display and logging.
func Name(op Operation) string {
	switch op.(type) {
	case *Find:
		return "find"
	case *Count:
		return "count"
	case *Aggregate:
		return "aggregate"
	case *InsertOne:
		return "insertOne"
	case *InsertMany:
		return "insertMany"
	case *UpdateOne:
		return "updateOne"
	case *UpdateMany:
		return "updateMany"
	case *ReplaceOne:
		return "replaceOne"
	case *DeleteOne:
		return "deleteOne"
	case *DeleteMany:
		return "deleteMany"
	case *Drop:
		return "drop"
	default:
		return "unknown"
	}
}

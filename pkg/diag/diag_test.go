package diag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectCleanText(t *testing.T) {
	tests := []string{
		`db.users.find({"name": "John"})`,
		`db.orders.aggregate([{"$match": {"total": {"$gt": 10}}}])`,
		`db.users.drop()`,
		``,
	}
	for _, text := range tests {
		diags := Collect(context.Background(), text)
		assert.Empty(t, diags, "text: %s", text)
	}
}

func TestCollectUnclosedCall(t *testing.T) {
	diags := Collect(context.Background(), `db.users.find({"name": "John"`)

	require.NotEmpty(t, diags)
	for _, d := range diags {
		assert.Equal(t, SeverityError, d.Severity)
		assert.NotEmpty(t, d.Message)
	}
}

func TestCollectRangeOnErrorLine(t *testing.T) {
	// The error is on the second line of the input.
	diags := Collect(context.Background(), "db.users.find({})\ndb.users.find((")

	require.NotEmpty(t, diags)
	assert.Equal(t, uint32(1), diags[0].Range.End.Line)
}

func TestCollectNeverReturnsNil(t *testing.T) {
	assert.NotNil(t, Collect(context.Background(), "db.users.find({})"))
}

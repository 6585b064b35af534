package contextkeys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextKeys_AreDistinct(t *testing.T) {
	keys := []interface{}{ProjectIDKey, DatabaseIDKey, ExportIDKey, ComponentKey, OperationKey}
	seen := map[interface{}]bool{}
	for _, k := range keys {
		assert.False(t, seen[k])
		seen[k] = true
	}
}

func TestContextKeys_RoundTrip(t *testing.T) {
	ctx := context.WithValue(context.Background(), ProjectIDKey, "p1")
	ctx = context.WithValue(ctx, ExportIDKey, "run-1")

	assert.Equal(t, "p1", ctx.Value(ProjectIDKey))
	assert.Equal(t, "run-1", ctx.Value(ExportIDKey))
	assert.Nil(t, ctx.Value(DatabaseIDKey))
}

func TestContextKey_String(t *testing.T) {
	assert.Contains(t, ProjectIDKey.String(), "projectID")
}

package logger

import (
	"context"
	"testing"

	"firestore-export/internal/shared/contextkeys"

	"github.com/stretchr/testify/assert"
)

func TestLoggerInterface_Contract(t *testing.T) {
	var _ Logger = NewLogger()
	var _ Logger = NewLoggerWithConfig("info", "json")
}

func TestLogrusLogger_WithFieldsAndContext(t *testing.T) {
	log := NewLogger()
	log2 := log.WithFields(map[string]interface{}{"collection": "users"})
	assert.NotNil(t, log2)

	ctx := context.Background()
	ctx = context.WithValue(ctx, contextkeys.ProjectIDKey, "p1")
	ctx = context.WithValue(ctx, contextkeys.ExportIDKey, "run-1")
	log3 := log.WithContext(ctx)
	assert.NotNil(t, log3)
}

func TestLogrusLogger_WithComponent(t *testing.T) {
	log := NewLogger()
	log2 := log.WithComponent("sampler")
	assert.NotNil(t, log2)
}

func TestNewLoggerWithConfig_InvalidLevelFallsBack(t *testing.T) {
	// Invalid level must not panic; logger falls back to info.
	log := NewLoggerWithConfig("not-a-level", "text")
	assert.NotNil(t, log)
	log.Info("still works")
}

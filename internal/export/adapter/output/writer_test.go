package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"firestore-export/internal/export/domain/model"
	"firestore-export/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *model.StructureReport {
	return &model.StructureReport{
		ProjectID:  "demo-project",
		ExportedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Collections: map[string]*model.StructureNode{
			"users": {
				Fields: map[string]string{"name": model.TypeString},
				Subcollections: map[string]*model.StructureNode{
					"orders": {Fields: map[string]string{"total": model.TypeInteger}},
				},
			},
			"empty": {},
		},
	}
}

func TestWriter_CreatesDirectoriesAndWrites(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "output", "nested", "structure.json")

	err := NewWriter(logger.NewLogger()).Write(sampleReport(), destination)
	require.NoError(t, err)

	raw, err := os.ReadFile(destination)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(raw), "\n"))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "demo-project", decoded["project_id"])
	assert.Equal(t, "2024-05-01T12:00:00Z", decoded["exported_at"])

	collections := decoded["collections"].(map[string]interface{})
	users := collections["users"].(map[string]interface{})
	fields := users["fields"].(map[string]interface{})
	assert.Equal(t, "string", fields["name"])

	// empty node serializes with no fields/subcollections keys at all
	empty := collections["empty"].(map[string]interface{})
	assert.NotContains(t, empty, "fields")
	assert.NotContains(t, empty, "subcollections")
}

func TestWriter_BareFilename(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, NewWriter(logger.NewLogger()).Write(sampleReport(), "structure.json"))
	_, err = os.Stat(filepath.Join(dir, "structure.json"))
	assert.NoError(t, err)
}

func TestWriter_UnwritableDestination(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	// destination's parent is a regular file, so MkdirAll must fail
	err := NewWriter(logger.NewLogger()).Write(sampleReport(), filepath.Join(blocked, "structure.json"))
	assert.Error(t, err)
}

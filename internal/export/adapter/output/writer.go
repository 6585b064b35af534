package output

import (
	"encoding/json"
	"os"
	"path/filepath"

	"firestore-export/internal/export/domain/model"
	apperrors "firestore-export/internal/shared/errors"
	"firestore-export/internal/shared/logger"
)

// Writer serializes a structure report to a JSON file, creating parent
// directories as needed.
type Writer struct {
	log logger.Logger
}

// NewWriter creates a report writer
func NewWriter(log logger.Logger) *Writer {
	return &Writer{log: log.WithComponent("output")}
}

// Write renders the report as indented UTF-8 JSON with a trailing newline
// and writes it to destination.
func (w *Writer) Write(report *model.StructureReport, destination string) error {
	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return apperrors.NewOutputError("failed to encode structure report").WithCause(err)
	}
	payload = append(payload, '\n')

	if dir := filepath.Dir(destination); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.NewOutputError("failed to create output directory").
				WithDetail("directory", dir).WithCause(err)
		}
	}

	if err := os.WriteFile(destination, payload, 0o644); err != nil {
		return apperrors.NewOutputError("failed to write structure report").
			WithDetail("destination", destination).WithCause(err)
	}

	w.log.Infof("Wrote output to %s", destination)
	return nil
}

package model

import "time"

// StructureReport is the top-level export artifact: the shape of every
// root collection in one source database, stamped with the project it was
// read from and the moment the export started.
type StructureReport struct {
	ProjectID   string                    `json:"project_id"`
	ExportedAt  time.Time                 `json:"exported_at"`
	Collections map[string]*StructureNode `json:"collections"`
}

// NewStructureReport creates a report for the given project, stamped now (UTC)
func NewStructureReport(projectID string) *StructureReport {
	return &StructureReport{
		ProjectID:   projectID,
		ExportedAt:  time.Now().UTC(),
		Collections: make(map[string]*StructureNode),
	}
}

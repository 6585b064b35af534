package usecase

import (
	"context"
	"fmt"

	"firestore-export/internal/export/domain/model"
	"firestore-export/internal/export/domain/repository"
	"firestore-export/internal/shared/logger"
)

// Exporter walks every root collection of a source database and assembles
// the structure report. Traversal is strictly sequential; a single
// unrecoverable store error aborts the whole run with no partial report.
type Exporter struct {
	source    repository.StructureSource
	describer *Describer
	projectID string
	log       logger.Logger
}

// NewExporter wires a sampler and describer for the given source. Sample
// limit and order field are plain values; how they were resolved is the
// caller's concern.
func NewExporter(source repository.StructureSource, projectID string, sampleLimit int, orderField string, log logger.Logger) *Exporter {
	sampler := NewSampler(sampleLimit, orderField, log)
	return &Exporter{
		source:    source,
		describer: NewDescriber(sampler, log),
		projectID: projectID,
		log:       log.WithComponent("exporter"),
	}
}

// Export produces the structure report for the whole database. The report
// timestamp marks the start of the export.
func (e *Exporter) Export(ctx context.Context) (*model.StructureReport, error) {
	report := model.NewStructureReport(e.projectID)

	collections, err := e.source.Collections(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list root collections: %w", err)
	}

	for _, collection := range collections {
		e.log.Infof("Processing collection '%s'", collection.ID())
		node, err := e.describer.DescribeCollection(ctx, collection)
		if err != nil {
			return nil, fmt.Errorf("failed to describe collection %q: %w", collection.ID(), err)
		}
		report.Collections[collection.ID()] = node
	}

	return report, nil
}

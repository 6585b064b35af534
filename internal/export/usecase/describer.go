package usecase

import (
	"context"
	"errors"
	"fmt"

	"firestore-export/internal/export/domain/model"
	"firestore-export/internal/export/domain/repository"
	"firestore-export/internal/shared/logger"
)

// Describer turns collections and documents into structure nodes. Every
// document it visits comes from the sampler, so traversal cost per
// collection is bounded by the sample limit.
type Describer struct {
	sampler *Sampler
	log     logger.Logger
}

// NewDescriber creates a describer driven by the given sampler
func NewDescriber(sampler *Sampler, log logger.Logger) *Describer {
	return &Describer{
		sampler: sampler,
		log:     log.WithComponent("describer"),
	}
}

// DescribeCollection samples the collection and folds each document's
// structure into one aggregate node, first observation winning on field
// type conflicts. Empty field/subcollection maps are stripped before the
// node is returned.
func (d *Describer) DescribeCollection(ctx context.Context, collection repository.CollectionRef) (*model.StructureNode, error) {
	aggregate := model.NewStructureNode()

	iterator, err := d.sampler.Sample(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to sample collection %q: %w", collection.ID(), err)
	}
	defer iterator.Close(ctx)

	described := 0
	for {
		snapshot, err := iterator.Next(ctx)
		if errors.Is(err, repository.ErrIteratorDone) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to stream collection %q: %w", collection.ID(), err)
		}

		docNode, err := d.DescribeDocument(ctx, snapshot)
		if err != nil {
			return nil, err
		}
		aggregate.Merge(docNode)
		described++
	}

	d.log.Infof("Described %d document(s) in collection '%s'", described, collection.ID())
	if limit := d.sampler.Limit(); limit > 0 && described == limit {
		d.log.Infof("Reached sample limit (%d docs) for collection '%s'; remaining documents are skipped", limit, collection.ID())
	}

	return aggregate.Strip(), nil
}

// DescribeDocument maps the document's top-level fields to type tags and
// recursively describes each subcollection attached to it. The fields map
// is present even when empty; the merge step decides whether to keep it.
func (d *Describer) DescribeDocument(ctx context.Context, snapshot repository.DocumentSnapshot) (*model.StructureNode, error) {
	node := &model.StructureNode{
		Fields: model.DescribeFields(snapshot.Data()),
	}

	subcollections, err := snapshot.Collections(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subcollections of document %q: %w", snapshot.ID(), err)
	}

	for _, subcollection := range subcollections {
		subNode, err := d.DescribeCollection(ctx, subcollection)
		if err != nil {
			return nil, err
		}
		if node.Subcollections == nil {
			node.Subcollections = make(map[string]*model.StructureNode)
		}
		node.Subcollections[subcollection.ID()] = subNode
	}

	return node, nil
}
